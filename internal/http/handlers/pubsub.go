package handlers

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/commander-league/internal/notifier"
	"github.com/mauv0809/commander-league/internal/processor"
	"github.com/mauv0809/commander-league/internal/pubsub"
)

// ReconciledEventHandler receives reconciliation reports pushed by a Pub/Sub
// subscription and announces them.
func ReconciledEventHandler(notifier notifier.Notifier, pubsubClient pubsub.PubSubClient) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			log.Error("Failed to read request body", "error", err)
			http.Error(w, "Failed to read request body", http.StatusInternalServerError)
			return
		}
		log.Debug("Received reconciliation message", "body", string(bodyBytes))

		var pubsubMsg struct {
			Subscription string `json:"subscription"`
			Message      struct {
				Data       string            `json:"data"`
				Attributes map[string]string `json:"attributes"`
			} `json:"message"`
		}

		if err := json.Unmarshal(bodyBytes, &pubsubMsg); err != nil {
			log.Error("Failed to unmarshal wrapper JSON", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		rawData, err := base64.StdEncoding.DecodeString(pubsubMsg.Message.Data)
		if err != nil {
			log.Error("Failed to decode base64 data", "error", err)
			http.Error(w, "Invalid base64 data", http.StatusBadRequest)
			return
		}
		report := processor.Report{}
		if err := pubsubClient.ProcessMessage(rawData, &report); err != nil {
			http.Error(w, "Invalid message payload", http.StatusBadRequest)
			return
		}
		log.Info("Announcing reconciliation", "passID", report.PassID, "event", pubsubMsg.Message.Attributes["event"])
		if err := notifier.SendReconciliation(report, IsDryRunFromContext(r)); err != nil {
			// A non-2xx answer makes Pub/Sub redeliver the message.
			http.Error(w, "Failed to send notification", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}
