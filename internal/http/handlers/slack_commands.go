package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/commander-league/internal/league"
	"github.com/mauv0809/commander-league/internal/notifier"
	"github.com/slack-go/slack"
)

// respondWithSlackMsg is a helper to format and write a Slack message as an HTTP response.
func respondWithSlackMsg(w http.ResponseWriter, msg any) {
	slackMsg, ok := msg.(slack.Message)
	if !ok {
		http.Error(w, "Invalid message format for Slack", http.StatusInternalServerError)
		log.Error("Failed to cast message to slack.Message")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(slackMsg); err != nil {
		log.Error("Failed to encode slack message to JSON", "error", err)
	}
}

func StandingsCommandHandler(svc *league.Service, notifier notifier.Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := svc.Standings(r.Context())
		if err != nil {
			http.Error(w, "Failed to get standings", http.StatusInternalServerError)
			log.Error("Failed to get standings", "error", err)
			return
		}

		msg, err := notifier.FormatStandingsResponse(rows)
		if err != nil {
			http.Error(w, "Failed to format standings", http.StatusInternalServerError)
			log.Error("Failed to format standings", "error", err)
			return
		}
		respondWithSlackMsg(w, msg)
	}
}

func PlayerCommandHandler(svc *league.Service, notifier notifier.Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Error parsing form", http.StatusBadRequest)
			return
		}
		query := strings.TrimSpace(r.FormValue("text"))
		if query == "" {
			http.Error(w, "Player name is required.", http.StatusBadRequest)
			return
		}

		log.Info("Received player command", "player", query)
		row, found, err := svc.Player(r.Context(), query)
		if err != nil {
			http.Error(w, "Failed to get player", http.StatusInternalServerError)
			log.Error("Failed to look up player", "player", query, "error", err)
			return
		}
		var msg any
		if found {
			msg, err = notifier.FormatPlayerResponse(&row, query)
		} else {
			log.Warn("Could not find player", "player", query)
			msg, err = notifier.FormatPlayerResponse(nil, query)
		}
		if err != nil {
			http.Error(w, "Failed to format player", http.StatusInternalServerError)
			log.Error("Failed to format player", "error", err)
			return
		}
		respondWithSlackMsg(w, msg)
	}
}
