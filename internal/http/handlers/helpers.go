package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/commander-league/internal/league"
	"github.com/mauv0809/commander-league/internal/record"
)

// ContextKey is a custom type to avoid key collisions in context.
type ContextKey string

const (
	DryRunKey ContextKey = "dryRun"
)

const maxBodyBytes = 1 << 20

// IsDryRunFromContext is a helper to safely retrieve the dry_run flag from the request context.
func IsDryRunFromContext(r *http.Request) bool {
	dryRun, ok := r.Context().Value(DryRunKey).(bool)
	return ok && dryRun
}

// writeJSON encodes v as the response body.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}

// readRecord decodes the request body into a loosely-typed record.
func readRecord(r *http.Request) (record.Record, error) {
	rec, err := record.Decode(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("invalid JSON body: %w", err)
	}
	return rec, nil
}

// writeResult maps a league result onto an HTTP status.
func writeResult(w http.ResponseWriter, res league.Result) {
	status := http.StatusOK
	if !res.OK {
		switch res.Reason {
		case league.ReasonValidation:
			status = http.StatusBadRequest
		case league.ReasonNotFound:
			status = http.StatusNotFound
		default:
			status = http.StatusBadGateway
		}
	}
	writeJSON(w, status, res)
}
