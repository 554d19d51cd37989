package handlers

import (
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/commander-league/internal/journal"
)

func JournalHandler(j journal.Journal) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 0
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 0 {
				log.Warn("Invalid 'limit' parameter provided. Using default.", "limit_param", raw)
			} else {
				limit = n
			}
		}
		entries, err := j.List(r.Context(), limit)
		if err != nil {
			http.Error(w, "Failed to read journal", http.StatusInternalServerError)
			log.Error("Failed to list journal entries", "error", err)
			return
		}
		writeJSON(w, http.StatusOK, entries)
	}
}
