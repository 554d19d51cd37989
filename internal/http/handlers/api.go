package handlers

import (
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/commander-league/internal/league"
	"github.com/mauv0809/commander-league/internal/notifier"
	"github.com/mauv0809/commander-league/internal/store"
)

func StandingsHandler(svc *league.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := svc.Standings(r.Context())
		if err != nil {
			http.Error(w, "Failed to get players", http.StatusBadGateway)
			log.Error("Failed to get standings", "error", err)
			return
		}
		writeJSON(w, http.StatusOK, rows)
	}
}

func CreatePlayerHandler(svc *league.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, err := readRecord(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeResult(w, svc.CreatePlayer(r.Context(), rec))
	}
}

func CreateDeckHandler(svc *league.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, err := readRecord(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeResult(w, svc.CreateDeck(r.Context(), rec))
	}
}

func CreateMatchHandler(svc *league.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, err := readRecord(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if IsDryRunFromContext(r) {
			log.Info("[Dry Run] Previewing match instead of recording it")
			writeResult(w, svc.PreviewMatch(r.Context(), rec))
			return
		}
		writeResult(w, svc.CreateMatch(r.Context(), rec))
	}
}

func PreviewMatchHandler(svc *league.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, err := readRecord(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeResult(w, svc.PreviewMatch(r.Context(), rec))
	}
}

func DeleteMatchHandler(svc *league.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeResult(w, svc.DeleteMatch(r.Context(), r.PathValue("key")))
	}
}

func WinPercentageHandler(svc *league.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := r.PathValue("key")
		pct, err := svc.WinPercentage(r.Context(), key)
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "Player not found", http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, "Failed to get player", http.StatusBadGateway)
			log.Error("Failed to get win percentage", "key", key, "error", err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"key": key, "winPercentage": pct})
	}
}

func SuggestedDeckHandler(svc *league.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := r.PathValue("key")
		deck, ok, err := svc.SuggestDeck(r.Context(), key)
		if err != nil {
			http.Error(w, "Failed to get matches", http.StatusBadGateway)
			log.Error("Failed to suggest deck", "key", key, "error", err)
			return
		}
		if !ok {
			http.Error(w, "No deck played yet", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"key": key, "deck": deck})
	}
}

func FavoritesHandler(svc *league.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		favs, err := svc.Favorites(r.Context())
		if err != nil {
			http.Error(w, "Failed to get matches", http.StatusBadGateway)
			log.Error("Failed to build favorites", "error", err)
			return
		}
		writeJSON(w, http.StatusOK, favs)
	}
}

// AnnounceStandingsHandler posts the current league table to Slack.
func AnnounceStandingsHandler(svc *league.Service, notifier notifier.Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := svc.Standings(r.Context())
		if err != nil {
			http.Error(w, "Failed to get players", http.StatusBadGateway)
			log.Error("Failed to get standings", "error", err)
			return
		}
		if err := notifier.SendStandings(rows, IsDryRunFromContext(r)); err != nil {
			http.Error(w, "Failed to send standings", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}
