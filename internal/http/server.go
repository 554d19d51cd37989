package http

import (
	"net/http"

	"github.com/mauv0809/commander-league/internal/config"
	"github.com/mauv0809/commander-league/internal/http/handlers"
	"github.com/mauv0809/commander-league/internal/journal"
	"github.com/mauv0809/commander-league/internal/league"
	"github.com/mauv0809/commander-league/internal/metrics"
	"github.com/mauv0809/commander-league/internal/notifier"
	"github.com/mauv0809/commander-league/internal/pubsub"
)

func NewServer(svc *league.Service, journal journal.Journal, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config, notifier notifier.Notifier, pubsub pubsub.PubSubClient) *Server {
	server := &Server{
		League:         svc,
		Journal:        journal,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Notifier:       notifier,
		Router:         http.NewServeMux(),
		pubsub:         pubsub,
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, authMiddleware)
	slackAuth := slackVerifyMiddleware(s.Cfg.Slack.SigningSecret)

	s.Router.Handle("GET /metrics", s.MetricsHandler)
	s.Router.Handle("GET /health", Chain(handlers.HealthCheckHandler(), paramsMiddleware))

	s.Router.Handle("GET /players", Chain(handlers.StandingsHandler(s.League), paramsMiddleware))
	s.Router.Handle("POST /players", Chain(handlers.CreatePlayerHandler(s.League), paramsMiddleware))
	s.Router.Handle("GET /players/{key}/win-percentage", Chain(handlers.WinPercentageHandler(s.League), paramsMiddleware))
	s.Router.Handle("GET /players/{key}/suggested-deck", Chain(handlers.SuggestedDeckHandler(s.League), paramsMiddleware))
	s.Router.Handle("POST /decks", Chain(handlers.CreateDeckHandler(s.League), paramsMiddleware))
	s.Router.Handle("GET /favorites", Chain(handlers.FavoritesHandler(s.League), paramsMiddleware))

	s.Router.Handle("POST /matches", Chain(handlers.CreateMatchHandler(s.League), paramsMiddleware))
	s.Router.Handle("POST /matches/preview", Chain(handlers.PreviewMatchHandler(s.League), paramsMiddleware))
	s.Router.Handle("DELETE /matches/{key}", Chain(handlers.DeleteMatchHandler(s.League), paramsMiddleware))

	s.Router.Handle("GET /journal", Chain(handlers.JournalHandler(s.Journal), paramsMiddleware))
	s.Router.Handle("POST /events/reconciled", Chain(handlers.ReconciledEventHandler(s.Notifier, s.pubsub), paramsMiddleware))
	s.Router.Handle("POST /standings/announce", Chain(handlers.AnnounceStandingsHandler(s.League, s.Notifier), paramsMiddleware))

	s.Router.Handle("POST /slack/command/standings", Chain(handlers.StandingsCommandHandler(s.League, s.Notifier), paramsMiddleware, slackAuth))
	s.Router.Handle("POST /slack/command/player", Chain(handlers.PlayerCommandHandler(s.League, s.Notifier), paramsMiddleware, slackAuth))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
