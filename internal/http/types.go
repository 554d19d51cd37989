package http

import (
	"net/http"

	"github.com/mauv0809/commander-league/internal/config"
	"github.com/mauv0809/commander-league/internal/journal"
	"github.com/mauv0809/commander-league/internal/league"
	"github.com/mauv0809/commander-league/internal/metrics"
	"github.com/mauv0809/commander-league/internal/notifier"
	"github.com/mauv0809/commander-league/internal/pubsub"
)

type Server struct {
	League         *league.Service
	Journal        journal.Journal
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Notifier       notifier.Notifier
	Router         *http.ServeMux
	pubsub         pubsub.PubSubClient
}
