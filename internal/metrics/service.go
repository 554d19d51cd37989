package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		Reconciliations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "league_reconciliations_total",
			Help: "The total number of reconciliation passes, by direction.",
		}, []string{"direction"}),
		ReconciliationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "league_reconciliation_failures_total",
			Help: "The total number of reconciliation passes that failed, by direction.",
		}, []string{"direction"}),
		ReconciliationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "league_reconciliation_duration_seconds",
			Help:    "The duration of reconciliation passes.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"direction"}),
		EntityUpdates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "league_entity_updates_total",
			Help: "The total number of player and deck updates dispatched to the store.",
		}, []string{"collection"}),
		SkippedSeats: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "league_skipped_seats_total",
			Help: "The total number of seats that could not be matched to a result or stored entity.",
		}),
		StoreErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "league_store_errors_total",
			Help: "The total number of failed calls to the external store.",
		}, []string{"op"}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "league_slack_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "league_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "league_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.Reconciliations,
		s.ReconciliationFailures,
		s.ReconciliationDuration,
		s.EntityUpdates,
		s.SkippedSeats,
		s.StoreErrors,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncReconciliations(direction string) {
	s.Reconciliations.WithLabelValues(direction).Inc()
}

func (s *Service) IncReconciliationFailures(direction string) {
	s.ReconciliationFailures.WithLabelValues(direction).Inc()
}

func (s *Service) ObserveReconciliationDuration(direction string, seconds float64) {
	s.ReconciliationDuration.WithLabelValues(direction).Observe(seconds)
}

func (s *Service) AddEntityUpdates(collection string, n int) {
	s.EntityUpdates.WithLabelValues(collection).Add(float64(n))
}

func (s *Service) AddSkippedSeats(n int) {
	s.SkippedSeats.Add(float64(n))
}

func (s *Service) IncStoreErrors(op string) {
	s.StoreErrors.WithLabelValues(op).Inc()
}

func (s *Service) IncSlackNotifSent() {
	s.SlackNotifSent.Inc()
}

func (s *Service) IncSlackNotifFailed() {
	s.SlackNotifFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
