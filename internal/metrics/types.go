package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
type Service struct {
	Reconciliations        *prometheus.CounterVec
	ReconciliationFailures *prometheus.CounterVec
	ReconciliationDuration *prometheus.HistogramVec
	EntityUpdates          *prometheus.CounterVec
	SkippedSeats           prometheus.Counter
	StoreErrors            *prometheus.CounterVec
	SlackNotifSent         prometheus.Counter
	SlackNotifFailed       prometheus.Counter
	StartupTimeSeconds     prometheus.Gauge
}
