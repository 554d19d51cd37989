package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncReconciliations(direction string)
	IncReconciliationFailures(direction string)
	ObserveReconciliationDuration(direction string, seconds float64)
	AddEntityUpdates(collection string, n int)
	AddSkippedSeats(n int)
	IncStoreErrors(op string)
	IncSlackNotifSent()
	IncSlackNotifFailed()
	SetStartupTime(duration float64)
}
