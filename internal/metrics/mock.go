package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                     sync.Mutex
	reconciliations        map[string]int
	reconciliationFailures map[string]int
	durations              []float64
	entityUpdates          map[string]int
	skippedSeats           int
	storeErrors            map[string]int
	slackNotifSent         int
	slackNotifFailed       int
	startupTime            float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		reconciliations:        make(map[string]int),
		reconciliationFailures: make(map[string]int),
		entityUpdates:          make(map[string]int),
		storeErrors:            make(map[string]int),
	}
}

func (m *Mock) IncReconciliations(direction string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reconciliations[direction]++
}

func (m *Mock) IncReconciliationFailures(direction string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reconciliationFailures[direction]++
}

func (m *Mock) ObserveReconciliationDuration(direction string, seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.durations = append(m.durations, seconds)
}

func (m *Mock) AddEntityUpdates(collection string, n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entityUpdates[collection] += n
}

func (m *Mock) AddSkippedSeats(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.skippedSeats += n
}

func (m *Mock) IncStoreErrors(op string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.storeErrors[op]++
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// Reconciliations returns how many passes were counted for direction.
func (m *Mock) Reconciliations(direction string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reconciliations[direction]
}

// ReconciliationFailures returns how many failed passes were counted for direction.
func (m *Mock) ReconciliationFailures(direction string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reconciliationFailures[direction]
}

// Durations returns every observed pass duration.
func (m *Mock) Durations() []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]float64(nil), m.durations...)
}

// EntityUpdates returns the number of updates counted for collection.
func (m *Mock) EntityUpdates(collection string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.entityUpdates[collection]
}

// SkippedSeats returns the number of skipped seats counted.
func (m *Mock) SkippedSeats() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.skippedSeats
}

// StoreErrors returns the number of store errors counted for op.
func (m *Mock) StoreErrors(op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.storeErrors[op]
}

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}
