package notifier

import (
	"sync"

	"github.com/mauv0809/commander-league/internal/league"
	"github.com/mauv0809/commander-league/internal/processor"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Spies for method calls
	SendReconciliationFunc func(report processor.Report, dryRun bool) error
	SendStandingsFunc      func(rows []league.Standing, dryRun bool) error

	// Spies for format functions
	FormatStandingsResponseFunc func(rows []league.Standing) (any, error)
	FormatPlayerResponseFunc    func(row *league.Standing, query string) (any, error)

	// Call records
	SendReconciliationCalls []processor.Report
	SendStandingsCalls      [][]league.Standing
	FormatPlayerQueries     []string
}

var _ Notifier = (*Mock)(nil)

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendReconciliationCalls = nil
	m.SendStandingsCalls = nil
	m.FormatPlayerQueries = nil
}

func (m *Mock) SendReconciliation(report processor.Report, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendReconciliationCalls = append(m.SendReconciliationCalls, report)
	if m.SendReconciliationFunc != nil {
		return m.SendReconciliationFunc(report, dryRun)
	}
	return nil
}

func (m *Mock) SendStandings(rows []league.Standing, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendStandingsCalls = append(m.SendStandingsCalls, rows)
	if m.SendStandingsFunc != nil {
		return m.SendStandingsFunc(rows, dryRun)
	}
	return nil
}

func (m *Mock) FormatStandingsResponse(rows []league.Standing) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FormatStandingsResponseFunc != nil {
		return m.FormatStandingsResponseFunc(rows)
	}
	return "formatted_standings", nil
}

func (m *Mock) FormatPlayerResponse(row *league.Standing, query string) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FormatPlayerQueries = append(m.FormatPlayerQueries, query)
	if m.FormatPlayerResponseFunc != nil {
		return m.FormatPlayerResponseFunc(row, query)
	}
	return "formatted_player", nil
}
