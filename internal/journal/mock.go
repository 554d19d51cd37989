package journal

import (
	"context"
	"sync"
)

// Mock is an in-memory Journal for tests. It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	RecordFunc func(entry Entry) error

	Entries []Entry
}

var _ Journal = (*Mock)(nil)

func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) Record(_ context.Context, entry Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.RecordFunc != nil {
		if err := m.RecordFunc(entry); err != nil {
			return err
		}
	}
	m.Entries = append(m.Entries, entry)
	return nil
}

func (m *Mock) List(_ context.Context, limit int) ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Entry, 0, len(m.Entries))
	for i := len(m.Entries) - 1; i >= 0; i-- {
		if limit > 0 && len(out) == limit {
			break
		}
		out = append(out, m.Entries[i])
	}
	return out, nil
}

// Last returns the most recently recorded entry.
func (m *Mock) Last() (Entry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Entries) == 0 {
		return Entry{}, false
	}
	return m.Entries[len(m.Entries)-1], true
}
