package store

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/mauv0809/commander-league/internal/record"
)

// Mock is an in-memory implementation of the Store interface for testing.
// Without a XxxFunc hook it behaves like a small store: records live in
// Records and new ones get increasing numeric ids. It is safe for concurrent
// use.
type Mock struct {
	mu     sync.Mutex
	nextID int64

	Records map[Collection][]record.Record

	// Spies for method calls
	ListFunc   func(c Collection) ([]record.Record, error)
	GetFunc    func(c Collection, key string) (record.Record, error)
	CreateFunc func(c Collection, rec record.Record) (record.Record, error)
	UpdateFunc func(c Collection, key string, rec record.Record) (record.Record, error)
	DeleteFunc func(c Collection, key string) error

	// Call records
	ListCalls   []Collection
	GetCalls    []KeyCall
	CreateCalls []RecordCall
	UpdateCalls []UpdateCall
	DeleteCalls []KeyCall
}

// KeyCall holds the arguments of a Get or Delete call.
type KeyCall struct {
	Collection Collection
	Key        string
}

// RecordCall holds the arguments of a Create call.
type RecordCall struct {
	Collection Collection
	Record     record.Record
}

// UpdateCall holds the arguments of an Update call.
type UpdateCall struct {
	Collection Collection
	Key        string
	Record     record.Record
}

var _ Store = (*Mock)(nil)

// NewMock creates a new, empty mock store.
func NewMock() *Mock {
	return &Mock{Records: make(map[Collection][]record.Record)}
}

// Seed adds records to a collection as-is.
func (m *Mock) Seed(c Collection, recs ...record.Record) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, rec := range recs {
		m.Records[c] = append(m.Records[c], rec.Clone())
	}
}

// Find returns the stored record addressed by key.
func (m *Mock) Find(c Collection, key string) (record.Record, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.indexOf(c, key)
	if i < 0 {
		return nil, false
	}
	return m.Records[c][i].Clone(), true
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ListCalls = nil
	m.GetCalls = nil
	m.CreateCalls = nil
	m.UpdateCalls = nil
	m.DeleteCalls = nil
}

func (m *Mock) List(_ context.Context, c Collection) ([]record.Record, error) {
	m.mu.Lock()
	m.ListCalls = append(m.ListCalls, c)
	fn := m.ListFunc
	out := make([]record.Record, 0, len(m.Records[c]))
	for _, rec := range m.Records[c] {
		out = append(out, rec.Clone())
	}
	m.mu.Unlock()

	if fn != nil {
		return fn(c)
	}
	return out, nil
}

func (m *Mock) Get(_ context.Context, c Collection, key string) (record.Record, error) {
	m.mu.Lock()
	m.GetCalls = append(m.GetCalls, KeyCall{Collection: c, Key: key})
	fn := m.GetFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(c, key)
	}
	rec, ok := m.Find(c, key)
	if !ok {
		return nil, &StatusError{Op: "get", Collection: c, StatusCode: 404}
	}
	return rec, nil
}

func (m *Mock) Create(_ context.Context, c Collection, rec record.Record) (record.Record, error) {
	m.mu.Lock()
	m.CreateCalls = append(m.CreateCalls, RecordCall{Collection: c, Record: rec.Clone()})
	fn := m.CreateFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(c, rec)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	created := rec.Clone()
	if _, ok := created.Key(record.Keys{"id"}); !ok {
		m.nextID++
		created["id"] = m.nextID
	}
	m.Records[c] = append(m.Records[c], created)
	return created.Clone(), nil
}

func (m *Mock) Update(_ context.Context, c Collection, key string, rec record.Record) (record.Record, error) {
	m.mu.Lock()
	m.UpdateCalls = append(m.UpdateCalls, UpdateCall{Collection: c, Key: key, Record: rec.Clone()})
	fn := m.UpdateFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(c, key, rec)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.indexOf(c, key)
	if i < 0 {
		return nil, &StatusError{Op: "update", Collection: c, StatusCode: 404}
	}
	m.Records[c][i] = rec.Clone()
	return rec.Clone(), nil
}

func (m *Mock) Delete(_ context.Context, c Collection, key string) error {
	m.mu.Lock()
	m.DeleteCalls = append(m.DeleteCalls, KeyCall{Collection: c, Key: key})
	fn := m.DeleteFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(c, key)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if i := m.indexOf(c, key); i >= 0 {
		m.Records[c] = append(m.Records[c][:i], m.Records[c][i+1:]...)
	}
	return nil
}

// UpdatesFor returns the Update calls made against one collection.
func (m *Mock) UpdatesFor(c Collection) []UpdateCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []UpdateCall
	for _, call := range m.UpdateCalls {
		if call.Collection == c {
			out = append(out, call)
		}
	}
	return out
}

// indexOf must be called with mu held.
func (m *Mock) indexOf(c Collection, key string) int {
	kind := KindOf(c)
	for i, rec := range m.Records[c] {
		k, ok := KeyOf(rec, kind)
		if !ok {
			continue
		}
		if k == key || strings.EqualFold(k, key) {
			return i
		}
		if n, err := strconv.ParseInt(key, 10, 64); err == nil {
			if id, ok := rec.Number(kind.IDKeys); ok && id == n {
				return i
			}
		}
	}
	return -1
}
