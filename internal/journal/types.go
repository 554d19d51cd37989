package journal

import (
	"database/sql"
	"time"

	"github.com/mauv0809/commander-league/internal/stats"
)

type Status string

const (
	StatusOK      Status = "ok"
	StatusPartial Status = "partial"
	StatusFailed  Status = "failed"
)

// Entry is one reconciliation pass.
type Entry struct {
	PassID       string        `json:"passId" msgpack:"passId"`
	MatchID      string        `json:"matchId" msgpack:"matchId"`
	Direction    string        `json:"direction" msgpack:"direction"`
	Status       Status        `json:"status" msgpack:"status"`
	Error        string        `json:"error,omitempty" msgpack:"error"`
	SkippedSeats int           `json:"skippedSeats" msgpack:"skippedSeats"`
	StartedAt    time.Time     `json:"startedAt" msgpack:"startedAt"`
	Duration     time.Duration `json:"duration" msgpack:"duration"`
	Changes      []Change      `json:"changes" msgpack:"changes"`
}

// Change is the delta a pass sent to one player or deck.
type Change struct {
	Collection string      `json:"collection" msgpack:"collection"`
	Key        string      `json:"key" msgpack:"key"`
	Name       string      `json:"name,omitempty" msgpack:"name"`
	Delta      stats.Delta `json:"delta" msgpack:"delta"`
	Applied    bool        `json:"applied" msgpack:"applied"`
}

// SQLJournal stores entries in the reconciliations tables.
type SQLJournal struct {
	db *sql.DB
}
