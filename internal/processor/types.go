package processor

import (
	"errors"
	"time"

	"github.com/mauv0809/commander-league/internal/journal"
	"github.com/mauv0809/commander-league/internal/metrics"
	"github.com/mauv0809/commander-league/internal/pubsub"
	"github.com/mauv0809/commander-league/internal/record"
	"github.com/mauv0809/commander-league/internal/stats"
	"github.com/mauv0809/commander-league/internal/store"
)

// Direction says whether a match's deltas are applied or reverted.
type Direction string

const (
	DirectionApply    Direction = "apply"
	DirectionRollback Direction = "rollback"
)

// ErrPartialReconciliation is returned when at least one entity update of a
// pass failed. Updates that succeeded stay applied.
var ErrPartialReconciliation = errors.New("reconciliation partially applied")

// ErrSnapshot is returned when the player or deck snapshot could not be fetched.
// Nothing was written in that case.
var ErrSnapshot = errors.New("failed to fetch entity snapshot")

// Processor reconciles player and deck counters with recorded matches.
type Processor struct {
	store   Store
	pubsub  pubsub.PubSubClient
	metrics metrics.Metrics
	journal journal.Journal
	now     func() time.Time
}

// Update is the full replacement payload for one player or deck.
type Update struct {
	Collection store.Collection
	Key        string
	Name       string
	Record     record.Record
	Before     stats.Counters
	After      stats.Counters
	Delta      stats.Delta
}

// Plan is the outcome of matching a match's seats against stored entities.
type Plan struct {
	Direction    Direction
	MatchID      string
	Casual       bool
	Updates      []Update
	SkippedSeats int
}

// EntityChange describes what a pass did, or would do, to one entity.
type EntityChange struct {
	Key     string         `json:"key" msgpack:"key"`
	Name    string         `json:"name" msgpack:"name"`
	Delta   stats.Delta    `json:"delta" msgpack:"delta"`
	Before  stats.Counters `json:"before" msgpack:"before"`
	After   stats.Counters `json:"after" msgpack:"after"`
	Applied bool           `json:"applied" msgpack:"applied"`
}

// Report summarizes one reconciliation pass. It is returned to callers,
// published as the pass's event and rendered by the notifier.
type Report struct {
	PassID       string         `json:"passId" msgpack:"passId"`
	Direction    Direction      `json:"direction" msgpack:"direction"`
	MatchID      string         `json:"matchId" msgpack:"matchId"`
	Casual       bool           `json:"casual" msgpack:"casual"`
	Players      []EntityChange `json:"players" msgpack:"players"`
	Decks        []EntityChange `json:"decks" msgpack:"decks"`
	SkippedSeats int            `json:"skippedSeats" msgpack:"skippedSeats"`
	Error        string         `json:"error,omitempty" msgpack:"error"`
}
