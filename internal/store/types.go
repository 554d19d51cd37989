package store

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/mauv0809/commander-league/internal/identity"
	"github.com/mauv0809/commander-league/internal/record"
)

// Collection names a collection in the external store.
type Collection string

const (
	Players Collection = "players"
	Decks   Collection = "decks"
	Matches Collection = "matches"
)

// ErrNotFound is returned when the store answers 404.
var ErrNotFound = errors.New("record not found")

// StatusError is returned for any non-2xx answer from the store.
type StatusError struct {
	Op         string
	Collection Collection
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	body := strings.TrimSpace(e.Body)
	if len(body) > 200 {
		body = body[:200] + "..."
	}
	return fmt.Sprintf("store %s %s: unexpected status %d: %s", e.Op, e.Collection, e.StatusCode, body)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// KeyOf returns the key a record is addressed by in update and delete calls:
// its id when it has one, its name otherwise.
func KeyOf(rec record.Record, kind identity.Kind) (string, bool) {
	if key, ok := rec.Key(kind.IDKeys); ok {
		return key, true
	}
	return rec.Text(kind.NameKeys)
}

// KindOf returns the identity spellings used by records of a collection.
func KindOf(c Collection) identity.Kind {
	switch c {
	case Players:
		return identity.Player
	case Decks:
		return identity.Deck
	}
	return identity.Kind{
		Name:   string(c),
		IDKeys: record.Keys{"id", "matchId", "matchID", "match_id"},
	}
}
