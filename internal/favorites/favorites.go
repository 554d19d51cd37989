package favorites

import (
	"strings"

	"github.com/mauv0809/commander-league/internal/identity"
	"github.com/mauv0809/commander-league/internal/match"
)

// Favorites maps each player identity to the deck they played most often.
// It is advisory: used to suggest a deck when a new game is recorded.
type Favorites struct {
	ByID   map[int64]string  `json:"byId"`
	ByName map[string]string `json:"byName"`
}

// tally counts deck usage for one identity in insertion order.
type tally struct {
	order   []string
	counts  map[string]int
	display map[string]string
}

func newTally() *tally {
	return &tally{counts: make(map[string]int), display: make(map[string]string)}
}

func (t *tally) add(deck string) {
	key := identity.Normalize(deck)
	if _, seen := t.counts[key]; !seen {
		t.order = append(t.order, key)
		t.display[key] = deck
	}
	t.counts[key]++
}

// favorite walks decks in first-seen order; only a strictly higher count
// replaces the current pick, so ties go to the earlier deck.
func (t *tally) favorite() string {
	best, bestCount := "", 0
	for _, key := range t.order {
		if c := t.counts[key]; c > bestCount {
			best, bestCount = key, c
		}
	}
	return t.display[best]
}

// Build counts every seat of every match (legacy opponents included) per
// player identity and deck, then picks each identity's favorite. Seats with a
// blank deck are ignored.
func Build(matches []match.Match) Favorites {
	byID := make(map[int64]*tally)
	byName := make(map[string]*tally)

	for _, m := range matches {
		for _, seat := range m.Seats {
			deck := strings.TrimSpace(seat.Deck)
			if deck == "" || !seat.HasPlayer {
				continue
			}
			if seat.Player.HasID {
				t, ok := byID[seat.Player.ID]
				if !ok {
					t = newTally()
					byID[seat.Player.ID] = t
				}
				t.add(deck)
			}
			if name := identity.Normalize(seat.Player.Name); name != "" {
				t, ok := byName[name]
				if !ok {
					t = newTally()
					byName[name] = t
				}
				t.add(deck)
			}
		}
	}

	fav := Favorites{
		ByID:   make(map[int64]string, len(byID)),
		ByName: make(map[string]string, len(byName)),
	}
	for id, t := range byID {
		fav.ByID[id] = t.favorite()
	}
	for name, t := range byName {
		fav.ByName[name] = t.favorite()
	}
	return fav
}

// For returns the favorite deck of id, looking up the numeric id first and
// the normalized name second.
func (f Favorites) For(id identity.Identity) (string, bool) {
	if id.HasID {
		if deck, ok := f.ByID[id.ID]; ok {
			return deck, true
		}
	}
	if name := identity.Normalize(id.Name); name != "" {
		if deck, ok := f.ByName[name]; ok {
			return deck, true
		}
	}
	return "", false
}
