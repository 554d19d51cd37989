package processor

import (
	"github.com/charmbracelet/log"
	"github.com/mauv0809/commander-league/internal/identity"
	"github.com/mauv0809/commander-league/internal/match"
	"github.com/mauv0809/commander-league/internal/record"
	"github.com/mauv0809/commander-league/internal/stats"
	"github.com/mauv0809/commander-league/internal/store"
)

type entity struct {
	key   string
	id    identity.Identity
	owner identity.Identity
	rec   record.Record
}

type index struct {
	collection store.Collection
	entities   []entity
}

func newIndex(c store.Collection, recs []record.Record) *index {
	kind := store.KindOf(c)
	idx := &index{collection: c}
	for _, rec := range recs {
		key, ok := store.KeyOf(rec, kind)
		if !ok {
			log.Warn("Ignoring stored record without id or name", "collection", c)
			continue
		}
		id, _ := identity.Resolve(rec, kind)
		owner, _ := identity.Resolve(rec, identity.Owner)
		idx.entities = append(idx.entities, entity{key: key, id: id, owner: owner, rec: rec})
	}
	return idx
}

// player finds the stored player for a seat: by id first, then by
// case-insensitive display name. Two stored players sharing a name are
// indistinguishable to the name fallback and the first one wins.
func (idx *index) player(id identity.Identity) (entity, bool) {
	if id.HasID {
		for _, e := range idx.entities {
			if e.id.HasID && e.id.ID == id.ID {
				return e, true
			}
		}
	}
	return idx.byName(id.Name)
}

// deck finds the stored deck by normalized name, preferring one owned by the
// seat's player.
func (idx *index) deck(name string, owners ...identity.Identity) (entity, bool) {
	want := identity.Normalize(name)
	if want == "" {
		return entity{}, false
	}
	var candidates []entity
	for _, e := range idx.entities {
		if identity.Normalize(e.id.Name) == want {
			candidates = append(candidates, e)
		}
	}
	if len(candidates) == 0 {
		return entity{}, false
	}
	for _, c := range candidates {
		for _, o := range owners {
			if o.Valid() && c.owner.Same(o) {
				return c, true
			}
		}
	}
	return candidates[0], true
}

func (idx *index) byName(name string) (entity, bool) {
	want := identity.Normalize(name)
	if want == "" {
		return entity{}, false
	}
	for _, e := range idx.entities {
		if identity.Normalize(e.id.Name) == want {
			return e, true
		}
	}
	return entity{}, false
}

type pending struct {
	acc      *stats.Accumulator
	entities map[string]entity
}

func newPending() *pending {
	return &pending{acc: stats.NewAccumulator(), entities: make(map[string]entity)}
}

func (p *pending) add(e entity, d stats.Delta) {
	p.acc.Add(e.key, d)
	p.entities[e.key] = e
}

func (p *pending) updates(c store.Collection) []Update {
	var out []Update
	for _, key := range p.acc.Keys() {
		d, _ := p.acc.Get(key)
		if d.IsZero() {
			continue
		}
		e := p.entities[key]
		before := stats.ReadCounters(e.rec)
		after := before.Apply(d)
		out = append(out, Update{
			Collection: c,
			Key:        key,
			Name:       e.id.String(),
			Record:     after.Write(e.rec),
			Before:     before,
			After:      after,
			Delta:      d,
		})
	}
	return out
}

// BuildPlan computes the per-entity updates a match causes against the given
// player and deck snapshots. It does not touch the store.
func BuildPlan(m match.Match, players, decks []record.Record, direction Direction) Plan {
	plan := Plan{Direction: direction, MatchID: m.ID, Casual: m.IsCasual()}
	playerIdx := newIndex(store.Players, players)
	deckIdx := newIndex(store.Decks, decks)
	playerDeltas := newPending()
	deckDeltas := newPending()

	for i, seat := range m.Seats {
		var (
			stored      entity
			storedFound bool
		)
		if seat.HasPlayer {
			stored, storedFound = playerIdx.player(seat.Player)
			// The winner is recorded by name, so a seat known only by id
			// borrows the stored display name.
			if storedFound && seat.Player.Name == "" {
				seat.Player.Name = stored.id.Name
			}
		}

		outcome, ok := match.ResolveSeatResult(seat, m)
		if !ok {
			log.Debug("Skipping seat without a resolvable result", "matchID", m.ID, "seat", i)
			plan.SkippedSeats++
			continue
		}
		delta := stats.Build(outcome, plan.Casual)
		if direction == DirectionRollback {
			delta = delta.Invert()
		}

		var (
			owners  []identity.Identity
			matched bool
		)
		if seat.HasPlayer {
			owners = append(owners, seat.Player)
			if storedFound {
				playerDeltas.add(stored, delta)
				owners = append(owners, stored.id)
				matched = true
			}
		}
		if d, ok := deckIdx.deck(seat.Deck, owners...); ok {
			deckDeltas.add(d, delta)
			matched = true
		}
		if !matched {
			log.Debug("Skipping seat without a stored player or deck", "matchID", m.ID, "seat", i, "player", seat.Player.String(), "deck", seat.Deck)
			plan.SkippedSeats++
		}
	}

	plan.Updates = append(playerDeltas.updates(store.Players), deckDeltas.updates(store.Decks)...)
	return plan
}
