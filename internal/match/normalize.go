package match

import (
	"fmt"
	"strings"
	"time"

	"github.com/mauv0809/commander-league/internal/identity"
	"github.com/mauv0809/commander-league/internal/record"
)

// Normalize converts any match record into the canonical Match. When the
// record carries no seats list, the seats are synthesized from the legacy
// flat "primary player + opponents" fields.
func Normalize(rec record.Record) Match {
	m := Match{Raw: rec}
	if rec == nil {
		return m
	}
	m.ID, _ = rec.Key(MatchIDKeys)
	m.Format, _ = rec.Text(FormatKeys)
	m.Result, _ = rec.Text(MatchResultKey)
	m.WinnerName, _ = rec.Text(WinnerKeys)
	m.PlayedAt = playedAt(rec)
	m.Primary, m.HasPrimary = identity.Resolve(rec, identity.Primary)
	if v, ok := rec.Flag(PlayerWinKeys); ok {
		m.PlayerWin = &v
	}

	if seats, ok := rec.List(SeatsKeys); ok && len(seats) > 0 {
		for _, s := range seats {
			m.Seats = append(m.Seats, seatFromRecord(s))
		}
		return m
	}
	m.Seats = legacySeats(rec, m)
	return m
}

// NormalizeAll normalizes a batch of match records.
func NormalizeAll(recs []record.Record) []Match {
	out := make([]Match, 0, len(recs))
	for _, rec := range recs {
		out = append(out, Normalize(rec))
	}
	return out
}

// IsCasual reports whether the format names a casual game. Anything else,
// including an empty format, is competitive.
func (m Match) IsCasual() bool {
	return strings.Contains(strings.ToLower(m.Format), "casual")
}

func seatFromRecord(rec record.Record) Seat {
	var s Seat
	if nested, ok := rec.Nested(SeatPlayerKeys); ok {
		s.Player, s.HasPlayer = identity.Resolve(nested, identity.Player)
	} else {
		s.Player, s.HasPlayer = identity.Resolve(rec, identity.Seat)
	}
	if deck, ok := rec.Nested(record.Keys{"deck"}); ok {
		s.Deck, _ = deck.Text(identity.Deck.NameKeys)
	} else {
		s.Deck, _ = rec.Text(SeatDeckKeys)
	}
	s.Result, _ = rec.Text(SeatResultKeys)
	if v, ok := rec.Flag(SeatTieKeys); ok {
		s.Tie = &v
	}
	if v, ok := rec.Flag(SeatWinKeys); ok {
		s.Win = &v
	}
	return s
}

// legacySeats builds seats from the flat shape. The primary seat carries no
// win flag of its own; its result comes from the match-level flag through the
// primary-identity rule.
func legacySeats(rec record.Record, m Match) []Seat {
	var seats []Seat
	if m.HasPrimary {
		s := Seat{Player: m.Primary, HasPlayer: true}
		s.Deck, _ = rec.Text(PrimaryDeckKeys)
		s.Result, _ = rec.Text(PrimaryResultKeys)
		seats = append(seats, s)
	}
	for i := 1; i <= MaxLegacyOpponents; i++ {
		kind := opponentKind(i)
		id, ok := identity.Resolve(rec, kind)
		if !ok {
			continue
		}
		s := Seat{Player: id, HasPlayer: true}
		s.Deck, _ = rec.Text(opponentKeys(i, "Deck", "DeckName", "_deck"))
		s.Result, _ = rec.Text(opponentKeys(i, "Result", "_result"))
		if v, ok := rec.Flag(opponentKeys(i, "Win", "Won", "_win")); ok {
			s.Win = &v
		}
		seats = append(seats, s)
	}
	return seats
}

func opponentKind(i int) identity.Kind {
	return identity.Kind{
		Name:     fmt.Sprintf("opponent%d", i),
		IDKeys:   opponentKeys(i, "Id", "ID", "_id", ""),
		NameKeys: opponentKeys(i, "Name", "_name", ""),
	}
}

// opponentKeys spells a field of opponent slot i: "opponent2Deck",
// "opponent2_deck" and so on. Slot 1 also answers to the unnumbered
// "opponentDeck" spelling older records used.
func opponentKeys(i int, suffixes ...string) record.Keys {
	var keys record.Keys
	for _, sfx := range suffixes {
		keys = append(keys, fmt.Sprintf("opponent%d%s", i, sfx))
	}
	if i == 1 {
		for _, sfx := range suffixes {
			keys = append(keys, "opponent"+sfx)
		}
	}
	return keys
}

var timeLayouts = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02"}

func playedAt(rec record.Record) time.Time {
	if s, ok := rec.Text(PlayedAtKeys); ok {
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t
			}
		}
	}
	if n, ok := rec.Number(PlayedAtKeys); ok {
		// Browser clients send epoch milliseconds.
		if n > 1e12 {
			return time.UnixMilli(n).UTC()
		}
		return time.Unix(n, 0).UTC()
	}
	return time.Time{}
}
