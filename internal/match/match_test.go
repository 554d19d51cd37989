package match

import (
	"testing"
	"time"

	"github.com/mauv0809/commander-league/internal/identity"
	"github.com/mauv0809/commander-league/internal/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func TestNormalize_Seats(t *testing.T) {
	m := Normalize(record.Record{
		"id":       "m-1",
		"format":   "Competitive",
		"playedAt": "2025-07-09T18:00:00Z",
		"seats": []any{
			map[string]any{"player": 1, "deck": "Rona", "result": "win"},
			map[string]any{"player": map[string]any{"playerId": "2", "name": "Kess Fan"}, "deck": map[string]any{"deckName": "Kess"}, "result": "loss"},
			map[string]any{"playerName": "Guest", "commander": "Atraxa", "isWinner": false},
		},
	})

	assert.Equal(t, "m-1", m.ID)
	assert.False(t, m.IsCasual())
	assert.Equal(t, time.Date(2025, 7, 9, 18, 0, 0, 0, time.UTC), m.PlayedAt)
	require.Len(t, m.Seats, 3)

	assert.Equal(t, "id:1", m.Seats[0].Player.Key())
	assert.Equal(t, "Rona", m.Seats[0].Deck)
	assert.Equal(t, "win", m.Seats[0].Result)

	assert.Equal(t, "id:2", m.Seats[1].Player.Key())
	assert.Equal(t, "Kess Fan", m.Seats[1].Player.Name)
	assert.Equal(t, "Kess", m.Seats[1].Deck)

	assert.Equal(t, "name:guest", m.Seats[2].Player.Key())
	assert.Equal(t, "Atraxa", m.Seats[2].Deck)
	require.NotNil(t, m.Seats[2].Win)
	assert.False(t, *m.Seats[2].Win)
}

func TestNormalize_LegacyFlatShape(t *testing.T) {
	m := Normalize(record.Record{
		"matchId":        42,
		"playerId":       "5",
		"playerName":     "Alice",
		"deckName":       "Mono Red",
		"playerWin":      true,
		"opponentName":   "Bob",
		"opponentDeck":   "Izzet",
		"opponent2Id":    9,
		"opponent2Name":  "Carol",
		"opponent2Deck":  "Golgari",
		"opponent3Name":  "  ",
		"format":         "casual-edh",
		"date":           "2025-01-02",
		"winnerName":     "Alice",
		"someOtherField": "ignored",
	})

	assert.Equal(t, "42", m.ID)
	assert.True(t, m.IsCasual())
	require.True(t, m.HasPrimary)
	require.Len(t, m.Seats, 3, "blank opponent slots are not seats")

	assert.Equal(t, "id:5", m.Seats[0].Player.Key())
	assert.Equal(t, "Mono Red", m.Seats[0].Deck)
	assert.Nil(t, m.Seats[0].Win, "primary seat relies on the match-level flag")

	assert.Equal(t, "name:bob", m.Seats[1].Player.Key())
	assert.Equal(t, "Izzet", m.Seats[1].Deck)

	assert.Equal(t, "id:9", m.Seats[2].Player.Key())
	assert.Equal(t, "Carol", m.Seats[2].Player.Name)
	assert.Equal(t, "Golgari", m.Seats[2].Deck)

	o, ok := ResolveSeatResult(m.Seats[0], m)
	require.True(t, ok)
	assert.Equal(t, OutcomeWin, o)

	// Bob has no result of their own, is not the winner and the match-level
	// result is empty, so nothing applies.
	_, ok = ResolveSeatResult(m.Seats[1], m)
	assert.False(t, ok)
}

func TestIsCasual(t *testing.T) {
	for format, want := range map[string]bool{
		"Casual-EDH":  true,
		"casual":      true,
		"CASUAL 1v1":  true,
		"":            false,
		"Competitive": false,
		"cEDH":        false,
	} {
		assert.Equal(t, want, Match{Format: format}.IsCasual(), format)
	}
}

func TestClassifyResult(t *testing.T) {
	cases := map[string]Outcome{
		"WIN":        OutcomeWin,
		"Winner":     OutcomeWin,
		"loss":       OutcomeLoss,
		"Tie":        OutcomeTie,
		"tie - win?": OutcomeTie,
		"win/loss":   OutcomeWin,
	}
	for text, want := range cases {
		got, ok := ClassifyResult(text)
		require.True(t, ok, text)
		assert.Equal(t, want, got, text)
	}
	_, ok := ClassifyResult("draw")
	assert.False(t, ok)
	_, ok = ClassifyResult("")
	assert.False(t, ok)
}

func TestResolveSeatResult(t *testing.T) {
	alice := Seat{Player: identity.FromName("Alice"), HasPlayer: true}
	bob := Seat{Player: identity.FromName("Bob"), HasPlayer: true}

	t.Run("explicit result beats a conflicting boolean", func(t *testing.T) {
		s := alice
		s.Result = "WIN"
		s.Win = boolPtr(false)
		m := Match{Primary: alice.Player, HasPrimary: true, PlayerWin: boolPtr(false)}
		o, ok := ResolveSeatResult(s, m)
		require.True(t, ok)
		assert.Equal(t, OutcomeWin, o)
	})

	t.Run("tie flag before win flag", func(t *testing.T) {
		s := alice
		s.Tie = boolPtr(true)
		s.Win = boolPtr(true)
		o, _ := ResolveSeatResult(s, Match{})
		assert.Equal(t, OutcomeTie, o)
	})

	t.Run("false tie flag falls through", func(t *testing.T) {
		s := alice
		s.Tie = boolPtr(false)
		s.Win = boolPtr(false)
		o, _ := ResolveSeatResult(s, Match{})
		assert.Equal(t, OutcomeLoss, o)
	})

	t.Run("match-level tie", func(t *testing.T) {
		o, ok := ResolveSeatResult(bob, Match{Result: "It was a TIE", WinnerName: "Bob"})
		require.True(t, ok)
		assert.Equal(t, OutcomeTie, o)
	})

	t.Run("primary player uses the match win flag", func(t *testing.T) {
		m := Match{Primary: alice.Player, HasPrimary: true, PlayerWin: boolPtr(false), WinnerName: "Alice"}
		o, _ := ResolveSeatResult(alice, m)
		assert.Equal(t, OutcomeLoss, o)
	})

	t.Run("winner name match", func(t *testing.T) {
		o, ok := ResolveSeatResult(bob, Match{WinnerName: "  bob "})
		require.True(t, ok)
		assert.Equal(t, OutcomeWin, o)
	})

	t.Run("someone else won", func(t *testing.T) {
		o, ok := ResolveSeatResult(bob, Match{WinnerName: "Alice", Result: "win"})
		require.True(t, ok)
		assert.Equal(t, OutcomeLoss, o)
	})

	t.Run("nothing applies", func(t *testing.T) {
		_, ok := ResolveSeatResult(bob, Match{WinnerName: "Alice"})
		assert.False(t, ok)
		_, ok = ResolveSeatResult(Seat{}, Match{})
		assert.False(t, ok)
	})
}
