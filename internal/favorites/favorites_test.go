package favorites

import (
	"testing"

	"github.com/mauv0809/commander-league/internal/identity"
	"github.com/mauv0809/commander-league/internal/match"
	"github.com/mauv0809/commander-league/internal/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seatMatch(player, deck string) match.Match {
	return match.Match{Seats: []match.Seat{{Player: identity.FromName(player), HasPlayer: true, Deck: deck}}}
}

func TestBuild(t *testing.T) {
	t.Run("most used deck wins", func(t *testing.T) {
		fav := Build([]match.Match{
			seatMatch("A", "Mono Red"),
			seatMatch("A", "Mono Red"),
			seatMatch("A", "Izzet"),
		})
		assert.Equal(t, "Mono Red", fav.ByName["a"])
	})

	t.Run("ties favor the first deck seen", func(t *testing.T) {
		fav := Build([]match.Match{
			seatMatch("A", "Izzet"),
			seatMatch("A", "Mono Red"),
			seatMatch("A", "Mono Red"),
			seatMatch("A", "Izzet"),
		})
		assert.Equal(t, "Izzet", fav.ByName["a"])
	})

	t.Run("blank decks are ignored", func(t *testing.T) {
		fav := Build([]match.Match{
			seatMatch("A", "  "),
			seatMatch("A", "  "),
			seatMatch("A", "Izzet"),
		})
		assert.Equal(t, "Izzet", fav.ByName["a"])
		fav = Build([]match.Match{seatMatch("B", "")})
		assert.NotContains(t, fav.ByName, "b")
	})

	t.Run("legacy opponents and ids count", func(t *testing.T) {
		legacy := match.NormalizeAll([]record.Record{
			{"playerId": 1, "playerName": "Alice", "deckName": "Rona", "opponentName": "Bob", "opponentDeck": "Kess"},
			{"playerId": 1, "deckName": "Rona", "opponent2Name": "Bob", "opponent2Deck": "Kess"},
			{"playerId": "1", "deckName": "Tymna"},
		})
		fav := Build(legacy)
		assert.Equal(t, "Rona", fav.ByID[1])
		assert.Equal(t, "Rona", fav.ByName["alice"])
		assert.Equal(t, "Kess", fav.ByName["bob"])

		deck, ok := fav.For(identity.FromID(1))
		require.True(t, ok)
		assert.Equal(t, "Rona", deck)
		deck, ok = fav.For(identity.Identity{ID: 99, HasID: true, Name: "BOB"})
		require.True(t, ok)
		assert.Equal(t, "Kess", deck)
		_, ok = fav.For(identity.FromName("nobody"))
		assert.False(t, ok)
	})
}
