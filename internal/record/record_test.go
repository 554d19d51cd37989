package record

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumber(t *testing.T) {
	keys := Keys{"id", "playerID", "playerId"}

	t.Run("accepts numbers of any decoded type", func(t *testing.T) {
		for _, v := range []any{7, int64(7), float64(7), json.Number("7"), "7", " 7 ", "7.0"} {
			n, ok := Record{"playerId": v}.Number(keys)
			require.True(t, ok, "value %#v", v)
			assert.Equal(t, int64(7), n)
		}
	})

	t.Run("skips unusable keys and takes the next spelling", func(t *testing.T) {
		n, ok := Record{"id": "abc", "playerID": nil, "playerId": "12"}.Number(keys)
		require.True(t, ok)
		assert.Equal(t, int64(12), n)
	})

	t.Run("respects key priority", func(t *testing.T) {
		n, ok := Record{"id": 1, "playerId": 2}.Number(keys)
		require.True(t, ok)
		assert.Equal(t, int64(1), n)
	})

	t.Run("rejects fractions and blanks", func(t *testing.T) {
		_, ok := Record{"id": 1.5, "playerID": "  ", "playerId": true}.Number(keys)
		assert.False(t, ok)
	})
}

func TestText(t *testing.T) {
	s, ok := Record{"name": "   ", "playerName": "  Alice "}.Text(Keys{"name", "playerName"})
	require.True(t, ok)
	assert.Equal(t, "Alice", s)

	_, ok = Record{"name": 3}.Text(Keys{"name"})
	assert.False(t, ok)
}

func TestFlag(t *testing.T) {
	v, ok := Record{"win": "TRUE"}.Flag(Keys{"win"})
	require.True(t, ok)
	assert.True(t, v)

	v, ok = Record{"won": "maybe", "win": false}.Flag(Keys{"won", "win"})
	require.True(t, ok)
	assert.False(t, v)

	_, ok = Record{}.Flag(Keys{"win"})
	assert.False(t, ok)
}

func TestKey(t *testing.T) {
	k, ok := Record{"id": json.Number("42")}.Key(Keys{"id"})
	require.True(t, ok)
	assert.Equal(t, "42", k)

	k, ok = Record{"name": " Kess "}.Key(Keys{"id", "name"})
	require.True(t, ok)
	assert.Equal(t, "Kess", k)
}

func TestDecodeKeepsNumbers(t *testing.T) {
	recs, err := DecodeList(strings.NewReader(`[{"id": 9007199254740993, "seats": [{"player": 1}]}]`))
	require.NoError(t, err)
	require.Len(t, recs, 1)

	n, ok := recs[0].Number(Keys{"id"})
	require.True(t, ok)
	assert.Equal(t, int64(9007199254740993), n)

	seats, ok := recs[0].List(Keys{"seats"})
	require.True(t, ok)
	require.Len(t, seats, 1)
	p, ok := seats[0].Number(Keys{"player"})
	require.True(t, ok)
	assert.Equal(t, int64(1), p)
}

func TestCloneIsShallowCopy(t *testing.T) {
	orig := Record{"wins": 1}
	c := orig.Clone()
	c["wins"] = 2
	assert.Equal(t, 1, orig["wins"])
}
