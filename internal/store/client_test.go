package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mauv0809/commander-league/internal/identity"
	"github.com/mauv0809/commander-league/internal/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIClient(t *testing.T) {
	var lastBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/players":
			fmt.Fprintln(w, `[{"playerID": "7", "name": "Alice", "Wins": 3}, {"id": 8, "playerName": "Bob"}]`)
		case r.Method == http.MethodGet && r.URL.Path == "/matches/m 1":
			fmt.Fprintln(w, `{"id": "m 1", "format": "casual"}`)
		case r.Method == http.MethodPost && r.URL.Path == "/decks":
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&lastBody))
			w.WriteHeader(http.StatusCreated)
			fmt.Fprintln(w, `{"id": 12, "name": "Rona"}`)
		case r.Method == http.MethodPut && r.URL.Path == "/players/7":
			body, _ := io.ReadAll(r.Body)
			assert.NoError(t, json.Unmarshal(body, &lastBody))
			w.Write(body)
		case r.Method == http.MethodDelete && r.URL.Path == "/matches/3":
			w.WriteHeader(http.StatusNoContent)
		default:
			http.Error(w, `{"error":"nope"}`, http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := NewClientWithHTTP(server.URL+"/", server.Client())
	ctx := context.Background()

	t.Run("list", func(t *testing.T) {
		players, err := client.List(ctx, Players)
		require.NoError(t, err)
		require.Len(t, players, 2)
		id, ok := identity.Resolve(players[0], identity.Player)
		require.True(t, ok)
		assert.Equal(t, "id:7", id.Key())
	})

	t.Run("get escapes the key", func(t *testing.T) {
		m, err := client.Get(ctx, Matches, "m 1")
		require.NoError(t, err)
		assert.Equal(t, "casual", m["format"])
	})

	t.Run("create", func(t *testing.T) {
		created, err := client.Create(ctx, Decks, record.Record{"name": "Rona", "wins": 0})
		require.NoError(t, err)
		assert.Equal(t, "Rona", lastBody["name"])
		key, ok := KeyOf(created, identity.Deck)
		require.True(t, ok)
		assert.Equal(t, "12", key)
	})

	t.Run("update", func(t *testing.T) {
		updated, err := client.Update(ctx, Players, "7", record.Record{"id": 7, "wins": 4})
		require.NoError(t, err)
		assert.EqualValues(t, 4, lastBody["wins"])
		n, ok := updated.Number(record.Keys{"wins"})
		require.True(t, ok)
		assert.Equal(t, int64(4), n)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, client.Delete(ctx, Matches, "3"))
	})

	t.Run("non-OK status", func(t *testing.T) {
		_, err := client.Get(ctx, Players, "404")
		require.Error(t, err)
		var statusErr *StatusError
		require.True(t, errors.As(err, &statusErr))
		assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestKeyOf(t *testing.T) {
	key, ok := KeyOf(record.Record{"deckName": "Kess"}, identity.Deck)
	require.True(t, ok)
	assert.Equal(t, "Kess", key)

	key, ok = KeyOf(record.Record{"playerId": json.Number("5"), "name": "Eve"}, identity.Player)
	require.True(t, ok)
	assert.Equal(t, "5", key)

	_, ok = KeyOf(record.Record{}, identity.Player)
	assert.False(t, ok)
}

func TestMock(t *testing.T) {
	ctx := context.Background()
	m := NewMock()
	created, err := m.Create(ctx, Players, record.Record{"name": "Alice"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, created["id"])

	_, err = m.Update(ctx, Players, "1", record.Record{"id": 1, "name": "Alice", "wins": 1})
	require.NoError(t, err)
	rec, ok := m.Find(Players, "1")
	require.True(t, ok)
	assert.Equal(t, 1, rec["wins"])

	_, err = m.Update(ctx, Players, "2", record.Record{})
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, m.Delete(ctx, Players, "1"))
	_, ok = m.Find(Players, "1")
	assert.False(t, ok)
	assert.Len(t, m.UpdatesFor(Players), 2)
}
