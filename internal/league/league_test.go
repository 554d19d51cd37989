package league

import (
	"context"
	"errors"
	"testing"

	"github.com/mauv0809/commander-league/internal/journal"
	"github.com/mauv0809/commander-league/internal/metrics"
	"github.com/mauv0809/commander-league/internal/processor"
	"github.com/mauv0809/commander-league/internal/pubsub"
	"github.com/mauv0809/commander-league/internal/record"
	"github.com/mauv0809/commander-league/internal/stats"
	"github.com/mauv0809/commander-league/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupService() (*Service, *store.Mock) {
	st := store.NewMock()
	st.Seed(store.Players,
		record.Record{"id": 101, "name": "Ann", "wins": 1, "losses": 1},
		record.Record{"id": 102, "name": "Ben"},
	)
	st.Seed(store.Decks,
		record.Record{"id": 201, "name": "Rona", "playerId": 101},
		record.Record{"id": 202, "name": "Kess", "playerId": 102},
	)
	p := processor.New(st, metrics.NewMock(), pubsub.NewMock(), journal.NewMock())
	return New(st, p), st
}

func matchRecord() record.Record {
	return record.Record{
		"format": "Commander",
		"seats": []any{
			map[string]any{"playerId": 101, "deck": "Rona", "result": "win"},
			map[string]any{"playerId": 102, "deck": "Kess", "result": "loss"},
		},
	}
}

func counters(t *testing.T, st *store.Mock, c store.Collection, key string) stats.Counters {
	t.Helper()
	rec, ok := st.Find(c, key)
	require.True(t, ok)
	return stats.ReadCounters(rec)
}

func TestService_CreateMatch(t *testing.T) {
	ctx := context.Background()

	t.Run("records the match and applies its statistics", func(t *testing.T) {
		svc, st := setupService()

		res := svc.CreateMatch(ctx, matchRecord())
		require.True(t, res.OK, res.Message)
		assert.NotNil(t, res.Record["id"])
		require.NotNil(t, res.Report)
		assert.Equal(t, processor.DirectionApply, res.Report.Direction)

		assert.Equal(t, stats.Counters{Wins: 2, Losses: 1}, counters(t, st, store.Players, "101"))
		assert.Equal(t, stats.Counters{Losses: 1}, counters(t, st, store.Players, "102"))
		assert.Len(t, st.CreateCalls, 1)
	})

	t.Run("validation happens before any store call", func(t *testing.T) {
		svc, st := setupService()

		res := svc.CreateMatch(ctx, record.Record{})
		assert.False(t, res.OK)
		assert.Equal(t, ReasonValidation, res.Reason)

		res = svc.CreateMatch(ctx, record.Record{"seats": []any{map[string]any{"deck": "Rona"}}})
		assert.False(t, res.OK)
		assert.Equal(t, ReasonValidation, res.Reason)
		assert.Contains(t, res.Message, "seats")

		assert.Empty(t, st.CreateCalls)
		assert.Empty(t, st.ListCalls)
	})

	t.Run("store failure aborts before reconciliation", func(t *testing.T) {
		svc, st := setupService()
		st.CreateFunc = func(store.Collection, record.Record) (record.Record, error) {
			return nil, errors.New("connection refused")
		}

		res := svc.CreateMatch(ctx, matchRecord())
		assert.False(t, res.OK)
		assert.Equal(t, ReasonStore, res.Reason)
		assert.Empty(t, st.UpdateCalls)
	})

	t.Run("partial reconciliation is reported as one failure", func(t *testing.T) {
		svc, st := setupService()
		st.UpdateFunc = func(c store.Collection, key string, rec record.Record) (record.Record, error) {
			return nil, &store.StatusError{Op: "update", Collection: c, StatusCode: 500}
		}

		res := svc.CreateMatch(ctx, matchRecord())
		assert.False(t, res.OK)
		assert.Equal(t, ReasonReconcile, res.Reason)
		assert.Contains(t, res.Message, "saved")
		require.NotNil(t, res.Report)
		assert.NotEmpty(t, res.Report.Error)
	})
}

func TestService_DeleteMatch(t *testing.T) {
	ctx := context.Background()

	t.Run("reverts what create applied", func(t *testing.T) {
		svc, st := setupService()
		created := svc.CreateMatch(ctx, matchRecord())
		require.True(t, created.OK)
		key, ok := store.KeyOf(created.Record, store.KindOf(store.Matches))
		require.True(t, ok)

		res := svc.DeleteMatch(ctx, key)
		require.True(t, res.OK, res.Message)
		assert.Equal(t, processor.DirectionRollback, res.Report.Direction)

		assert.Equal(t, stats.Counters{Wins: 1, Losses: 1}, counters(t, st, store.Players, "101"))
		assert.Equal(t, stats.Counters{}, counters(t, st, store.Players, "102"))
		assert.Equal(t, stats.Counters{}, counters(t, st, store.Decks, "201"))
		_, ok = st.Find(store.Matches, key)
		assert.False(t, ok)
	})

	t.Run("missing match", func(t *testing.T) {
		svc, _ := setupService()
		res := svc.DeleteMatch(ctx, "404")
		assert.False(t, res.OK)
		assert.Equal(t, ReasonNotFound, res.Reason)
	})

	t.Run("blank key", func(t *testing.T) {
		svc, _ := setupService()
		assert.Equal(t, ReasonValidation, svc.DeleteMatch(ctx, "").Reason)
	})
}

func TestService_CreatePlayerAndDeck(t *testing.T) {
	ctx := context.Background()
	svc, st := setupService()

	res := svc.CreatePlayer(ctx, record.Record{"name": "Cid", "Wins": 9})
	require.True(t, res.OK, res.Message)
	assert.Equal(t, stats.Counters{}, stats.ReadCounters(res.Record), "new players start at zero")
	require.Len(t, st.CreateCalls, 1)
	assert.NotContains(t, st.CreateCalls[0].Record, "Wins")

	res = svc.CreatePlayer(ctx, record.Record{"name": "   "})
	assert.Equal(t, ReasonValidation, res.Reason)

	res = svc.CreateDeck(ctx, record.Record{"name": "Atraxa"})
	assert.Equal(t, ReasonValidation, res.Reason)
	assert.Contains(t, res.Message, "owner")

	res = svc.CreateDeck(ctx, record.Record{"name": "Atraxa", "ownerName": "Cid"})
	assert.True(t, res.OK, res.Message)
}

func TestService_DerivedViews(t *testing.T) {
	ctx := context.Background()
	svc, st := setupService()
	st.Seed(store.Matches,
		record.Record{"id": 1, "seats": []any{map[string]any{"playerId": 102, "deck": "Kess"}}},
		record.Record{"id": 2, "seats": []any{map[string]any{"playerId": 102, "deck": "Kess"}}},
		record.Record{"id": 3, "seats": []any{map[string]any{"playerId": 102, "deck": "Tymna"}}},
		record.Record{"id": 4, "playerName": "Ann", "deckName": "Rona"},
	)

	t.Run("win percentage", func(t *testing.T) {
		pct, err := svc.WinPercentage(ctx, "101")
		require.NoError(t, err)
		assert.Equal(t, 50.0, pct)

		pct, err = svc.WinPercentage(ctx, "102")
		require.NoError(t, err)
		assert.Equal(t, 0.0, pct)

		_, err = svc.WinPercentage(ctx, "999")
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("suggested deck", func(t *testing.T) {
		deck, ok, err := svc.SuggestDeck(ctx, "102")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "Kess", deck)

		deck, ok, err = svc.SuggestDeck(ctx, "ANN")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "Rona", deck)

		_, ok, err = svc.SuggestDeck(ctx, "nobody")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("suggested deck by id for seats recorded by name", func(t *testing.T) {
		deck, ok, err := svc.SuggestDeck(ctx, "101")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "Rona", deck)

		rows, err := svc.Standings(ctx)
		require.NoError(t, err)
		assert.Equal(t, deck, rows[0].FavoriteDeck)
	})

	t.Run("suggested deck store failure", func(t *testing.T) {
		st.GetFunc = func(c store.Collection, key string) (record.Record, error) {
			return nil, &store.StatusError{Op: "get", Collection: c, StatusCode: 503}
		}
		defer func() { st.GetFunc = nil }()

		_, _, err := svc.SuggestDeck(ctx, "101")
		require.Error(t, err)
		assert.NotErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("standings", func(t *testing.T) {
		rows, err := svc.Standings(ctx)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "Ann", rows[0].Name)
		assert.Equal(t, 2, rows[0].Games)
		assert.Equal(t, "Ben", rows[1].Name)
		assert.Equal(t, "Kess", rows[1].FavoriteDeck)
	})
}

func TestService_Player(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupService()

	row, ok, err := svc.Player(ctx, "  ben ")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "102", row.Key)

	row, ok, err = svc.Player(ctx, "101")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Ann", row.Name)

	_, ok, err = svc.Player(ctx, "zed")
	require.NoError(t, err)
	assert.False(t, ok)
}
