package stats

import (
	"math/rand"
	"testing"

	"github.com/mauv0809/commander-league/internal/match"
	"github.com/mauv0809/commander-league/internal/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomDelta(r *rand.Rand) Delta {
	n := func() int { return r.Intn(11) - 5 }
	return Delta{Wins: n(), Losses: n(), Ties: n(), CasualWins: n(), CasualLosses: n()}
}

func TestMergeLaws(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		a, b, c := randomDelta(r), randomDelta(r), randomDelta(r)
		assert.Equal(t, Merge(a, b), Merge(b, a), "commutative")
		assert.Equal(t, Merge(Merge(a, b), c), Merge(a, Merge(b, c)), "associative")
		assert.True(t, Merge(a, a.Invert()).IsZero(), "inverse")
		assert.Equal(t, a, a.Invert().Invert())
	}
}

func TestBuild(t *testing.T) {
	cases := []struct {
		name    string
		outcome match.Outcome
		casual  bool
		want    Delta
	}{
		{"competitive win", match.OutcomeWin, false, Delta{Wins: 1}},
		{"casual win", match.OutcomeWin, true, Delta{Wins: 1, CasualWins: 1}},
		{"competitive loss", match.OutcomeLoss, false, Delta{Losses: 1}},
		{"casual loss", match.OutcomeLoss, true, Delta{Losses: 1, CasualLosses: 1}},
		{"competitive tie", match.OutcomeTie, false, Delta{Ties: 1}},
		{"casual tie has no casual variant", match.OutcomeTie, true, Delta{Ties: 1}},
		{"unknown outcome", match.Outcome("forfeit"), true, Delta{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Build(tc.outcome, tc.casual)
			assert.Equal(t, tc.want, got)
			if !got.IsZero() {
				assert.Equal(t, 1, got.Wins+got.Losses+got.Ties, "exactly one outcome bucket")
			}
		})
	}
}

func TestApplyClampsAtZero(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	for i := 0; i < 200; i++ {
		c := Counters{Wins: r.Intn(4), Losses: r.Intn(4), Ties: r.Intn(4), CasualWins: r.Intn(4), CasualLosses: r.Intn(4)}
		d := randomDelta(r)
		got := c.Apply(d)
		assert.Equal(t, max(0, c.Wins+d.Wins), got.Wins)
		assert.Equal(t, max(0, c.Losses+d.Losses), got.Losses)
		assert.Equal(t, max(0, c.Ties+d.Ties), got.Ties)
		assert.Equal(t, max(0, c.CasualWins+d.CasualWins), got.CasualWins)
		assert.Equal(t, max(0, c.CasualLosses+d.CasualLosses), got.CasualLosses)
	}

	rolledBack := Counters{}.Apply(Build(match.OutcomeWin, true).Invert())
	assert.Equal(t, Counters{}, rolledBack)
}

func TestAccumulator(t *testing.T) {
	acc := NewAccumulator()
	acc.Add("id:2", Delta{Losses: 1})
	acc.Add("id:1", Delta{Wins: 1})
	acc.Add("id:2", Delta{Ties: 1})

	assert.Equal(t, []string{"id:2", "id:1"}, acc.Keys())
	assert.Equal(t, 2, acc.Len())
	d, ok := acc.Get("id:2")
	require.True(t, ok)
	assert.Equal(t, Delta{Losses: 1, Ties: 1}, d)
	_, ok = acc.Get("id:3")
	assert.False(t, ok)
}

func TestReadAndWriteCounters(t *testing.T) {
	rec := record.Record{
		"id":           3,
		"name":         "Alice",
		"Wins":         "4",
		"lossCount":    2,
		"totalTies":    -1,
		"casual_wins":  1.0,
		"casualLosses": nil,
	}
	c := ReadCounters(rec)
	assert.Equal(t, Counters{Wins: 4, Losses: 2, CasualWins: 1}, c)

	out := c.Apply(Delta{Wins: 1}).Write(rec)
	assert.Equal(t, record.Record{
		"id":           3,
		"name":         "Alice",
		"wins":         5,
		"losses":       2,
		"ties":         0,
		"casualWins":   1,
		"casualLosses": 0,
	}, out)
	assert.Equal(t, "4", rec["Wins"], "input record is not modified")
}

func TestWinPercentage(t *testing.T) {
	assert.Equal(t, 0.0, Counters{}.WinPercentage())
	assert.InDelta(t, 50.0, Counters{Wins: 2, Losses: 1, Ties: 1}.WinPercentage(), 0.001)
	assert.InDelta(t, 100.0, Counters{Wins: 3, CasualWins: 3}.WinPercentage(), 0.001)
}
