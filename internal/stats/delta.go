package stats

import "github.com/mauv0809/commander-league/internal/match"

// Build converts a resolved outcome into a delta. Exactly one outcome bucket
// is set; the casual field mirrors a win or loss when the match was casual.
func Build(outcome match.Outcome, casual bool) Delta {
	var d Delta
	switch outcome {
	case match.OutcomeTie:
		d.Ties = 1
	case match.OutcomeWin:
		d.Wins = 1
		if casual {
			d.CasualWins = 1
		}
	case match.OutcomeLoss:
		d.Losses = 1
		if casual {
			d.CasualLosses = 1
		}
	}
	return d
}

// Merge sums two deltas component-wise.
func Merge(a, b Delta) Delta {
	return Delta{
		Wins:         a.Wins + b.Wins,
		Losses:       a.Losses + b.Losses,
		Ties:         a.Ties + b.Ties,
		CasualWins:   a.CasualWins + b.CasualWins,
		CasualLosses: a.CasualLosses + b.CasualLosses,
	}
}

// Invert negates every component.
func (d Delta) Invert() Delta {
	return Delta{
		Wins:         -d.Wins,
		Losses:       -d.Losses,
		Ties:         -d.Ties,
		CasualWins:   -d.CasualWins,
		CasualLosses: -d.CasualLosses,
	}
}

// IsZero reports whether d changes nothing.
func (d Delta) IsZero() bool {
	return d == Delta{}
}

// Accumulator merges deltas per key and remembers the order keys were first
// seen in, so results are deterministic.
type Accumulator struct {
	order  []string
	deltas map[string]Delta
}

// NewAccumulator returns an empty accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{deltas: make(map[string]Delta)}
}

// Add merges d into the delta held for key.
func (a *Accumulator) Add(key string, d Delta) {
	cur, seen := a.deltas[key]
	if !seen {
		a.order = append(a.order, key)
	}
	a.deltas[key] = Merge(cur, d)
}

// Get returns the merged delta for key.
func (a *Accumulator) Get(key string) (Delta, bool) {
	d, ok := a.deltas[key]
	return d, ok
}

// Keys returns the keys in first-seen order.
func (a *Accumulator) Keys() []string {
	return append([]string(nil), a.order...)
}

// Len is the number of distinct keys.
func (a *Accumulator) Len() int {
	return len(a.order)
}
