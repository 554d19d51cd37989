package stats

import "github.com/mauv0809/commander-league/internal/record"

// ReadCounters reads the counters of a stored player or deck through the
// known spellings. Missing or negative values read as zero.
func ReadCounters(rec record.Record) Counters {
	return Counters{
		Wins:         readCount(rec, WinsKeys),
		Losses:       readCount(rec, LossesKeys),
		Ties:         readCount(rec, TiesKeys),
		CasualWins:   readCount(rec, CasualWinsKeys),
		CasualLosses: readCount(rec, CasualLossesKeys),
	}
}

func readCount(rec record.Record, keys record.Keys) int {
	n, ok := rec.Number(keys)
	if !ok || n < 0 {
		return 0
	}
	return int(n)
}

// Apply adds d to c and clamps every component at zero.
func (c Counters) Apply(d Delta) Counters {
	return Counters{
		Wins:         floor(c.Wins + d.Wins),
		Losses:       floor(c.Losses + d.Losses),
		Ties:         floor(c.Ties + d.Ties),
		CasualWins:   floor(c.CasualWins + d.CasualWins),
		CasualLosses: floor(c.CasualLosses + d.CasualLosses),
	}
}

func floor(n int) int {
	return max(n, 0)
}

// Write returns a copy of rec with the counters in canonical shape: alias
// spellings are dropped and the canonical keys set.
func (c Counters) Write(rec record.Record) record.Record {
	out := rec.Clone()
	out.Delete(WinsKeys)
	out.Delete(LossesKeys)
	out.Delete(TiesKeys)
	out.Delete(CasualWinsKeys)
	out.Delete(CasualLossesKeys)
	out[WinsKeys[0]] = c.Wins
	out[LossesKeys[0]] = c.Losses
	out[TiesKeys[0]] = c.Ties
	out[CasualWinsKeys[0]] = c.CasualWins
	out[CasualLossesKeys[0]] = c.CasualLosses
	return out
}

// Games is the number of recorded games.
func (c Counters) Games() int {
	return c.Wins + c.Losses + c.Ties
}

// WinPercentage is wins over all recorded games, 0 when nothing was played.
func (c Counters) WinPercentage() float64 {
	games := c.Games()
	if games == 0 {
		return 0
	}
	return float64(c.Wins) / float64(games) * 100
}
