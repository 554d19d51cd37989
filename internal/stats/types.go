package stats

import "github.com/mauv0809/commander-league/internal/record"

// Delta is a signed per-statistic adjustment derived from one match. It is
// applied as-is when a match is recorded and inverted when it is deleted.
type Delta struct {
	Wins         int `json:"wins" msgpack:"wins"`
	Losses       int `json:"losses" msgpack:"losses"`
	Ties         int `json:"ties" msgpack:"ties"`
	CasualWins   int `json:"casualWins" msgpack:"casualWins"`
	CasualLosses int `json:"casualLosses" msgpack:"casualLosses"`
}

// Counters are the stored aggregate statistics of a player or deck. Every
// field is kept at or above zero.
type Counters struct {
	Wins         int `json:"wins" msgpack:"wins"`
	Losses       int `json:"losses" msgpack:"losses"`
	Ties         int `json:"ties" msgpack:"ties"`
	CasualWins   int `json:"casualWins" msgpack:"casualWins"`
	CasualLosses int `json:"casualLosses" msgpack:"casualLosses"`
}

// Counter field spellings seen on stored records, canonical spelling first.
var (
	WinsKeys         = record.Keys{"wins", "Wins", "winCount", "totalWins", "win_total"}
	LossesKeys       = record.Keys{"losses", "Losses", "lossCount", "totalLosses", "loss_total"}
	TiesKeys         = record.Keys{"ties", "Ties", "tieCount", "totalTies", "tie_total", "draws"}
	CasualWinsKeys   = record.Keys{"casualWins", "CasualWins", "casual_wins", "casualWinCount"}
	CasualLossesKeys = record.Keys{"casualLosses", "CasualLosses", "casual_losses", "casualLossCount"}
)
