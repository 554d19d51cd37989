package match

import (
	"time"

	"github.com/mauv0809/commander-league/internal/identity"
	"github.com/mauv0809/commander-league/internal/record"
)

// Outcome is the canonical result of one seat.
type Outcome string

const (
	OutcomeWin  Outcome = "win"
	OutcomeLoss Outcome = "loss"
	OutcomeTie  Outcome = "tie"
)

// Seat is one participant's slot within a match.
type Seat struct {
	Player    identity.Identity
	HasPlayer bool
	Deck      string
	Result    string
	Tie       *bool
	Win       *bool
}

// Match is the canonical shape every match record is normalized into before
// any statistics are derived from it.
type Match struct {
	ID         string
	Seats      []Seat
	Format     string
	PlayedAt   time.Time
	Result     string
	WinnerName string
	Primary    identity.Identity
	HasPrimary bool
	PlayerWin  *bool
	Raw        record.Record
}

// Field spellings observed on match and seat records.
var (
	MatchIDKeys    = record.Keys{"id", "matchId", "matchID", "match_id"}
	SeatsKeys      = record.Keys{"seats", "participants", "players"}
	FormatKeys     = record.Keys{"format", "gameFormat", "game_format", "matchType", "type"}
	PlayedAtKeys   = record.Keys{"playedAt", "played_at", "date", "datePlayed", "createdAt", "created_at"}
	MatchResultKey = record.Keys{"result", "matchResult", "match_result", "outcome"}
	WinnerKeys     = record.Keys{"winnerName", "winner_name", "winner"}
	PlayerWinKeys  = record.Keys{"playerWin", "player_win", "win", "won"}

	SeatDeckKeys   = record.Keys{"deck", "deckName", "deck_name", "commander"}
	SeatResultKeys = record.Keys{"result", "outcome"}
	SeatTieKeys    = record.Keys{"tie", "isTie", "is_tie", "draw", "isDraw"}
	SeatWinKeys    = record.Keys{"win", "won", "isWinner", "is_winner", "winner"}
	SeatPlayerKeys = record.Keys{"player", "participant"}

	PrimaryDeckKeys   = record.Keys{"deckName", "deck_name", "deck", "playerDeck", "commander"}
	PrimaryResultKeys = record.Keys{"playerResult", "player_result"}
)

// MaxLegacyOpponents is how many opponent slots the flat legacy shape carries.
const MaxLegacyOpponents = 3
