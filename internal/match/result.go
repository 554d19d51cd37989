package match

import (
	"strings"
)

// ClassifyResult maps free result text to an outcome by case-insensitive
// substring: "tie" is checked before "win", "win" before "loss".
func ClassifyResult(text string) (Outcome, bool) {
	t := strings.ToLower(text)
	switch {
	case t == "":
		return "", false
	case strings.Contains(t, "tie"):
		return OutcomeTie, true
	case strings.Contains(t, "win"):
		return OutcomeWin, true
	case strings.Contains(t, "loss"):
		return OutcomeLoss, true
	}
	return "", false
}

// ResolveSeatResult determines the outcome of seat within m. The first rule
// that applies wins:
//
//  1. the seat's own result text
//  2. the seat's tie flag
//  3. the seat's win flag (false means loss)
//  4. a match-level result that says tie
//  5. the match-level win flag, when the seat is the match's primary player
//  6. the recorded winner name: a matching seat won; otherwise, if the
//     match-level result says win, the seat lost
//
// The second return value is false when no rule applies; such seats
// contribute nothing.
func ResolveSeatResult(seat Seat, m Match) (Outcome, bool) {
	if o, ok := ClassifyResult(seat.Result); ok {
		return o, true
	}
	if seat.Tie != nil && *seat.Tie {
		return OutcomeTie, true
	}
	if seat.Win != nil {
		if *seat.Win {
			return OutcomeWin, true
		}
		return OutcomeLoss, true
	}

	matchOutcome, hasMatchOutcome := ClassifyResult(m.Result)
	if hasMatchOutcome && matchOutcome == OutcomeTie {
		return OutcomeTie, true
	}
	if m.HasPrimary && seat.HasPlayer && m.PlayerWin != nil && seat.Player.Same(m.Primary) {
		if *m.PlayerWin {
			return OutcomeWin, true
		}
		return OutcomeLoss, true
	}
	if winner := strings.TrimSpace(m.WinnerName); winner != "" && seat.Player.Name != "" &&
		strings.EqualFold(winner, strings.TrimSpace(seat.Player.Name)) {
		return OutcomeWin, true
	}
	if hasMatchOutcome && matchOutcome == OutcomeWin {
		return OutcomeLoss, true
	}
	return "", false
}
