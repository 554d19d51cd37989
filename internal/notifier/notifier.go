package notifier

import (
	"github.com/mauv0809/commander-league/internal/league"
	"github.com/mauv0809/commander-league/internal/processor"
)

// Notifier defines a high-level interface for sending notifications about league events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// For recorded and deleted matches
	SendReconciliation(report processor.Report, dryRun bool) error
	// For announcing the league table
	SendStandings(rows []league.Standing, dryRun bool) error

	// For formatting responses for slash commands
	FormatStandingsResponse(rows []league.Standing) (any, error)
	FormatPlayerResponse(row *league.Standing, query string) (any, error)
}
