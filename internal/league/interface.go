package league

import (
	"context"

	"github.com/mauv0809/commander-league/internal/match"
	"github.com/mauv0809/commander-league/internal/processor"
)

// Reconciler applies and reverts the statistics of a match.
type Reconciler interface {
	Apply(ctx context.Context, m match.Match) (processor.Report, error)
	Rollback(ctx context.Context, m match.Match) (processor.Report, error)
	Preview(ctx context.Context, m match.Match, direction processor.Direction) (processor.Report, error)
}
