package journal

import "context"

// Journal keeps a durable trail of reconciliation passes so partially
// applied ones can be found and repaired by hand.
type Journal interface {
	Record(ctx context.Context, entry Entry) error
	List(ctx context.Context, limit int) ([]Entry, error)
}
