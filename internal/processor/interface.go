package processor

import (
	"context"

	"github.com/mauv0809/commander-league/internal/record"
	"github.com/mauv0809/commander-league/internal/store"
)

// Store defines the store operations required by the processor.
type Store interface {
	List(ctx context.Context, c store.Collection) ([]record.Record, error)
	Update(ctx context.Context, c store.Collection, key string, rec record.Record) (record.Record, error)
}
