package store

import (
	"context"

	"github.com/mauv0809/commander-league/internal/record"
)

// Store is the external data store holding players, decks and matches. Every
// collection supports the same list/get/create/update/delete calls and
// exchanges loosely-shaped JSON records.
type Store interface {
	List(ctx context.Context, c Collection) ([]record.Record, error)
	Get(ctx context.Context, c Collection, key string) (record.Record, error)
	Create(ctx context.Context, c Collection, rec record.Record) (record.Record, error)
	Update(ctx context.Context, c Collection, key string, rec record.Record) (record.Record, error)
	Delete(ctx context.Context, c Collection, key string) error
}
