package league

import (
	"github.com/mauv0809/commander-league/internal/processor"
	"github.com/mauv0809/commander-league/internal/record"
	"github.com/mauv0809/commander-league/internal/stats"
	"github.com/mauv0809/commander-league/internal/store"
)

// FailureReason tells the caller which step of an operation failed.
type FailureReason string

const (
	ReasonValidation FailureReason = "validation"
	ReasonNotFound   FailureReason = "not_found"
	ReasonStore      FailureReason = "store"
	ReasonReconcile  FailureReason = "reconcile"
)

// Result is the outcome of a league operation, ready to show to a user.
type Result struct {
	OK      bool              `json:"ok"`
	Reason  FailureReason     `json:"reason,omitempty"`
	Message string            `json:"message"`
	Record  record.Record     `json:"record,omitempty"`
	Report  *processor.Report `json:"report,omitempty"`
}

// Standing is one row of the league table.
type Standing struct {
	Key           string         `json:"key"`
	Name          string         `json:"name"`
	Counters      stats.Counters `json:"counters"`
	Games         int            `json:"games"`
	WinPercentage float64        `json:"winPercentage"`
	FavoriteDeck  string         `json:"favoriteDeck,omitempty"`
}

// Service is the entry point the HTTP API and CLI use.
type Service struct {
	store      store.Store
	reconciler Reconciler
}
