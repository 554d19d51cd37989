package processor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/commander-league/internal/journal"
	"github.com/mauv0809/commander-league/internal/match"
	"github.com/mauv0809/commander-league/internal/metrics"
	"github.com/mauv0809/commander-league/internal/pubsub"
	"github.com/mauv0809/commander-league/internal/record"
	"github.com/mauv0809/commander-league/internal/store"
	"golang.org/x/sync/errgroup"
)

// New creates a new Processor.
func New(store Store, metrics metrics.Metrics, pubsub pubsub.PubSubClient, journal journal.Journal) *Processor {
	return &Processor{
		store:   store,
		pubsub:  pubsub,
		metrics: metrics,
		journal: journal,
		now:     time.Now,
	}
}

// Apply adds the statistics of a freshly recorded match to its players and decks.
func (p *Processor) Apply(ctx context.Context, m match.Match) (Report, error) {
	return p.reconcile(ctx, m, DirectionApply)
}

// Rollback removes the statistics of a deleted match, clamping every counter at 0.
func (p *Processor) Rollback(ctx context.Context, m match.Match) (Report, error) {
	return p.reconcile(ctx, m, DirectionRollback)
}

// Preview computes what a pass would change without writing anything.
func (p *Processor) Preview(ctx context.Context, m match.Match, direction Direction) (Report, error) {
	players, decks, err := p.snapshot(ctx)
	if err != nil {
		return Report{Direction: direction, MatchID: m.ID}, err
	}
	plan := BuildPlan(m, players, decks, direction)
	return newReport("", plan, make([]bool, len(plan.Updates))), nil
}

func (p *Processor) reconcile(ctx context.Context, m match.Match, direction Direction) (Report, error) {
	passID := uuid.NewString()
	startTime := p.now()
	dir := string(direction)
	log.Info("Starting reconciliation", "passID", passID, "direction", direction, "matchID", m.ID, "seats", len(m.Seats))

	players, decks, err := p.snapshot(ctx)
	if err != nil {
		report := Report{PassID: passID, Direction: direction, MatchID: m.ID, Error: err.Error()}
		p.finish(ctx, report, journal.StatusFailed, startTime)
		return report, err
	}

	plan := BuildPlan(m, players, decks, direction)
	p.metrics.AddSkippedSeats(plan.SkippedSeats)
	if len(plan.Updates) == 0 {
		log.Info("Nothing to reconcile", "passID", passID, "matchID", m.ID, "skippedSeats", plan.SkippedSeats)
		report := newReport(passID, plan, nil)
		p.finish(ctx, report, journal.StatusOK, startTime)
		return report, nil
	}

	applied, err := p.dispatch(ctx, passID, plan.Updates)
	report := newReport(passID, plan, applied)
	if err != nil {
		report.Error = err.Error()
		p.finish(ctx, report, journal.StatusPartial, startTime)
		return report, err
	}

	p.finish(ctx, report, journal.StatusOK, startTime)
	log.Info("Reconciliation finished", "passID", passID, "direction", dir, "players", len(report.Players), "decks", len(report.Decks), "skippedSeats", report.SkippedSeats)
	return report, nil
}

// snapshot fetches all players and decks concurrently.
func (p *Processor) snapshot(ctx context.Context) ([]record.Record, []record.Record, error) {
	var players, decks []record.Record
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		players, err = p.store.List(gctx, store.Players)
		return err
	})
	g.Go(func() error {
		var err error
		decks, err = p.store.List(gctx, store.Decks)
		return err
	})
	if err := g.Wait(); err != nil {
		p.metrics.IncStoreErrors("list")
		log.Error("Failed to fetch players and decks", "error", err)
		return nil, nil, fmt.Errorf("%w: %w", ErrSnapshot, err)
	}
	return players, decks, nil
}

// dispatch sends every update concurrently and waits for all of them. A
// failed update does not cancel the others.
func (p *Processor) dispatch(ctx context.Context, passID string, updates []Update) ([]bool, error) {
	var (
		g       errgroup.Group
		mu      sync.Mutex
		errs    []error
		applied = make([]bool, len(updates))
	)
	for i, u := range updates {
		g.Go(func() error {
			if _, err := p.store.Update(ctx, u.Collection, u.Key, u.Record); err != nil {
				p.metrics.IncStoreErrors("update")
				log.Error("Failed to update entity", "passID", passID, "collection", u.Collection, "key", u.Key, "error", err)
				mu.Lock()
				errs = append(errs, fmt.Errorf("update %s %s: %w", u.Collection, u.Key, err))
				mu.Unlock()
				return err
			}
			applied[i] = true
			log.Debug("Updated entity", "passID", passID, "collection", u.Collection, "key", u.Key, "delta", u.Delta)
			return nil
		})
	}
	_ = g.Wait()

	for _, c := range []store.Collection{store.Players, store.Decks} {
		n := 0
		for i, u := range updates {
			if applied[i] && u.Collection == c {
				n++
			}
		}
		p.metrics.AddEntityUpdates(string(c), n)
	}
	if len(errs) > 0 {
		return applied, fmt.Errorf("%w: %d of %d updates failed: %w", ErrPartialReconciliation, len(errs), len(updates), errors.Join(errs...))
	}
	return applied, nil
}

func (p *Processor) finish(ctx context.Context, report Report, status journal.Status, startTime time.Time) {
	duration := p.now().Sub(startTime)
	dir := string(report.Direction)
	p.metrics.IncReconciliations(dir)
	p.metrics.ObserveReconciliationDuration(dir, duration.Seconds())
	if status != journal.StatusOK {
		p.metrics.IncReconciliationFailures(dir)
	}

	entry := journal.Entry{
		PassID:       report.PassID,
		MatchID:      report.MatchID,
		Direction:    dir,
		Status:       status,
		Error:        report.Error,
		SkippedSeats: report.SkippedSeats,
		StartedAt:    startTime,
		Duration:     duration,
	}
	for _, c := range report.Players {
		entry.Changes = append(entry.Changes, journal.Change{Collection: string(store.Players), Key: c.Key, Name: c.Name, Delta: c.Delta, Applied: c.Applied})
	}
	for _, c := range report.Decks {
		entry.Changes = append(entry.Changes, journal.Change{Collection: string(store.Decks), Key: c.Key, Name: c.Name, Delta: c.Delta, Applied: c.Applied})
	}
	// The pass already happened; a journal failure must not turn it into an error.
	if err := p.journal.Record(context.WithoutCancel(ctx), entry); err != nil {
		log.Error("Failed to journal reconciliation", "passID", report.PassID, "error", err)
	}

	if status == journal.StatusFailed {
		return
	}
	topic := pubsub.EventMatchRecorded
	if report.Direction == DirectionRollback {
		topic = pubsub.EventMatchRolledBack
	}
	if err := p.pubsub.SendMessage(topic, report); err != nil {
		log.Error("Failed to publish reconciliation event", "passID", report.PassID, "topic", topic, "error", err)
	}
}

func newReport(passID string, plan Plan, applied []bool) Report {
	report := Report{
		PassID:       passID,
		Direction:    plan.Direction,
		MatchID:      plan.MatchID,
		Casual:       plan.Casual,
		SkippedSeats: plan.SkippedSeats,
	}
	for i, u := range plan.Updates {
		change := EntityChange{
			Key:    u.Key,
			Name:   u.Name,
			Delta:  u.Delta,
			Before: u.Before,
			After:  u.After,
		}
		if i < len(applied) {
			change.Applied = applied[i]
		}
		if u.Collection == store.Decks {
			report.Decks = append(report.Decks, change)
		} else {
			report.Players = append(report.Players, change)
		}
	}
	return report
}
