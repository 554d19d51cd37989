package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

var _ Journal = (*SQLJournal)(nil)

// New creates a journal backed by db. The schema comes from database.InitDB.
func New(db *sql.DB) *SQLJournal {
	return &SQLJournal{db: db}
}

func (j *SQLJournal) Record(ctx context.Context, entry Entry) error {
	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin journal transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO reconciliations (pass_id, match_id, direction, status, error, skipped_seats, started_at, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.PassID, entry.MatchID, entry.Direction, string(entry.Status), entry.Error,
		entry.SkippedSeats, entry.StartedAt.UnixMilli(), entry.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert reconciliation %s: %w", entry.PassID, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO reconciliation_changes (pass_id, collection, entity_key, entity_name,
			delta_wins, delta_losses, delta_ties, delta_casual_wins, delta_casual_losses, applied)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare change insert: %w", err)
	}
	defer stmt.Close()

	for _, c := range entry.Changes {
		_, err = stmt.ExecContext(ctx, entry.PassID, c.Collection, c.Key, c.Name,
			c.Delta.Wins, c.Delta.Losses, c.Delta.Ties, c.Delta.CasualWins, c.Delta.CasualLosses, c.Applied)
		if err != nil {
			return fmt.Errorf("failed to insert change for %s %s: %w", c.Collection, c.Key, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit journal entry: %w", err)
	}
	log.Debug("Journaled reconciliation", "passID", entry.PassID, "changes", len(entry.Changes))
	return nil
}

// List returns the most recent entries first. A non-positive limit means 50.
func (j *SQLJournal) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := j.db.QueryContext(ctx, `
		SELECT pass_id, match_id, direction, status, error, skipped_seats, started_at, duration_ms
		FROM reconciliations
		ORDER BY started_at DESC, rowid DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query reconciliations: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	index := make(map[string]int)
	for rows.Next() {
		var (
			e          Entry
			status     string
			startedAt  int64
			durationMs int64
		)
		if err := rows.Scan(&e.PassID, &e.MatchID, &e.Direction, &status, &e.Error, &e.SkippedSeats, &startedAt, &durationMs); err != nil {
			return nil, fmt.Errorf("failed to scan reconciliation: %w", err)
		}
		e.Status = Status(status)
		e.StartedAt = time.UnixMilli(startedAt).UTC()
		e.Duration = time.Duration(durationMs) * time.Millisecond
		index[e.PassID] = len(entries)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return entries, nil
	}

	if err := j.loadChanges(ctx, limit, entries, index); err != nil {
		return nil, err
	}
	return entries, nil
}

func (j *SQLJournal) loadChanges(ctx context.Context, limit int, entries []Entry, index map[string]int) error {
	rows, err := j.db.QueryContext(ctx, `
		SELECT c.pass_id, c.collection, c.entity_key, c.entity_name,
			c.delta_wins, c.delta_losses, c.delta_ties, c.delta_casual_wins, c.delta_casual_losses, c.applied
		FROM reconciliation_changes c
		WHERE c.pass_id IN (
			SELECT pass_id FROM reconciliations ORDER BY started_at DESC, rowid DESC LIMIT ?
		)
		ORDER BY c.rowid`, limit)
	if err != nil {
		return fmt.Errorf("failed to query reconciliation changes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			passID string
			c      Change
		)
		if err := rows.Scan(&passID, &c.Collection, &c.Key, &c.Name,
			&c.Delta.Wins, &c.Delta.Losses, &c.Delta.Ties, &c.Delta.CasualWins, &c.Delta.CasualLosses, &c.Applied); err != nil {
			return fmt.Errorf("failed to scan reconciliation change: %w", err)
		}
		i, ok := index[passID]
		if !ok {
			continue
		}
		entries[i].Changes = append(entries[i].Changes, c)
	}
	return rows.Err()
}
