package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/almanarhr/recruit-api/internal/models"
)

// PostgresEventStore implements EventStore using PostgreSQL.
type PostgresEventStore struct {
	pool *pgxpool.Pool
}

// NewPostgresEventStore creates a new PostgreSQL-backed event store.
func NewPostgresEventStore(pool *pgxpool.Pool) *PostgresEventStore {
	return &PostgresEventStore{pool: pool}
}

// SaveEvents appends a batch of events inside one transaction, so a write
// failure never leaves a committed prefix of the batch behind.
func (s *PostgresEventStore) SaveEvents(ctx context.Context, events []*models.InteractionEvent) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, e := range events {
		batch.Queue(`
			INSERT INTO interaction_events (id, user_type, user_id, worker_id, action_type, geo_country, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, e.ID, string(e.UserType), nullString(e.UserID), e.WorkerID, string(e.ActionType), nullString(e.GeoCountry), e.Timestamp)
	}

	br := tx.SendBatch(ctx, batch)
	for range events {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return fmt.Errorf("failed to save events: %w", err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to save events: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit events: %w", err)
	}
	return nil
}

// GroupCounts runs the grouped aggregation over the full event log.
func (s *PostgresEventStore) GroupCounts(ctx context.Context) ([]ActionCount, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT worker_id, action_type, COUNT(*)
		FROM interaction_events
		GROUP BY worker_id, action_type
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate events: %w", err)
	}
	defer rows.Close()

	var counts []ActionCount
	for rows.Next() {
		var c ActionCount
		var action string
		if err := rows.Scan(&c.WorkerID, &action, &c.Count); err != nil {
			return nil, err
		}
		c.Action = models.ActionType(action)
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to aggregate events: %w", err)
	}

	return counts, nil
}

// CountByWorker returns the total number of events for one worker.
func (s *PostgresEventStore) CountByWorker(ctx context.Context, workerID string) (int64, error) {
	var count int64
	err := s.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM interaction_events WHERE worker_id = $1
	`, workerID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count events: %w", err)
	}
	return count, nil
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
