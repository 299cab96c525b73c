package storage

import (
	"context"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"github.com/almanarhr/recruit-api/internal/models"
)

// ClickHouseEventStore implements EventStore on ClickHouse. The grouped
// aggregation runs in the database; the worker-name join always happens
// app-side, so inner-join semantics match the other backends exactly.
type ClickHouseEventStore struct {
	conn driver.Conn
}

// NewClickHouseEventStore creates a ClickHouse-backed event store.
func NewClickHouseEventStore(conn driver.Conn) *ClickHouseEventStore {
	return &ClickHouseEventStore{conn: conn}
}

// Migrate creates the events table if it does not exist.
func (s *ClickHouseEventStore) Migrate(ctx context.Context) error {
	err := s.conn.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS interaction_events (
			id          String,
			user_type   LowCardinality(String),
			user_id     String,
			worker_id   String,
			action_type LowCardinality(String),
			geo_country LowCardinality(String),
			created_at  DateTime
		)
		ENGINE = MergeTree
		PARTITION BY toYYYYMM(created_at)
		ORDER BY (worker_id, action_type, created_at)
	`)
	if err != nil {
		return fmt.Errorf("clickhouse migration failed: %w", err)
	}
	return nil
}

func (s *ClickHouseEventStore) SaveEvents(ctx context.Context, events []*models.InteractionEvent) error {
	if len(events) == 0 {
		return nil
	}

	batch, err := s.conn.PrepareBatch(ctx, "INSERT INTO interaction_events")
	if err != nil {
		return fmt.Errorf("failed to prepare event batch: %w", err)
	}

	for _, e := range events {
		if err := batch.Append(e.ID, string(e.UserType), e.UserID, e.WorkerID,
			string(e.ActionType), e.GeoCountry, e.Timestamp); err != nil {
			return fmt.Errorf("failed to append event: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("failed to save events: %w", err)
	}
	return nil
}

func (s *ClickHouseEventStore) GroupCounts(ctx context.Context) ([]ActionCount, error) {
	rows, err := s.conn.Query(ctx, `
		SELECT worker_id, action_type, count()
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
		var n uint64
		if err := rows.Scan(&c.WorkerID, &action, &n); err != nil {
			return nil, err
		}
		c.Action = models.ActionType(action)
		c.Count = int64(n)
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to aggregate events: %w", err)
	}

	return counts, nil
}

func (s *ClickHouseEventStore) CountByWorker(ctx context.Context, workerID string) (int64, error) {
	var n uint64
	err := s.conn.QueryRow(ctx, `
		SELECT count() FROM interaction_events WHERE worker_id = ?
	`, workerID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count events: %w", err)
	}
	return int64(n), nil
}
