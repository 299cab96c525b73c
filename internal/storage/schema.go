package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Migrate creates the application tables if they do not exist.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS workers (
			id TEXT PRIMARY KEY,
			name_eng TEXT NOT NULL DEFAULT '',
			name_arabic TEXT NOT NULL DEFAULT '',
			profession TEXT NOT NULL DEFAULT '',
			nationality TEXT NOT NULL DEFAULT '',
			gender TEXT NOT NULL DEFAULT '',
			age INT NOT NULL DEFAULT 0,
			experience_years INT NOT NULL DEFAULT 0,
			languages TEXT[] NOT NULL DEFAULT '{}',
			monthly_salary DOUBLE PRECISION NOT NULL DEFAULT 0,
			photo_url TEXT NOT NULL DEFAULT '',
			resume_url TEXT NOT NULL DEFAULT '',
			available BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,

		// Append-only; no retention policy, so keep the time index cheap.
		`CREATE TABLE IF NOT EXISTS interaction_events (
			id TEXT PRIMARY KEY,
			user_type TEXT NOT NULL,
			user_id TEXT,
			worker_id TEXT NOT NULL,
			action_type TEXT NOT NULL,
			geo_country TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_events_worker_action
			ON interaction_events (worker_id, action_type)`,
		`CREATE INDEX IF NOT EXISTS idx_events_created_at
			ON interaction_events USING BRIN (created_at)`,

		`CREATE TABLE IF NOT EXISTS gallery_items (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL DEFAULT '',
			image_url TEXT NOT NULL,
			sort_order INT NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,

		`CREATE TABLE IF NOT EXISTS client_logos (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			logo_url TEXT NOT NULL,
			website TEXT NOT NULL DEFAULT '',
			sort_order INT NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,

		`CREATE TABLE IF NOT EXISTS testimonials (
			id TEXT PRIMARY KEY,
			author TEXT NOT NULL,
			company TEXT NOT NULL DEFAULT '',
			quote TEXT NOT NULL,
			rating INT NOT NULL DEFAULT 0,
			approved BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,

		`CREATE TABLE IF NOT EXISTS team_members (
			id TEXT PRIMARY KEY,
			name_eng TEXT NOT NULL,
			name_arabic TEXT NOT NULL DEFAULT '',
			role TEXT NOT NULL DEFAULT '',
			photo_url TEXT NOT NULL DEFAULT '',
			sort_order INT NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,

		`CREATE TABLE IF NOT EXISTS contact_messages (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL DEFAULT '',
			phone TEXT NOT NULL DEFAULT '',
			subject TEXT NOT NULL DEFAULT '',
			message TEXT NOT NULL,
			read BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,

		`CREATE TABLE IF NOT EXISTS chat_transcripts (
			id TEXT PRIMARY KEY,
			visitor_name TEXT NOT NULL DEFAULT '',
			visitor_phone TEXT NOT NULL DEFAULT '',
			messages JSONB NOT NULL DEFAULT '[]',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,

		`CREATE TABLE IF NOT EXISTS admin_users (
			id TEXT PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			role TEXT NOT NULL DEFAULT 'admin',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}
