package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/almanarhr/recruit-api/internal/models"
)

// =============================================
// CONTACT MESSAGES
// =============================================

type PostgresContactRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresContactRepo(pool *pgxpool.Pool) *PostgresContactRepo {
	return &PostgresContactRepo{pool: pool}
}

func (r *PostgresContactRepo) Save(ctx context.Context, msg *models.ContactMessage) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO contact_messages (id, name, email, phone, subject, message, read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, msg.ID, msg.Name, msg.Email, msg.Phone, msg.Subject, msg.Message, msg.Read, msg.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to save contact message: %w", err)
	}
	return nil
}

func (r *PostgresContactRepo) ListAll(ctx context.Context) ([]*models.ContactMessage, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, email, phone, subject, message, read, created_at
		FROM contact_messages ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list contact messages: %w", err)
	}
	defer rows.Close()

	var msgs []*models.ContactMessage
	for rows.Next() {
		var m models.ContactMessage
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Phone, &m.Subject, &m.Message, &m.Read, &m.CreatedAt); err != nil {
			return nil, err
		}
		msgs = append(msgs, &m)
	}
	return msgs, rows.Err()
}

func (r *PostgresContactRepo) GetByID(ctx context.Context, id string) (*models.ContactMessage, error) {
	var m models.ContactMessage
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, email, phone, subject, message, read, created_at
		FROM contact_messages WHERE id = $1
	`, id).Scan(&m.ID, &m.Name, &m.Email, &m.Phone, &m.Subject, &m.Message, &m.Read, &m.CreatedAt)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get contact message: %w", err)
	}
	return &m, nil
}

func (r *PostgresContactRepo) MarkRead(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `UPDATE contact_messages SET read = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to mark contact message read: %w", err)
	}
	return nil
}

func (r *PostgresContactRepo) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM contact_messages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete contact message: %w", err)
	}
	return nil
}

// =============================================
// CHAT TRANSCRIPTS
// =============================================

type PostgresChatRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresChatRepo(pool *pgxpool.Pool) *PostgresChatRepo {
	return &PostgresChatRepo{pool: pool}
}

func (r *PostgresChatRepo) Save(ctx context.Context, t *models.ChatTranscript) error {
	messages, err := json.Marshal(t.Messages)
	if err != nil {
		return fmt.Errorf("failed to encode chat messages: %w", err)
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO chat_transcripts (id, visitor_name, visitor_phone, messages, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, t.ID, t.VisitorName, t.VisitorPhone, messages, t.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to save chat transcript: %w", err)
	}
	return nil
}

func (r *PostgresChatRepo) ListAll(ctx context.Context) ([]*models.ChatTranscript, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, visitor_name, visitor_phone, messages, created_at
		FROM chat_transcripts ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list chat transcripts: %w", err)
	}
	defer rows.Close()

	var transcripts []*models.ChatTranscript
	for rows.Next() {
		t, err := scanChatTranscript(rows)
		if err != nil {
			return nil, err
		}
		transcripts = append(transcripts, t)
	}
	return transcripts, rows.Err()
}

func (r *PostgresChatRepo) GetByID(ctx context.Context, id string) (*models.ChatTranscript, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, visitor_name, visitor_phone, messages, created_at
		FROM chat_transcripts WHERE id = $1
	`, id)

	t, err := scanChatTranscript(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get chat transcript: %w", err)
	}
	return t, nil
}

func (r *PostgresChatRepo) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM chat_transcripts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete chat transcript: %w", err)
	}
	return nil
}

func scanChatTranscript(row rowScanner) (*models.ChatTranscript, error) {
	var t models.ChatTranscript
	var messages []byte
	if err := row.Scan(&t.ID, &t.VisitorName, &t.VisitorPhone, &messages, &t.CreatedAt); err != nil {
		return nil, err
	}
	if len(messages) > 0 {
		if err := json.Unmarshal(messages, &t.Messages); err != nil {
			return nil, fmt.Errorf("failed to decode chat messages: %w", err)
		}
	}
	return &t, nil
}

// =============================================
// ADMIN USERS
// =============================================

type PostgresAdminRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresAdminRepo(pool *pgxpool.Pool) *PostgresAdminRepo {
	return &PostgresAdminRepo{pool: pool}
}

func (r *PostgresAdminRepo) GetByUsername(ctx context.Context, username string) (*models.AdminUser, error) {
	var u models.AdminUser
	err := r.pool.QueryRow(ctx, `
		SELECT id, username, password_hash, role, created_at
		FROM admin_users WHERE username = $1
	`, username).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get admin user: %w", err)
	}
	return &u, nil
}

func (r *PostgresAdminRepo) Upsert(ctx context.Context, u *models.AdminUser) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO admin_users (id, username, password_hash, role, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (username) DO UPDATE SET
			password_hash = EXCLUDED.password_hash,
			role = EXCLUDED.role
	`, u.ID, u.Username, u.PasswordHash, u.Role, u.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to save admin user: %w", err)
	}
	return nil
}
