package storage

import (
	"context"

	"github.com/almanarhr/recruit-api/internal/models"
)

// =============================================
// EVENT STORE
// =============================================

// ActionCount is one row of the grouped aggregation query:
// the number of events for a (worker, action) pair.
type ActionCount struct {
	WorkerID string
	Action   models.ActionType
	Count    int64
}

// EventStore defines operations for the append-only interaction event log.
// There is deliberately no update or delete.
type EventStore interface {
	// SaveEvents appends a batch. Callers validate before calling; a failure
	// must not leave a committed prefix of the batch behind.
	SaveEvents(ctx context.Context, events []*models.InteractionEvent) error

	// GroupCounts computes COUNT(*) grouped by (worker_id, action_type)
	// over the full store. No ordering is promised.
	GroupCounts(ctx context.Context) ([]ActionCount, error)

	// CountByWorker returns the total number of events for one worker.
	CountByWorker(ctx context.Context, workerID string) (int64, error)
}

// =============================================
// WORKER REPOSITORY
// =============================================

// WorkerRepo defines operations for manpower records.
type WorkerRepo interface {
	List(ctx context.Context, filter models.WorkerFilter) ([]*models.Worker, int64, error)
	GetByID(ctx context.Context, id string) (*models.Worker, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]*models.Worker, error)
	Upsert(ctx context.Context, w *models.Worker) error
	Delete(ctx context.Context, id string) error
}

// =============================================
// SITE CONTENT REPOSITORIES
// =============================================

type GalleryRepo interface {
	ListAll(ctx context.Context) ([]*models.GalleryItem, error)
	GetByID(ctx context.Context, id string) (*models.GalleryItem, error)
	Upsert(ctx context.Context, item *models.GalleryItem) error
	Delete(ctx context.Context, id string) error
}

type ClientLogoRepo interface {
	ListAll(ctx context.Context) ([]*models.ClientLogo, error)
	GetByID(ctx context.Context, id string) (*models.ClientLogo, error)
	Upsert(ctx context.Context, logo *models.ClientLogo) error
	Delete(ctx context.Context, id string) error
}

type TestimonialRepo interface {
	ListAll(ctx context.Context) ([]*models.Testimonial, error)
	ListApproved(ctx context.Context) ([]*models.Testimonial, error)
	GetByID(ctx context.Context, id string) (*models.Testimonial, error)
	Upsert(ctx context.Context, t *models.Testimonial) error
	Delete(ctx context.Context, id string) error
}

type TeamRepo interface {
	ListAll(ctx context.Context) ([]*models.TeamMember, error)
	GetByID(ctx context.Context, id string) (*models.TeamMember, error)
	Upsert(ctx context.Context, m *models.TeamMember) error
	Delete(ctx context.Context, id string) error
}

// =============================================
// LEADS
// =============================================

// ContactRepo stores contact-form submissions.
type ContactRepo interface {
	Save(ctx context.Context, msg *models.ContactMessage) error
	ListAll(ctx context.Context) ([]*models.ContactMessage, error)
	GetByID(ctx context.Context, id string) (*models.ContactMessage, error)
	MarkRead(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

// ChatRepo stores captured chatbot transcripts.
type ChatRepo interface {
	Save(ctx context.Context, t *models.ChatTranscript) error
	ListAll(ctx context.Context) ([]*models.ChatTranscript, error)
	GetByID(ctx context.Context, id string) (*models.ChatTranscript, error)
	Delete(ctx context.Context, id string) error
}

// =============================================
// ADMIN ACCOUNTS
// =============================================

type AdminRepo interface {
	GetByUsername(ctx context.Context, username string) (*models.AdminUser, error)
	Upsert(ctx context.Context, u *models.AdminUser) error
}
