package recruit

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/almanarhr/recruit-api/internal/models"
	"github.com/almanarhr/recruit-api/internal/storage"
)

// ErrWorkerInvalid is returned when a worker record fails validation.
var ErrWorkerInvalid = errors.New("worker requires nameEng, profession and nationality")

// WorkerService provides listing and CRUD operations over manpower records.
type WorkerService struct {
	repo storage.WorkerRepo
}

// NewWorkerService constructs a WorkerService backed by the given repo.
func NewWorkerService(repo storage.WorkerRepo) *WorkerService {
	return &WorkerService{repo: repo}
}

// WorkerPage is one page of the public worker catalogue.
type WorkerPage struct {
	Workers []*models.Worker `json:"workers"`
	Total   int64            `json:"total"`
	Page    int              `json:"page"`
	Limit   int              `json:"limit"`
}

// List returns a filtered, paginated page of workers.
func (s *WorkerService) List(ctx context.Context, filter models.WorkerFilter) (*WorkerPage, error) {
	filter.Normalize()
	workers, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &WorkerPage{
		Workers: workers,
		Total:   total,
		Page:    filter.Page,
		Limit:   filter.Limit,
	}, nil
}

// Get returns a worker by ID, or nil when not found.
func (s *WorkerService) Get(ctx context.Context, id string) (*models.Worker, error) {
	return s.repo.GetByID(ctx, id)
}

// Upsert validates the worker, populates ID and timestamps, and saves it.
func (s *WorkerService) Upsert(ctx context.Context, w *models.Worker) error {
	if strings.TrimSpace(w.NameEng) == "" ||
		strings.TrimSpace(w.Profession) == "" ||
		strings.TrimSpace(w.Nationality) == "" {
		return ErrWorkerInvalid
	}

	now := time.Now().UTC()
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	if w.CreatedAt.IsZero() {
		w.CreatedAt = now
	}
	w.UpdatedAt = now

	return s.repo.Upsert(ctx, w)
}

// Delete removes a worker record. Historical interaction events for the
// worker remain in the event log but drop out of analytics views.
func (s *WorkerService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
