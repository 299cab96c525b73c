package storage

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/almanarhr/recruit-api/internal/models"
)

// In-memory implementations back the server when no database is configured
// and serve as test fixtures. Semantics mirror the Postgres repos.

// =============================================
// EVENT STORE
// =============================================

// InMemoryEventStore keeps the append-only event log in memory.
type InMemoryEventStore struct {
	mu     sync.RWMutex
	events []*models.InteractionEvent
}

func NewInMemoryEventStore() *InMemoryEventStore {
	return &InMemoryEventStore{}
}

func (s *InMemoryEventStore) SaveEvents(ctx context.Context, events []*models.InteractionEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, events...)
	return nil
}

func (s *InMemoryEventStore) GroupCounts(ctx context.Context) ([]ActionCount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	type key struct {
		worker string
		action models.ActionType
	}
	grouped := make(map[key]int64)
	var order []key

	for _, e := range s.events {
		k := key{worker: e.WorkerID, action: e.ActionType}
		if _, ok := grouped[k]; !ok {
			order = append(order, k)
		}
		grouped[k]++
	}

	counts := make([]ActionCount, 0, len(order))
	for _, k := range order {
		counts = append(counts, ActionCount{WorkerID: k.worker, Action: k.action, Count: grouped[k]})
	}
	return counts, nil
}

func (s *InMemoryEventStore) CountByWorker(ctx context.Context, workerID string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int64
	for _, e := range s.events {
		if e.WorkerID == workerID {
			n++
		}
	}
	return n, nil
}

// Len reports the number of stored events.
func (s *InMemoryEventStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}

// =============================================
// WORKERS
// =============================================

type InMemoryWorkerRepo struct {
	mu      sync.RWMutex
	workers map[string]*models.Worker
}

func NewInMemoryWorkerRepo() *InMemoryWorkerRepo {
	return &InMemoryWorkerRepo{workers: make(map[string]*models.Worker)}
}

func (r *InMemoryWorkerRepo) List(ctx context.Context, filter models.WorkerFilter) ([]*models.Worker, int64, error) {
	filter.Normalize()

	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*models.Worker
	for _, w := range r.workers {
		if matchesWorkerFilter(w, filter) {
			matched = append(matched, w)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	start := filter.Offset()
	if start > len(matched) {
		start = len(matched)
	}
	end := start + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}

	return matched[start:end], total, nil
}

func matchesWorkerFilter(w *models.Worker, f models.WorkerFilter) bool {
	if f.Profession != "" && w.Profession != f.Profession {
		return false
	}
	if f.Nationality != "" && w.Nationality != f.Nationality {
		return false
	}
	if f.Gender != "" && w.Gender != f.Gender {
		return false
	}
	if f.Available != nil && w.Available != *f.Available {
		return false
	}
	if f.Search != "" {
		term := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(w.NameEng), term) &&
			!strings.Contains(strings.ToLower(w.NameArabic), term) {
			return false
		}
	}
	return true
}

func (r *InMemoryWorkerRepo) GetByID(ctx context.Context, id string) (*models.Worker, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	w, ok := r.workers[id]
	if !ok {
		return nil, nil
	}
	return w, nil
}

func (r *InMemoryWorkerRepo) GetByIDs(ctx context.Context, ids []string) (map[string]*models.Worker, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[string]*models.Worker, len(ids))
	for _, id := range ids {
		if w, ok := r.workers[id]; ok {
			result[id] = w
		}
	}
	return result, nil
}

func (r *InMemoryWorkerRepo) Upsert(ctx context.Context, w *models.Worker) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.workers[w.ID] = w
	return nil
}

func (r *InMemoryWorkerRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.workers, id)
	return nil
}

// =============================================
// SITE CONTENT
// =============================================

type InMemoryGalleryRepo struct {
	mu    sync.RWMutex
	items map[string]*models.GalleryItem
}

func NewInMemoryGalleryRepo() *InMemoryGalleryRepo {
	return &InMemoryGalleryRepo{items: make(map[string]*models.GalleryItem)}
}

func (r *InMemoryGalleryRepo) ListAll(ctx context.Context) ([]*models.GalleryItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]*models.GalleryItem, 0, len(r.items))
	for _, it := range r.items {
		items = append(items, it)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].SortOrder != items[j].SortOrder {
			return items[i].SortOrder < items[j].SortOrder
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

func (r *InMemoryGalleryRepo) GetByID(ctx context.Context, id string) (*models.GalleryItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.items[id], nil
}

func (r *InMemoryGalleryRepo) Upsert(ctx context.Context, it *models.GalleryItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[it.ID] = it
	return nil
}

func (r *InMemoryGalleryRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

type InMemoryClientLogoRepo struct {
	mu    sync.RWMutex
	logos map[string]*models.ClientLogo
}

func NewInMemoryClientLogoRepo() *InMemoryClientLogoRepo {
	return &InMemoryClientLogoRepo{logos: make(map[string]*models.ClientLogo)}
}

func (r *InMemoryClientLogoRepo) ListAll(ctx context.Context) ([]*models.ClientLogo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	logos := make([]*models.ClientLogo, 0, len(r.logos))
	for _, l := range r.logos {
		logos = append(logos, l)
	}
	sort.Slice(logos, func(i, j int) bool {
		if logos[i].SortOrder != logos[j].SortOrder {
			return logos[i].SortOrder < logos[j].SortOrder
		}
		return logos[i].CreatedAt.After(logos[j].CreatedAt)
	})
	return logos, nil
}

func (r *InMemoryClientLogoRepo) GetByID(ctx context.Context, id string) (*models.ClientLogo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.logos[id], nil
}

func (r *InMemoryClientLogoRepo) Upsert(ctx context.Context, l *models.ClientLogo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logos[l.ID] = l
	return nil
}

func (r *InMemoryClientLogoRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.logos, id)
	return nil
}

type InMemoryTestimonialRepo struct {
	mu           sync.RWMutex
	testimonials map[string]*models.Testimonial
}

func NewInMemoryTestimonialRepo() *InMemoryTestimonialRepo {
	return &InMemoryTestimonialRepo{testimonials: make(map[string]*models.Testimonial)}
}

func (r *InMemoryTestimonialRepo) ListAll(ctx context.Context) ([]*models.Testimonial, error) {
	return r.list(func(*models.Testimonial) bool { return true })
}

func (r *InMemoryTestimonialRepo) ListApproved(ctx context.Context) ([]*models.Testimonial, error) {
	return r.list(func(t *models.Testimonial) bool { return t.Approved })
}

func (r *InMemoryTestimonialRepo) list(keep func(*models.Testimonial) bool) ([]*models.Testimonial, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*models.Testimonial
	for _, t := range r.testimonials {
		if keep(t) {
			result = append(result, t)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *InMemoryTestimonialRepo) GetByID(ctx context.Context, id string) (*models.Testimonial, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.testimonials[id], nil
}

func (r *InMemoryTestimonialRepo) Upsert(ctx context.Context, t *models.Testimonial) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.testimonials[t.ID] = t
	return nil
}

func (r *InMemoryTestimonialRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.testimonials, id)
	return nil
}

type InMemoryTeamRepo struct {
	mu      sync.RWMutex
	members map[string]*models.TeamMember
}

func NewInMemoryTeamRepo() *InMemoryTeamRepo {
	return &InMemoryTeamRepo{members: make(map[string]*models.TeamMember)}
}

func (r *InMemoryTeamRepo) ListAll(ctx context.Context) ([]*models.TeamMember, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members := make([]*models.TeamMember, 0, len(r.members))
	for _, m := range r.members {
		members = append(members, m)
	}
	sort.Slice(members, func(i, j int) bool {
		if members[i].SortOrder != members[j].SortOrder {
			return members[i].SortOrder < members[j].SortOrder
		}
		return members[i].CreatedAt.Before(members[j].CreatedAt)
	})
	return members, nil
}

func (r *InMemoryTeamRepo) GetByID(ctx context.Context, id string) (*models.TeamMember, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.members[id], nil
}

func (r *InMemoryTeamRepo) Upsert(ctx context.Context, m *models.TeamMember) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.members[m.ID] = m
	return nil
}

func (r *InMemoryTeamRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.members, id)
	return nil
}

// =============================================
// LEADS
// =============================================

type InMemoryContactRepo struct {
	mu   sync.RWMutex
	msgs map[string]*models.ContactMessage
}

func NewInMemoryContactRepo() *InMemoryContactRepo {
	return &InMemoryContactRepo{msgs: make(map[string]*models.ContactMessage)}
}

func (r *InMemoryContactRepo) Save(ctx context.Context, msg *models.ContactMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs[msg.ID] = msg
	return nil
}

func (r *InMemoryContactRepo) ListAll(ctx context.Context) ([]*models.ContactMessage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	msgs := make([]*models.ContactMessage, 0, len(r.msgs))
	for _, m := range r.msgs {
		msgs = append(msgs, m)
	}
	sort.Slice(msgs, func(i, j int) bool {
		return msgs[i].CreatedAt.After(msgs[j].CreatedAt)
	})
	return msgs, nil
}

func (r *InMemoryContactRepo) GetByID(ctx context.Context, id string) (*models.ContactMessage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.msgs[id], nil
}

func (r *InMemoryContactRepo) MarkRead(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m, ok := r.msgs[id]; ok {
		m.Read = true
	}
	return nil
}

func (r *InMemoryContactRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.msgs, id)
	return nil
}

type InMemoryChatRepo struct {
	mu          sync.RWMutex
	transcripts map[string]*models.ChatTranscript
}

func NewInMemoryChatRepo() *InMemoryChatRepo {
	return &InMemoryChatRepo{transcripts: make(map[string]*models.ChatTranscript)}
}

func (r *InMemoryChatRepo) Save(ctx context.Context, t *models.ChatTranscript) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transcripts[t.ID] = t
	return nil
}

func (r *InMemoryChatRepo) ListAll(ctx context.Context) ([]*models.ChatTranscript, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	transcripts := make([]*models.ChatTranscript, 0, len(r.transcripts))
	for _, t := range r.transcripts {
		transcripts = append(transcripts, t)
	}
	sort.Slice(transcripts, func(i, j int) bool {
		return transcripts[i].CreatedAt.After(transcripts[j].CreatedAt)
	})
	return transcripts, nil
}

func (r *InMemoryChatRepo) GetByID(ctx context.Context, id string) (*models.ChatTranscript, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.transcripts[id], nil
}

func (r *InMemoryChatRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.transcripts, id)
	return nil
}

// =============================================
// ADMIN USERS
// =============================================

type InMemoryAdminRepo struct {
	mu    sync.RWMutex
	users map[string]*models.AdminUser
}

func NewInMemoryAdminRepo() *InMemoryAdminRepo {
	return &InMemoryAdminRepo{users: make(map[string]*models.AdminUser)}
}

func (r *InMemoryAdminRepo) GetByUsername(ctx context.Context, username string) (*models.AdminUser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[username]
	if !ok {
		return nil, nil
	}
	return u, nil
}

func (r *InMemoryAdminRepo) Upsert(ctx context.Context, u *models.AdminUser) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.Username] = u
	return nil
}
