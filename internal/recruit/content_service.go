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

var (
	// ErrGalleryInvalid is returned when a gallery item has no image.
	ErrGalleryInvalid = errors.New("gallery item requires imageUrl")

	// ErrClientInvalid is returned when a client logo lacks name or logo.
	ErrClientInvalid = errors.New("client requires name and logoUrl")

	// ErrTestimonialInvalid is returned when a testimonial lacks author or quote.
	ErrTestimonialInvalid = errors.New("testimonial requires author and quote")

	// ErrTeamMemberInvalid is returned when a team member lacks name or role.
	ErrTeamMemberInvalid = errors.New("team member requires nameEng and role")
)

// ContentService manages the admin-editable site content: gallery photos,
// client logos, testimonials and team profiles.
type ContentService struct {
	gallery      storage.GalleryRepo
	clients      storage.ClientLogoRepo
	testimonials storage.TestimonialRepo
	team         storage.TeamRepo
}

// NewContentService constructs a ContentService over the given repos.
func NewContentService(gallery storage.GalleryRepo, clients storage.ClientLogoRepo, testimonials storage.TestimonialRepo, team storage.TeamRepo) *ContentService {
	return &ContentService{
		gallery:      gallery,
		clients:      clients,
		testimonials: testimonials,
		team:         team,
	}
}

// ListGallery returns all gallery items.
func (s *ContentService) ListGallery(ctx context.Context) ([]*models.GalleryItem, error) {
	return s.gallery.ListAll(ctx)
}

// GetGalleryItem returns a gallery item by ID, or nil when not found.
func (s *ContentService) GetGalleryItem(ctx context.Context, id string) (*models.GalleryItem, error) {
	return s.gallery.GetByID(ctx, id)
}

// UpsertGalleryItem validates and saves a gallery item.
func (s *ContentService) UpsertGalleryItem(ctx context.Context, item *models.GalleryItem) error {
	if strings.TrimSpace(item.ImageURL) == "" {
		return ErrGalleryInvalid
	}
	stampContent(&item.ID, &item.CreatedAt, &item.UpdatedAt)
	return s.gallery.Upsert(ctx, item)
}

// DeleteGalleryItem removes a gallery item.
func (s *ContentService) DeleteGalleryItem(ctx context.Context, id string) error {
	return s.gallery.Delete(ctx, id)
}

// ListClients returns all client logos.
func (s *ContentService) ListClients(ctx context.Context) ([]*models.ClientLogo, error) {
	return s.clients.ListAll(ctx)
}

// GetClient returns a client logo by ID, or nil when not found.
func (s *ContentService) GetClient(ctx context.Context, id string) (*models.ClientLogo, error) {
	return s.clients.GetByID(ctx, id)
}

// UpsertClient validates and saves a client logo.
func (s *ContentService) UpsertClient(ctx context.Context, logo *models.ClientLogo) error {
	if strings.TrimSpace(logo.Name) == "" || strings.TrimSpace(logo.LogoURL) == "" {
		return ErrClientInvalid
	}
	stampContent(&logo.ID, &logo.CreatedAt, &logo.UpdatedAt)
	return s.clients.Upsert(ctx, logo)
}

// DeleteClient removes a client logo.
func (s *ContentService) DeleteClient(ctx context.Context, id string) error {
	return s.clients.Delete(ctx, id)
}

// ListApprovedTestimonials returns testimonials cleared for public display.
func (s *ContentService) ListApprovedTestimonials(ctx context.Context) ([]*models.Testimonial, error) {
	return s.testimonials.ListApproved(ctx)
}

// ListTestimonials returns all testimonials, approved or not.
func (s *ContentService) ListTestimonials(ctx context.Context) ([]*models.Testimonial, error) {
	return s.testimonials.ListAll(ctx)
}

// GetTestimonial returns a testimonial by ID, or nil when not found.
func (s *ContentService) GetTestimonial(ctx context.Context, id string) (*models.Testimonial, error) {
	return s.testimonials.GetByID(ctx, id)
}

// UpsertTestimonial validates and saves a testimonial.
func (s *ContentService) UpsertTestimonial(ctx context.Context, t *models.Testimonial) error {
	if strings.TrimSpace(t.Author) == "" || strings.TrimSpace(t.Quote) == "" {
		return ErrTestimonialInvalid
	}
	stampContent(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	return s.testimonials.Upsert(ctx, t)
}

// DeleteTestimonial removes a testimonial.
func (s *ContentService) DeleteTestimonial(ctx context.Context, id string) error {
	return s.testimonials.Delete(ctx, id)
}

// ListTeam returns all team member profiles.
func (s *ContentService) ListTeam(ctx context.Context) ([]*models.TeamMember, error) {
	return s.team.ListAll(ctx)
}

// GetTeamMember returns a team member by ID, or nil when not found.
func (s *ContentService) GetTeamMember(ctx context.Context, id string) (*models.TeamMember, error) {
	return s.team.GetByID(ctx, id)
}

// UpsertTeamMember validates and saves a team member profile.
func (s *ContentService) UpsertTeamMember(ctx context.Context, m *models.TeamMember) error {
	if strings.TrimSpace(m.NameEng) == "" || strings.TrimSpace(m.Role) == "" {
		return ErrTeamMemberInvalid
	}
	stampContent(&m.ID, &m.CreatedAt, &m.UpdatedAt)
	return s.team.Upsert(ctx, m)
}

// DeleteTeamMember removes a team member profile.
func (s *ContentService) DeleteTeamMember(ctx context.Context, id string) error {
	return s.team.Delete(ctx, id)
}

// stampContent fills in the ID and timestamps shared by all content records.
func stampContent(id *string, createdAt, updatedAt *time.Time) {
	now := time.Now().UTC()
	if *id == "" {
		*id = uuid.NewString()
	}
	if createdAt.IsZero() {
		*createdAt = now
	}
	*updatedAt = now
}
