package recruit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/almanarhr/recruit-api/internal/models"
	"github.com/almanarhr/recruit-api/internal/storage"
)

func newContentFixture() *ContentService {
	return NewContentService(
		storage.NewInMemoryGalleryRepo(),
		storage.NewInMemoryClientLogoRepo(),
		storage.NewInMemoryTestimonialRepo(),
		storage.NewInMemoryTeamRepo(),
	)
}

func TestGalleryLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := newContentFixture()

	item := &models.GalleryItem{Title: "Office", ImageURL: "/static/uploads/office.jpg"}
	require.NoError(t, svc.UpsertGalleryItem(ctx, item))
	assert.NotEmpty(t, item.ID)

	list, err := svc.ListGallery(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, svc.DeleteGalleryItem(ctx, item.ID))
	list, err = svc.ListGallery(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	assert.ErrorIs(t, svc.UpsertGalleryItem(ctx, &models.GalleryItem{Title: "no image"}), ErrGalleryInvalid)
}

func TestClientValidation(t *testing.T) {
	ctx := context.Background()
	svc := newContentFixture()

	assert.ErrorIs(t, svc.UpsertClient(ctx, &models.ClientLogo{Name: "Acme"}), ErrClientInvalid)
	assert.ErrorIs(t, svc.UpsertClient(ctx, &models.ClientLogo{LogoURL: "/l.png"}), ErrClientInvalid)

	logo := &models.ClientLogo{Name: "Acme", LogoURL: "/static/uploads/acme.png"}
	require.NoError(t, svc.UpsertClient(ctx, logo))
	assert.NotEmpty(t, logo.ID)
}

func TestApprovedTestimonialFilter(t *testing.T) {
	ctx := context.Background()
	svc := newContentFixture()

	require.NoError(t, svc.UpsertTestimonial(ctx, &models.Testimonial{Author: "A", Quote: "ok", Approved: true}))
	require.NoError(t, svc.UpsertTestimonial(ctx, &models.Testimonial{Author: "B", Quote: "pending"}))

	approved, err := svc.ListApprovedTestimonials(ctx)
	require.NoError(t, err)
	require.Len(t, approved, 1)
	assert.Equal(t, "A", approved[0].Author)

	all, err := svc.ListTestimonials(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestTeamMemberValidation(t *testing.T) {
	ctx := context.Background()
	svc := newContentFixture()

	assert.ErrorIs(t, svc.UpsertTeamMember(ctx, &models.TeamMember{NameEng: "Omar"}), ErrTeamMemberInvalid)

	m := &models.TeamMember{NameEng: "Omar", Role: "Recruitment Manager"}
	require.NoError(t, svc.UpsertTeamMember(ctx, m))
	assert.NotEmpty(t, m.ID)
	assert.False(t, m.CreatedAt.IsZero())
}
