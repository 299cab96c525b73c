package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/almanarhr/recruit-api/internal/models"
)

// =============================================
// GALLERY
// =============================================

type PostgresGalleryRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresGalleryRepo(pool *pgxpool.Pool) *PostgresGalleryRepo {
	return &PostgresGalleryRepo{pool: pool}
}

func (r *PostgresGalleryRepo) ListAll(ctx context.Context) ([]*models.GalleryItem, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, title, image_url, sort_order, created_at, updated_at
		FROM gallery_items ORDER BY sort_order, created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list gallery: %w", err)
	}
	defer rows.Close()

	var items []*models.GalleryItem
	for rows.Next() {
		var it models.GalleryItem
		if err := rows.Scan(&it.ID, &it.Title, &it.ImageURL, &it.SortOrder, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

func (r *PostgresGalleryRepo) GetByID(ctx context.Context, id string) (*models.GalleryItem, error) {
	var it models.GalleryItem
	err := r.pool.QueryRow(ctx, `
		SELECT id, title, image_url, sort_order, created_at, updated_at
		FROM gallery_items WHERE id = $1
	`, id).Scan(&it.ID, &it.Title, &it.ImageURL, &it.SortOrder, &it.CreatedAt, &it.UpdatedAt)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get gallery item: %w", err)
	}
	return &it, nil
}

func (r *PostgresGalleryRepo) Upsert(ctx context.Context, it *models.GalleryItem) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO gallery_items (id, title, image_url, sort_order, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			image_url = EXCLUDED.image_url,
			sort_order = EXCLUDED.sort_order,
			updated_at = EXCLUDED.updated_at
	`, it.ID, it.Title, it.ImageURL, it.SortOrder, it.CreatedAt, it.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to save gallery item: %w", err)
	}
	return nil
}

func (r *PostgresGalleryRepo) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM gallery_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete gallery item: %w", err)
	}
	return nil
}

// =============================================
// CLIENT LOGOS
// =============================================

type PostgresClientLogoRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresClientLogoRepo(pool *pgxpool.Pool) *PostgresClientLogoRepo {
	return &PostgresClientLogoRepo{pool: pool}
}

func (r *PostgresClientLogoRepo) ListAll(ctx context.Context) ([]*models.ClientLogo, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, logo_url, website, sort_order, created_at, updated_at
		FROM client_logos ORDER BY sort_order, created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list client logos: %w", err)
	}
	defer rows.Close()

	var logos []*models.ClientLogo
	for rows.Next() {
		var l models.ClientLogo
		if err := rows.Scan(&l.ID, &l.Name, &l.LogoURL, &l.Website, &l.SortOrder, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, err
		}
		logos = append(logos, &l)
	}
	return logos, rows.Err()
}

func (r *PostgresClientLogoRepo) GetByID(ctx context.Context, id string) (*models.ClientLogo, error) {
	var l models.ClientLogo
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, logo_url, website, sort_order, created_at, updated_at
		FROM client_logos WHERE id = $1
	`, id).Scan(&l.ID, &l.Name, &l.LogoURL, &l.Website, &l.SortOrder, &l.CreatedAt, &l.UpdatedAt)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get client logo: %w", err)
	}
	return &l, nil
}

func (r *PostgresClientLogoRepo) Upsert(ctx context.Context, l *models.ClientLogo) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO client_logos (id, name, logo_url, website, sort_order, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			logo_url = EXCLUDED.logo_url,
			website = EXCLUDED.website,
			sort_order = EXCLUDED.sort_order,
			updated_at = EXCLUDED.updated_at
	`, l.ID, l.Name, l.LogoURL, l.Website, l.SortOrder, l.CreatedAt, l.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to save client logo: %w", err)
	}
	return nil
}

func (r *PostgresClientLogoRepo) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM client_logos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete client logo: %w", err)
	}
	return nil
}

// =============================================
// TESTIMONIALS
// =============================================

type PostgresTestimonialRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresTestimonialRepo(pool *pgxpool.Pool) *PostgresTestimonialRepo {
	return &PostgresTestimonialRepo{pool: pool}
}

func (r *PostgresTestimonialRepo) ListAll(ctx context.Context) ([]*models.Testimonial, error) {
	return r.list(ctx, `
		SELECT id, author, company, quote, rating, approved, created_at, updated_at
		FROM testimonials ORDER BY created_at DESC
	`)
}

func (r *PostgresTestimonialRepo) ListApproved(ctx context.Context) ([]*models.Testimonial, error) {
	return r.list(ctx, `
		SELECT id, author, company, quote, rating, approved, created_at, updated_at
		FROM testimonials WHERE approved ORDER BY created_at DESC
	`)
}

func (r *PostgresTestimonialRepo) list(ctx context.Context, sql string) ([]*models.Testimonial, error) {
	rows, err := r.pool.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("failed to list testimonials: %w", err)
	}
	defer rows.Close()

	var result []*models.Testimonial
	for rows.Next() {
		var t models.Testimonial
		if err := rows.Scan(&t.ID, &t.Author, &t.Company, &t.Quote, &t.Rating, &t.Approved, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, &t)
	}
	return result, rows.Err()
}

func (r *PostgresTestimonialRepo) GetByID(ctx context.Context, id string) (*models.Testimonial, error) {
	var t models.Testimonial
	err := r.pool.QueryRow(ctx, `
		SELECT id, author, company, quote, rating, approved, created_at, updated_at
		FROM testimonials WHERE id = $1
	`, id).Scan(&t.ID, &t.Author, &t.Company, &t.Quote, &t.Rating, &t.Approved, &t.CreatedAt, &t.UpdatedAt)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get testimonial: %w", err)
	}
	return &t, nil
}

func (r *PostgresTestimonialRepo) Upsert(ctx context.Context, t *models.Testimonial) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO testimonials (id, author, company, quote, rating, approved, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			author = EXCLUDED.author,
			company = EXCLUDED.company,
			quote = EXCLUDED.quote,
			rating = EXCLUDED.rating,
			approved = EXCLUDED.approved,
			updated_at = EXCLUDED.updated_at
	`, t.ID, t.Author, t.Company, t.Quote, t.Rating, t.Approved, t.CreatedAt, t.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to save testimonial: %w", err)
	}
	return nil
}

func (r *PostgresTestimonialRepo) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM testimonials WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete testimonial: %w", err)
	}
	return nil
}

// =============================================
// TEAM MEMBERS
// =============================================

type PostgresTeamRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresTeamRepo(pool *pgxpool.Pool) *PostgresTeamRepo {
	return &PostgresTeamRepo{pool: pool}
}

func (r *PostgresTeamRepo) ListAll(ctx context.Context) ([]*models.TeamMember, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name_eng, name_arabic, role, photo_url, sort_order, created_at, updated_at
		FROM team_members ORDER BY sort_order, created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list team members: %w", err)
	}
	defer rows.Close()

	var members []*models.TeamMember
	for rows.Next() {
		var m models.TeamMember
		if err := rows.Scan(&m.ID, &m.NameEng, &m.NameArabic, &m.Role, &m.PhotoURL, &m.SortOrder, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		members = append(members, &m)
	}
	return members, rows.Err()
}

func (r *PostgresTeamRepo) GetByID(ctx context.Context, id string) (*models.TeamMember, error) {
	var m models.TeamMember
	err := r.pool.QueryRow(ctx, `
		SELECT id, name_eng, name_arabic, role, photo_url, sort_order, created_at, updated_at
		FROM team_members WHERE id = $1
	`, id).Scan(&m.ID, &m.NameEng, &m.NameArabic, &m.Role, &m.PhotoURL, &m.SortOrder, &m.CreatedAt, &m.UpdatedAt)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get team member: %w", err)
	}
	return &m, nil
}

func (r *PostgresTeamRepo) Upsert(ctx context.Context, m *models.TeamMember) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO team_members (id, name_eng, name_arabic, role, photo_url, sort_order, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			name_eng = EXCLUDED.name_eng,
			name_arabic = EXCLUDED.name_arabic,
			role = EXCLUDED.role,
			photo_url = EXCLUDED.photo_url,
			sort_order = EXCLUDED.sort_order,
			updated_at = EXCLUDED.updated_at
	`, m.ID, m.NameEng, m.NameArabic, m.Role, m.PhotoURL, m.SortOrder, m.CreatedAt, m.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to save team member: %w", err)
	}
	return nil
}

func (r *PostgresTeamRepo) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM team_members WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete team member: %w", err)
	}
	return nil
}
