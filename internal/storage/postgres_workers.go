package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/almanarhr/recruit-api/internal/models"
)

// PostgresWorkerRepo implements WorkerRepo using PostgreSQL.
type PostgresWorkerRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresWorkerRepo(pool *pgxpool.Pool) *PostgresWorkerRepo {
	return &PostgresWorkerRepo{pool: pool}
}

const workerColumns = `id, name_eng, name_arabic, profession, nationality, gender, age,
	experience_years, languages, monthly_salary, photo_url, resume_url, available,
	created_at, updated_at`

// List returns one page of workers matching the filter plus the total match
// count. The WHERE clause is composed dynamically from the filter's set
// fields.
func (r *PostgresWorkerRepo) List(ctx context.Context, filter models.WorkerFilter) ([]*models.Worker, int64, error) {
	filter.Normalize()

	where, args := buildWorkerWhere(filter)

	var total int64
	countSQL := "SELECT COUNT(*) FROM workers" + where
	if err := r.pool.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count workers: %w", err)
	}

	listSQL := fmt.Sprintf(
		"SELECT %s FROM workers%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		workerColumns, where, len(args)+1, len(args)+2,
	)
	args = append(args, filter.Limit, filter.Offset())

	rows, err := r.pool.Query(ctx, listSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list workers: %w", err)
	}
	defer rows.Close()

	var workers []*models.Worker
	for rows.Next() {
		w, err := scanWorker(rows)
		if err != nil {
			return nil, 0, err
		}
		workers = append(workers, w)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to list workers: %w", err)
	}

	return workers, total, nil
}

func buildWorkerWhere(filter models.WorkerFilter) (string, []interface{}) {
	var conds []string
	var args []interface{}

	add := func(cond string, arg interface{}) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.Profession != "" {
		add("profession = $%d", filter.Profession)
	}
	if filter.Nationality != "" {
		add("nationality = $%d", filter.Nationality)
	}
	if filter.Gender != "" {
		add("gender = $%d", filter.Gender)
	}
	if filter.Available != nil {
		add("available = $%d", *filter.Available)
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(name_eng ILIKE $%d OR name_arabic ILIKE $%d)", n, n))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *PostgresWorkerRepo) GetByID(ctx context.Context, id string) (*models.Worker, error) {
	row := r.pool.QueryRow(ctx,
		fmt.Sprintf("SELECT %s FROM workers WHERE id = $1", workerColumns), id)

	w, err := scanWorker(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get worker: %w", err)
	}
	return w, nil
}

// GetByIDs returns the workers that exist for the given ids, keyed by id.
// Missing ids are simply absent from the map.
func (r *PostgresWorkerRepo) GetByIDs(ctx context.Context, ids []string) (map[string]*models.Worker, error) {
	result := make(map[string]*models.Worker, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	rows, err := r.pool.Query(ctx,
		fmt.Sprintf("SELECT %s FROM workers WHERE id = ANY($1)", workerColumns), ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get workers: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		w, err := scanWorker(rows)
		if err != nil {
			return nil, err
		}
		result[w.ID] = w
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to get workers: %w", err)
	}

	return result, nil
}

func (r *PostgresWorkerRepo) Upsert(ctx context.Context, w *models.Worker) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO workers (id, name_eng, name_arabic, profession, nationality, gender, age,
			experience_years, languages, monthly_salary, photo_url, resume_url, available,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (id) DO UPDATE SET
			name_eng = EXCLUDED.name_eng,
			name_arabic = EXCLUDED.name_arabic,
			profession = EXCLUDED.profession,
			nationality = EXCLUDED.nationality,
			gender = EXCLUDED.gender,
			age = EXCLUDED.age,
			experience_years = EXCLUDED.experience_years,
			languages = EXCLUDED.languages,
			monthly_salary = EXCLUDED.monthly_salary,
			photo_url = EXCLUDED.photo_url,
			resume_url = EXCLUDED.resume_url,
			available = EXCLUDED.available,
			updated_at = EXCLUDED.updated_at
	`, w.ID, w.NameEng, w.NameArabic, w.Profession, w.Nationality, w.Gender, w.Age,
		w.ExperienceYears, w.Languages, w.MonthlySalary, w.PhotoURL, w.ResumeURL, w.Available,
		w.CreatedAt, w.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to save worker: %w", err)
	}
	return nil
}

func (r *PostgresWorkerRepo) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM workers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete worker: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanWorker(row rowScanner) (*models.Worker, error) {
	var w models.Worker
	err := row.Scan(&w.ID, &w.NameEng, &w.NameArabic, &w.Profession, &w.Nationality,
		&w.Gender, &w.Age, &w.ExperienceYears, &w.Languages, &w.MonthlySalary,
		&w.PhotoURL, &w.ResumeURL, &w.Available, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &w, nil
}
