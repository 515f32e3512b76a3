package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/bagaswara/porto/internal/database"
	"github.com/bagaswara/porto/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ExperienceRepository handles database operations for work experience
type ExperienceRepository struct {
	db *database.DB
}

// NewExperienceRepository creates a new ExperienceRepository
func NewExperienceRepository(db *database.DB) *ExperienceRepository {
	return &ExperienceRepository{db: db}
}

const experienceColumns = `id, company, position, description, start_date, end_date,
	is_current, order_index, created_at, updated_at`

func scanExperience(row pgx.Row) (*models.Experience, error) {
	var e models.Experience
	err := row.Scan(
		&e.ID, &e.Company, &e.Position, &e.Description, &e.StartDate, &e.EndDate,
		&e.IsCurrent, &e.OrderIndex, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}
	return &e, nil
}

// List returns experience entries, current roles first, then newest start date
func (r *ExperienceRepository) List(ctx context.Context) ([]*models.Experience, error) {
	query := `
		SELECT ` + experienceColumns + `
		FROM work_experience
		ORDER BY is_current DESC, start_date DESC, order_index ASC
	`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}
	defer rows.Close()

	entries := make([]*models.Experience, 0)
	for rows.Next() {
		e, err := scanExperience(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan experience: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return entries, nil
}

// GetByID returns a single experience entry
func (r *ExperienceRepository) GetByID(ctx context.Context, id string) (*models.Experience, error) {
	query := `SELECT ` + experienceColumns + ` FROM work_experience WHERE id = $1`
	return scanExperience(r.db.Pool.QueryRow(ctx, query, id))
}

// Create inserts a new experience entry
func (r *ExperienceRepository) Create(ctx context.Context, e *models.Experience) (*models.Experience, error) {
	query := `
		INSERT INTO work_experience (id, company, position, description, start_date, end_date,
			is_current, order_index, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
		RETURNING ` + experienceColumns

	return scanExperience(r.db.Pool.QueryRow(ctx, query,
		uuid.NewString(), e.Company, e.Position, e.Description, e.StartDate, e.EndDate,
		e.IsCurrent, e.OrderIndex, time.Now(),
	))
}

// Update replaces the mutable fields of an experience entry
func (r *ExperienceRepository) Update(ctx context.Context, id string, e *models.Experience) (*models.Experience, error) {
	query := `
		UPDATE work_experience
		SET company = $2, position = $3, description = $4, start_date = $5, end_date = $6,
			is_current = $7, order_index = $8, updated_at = $9
		WHERE id = $1
		RETURNING ` + experienceColumns

	return scanExperience(r.db.Pool.QueryRow(ctx, query,
		id, e.Company, e.Position, e.Description, e.StartDate, e.EndDate,
		e.IsCurrent, e.OrderIndex, time.Now(),
	))
}

// Delete removes an experience entry
func (r *ExperienceRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM work_experience WHERE id = $1`, id)
	if err != nil {
		return database.MapPostgresError(err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// Count returns the number of experience entries
func (r *ExperienceRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM work_experience`).Scan(&count)
	return count, err
}
