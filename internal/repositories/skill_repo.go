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

// SkillRepository handles database operations for skills
type SkillRepository struct {
	db *database.DB
}

// NewSkillRepository creates a new SkillRepository
func NewSkillRepository(db *database.DB) *SkillRepository {
	return &SkillRepository{db: db}
}

const skillColumns = `id, name, category, icon, icon_svg, order_index, is_visible, created_at, updated_at`

func scanSkill(row pgx.Row) (*models.Skill, error) {
	var s models.Skill
	err := row.Scan(
		&s.ID, &s.Name, &s.Category, &s.Icon, &s.IconSVG,
		&s.OrderIndex, &s.IsVisible, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}
	return &s, nil
}

func (r *SkillRepository) collect(rows pgx.Rows) ([]*models.Skill, error) {
	defer rows.Close()

	skills := make([]*models.Skill, 0)
	for rows.Next() {
		s, err := scanSkill(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan skill: %w", err)
		}
		skills = append(skills, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return skills, nil
}

// List returns all skills grouped for admin editing
func (r *SkillRepository) List(ctx context.Context) ([]*models.Skill, error) {
	query := `SELECT ` + skillColumns + ` FROM skills ORDER BY category, order_index ASC`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}
	return r.collect(rows)
}

// ListVisible returns only skills shown on the public site
func (r *SkillRepository) ListVisible(ctx context.Context) ([]*models.Skill, error) {
	query := `SELECT ` + skillColumns + ` FROM skills WHERE is_visible = true ORDER BY category, order_index ASC`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}
	return r.collect(rows)
}

// GetByID returns a single skill
func (r *SkillRepository) GetByID(ctx context.Context, id string) (*models.Skill, error) {
	query := `SELECT ` + skillColumns + ` FROM skills WHERE id = $1`
	return scanSkill(r.db.Pool.QueryRow(ctx, query, id))
}

// Create inserts a new skill
func (r *SkillRepository) Create(ctx context.Context, s *models.Skill) (*models.Skill, error) {
	query := `
		INSERT INTO skills (id, name, category, icon, icon_svg, order_index, is_visible, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		RETURNING ` + skillColumns

	return scanSkill(r.db.Pool.QueryRow(ctx, query,
		uuid.NewString(), s.Name, s.Category, s.Icon, s.IconSVG,
		s.OrderIndex, s.IsVisible, time.Now(),
	))
}

// Update replaces the mutable fields of a skill
func (r *SkillRepository) Update(ctx context.Context, id string, s *models.Skill) (*models.Skill, error) {
	query := `
		UPDATE skills
		SET name = $2, category = $3, icon = $4, icon_svg = $5, order_index = $6,
			is_visible = $7, updated_at = $8
		WHERE id = $1
		RETURNING ` + skillColumns

	return scanSkill(r.db.Pool.QueryRow(ctx, query,
		id, s.Name, s.Category, s.Icon, s.IconSVG, s.OrderIndex, s.IsVisible, time.Now(),
	))
}

// Delete removes a skill
func (r *SkillRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM skills WHERE id = $1`, id)
	if err != nil {
		return database.MapPostgresError(err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// Count returns the number of skills
func (r *SkillRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM skills`).Scan(&count)
	return count, err
}
