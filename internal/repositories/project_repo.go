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

// ProjectRepository handles database operations for portfolio projects
type ProjectRepository struct {
	db *database.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *database.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

const projectColumns = `id, title, slug, description, problem, solution, impact, technologies,
	image_url, image_file_id, project_url, github_url, featured, order_index, created_at, updated_at`

func scanProject(row pgx.Row) (*models.Project, error) {
	var p models.Project
	err := row.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Description, &p.Problem, &p.Solution, &p.Impact,
		&p.Technologies, &p.ImageURL, &p.ImageFileID, &p.ProjectURL, &p.GithubURL,
		&p.Featured, &p.OrderIndex, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}
	return &p, nil
}

// List returns all projects ordered for display: featured first, then by
// order index.
func (r *ProjectRepository) List(ctx context.Context) ([]*models.Project, error) {
	query := `
		SELECT ` + projectColumns + `
		FROM projects
		ORDER BY featured DESC, order_index ASC, created_at DESC
	`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}
	defer rows.Close()

	projects := make([]*models.Project, 0)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return projects, nil
}

// GetByID returns a single project by id
func (r *ProjectRepository) GetByID(ctx context.Context, id string) (*models.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`
	return scanProject(r.db.Pool.QueryRow(ctx, query, id))
}

// GetBySlug returns a single project by its public slug
func (r *ProjectRepository) GetBySlug(ctx context.Context, slug string) (*models.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE slug = $1`
	return scanProject(r.db.Pool.QueryRow(ctx, query, slug))
}

// Create inserts a new project and returns it with generated fields
func (r *ProjectRepository) Create(ctx context.Context, p *models.Project) (*models.Project, error) {
	query := `
		INSERT INTO projects (id, title, slug, description, problem, solution, impact, technologies,
			image_url, image_file_id, project_url, github_url, featured, order_index, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $15)
		RETURNING ` + projectColumns

	now := time.Now()
	return scanProject(r.db.Pool.QueryRow(ctx, query,
		uuid.NewString(), p.Title, p.Slug, p.Description, p.Problem, p.Solution, p.Impact,
		p.Technologies, p.ImageURL, p.ImageFileID, p.ProjectURL, p.GithubURL,
		p.Featured, p.OrderIndex, now,
	))
}

// Update replaces the mutable fields of a project
func (r *ProjectRepository) Update(ctx context.Context, id string, p *models.Project) (*models.Project, error) {
	query := `
		UPDATE projects
		SET title = $2, slug = $3, description = $4, problem = $5, solution = $6, impact = $7,
			technologies = $8, image_url = $9, image_file_id = $10, project_url = $11,
			github_url = $12, featured = $13, order_index = $14, updated_at = $15
		WHERE id = $1
		RETURNING ` + projectColumns

	return scanProject(r.db.Pool.QueryRow(ctx, query,
		id, p.Title, p.Slug, p.Description, p.Problem, p.Solution, p.Impact,
		p.Technologies, p.ImageURL, p.ImageFileID, p.ProjectURL, p.GithubURL,
		p.Featured, p.OrderIndex, time.Now(),
	))
}

// Delete removes a project
func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return database.MapPostgresError(err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// Count returns the number of projects, used by the dashboard summary
func (r *ProjectRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM projects`).Scan(&count)
	return count, err
}
