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

// CertificateRepository handles database operations for certificates
type CertificateRepository struct {
	db *database.DB
}

// NewCertificateRepository creates a new CertificateRepository
func NewCertificateRepository(db *database.DB) *CertificateRepository {
	return &CertificateRepository{db: db}
}

const certificateColumns = `id, title, provider, issue_date, credential_id, credential_url,
	image_url, description, order_index, created_at, updated_at`

func scanCertificate(row pgx.Row) (*models.Certificate, error) {
	var c models.Certificate
	err := row.Scan(
		&c.ID, &c.Title, &c.Provider, &c.IssueDate, &c.CredentialID, &c.CredentialURL,
		&c.ImageURL, &c.Description, &c.OrderIndex, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}
	return &c, nil
}

// List returns all certificates, newest first within manual ordering
func (r *CertificateRepository) List(ctx context.Context) ([]*models.Certificate, error) {
	query := `SELECT ` + certificateColumns + ` FROM certificates ORDER BY order_index ASC, issue_date DESC NULLS LAST`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}
	defer rows.Close()

	certificates := make([]*models.Certificate, 0)
	for rows.Next() {
		c, err := scanCertificate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan certificate: %w", err)
		}
		certificates = append(certificates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return certificates, nil
}

// GetByID returns a single certificate
func (r *CertificateRepository) GetByID(ctx context.Context, id string) (*models.Certificate, error) {
	query := `SELECT ` + certificateColumns + ` FROM certificates WHERE id = $1`
	return scanCertificate(r.db.Pool.QueryRow(ctx, query, id))
}

// Create inserts a new certificate
func (r *CertificateRepository) Create(ctx context.Context, c *models.Certificate) (*models.Certificate, error) {
	query := `
		INSERT INTO certificates (id, title, provider, issue_date, credential_id, credential_url,
			image_url, description, order_index, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
		RETURNING ` + certificateColumns

	return scanCertificate(r.db.Pool.QueryRow(ctx, query,
		uuid.NewString(), c.Title, c.Provider, c.IssueDate, c.CredentialID, c.CredentialURL,
		c.ImageURL, c.Description, c.OrderIndex, time.Now(),
	))
}

// Update replaces the mutable fields of a certificate
func (r *CertificateRepository) Update(ctx context.Context, id string, c *models.Certificate) (*models.Certificate, error) {
	query := `
		UPDATE certificates
		SET title = $2, provider = $3, issue_date = $4, credential_id = $5, credential_url = $6,
			image_url = $7, description = $8, order_index = $9, updated_at = $10
		WHERE id = $1
		RETURNING ` + certificateColumns

	return scanCertificate(r.db.Pool.QueryRow(ctx, query,
		id, c.Title, c.Provider, c.IssueDate, c.CredentialID, c.CredentialURL,
		c.ImageURL, c.Description, c.OrderIndex, time.Now(),
	))
}

// Delete removes a certificate
func (r *CertificateRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM certificates WHERE id = $1`, id)
	if err != nil {
		return database.MapPostgresError(err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// Count returns the number of certificates
func (r *CertificateRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM certificates`).Scan(&count)
	return count, err
}
