// repository/trust_repository.go
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fadhlanhapp/trust-ledger/models"
)

// TrustRepository handles database operations for trusts
type TrustRepository struct {
	q Querier
}

// Create saves a trust to the database
func (r *TrustRepository) Create(ctx context.Context, trust *models.Trust) error {
	_, err := r.q.ExecContext(ctx,
		"INSERT INTO trusts (id, name, description, contact_email, created_at) VALUES (?, ?, ?, ?, ?)",
		trust.ID, trust.Name, trust.Description, trust.ContactEmail, trust.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert trust: %w", err)
	}
	return nil
}

// Get retrieves a trust by its ID
func (r *TrustRepository) Get(ctx context.Context, id string) (*models.Trust, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}

	var trust models.Trust
	err := r.q.QueryRowContext(ctx,
		"SELECT id, name, description, contact_email, created_at FROM trusts WHERE id = ?",
		id,
	).Scan(&trust.ID, &trust.Name, &trust.Description, &trust.ContactEmail, &trust.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get trust: %w", err)
	}
	return &trust, nil
}

// List retrieves all trusts, newest first
func (r *TrustRepository) List(ctx context.Context) ([]models.Trust, error) {
	rows, err := r.q.QueryContext(ctx,
		"SELECT id, name, description, contact_email, created_at FROM trusts ORDER BY created_at DESC",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list trusts: %w", err)
	}
	defer rows.Close()

	trusts := []models.Trust{}
	for rows.Next() {
		var trust models.Trust
		if err := rows.Scan(&trust.ID, &trust.Name, &trust.Description, &trust.ContactEmail, &trust.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan trust: %w", err)
		}
		trusts = append(trusts, trust)
	}
	return trusts, rows.Err()
}
