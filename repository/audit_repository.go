// repository/audit_repository.go
package repository

import (
	"context"
	"fmt"

	"github.com/fadhlanhapp/trust-ledger/models"
)

// AuditRepository appends to the audit log
type AuditRepository struct {
	q Querier
}

// Append inserts an audit entry and sets its sequential ID
func (r *AuditRepository) Append(ctx context.Context, entry *models.AuditLog) error {
	err := r.q.QueryRowContext(ctx,
		`INSERT INTO audit_log (event_type, ref_table, ref_id, data, created_at)
		 VALUES (?, ?, ?, ?, ?)
		 RETURNING id`,
		entry.EventType, entry.RefTable, entry.RefID, string(entry.Data), entry.CreatedAt,
	).Scan(&entry.ID)
	if err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}
	return nil
}

// List returns the most recent entries, optionally filtered by event type
func (r *AuditRepository) List(ctx context.Context, eventType string, limit int) ([]models.AuditLog, error) {
	query := "SELECT id, event_type, ref_table, ref_id, data, created_at FROM audit_log"
	args := []any{}
	if eventType != "" {
		query += " WHERE event_type = ?"
		args = append(args, eventType)
	}
	query += " ORDER BY id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit log: %w", err)
	}
	defer rows.Close()

	entries := []models.AuditLog{}
	for rows.Next() {
		var (
			entry models.AuditLog
			data  []byte
		)
		if err := rows.Scan(&entry.ID, &entry.EventType, &entry.RefTable, &entry.RefID, &data, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		entry.Data = data
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
