// repository/bill_repository.go
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fadhlanhapp/trust-ledger/models"
)

const billColumns = `id, trust_id, title, description, amount_required, amount_collected,
	status, due_date, invoice_url, created_at`

// BillRepository handles database operations for bills
type BillRepository struct {
	q Querier
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBill(row rowScanner) (*models.Bill, error) {
	var bill models.Bill
	err := row.Scan(
		&bill.ID, &bill.TrustID, &bill.Title, &bill.Description,
		&bill.AmountRequired, &bill.AmountCollected,
		&bill.Status, &bill.DueDate, &bill.InvoiceURL, &bill.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &bill, nil
}

// Create saves a bill to the database
func (r *BillRepository) Create(ctx context.Context, bill *models.Bill) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO bills (`+billColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		bill.ID, bill.TrustID, bill.Title, bill.Description,
		int64(bill.AmountRequired), int64(bill.AmountCollected),
		bill.Status, bill.DueDate, bill.InvoiceURL, bill.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert bill: %w", err)
	}
	return nil
}

// Get retrieves a bill by its ID
func (r *BillRepository) Get(ctx context.Context, id string) (*models.Bill, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}

	bill, err := scanBill(r.q.QueryRowContext(ctx,
		"SELECT "+billColumns+" FROM bills WHERE id = ?", id,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}
	return bill, nil
}

// ListByTrust retrieves all bills owned by a trust, newest first
func (r *BillRepository) ListByTrust(ctx context.Context, trustID string) ([]models.Bill, error) {
	bills := []models.Bill{}
	if !validID(trustID) {
		return bills, nil
	}

	rows, err := r.q.QueryContext(ctx,
		"SELECT "+billColumns+" FROM bills WHERE trust_id = ? ORDER BY created_at DESC",
		trustID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		bill, err := scanBill(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bill: %w", err)
		}
		bills = append(bills, *bill)
	}
	return bills, rows.Err()
}

// Credit adds amount to the bill's collected total and recomputes its status
// in the same statement, so concurrent credits never overwrite each other.
// Over-payment is kept as is.
func (r *BillRepository) Credit(ctx context.Context, id string, amount models.Amount) (models.Amount, string, error) {
	var (
		collected models.Amount
		status    string
	)
	err := r.q.QueryRowContext(ctx,
		`UPDATE bills
		 SET amount_collected = amount_collected + ?,
		     status = CASE
		         WHEN amount_collected + ? >= amount_required THEN 'PAID'
		         WHEN amount_collected + ? > 0 THEN 'PARTIALLY_PAID'
		         ELSE status
		     END
		 WHERE id = ?
		 RETURNING amount_collected, status`,
		int64(amount), int64(amount), int64(amount), id,
	).Scan(&collected, &status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, "", ErrNotFound
		}
		return 0, "", fmt.Errorf("failed to credit bill: %w", err)
	}
	return collected, status, nil
}
