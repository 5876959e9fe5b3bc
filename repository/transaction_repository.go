// repository/transaction_repository.go
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fadhlanhapp/trust-ledger/models"
)

const transactionColumns = `id, bill_id, trust_id, payment_id, order_id, donor_email,
	amount, currency, canonical_hash, raw_meta, created_at`

// TransactionRepository handles ledger entries. Entries are insert-only.
type TransactionRepository struct {
	q Querier
}

func scanTransaction(row rowScanner) (*models.Transaction, error) {
	var (
		txn     models.Transaction
		rawMeta []byte
	)
	err := row.Scan(
		&txn.ID, &txn.BillID, &txn.TrustID, &txn.PaymentID, &txn.OrderID, &txn.DonorEmail,
		&txn.Amount, &txn.Currency, &txn.CanonicalHash, &rawMeta, &txn.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	txn.RawMeta = rawMeta
	return &txn, nil
}

// Create inserts a transaction and sets its sequential ID
func (r *TransactionRepository) Create(ctx context.Context, txn *models.Transaction) error {
	err := r.q.QueryRowContext(ctx,
		`INSERT INTO transactions
		 (bill_id, trust_id, payment_id, order_id, donor_email, amount, currency,
		  canonical_hash, raw_meta, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 RETURNING id`,
		txn.BillID, txn.TrustID, txn.PaymentID, txn.OrderID, txn.DonorEmail,
		int64(txn.Amount), txn.Currency, txn.CanonicalHash, string(txn.RawMeta), txn.CreatedAt,
	).Scan(&txn.ID)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

// ExistsByPaymentID reports whether a payment was already recorded
func (r *TransactionRepository) ExistsByPaymentID(ctx context.Context, paymentID string) (bool, error) {
	var count int
	err := r.q.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM transactions WHERE payment_id = ?", paymentID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check payment: %w", err)
	}
	return count > 0, nil
}

// GetByPaymentID retrieves the transaction recorded for a gateway payment
func (r *TransactionRepository) GetByPaymentID(ctx context.Context, paymentID string) (*models.Transaction, error) {
	txn, err := scanTransaction(r.q.QueryRowContext(ctx,
		"SELECT "+transactionColumns+" FROM transactions WHERE payment_id = ?", paymentID,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return txn, nil
}

// ListByBill retrieves all transactions for a bill, newest first
func (r *TransactionRepository) ListByBill(ctx context.Context, billID string) ([]models.Transaction, error) {
	txns := []models.Transaction{}
	if !validID(billID) {
		return txns, nil
	}

	rows, err := r.q.QueryContext(ctx,
		"SELECT "+transactionColumns+" FROM transactions WHERE bill_id = ? ORDER BY created_at DESC, id DESC",
		billID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txns = append(txns, *txn)
	}
	return txns, rows.Err()
}
