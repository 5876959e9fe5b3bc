package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"

	"github.com/fadhlanhapp/trust-ledger/metrics"
	"github.com/fadhlanhapp/trust-ledger/models"
	"github.com/fadhlanhapp/trust-ledger/repository"
	"github.com/fadhlanhapp/trust-ledger/utils"
)

// LedgerOutcome says what RecordPayment did with a payment
type LedgerOutcome string

const (
	OutcomeRecorded     LedgerOutcome = "recorded"
	OutcomeBillNotFound LedgerOutcome = "bill_not_found"
	OutcomeDuplicate    LedgerOutcome = "duplicate"
)

// PaymentNotifier is told about payments once they are committed
type PaymentNotifier interface {
	PaymentRecorded(event models.PaymentRecordedEvent)
}

// LedgerService applies captured payments to bills
type LedgerService struct {
	store    *repository.Store
	notifier PaymentNotifier
	metrics  *metrics.Metrics
	now      func() time.Time
}

// NewLedgerService creates a new ledger service. notifier and m may be nil.
func NewLedgerService(store *repository.Store, notifier PaymentNotifier, m *metrics.Metrics) *LedgerService {
	return &LedgerService{
		store:    store,
		notifier: notifier,
		metrics:  m,
		now:      time.Now,
	}
}

// RecordPayment records a captured payment against its bill. Everything it
// writes is committed in one transaction or not at all.
//
// A payment for a bill that does not exist is logged as an anomaly. A payment
// id that was already recorded is logged and leaves the bill untouched.
func (s *LedgerService) RecordPayment(ctx context.Context, payment models.CapturedPayment) (LedgerOutcome, error) {
	defer newrelic.FromContext(ctx).StartSegment("ledger/RecordPayment").End()

	var (
		outcome LedgerOutcome
		event   *models.PaymentRecordedEvent
	)
	now := s.now().UnixMilli()

	err := s.store.WithTx(ctx, func(repos *repository.Repositories) error {
		bill, err := repos.Bills.Get(ctx, payment.BillID)
		if errors.Is(err, repository.ErrNotFound) {
			outcome = OutcomeBillNotFound
			return repos.Audit.Append(ctx, &models.AuditLog{
				EventType: utils.AuditPaymentForUnknownBill,
				RefTable:  utils.RefTableGateway,
				RefID:     payment.PaymentID,
				Data:      rawOrEmpty(payment.Raw),
				CreatedAt: now,
			})
		}
		if err != nil {
			return err
		}

		recorded, err := repos.Transactions.ExistsByPaymentID(ctx, payment.PaymentID)
		if err != nil {
			return err
		}
		if recorded {
			outcome = OutcomeDuplicate
			data, err := json.Marshal(map[string]any{
				"bill_id":  bill.ID,
				"amount":   payment.Amount.Major(),
				"currency": payment.Currency,
			})
			if err != nil {
				return err
			}
			return repos.Audit.Append(ctx, &models.AuditLog{
				EventType: utils.AuditPaymentDuplicate,
				RefTable:  utils.RefTableTransactions,
				RefID:     payment.PaymentID,
				Data:      data,
				CreatedAt: now,
			})
		}

		meta := models.TransactionMeta{
			PaymentID:     payment.PaymentID,
			OrderID:       payment.OrderID,
			BillID:        bill.ID,
			TrustID:       bill.TrustID,
			Amount:        payment.Amount.Major(),
			Currency:      payment.Currency,
			Email:         payment.Email,
			Contact:       payment.Contact,
			Method:        payment.Method,
			CreatedAtUnix: payment.CreatedAtUnix,
		}
		canonical, err := utils.Canonicalize(meta)
		if err != nil {
			return fmt.Errorf("failed to canonicalize transaction metadata: %w", err)
		}
		hash := utils.SHA256Hex(canonical)

		txn := &models.Transaction{
			BillID:        bill.ID,
			TrustID:       bill.TrustID,
			PaymentID:     payment.PaymentID,
			OrderID:       payment.OrderID,
			DonorEmail:    payment.Email,
			Amount:        payment.Amount,
			Currency:      payment.Currency,
			CanonicalHash: hash,
			RawMeta:       canonical,
			CreatedAt:     now,
		}
		if err := repos.Transactions.Create(ctx, txn); err != nil {
			return err
		}

		collected, status, err := repos.Bills.Credit(ctx, bill.ID, payment.Amount)
		if err != nil {
			return err
		}

		auditData, err := json.Marshal(map[string]any{
			"txn_meta": meta,
			"hash":     hash,
		})
		if err != nil {
			return err
		}
		if err := repos.Audit.Append(ctx, &models.AuditLog{
			EventType: utils.AuditPaymentRecorded,
			RefTable:  utils.RefTableTransactions,
			RefID:     payment.PaymentID,
			Data:      auditData,
			CreatedAt: now,
		}); err != nil {
			return err
		}

		outcome = OutcomeRecorded
		event = &models.PaymentRecordedEvent{
			PaymentID:       payment.PaymentID,
			BillID:          bill.ID,
			TrustID:         bill.TrustID,
			Amount:          payment.Amount,
			Currency:        payment.Currency,
			AmountCollected: collected,
			Status:          status,
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to record payment %s: %w", payment.PaymentID, err)
	}

	switch outcome {
	case OutcomeRecorded:
		s.metrics.ObserveCredit(payment.Currency, int64(payment.Amount))
		slog.Info("Payment recorded",
			"payment_id", payment.PaymentID,
			"bill_id", event.BillID,
			"amount", payment.Amount.Major(),
			"status", event.Status,
		)
		if s.notifier != nil {
			s.notifier.PaymentRecorded(*event)
		}
	case OutcomeBillNotFound:
		slog.Warn("Payment for unknown bill", "payment_id", payment.PaymentID, "bill_id", payment.BillID)
	case OutcomeDuplicate:
		slog.Warn("Duplicate payment delivery ignored", "payment_id", payment.PaymentID)
	}
	return outcome, nil
}

// VerifyPayment looks up a recorded payment and re-checks its fingerprint
func (s *LedgerService) VerifyPayment(ctx context.Context, paymentID string) (*models.Verification, error) {
	txn, err := s.store.Repositories().Transactions.GetByPaymentID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.NewNotFoundError("Transaction")
		}
		return nil, err
	}

	hashValid := false
	if hash, err := utils.CanonicalHash(txn.RawMeta); err == nil {
		hashValid = utils.SecureEqual(hash, txn.CanonicalHash)
	} else {
		slog.Warn("Stored transaction metadata is not valid JSON", "payment_id", paymentID, "error", err)
	}

	return &models.Verification{
		PaymentID:     txn.PaymentID,
		BillID:        txn.BillID,
		TrustID:       txn.TrustID,
		Amount:        txn.Amount,
		Currency:      txn.Currency,
		CanonicalHash: txn.CanonicalHash,
		HashValid:     hashValid,
		CreatedAt:     txn.CreatedAt,
	}, nil
}

// AuditLog returns recent audit entries, optionally of one event type
func (s *LedgerService) AuditLog(ctx context.Context, eventType string, limit int) ([]models.AuditLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	return s.store.Repositories().Audit.List(ctx, eventType, limit)
}

func rawOrEmpty(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 || !json.Valid(raw) {
		return json.RawMessage("{}")
	}
	return raw
}
