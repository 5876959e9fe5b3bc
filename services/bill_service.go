package services

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fadhlanhapp/trust-ledger/models"
	"github.com/fadhlanhapp/trust-ledger/repository"
	"github.com/fadhlanhapp/trust-ledger/utils"
)

// BillService handles bill business logic
type BillService struct {
	store *repository.Store
	now   func() time.Time
}

// NewBillService creates a new bill service
func NewBillService(store *repository.Store) *BillService {
	return &BillService{store: store, now: time.Now}
}

// CreateBill opens a new bill for an existing trust
func (s *BillService) CreateBill(ctx context.Context, req *models.CreateBillRequest) (*models.Bill, error) {
	title := strings.TrimSpace(req.Title)
	if err := utils.ValidateRequired(title, "title"); err != nil {
		return nil, err
	}
	if err := utils.ValidatePositive(req.AmountRequired, "amount_required"); err != nil {
		return nil, err
	}
	required := utils.ToMinorUnits(req.AmountRequired)
	if required <= 0 {
		return nil, utils.NewValidationError(utils.ErrInvalidAmount)
	}
	dueDate := strings.TrimSpace(req.DueDate)
	if err := utils.ValidateOptionalDate(dueDate, "due_date"); err != nil {
		return nil, err
	}
	invoiceURL := strings.TrimSpace(req.InvoiceURL)
	if invoiceURL != "" {
		if u, err := url.ParseRequestURI(invoiceURL); err != nil || u.Host == "" {
			return nil, utils.NewValidationError("invoice_url must be an absolute URL")
		}
	}

	repos := s.store.Repositories()
	if _, err := repos.Trusts.Get(ctx, req.TrustID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.NewNotFoundError("Trust")
		}
		return nil, err
	}

	bill := models.NewBill(uuid.NewString(), req.TrustID, title, strings.TrimSpace(req.Description), models.Amount(required))
	bill.DueDate = dueDate
	bill.InvoiceURL = invoiceURL
	bill.CreatedAt = s.now().UnixMilli()

	if err := repos.Bills.Create(ctx, bill); err != nil {
		return nil, err
	}
	return bill, nil
}

// GetBill retrieves a bill by id
func (s *BillService) GetBill(ctx context.Context, id string) (*models.Bill, error) {
	bill, err := s.store.Repositories().Bills.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, utils.NewNotFoundError("Bill")
	}
	return bill, err
}

// ListBillsByTrust returns a trust's bills, newest first
func (s *BillService) ListBillsByTrust(ctx context.Context, trustID string) ([]models.Bill, error) {
	repos := s.store.Repositories()
	if _, err := repos.Trusts.Get(ctx, trustID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.NewNotFoundError("Trust")
		}
		return nil, err
	}
	return repos.Bills.ListByTrust(ctx, trustID)
}

// GetBillDetail returns a bill with its transactions, newest first
func (s *BillService) GetBillDetail(ctx context.Context, id string) (*models.BillDetail, error) {
	bill, err := s.GetBill(ctx, id)
	if err != nil {
		return nil, err
	}
	txns, err := s.store.Repositories().Transactions.ListByBill(ctx, bill.ID)
	if err != nil {
		return nil, err
	}
	return &models.BillDetail{Bill: bill, Transactions: txns}, nil
}
