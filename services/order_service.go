package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/fadhlanhapp/trust-ledger/gateway"
	"github.com/fadhlanhapp/trust-ledger/metrics"
	"github.com/fadhlanhapp/trust-ledger/models"
	"github.com/fadhlanhapp/trust-ledger/repository"
	"github.com/fadhlanhapp/trust-ledger/utils"
)

// OrderCreator creates payment orders at the gateway. *gateway.Client satisfies it.
type OrderCreator interface {
	CreateOrder(ctx context.Context, req gateway.OrderRequest) (*gateway.Order, error)
	KeyID() string
}

// OrderService prepares gateway orders for donations to a bill
type OrderService struct {
	store    *repository.Store
	gateway  OrderCreator
	currency string
	metrics  *metrics.Metrics
}

// NewOrderService creates a new order service
func NewOrderService(store *repository.Store, gw OrderCreator, currency string, m *metrics.Metrics) *OrderService {
	if currency == "" {
		currency = utils.DefaultCurrency
	}
	return &OrderService{
		store:    store,
		gateway:  gw,
		currency: currency,
		metrics:  m,
	}
}

// CreateOrder creates a gateway order for a donation. The requested amount is
// reduced to whatever the bill still needs.
func (s *OrderService) CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (*models.CreateOrderResponse, error) {
	if req.Amount <= 0 {
		return nil, utils.NewValidationError(utils.ErrInvalidAmount)
	}
	requested := utils.ToMinorUnits(req.Amount)
	if requested <= 0 {
		return nil, utils.NewValidationError(utils.ErrInvalidAmount)
	}

	bill, err := s.store.Repositories().Bills.Get(ctx, req.BillID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.NewNotFoundError("Bill")
		}
		return nil, err
	}
	if bill.Status == utils.BillStatusPaid {
		return nil, utils.NewBadRequestError(utils.ErrBillAlreadyPaid)
	}

	amount := utils.MinInt64(requested, int64(bill.Remaining()))
	if amount <= 0 {
		return nil, utils.NewBadRequestError(utils.ErrBillAlreadyPaid)
	}

	order, err := s.gateway.CreateOrder(ctx, gateway.OrderRequest{
		Amount:         amount,
		Currency:       s.currency,
		PaymentCapture: 1,
		Receipt:        bill.ID,
		Notes:          map[string]string{"bill_id": bill.ID},
	})
	if err != nil {
		slog.Error("Failed to create gateway order", "bill_id", bill.ID, "error", err)
		return nil, utils.NewBadGatewayError(utils.ErrGatewayUnavailable)
	}
	s.metrics.ObserveOrder()

	slog.Info("Gateway order created", "order_id", order.ID, "bill_id", bill.ID, "amount", amount)
	return &models.CreateOrderResponse{
		OrderID:       order.ID,
		Amount:        amount,
		Currency:      s.currency,
		RazorpayKeyID: s.gateway.KeyID(),
	}, nil
}
