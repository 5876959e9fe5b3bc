package services

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fadhlanhapp/trust-ledger/gateway"
	"github.com/fadhlanhapp/trust-ledger/models"
	"github.com/fadhlanhapp/trust-ledger/repository"
	"github.com/fadhlanhapp/trust-ledger/utils"
)

const testWebhookSecret = "whsec_test"

func newTestStore(t *testing.T) *repository.Store {
	t.Helper()
	store, err := repository.Open(context.Background(), repository.DialectSQLite, filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

// seedBill creates a trust and a bill requiring required major units
func seedBill(t *testing.T, store *repository.Store, required float64) *models.Bill {
	t.Helper()
	ctx := context.Background()

	trust, err := NewTrustService(store).CreateTrust(ctx, &models.CreateTrustRequest{Name: "Village School Trust"})
	require.NoError(t, err)

	bill, err := NewBillService(store).CreateBill(ctx, &models.CreateBillRequest{
		TrustID:        trust.ID,
		Title:          "Roof repair",
		AmountRequired: required,
	})
	require.NoError(t, err)
	return bill
}

func reloadBill(t *testing.T, store *repository.Store, id string) *models.Bill {
	t.Helper()
	bill, err := store.Repositories().Bills.Get(context.Background(), id)
	require.NoError(t, err)
	return bill
}

func auditEntries(t *testing.T, store *repository.Store, eventType string) []models.AuditLog {
	t.Helper()
	entries, err := store.Repositories().Audit.List(context.Background(), eventType, 100)
	require.NoError(t, err)
	return entries
}

// capturedBody builds a payment.captured webhook body. amount is in minor units.
func capturedBody(t *testing.T, paymentID, billID string, amount int64) []byte {
	t.Helper()
	notes := any([]any{})
	if billID != "" {
		notes = map[string]string{"bill_id": billID}
	}
	body, err := json.Marshal(map[string]any{
		"event": utils.EventPaymentCaptured,
		"payload": map[string]any{
			"payment": map[string]any{
				"entity": map[string]any{
					"id":         paymentID,
					"order_id":   "order_" + paymentID,
					"amount":     amount,
					"currency":   "INR",
					"email":      "donor@example.org",
					"contact":    "+919999999999",
					"method":     "upi",
					"created_at": 1700000000,
					"notes":      notes,
				},
			},
		},
	})
	require.NoError(t, err)
	return body
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []models.PaymentRecordedEvent
}

func (n *recordingNotifier) PaymentRecorded(event models.PaymentRecordedEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

func (n *recordingNotifier) Events() []models.PaymentRecordedEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]models.PaymentRecordedEvent(nil), n.events...)
}

type fakeGateway struct {
	requests []gateway.OrderRequest
	err      error
}

func (g *fakeGateway) CreateOrder(_ context.Context, req gateway.OrderRequest) (*gateway.Order, error) {
	if g.err != nil {
		return nil, g.err
	}
	g.requests = append(g.requests, req)
	return &gateway.Order{
		ID:       fmt.Sprintf("order_%d", len(g.requests)),
		Amount:   req.Amount,
		Currency: req.Currency,
		Status:   "created",
	}, nil
}

func (g *fakeGateway) KeyID() string {
	return "rzp_test_key"
}
