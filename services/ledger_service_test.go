package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fadhlanhapp/trust-ledger/models"
	"github.com/fadhlanhapp/trust-ledger/utils"
)

func payment(id, billID string, amount models.Amount) models.CapturedPayment {
	return models.CapturedPayment{
		PaymentID:     id,
		OrderID:       "order_" + id,
		BillID:        billID,
		Amount:        amount,
		Currency:      "INR",
		Email:         "donor@example.org",
		Method:        "upi",
		CreatedAtUnix: 1700000000,
		Raw:           json.RawMessage(`{"id":"` + id + `"}`),
	}
}

func TestLedgerService_RecordPayment_StatusProgression(t *testing.T) {
	store := newTestStore(t)
	bill := seedBill(t, store, 100)
	notifier := &recordingNotifier{}
	ledger := NewLedgerService(store, notifier, nil)
	ctx := context.Background()

	outcome, err := ledger.RecordPayment(ctx, payment("pay_1", bill.ID, 6000))
	require.NoError(t, err)
	assert.Equal(t, OutcomeRecorded, outcome)

	got := reloadBill(t, store, bill.ID)
	assert.Equal(t, models.Amount(6000), got.AmountCollected)
	assert.Equal(t, utils.BillStatusPartiallyPaid, got.Status)

	outcome, err = ledger.RecordPayment(ctx, payment("pay_2", bill.ID, 4000))
	require.NoError(t, err)
	assert.Equal(t, OutcomeRecorded, outcome)

	got = reloadBill(t, store, bill.ID)
	assert.Equal(t, models.Amount(10000), got.AmountCollected)
	assert.Equal(t, utils.BillStatusPaid, got.Status)

	txns, err := store.Repositories().Transactions.ListByBill(ctx, bill.ID)
	require.NoError(t, err)
	assert.Len(t, txns, 2)
	assert.Len(t, auditEntries(t, store, utils.AuditPaymentRecorded), 2)

	events := notifier.Events()
	require.Len(t, events, 2)
	assert.Equal(t, "pay_2", events[1].PaymentID)
	assert.Equal(t, models.Amount(10000), events[1].AmountCollected)
	assert.Equal(t, utils.BillStatusPaid, events[1].Status)
}

func TestLedgerService_RecordPayment_OverpaymentIsKept(t *testing.T) {
	store := newTestStore(t)
	bill := seedBill(t, store, 50)
	ledger := NewLedgerService(store, nil, nil)

	_, err := ledger.RecordPayment(context.Background(), payment("pay_big", bill.ID, 8000))
	require.NoError(t, err)

	got := reloadBill(t, store, bill.ID)
	assert.Equal(t, models.Amount(8000), got.AmountCollected)
	assert.Equal(t, utils.BillStatusPaid, got.Status)
}

func TestLedgerService_RecordPayment_TransactionFingerprint(t *testing.T) {
	store := newTestStore(t)
	bill := seedBill(t, store, 100)
	ledger := NewLedgerService(store, nil, nil)
	ctx := context.Background()

	_, err := ledger.RecordPayment(ctx, payment("pay_hash", bill.ID, 2500))
	require.NoError(t, err)

	txn, err := store.Repositories().Transactions.GetByPaymentID(ctx, "pay_hash")
	require.NoError(t, err)
	assert.Equal(t, bill.TrustID, txn.TrustID)
	assert.Equal(t, "donor@example.org", txn.DonorEmail)

	expected, err := utils.CanonicalHash(models.TransactionMeta{
		PaymentID:     "pay_hash",
		OrderID:       "order_pay_hash",
		BillID:        bill.ID,
		TrustID:       bill.TrustID,
		Amount:        25,
		Currency:      "INR",
		Email:         "donor@example.org",
		Method:        "upi",
		CreatedAtUnix: 1700000000,
	})
	require.NoError(t, err)
	assert.Equal(t, expected, txn.CanonicalHash)
	assert.Len(t, txn.CanonicalHash, 64)

	entries := auditEntries(t, store, utils.AuditPaymentRecorded)
	require.Len(t, entries, 1)
	assert.Equal(t, utils.RefTableTransactions, entries[0].RefTable)
	assert.Equal(t, "pay_hash", entries[0].RefID)

	var data struct {
		TxnMeta models.TransactionMeta `json:"txn_meta"`
		Hash    string                 `json:"hash"`
	}
	require.NoError(t, json.Unmarshal(entries[0].Data, &data))
	assert.Equal(t, expected, data.Hash)
	assert.Equal(t, bill.ID, data.TxnMeta.BillID)
}

func TestLedgerService_RecordPayment_UnknownBill(t *testing.T) {
	store := newTestStore(t)
	bill := seedBill(t, store, 100)
	notifier := &recordingNotifier{}
	ledger := NewLedgerService(store, notifier, nil)
	ctx := context.Background()

	tests := []struct {
		name      string
		paymentID string
		billID    string
	}{
		{"well formed but absent id", "pay_missing", "00000000-0000-0000-0000-000000000000"},
		{"not a uuid", "pay_garbage", "not-a-bill"},
		{"no bill id", "pay_empty", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome, err := ledger.RecordPayment(ctx, payment(tt.paymentID, tt.billID, 1000))
			require.NoError(t, err)
			assert.Equal(t, OutcomeBillNotFound, outcome)

			_, err = store.Repositories().Transactions.GetByPaymentID(ctx, tt.paymentID)
			assert.Error(t, err)
		})
	}

	entries := auditEntries(t, store, utils.AuditPaymentForUnknownBill)
	require.Len(t, entries, len(tests))
	assert.Equal(t, utils.RefTableGateway, entries[0].RefTable)
	assert.Equal(t, "pay_empty", entries[0].RefID)
	assert.JSONEq(t, `{"id":"pay_empty"}`, string(entries[0].Data))

	assert.Empty(t, auditEntries(t, store, utils.AuditPaymentRecorded))
	assert.Empty(t, notifier.Events())

	got := reloadBill(t, store, bill.ID)
	assert.Equal(t, models.Amount(0), got.AmountCollected)
	assert.Equal(t, utils.BillStatusOpen, got.Status)
}

func TestLedgerService_RecordPayment_Replay(t *testing.T) {
	store := newTestStore(t)
	bill := seedBill(t, store, 100)
	notifier := &recordingNotifier{}
	ledger := NewLedgerService(store, notifier, nil)
	ctx := context.Background()

	outcome, err := ledger.RecordPayment(ctx, payment("pay_dup", bill.ID, 3000))
	require.NoError(t, err)
	assert.Equal(t, OutcomeRecorded, outcome)

	outcome, err = ledger.RecordPayment(ctx, payment("pay_dup", bill.ID, 3000))
	require.NoError(t, err)
	assert.Equal(t, OutcomeDuplicate, outcome)

	txns, err := store.Repositories().Transactions.ListByBill(ctx, bill.ID)
	require.NoError(t, err)
	assert.Len(t, txns, 1)

	got := reloadBill(t, store, bill.ID)
	assert.Equal(t, models.Amount(3000), got.AmountCollected)

	dups := auditEntries(t, store, utils.AuditPaymentDuplicate)
	require.Len(t, dups, 1)
	assert.Equal(t, "pay_dup", dups[0].RefID)
	assert.Len(t, notifier.Events(), 1)
}

func TestLedgerService_VerifyPayment(t *testing.T) {
	store := newTestStore(t)
	bill := seedBill(t, store, 100)
	ledger := NewLedgerService(store, nil, nil)
	ctx := context.Background()

	_, err := ledger.RecordPayment(ctx, payment("pay_verify", bill.ID, 1500))
	require.NoError(t, err)

	t.Run("Recorded payment", func(t *testing.T) {
		v, err := ledger.VerifyPayment(ctx, "pay_verify")
		require.NoError(t, err)
		assert.Equal(t, bill.ID, v.BillID)
		assert.Equal(t, bill.TrustID, v.TrustID)
		assert.Equal(t, models.Amount(1500), v.Amount)
		assert.True(t, v.HashValid)
	})

	t.Run("Tampered metadata", func(t *testing.T) {
		_, err := store.DB().ExecContext(ctx,
			"UPDATE transactions SET raw_meta = ? WHERE payment_id = ?",
			`{"amount":9999}`, "pay_verify",
		)
		require.NoError(t, err)

		v, err := ledger.VerifyPayment(ctx, "pay_verify")
		require.NoError(t, err)
		assert.False(t, v.HashValid)
	})

	t.Run("Unknown payment", func(t *testing.T) {
		_, err := ledger.VerifyPayment(ctx, "pay_nope")
		var appErr *utils.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 404, appErr.Code)
	})
}

func TestLedgerService_AuditLog(t *testing.T) {
	store := newTestStore(t)
	bill := seedBill(t, store, 100)
	ledger := NewLedgerService(store, nil, nil)
	ctx := context.Background()

	_, err := ledger.RecordPayment(ctx, payment("pay_a", bill.ID, 1000))
	require.NoError(t, err)
	_, err = ledger.RecordPayment(ctx, payment("pay_b", "", 1000))
	require.NoError(t, err)

	all, err := ledger.AuditLog(ctx, "", 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	unknown, err := ledger.AuditLog(ctx, utils.AuditPaymentForUnknownBill, 10)
	require.NoError(t, err)
	require.Len(t, unknown, 1)
	assert.Equal(t, "pay_b", unknown[0].RefID)
}
