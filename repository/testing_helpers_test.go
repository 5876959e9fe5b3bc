package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/fadhlanhapp/trust-ledger/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(context.Background(), DialectSQLite, filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func seedBill(t *testing.T, store *Store, required models.Amount) (*models.Trust, *models.Bill) {
	t.Helper()
	ctx := context.Background()
	repos := store.Repositories()

	trust := models.NewTrust(uuid.NewString(), "Village School Trust", "", "ops@example.org")
	require.NoError(t, repos.Trusts.Create(ctx, trust))

	bill := models.NewBill(uuid.NewString(), trust.ID, "Roof repair", "", required)
	require.NoError(t, repos.Bills.Create(ctx, bill))
	return trust, bill
}
