package flatfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopterm/shopterm/internal/core/account"
)

func newTestAccountStore(t *testing.T) *AccountStore {
	t.Helper()
	return NewAccountStore(filepath.Join(t.TempDir(), "accounts.txt"), zerolog.Nop())
}

func TestAccountStore_RoundTrip(t *testing.T) {
	t.Parallel()
	store := newTestAccountStore(t)
	ctx := context.Background()

	in := []account.Account{
		{
			Email:      "ada@example.com",
			Password:   "hunter2",
			Role:       account.RoleCustomer,
			CreditCard: "4111111111111111",
			DebitCard:  "",
			Address:    "1 Main St, Springfield, IL",
			Cart:       []string{"011", "012", "011"},
		},
		{
			Email:    "staff@example.com",
			Password: "secret",
			Role:     account.RoleWorker,
		},
	}
	require.NoError(t, store.SaveAll(ctx, in))

	out, err := store.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, out, 2)

	// Address commas survive the ":" re-encoding, and cart order is kept.
	assert.Equal(t, "1 Main St, Springfield, IL", out[0].Address)
	assert.Equal(t, []string{"011", "012", "011"}, out[0].Cart)
	assert.Equal(t, account.RoleWorker, out[1].Role)
	assert.Empty(t, out[1].Cart)
}

func TestAccountStore_LoadAll(t *testing.T) {
	t.Parallel()

	t.Run("missing file is empty, not an error", func(t *testing.T) {
		t.Parallel()
		store := newTestAccountStore(t)

		out, err := store.LoadAll(context.Background())
		require.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("malformed lines are skipped", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "accounts.txt")
		raw := "ada@example.com,pw,customer,,,Home\n" +
			"too,few,fields\n" +
			"bob@example.com,pw,alien,,,Home\n" +
			"carl@example.com,pw,worker,,,Home\n"
		require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

		store := NewAccountStore(path, zerolog.Nop())
		out, err := store.LoadAll(context.Background())
		require.NoError(t, err)
		require.Len(t, out, 2)
		assert.Equal(t, "ada@example.com", out[0].Email)
		assert.Equal(t, "carl@example.com", out[1].Email)
	})
}

func TestAccountStore_Upsert(t *testing.T) {
	t.Parallel()
	store := newTestAccountStore(t)
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, account.Account{
		Email: "ada@example.com", Password: "pw", Role: account.RoleCustomer,
	}))
	require.NoError(t, store.Upsert(ctx, account.Account{
		Email: "bob@example.com", Password: "pw", Role: account.RoleCustomer,
	}))

	// Replacing an existing record keeps its position and the other rows.
	require.NoError(t, store.Upsert(ctx, account.Account{
		Email: "ada@example.com", Password: "pw", Role: account.RoleCustomer,
		Cart: []string{"013"},
	}))

	out, err := store.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "ada@example.com", out[0].Email)
	assert.Equal(t, []string{"013"}, out[0].Cart)
	assert.Equal(t, "bob@example.com", out[1].Email)
}
