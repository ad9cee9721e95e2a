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
	"github.com/shopterm/shopterm/internal/core/messaging"
)

func newTestMessageStore(t *testing.T) *MessageStore {
	t.Helper()
	return NewMessageStore(filepath.Join(t.TempDir(), "messages.txt"), zerolog.Nop())
}

func TestMessageStore_Append(t *testing.T) {
	t.Parallel()
	store := newTestMessageStore(t)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, "ada@example.com", account.RoleCustomer, "where is my order?"))
	require.NoError(t, store.Append(ctx, "ada@example.com", account.RoleWorker, "it shipped today"))
	require.NoError(t, store.Append(ctx, "bob@example.com", account.RoleCustomer, "hi"))

	emails, err := store.Emails(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"ada@example.com", "bob@example.com"}, emails)

	history, err := store.History(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, []messaging.Entry{
		{Speaker: account.RoleCustomer, Body: "where is my order?"},
		{Speaker: account.RoleWorker, Body: "it shipped today"},
	}, history)
}

func TestMessageStore_BodyEscaping(t *testing.T) {
	t.Parallel()
	store := newTestMessageStore(t)
	ctx := context.Background()

	// Commas would split the record; they are stored as ";" and restored
	// on read.
	require.NoError(t, store.Append(ctx, "ada@example.com", account.RoleCustomer, "red, blue, and green"))

	history, err := store.History(ctx, "ada@example.com")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "red, blue, and green", history[0].Body)
}

func TestMessageStore_History(t *testing.T) {
	t.Parallel()

	t.Run("unknown customer has empty history", func(t *testing.T) {
		t.Parallel()
		store := newTestMessageStore(t)

		history, err := store.History(context.Background(), "nobody@example.com")
		require.NoError(t, err)
		assert.Empty(t, history)
	})

	t.Run("email match is case-insensitive", func(t *testing.T) {
		t.Parallel()
		store := newTestMessageStore(t)
		ctx := context.Background()

		require.NoError(t, store.Append(ctx, "Ada@Example.com", account.RoleCustomer, "hello"))

		history, err := store.History(ctx, "ada@example.com")
		require.NoError(t, err)
		require.Len(t, history, 1)
	})

	t.Run("dangling speaker without body is dropped", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "messages.txt")
		raw := "ada@example.com,customer,hello,worker\n"
		require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

		store := NewMessageStore(path, zerolog.Nop())
		history, err := store.History(context.Background(), "ada@example.com")
		require.NoError(t, err)
		require.Len(t, history, 1)
		assert.Equal(t, "hello", history[0].Body)
	})
}
