package flatfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopterm/shopterm/internal/core/catalog"
)

func TestProductStore_RoundTrip(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "products.txt")
	store := NewProductStore(path, zerolog.Nop())
	ctx := context.Background()

	in := []catalog.Product{
		{ID: "011", Name: "Widget", Price: 9.99, Likes: 3, Inventory: 5},
		{ID: "012", Name: "Gadget", Price: 0.5, Likes: 0, Inventory: 0},
	}
	require.NoError(t, store.SaveAll(ctx, in))

	out, err := store.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, in, out)

	// Prices are stored with two decimals.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "012,Gadget,0.50,0,0")
}

func TestProductStore_LoadAllSkipsMalformed(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "products.txt")
	raw := "011,Widget,9.99,3,5\n" +
		"012,Gadget,not-a-price,0,0\n" +
		"013,TooFewFields,1.00\n" +
		"014,Doohickey,2.50,1,2\n"
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	store := NewProductStore(path, zerolog.Nop())
	out, err := store.LoadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "011", out[0].ID)
	assert.Equal(t, "014", out[1].ID)
}
