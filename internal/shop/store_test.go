package shop

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopterm/shopterm/internal/core/account"
	"github.com/shopterm/shopterm/internal/store/flatfile"
)

func TestStoreCoordinator_Front(t *testing.T) {
	t.Parallel()

	t.Run("products are listed by descending likes", func(t *testing.T) {
		t.Parallel()
		app := newTestApp(t, []account.Account{testCustomer()}, testProducts())
		s := NewSession()

		res := login(t, app, s, "ada@example.com", "pw")

		gadget := "012. Gadget - $4.50 | Likes: 7 | In stock: 1"
		widget := "011. Widget - $9.99 | Likes: 2 | In stock: 3"
		assert.Contains(t, res.Text, gadget)
		assert.Contains(t, res.Text, widget)
		assert.Less(t, strings.Index(res.Text, gadget), strings.Index(res.Text, widget))
	})

	t.Run("unknown command re-renders with a notice", func(t *testing.T) {
		t.Parallel()
		app := newTestApp(t, []account.Account{testCustomer()}, testProducts())
		s := NewSession()

		login(t, app, s, "ada@example.com", "pw")
		res := dispatch(app, s, "42")
		assert.Contains(t, res.Text, "Unknown command.")
		assert.Equal(t, SubsystemStore, res.Dest)
	})
}

func TestStoreCoordinator_Cart(t *testing.T) {
	t.Parallel()

	t.Run("add requires stock", func(t *testing.T) {
		t.Parallel()
		app := newTestApp(t, []account.Account{testCustomer()}, testProducts())
		s := NewSession()

		login(t, app, s, "ada@example.com", "pw")

		res := dispatch(app, s, "1 013")
		assert.Contains(t, res.Text, "Doohickey is out of stock.")
		assert.Empty(t, s.Account.Cart)

		res = dispatch(app, s, "1 999")
		assert.Contains(t, res.Text, "No product with id 999.")

		res = dispatch(app, s, "1 011")
		assert.Contains(t, res.Text, "Added Widget to your cart.")
		assert.Equal(t, []string{"011"}, s.Account.Cart)
	})

	t.Run("cart lists items and total", func(t *testing.T) {
		t.Parallel()
		app := newTestApp(t, []account.Account{testCustomer()}, testProducts())
		s := NewSession()

		login(t, app, s, "ada@example.com", "pw")
		dispatch(app, s, "1 011")
		dispatch(app, s, "1 012")

		res := dispatch(app, s, "3")
		assert.Contains(t, res.Text, "011. Widget - $9.99")
		assert.Contains(t, res.Text, "012. Gadget - $4.50")
		assert.Contains(t, res.Text, "Total: $14.49")
	})

	t.Run("remove only removes whats in the cart", func(t *testing.T) {
		t.Parallel()
		app := newTestApp(t, []account.Account{testCustomer()}, testProducts())
		s := NewSession()

		login(t, app, s, "ada@example.com", "pw")
		dispatch(app, s, "1 011")
		dispatch(app, s, "3")

		res := dispatch(app, s, "1 012")
		assert.Contains(t, res.Text, "012 is not in your cart.")

		res = dispatch(app, s, "1 011")
		assert.Contains(t, res.Text, "Item removed.")
		assert.Empty(t, s.Account.Cart)
	})

	t.Run("liking bumps the count", func(t *testing.T) {
		t.Parallel()
		app := newTestApp(t, []account.Account{testCustomer()}, testProducts())
		s := NewSession()

		login(t, app, s, "ada@example.com", "pw")
		res := dispatch(app, s, "2 011")
		assert.Contains(t, res.Text, "Liked.")
		assert.Contains(t, res.Text, "011. Widget - $9.99 | Likes: 3 | In stock: 3")
	})
}

func TestStoreCoordinator_Checkout(t *testing.T) {
	t.Parallel()

	t.Run("empty cart cannot check out", func(t *testing.T) {
		t.Parallel()
		app := newTestApp(t, []account.Account{testCustomer()}, testProducts())
		s := NewSession()

		login(t, app, s, "ada@example.com", "pw")
		dispatch(app, s, "3")
		res := dispatch(app, s, "2")
		assert.Contains(t, res.Text, "Your cart is empty.")
	})

	t.Run("unavailable items are purged instead of sold", func(t *testing.T) {
		t.Parallel()
		app := newTestApp(t, []account.Account{testCustomer()}, testProducts())
		s := NewSession()

		login(t, app, s, "ada@example.com", "pw")
		dispatch(app, s, "1 011")
		// Sneak an unavailable product in behind the storefront's back.
		s.Account.AddToCart("013")
		dispatch(app, s, "3")

		res := dispatch(app, s, "2")
		assert.Contains(t, res.Text, "Removed unavailable items from your cart: 013")
		assert.Equal(t, []string{"011"}, s.Account.Cart)

		// The purge never reaches the sales log.
		records, err := flatfile.NewSalesLog(app.Config.SalesPath(), zerolog.Nop()).All(context.Background())
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("checkout hands the total to the payment wizard", func(t *testing.T) {
		t.Parallel()
		ctx := context.Background()
		app := newTestApp(t, []account.Account{testCustomer()}, testProducts())
		s := NewSession()

		login(t, app, s, "ada@example.com", "pw")
		dispatch(app, s, "1 011")
		dispatch(app, s, "1 011")
		dispatch(app, s, "3")

		res := dispatch(app, s, "2")
		assert.Equal(t, SubsystemAccount, res.Dest)
		assert.Contains(t, res.Text, "Checkout with")

		// Inventory decremented once per occurrence and the sale logged.
		p, ok := app.Catalog.Get("011")
		require.True(t, ok)
		assert.Equal(t, 1, p.Inventory)

		records, err := flatfile.NewSalesLog(app.Config.SalesPath(), zerolog.Nop()).All(ctx)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "Widget", records[0].Product)
	})
}

func TestStoreCoordinator_WorkerFront(t *testing.T) {
	t.Parallel()

	t.Run("workers see the staff menu", func(t *testing.T) {
		t.Parallel()
		app := newTestApp(t, []account.Account{testWorker()}, testProducts())
		s := NewSession()

		res := login(t, app, s, "staff@example.com", "pw")
		assert.Contains(t, res.Text, "Storefront (staff)")
		assert.Contains(t, res.Text, "3. Add new product")
	})

	t.Run("remove deletes from the catalog", func(t *testing.T) {
		t.Parallel()
		app := newTestApp(t, []account.Account{testWorker()}, testProducts())
		s := NewSession()

		login(t, app, s, "staff@example.com", "pw")
		res := dispatch(app, s, "2 013")
		assert.Contains(t, res.Text, "Product removed.")
		_, ok := app.Catalog.Get("013")
		assert.False(t, ok)

		res = dispatch(app, s, "2 013")
		assert.Contains(t, res.Text, "No product with id 013.")
	})
}
