package shop

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopterm/shopterm/internal/core/account"
	"github.com/shopterm/shopterm/internal/core/payments"
	"github.com/shopterm/shopterm/internal/store/flatfile"
)

// startCheckout walks a customer to the card-type prompt with one Widget
// in the cart.
func startCheckout(t *testing.T, app *App, s *Session) Envelope {
	t.Helper()
	dispatch(app, s, "1 011")
	dispatch(app, s, "3")
	res := dispatch(app, s, "2")
	require.Contains(t, res.Text, "Checkout with")
	return res
}

func TestPaymentCoordinator_FullWizard(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	app := newTestApp(t, []account.Account{testCustomer()}, testProducts())
	s := NewSession()

	login(t, app, s, "ada@example.com", "pw")
	startCheckout(t, app, s)

	res := dispatch(app, s, "1")
	assert.Contains(t, res.Text, "Please enter your card number.")

	res = dispatch(app, s, "4111111111111111")
	assert.Contains(t, res.Text, "Please enter your shipping address.")

	res = dispatch(app, s, "1 Main St, Springfield")
	assert.Contains(t, res.Text, "You have successfully checked out. Your total was $9.99.")
	assert.Contains(t, res.Text, "1 Main St, Springfield")
	assert.Empty(t, s.Account.Cart)

	// ENTER on the receipt returns to the storefront.
	res = dispatch(app, s, "")
	assert.Equal(t, SubsystemStore, res.Dest)
	assert.Contains(t, res.Text, "Storefront")

	// Card, address, and the emptied cart were persisted, and the ledger
	// recorded the charge.
	stored, err := flatfile.NewAccountStore(app.Config.AccountsPath(), zerolog.Nop()).LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "4111111111111111", stored[0].CreditCard)
	assert.Equal(t, "1 Main St, Springfield", stored[0].Address)
	assert.Empty(t, stored[0].Cart)

	ledger, err := flatfile.NewPaymentLog(app.Config.PaymentsPath(), zerolog.Nop()).All(ctx)
	require.NoError(t, err)
	require.Len(t, ledger, 1)
	assert.Equal(t, payments.MethodCredit, ledger[0].Method)
	assert.InEpsilon(t, 9.99, ledger[0].Amount, 0.001)
}

func TestPaymentCoordinator_SkipsFieldsOnFile(t *testing.T) {
	t.Parallel()

	t.Run("card on file skips the number prompt", func(t *testing.T) {
		t.Parallel()
		customer := testCustomer()
		customer.DebitCard = "5555"
		app := newTestApp(t, []account.Account{customer}, testProducts())
		s := NewSession()

		login(t, app, s, "ada@example.com", "pw")
		startCheckout(t, app, s)

		res := dispatch(app, s, "2")
		assert.Contains(t, res.Text, "Please enter your shipping address.")
	})

	t.Run("everything on file completes in one input", func(t *testing.T) {
		t.Parallel()
		customer := testCustomer()
		customer.CreditCard = "4111"
		customer.Address = "1 Main St"
		app := newTestApp(t, []account.Account{customer}, testProducts())
		s := NewSession()

		login(t, app, s, "ada@example.com", "pw")
		startCheckout(t, app, s)

		res := dispatch(app, s, "1")
		assert.Contains(t, res.Text, "You have successfully checked out.")
		assert.Contains(t, res.Text, "1 Main St")
	})
}

func TestPaymentCoordinator_InvalidCardType(t *testing.T) {
	t.Parallel()
	app := newTestApp(t, []account.Account{testCustomer()}, testProducts())
	s := NewSession()

	login(t, app, s, "ada@example.com", "pw")
	startCheckout(t, app, s)

	res := dispatch(app, s, "3")
	assert.Contains(t, res.Text, "Invalid card type.")

	// The wizard is still on the same step; a valid choice proceeds.
	res = dispatch(app, s, "1")
	assert.Contains(t, res.Text, "Please enter your card number.")
}
