package shop

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopterm/shopterm/internal/core/account"
	"github.com/shopterm/shopterm/internal/store/flatfile"
)

func TestAccountCoordinator_Login(t *testing.T) {
	t.Parallel()

	t.Run("stored record becomes the session account", func(t *testing.T) {
		t.Parallel()
		stored := testCustomer()
		stored.Cart = []string{"011"}
		stored.Address = "1 Main St"
		app := newTestApp(t, []account.Account{stored}, testProducts())
		s := NewSession()

		login(t, app, s, "ada@example.com", "pw")

		// The session account is the stored record, cart and all, not
		// the credentials typed at the prompt.
		assert.Equal(t, []string{"011"}, s.Account.Cart)
		assert.Equal(t, "1 Main St", s.Account.Address)
	})

	t.Run("wrong password returns to the menu", func(t *testing.T) {
		t.Parallel()
		app := newTestApp(t, []account.Account{testCustomer()}, nil)
		s := NewSession()

		dispatch(app, s, "")
		dispatch(app, s, "1")
		dispatch(app, s, "ada@example.com")
		res := dispatch(app, s, "nope")

		assert.Nil(t, s.Account)
		assert.Equal(t, SubsystemAccount, res.Dest)
		assert.Contains(t, res.Text, "Incorrect email or password.")
	})

	t.Run("unknown email returns to the menu", func(t *testing.T) {
		t.Parallel()
		app := newTestApp(t, nil, nil)
		s := NewSession()

		dispatch(app, s, "")
		dispatch(app, s, "1")
		dispatch(app, s, "ghost@example.com")
		res := dispatch(app, s, "pw")

		assert.Nil(t, s.Account)
		assert.Contains(t, res.Text, "Incorrect email or password.")
	})

	t.Run("executives land in reporting", func(t *testing.T) {
		t.Parallel()
		app := newTestApp(t, []account.Account{testExecutive()}, nil)
		s := NewSession()

		res := login(t, app, s, "boss@example.com", "pw")

		assert.Equal(t, SubsystemReporting, res.Dest)
		assert.Equal(t, SubsystemReporting, app.Router.Owner())
		assert.Contains(t, res.Text, "Welcome, Executive.")
	})
}

func TestAccountCoordinator_Create(t *testing.T) {
	t.Parallel()

	t.Run("new account is persisted and logged in", func(t *testing.T) {
		t.Parallel()
		ctx := context.Background()
		app := newTestApp(t, nil, testProducts())
		s := NewSession()

		dispatch(app, s, "")
		dispatch(app, s, "2")
		dispatch(app, s, "new@example.com")
		res := dispatch(app, s, "pw")

		assert.Equal(t, SubsystemStore, res.Dest)
		assert.Contains(t, res.Text, "Account created. Successfully logged in.")
		require.NotNil(t, s.Account)
		assert.Equal(t, account.RoleCustomer, s.Account.Role)

		stored, err := flatfile.NewAccountStore(app.Config.AccountsPath(), zerolog.Nop()).LoadAll(ctx)
		require.NoError(t, err)
		require.Len(t, stored, 1)
		assert.Equal(t, "new@example.com", stored[0].Email)
	})

	t.Run("email without @ is rejected", func(t *testing.T) {
		t.Parallel()
		app := newTestApp(t, nil, nil)
		s := NewSession()

		dispatch(app, s, "")
		dispatch(app, s, "2")
		res := dispatch(app, s, "not-an-email")

		assert.Contains(t, res.Text, "Invalid email format.")
		// Still on the email screen; a valid retry proceeds.
		res = dispatch(app, s, "ok@example.com")
		assert.Contains(t, res.Text, "Input Password")
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		t.Parallel()
		app := newTestApp(t, []account.Account{testCustomer()}, nil)
		s := NewSession()

		dispatch(app, s, "")
		dispatch(app, s, "2")
		res := dispatch(app, s, "ada@example.com")

		assert.Contains(t, res.Text, "Email already exists.")
		assert.Nil(t, s.Account)
	})
}

func TestAccountCoordinator_Menu(t *testing.T) {
	t.Parallel()

	t.Run("empty input shows the menu", func(t *testing.T) {
		t.Parallel()
		app := newTestApp(t, nil, nil)
		s := NewSession()

		res := dispatch(app, s, "")
		assert.Equal(t, acctPromptMenu, res.Text)
	})

	t.Run("invalid option re-prompts", func(t *testing.T) {
		t.Parallel()
		app := newTestApp(t, nil, nil)
		s := NewSession()

		res := dispatch(app, s, "9")
		assert.Contains(t, res.Text, "Invalid option.")
	})

	t.Run("logout drops the session account", func(t *testing.T) {
		t.Parallel()
		app := newTestApp(t, []account.Account{testCustomer()}, testProducts())
		s := NewSession()

		login(t, app, s, "ada@example.com", "pw")
		res := dispatch(app, s, "5")

		assert.Nil(t, s.Account)
		assert.Equal(t, acctPromptMenu, res.Text)
	})
}
