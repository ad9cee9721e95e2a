package shop

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/shopterm/shopterm/internal/core/account"
)

// Account coordinator prompts.
const (
	acctPromptMenu        = "1. Login\n2. Create Account\nInput: "
	acctPromptEmail       = "Input Email\nInput: "
	acctPromptPassword    = "Input Password\nInput: "
	acctNoticeLoggedIn    = "Successfully logged in."
	acctNoticeCreated     = "Account created. Successfully logged in."
	acctErrInvalidOption  = "Invalid option.\n" + acctPromptMenu
	acctErrInvalidEmail   = "Invalid email format. " + acctPromptEmail
	acctErrEmailExists    = "Email already exists.\n" + acctPromptMenu
	acctErrBadCredentials = "Incorrect email or password.\n" + acctPromptMenu
)

// AccountCoordinator owns authentication and the account directory, and
// delegates in-flight checkouts to the payment wizard.
type AccountCoordinator struct {
	accounts []account.Account
	store    account.Store
	payment  *PaymentCoordinator
	log      zerolog.Logger
}

var _ Coordinator = (*AccountCoordinator)(nil)

// NewAccountCoordinator returns a coordinator backed by store. Call Load
// before first use.
func NewAccountCoordinator(store account.Store, payment *PaymentCoordinator, logger zerolog.Logger) *AccountCoordinator {
	return &AccountCoordinator{
		store:   store,
		payment: payment,
		log:     logger.With().Str("component", "account").Logger(),
	}
}

// Load reads the account directory from the store.
func (c *AccountCoordinator) Load(ctx context.Context) error {
	accounts, err := c.store.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("load accounts: %w", err)
	}
	c.accounts = accounts
	return nil
}

// Handle runs one ACCOUNT turn.
func (c *AccountCoordinator) Handle(ctx context.Context, s *Session, env Envelope) Envelope {
	// A checkout in flight owns every ACCOUNT turn until the wizard
	// hands control elsewhere.
	if s.acct.inCheckout {
		res := c.payment.Handle(ctx, s, env)
		if res.Dest != SubsystemAccount {
			s.acct.inCheckout = false
			c.reload(ctx)
		}
		return res
	}

	switch p := env.Payload.(type) {
	case LookupAccount:
		return c.lookup(p.Email)
	case CheckoutTotal:
		s.acct.inCheckout = true
		return c.payment.Handle(ctx, s, env)
	}

	input := strings.TrimSpace(env.Text)

	switch s.acct.screen {
	case acctScreenMenu:
		return c.handleMenu(s, input)
	case acctScreenLoginEmail:
		s.acct.email = input
		s.acct.screen = acctScreenLoginPassword
		return Envelope{Dest: SubsystemAccount, Text: acctPromptPassword}
	case acctScreenLoginPassword:
		s.acct.password = input
		return c.finishLogin(s)
	case acctScreenCreateEmail:
		return c.handleCreateEmail(s, input)
	case acctScreenCreatePassword:
		s.acct.password = input
		return c.finishCreate(ctx, s)
	default:
		s.acct = accountFlow{}
		return Envelope{Dest: SubsystemAccount, Text: "Error. Returning to main menu.\n" + acctPromptMenu}
	}
}

func (c *AccountCoordinator) handleMenu(s *Session, input string) Envelope {
	switch input {
	case "":
		// Arriving at the menu with no input is the logout path:
		// drop the session account and any per-account state. The
		// stored record is untouched.
		s.reset()
		s.acct = accountFlow{}
		return Envelope{Dest: SubsystemAccount, Text: acctPromptMenu}
	case "1":
		s.acct = accountFlow{screen: acctScreenLoginEmail}
		return Envelope{Dest: SubsystemAccount, Text: acctPromptEmail}
	case "2":
		s.acct = accountFlow{screen: acctScreenCreateEmail}
		return Envelope{Dest: SubsystemAccount, Text: acctPromptEmail}
	default:
		return Envelope{Dest: SubsystemAccount, Text: acctErrInvalidOption}
	}
}

// finishLogin checks the scratch credentials against the directory. The
// account is fetched by its email key and the password compared, so the
// stored record, the one carrying cart, cards, and address, becomes the
// session account, never the login scratch data.
func (c *AccountCoordinator) finishLogin(s *Session) Envelope {
	email, password := s.acct.email, s.acct.password
	s.acct = accountFlow{}

	stored, ok := c.findByEmail(email)
	if !ok || stored.Password != password {
		return Envelope{Dest: SubsystemAccount, Text: acctErrBadCredentials}
	}

	s.Account = &stored
	if stored.Role == account.RoleExecutive {
		return Envelope{Dest: SubsystemReporting, Text: acctNoticeLoggedIn}
	}
	return Envelope{Dest: SubsystemStore, Text: acctNoticeLoggedIn}
}

func (c *AccountCoordinator) handleCreateEmail(s *Session, input string) Envelope {
	if !strings.Contains(input, "@") {
		return Envelope{Dest: SubsystemAccount, Text: acctErrInvalidEmail}
	}
	if _, exists := c.findByEmail(input); exists {
		s.acct = accountFlow{}
		return Envelope{Dest: SubsystemAccount, Text: acctErrEmailExists}
	}
	s.acct.email = input
	s.acct.screen = acctScreenCreatePassword
	return Envelope{Dest: SubsystemAccount, Text: acctPromptPassword}
}

func (c *AccountCoordinator) finishCreate(ctx context.Context, s *Session) Envelope {
	created := account.Account{
		Email:    s.acct.email,
		Password: s.acct.password,
		Role:     account.RoleCustomer,
	}
	s.acct = accountFlow{}

	if err := c.store.Upsert(ctx, created); err != nil {
		c.log.Error().Err(err).Str("email", created.Email).Msg("failed to persist new account")
	}
	c.reload(ctx)

	// New accounts are logged in immediately.
	s.Account = &created
	return Envelope{Dest: SubsystemStore, Text: acctNoticeCreated}
}

// lookup answers a MESSAGING account-summary request. The reply is
// addressed back to MESSAGING so the router re-dispatches it there instead
// of settling an ACCOUNT turn.
func (c *AccountCoordinator) lookup(email string) Envelope {
	a, ok := c.findByEmail(email)
	if !ok {
		return Envelope{Dest: SubsystemMessaging, Payload: AccountSummary{}}
	}
	return Envelope{Dest: SubsystemMessaging, Payload: AccountSummary{
		Found:      true,
		Email:      a.Email,
		Address:    a.Address,
		CreditCard: a.CreditCard,
		DebitCard:  a.DebitCard,
	}}
}

// PersistCurrent upserts the session account, if any. The router calls
// this whenever a handoff leaves STORE, where the account is mutated in
// memory.
func (c *AccountCoordinator) PersistCurrent(ctx context.Context, s *Session) {
	if s.Account == nil {
		return
	}
	if err := c.store.Upsert(ctx, *s.Account); err != nil {
		c.log.Error().Err(err).Str("email", s.Account.Email).Msg("failed to persist account on store exit")
	}
	c.reload(ctx)
}

func (c *AccountCoordinator) findByEmail(email string) (account.Account, bool) {
	for _, a := range c.accounts {
		if a.Email == email {
			return a, true
		}
	}
	return account.Account{}, false
}

func (c *AccountCoordinator) reload(ctx context.Context) {
	accounts, err := c.store.LoadAll(ctx)
	if err != nil {
		c.log.Error().Err(err).Msg("failed to reload account directory")
		return
	}
	c.accounts = accounts
}
