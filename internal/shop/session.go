package shop

import "github.com/shopterm/shopterm/internal/core/account"

// Session owns all mutable per-conversation state. Coordinators hold only
// collaborators; every screen tag and wizard scratch field lives here and
// is passed by pointer into each transition, so a second independent
// session would need no redesign.
type Session struct {
	// Account is the authenticated account, nil when logged out. It is
	// the stored record, not the login scratch data, so it carries
	// cart, cards, and address.
	Account *account.Account

	acct accountFlow
	str  storeFlow
	pay  paymentFlow
	edit editorFlow
	msg  messagingFlow
	rep  reportingFlow
}

// NewSession returns a session at the login menu with nobody signed in.
func NewSession() *Session {
	return &Session{}
}

// reset drops everything tied to the signed-in account. Called when the
// account menu takes over after a logout.
func (s *Session) reset() {
	s.Account = nil
	s.str = storeFlow{}
	s.pay = paymentFlow{}
	s.edit = editorFlow{}
	s.msg = messagingFlow{}
	s.rep = reportingFlow{}
}

type acctScreen int

const (
	acctScreenMenu acctScreen = iota
	acctScreenLoginEmail
	acctScreenLoginPassword
	acctScreenCreateEmail
	acctScreenCreatePassword
)

type accountFlow struct {
	screen acctScreen
	// scratch credential fields; discarded on any failure
	email    string
	password string
	// inCheckout forwards ACCOUNT turns to the payment wizard
	inCheckout bool
}

type storeScreen int

const (
	storeScreenInit storeScreen = iota
	storeScreenFront
	storeScreenCart
	storeScreenEditor
)

type storeFlow struct {
	screen storeScreen
}

type payState int

const (
	payStateInit payState = iota
	payStateCardType
	payStateCardNumber
	payStateAddress
	payStateDone
)

type paymentFlow struct {
	state  payState
	total  float64
	method string
}

type editState int

const (
	editStateInit editState = iota
	editStateName
	editStatePrice
	editStateLikes
	editStateInventory
)

type editorFlow struct {
	state editState
	// editing is true when modifying an existing product; targetID is
	// then the id being edited and current holds its stored values.
	editing  bool
	targetID string
	current  editorFields

	scratch editorFields
}

type editorFields struct {
	name      string
	price     float64
	likes     int
	inventory int
}

type msgScreen int

const (
	msgScreenInit msgScreen = iota
	msgScreenCustomerView
	msgScreenWorkerSelect
	msgScreenWorkerView
)

type messagingFlow struct {
	screen      msgScreen
	activeEmail string
	summary     AccountSummary
}

type repScreen int

const (
	repScreenInit repScreen = iota
	repScreenMenu
	repScreenDaily
	repScreenMonthly
)

type reportingFlow struct {
	screen repScreen
}
