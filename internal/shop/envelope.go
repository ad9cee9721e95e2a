// Package shop implements the conversational core of the storefront: the
// envelope protocol, the router that hands a single shared turn between
// subsystems, and the per-subsystem screen state machines.
package shop

// Subsystem tags the destination of an envelope. The set is closed; every
// coordinator must address one of these four, and errors travel as text in
// an envelope still addressed to the subsystem that produced them.
type Subsystem string

// The four subsystems.
const (
	SubsystemAccount   Subsystem = "account"
	SubsystemStore     Subsystem = "store"
	SubsystemMessaging Subsystem = "messaging"
	SubsystemReporting Subsystem = "reporting"
)

// Envelope is the unit of conversation. Dest names the subsystem the
// envelope is addressed to, Text carries display output or user input, and
// Payload carries typed inter-subsystem data. Envelopes are created fresh
// on every transition and never retained by a coordinator after returning.
type Envelope struct {
	Dest    Subsystem
	Text    string
	Payload Payload
}

// Payload is the typed side channel between subsystems. A nil payload is a
// plain conversational turn.
type Payload interface {
	payload()
}

// CheckoutTotal is sent from STORE to ACCOUNT to begin payment.
type CheckoutTotal struct {
	Amount float64
}

// LookupAccount asks ACCOUNT for a customer summary on behalf of
// MESSAGING. The reply routes back to MESSAGING, not to a settled ACCOUNT
// turn: a request/response exchange expressed as two handoffs.
type LookupAccount struct {
	Email string
}

// AccountSummary is the reply to LookupAccount. Found is false when no
// account matches the requested email.
type AccountSummary struct {
	Found      bool
	Email      string
	Address    string
	CreditCard string
	DebitCard  string
}

// EditorDone signals the parent storefront that the product editor wizard
// has finished and the editor screen should be left.
type EditorDone struct {
	Name string
}

func (CheckoutTotal) payload()  {}
func (LookupAccount) payload()  {}
func (AccountSummary) payload() {}
func (EditorDone) payload()     {}
