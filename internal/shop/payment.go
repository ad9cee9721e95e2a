package shop

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/shopterm/shopterm/internal/core/account"
	"github.com/shopterm/shopterm/internal/core/payments"
	"github.com/shopterm/shopterm/internal/core/sales"
)

// Payment wizard prompts.
const (
	payPromptCardType   = "Checkout with\n1. Credit Card\n2. Debit Card\nInput: "
	payPromptCardNumber = "Please enter your card number.\nInput: "
	payPromptAddress    = "Please enter your shipping address.\nInput: "
	payErrCardType      = "Invalid card type. " + payPromptCardType
)

// PaymentCoordinator is the checkout wizard. It is entered once per
// purchase with a CheckoutTotal payload and asks only for what the
// account does not already have on file: the card-number and address
// steps are skipped when those fields are present, so a fully populated
// account completes checkout in a single input (the card-type choice).
type PaymentCoordinator struct {
	accounts account.Store
	ledger   payments.Ledger
	log      zerolog.Logger
}

var _ Coordinator = (*PaymentCoordinator)(nil)

// NewPaymentCoordinator returns a wizard persisting through the given
// account store and payment ledger.
func NewPaymentCoordinator(accounts account.Store, ledger payments.Ledger, logger zerolog.Logger) *PaymentCoordinator {
	return &PaymentCoordinator{
		accounts: accounts,
		ledger:   ledger,
		log:      logger.With().Str("component", "payment").Logger(),
	}
}

// Handle runs one wizard turn. Turns arrive addressed to ACCOUNT; the
// account coordinator forwards them here while a checkout is in flight.
func (c *PaymentCoordinator) Handle(ctx context.Context, s *Session, env Envelope) Envelope {
	f := &s.pay

	switch f.state {
	case payStateInit:
		total, ok := env.Payload.(CheckoutTotal)
		if !ok {
			// Entered without a total; nothing to charge for.
			f.state = payStateInit
			return Envelope{Dest: SubsystemStore}
		}
		f.total = total.Amount
		f.state = payStateCardType
		return Envelope{Dest: SubsystemAccount, Text: payPromptCardType}

	case payStateCardType:
		switch env.Text {
		case "1":
			f.method = payments.MethodCredit
		case "2":
			f.method = payments.MethodDebit
		default:
			return Envelope{Dest: SubsystemAccount, Text: payErrCardType}
		}
		if c.cardNumber(s, f.method) == "" {
			f.state = payStateCardNumber
			return Envelope{Dest: SubsystemAccount, Text: payPromptCardNumber}
		}
		return c.addressOrComplete(ctx, s)

	case payStateCardNumber:
		c.setCardNumber(s, f.method, env.Text)
		return c.addressOrComplete(ctx, s)

	case payStateAddress:
		s.Account.Address = env.Text
		return c.complete(ctx, s)

	case payStateDone:
		// The receipt has been shown; any input returns to the store.
		s.pay = paymentFlow{}
		return Envelope{Dest: SubsystemStore}

	default:
		s.pay = paymentFlow{}
		return Envelope{Dest: SubsystemStore}
	}
}

func (c *PaymentCoordinator) addressOrComplete(ctx context.Context, s *Session) Envelope {
	if s.Account.Address == "" {
		s.pay.state = payStateAddress
		return Envelope{Dest: SubsystemAccount, Text: payPromptAddress}
	}
	return c.complete(ctx, s)
}

// complete is the single terminal step of the wizard: build the receipt,
// clear the cart, persist the account, and record the payment. Every path
// into completion lands here, including the all-fields-on-file fast path.
func (c *PaymentCoordinator) complete(ctx context.Context, s *Session) Envelope {
	f := &s.pay
	f.state = payStateDone

	receipt := uuid.NewString()
	text := fmt.Sprintf(
		"You have successfully checked out. Your total was $%.2f.\nReceipt %s has been sent to your email on file: %s\nYour items will be delivered to: %s\nHit [ENTER] to return to the store.",
		f.total, receipt, s.Account.Email, s.Account.Address,
	)

	s.Account.ClearCart()
	if err := c.accounts.Upsert(ctx, *s.Account); err != nil {
		c.log.Error().Err(err).Str("email", s.Account.Email).Msg("failed to persist account after checkout")
	}

	record := payments.Record{
		Email:  s.Account.Email,
		Amount: f.total,
		Method: f.method,
		Date:   time.Now().Format(sales.DateLayout),
	}
	if err := c.ledger.Append(ctx, record); err != nil {
		c.log.Error().Err(err).Msg("failed to append payment ledger")
	}

	return Envelope{Dest: SubsystemAccount, Text: text}
}

func (c *PaymentCoordinator) cardNumber(s *Session, method string) string {
	if method == payments.MethodCredit {
		return s.Account.CreditCard
	}
	return s.Account.DebitCard
}

func (c *PaymentCoordinator) setCardNumber(s *Session, method, number string) {
	if method == payments.MethodCredit {
		s.Account.CreditCard = number
		return
	}
	s.Account.DebitCard = number
}
