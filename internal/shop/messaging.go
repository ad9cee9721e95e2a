package shop

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/shopterm/shopterm/internal/core/account"
	"github.com/shopterm/shopterm/internal/core/messaging"
)

// Messaging screen menus.
const (
	msgCustomerMenu = "Commands:\nTo send a message, type it and hit [ENTER].\n1. Return to store\n2. Logout\nInput: "
	msgSelectMenu   = "Commands:\nTo open a conversation, type the customer's email and hit [ENTER].\n1. Return to store\n2. Logout\nInput: "
	msgWorkerMenu   = "Commands:\nTo send a message, type it and hit [ENTER].\n1. Back to conversation list\n2. Return to store\n3. Logout\nInput: "
	msgNoticeSent   = ">> Message sent.\n\n"
)

// MessagingCoordinator owns the customer-staff conversation screens.
// Customers see one running thread with the store; workers see a
// directory of customer inboxes and open one at a time.
type MessagingCoordinator struct {
	store messaging.Store
	log   zerolog.Logger
}

var _ Coordinator = (*MessagingCoordinator)(nil)

// NewMessagingCoordinator returns a coordinator backed by store.
func NewMessagingCoordinator(store messaging.Store, logger zerolog.Logger) *MessagingCoordinator {
	return &MessagingCoordinator{
		store: store,
		log:   logger.With().Str("component", "messaging").Logger(),
	}
}

// Handle runs one MESSAGING turn.
func (c *MessagingCoordinator) Handle(ctx context.Context, s *Session, env Envelope) Envelope {
	if s.Account == nil {
		return Envelope{Dest: SubsystemAccount}
	}

	switch s.msg.screen {
	case msgScreenInit:
		if s.Account.Role == account.RoleCustomer {
			s.msg.screen = msgScreenCustomerView
			return c.renderCustomerView(ctx, s, "")
		}
		s.msg.screen = msgScreenWorkerSelect
		return c.renderSelect(ctx, "")
	case msgScreenCustomerView:
		return c.handleCustomerView(ctx, s, strings.TrimSpace(env.Text))
	case msgScreenWorkerSelect:
		return c.handleSelect(ctx, s, env)
	case msgScreenWorkerView:
		return c.handleWorkerView(ctx, s, strings.TrimSpace(env.Text))
	default:
		s.msg = messagingFlow{}
		return Envelope{Dest: SubsystemStore}
	}
}

func (c *MessagingCoordinator) handleCustomerView(ctx context.Context, s *Session, input string) Envelope {
	switch input {
	case "":
		return c.renderCustomerView(ctx, s, "")
	case "1":
		s.msg = messagingFlow{}
		return Envelope{Dest: SubsystemStore}
	case "2":
		s.msg = messagingFlow{}
		return Envelope{Dest: SubsystemAccount}
	default:
		if err := c.store.Append(ctx, s.Account.Email, s.Account.Role, input); err != nil {
			c.log.Error().Err(err).Msg("failed to append customer message")
		}
		return c.renderCustomerView(ctx, s, msgNoticeSent)
	}
}

// handleSelect drives the worker inbox directory. Opening a conversation
// requires the customer's account details, fetched from ACCOUNT as a
// lookup round-trip; the reply comes back as an AccountSummary payload.
func (c *MessagingCoordinator) handleSelect(ctx context.Context, s *Session, env Envelope) Envelope {
	if summary, ok := env.Payload.(AccountSummary); ok {
		if !summary.Found {
			return Envelope{Dest: SubsystemMessaging, Text: "No customer with that email.\nHit [ENTER] to return to the conversation list."}
		}
		s.msg.summary = summary
		s.msg.activeEmail = summary.Email
		s.msg.screen = msgScreenWorkerView
		return c.renderWorkerView(ctx, s, "")
	}

	input := strings.TrimSpace(env.Text)
	switch input {
	case "":
		return c.renderSelect(ctx, "")
	case "1":
		s.msg = messagingFlow{}
		return Envelope{Dest: SubsystemStore}
	case "2":
		s.msg = messagingFlow{}
		return Envelope{Dest: SubsystemAccount}
	default:
		return Envelope{Dest: SubsystemAccount, Payload: LookupAccount{Email: input}}
	}
}

func (c *MessagingCoordinator) handleWorkerView(ctx context.Context, s *Session, input string) Envelope {
	switch input {
	case "":
		return c.renderWorkerView(ctx, s, "")
	case "1":
		s.msg = messagingFlow{screen: msgScreenWorkerSelect}
		return c.renderSelect(ctx, "")
	case "2":
		s.msg = messagingFlow{}
		return Envelope{Dest: SubsystemStore}
	case "3":
		s.msg = messagingFlow{}
		return Envelope{Dest: SubsystemAccount}
	default:
		if err := c.store.Append(ctx, s.msg.activeEmail, account.RoleWorker, input); err != nil {
			c.log.Error().Err(err).Msg("failed to append worker message")
		}
		return c.renderWorkerView(ctx, s, msgNoticeSent)
	}
}

func (c *MessagingCoordinator) renderCustomerView(ctx context.Context, s *Session, notice string) Envelope {
	var sb strings.Builder
	sb.WriteString(notice)
	sb.WriteString("=== Conversation with the store ===\n")
	sb.WriteString(c.history(ctx, s.Account.Email))
	sb.WriteString("===================================\n")
	sb.WriteString(msgCustomerMenu)
	return Envelope{Dest: SubsystemMessaging, Text: sb.String()}
}

func (c *MessagingCoordinator) renderSelect(ctx context.Context, notice string) Envelope {
	var sb strings.Builder
	sb.WriteString(notice)
	sb.WriteString("--- Support Inboxes ---\n")

	emails, err := c.store.Emails(ctx)
	if err != nil {
		c.log.Error().Err(err).Msg("failed to list conversations")
	}
	if len(emails) == 0 {
		sb.WriteString("No active conversations found.\n")
	}
	for _, email := range emails {
		sb.WriteString("- " + email + "\n")
	}
	sb.WriteString(msgSelectMenu)
	return Envelope{Dest: SubsystemMessaging, Text: sb.String()}
}

// renderWorkerView shows the open thread plus the customer details that
// came back from the ACCOUNT lookup.
func (c *MessagingCoordinator) renderWorkerView(ctx context.Context, s *Session, notice string) Envelope {
	var sb strings.Builder
	sb.WriteString(notice)
	fmt.Fprintf(&sb, "=== Conversation with: %s ===\n", s.msg.activeEmail)
	sb.WriteString(c.history(ctx, s.msg.activeEmail))
	sb.WriteString("===================================\n")
	fmt.Fprintf(&sb, "Email: %s\n", s.msg.summary.Email)
	fmt.Fprintf(&sb, "Address: %s\n", s.msg.summary.Address)
	fmt.Fprintf(&sb, "Credit card on file: %s\n", s.msg.summary.CreditCard)
	fmt.Fprintf(&sb, "Debit card on file: %s\n", s.msg.summary.DebitCard)
	sb.WriteString("===================================\n")
	sb.WriteString(msgWorkerMenu)
	return Envelope{Dest: SubsystemMessaging, Text: sb.String()}
}

func (c *MessagingCoordinator) history(ctx context.Context, email string) string {
	entries, err := c.store.History(ctx, email)
	if err != nil {
		c.log.Error().Err(err).Str("email", email).Msg("failed to read conversation history")
	}
	if len(entries) == 0 {
		return "No previous message history.\n"
	}

	var sb strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&sb, "[%s]: %s\n", e.Speaker, e.Body)
	}
	return sb.String()
}
