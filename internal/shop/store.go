package shop

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/shopterm/shopterm/internal/core/account"
	"github.com/shopterm/shopterm/internal/core/catalog"
	"github.com/shopterm/shopterm/internal/core/sales"
)

// Storefront command menus.
const (
	storeCustomerMenu = "Commands:\n1 [id]. Add item to cart\n2 [id]. Like item\n3. View cart\n4. Messages\n5. Logout\nInput: "
	storeWorkerMenu   = "Commands:\n1 [id]. Modify product\n2 [id]. Remove product\n3. Add new product\n4. Messages\n5. Logout\nInput: "
	storeCartMenu     = "Commands:\n1 [id]. Remove item\n2. Checkout\n3. Back to storefront\nInput: "
)

// StoreCoordinator owns the storefront and cart screens and delegates
// product create/edit to the editor wizard.
type StoreCoordinator struct {
	catalog *catalog.Catalog
	sales   sales.Log
	editor  *EditorCoordinator
	log     zerolog.Logger
}

var _ Coordinator = (*StoreCoordinator)(nil)

// NewStoreCoordinator returns a coordinator over the shared catalog.
func NewStoreCoordinator(cat *catalog.Catalog, salesLog sales.Log, editor *EditorCoordinator, logger zerolog.Logger) *StoreCoordinator {
	return &StoreCoordinator{
		catalog: cat,
		sales:   salesLog,
		editor:  editor,
		log:     logger.With().Str("component", "store").Logger(),
	}
}

// Handle runs one STORE turn.
func (c *StoreCoordinator) Handle(ctx context.Context, s *Session, env Envelope) Envelope {
	if s.Account == nil {
		// Nobody is signed in; the storefront has no business
		// owning the turn.
		return Envelope{Dest: SubsystemAccount}
	}

	switch s.str.screen {
	case storeScreenInit:
		s.str.screen = storeScreenFront
		return c.renderFront(s, strings.TrimSpace(env.Text))
	case storeScreenFront:
		return c.handleFront(ctx, s, strings.TrimSpace(env.Text))
	case storeScreenCart:
		return c.handleCart(ctx, s, strings.TrimSpace(env.Text))
	case storeScreenEditor:
		res := c.editor.Handle(ctx, s, env)
		if _, done := res.Payload.(EditorDone); done {
			s.str.screen = storeScreenFront
		}
		return res
	default:
		s.str = storeFlow{}
		return Envelope{Dest: SubsystemStore, Text: c.renderFront(s, "").Text}
	}
}

func (c *StoreCoordinator) handleFront(ctx context.Context, s *Session, input string) Envelope {
	if input == "" {
		return c.renderFront(s, "")
	}

	fields := strings.Fields(input)
	cmd := fields[0]
	arg := ""
	if len(fields) > 1 {
		arg = fields[1]
	}

	// Shared commands first.
	switch cmd {
	case "4":
		return Envelope{Dest: SubsystemMessaging}
	case "5":
		s.str = storeFlow{}
		return Envelope{Dest: SubsystemAccount}
	}

	if s.Account.Role == account.RoleWorker {
		return c.handleWorkerFront(ctx, s, cmd, arg)
	}
	return c.handleCustomerFront(ctx, s, cmd, arg)
}

func (c *StoreCoordinator) handleCustomerFront(ctx context.Context, s *Session, cmd, arg string) Envelope {
	switch cmd {
	case "1":
		if arg == "" {
			return c.renderFront(s, "Usage: 1 [product id]")
		}
		p, ok := c.catalog.Get(arg)
		if !ok {
			return c.renderFront(s, fmt.Sprintf("No product with id %s.", arg))
		}
		if p.Inventory < 1 {
			return c.renderFront(s, fmt.Sprintf("%s is out of stock.", p.Name))
		}
		s.Account.AddToCart(p.ID)
		return c.renderFront(s, fmt.Sprintf("Added %s to your cart.", p.Name))
	case "2":
		if arg == "" {
			return c.renderFront(s, "Usage: 2 [product id]")
		}
		if !c.catalog.Like(ctx, arg) {
			return c.renderFront(s, fmt.Sprintf("No product with id %s.", arg))
		}
		return c.renderFront(s, "Liked.")
	case "3":
		s.str.screen = storeScreenCart
		return c.renderCart(s, "")
	default:
		return c.renderFront(s, "Unknown command.")
	}
}

func (c *StoreCoordinator) handleWorkerFront(ctx context.Context, s *Session, cmd, arg string) Envelope {
	switch cmd {
	case "1":
		if arg == "" {
			return c.renderFront(s, "Usage: 1 [product id]")
		}
		p, ok := c.catalog.Get(arg)
		if !ok {
			return c.renderFront(s, fmt.Sprintf("No product with id %s.", arg))
		}
		s.str.screen = storeScreenEditor
		c.editor.StartEdit(s, p)
		return c.editor.Handle(ctx, s, Envelope{Dest: SubsystemStore})
	case "2":
		if arg == "" {
			return c.renderFront(s, "Usage: 2 [product id]")
		}
		if !c.catalog.Remove(ctx, arg) {
			return c.renderFront(s, fmt.Sprintf("No product with id %s.", arg))
		}
		return c.renderFront(s, "Product removed.")
	case "3":
		s.str.screen = storeScreenEditor
		c.editor.StartCreate(s)
		return c.editor.Handle(ctx, s, Envelope{Dest: SubsystemStore})
	default:
		return c.renderFront(s, "Unknown command.")
	}
}

func (c *StoreCoordinator) handleCart(ctx context.Context, s *Session, input string) Envelope {
	if input == "" {
		return c.renderCart(s, "")
	}

	fields := strings.Fields(input)
	switch fields[0] {
	case "1":
		if len(fields) < 2 {
			return c.renderCart(s, "Usage: 1 [product id]")
		}
		id := fields[1]
		if !s.Account.InCart(id) {
			return c.renderCart(s, fmt.Sprintf("%s is not in your cart.", id))
		}
		s.Account.RemoveFromCart(id)
		return c.renderCart(s, "Item removed.")
	case "2":
		return c.checkout(ctx, s)
	case "3":
		s.str.screen = storeScreenFront
		return c.renderFront(s, "")
	default:
		return c.renderCart(s, "Unknown command.")
	}
}

// checkout verifies the cart against the live catalog, then records the
// sale and hands the total to ACCOUNT to begin payment. The cart itself is
// cleared only when the payment wizard reports success, not here.
func (c *StoreCoordinator) checkout(ctx context.Context, s *Session) Envelope {
	if len(s.Account.Cart) == 0 {
		return c.renderCart(s, "Your cart is empty.")
	}

	// Lazy consistency check: the cart may reference products that were
	// removed or sold out since they were added. Purge those and report
	// instead of proceeding.
	var purged []string
	for _, id := range s.Account.Cart {
		p, ok := c.catalog.Get(id)
		if !ok || p.Inventory < 1 {
			purged = append(purged, id)
		}
	}
	if len(purged) > 0 {
		for _, id := range purged {
			s.Account.RemoveFromCart(id)
		}
		return c.renderCart(s, "Removed unavailable items from your cart: "+strings.Join(purged, ", "))
	}

	today := time.Now().Format(sales.DateLayout)
	var (
		total   float64
		records []sales.Record
	)
	for _, id := range s.Account.Cart {
		p, _ := c.catalog.Get(id)
		total += p.Price
		records = append(records, sales.Record{Product: p.Name, Date: today})
	}

	c.catalog.Decrement(ctx, s.Account.Cart)
	if err := c.sales.Append(ctx, records); err != nil {
		c.log.Error().Err(err).Msg("failed to append sales log")
	}

	s.str = storeFlow{}
	return Envelope{Dest: SubsystemAccount, Payload: CheckoutTotal{Amount: total}}
}

// renderFront builds the storefront screen: the catalog ordered by
// descending like count, with a notice line when there is something to
// say.
func (c *StoreCoordinator) renderFront(s *Session, notice string) Envelope {
	var sb strings.Builder
	if s.Account.Role == account.RoleWorker {
		sb.WriteString("=== Storefront (staff) ===\n")
	} else {
		sb.WriteString("=== Storefront ===\n")
	}
	if notice != "" {
		sb.WriteString(notice + "\n")
	}

	products := c.catalog.Sorted()
	if len(products) == 0 {
		sb.WriteString("(no products)\n")
	}
	for _, p := range products {
		fmt.Fprintf(&sb, "%s. %s - $%.2f | Likes: %d | In stock: %d\n", p.ID, p.Name, p.Price, p.Likes, p.Inventory)
	}

	if s.Account.Role == account.RoleWorker {
		sb.WriteString(storeWorkerMenu)
	} else {
		sb.WriteString(storeCustomerMenu)
	}
	return Envelope{Dest: SubsystemStore, Text: sb.String()}
}

// renderCart builds the cart screen, resolving each cart id against the
// catalog.
func (c *StoreCoordinator) renderCart(s *Session, notice string) Envelope {
	var sb strings.Builder
	sb.WriteString("=== Your Cart ===\n")
	if notice != "" {
		sb.WriteString(notice + "\n")
	}

	if len(s.Account.Cart) == 0 {
		sb.WriteString("(empty)\n")
	}
	var total float64
	for _, id := range s.Account.Cart {
		p, ok := c.catalog.Get(id)
		if !ok {
			fmt.Fprintf(&sb, "%s. (no longer available)\n", id)
			continue
		}
		fmt.Fprintf(&sb, "%s. %s - $%.2f\n", p.ID, p.Name, p.Price)
		total += p.Price
	}
	fmt.Fprintf(&sb, "Total: $%.2f\n", total)
	sb.WriteString(storeCartMenu)
	return Envelope{Dest: SubsystemStore, Text: sb.String()}
}
