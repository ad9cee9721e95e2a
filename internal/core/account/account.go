// Package account defines the identity domain types and the store
// interface for durable account records.
package account

import (
	"context"
	"fmt"
	"slices"
	"strings"
)

// Role describes what an authenticated account is allowed to do.
type Role string

// Supported account roles.
const (
	RoleCustomer  Role = "customer"
	RoleWorker    Role = "worker"
	RoleExecutive Role = "executive"
)

// ParseRole converts a stored role string to a Role.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleCustomer:
		return RoleCustomer, nil
	case RoleWorker:
		return RoleWorker, nil
	case RoleExecutive:
		return RoleExecutive, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// Account is a single identity record. The email is the stable key; two
// records never share one. Cart holds product ids in insertion order and
// may contain the same id more than once.
type Account struct {
	Email      string
	Password   string
	Role       Role
	CreditCard string
	DebitCard  string
	Address    string
	Cart       []string
}

// InCart reports whether the cart holds at least one occurrence of id.
func (a *Account) InCart(id string) bool {
	return slices.Contains(a.Cart, id)
}

// AddToCart appends one occurrence of id to the cart.
func (a *Account) AddToCart(id string) {
	a.Cart = append(a.Cart, id)
}

// RemoveFromCart removes the first occurrence of id, if present.
func (a *Account) RemoveFromCart(id string) {
	if i := slices.Index(a.Cart, id); i >= 0 {
		a.Cart = slices.Delete(a.Cart, i, i+1)
	}
}

// ClearCart empties the cart.
func (a *Account) ClearCart() {
	a.Cart = nil
}

// Store is the persistence collaborator for account records.
type Store interface {
	// LoadAll returns every valid account record. Malformed lines are
	// skipped, not surfaced as errors.
	LoadAll(ctx context.Context) ([]Account, error)
	// SaveAll replaces the whole record file with the given accounts.
	SaveAll(ctx context.Context, accounts []Account) error
	// Upsert replaces the record matching a.Email, or appends it, then
	// rewrites the whole file.
	Upsert(ctx context.Context, a Account) error
}
