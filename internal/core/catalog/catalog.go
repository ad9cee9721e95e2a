// Package catalog holds the product catalog: the in-memory product list,
// its mutation operations, and the id assignment scheme.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/rs/zerolog"
)

// Product is a single catalog item. IDs are three digits, assigned by
// NextID; "000" through "010" are reserved and never handed out.
type Product struct {
	ID        string
	Name      string
	Price     float64
	Likes     int
	Inventory int
}

// Store is the persistence collaborator for the product catalog.
type Store interface {
	LoadAll(ctx context.Context) ([]Product, error)
	SaveAll(ctx context.Context, products []Product) error
}

// ErrCatalogFull is returned by NextID when every assignable id is taken.
var ErrCatalogFull = errors.New("catalog: no free product id below 1000")

// Catalog wraps the loaded product list. Every mutation rewrites the whole
// backing file; a persistence failure is logged and the in-memory state is
// kept, so memory and disk may diverge on I/O failure.
type Catalog struct {
	products []Product
	store    Store
	log      zerolog.Logger
}

// New returns a Catalog backed by store. Call Load before first use.
func New(store Store, logger zerolog.Logger) *Catalog {
	return &Catalog{store: store, log: logger.With().Str("component", "catalog").Logger()}
}

// Load reads the full catalog from the store.
func (c *Catalog) Load(ctx context.Context) error {
	products, err := c.store.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	c.products = products
	return nil
}

// Sorted returns a copy of the catalog ordered by descending like count.
func (c *Catalog) Sorted() []Product {
	out := slices.Clone(c.products)
	slices.SortStableFunc(out, func(a, b Product) int {
		return b.Likes - a.Likes
	})
	return out
}

// Get returns the product with the given id.
func (c *Catalog) Get(id string) (Product, bool) {
	for _, p := range c.products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// Like increments the like count for id and persists the catalog.
// Returns false if no such product exists.
func (c *Catalog) Like(ctx context.Context, id string) bool {
	for i := range c.products {
		if c.products[i].ID == id {
			c.products[i].Likes++
			c.persist(ctx)
			return true
		}
	}
	return false
}

// Remove deletes the product with the given id and persists the catalog.
// Returns false if no such product exists.
func (c *Catalog) Remove(ctx context.Context, id string) bool {
	for i := range c.products {
		if c.products[i].ID == id {
			c.products = slices.Delete(c.products, i, i+1)
			c.persist(ctx)
			return true
		}
	}
	return false
}

// Put replaces the product matching p.ID, or appends p, then persists.
func (c *Catalog) Put(ctx context.Context, p Product) {
	for i := range c.products {
		if c.products[i].ID == p.ID {
			c.products[i] = p
			c.persist(ctx)
			return
		}
	}
	c.products = append(c.products, p)
	c.persist(ctx)
}

// Decrement reduces inventory by one for each id occurrence in ids, then
// persists the catalog once. Unknown ids are ignored; callers are expected
// to have purged them beforehand.
func (c *Catalog) Decrement(ctx context.Context, ids []string) {
	for _, id := range ids {
		for i := range c.products {
			if c.products[i].ID == id {
				c.products[i].Inventory--
				break
			}
		}
	}
	c.persist(ctx)
}

// NextID returns the first unused three-digit id, scanning upward from
// "011".
func (c *Catalog) NextID() (string, error) {
	taken := make(map[string]struct{}, len(c.products))
	for _, p := range c.products {
		taken[p.ID] = struct{}{}
	}
	for i := 11; i < 1000; i++ {
		id := fmt.Sprintf("%03d", i)
		if _, ok := taken[id]; !ok {
			return id, nil
		}
	}
	return "", ErrCatalogFull
}

func (c *Catalog) persist(ctx context.Context) {
	if err := c.store.SaveAll(ctx, c.products); err != nil {
		c.log.Error().Err(err).Msg("failed to persist catalog; in-memory state kept")
	}
}
