package flatfile

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/shopterm/shopterm/internal/core/catalog"
)

// Record layout: id,name,price,likes,inventory. Exactly five fields.
const productFields = 5

// ProductStore persists the product catalog as one CSV line per product.
// Every save rewrites the whole file; there is no single-record edit.
type ProductStore struct {
	path string
	mu   sync.Mutex
	log  zerolog.Logger
}

var _ catalog.Store = (*ProductStore)(nil)

// NewProductStore returns a store writing to path.
func NewProductStore(path string, logger zerolog.Logger) *ProductStore {
	return &ProductStore{path: path, log: logger.With().Str("component", "productstore").Logger()}
}

// LoadAll reads every valid product record. Malformed lines are skipped
// and logged.
func (s *ProductStore) LoadAll(ctx context.Context) ([]catalog.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines, err := readLines(s.path)
	if err != nil {
		return nil, fmt.Errorf("read products: %w", err)
	}

	products := make([]catalog.Product, 0, len(lines))
	for _, line := range lines {
		p, err := decodeProduct(line)
		if err != nil {
			s.log.Warn().Err(err).Str("line", line).Msg("skipping malformed product record")
			continue
		}
		products = append(products, p)
	}
	return products, nil
}

// SaveAll replaces the whole catalog file.
func (s *ProductStore) SaveAll(ctx context.Context, products []catalog.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := make([]string, 0, len(products))
	for _, p := range products {
		lines = append(lines, encodeProduct(p))
	}
	if err := writeLines(s.path, lines); err != nil {
		return fmt.Errorf("write products: %w", err)
	}
	return nil
}

func encodeProduct(p catalog.Product) string {
	return strings.Join([]string{
		p.ID,
		p.Name,
		strconv.FormatFloat(p.Price, 'f', 2, 64),
		strconv.Itoa(p.Likes),
		strconv.Itoa(p.Inventory),
	}, ",")
}

func decodeProduct(line string) (catalog.Product, error) {
	fields := strings.Split(line, ",")
	if len(fields) != productFields {
		return catalog.Product{}, fmt.Errorf("want %d fields, got %d", productFields, len(fields))
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(fields[2]), 64)
	if err != nil {
		return catalog.Product{}, fmt.Errorf("parse price: %w", err)
	}
	likes, err := strconv.Atoi(strings.TrimSpace(fields[3]))
	if err != nil {
		return catalog.Product{}, fmt.Errorf("parse likes: %w", err)
	}
	inventory, err := strconv.Atoi(strings.TrimSpace(fields[4]))
	if err != nil {
		return catalog.Product{}, fmt.Errorf("parse inventory: %w", err)
	}

	return catalog.Product{
		ID:        strings.TrimSpace(fields[0]),
		Name:      strings.TrimSpace(fields[1]),
		Price:     price,
		Likes:     likes,
		Inventory: inventory,
	}, nil
}
