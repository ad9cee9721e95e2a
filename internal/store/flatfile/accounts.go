package flatfile

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/shopterm/shopterm/internal/core/account"
)

// Record layout: email,password,role,creditCard,debitCard,address,cartId...
// The first six fields are mandatory; cart ids are variable-length.
// Addresses may contain commas, so they are re-encoded with ":" at rest and
// decoded on load.
const accountMinFields = 6

// AccountStore persists account records as one CSV line each.
type AccountStore struct {
	path string
	mu   sync.Mutex
	log  zerolog.Logger
}

var _ account.Store = (*AccountStore)(nil)

// NewAccountStore returns a store writing to path.
func NewAccountStore(path string, logger zerolog.Logger) *AccountStore {
	return &AccountStore{path: path, log: logger.With().Str("component", "accountstore").Logger()}
}

// LoadAll reads every valid account record. Malformed lines are skipped
// and logged.
func (s *AccountStore) LoadAll(ctx context.Context) ([]account.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines, err := readLines(s.path)
	if err != nil {
		return nil, fmt.Errorf("read accounts: %w", err)
	}

	accounts := make([]account.Account, 0, len(lines))
	for _, line := range lines {
		a, err := decodeAccount(line)
		if err != nil {
			s.log.Warn().Err(err).Str("line", line).Msg("skipping malformed account record")
			continue
		}
		accounts = append(accounts, a)
	}
	return accounts, nil
}

// SaveAll replaces the whole record file.
func (s *AccountStore) SaveAll(ctx context.Context, accounts []account.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.saveAllLocked(accounts)
}

// Upsert replaces the record with a matching email, or appends a new one,
// then rewrites the whole file.
func (s *AccountStore) Upsert(ctx context.Context, a account.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines, err := readLines(s.path)
	if err != nil {
		return fmt.Errorf("read accounts: %w", err)
	}

	accounts := make([]account.Account, 0, len(lines)+1)
	for _, line := range lines {
		existing, err := decodeAccount(line)
		if err != nil {
			s.log.Warn().Err(err).Str("line", line).Msg("dropping malformed account record on rewrite")
			continue
		}
		accounts = append(accounts, existing)
	}

	replaced := false
	for i := range accounts {
		if accounts[i].Email == a.Email {
			accounts[i] = a
			replaced = true
			break
		}
	}
	if !replaced {
		accounts = append(accounts, a)
	}

	return s.saveAllLocked(accounts)
}

func (s *AccountStore) saveAllLocked(accounts []account.Account) error {
	lines := make([]string, 0, len(accounts))
	for _, a := range accounts {
		lines = append(lines, encodeAccount(a))
	}
	if err := writeLines(s.path, lines); err != nil {
		return fmt.Errorf("write accounts: %w", err)
	}
	return nil
}

func encodeAccount(a account.Account) string {
	fields := []string{
		a.Email,
		a.Password,
		string(a.Role),
		a.CreditCard,
		a.DebitCard,
		encodeAddress(a.Address),
	}
	fields = append(fields, a.Cart...)
	return strings.Join(fields, ",")
}

func decodeAccount(line string) (account.Account, error) {
	fields := strings.Split(line, ",")
	if len(fields) < accountMinFields {
		return account.Account{}, fmt.Errorf("want at least %d fields, got %d", accountMinFields, len(fields))
	}

	role, err := account.ParseRole(fields[2])
	if err != nil {
		return account.Account{}, err
	}

	a := account.Account{
		Email:      fields[0],
		Password:   fields[1],
		Role:       role,
		CreditCard: fields[3],
		DebitCard:  fields[4],
		Address:    decodeAddress(fields[5]),
	}
	for _, id := range fields[accountMinFields:] {
		if id != "" {
			a.Cart = append(a.Cart, id)
		}
	}
	return a, nil
}

func encodeAddress(s string) string { return strings.ReplaceAll(s, ",", ":") }
func decodeAddress(s string) string { return strings.ReplaceAll(s, ":", ",") }
