package flatfile

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/shopterm/shopterm/internal/core/account"
	"github.com/shopterm/shopterm/internal/core/messaging"
)

// Record layout: customerEmail,role1,message1,role2,message2,...
// One line per customer; appending a message rewrites the whole file with
// that customer's line extended. Commas inside message bodies are escaped
// as ";" at rest and reversed on load.
type MessageStore struct {
	path string
	mu   sync.Mutex
	log  zerolog.Logger
}

var _ messaging.Store = (*MessageStore)(nil)

// NewMessageStore returns a store writing to path.
func NewMessageStore(path string, logger zerolog.Logger) *MessageStore {
	return &MessageStore{path: path, log: logger.With().Str("component", "messagestore").Logger()}
}

// Emails returns every customer email with any history, in file order.
func (s *MessageStore) Emails(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines, err := readLines(s.path)
	if err != nil {
		return nil, fmt.Errorf("read messages: %w", err)
	}

	emails := make([]string, 0, len(lines))
	for _, line := range lines {
		email, _, _ := strings.Cut(line, ",")
		if email = strings.TrimSpace(email); email != "" {
			emails = append(emails, email)
		}
	}
	return emails, nil
}

// History returns the conversation for one customer, oldest first. A
// customer without a record has an empty history, not an error.
func (s *MessageStore) History(ctx context.Context, email string) ([]messaging.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines, err := readLines(s.path)
	if err != nil {
		return nil, fmt.Errorf("read messages: %w", err)
	}

	for _, line := range lines {
		fields := strings.Split(line, ",")
		if len(fields) == 0 || !strings.EqualFold(strings.TrimSpace(fields[0]), email) {
			continue
		}

		var entries []messaging.Entry
		// Fields after the key alternate speaker,body. A dangling
		// speaker with no body is dropped.
		for i := 1; i+1 < len(fields); i += 2 {
			role, err := account.ParseRole(fields[i])
			if err != nil {
				s.log.Warn().Err(err).Str("email", email).Msg("skipping conversation entry with bad speaker")
				continue
			}
			entries = append(entries, messaging.Entry{
				Speaker: role,
				Body:    unescapeBody(fields[i+1]),
			})
		}
		return entries, nil
	}
	return nil, nil
}

// Append adds one entry to the customer's record, creating the record if
// it does not exist, then rewrites the whole file.
func (s *MessageStore) Append(ctx context.Context, email string, speaker account.Role, body string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines, err := readLines(s.path)
	if err != nil {
		return fmt.Errorf("read messages: %w", err)
	}

	suffix := "," + string(speaker) + "," + escapeBody(body)

	found := false
	out := make([]string, 0, len(lines)+1)
	for _, line := range lines {
		key, _, _ := strings.Cut(line, ",")
		if strings.EqualFold(strings.TrimSpace(key), email) {
			line += suffix
			found = true
		}
		out = append(out, line)
	}
	if !found {
		// A worker may start a conversation before the customer ever
		// opens the messages screen.
		out = append(out, email+suffix)
	}

	if err := writeLines(s.path, out); err != nil {
		return fmt.Errorf("write messages: %w", err)
	}
	return nil
}

func escapeBody(s string) string   { return strings.ReplaceAll(s, ",", ";") }
func unescapeBody(s string) string { return strings.ReplaceAll(s, ";", ",") }
