package shop

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/shopterm/shopterm/internal/core/catalog"
)

// Editor wizard prompts.
const (
	editHeaderEditing  = "=== Editing Product ===\nTo change a field, type a value and hit [ENTER]. To keep the current value, just hit [ENTER].\n"
	editHeaderCreating = "=== Creating Product ===\n"
	editErrBadNumber   = "Invalid number. Please try again.\nInput: "
)

// EditorCoordinator is the five-field product create/edit wizard. It is a
// leaf wizard: the storefront starts it and forwards turns to it until it
// signals completion with an EditorDone payload.
type EditorCoordinator struct {
	catalog *catalog.Catalog
	log     zerolog.Logger
}

// NewEditorCoordinator returns a wizard over the shared catalog.
func NewEditorCoordinator(cat *catalog.Catalog, logger zerolog.Logger) *EditorCoordinator {
	return &EditorCoordinator{
		catalog: cat,
		log:     logger.With().Str("component", "editor").Logger(),
	}
}

// StartEdit arms the wizard to modify an existing product. Every field
// may be skipped with empty input, keeping the stored value.
func (c *EditorCoordinator) StartEdit(s *Session, p catalog.Product) {
	s.edit = editorFlow{
		editing:  true,
		targetID: p.ID,
		current: editorFields{
			name:      p.Name,
			price:     p.Price,
			likes:     p.Likes,
			inventory: p.Inventory,
		},
	}
}

// StartCreate arms the wizard to build a new product. Name, price, and
// inventory are required; likes default to 0.
func (c *EditorCoordinator) StartCreate(s *Session) {
	s.edit = editorFlow{}
}

// Handle runs one wizard turn. A parse failure re-prompts the same field
// without advancing state.
func (c *EditorCoordinator) Handle(ctx context.Context, s *Session, env Envelope) Envelope {
	input := strings.TrimSpace(env.Text)
	f := &s.edit

	switch f.state {
	case editStateInit:
		f.state = editStateName
		return c.prompt(f, c.fieldPrompt(f, "Name", f.current.name))

	case editStateName:
		if input == "" {
			if !f.editing {
				return c.prompt(f, "Enter Product Name: ")
			}
			f.scratch.name = f.current.name
		} else {
			f.scratch.name = input
		}
		f.state = editStatePrice
		return c.prompt(f, c.fieldPrompt(f, "Price", fmt.Sprintf("%.2f", f.current.price)))

	case editStatePrice:
		if input == "" && f.editing {
			f.scratch.price = f.current.price
		} else {
			price, err := strconv.ParseFloat(input, 64)
			if err != nil {
				return Envelope{Dest: SubsystemStore, Text: editErrBadNumber}
			}
			f.scratch.price = price
		}
		f.state = editStateLikes
		return c.prompt(f, c.likesPrompt(f))

	case editStateLikes:
		switch {
		case input == "" && f.editing:
			f.scratch.likes = f.current.likes
		case input == "":
			f.scratch.likes = 0
		default:
			likes, err := strconv.Atoi(input)
			if err != nil {
				return Envelope{Dest: SubsystemStore, Text: editErrBadNumber}
			}
			f.scratch.likes = likes
		}
		f.state = editStateInventory
		return c.prompt(f, c.fieldPrompt(f, "Inventory", strconv.Itoa(f.current.inventory)))

	case editStateInventory:
		if input == "" && f.editing {
			f.scratch.inventory = f.current.inventory
		} else {
			inventory, err := strconv.Atoi(input)
			if err != nil {
				return Envelope{Dest: SubsystemStore, Text: editErrBadNumber}
			}
			f.scratch.inventory = inventory
		}
		return c.finish(ctx, s)

	default:
		s.edit = editorFlow{}
		return Envelope{Dest: SubsystemStore, Text: "Editor error.", Payload: EditorDone{}}
	}
}

// finish persists the finished product: replace-and-save when editing,
// assign a fresh id and save when creating.
func (c *EditorCoordinator) finish(ctx context.Context, s *Session) Envelope {
	f := s.edit
	s.edit = editorFlow{}

	id := f.targetID
	if !f.editing {
		var err error
		id, err = c.catalog.NextID()
		if err != nil {
			c.log.Error().Err(err).Msg("cannot assign product id")
			return Envelope{Dest: SubsystemStore, Text: "The catalog is full; no product id is available.\nHit [ENTER] to continue.", Payload: EditorDone{}}
		}
	}

	p := catalog.Product{
		ID:        id,
		Name:      f.scratch.name,
		Price:     f.scratch.price,
		Likes:     f.scratch.likes,
		Inventory: f.scratch.inventory,
	}
	c.catalog.Put(ctx, p)

	return Envelope{
		Dest:    SubsystemStore,
		Text:    fmt.Sprintf("Product saved: %s\nHit [ENTER] to continue.", p.Name),
		Payload: EditorDone{Name: p.Name},
	}
}

func (c *EditorCoordinator) prompt(f *editorFlow, text string) Envelope {
	header := editHeaderCreating
	if f.editing {
		header = editHeaderEditing
	}
	return Envelope{Dest: SubsystemStore, Text: header + text}
}

func (c *EditorCoordinator) fieldPrompt(f *editorFlow, field, current string) string {
	if f.editing {
		return fmt.Sprintf("Enter Product %s (Current: %s)\nInput: ", field, current)
	}
	return fmt.Sprintf("Enter Product %s: ", field)
}

func (c *EditorCoordinator) likesPrompt(f *editorFlow) string {
	if f.editing {
		return fmt.Sprintf("Enter Product Likes (Current: %d)\nInput: ", f.current.likes)
	}
	return "Enter Initial Likes (Default 0): "
}
