package grabbr

import (
	"context"
	"time"
)

// Deck is a named set of extracted items saved for later study or export.
type Deck struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	SourceURL   string    `json:"sourceUrl"`
	Mode        Mode      `json:"mode"`
	Items       []Item    `json:"items"`
	ContentHash string    `json:"contentHash"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Validate returns an error if the deck contains invalid fields.
func (d *Deck) Validate() error {
	if d.Name == "" {
		return Errorf(EINVALID, "deck name required")
	}
	if d.SourceURL == "" {
		return Errorf(EINVALID, "deck source URL required")
	}
	if len(d.Items) == 0 {
		return Errorf(EINVALID, "deck has no items")
	}
	return nil
}

// DeckService represents a service for managing saved decks.
type DeckService interface {
	// CreateDeck saves a new deck.
	// Returns ECONFLICT if a deck with the same name exists.
	CreateDeck(ctx context.Context, deck *Deck) error

	// FindDeckByName retrieves a deck by name.
	// Returns ENOTFOUND if the deck does not exist.
	FindDeckByName(ctx context.Context, name string) (*Deck, error)

	// FindDecks retrieves decks matching the filter, newest first.
	FindDecks(ctx context.Context, filter DeckFilter) ([]*Deck, error)

	// DeleteDeck permanently removes a deck.
	// Returns ENOTFOUND if the deck does not exist.
	DeleteDeck(ctx context.Context, name string) error
}

// DeckFilter represents a filter for FindDecks.
type DeckFilter struct {
	Name      *string `json:"name"`
	SourceURL *string `json:"sourceUrl"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
