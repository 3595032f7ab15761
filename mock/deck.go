package mock

import (
	"context"

	"github.com/fwojciec/grabbr"
)

var _ grabbr.DeckService = (*DeckService)(nil)

// DeckService is a mock implementation of grabbr.DeckService.
type DeckService struct {
	CreateDeckFn     func(ctx context.Context, deck *grabbr.Deck) error
	FindDeckByNameFn func(ctx context.Context, name string) (*grabbr.Deck, error)
	FindDecksFn      func(ctx context.Context, filter grabbr.DeckFilter) ([]*grabbr.Deck, error)
	DeleteDeckFn     func(ctx context.Context, name string) error
}

func (s *DeckService) CreateDeck(ctx context.Context, deck *grabbr.Deck) error {
	return s.CreateDeckFn(ctx, deck)
}

func (s *DeckService) FindDeckByName(ctx context.Context, name string) (*grabbr.Deck, error) {
	return s.FindDeckByNameFn(ctx, name)
}

func (s *DeckService) FindDecks(ctx context.Context, filter grabbr.DeckFilter) ([]*grabbr.Deck, error) {
	return s.FindDecksFn(ctx, filter)
}

func (s *DeckService) DeleteDeck(ctx context.Context, name string) error {
	return s.DeleteDeckFn(ctx, name)
}
