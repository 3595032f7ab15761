package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/grabbr"
)

// Ensure LoggingDeckService implements grabbr.DeckService.
var _ grabbr.DeckService = (*LoggingDeckService)(nil)

// LoggingDeckService wraps a DeckService with logging.
type LoggingDeckService struct {
	next   grabbr.DeckService
	logger *slog.Logger
}

// NewLoggingDeckService creates a new LoggingDeckService.
func NewLoggingDeckService(next grabbr.DeckService, logger *slog.Logger) *LoggingDeckService {
	return &LoggingDeckService{next: next, logger: logger}
}

// CreateDeck logs the saved deck and delegates to the wrapped service.
func (s *LoggingDeckService) CreateDeck(ctx context.Context, deck *grabbr.Deck) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("create deck",
			"name", deck.Name,
			"items", len(deck.Items),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateDeck(ctx, deck)
}

// FindDeckByName delegates to the wrapped service.
func (s *LoggingDeckService) FindDeckByName(ctx context.Context, name string) (deck *grabbr.Deck, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find deck",
			"name", name,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindDeckByName(ctx, name)
}

// FindDecks delegates to the wrapped service.
func (s *LoggingDeckService) FindDecks(ctx context.Context, filter grabbr.DeckFilter) (decks []*grabbr.Deck, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find decks",
			"count", len(decks),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindDecks(ctx, filter)
}

// DeleteDeck logs the deletion and delegates to the wrapped service.
func (s *LoggingDeckService) DeleteDeck(ctx context.Context, name string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("delete deck",
			"name", name,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeleteDeck(ctx, name)
}
