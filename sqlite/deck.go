package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/grabbr"
	"github.com/google/uuid"
	"github.com/ncruces/go-sqlite3"
)

// Compile-time interface verification.
var _ grabbr.DeckService = (*DeckService)(nil)

// DeckService implements grabbr.DeckService using SQLite. Items are stored
// as the same JSON the json export produces.
type DeckService struct {
	db *DB
}

// NewDeckService creates a new DeckService.
func NewDeckService(db *DB) *DeckService {
	return &DeckService{db: db}
}

// hashItems computes the xxHash of encoded items as a hex string.
func hashItems(data []byte) string {
	b := make([]byte, 8)
	h := xxhash.Sum64(data)
	for i := range b {
		b[i] = byte(h >> (56 - 8*i))
	}
	return hex.EncodeToString(b)
}

const deckColumns = "id, name, source_url, mode, items, content_hash, created_at"

// CreateDeck saves a new deck, assigning its ID, content hash and creation
// time.
func (s *DeckService) CreateDeck(ctx context.Context, deck *grabbr.Deck) error {
	if err := deck.Validate(); err != nil {
		return err
	}

	data, err := json.Marshal(deck.Items)
	if err != nil {
		return fmt.Errorf("failed to encode items: %w", err)
	}

	deck.ID = uuid.New().String()
	deck.ContentHash = hashItems(data)
	deck.CreatedAt = time.Now().UTC()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO decks (id, name, source_url, mode, items, item_count, content_hash, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, deck.ID, deck.Name, deck.SourceURL, string(deck.Mode), string(data), len(deck.Items),
		deck.ContentHash, deck.CreatedAt.Format(timestampFormat))

	if errors.Is(err, sqlite3.CONSTRAINT_UNIQUE) {
		return grabbr.Errorf(grabbr.ECONFLICT, "deck %q already exists", deck.Name)
	}
	return err
}

// FindDeckByName retrieves a deck by name.
func (s *DeckService) FindDeckByName(ctx context.Context, name string) (*grabbr.Deck, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+deckColumns+" FROM decks WHERE name = ?", name)
	deck, err := scanDeck(row)
	if err == sql.ErrNoRows {
		return nil, grabbr.Errorf(grabbr.ENOTFOUND, "deck %q not found", name)
	}
	if err != nil {
		return nil, err
	}
	return deck, nil
}

// FindDecks retrieves decks matching the filter, newest first.
func (s *DeckService) FindDecks(ctx context.Context, filter grabbr.DeckFilter) ([]*grabbr.Deck, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + deckColumns + " FROM decks WHERE 1=1")

	if filter.Name != nil {
		query.WriteString(" AND name = ?")
		args = append(args, *filter.Name)
	}
	if filter.SourceURL != nil {
		query.WriteString(" AND source_url = ?")
		args = append(args, *filter.SourceURL)
	}

	query.WriteString(" ORDER BY created_at DESC, rowid DESC")

	// SQLite rejects OFFSET without LIMIT.
	if filter.Offset > 0 && filter.Limit <= 0 {
		query.WriteString(" LIMIT -1")
	}
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var decks []*grabbr.Deck
	for rows.Next() {
		deck, err := scanDeck(rows)
		if err != nil {
			return nil, err
		}
		decks = append(decks, deck)
	}

	return decks, rows.Err()
}

// DeleteDeck permanently removes a deck.
func (s *DeckService) DeleteDeck(ctx context.Context, name string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM decks WHERE name = ?", name)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return grabbr.Errorf(grabbr.ENOTFOUND, "deck %q not found", name)
	}

	return nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanDeck(row scanner) (*grabbr.Deck, error) {
	var deck grabbr.Deck
	var mode, items, createdAt string

	if err := row.Scan(&deck.ID, &deck.Name, &deck.SourceURL, &mode, &items, &deck.ContentHash, &createdAt); err != nil {
		return nil, err
	}
	deck.Mode = grabbr.Mode(mode)

	var err error
	if deck.Items, err = grabbr.DecodeItems([]byte(items)); err != nil {
		return nil, fmt.Errorf("failed to decode items of deck %q: %w", deck.Name, err)
	}
	if deck.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	return &deck, nil
}
