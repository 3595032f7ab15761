package server

import (
	"net/http"
	"strconv"

	"github.com/fwojciec/grabbr"
	"github.com/go-chi/chi/v5"
)

// DefaultDeckLimit caps GET /api/decks when no limit is given.
const DefaultDeckLimit = 50

func (s *Server) handleListDecks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := grabbr.DeckFilter{Limit: DefaultDeckLimit}

	if v := q.Get("source_url"); v != "" {
		filter.SourceURL = &v
	}
	for param, dst := range map[string]*int{"limit": &filter.Limit, "offset": &filter.Offset} {
		v := q.Get(param)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.writeError(w, r, grabbr.Errorf(grabbr.EINVALID, "invalid %s %q", param, v))
			return
		}
		*dst = n
	}

	decks, err := s.Decks.FindDecks(r.Context(), filter)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if decks == nil {
		decks = []*grabbr.Deck{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"decks": decks})
}

func (s *Server) handleGetDeck(w http.ResponseWriter, r *http.Request) {
	deck, err := s.Decks.FindDeckByName(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, deck)
}

func (s *Server) handleDeleteDeck(w http.ResponseWriter, r *http.Request) {
	if err := s.Decks.DeleteDeck(r.Context(), chi.URLParam(r, "name")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
