package server

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/fwojciec/grabbr"
	"github.com/fwojciec/grabbr/goquery"
)

// extractRequest is the body of POST /api/extract. Exactly one of URL and
// HTML is needed; when both are set HTML is extracted and URL is recorded
// as its source.
type extractRequest struct {
	URL     string                 `json:"url"`
	HTML    string                 `json:"html"`
	Mode    grabbr.Mode            `json:"mode"`
	Options grabbr.OptionsOverride `json:"options"`

	// Save, when set, stores the structured items as a deck of that name.
	Save string `json:"save"`
}

type extractResponse struct {
	*grabbr.Result
	Deck *grabbr.Deck `json:"deck,omitempty"`
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req extractRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxRequestBody)).Decode(&req); err != nil {
		s.writeError(w, r, grabbr.Errorf(grabbr.EINVALID, "invalid request body: %v", err))
		return
	}

	mode := req.Mode
	if mode == "" {
		mode = s.Mode
	}
	opts := s.Options.With(req.Options)
	if req.Save != "" {
		opts.Format = grabbr.FormatJSON
	}

	doc, err := s.open(r, req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	defer grabbr.ReleaseDocument(doc)

	res, err := s.Extractor.Extract(r.Context(), doc, mode, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := extractResponse{Result: res}
	if req.Save != "" {
		deck := &grabbr.Deck{Name: req.Save, SourceURL: req.URL, Mode: mode, Items: res.Items}
		if err := s.Decks.CreateDeck(r.Context(), deck); err != nil {
			s.writeError(w, r, err)
			return
		}
		resp.Deck = deck
	}

	writeJSON(w, http.StatusOK, resp)
}

// open returns the document a request names: posted HTML parsed
// statically, or a URL opened through Source.
func (s *Server) open(r *http.Request, req extractRequest) (grabbr.Document, error) {
	if req.HTML != "" {
		doc, err := goquery.Parse(req.HTML)
		if err != nil {
			return nil, err
		}
		return doc, nil
	}
	if req.URL == "" {
		return nil, grabbr.Errorf(grabbr.EINVALID, "url or html required")
	}
	if u, err := url.Parse(req.URL); err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, grabbr.Errorf(grabbr.EINVALID, "invalid url %q", req.URL)
	}
	if s.Source == nil {
		return nil, grabbr.Errorf(grabbr.EINVALID, "fetching by url is disabled; post html instead")
	}
	return s.Source.Open(r.Context(), req.URL)
}
