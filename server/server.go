// Package server exposes extraction and the deck library over HTTP, so a
// host shell such as a browser extension can post the page it is showing
// and render the returned items.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/fwojciec/grabbr"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// MaxRequestBody bounds the size of a posted page.
const MaxRequestBody = 16 << 20

// Server is the HTTP API for grabbr.
type Server struct {
	router chi.Router

	// Source opens pages requested by URL. Optional; requests that post
	// HTML directly never need it.
	Source grabbr.DocumentSource

	Extractor grabbr.Extractor
	Decks     grabbr.DeckService

	// Mode and Options are used for fields a request leaves unset.
	Mode    grabbr.Mode
	Options grabbr.Options

	log *slog.Logger
}

// NewServer creates a Server with its routes registered.
func NewServer(extractor grabbr.Extractor, decks grabbr.DeckService, log *slog.Logger) *Server {
	s := &Server{
		Extractor: extractor,
		Decks:     decks,
		Mode:      grabbr.ModeFull,
		Options:   grabbr.DefaultOptions(),
		log:       log,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(requestLogger(s.log))

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/extract", s.handleExtract)

		r.Route("/decks", func(r chi.Router) {
			r.Get("/", s.handleListDecks)
			r.Get("/{name}", s.handleGetDeck)
			r.Delete("/{name}", s.handleDeleteDeck)
		})
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// requestLogger logs one line per request.
func requestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			log.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}

// errorStatus maps application error codes to HTTP status codes.
var errorStatus = map[string]int{
	grabbr.ECONFLICT: http.StatusConflict,
	grabbr.EINVALID:  http.StatusBadRequest,
	grabbr.ENOTFOUND: http.StatusNotFound,
	grabbr.EINTERNAL: http.StatusInternalServerError,
}

// writeError writes err as a JSON error body. Internal errors are logged
// and their details withheld from the client.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := grabbr.ErrorCode(err)
	status, ok := errorStatus[code]
	if !ok {
		status = http.StatusInternalServerError
	}
	if code == grabbr.EINTERNAL {
		s.log.Error("internal error", "path", r.URL.Path, "err", err)
	}
	writeJSON(w, status, map[string]string{"error": grabbr.ErrorMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
