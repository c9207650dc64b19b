// Package proxy serves words and suggestions over HTTP so clients never
// hold the model API key.
package proxy

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/verte-zerg/tuispell/internal/model"
	"github.com/verte-zerg/tuispell/internal/wordsource"
)

// DefaultAddr is used when no listen address is configured.
const DefaultAddr = "127.0.0.1:3000"

const maxBodyBytes = 1 << 20

// Backend produces the data served by the proxy.
type Backend interface {
	FetchWords(ctx context.Context, count int) ([]string, error)
	Suggest(ctx context.Context, errs model.ErrorMap) ([]string, error)
}

// Server is the word proxy HTTP server.
type Server struct {
	backend Backend
	srv     *http.Server
	logger  *zap.SugaredLogger
	running atomic.Bool
}

// NewServer builds a server listening on addr.
func NewServer(addr string, backend Backend, logger *zap.SugaredLogger) *Server {
	if addr == "" {
		addr = DefaultAddr
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	s := &Server{backend: backend, logger: logger}
	s.srv = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// Handler returns the routed handler with CORS applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/get-word", s.handleWords)
	mux.HandleFunc("/api/get-suggestions", s.handleSuggestions)
	return withCORS(mux)
}

// Addr returns the configured listen address.
func (s *Server) Addr() string { return s.srv.Addr }

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return errors.New("proxy: server already running")
	}
	defer s.running.Store(false)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Infow("proxy listening", "addr", s.srv.Addr)
		errCh <- s.srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeoutCause(context.WithoutCancel(ctx), 5*time.Second, errors.New("proxy shutdown timeout"))
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		s.logger.Warnw("graceful shutdown error", "error", err)
		return s.srv.Close()
	}
	s.logger.Infow("proxy stopped")
	return nil
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleWords(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeJSON(w, http.StatusMethodNotAllowed, wordsource.ErrorResponse{Error: "Method not allowed"})
		return
	}

	count := wordsource.DefaultCount
	if raw := r.URL.Query().Get("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || wordsource.ValidateCount(n) != nil {
			writeJSON(w, http.StatusBadRequest, wordsource.ErrorResponse{
				Error: "Count must be between 1 and 50",
			})
			return
		}
		count = n
	}

	words, err := s.backend.FetchWords(r.Context(), count)
	if err != nil {
		s.logger.Errorw("word generation failed", "count", count, "error", err)
		writeJSON(w, http.StatusInternalServerError, wordsource.ErrorResponse{
			Error:   "Failed to get words from AI",
			Details: err.Error(),
		})
		return
	}
	s.logger.Infow("served words", "count", len(words), "remote", r.RemoteAddr)
	writeJSON(w, http.StatusOK, wordsource.WordsResponse{Words: words})
}

func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeJSON(w, http.StatusMethodNotAllowed, wordsource.ErrorResponse{Error: "Method not allowed"})
		return
	}

	var req wordsource.SuggestionsRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, wordsource.ErrorResponse{
			Error:   "Invalid request body",
			Details: err.Error(),
		})
		return
	}
	if len(req.Errors) == 0 {
		writeJSON(w, http.StatusBadRequest, wordsource.ErrorResponse{Error: "Spelling errors data is required"})
		return
	}

	suggestions, err := s.backend.Suggest(r.Context(), req.Errors)
	if err != nil {
		s.logger.Errorw("suggestion generation failed", "words", len(req.Errors), "error", err)
		writeJSON(w, http.StatusInternalServerError, wordsource.ErrorResponse{
			Error:   "Failed to get suggestions from AI",
			Details: err.Error(),
		})
		return
	}
	if len(suggestions) > wordsource.SuggestionCount {
		suggestions = suggestions[:wordsource.SuggestionCount]
	}
	s.logger.Infow("served suggestions", "count", len(suggestions), "remote", r.RemoteAddr)
	writeJSON(w, http.StatusOK, wordsource.SuggestionsResponse{Suggestions: suggestions})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
