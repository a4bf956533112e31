// Package server exposes the problem bank and the solution checker over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	chi "github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/fbf-logic/tutor/internal/answer"
	"github.com/fbf-logic/tutor/internal/problem"
	"github.com/fbf-logic/tutor/internal/symbols"
)

const (
	maxBodyBytes    = 64 << 10
	shutdownTimeout = 5 * time.Second
)

type Server struct {
	router   chi.Router
	matcher  *answer.Matcher
	alphabet *symbols.Alphabet
	logger   *zap.Logger

	// mu guards the rotation cursor of bank
	mu   sync.Mutex
	bank *problem.Bank
}

type Option func(*Server)

func WithMatcher(m *answer.Matcher) Option {
	return func(s *Server) {
		if m != nil {
			s.matcher = m
		}
	}
}

func WithAlphabet(a *symbols.Alphabet) Option {
	return func(s *Server) {
		if a != nil {
			s.alphabet = a
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a server over bank. A nil bank serves no problems.
func New(bank *problem.Bank, opts ...Option) *Server {
	if bank == nil {
		bank = problem.NewBank(nil)
	}
	s := &Server{
		router:   chi.NewRouter(),
		matcher:  answer.NewMatcher(),
		alphabet: symbols.Default(),
		logger:   zap.NewNop(),
		bank:     bank,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.routes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(middleware.Recoverer)
	s.router.Use(allowCrossOrigin)
	s.router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			s.logger.Debug("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Duration("dur", time.Since(start)),
				zap.String("remote", r.RemoteAddr))
		})
	})

	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/problems", s.handleProblems)
		r.Get("/problems/{index}", s.handleProblem)
		r.Get("/questions", s.handleQuestion)
		r.Get("/tokens", s.handleTokens)
		r.Post("/check-solution", s.handleCheckSolution)
	})
}

// ListenAndServe serves on addr until ctx is done, then shuts down.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info("server shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleProblems(w http.ResponseWriter, r *http.Request) {
	problems := s.bank.Problems()
	if t := r.URL.Query().Get("type"); t != "" {
		problems = s.bank.Filter(problem.Type(t)).Problems()
	}
	if problems == nil {
		problems = []*problem.Problem{}
	}
	writeJSON(w, http.StatusOK, problems)
}

func (s *Server) handleProblem(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, errors.New("problem index must be an integer"))
		return
	}
	p, ok := s.bank.At(index)
	if !ok {
		s.writeError(w, http.StatusNotFound, fmt.Errorf("no problem at index %d", index))
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// handleQuestion returns the problem under the rotation cursor and moves
// the cursor on.
func (s *Server) handleQuestion(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	index := s.bank.Index()
	p, ok := s.bank.Current()
	if ok {
		s.bank.Next()
	}
	s.mu.Unlock()

	if !ok {
		s.writeError(w, http.StatusNotFound, errors.New("problem bank is empty"))
		return
	}
	writeJSON(w, http.StatusOK, questionResponse{Index: index, Problem: p})
}

type questionResponse struct {
	Index   int              `json:"index"`
	Problem *problem.Problem `json:"problem"`
}

type tokenGroup struct {
	Group  symbols.Group   `json:"group"`
	Tokens []symbols.Token `json:"tokens"`
}

func (s *Server) handleTokens(w http.ResponseWriter, r *http.Request) {
	groups := s.alphabet.Groups()
	out := make([]tokenGroup, 0, len(groups))
	for _, g := range groups {
		out = append(out, tokenGroup{Group: g, Tokens: s.alphabet.Tokens(g)})
	}
	writeJSON(w, http.StatusOK, out)
}

type checkRequest struct {
	UserSolution    string            `json:"userSolution"`
	CorrectSolution *answer.Solutions `json:"correctSolution,omitempty"`
	ProblemIndex    *int              `json:"problemIndex,omitempty"`
}

type checkResponse struct {
	Correct   bool   `json:"correct"`
	Canonical string `json:"canonical"`
}

func (s *Server) handleCheckSolution(w http.ResponseWriter, r *http.Request) {
	var req checkRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	var accepted answer.Solutions
	switch {
	case req.ProblemIndex != nil:
		p, ok := s.bank.At(*req.ProblemIndex)
		if !ok {
			s.writeError(w, http.StatusNotFound, fmt.Errorf("no problem at index %d", *req.ProblemIndex))
			return
		}
		if p.Type != problem.TypeTranslate && p.Type != problem.TypeArgument {
			s.writeError(w, http.StatusBadRequest, fmt.Errorf("problem %s does not take a formula answer", p.Label(*req.ProblemIndex)))
			return
		}
		accepted = p.Solution
	case req.CorrectSolution != nil:
		accepted = *req.CorrectSolution
	default:
		s.writeError(w, http.StatusBadRequest, errors.New("correctSolution or problemIndex is required"))
		return
	}

	verdict := s.matcher.Check(req.UserSolution, accepted)
	writeJSON(w, http.StatusOK, checkResponse{
		Correct:   verdict.Correct,
		Canonical: verdict.Candidate,
	})
}

func allowCrossOrigin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Allow-Methods", strings.Join([]string{http.MethodGet, http.MethodPost, http.MethodOptions}, ", "))
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", zap.Int("status", status), zap.Error(err))
	} else {
		s.logger.Warn("request failed", zap.Int("status", status), zap.Error(err))
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
