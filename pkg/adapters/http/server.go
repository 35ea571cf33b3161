package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/dfakit"
	"github.com/aretw0/dfakit/internal/presentation/graph"
	"github.com/aretw0/dfakit/internal/runtime"
	"github.com/aretw0/dfakit/pkg/descriptor"
	"github.com/aretw0/dfakit/pkg/domain"
	"github.com/aretw0/dfakit/pkg/ports"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// MaxBodyBytes caps descriptor and run request bodies.
const MaxBodyBytes = 1 << 20

// Engine defines what the HTTP adapter needs from the dfakit core.
type Engine interface {
	Load(ctx context.Context, r io.Reader) (*domain.Automaton, error)
	Run(ctx context.Context, a *domain.Automaton, input string) (*domain.Result, error)
	Store() ports.AutomatonStore
}

var _ Engine = (*dfakit.Engine)(nil)

// Server exposes stored automata and their simulation over HTTP.
type Server struct {
	Engine Engine
	Logger *slog.Logger
}

// RunRequest is the body of POST /automata/{name}/run.
// Exactly one of Input or Inputs must be set.
type RunRequest struct {
	Input  *string  `json:"input,omitempty"`
	Inputs []string `json:"inputs,omitempty"`
}

// RunResponse answers a batch run.
type RunResponse struct {
	Results []*domain.Result `json:"results"`
}

// NewHandler creates a new HTTP handler for the engine.
// extra routes (e.g. /metrics) are mounted on the same router.
func NewHandler(engine Engine, logger *slog.Logger, extra ...func(chi.Router)) http.Handler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Server{Engine: engine, Logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)

	r.Route("/automata", func(r chi.Router) {
		r.Get("/", s.ListAutomata)
		r.Post("/", s.CreateAutomaton)
		r.Route("/{name}", func(r chi.Router) {
			r.Get("/", s.GetAutomaton)
			r.Put("/", s.PutAutomaton)
			r.Delete("/", s.DeleteAutomaton)
			r.Post("/run", s.RunAutomaton)
			r.Get("/graph", s.GetGraph)
		})
	})

	for _, mount := range extra {
		mount(r)
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"app":     "dfakit-http",
		"version": strings.TrimSpace(dfakit.Version),
	})
}

func (s *Server) ListAutomata(w http.ResponseWriter, r *http.Request) {
	names, err := s.Engine.Store().List(r.Context())
	if err != nil {
		s.fail(w, "ListAutomata", err)
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"automata": names})
}

// CreateAutomaton stores the descriptor body under a generated name.
func (s *Server) CreateAutomaton(w http.ResponseWriter, r *http.Request) {
	name := uuid.NewString()
	if !s.store(w, r, name) {
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"name": name})
}

// PutAutomaton stores the descriptor body under the path name, replacing any previous one.
func (s *Server) PutAutomaton(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if !s.store(w, r, name) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"name": name})
}

func (s *Server) store(w http.ResponseWriter, r *http.Request, name string) bool {
	a, err := s.Engine.Load(r.Context(), http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		s.fail(w, "Load", err)
		return false
	}
	if err := s.Engine.Store().Save(r.Context(), name, a); err != nil {
		s.fail(w, "Save", err)
		return false
	}
	s.Logger.Info("automaton stored", "name", name, "states", len(a.States()))
	return true
}

// GetAutomaton returns the stored descriptor as text.
func (s *Server) GetAutomaton(w http.ResponseWriter, r *http.Request) {
	a, ok := s.lookup(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if err := descriptor.Encode(w, a); err != nil {
		s.Logger.Error("GetAutomaton encode failed", "error", err)
	}
}

func (s *Server) DeleteAutomaton(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := s.Engine.Store().Delete(r.Context(), name); err != nil {
		s.fail(w, "DeleteAutomaton", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RunAutomaton simulates one input (object result) or several (results array).
func (s *Server) RunAutomaton(w http.ResponseWriter, r *http.Request) {
	var body RunRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes)).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.Logger.Warn("RunAutomaton: Invalid request body", "error", err)
		return
	}
	if (body.Input == nil) == (body.Inputs == nil) {
		http.Error(w, `Exactly one of "input" or "inputs" is required`, http.StatusBadRequest)
		return
	}
	inputs := body.Inputs
	if body.Input != nil {
		inputs = []string{*body.Input}
	}
	for _, in := range inputs {
		if err := runtime.CheckInput(in); err != nil {
			s.fail(w, "RunAutomaton", err)
			return
		}
	}

	a, ok := s.lookup(w, r)
	if !ok {
		return
	}

	if body.Input != nil {
		res, err := s.Engine.Run(r.Context(), a, *body.Input)
		if err != nil {
			s.fail(w, "RunAutomaton", err)
			return
		}
		writeJSON(w, http.StatusOK, res)
		return
	}

	resp := RunResponse{Results: make([]*domain.Result, 0, len(body.Inputs))}
	for _, in := range body.Inputs {
		res, err := s.Engine.Run(r.Context(), a, in)
		if err != nil {
			s.fail(w, "RunAutomaton", err)
			return
		}
		resp.Results = append(resp.Results, res)
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetGraph renders the automaton as Mermaid. With ?input=..., the path of that run is highlighted.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	a, ok := s.lookup(w, r)
	if !ok {
		return
	}

	var overlay *graph.GraphOverlay
	if r.URL.Query().Has("input") {
		input := r.URL.Query().Get("input")
		if err := runtime.CheckInput(input); err != nil {
			s.fail(w, "GetGraph", err)
			return
		}
		res, err := s.Engine.Run(r.Context(), a, input)
		if err != nil {
			s.fail(w, "GetGraph", err)
			return
		}
		overlay = graph.OverlayFromResult(res)
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, graph.GenerateMermaid(a, overlay))
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*domain.Automaton, bool) {
	a, err := s.Engine.Store().Load(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.fail(w, "Load", err)
		return nil, false
	}
	return a, true
}

func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	code := StatusFor(err)
	if code >= http.StatusInternalServerError {
		s.Logger.Error(op+" failed", "error", err)
	} else {
		s.Logger.Warn(op+" rejected", "error", err)
	}
	http.Error(w, fmt.Sprintf("%s: %v", op, err), code)
}

// StatusFor maps domain errors to HTTP status codes.
func StatusFor(err error) int {
	var maxErr *http.MaxBytesError
	switch {
	case errors.Is(err, domain.ErrAutomatonNotFound):
		return http.StatusNotFound
	case errors.As(err, &maxErr):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, runtime.ErrInputTooLarge),
		errors.Is(err, runtime.ErrInvalidUTF8),
		errors.Is(err, domain.ErrDuplicateState),
		errors.Is(err, domain.ErrUnknownState),
		errors.Is(err, domain.ErrInvalidStateName),
		errors.Is(err, domain.ErrMalformedTransition),
		errors.Is(err, domain.ErrConflictingTransition),
		errors.Is(err, domain.ErrMalformedAutomaton),
		errors.Is(err, domain.ErrNoInitialState),
		errors.Is(err, domain.ErrInvalidName):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}
