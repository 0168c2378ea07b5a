// Package server exposes the solver over HTTP.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand/v2"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"crosswarped.com/boggle"
	"crosswarped.com/boggle/internal/metrics"
)

// maxBodyBytes is far above any board we accept.
const maxBodyBytes = 64 << 10

// SolveRequest is the object form of a solve body. A bare JSON array of
// letters is also accepted.
type SolveRequest struct {
	Width int      `json:"width,omitempty"`
	Board []string `json:"board"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type healthResponse struct {
	Status string `json:"status"`
	Words  int    `json:"words"`
}

type Server struct {
	store      *Store
	logger     *slog.Logger
	metrics    *metrics.Solve
	gatherer   prometheus.Gatherer
	maxWidth   int
	solverOpts []boggle.Option
	newRand    func() *rand.Rand
}

type Option func(*Server)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetrics records solve metrics into m and serves g on /metrics.
func WithMetrics(m *metrics.Solve, g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.metrics = m
		s.gatherer = g
	}
}

// WithMaxWidth rejects boards wider than n.
func WithMaxWidth(n int) Option {
	return func(s *Server) {
		s.maxWidth = n
	}
}

// WithSolverOptions applies opts to every search.
func WithSolverOptions(opts ...boggle.Option) Option {
	return func(s *Server) {
		s.solverOpts = append(s.solverOpts, opts...)
	}
}

// WithRand sets the generator used for random boards.
func WithRand(newRand func() *rand.Rand) Option {
	return func(s *Server) {
		s.newRand = newRand
	}
}

// NewHandler creates the HTTP handler serving the lexicon in store.
func NewHandler(store *Store, opts ...Option) http.Handler {
	s := &Server{
		store:    store,
		logger:   slog.Default(),
		maxWidth: 8,
		newRand: func() *rand.Rand {
			return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		},
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)
	r.Use(s.logRequests)

	r.Post("/solve", s.Solve)
	r.Get("/random", s.Random)
	r.Get("/healthz", s.Health)
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
		)
	})
}

// Solve handles POST /solve.
func (s *Server) Solve(w http.ResponseWriter, r *http.Request) {
	code := http.StatusOK
	defer func() {
		if s.metrics != nil {
			s.metrics.ObserveRequest(code)
		}
	}()

	width, letters, err := decodeBoard(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		code = http.StatusBadRequest
		s.logger.Warn("Solve: invalid request body", "error", err)
		writeJSON(w, code, errorResponse{Error: fmt.Sprintf("invalid request body: %v", err)})
		return
	}
	if width > s.maxWidth {
		code = http.StatusBadRequest
		writeJSON(w, code, errorResponse{Error: fmt.Sprintf("board width %d exceeds limit %d", width, s.maxWidth)})
		return
	}

	grid, err := boggle.NewGrid(width, letters)
	if err != nil {
		code = http.StatusBadRequest
		if !boggle.IsInputError(err) {
			code = http.StatusInternalServerError
		}
		s.logger.Warn("Solve: board rejected", "error", err)
		writeJSON(w, code, errorResponse{Error: err.Error()})
		return
	}

	start := time.Now()
	res, err := boggle.NewSolver(grid, s.store.Lexicon(), s.solverOpts...).Solve(r.Context())
	if err != nil {
		code = http.StatusInternalServerError
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			code = http.StatusServiceUnavailable
		}
		s.logger.Error("Solve failed", "error", err)
		writeJSON(w, code, errorResponse{Error: "search did not complete"})
		return
	}
	elapsed := time.Since(start)
	if s.metrics != nil {
		s.metrics.ObserveSearch(elapsed, len(res.Words), res.Paths)
	}
	s.logger.Info("solved",
		"width", width,
		"words", len(res.Words),
		"paths", res.Paths,
		"duration", elapsed,
	)

	writeJSON(w, code, res.Words)
}

// Random handles GET /random?width=n.
func (s *Server) Random(w http.ResponseWriter, r *http.Request) {
	width := 4
	if v := r.URL.Query().Get("width"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("invalid width %q", v)})
			return
		}
		width = n
	}
	if width > s.maxWidth {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("board width %d exceeds limit %d", width, s.maxWidth)})
		return
	}

	grid, err := boggle.RandomGrid(width, s.newRand())
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, grid.Letters())
}

// Health handles GET /healthz.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Words: s.store.Lexicon().Len()})
}

// decodeBoard accepts either a JSON array of letters or a SolveRequest. When
// no width is given it is the square root of the letter count, rounded down,
// so a non-square count fails board validation.
func decodeBoard(body io.Reader) (int, []string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return 0, nil, err
	}
	data = bytes.TrimSpace(data)

	var req SolveRequest
	if len(data) > 0 && data[0] == '[' {
		err = json.Unmarshal(data, &req.Board)
	} else {
		err = json.Unmarshal(data, &req)
	}
	if err != nil {
		return 0, nil, err
	}

	if req.Width == 0 {
		req.Width = int(math.Sqrt(float64(len(req.Board))))
	}
	return req.Width, req.Board, nil
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}
