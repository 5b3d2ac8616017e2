package advisor

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vovakirdan/stacks-roll/internal/core"
	"github.com/vovakirdan/stacks-roll/internal/game"
)

// Routes served by Server.
const (
	PathDifficulty = "/v1/difficulty"
	PathGenkitFlow = "/genkit/adjustDifficultyFlow"
	PathHealth     = "/healthz"
)

// maxRequestBytes bounds a request body; a performance snapshot is tiny.
const maxRequestBytes = 16 << 10

// ServerConfig holds configuration for the advisor HTTP service.
type ServerConfig struct {
	// Address is the host:port to listen on (e.g., ":8787").
	Address string

	// Backend is the registered backend name, reported by /healthz.
	Backend string

	// Timeout bounds each backend call.
	Timeout time.Duration
}

// Server exposes an advisor backend over HTTP in both the plain and the
// Genkit flow wire formats.
type Server struct {
	config  ServerConfig
	advisor game.Advisor
	logger  *log.Logger
	server  *http.Server
}

// NewServer wraps adv in an HTTP service.
func NewServer(cfg ServerConfig, adv game.Advisor, logger *log.Logger) *Server {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}

	s := &Server{
		config:  cfg,
		advisor: adv,
		logger:  logger,
	}
	s.server = &http.Server{
		Addr:              cfg.Address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.loggingMiddleware)

	r.Post(PathDifficulty, s.handleDifficulty)
	r.Post(PathGenkitFlow, s.handleGenkitFlow)
	r.Get(PathHealth, func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok", "backend": s.config.Backend})
	})

	return r
}

// handleDifficulty handles POST /v1/difficulty.
func (s *Server) handleDifficulty(w http.ResponseWriter, r *http.Request) {
	var req performanceWire
	if err := decodeBody(w, r, &req); err != nil {
		respondBodyError(w, err)
		return
	}
	p, err := req.performance()
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	d, err := s.advise(r.Context(), p)
	if err != nil {
		s.logger.Warn("backend failed", "error", err)
		respondError(w, http.StatusBadGateway, "advisor backend failed")
		return
	}
	respondJSON(w, http.StatusOK, d)
}

// handleGenkitFlow handles POST /genkit/adjustDifficultyFlow.
func (s *Server) handleGenkitFlow(w http.ResponseWriter, r *http.Request) {
	var req genkitServerRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondBodyError(w, err)
		return
	}
	if req.Data == nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	p, err := req.Data.performance()
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	d, err := s.advise(r.Context(), p)
	if err != nil {
		s.logger.Warn("backend failed", "error", err)
		respondError(w, http.StatusBadGateway, "advisor backend failed")
		return
	}
	respondJSON(w, http.StatusOK, genkitServerResponse{Result: d})
}

// decodeBody reads at most maxRequestBytes of JSON into v.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(v)
}

func respondBodyError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		respondError(w, http.StatusRequestEntityTooLarge, "request body too large")
		return
	}
	respondError(w, http.StatusBadRequest, "invalid request body")
}

func (s *Server) advise(ctx context.Context, p core.Performance) (core.Difficulty, error) {
	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()
	return s.advisor.Advise(ctx, p)
}

// loggingMiddleware logs each request with its status and duration.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"id", middleware.GetReqID(r.Context()),
		)
	})
}

// ListenAndServe starts the server and blocks until shutdown.
func (s *Server) ListenAndServe() error {
	s.logger.Info("starting advisor server", "address", s.config.Address, "backend", s.config.Backend)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	errc := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()

	select {
	case err := <-errc:
		return err
	case <-done:
	}

	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data) //nolint:errcheck
}

// respondError writes an error JSON response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
