package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	apperrors "github.com/agbru/orbitcalc/internal/errors"
	"github.com/agbru/orbitcalc/internal/logging"
	"github.com/agbru/orbitcalc/internal/orbit"
	"github.com/agbru/orbitcalc/internal/orchestration"
	"github.com/agbru/orbitcalc/internal/report"
	"github.com/agbru/orbitcalc/internal/wheel"
)

const tracerName = "github.com/agbru/orbitcalc/internal/server"

// Server timeouts.
const (
	DefaultRequestTimeout  = 30 * time.Second
	DefaultShutdownTimeout = 5 * time.Second
	readHeaderTimeout      = 5 * time.Second
)

// Server is the HTTP front end of the classifier.
type Server struct {
	addr            string
	factory         orbit.ClassifierFactory
	logger          logging.Logger
	metrics         *Metrics
	security        SecurityConfig
	requestTimeout  time.Duration
	shutdownTimeout time.Duration
	httpServer      *http.Server
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l logging.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithSecurityConfig replaces the default security configuration.
func WithSecurityConfig(c SecurityConfig) Option {
	return func(s *Server) { s.security = c }
}

// WithRequestTimeout bounds every classification request.
func WithRequestTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.requestTimeout = d
		}
	}
}

// New creates a server listening on addr.
func New(addr string, factory orbit.ClassifierFactory, opts ...Option) *Server {
	s := &Server{
		addr:            addr,
		factory:         factory,
		logger:          logging.NewDefaultLogger(),
		metrics:         NewMetrics(),
		security:        DefaultSecurityConfig(),
		requestTimeout:  DefaultRequestTimeout,
		shutdownTimeout: DefaultShutdownTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}
	return s
}

// Handler returns the routed handler with every middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/classify", s.wrap(s.handleClassify))
	mux.HandleFunc("/orbit", s.wrap(s.handleOrbit))
	mux.HandleFunc("/health", s.wrap(s.handleHealth))
	mux.HandleFunc("/metrics", s.wrap(s.handleMetrics))
	return mux
}

func (s *Server) wrap(h http.HandlerFunc) http.HandlerFunc {
	return SecurityMiddleware(s.security, s.metricsMiddleware(s.loggingMiddleware(h)))
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is like Start on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.logger.Info("server listening", logging.String("addr", ln.Addr().String()))

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) metricsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.metrics.IncrementActiveRequests()
		defer s.metrics.DecrementActiveRequests()

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r)
		s.metrics.ObserveRequest(routeLabel(r.URL.Path), rec.status, time.Since(start))
	}
}

func (s *Server) loggingMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r)
		s.logger.Info("request",
			logging.String("method", r.Method),
			logging.String("path", r.URL.Path),
			logging.Int("status", rec.status),
			logging.Duration("duration", time.Since(start)),
		)
	}
}

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

// OrbitResponse is the body of /orbit.
type OrbitResponse struct {
	Bits    string   `json:"bits"`
	Action  string   `json:"action"`
	Size    int      `json:"size"`
	Key     string   `json:"key"`
	Members []string `json:"members"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil && s.logger != nil {
		s.logger.Error("encoding response", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	if s.logger != nil {
		s.logger.Warn("request rejected", logging.Int("status", status), logging.String("reason", msg))
	}
	s.writeJSON(w, status, ErrorResponse{Error: msg})
}

// requireGET rejects every method other than GET.
func (s *Server) requireGET(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return false
	}
	return true
}

// actionParam reads the optional action parameter.
func actionParam(r *http.Request) (wheel.Action, error) {
	name := r.URL.Query().Get("action")
	if name == "" {
		return wheel.TwistedRotation{}, nil
	}
	return wheel.ActionByName(name)
}

func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	if !s.requireGET(w, r) {
		return
	}
	q := r.URL.Query()

	n, err := strconv.Atoi(q.Get("n"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "n must be an integer")
		return
	}
	maxN := min(s.security.MaxN, orbit.MaxN)
	if n < 1 || n > maxN {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("n must be between 1 and %d", maxN))
		return
	}
	action, err := actionParam(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	algo := q.Get("algo")
	if algo == "" {
		algo = orbit.DefaultClassifier
	}
	classifiers := orchestration.GetClassifiersToRun(algo, s.factory)
	if len(classifiers) == 0 {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown algorithm %q", algo))
		return
	}

	ctx, span := otel.Tracer(tracerName).Start(r.Context(), "http.classify")
	defer span.End()
	span.SetAttributes(
		attribute.Int("orbit.n", n),
		attribute.String("orbit.action", action.Name()),
		attribute.String("orbit.algo", algo),
	)
	ctx, cancel := context.WithTimeout(ctx, s.requestTimeout)
	defer cancel()

	opts := orbit.Options{Action: action}
	results := orchestration.ExecuteClassifications(ctx, classifiers, n, opts, orchestration.NullProgressReporter{}, nil)

	var first *orchestration.ClassificationResult
	for i := range results {
		res := &results[i]
		if res.Err != nil {
			span.RecordError(res.Err)
			span.SetStatus(codes.Error, res.Err.Error())
			status := http.StatusInternalServerError
			if apperrors.IsContextError(res.Err) {
				status = http.StatusGatewayTimeout
			}
			s.writeError(w, status, res.Err.Error())
			return
		}
		if first == nil {
			first = res
		} else if !orchestration.SameRepresentatives(first.Representatives, res.Representatives) {
			span.SetStatus(codes.Error, "strategies disagree")
			s.writeError(w, http.StatusInternalServerError, "strategies disagree on the representatives")
			return
		}
	}

	s.metrics.AddOrbits(len(first.Representatives))
	span.SetAttributes(attribute.Int("orbit.count", len(first.Representatives)))
	s.writeJSON(w, http.StatusOK, report.New(n, action, algo, first.Representatives, first.Duration, q.Get("members") == "true"))
}

func (s *Server) handleOrbit(w http.ResponseWriter, r *http.Request) {
	if !s.requireGET(w, r) {
		return
	}
	c, err := wheel.Parse(r.URL.Query().Get("bits"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	action, err := actionParam(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	o := wheel.OrbitOf(action, c)
	s.writeJSON(w, http.StatusOK, OrbitResponse{
		Bits:    c.String(),
		Action:  action.Name(),
		Size:    o.Len(),
		Key:     o.Key().String(),
		Members: report.MemberStrings(o),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !s.requireGET(w, r) {
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if !s.requireGET(w, r) {
		return
	}
	s.metrics.WritePrometheus(w, r)
}
