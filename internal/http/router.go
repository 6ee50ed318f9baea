package httpx

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/netip"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/splax/localvercel/accounts/internal/controller"
)

const (
	healthCheckTimeout = 2 * time.Second
	maxBodyBytes       = 1 << 20
	routeSignup        = "/signup"
	routeHealthz       = "/healthz"
)

// Router wires HTTP endpoints to controllers.
type Router struct {
	mux      *http.ServeMux
	logger   *slog.Logger
	signup   controller.Controller
	limiter  SignupLimiter
	dbHealth func(context.Context) error

	registry       *prometheus.Registry
	requestTotal   *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	rateLimitHits  *prometheus.CounterVec
	signupResults  *prometheus.CounterVec
}

// NewRouter assembles routes with dependencies. A nil limiter leaves
// /signup unlimited.
func NewRouter(logger *slog.Logger, signup controller.Controller, limiter SignupLimiter, dbHealth func(context.Context) error) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Router{
		mux:      http.NewServeMux(),
		logger:   logger,
		signup:   signup,
		limiter:  limiter,
		dbHealth: dbHealth,
	}
	r.initMetrics()
	r.register()
	return r
}

// ServeHTTP delegates to underlying mux.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// Close releases the limiter's connections.
func (r *Router) Close() error {
	if r.limiter == nil {
		return nil
	}
	return r.limiter.Close()
}

func (r *Router) register() {
	r.mux.Handle("/metrics", promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{}))
	r.mux.HandleFunc(routeHealthz, r.observe(routeHealthz, r.handleHealthz))
	r.mux.HandleFunc(routeSignup, r.observe(routeSignup, r.limitSignup(r.handleSignup)))
}

func (r *Router) handleSignup(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		r.methodNotAllowed(w)
		return
	}
	var body map[string]any
	dec := json.NewDecoder(http.MaxBytesReader(w, req.Body, maxBodyBytes))
	if err := dec.Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	res := r.signup.Handle(req.Context(), controller.Request{Body: body})
	r.recordSignupResult(res.StatusCode)
	writeEnvelope(w, res)
}

func (r *Router) handleHealthz(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodGet {
		r.methodNotAllowed(w)
		return
	}
	components := make(map[string]any)
	status := "ok"
	if r.dbHealth != nil {
		ctx, cancel := context.WithTimeout(req.Context(), healthCheckTimeout)
		defer cancel()
		if err := r.dbHealth(ctx); err != nil {
			status = "degraded"
			components["database"] = map[string]any{
				"status": "down",
				"error":  err.Error(),
			}
		} else {
			components["database"] = map[string]any{"status": "up"}
		}
	}
	payload := map[string]any{
		"status":     status,
		"components": components,
		"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
	}
	code := http.StatusOK
	if status != "ok" {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, payload)
}

func (r *Router) observe(route string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		stats := &responseStats{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next(stats, req)
		elapsed := time.Since(start)
		r.recordRequestMetrics(req.Method, route, stats.status, elapsed)

		level := slog.LevelInfo
		switch {
		case stats.status >= http.StatusInternalServerError:
			level = slog.LevelError
		case stats.status >= http.StatusBadRequest:
			level = slog.LevelWarn
		}
		r.logger.LogAttrs(req.Context(), level, "request served",
			slog.String("method", req.Method),
			slog.String("route", route),
			slog.Int("status", stats.status),
			slog.Int("bytes", stats.bytes),
			slog.Duration("elapsed", elapsed),
			slog.String("ip", clientIP(req)),
		)
	}
}

// responseStats captures the status and body size a handler wrote.
type responseStats struct {
	http.ResponseWriter
	status      int
	bytes       int
	wroteHeader bool
}

func (s *responseStats) WriteHeader(code int) {
	if !s.wroteHeader {
		s.status = code
		s.wroteHeader = true
	}
	s.ResponseWriter.WriteHeader(code)
}

func (s *responseStats) Write(b []byte) (int, error) {
	s.wroteHeader = true
	n, err := s.ResponseWriter.Write(b)
	s.bytes += n
	return n, err
}

// clientIP returns the first X-Forwarded-For hop when it is a valid address,
// otherwise the host of the connection.
func clientIP(req *http.Request) string {
	if fwd := req.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if addr, err := netip.ParseAddr(strings.TrimSpace(first)); err == nil {
			return addr.Unmap().String()
		}
	}
	if ap, err := netip.ParseAddrPort(req.RemoteAddr); err == nil {
		return ap.Addr().Unmap().String()
	}
	return "unknown"
}

func (r *Router) methodNotAllowed(w http.ResponseWriter) {
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}
