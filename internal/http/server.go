// Package http serves the ledger as a JSON API.
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"finboard/internal/config"
	"finboard/internal/core"
	applog "finboard/internal/log"
	"finboard/internal/middleware/ratelimit"
	"finboard/internal/middleware/security"
	"finboard/internal/middleware/trace"
	"finboard/internal/services"
)

const maxBodyBytes = 64 << 10

type Options struct {
	Currency           string
	DefaultPeriodDays  int
	MaxPeriodDays      int
	RateLimitPerMinute int
}

func DefaultOptions() Options {
	return Options{
		Currency:           core.DefaultCurrency,
		DefaultPeriodDays:  7,
		MaxPeriodDays:      config.MaxPeriodDays,
		RateLimitPerMinute: ratelimit.DefaultConfig().RequestsPerMinute,
	}
}

// OptionsFromConfig maps application config onto server options.
func OptionsFromConfig(cfg *config.Config) Options {
	opts := DefaultOptions()
	opts.Currency = cfg.Currency
	opts.DefaultPeriodDays = cfg.DefaultPeriodDays
	opts.RateLimitPerMinute = cfg.RateLimitPerMinute
	return opts
}

type Server struct {
	http.Server
	svc      *services.DashboardService
	opts     Options
	logger   *applog.Logger
	limiter  *ratelimit.Limiter
	detector *security.Detector

	shutdownOnce sync.Once
}

// NewServer wires routes and middleware, returning a ready-to-run server.
func NewServer(addr string, svc *services.DashboardService, logger *applog.Logger, opts Options) *Server {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	if opts.DefaultPeriodDays <= 0 {
		opts.DefaultPeriodDays = DefaultOptions().DefaultPeriodDays
	}
	if opts.MaxPeriodDays <= 0 {
		opts.MaxPeriodDays = config.MaxPeriodDays
	}

	s := &Server{
		svc:      svc,
		opts:     opts,
		logger:   logger.WithComponent(applog.ComponentHTTP),
		limiter:  ratelimit.NewLimiter(ratelimit.Config{RequestsPerMinute: opts.RateLimitPerMinute}),
		detector: security.NewDetector(logger),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /api/summary", s.handleSummary)
	mux.HandleFunc("GET /api/series", s.handleSeries)
	mux.HandleFunc("GET /api/balance", s.handleBalance)
	mux.HandleFunc("GET /api/transactions", s.handleListTransactions)
	mux.HandleFunc("POST /api/transactions", s.handleCreateTransaction)
	mux.HandleFunc("DELETE /api/transactions/{id}", s.handleDeleteTransaction)
	mux.HandleFunc("GET /api/goals", s.handleListGoals)
	mux.HandleFunc("POST /api/goals", s.handleCreateGoal)
	mux.HandleFunc("PUT /api/goals/{id}/progress", s.handleUpdateGoalProgress)

	// Outermost first: request ID, logging, screening, headers, throttling.
	var h http.Handler = mux
	h = s.limiter.Middleware(s.detector.ClientIP, s.onRateLimited)(h)
	h = security.NewHeadersMiddleware(security.DefaultHeadersConfig()).Middleware(h)
	h = s.detector.Middleware(h)
	h = applog.Middleware(logger, trace.RequestID, s.detector.ClientIP)(h)
	h = trace.Middleware(h)

	s.Server = http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

func (s *Server) onRateLimited(w http.ResponseWriter, r *http.Request) {
	applog.FromContext(r.Context()).WarnContext(r.Context(), "Rate limit exceeded",
		applog.FieldClientIP, s.detector.ClientIP(r),
		applog.FieldPath, r.URL.Path)
	NewJSONResponse().
		Status(http.StatusTooManyRequests).
		Header("Retry-After", "60").
		Error("rate limit exceeded, try again later").
		Write(w)
}

// Shutdown stops background goroutines and drains the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		s.limiter.Stop()
		err = s.Server.Shutdown(ctx)
	})
	return err
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	NewJSONResponse().Data(map[string]string{"status": "ok"}).Write(w)
}
