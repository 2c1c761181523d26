// Package http exposes the console as a JSON API.
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"pgdesk/internal/cache"
	"pgdesk/internal/log"
	"pgdesk/internal/middleware/ratelimit"
	"pgdesk/internal/middleware/security"
	"pgdesk/internal/middleware/trace"
	"pgdesk/internal/services"
)

// Defaults for the view cache.
const (
	DefaultCacheSize = 128
	DefaultCacheTTL  = time.Minute
)

type Server struct {
	http.Server

	console  *services.Console
	logger   *log.Logger
	currency string

	rateLimiter      *ratelimit.Limiter
	securityDetector *security.Detector
	securityHeaders  *security.HeadersMiddleware
	traceMiddleware  *trace.Middleware

	// derived views keyed by store revision and evaluation date
	views *cache.LRUCache[any]

	appMetrics   *appMetrics
	shutdownOnce sync.Once
}

type appMetrics struct {
	uptime time.Time
}

// Option configures a Server.
type Option func(*serverOptions)

type serverOptions struct {
	logger       *log.Logger
	cacheSize    int
	cacheTTL     time.Duration
	rateLimit    ratelimit.Config
	headers      security.HeadersConfig
	trustedProxy []string
	currency     string
}

func WithLogger(l *log.Logger) Option {
	return func(o *serverOptions) { o.logger = l }
}

// WithCache sizes the view cache.
func WithCache(size int, ttl time.Duration) Option {
	return func(o *serverOptions) {
		o.cacheSize = size
		o.cacheTTL = ttl
	}
}

// WithRateLimit sets the per-client limit for mutating requests.
func WithRateLimit(cfg ratelimit.Config) Option {
	return func(o *serverOptions) { o.rateLimit = cfg }
}

// WithCurrency sets the currency symbol advertised by /api/meta.
func WithCurrency(symbol string) Option {
	return func(o *serverOptions) { o.currency = symbol }
}

// WithTrustedProxies adds networks whose forwarding headers are honored.
func WithTrustedProxies(cidrs ...string) Option {
	return func(o *serverOptions) { o.trustedProxy = append(o.trustedProxy, cidrs...) }
}

// NewServer configures routes and middleware, returning a ready-to-run server.
func NewServer(addr string, console *services.Console, opts ...Option) *Server {
	o := serverOptions{
		cacheSize: DefaultCacheSize,
		cacheTTL:  DefaultCacheTTL,
		rateLimit: ratelimit.DefaultConfig(),
		headers:   security.DefaultHeadersConfig(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = log.Nop()
	}
	if o.cacheSize <= 0 {
		o.cacheSize = DefaultCacheSize
	}
	if o.cacheTTL <= 0 {
		o.cacheTTL = DefaultCacheTTL
	}

	s := &Server{
		console:          console,
		logger:           o.logger.WithComponent(log.ComponentHTTP),
		currency:         o.currency,
		rateLimiter:      ratelimit.NewLimiter(o.rateLimit),
		securityDetector: security.NewDetector(),
		securityHeaders:  security.NewHeadersMiddleware(o.headers),
		views:            cache.NewLRUCache[any](o.cacheSize, o.cacheTTL),
		appMetrics:       &appMetrics{uptime: time.Now()},
	}
	for _, cidr := range o.trustedProxy {
		if err := s.securityDetector.AddTrustedProxy(cidr); err != nil {
			s.logger.Warn("Ignoring trusted proxy", log.FieldError, err.Error())
		}
	}
	s.traceMiddleware = trace.NewMiddleware(o.logger, s.securityDetector.ExtractClientIP)

	s.Server = http.Server{
		Addr:              addr,
		Handler:           s.middleware(s.routes()),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.HandleFunc("GET /metrics", s.handleMetrics)

	mux.HandleFunc("GET /api/meta", s.handleMeta)
	mux.HandleFunc("GET /api/activity", s.handleActivity)
	mux.HandleFunc("GET /api/dashboard", s.handleDashboard)
	mux.HandleFunc("GET /api/reports/financial", s.handleFinancialReport)
	mux.HandleFunc("GET /api/aggregate/{collection}/{aggregation}", s.handleAggregate)
	mux.HandleFunc("GET /api/tenants/{id}/ledger", s.handleTenantLedger)

	mux.HandleFunc("POST /api/payments/sweep", s.handleSweepOverdue)
	mux.HandleFunc("POST /api/payments/{id}/paid", s.handleMarkPaid)
	mux.HandleFunc("POST /api/maintenance/{id}/status", s.handleSetMaintenanceStatus)

	mux.HandleFunc("GET /api/{collection}", s.handleList)
	mux.HandleFunc("POST /api/{collection}", s.handleCreate)
	mux.HandleFunc("GET /api/{collection}/{id}", s.handleGet)
	mux.HandleFunc("PATCH /api/{collection}/{id}", s.handleUpdate)
	mux.HandleFunc("DELETE /api/{collection}/{id}", s.handleDelete)

	return mux
}

// middleware wraps h outermost first: tracing, request-scoped logger,
// security headers, detection, then the limiter for writes.
func (s *Server) middleware(h http.Handler) http.Handler {
	chain := []func(http.Handler) http.Handler{
		s.traceMiddleware.Middleware,
		log.Middleware(s.logger),
		log.RequestIDMiddleware(trace.RequestIDFromRequest),
		s.securityHeaders.Middleware,
		s.securityDetector.Middleware(s.logger),
		s.rateLimiter.Middleware(s.securityDetector.ExtractClientIP, ratelimit.Mutating, s.onRateLimited),
	}
	for i := len(chain) - 1; i >= 0; i-- {
		h = chain[i](h)
	}
	return h
}

func (s *Server) onRateLimited(w http.ResponseWriter, r *http.Request) {
	log.FromContext(r.Context()).WithComponent(log.ComponentRateLimit).WarnContext(r.Context(), "Rate limit exceeded",
		log.FieldClientIP, s.securityDetector.ExtractClientIP(r),
		log.FieldMethod, r.Method,
		log.FieldPath, r.URL.Path)
	ErrorResponse(http.StatusTooManyRequests, codeRateLimited, "rate limit exceeded, retry later").Write(w)
}

// ViewCache exposes the view cache so a janitor can sweep it.
func (s *Server) ViewCache() *cache.LRUCache[any] { return s.views }

// Shutdown stops background routines and drains the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.rateLimiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}
