package http

import (
	"fmt"
	"net/http"
	"time"

	"pgdesk/internal/core"
)

// handleHealth performs basic liveness check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"uptime":    time.Since(s.appMetrics.uptime).Round(time.Second).String(),
	})
}

// handleReady reports whether the console can serve requests, with the
// state of its supporting pieces.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	status := "ready"
	httpStatus := http.StatusOK
	checks := make(map[string]any)

	if s.console == nil || s.console.Store() == nil {
		checks["store"] = "failed: not configured"
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	} else {
		counts := make(map[core.Kind]int, len(core.Kinds()))
		for _, k := range core.Kinds() {
			counts[k] = s.console.Store().Count(k)
		}
		checks["store"] = map[string]any{
			"status":   "ok",
			"revision": s.console.Store().Revision(),
			"records":  counts,
		}
	}

	checks["cache"] = map[string]any{
		"status": "ok",
		"stats":  s.views.Stats(),
	}
	checks["rate_limiter"] = map[string]any{
		"status":         "ok",
		"active_clients": s.rateLimiter.ActiveClients(),
	}

	writeJSON(w, httpStatus, map[string]any{
		"status":    status,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"checks":    checks,
	})
}

// handleMetrics provides application and security metrics in plain text format
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	securityMetrics := s.securityDetector.GetMetrics()
	rateLimitMetrics := s.rateLimiter.GetMetrics()
	traceMetrics := s.traceMiddleware.GetMetrics()
	cacheStats := s.views.Stats()
	uptime := time.Since(s.appMetrics.uptime)

	w.WriteHeader(http.StatusOK)

	metric := func(name, help, kind string, value any) {
		fmt.Fprintf(w, "# HELP %s %s\n", name, help)
		fmt.Fprintf(w, "# TYPE %s %s\n", name, kind)
		fmt.Fprintf(w, "%s %v\n\n", name, value)
	}

	metric("http_requests_total", "Total number of HTTP requests", "counter", traceMetrics.TotalRequests)
	metric("http_server_errors_total", "Total responses with a 5xx status", "counter", traceMetrics.ServerErrors)
	metric("http_response_time_avg_microseconds", "Average response time", "gauge", traceMetrics.AverageResponseTime)
	metric("cache_hits_total", "Total view cache hits", "counter", cacheStats.Hits)
	metric("cache_misses_total", "Total view cache misses", "counter", cacheStats.Misses)
	metric("cache_evictions_total", "Total view cache evictions", "counter", cacheStats.Evictions)
	metric("cache_entries", "Current view cache entries", "gauge", cacheStats.Size)
	metric("rate_limit_rejections_total", "Total requests rejected by the rate limiter", "counter", rateLimitMetrics.Rejected)
	metric("active_rate_limit_clients", "Currently tracked rate limit clients", "gauge", rateLimitMetrics.ClientCount)
	metric("suspicious_requests_total", "Total suspicious requests detected", "counter", securityMetrics.SuspiciousRequests)

	if s.console != nil {
		fmt.Fprintf(w, "# HELP entity_records Records held per entity kind\n")
		fmt.Fprintf(w, "# TYPE entity_records gauge\n")
		for _, k := range core.Kinds() {
			fmt.Fprintf(w, "entity_records{kind=%q} %d\n", k, s.console.Store().Count(k))
		}
		fmt.Fprintln(w)
	}

	metric("uptime_seconds", "Application uptime in seconds", "gauge", fmt.Sprintf("%.0f", uptime.Seconds()))
}
