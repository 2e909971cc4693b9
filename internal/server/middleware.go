package server

import (
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// unlimitedPaths are exempt from rate limiting: operational and catalog
// endpoints that clients poll freely.
var unlimitedPaths = map[string]bool{
	"/health":    true,
	"/languages": true,
	"/metrics":   true,
}

// rateLimitMiddleware rejects over-limit clients with 429 and a Retry-After
// hint before the request reaches a handler.
func (s *Server) rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if unlimitedPaths[r.URL.Path] || strings.HasPrefix(r.URL.Path, "/dialects/") {
			next.ServeHTTP(w, r)
			return
		}

		client := clientAddr(r)
		ok, retryAfter := s.limiter.Admit(client)
		if !ok {
			seconds := int(retryAfter/time.Second) + 1
			s.metrics.RateLimitDenials.Add(r.Context(), 1)
			s.log.WarnContext(r.Context(), "rate limit exceeded",
				slog.String("client", client))
			w.Header().Set("Retry-After", strconv.Itoa(seconds))
			writeJSON(w, http.StatusTooManyRequests, map[string]any{
				"error":       "Rate limit exceeded",
				"message":     "Too many requests. Please wait " + strconv.Itoa(seconds) + " seconds.",
				"retry_after": seconds,
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}

// clientAddr identifies the client for rate limiting: the first
// X-Forwarded-For hop when present, otherwise the connection's remote host.
func clientAddr(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		return strings.TrimSpace(first)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// corsMiddleware allows browser clients from any origin. The frontend is
// served from a different host than the API.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "*")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
