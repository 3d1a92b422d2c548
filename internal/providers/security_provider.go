package providers

import (
	"crypto/subtle"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"brickdeals/internal/structures"
)

// RateLimitProviderInterface bounds the request rate of a single client.
type RateLimitProviderInterface interface {
	Allow(clientIP string) bool
}

// SlidingWindowLimiter keeps an in-memory per-IP sliding request counter.
// State is process-local: with multiple instances each one enforces the
// limit independently. Externalizing the counters to a shared store with
// expiry would lift that limitation.
type SlidingWindowLimiter struct {
	mu     sync.Mutex
	hits   map[string][]time.Time
	limit  int
	window time.Duration
	now    func() time.Time
}

func NewRateLimitProvider(conf *structures.Config) RateLimitProviderInterface {
	return &SlidingWindowLimiter{
		hits:   make(map[string][]time.Time),
		limit:  conf.Security.RateLimit,
		window: conf.Security.RateWindow,
		now:    time.Now,
	}
}

func (l *SlidingWindowLimiter) Allow(clientIP string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)

	recent := l.hits[clientIP][:0]
	for _, t := range l.hits[clientIP] {
		if t.After(cutoff) {
			recent = append(recent, t)
		}
	}

	if len(recent) >= l.limit {
		l.hits[clientIP] = recent
		return false
	}

	l.hits[clientIP] = append(recent, now)
	return true
}

// ClientIP extracts the caller's address, trusting the first X-Forwarded-For
// entry when present.
func ClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if idx := strings.IndexByte(fwd, ','); idx > 0 {
			return strings.TrimSpace(fwd[:idx])
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func RateLimitMiddleware(limiter RateLimitProviderInterface, metrics MetricsProviderInterface, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow(ClientIP(r)) {
			metrics.IncRateLimited(r.URL.Path)
			http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// CORSMiddleware restricts cross-origin calls to the configured allow-list.
// When no admin key is configured the daemon is in development mode and the
// middleware reflects any origin; NewApp logs this loudly at startup.
func CORSMiddleware(conf *structures.Config, next http.Handler) http.Handler {
	devMode := conf.Security.AdminKey == ""
	allowed := make(map[string]struct{}, len(conf.Security.AllowedOrigins))
	for _, o := range conf.Security.AllowedOrigins {
		allowed[o] = struct{}{}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" {
			_, ok := allowed[origin]
			if ok || devMode {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Vary", "Origin")
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-API-Key")
			}
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// AdminAuthorized checks the admin secret from either the X-API-Key header
// or an Authorization bearer token. An empty configured key means
// development mode: every request passes.
func AdminAuthorized(conf *structures.Config, r *http.Request) bool {
	if conf.Security.AdminKey == "" {
		return true
	}
	key := r.Header.Get("X-API-Key")
	if key == "" {
		auth := r.Header.Get("Authorization")
		if strings.HasPrefix(auth, "Bearer ") {
			key = strings.TrimPrefix(auth, "Bearer ")
		}
	}
	return subtle.ConstantTimeCompare([]byte(key), []byte(conf.Security.AdminKey)) == 1
}
