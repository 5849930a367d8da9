package rest

import (
	"context"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/travelboard/internal/common"
	"github.com/dmitrijs2005/travelboard/internal/logging"
	"github.com/dmitrijs2005/travelboard/internal/server/models"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"
)

type ctxKey string

const identityKey ctxKey = "identity"

// IdentityFrom returns the caller set by requireAuth.
func IdentityFrom(ctx context.Context) (models.Identity, bool) {
	id, ok := ctx.Value(identityKey).(models.Identity)
	return id, ok
}

// Authenticator turns a bearer token into an identity.
type Authenticator interface {
	Authenticate(token string) (models.Identity, error)
}

// requestLogger writes one line per request.
func requestLogger(logger logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r = r.WithContext(logging.WithRequestID(r.Context(), middleware.GetReqID(r.Context())))
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			logger.Info(r.Context(), "http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
			)
		})
	}
}

func bearerToken(r *http.Request) string {
	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// requireAuth rejects requests without a valid bearer token and stores the
// verified identity in the request context.
func requireAuth(a Authenticator, logger logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				writeError(r.Context(), w, logger, common.ErrorUnauthorized, "")
				return
			}
			id, err := a.Authenticate(token)
			if err != nil {
				writeError(r.Context(), w, logger, common.ErrInvalidToken, "")
				return
			}
			ctx := context.WithValue(r.Context(), identityKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// limiterCache keeps one token bucket per key.
type limiterCache[K comparable] struct {
	limiters map[K]*rate.Limiter
	mu       sync.RWMutex
	rate     rate.Limit
	burst    int
}

func newLimiterCache[K comparable](rps float64, burst int) *limiterCache[K] {
	return &limiterCache[K]{
		limiters: make(map[K]*rate.Limiter),
		rate:     rate.Limit(rps),
		burst:    burst,
	}
}

func (lc *limiterCache[K]) get(key K) *rate.Limiter {
	lc.mu.RLock()
	limiter, exists := lc.limiters[key]
	lc.mu.RUnlock()
	if exists {
		return limiter
	}

	lc.mu.Lock()
	defer lc.mu.Unlock()

	// Double-check after acquiring write lock
	if limiter, exists = lc.limiters[key]; exists {
		return limiter
	}
	limiter = rate.NewLimiter(lc.rate, lc.burst)
	lc.limiters[key] = limiter
	return limiter
}

// clearIfExceeds drops every bucket once the map grows past maxSize.
func (lc *limiterCache[K]) clearIfExceeds(maxSize int) bool {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	if len(lc.limiters) > maxSize {
		lc.limiters = make(map[K]*rate.Limiter)
		return true
	}
	return false
}

const maxTrackedClients = 10000

// rateLimitByIP throttles per client address. A non-positive rps disables it.
func rateLimitByIP(rps float64, burst int, logger logging.Logger) func(http.Handler) http.Handler {
	if rps <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	if burst < 1 {
		burst = 1
	}
	cache := newLimiterCache[string](rps, burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cache.clearIfExceeds(maxTrackedClients)
			ip := clientIP(r)
			if !cache.get(ip).Allow() {
				logger.Warn(r.Context(), "rate limited", "ip", ip, "path", r.URL.Path)
				writeError(r.Context(), w, logger, common.ErrRateLimited, "")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP reads RemoteAddr, which chi's RealIP has already rewritten.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
