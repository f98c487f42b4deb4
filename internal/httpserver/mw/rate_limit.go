package mw

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/MrSnakeDoc/staffdash/internal/metrics"
	"github.com/MrSnakeDoc/staffdash/internal/utils"
)

// RateLimitConfig sizes a per-client-IP token bucket.
type RateLimitConfig struct {
	Burst             int           // bucket capacity
	RefillPerIPPerMin int           // tokens added per minute
	MaxEntries        int           // sweep early once this many IPs are tracked (0 = no cap)
	SweepInterval     time.Duration // how often idle buckets are dropped
	IdleTTL           time.Duration // bucket lifetime after its last accepted request
	TrustProxy        bool          // resolve the client IP from proxy headers
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type limiter struct {
	cfg       RateLimitConfig
	limit     rate.Limit
	mu        sync.Mutex
	entries   map[string]*limiterEntry
	lastSweep time.Time
}

func newLimiter(cfg RateLimitConfig, now time.Time) *limiter {
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = time.Minute
	}
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = 15 * time.Minute
	}
	cfg.Burst = max(cfg.Burst, 1)
	cfg.RefillPerIPPerMin = max(cfg.RefillPerIPPerMin, 1)

	return &limiter{
		cfg:       cfg,
		limit:     rate.Limit(float64(cfg.RefillPerIPPerMin) / 60.0),
		entries:   make(map[string]*limiterEntry, 256),
		lastSweep: now,
	}
}

// limiterFor returns the limiter of key, sweeping idle ones first when due.
// Entries are swept inline, so no janitor goroutine outlives the router.
func (l *limiter) limiterFor(key string, now time.Time) *limiterEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	full := l.cfg.MaxEntries > 0 && len(l.entries) >= l.cfg.MaxEntries
	if full || now.Sub(l.lastSweep) >= l.cfg.SweepInterval {
		for k, e := range l.entries {
			if now.Sub(e.lastSeen) > l.cfg.IdleTTL {
				delete(l.entries, k)
			}
		}
		l.lastSweep = now
	}

	e := l.entries[key]
	if e == nil {
		e = &limiterEntry{limiter: rate.NewLimiter(l.limit, l.cfg.Burst), lastSeen: now}
		l.entries[key] = e
	}
	return e
}

// take consumes one token for key. When none is left it returns how many
// seconds until the next one.
func (l *limiter) take(key string, now time.Time) (ok bool, remaining int, retryAfter int) {
	e := l.limiterFor(key, now)

	r := e.limiter.ReserveN(now, 1)
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return false, 0, max(int(math.Ceil(delay.Seconds())), 1)
	}

	l.mu.Lock()
	e.lastSeen = now
	l.mu.Unlock()
	return true, int(e.limiter.TokensAt(now)), 0
}

// RateLimit limits requests per client IP with a token bucket. Rejected
// requests get 429 with Retry-After and a JSON error body.
func RateLimit(cfg RateLimitConfig) func(http.Handler) http.Handler {
	l := newLimiter(cfg, time.Now())
	limit := strconv.Itoa(l.cfg.Burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ok, remaining, retry := l.take(utils.ClientIP(r, l.cfg.TrustProxy), time.Now())

			h := w.Header()
			h.Set("X-RateLimit-Limit", limit)
			h.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			if !ok {
				metrics.RateLimited.Inc()
				h.Set("Retry-After", strconv.Itoa(retry))
				h.Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": "rate limit exceeded"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
