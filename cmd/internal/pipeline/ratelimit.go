package pipeline

import (
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	defaultRatePermits = 100
	defaultRateWindow  = time.Minute

	// unknownPartition buckets requests whose remote address cannot be
	// parsed. They share one budget rather than bypassing the gate.
	unknownPartition = "unknown"
)

// FixedWindowLimiter admits at most limit requests per partition key within
// a fixed window. Window reset and increment are one indivisible step under
// the mutex, shared by all concurrent requests for the same key.
type FixedWindowLimiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	buckets map[string]*fixedWindow

	lastSweep time.Time
}

type fixedWindow struct {
	start time.Time
	count int
}

// NewFixedWindowLimiter constructs a limiter with safe defaults when inputs
// are invalid.
func NewFixedWindowLimiter(limit int, window time.Duration) *FixedWindowLimiter {
	if limit <= 0 {
		limit = defaultRatePermits
	}
	if window <= 0 {
		window = defaultRateWindow
	}
	return &FixedWindowLimiter{
		limit:   limit,
		window:  window,
		buckets: make(map[string]*fixedWindow),
	}
}

// Allow reports whether a request for key at time "now" is admitted. When
// rejected, retryAfter is the time until the key's window resets.
func (l *FixedWindowLimiter) Allow(key string, now time.Time) (admitted bool, retryAfter time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.sweepLocked(now)

	b := l.buckets[key]
	if b == nil || now.Sub(b.start) >= l.window {
		l.buckets[key] = &fixedWindow{start: now, count: 1}
		return true, 0
	}

	if b.count < l.limit {
		b.count++
		return true, 0
	}
	return false, b.start.Add(l.window).Sub(now)
}

// sweepLocked drops buckets whose window has long elapsed so idle clients do
// not accumulate. Runs at most once per window.
func (l *FixedWindowLimiter) sweepLocked(now time.Time) {
	if now.Sub(l.lastSweep) < l.window {
		return
	}
	l.lastSweep = now
	for key, b := range l.buckets {
		if now.Sub(b.start) >= l.window {
			delete(l.buckets, key)
		}
	}
}

// WithRateLimit gates requests per client before any handler runs. It must
// sit inside correlation tagging so rejections carry a correlation id, and
// outside the routed handlers so rejected requests never reach them.
func WithRateLimit(next http.Handler, limiter *FixedWindowLimiter, log *slog.Logger) http.Handler {
	if log == nil {
		log = slog.Default()
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := partitionKey(r)
		admitted, retryAfter := limiter.Allow(key, time.Now())
		if admitted {
			next.ServeHTTP(w, r)
			return
		}

		log.Warn("ratelimit.reject",
			"partition", key,
			"retry_after", retryAfter,
			"correlation_id", CorrelationID(r.Context()),
		)
		w.Header().Set("Retry-After", strconv.FormatInt(int64(math.Ceil(retryAfter.Seconds())), 10))
		WriteError(w, r, http.StatusTooManyRequests, "Too many requests.")
	})
}

// partitionKey buckets by remote network address, or the shared "unknown"
// bucket when it cannot be determined.
func partitionKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err != nil || host == "" {
		return unknownPartition
	}
	return host
}
