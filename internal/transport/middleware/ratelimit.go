package middleware

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

const bucketIdleTTL = 10 * time.Minute

// RateLimiter hands out a token bucket per (scope, client IP). Buckets idle
// for bucketIdleTTL are swept by a background goroutine until Stop.
type RateLimiter struct {
	buckets  sync.Map // bucketKey -> *bucket
	stop     chan struct{}
	stopOnce sync.Once
	now      func() time.Time
}

type bucketKey struct {
	scope string
	ip    string
}

type bucket struct {
	lim      *rate.Limiter
	lastSeen atomic.Int64 // unix nanos
}

func NewRateLimiter(cleanupInterval time.Duration) *RateLimiter {
	rl := &RateLimiter{stop: make(chan struct{}), now: time.Now}
	go rl.cleanup(cleanupInterval)
	return rl
}

// Stop ends the sweeper. Safe to call more than once.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

// Limit admits perMinute requests per client IP within scope, with a burst of
// the same size. Rejected requests get 429 and a Retry-After in whole seconds.
func (rl *RateLimiter) Limit(scope string, perMinute int) Middleware {
	every := rate.Every(time.Minute / time.Duration(perMinute))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			now := rl.now()
			b := rl.bucketFor(bucketKey{scope: scope, ip: clientIP(r)}, every, perMinute, now)

			res := b.lim.ReserveN(now, 1)
			if wait := res.DelayFrom(now); wait > 0 {
				res.CancelAt(now)
				w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
				writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP drops the port so reconnects share a bucket. RealIP runs earlier
// and has already rewritten RemoteAddr when a proxy header is present.
func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

func (rl *RateLimiter) bucketFor(key bucketKey, every rate.Limit, burst int, now time.Time) *bucket {
	v, ok := rl.buckets.Load(key)
	if !ok {
		v, _ = rl.buckets.LoadOrStore(key, &bucket{lim: rate.NewLimiter(every, burst)})
	}
	b := v.(*bucket)
	b.lastSeen.Store(now.UnixNano())
	return b
}

func (rl *RateLimiter) cleanup(interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-rl.stop:
			return
		case <-t.C:
			rl.sweep(rl.now())
		}
	}
}

func (rl *RateLimiter) sweep(now time.Time) {
	cutoff := now.Add(-bucketIdleTTL).UnixNano()
	rl.buckets.Range(func(key, v any) bool {
		if v.(*bucket).lastSeen.Load() < cutoff {
			rl.buckets.Delete(key)
		}
		return true
	})
}
