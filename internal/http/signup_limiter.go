package httpx

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"
)

const signupWindow = time.Minute

// SignupLimiter caps sign-up attempts per client IP in fixed one-minute
// windows.
type SignupLimiter interface {
	Allow(ctx context.Context, ip string) signupQuota
	Close() error
}

// signupQuota is the state of one IP's window after counting a request.
type signupQuota struct {
	limit int
	used  int
	reset time.Time
}

func (q signupQuota) exceeded() bool { return q.used > q.limit }

func (q signupQuota) remaining() int {
	return max(q.limit-q.used, 0)
}

type memorySignupLimiter struct {
	perMinute int
	now       func() time.Time

	mu        sync.Mutex
	windows   map[string]signupQuota
	lastPrune time.Time
}

// NewMemorySignupLimiter returns a process-local limiter allowing perMinute
// sign-ups per IP.
func NewMemorySignupLimiter(perMinute int) SignupLimiter {
	return newMemorySignupLimiter(perMinute, time.Now)
}

func newMemorySignupLimiter(perMinute int, now func() time.Time) *memorySignupLimiter {
	return &memorySignupLimiter{
		perMinute: perMinute,
		now:       now,
		windows:   make(map[string]signupQuota),
	}
}

func (l *memorySignupLimiter) Allow(_ context.Context, ip string) signupQuota {
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()

	q, ok := l.windows[ip]
	if !ok || !now.Before(q.reset) {
		l.prune(now)
		q = signupQuota{limit: l.perMinute, reset: now.Add(signupWindow)}
	}
	q.used++
	l.windows[ip] = q
	return q
}

// prune drops expired windows at most once per window. Callers hold mu.
func (l *memorySignupLimiter) prune(now time.Time) {
	if now.Sub(l.lastPrune) < signupWindow {
		return
	}
	for ip, q := range l.windows {
		if !now.Before(q.reset) {
			delete(l.windows, ip)
		}
	}
	l.lastPrune = now
}

func (l *memorySignupLimiter) Close() error { return nil }

// limitSignup rejects a client with 429 once its window is spent and
// advertises the quota on every response.
func (r *Router) limitSignup(next http.HandlerFunc) http.HandlerFunc {
	if r.limiter == nil {
		return next
	}
	return func(w http.ResponseWriter, req *http.Request) {
		q := r.limiter.Allow(req.Context(), clientIP(req))
		h := w.Header()
		h.Set("X-RateLimit-Limit", strconv.Itoa(q.limit))
		h.Set("X-RateLimit-Remaining", strconv.Itoa(q.remaining()))
		h.Set("X-RateLimit-Reset", strconv.FormatInt(q.reset.Unix(), 10))
		if q.exceeded() {
			retry := int(time.Until(q.reset).Round(time.Second).Seconds())
			h.Set("Retry-After", strconv.Itoa(max(retry, 1)))
			r.recordRateLimitHit(routeSignup)
			writeError(w, http.StatusTooManyRequests, "too many sign-up attempts")
			return
		}
		next(w, req)
	}
}
