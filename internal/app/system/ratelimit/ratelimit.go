// internal/app/system/ratelimit/ratelimit.go
package ratelimit

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"golang.org/x/time/rate"
)

// Limiter hands out a token bucket per key. It is safe for concurrent use.
type Limiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	every   rate.Limit
	burst   int
	idle    time.Duration
	now     func() time.Time
}

type bucket struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// New creates a limiter allowing burst requests per key, refilled at one
// request per interval.
func New(burst int, interval time.Duration) *Limiter {
	return &Limiter{
		buckets: make(map[string]*bucket),
		every:   rate.Every(interval),
		burst:   burst,
		idle:    interval * time.Duration(burst) * 2,
		now:     time.Now,
	}
}

// Allow reports whether a request for key may proceed, consuming a token.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{lim: rate.NewLimiter(l.every, l.burst)}
		l.buckets[key] = b
	}
	b.lastSeen = now
	return b.lim.AllowN(now, 1)
}

// Reset forgets key, restoring its full burst.
func (l *Limiter) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.buckets, key)
}

// Prune drops buckets idle long enough to have refilled completely and
// returns how many were removed.
func (l *Limiter) Prune() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-l.idle)
	n := 0
	for key, b := range l.buckets {
		if b.lastSeen.Before(cutoff) {
			delete(l.buckets, key)
			n++
		}
	}
	return n
}

// ClientIP extracts the client IP from an HTTP request.
// It checks X-Forwarded-For and X-Real-IP headers first (for proxied requests),
// then falls back to RemoteAddr.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if ip := strings.TrimSpace(strings.Split(xff, ",")[0]); ip != "" {
			return ip
		}
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// LoginLimiter throttles sign-in attempts by client IP and by login id, so
// neither one address nor one account can be hammered.
type LoginLimiter struct {
	byIP    *Limiter
	byLogin *Limiter
}

// NewLoginLimiter allows 10 attempts per IP per minute and 5 per login id per
// 5 minutes.
func NewLoginLimiter() *LoginLimiter {
	return &LoginLimiter{
		byIP:    New(10, 6*time.Second),
		byLogin: New(5, time.Minute),
	}
}

// Allow records one attempt and reports whether it may proceed.
func (l *LoginLimiter) Allow(r *http.Request, loginID string) bool {
	ipOK := l.byIP.Allow(ClientIP(r))
	loginOK := l.byLogin.Allow(text.Fold(loginID))
	return ipOK && loginOK
}

// Succeeded clears the login id's attempts.
func (l *LoginLimiter) Succeeded(loginID string) {
	l.byLogin.Reset(text.Fold(loginID))
}

// Prune drops idle buckets.
func (l *LoginLimiter) Prune() int {
	return l.byIP.Prune() + l.byLogin.Prune()
}
