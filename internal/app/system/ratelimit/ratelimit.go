// internal/app/system/ratelimit/ratelimit.go
package ratelimit

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Limiter counts requests per key in fixed windows. Safe for concurrent
// use.
type Limiter struct {
	mu       sync.Mutex
	windows  map[string]*window
	limit    int
	duration time.Duration
	cleanup  time.Duration
}

type window struct {
	count     int
	expiresAt time.Time
}

// New creates a limiter allowing limit requests per duration per key.
func New(limit int, duration time.Duration) *Limiter {
	l := &Limiter{
		windows:  make(map[string]*window),
		limit:    limit,
		duration: duration,
		cleanup:  duration * 2,
	}
	go l.cleanupLoop()
	return l
}

// Allow reports whether a request from the given key should proceed.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	w, exists := l.windows[key]

	if !exists || now.After(w.expiresAt) {
		l.windows[key] = &window{
			count:     1,
			expiresAt: now.Add(l.duration),
		}
		return true
	}

	if w.count >= l.limit {
		return false
	}

	w.count++
	return true
}

// Reset clears the window for a key, forgiving prior attempts.
func (l *Limiter) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.windows, key)
}

// cleanupLoop periodically removes expired windows so the map does not
// grow without bound.
func (l *Limiter) cleanupLoop() {
	ticker := time.NewTicker(l.cleanup)
	defer ticker.Stop()

	for range ticker.C {
		l.mu.Lock()
		now := time.Now()
		for key, w := range l.windows {
			if now.After(w.expiresAt) {
				delete(l.windows, key)
			}
		}
		l.mu.Unlock()
	}
}

// ClientIP extracts the client IP, preferring proxy headers over
// RemoteAddr.
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

// CredentialLimiter throttles credential-bearing requests (login,
// activation, password change) on two axes: per source IP against
// distributed guessing, and per target email against focused guessing
// on one account.
type CredentialLimiter struct {
	ipLimiter    *Limiter
	emailLimiter *Limiter
}

// NewCredentialLimiter uses the stock limits: 10 attempts per IP per
// minute, 5 attempts per email per 5 minutes.
func NewCredentialLimiter() *CredentialLimiter {
	return &CredentialLimiter{
		ipLimiter:    New(10, time.Minute),
		emailLimiter: New(5, 5*time.Minute),
	}
}

// Check reports whether the attempt should proceed, with a reason when
// it should not.
func (cl *CredentialLimiter) Check(r *http.Request, email string) (bool, string) {
	if !cl.ipLimiter.Allow(ClientIP(r)) {
		return false, "too many attempts; wait a minute before trying again"
	}
	if email != "" {
		if !cl.emailLimiter.Allow(strings.ToLower(strings.TrimSpace(email))) {
			return false, "too many attempts for this account; wait a few minutes"
		}
	}
	return true, ""
}

// ForgiveEmail clears the per-email window after a successful attempt.
func (cl *CredentialLimiter) ForgiveEmail(email string) {
	if email != "" {
		cl.emailLimiter.Reset(strings.ToLower(strings.TrimSpace(email)))
	}
}
