package github

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/KOFI-GYIMAH/github-connector/pkg/logger"
)

// * RateLimiter observes GitHub's rate limit headers. It never delays or
// * repeats a request: a 429 or 403 reaches the caller as-is.
type RateLimiter struct {
	mu        sync.Mutex
	remaining int
	limit     int
	reset     time.Time
	lowWarn   int
	observed  bool
}

func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		remaining: 5000,
		limit:     5000,
		reset:     time.Now(),
		lowWarn:   100,
	}
}

// * Snapshot returns the last observed limit. ok is false until a response
// * carrying rate limit headers has been seen.
func (r *RateLimiter) Snapshot() (status RateStatus, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return RateStatus{Remaining: r.remaining, Limit: r.limit, Reset: r.reset}, r.observed
}

func (r *RateLimiter) updateFromHeaders(headers http.Header) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if remaining := headers.Get("X-RateLimit-Remaining"); remaining != "" {
		if val, err := strconv.Atoi(remaining); err == nil {
			r.remaining = val
			r.observed = true
		}
	}

	if limit := headers.Get("X-RateLimit-Limit"); limit != "" {
		if val, err := strconv.Atoi(limit); err == nil {
			r.limit = val
		}
	}

	if reset := headers.Get("X-RateLimit-Reset"); reset != "" {
		if val, err := strconv.ParseInt(reset, 10, 64); err == nil {
			r.reset = time.Unix(val, 0)
		}
	}

	if r.observed && r.remaining < r.lowWarn {
		logger.Warn("[RateLimiter] Low rate limit: %d/%d remaining. Resets at %s", r.remaining, r.limit, r.reset.Format(time.RFC1123))
	}
}

func (r *RateLimiter) Middleware(next http.RoundTripper) http.RoundTripper {
	return roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		resp, err := next.RoundTrip(req)
		if err != nil {
			logger.Error("Network error in RoundTrip: %v", err)
			return nil, err
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			logger.Warn("[RateLimiter] Received 429 for %s %s", req.Method, req.URL.Path)
		}

		r.updateFromHeaders(resp.Header)
		return resp, nil
	})
}

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}
