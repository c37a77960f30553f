package github

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter_Middleware(t *testing.T) {
	reset := time.Now().Add(30 * time.Minute).Unix()
	calls := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("X-RateLimit-Limit", "5000")
		w.Header().Set("X-RateLimit-Remaining", "42")
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(reset, 10))
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	rl := NewRateLimiter()
	client := &http.Client{Transport: rl.Middleware(http.DefaultTransport)}

	_, observed := rl.Snapshot()
	assert.False(t, observed)

	resp, err := client.Get(server.URL)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, 1, calls, "a 429 is passed through, not retried")

	status, observed := rl.Snapshot()
	assert.True(t, observed)
	assert.Equal(t, 42, status.Remaining)
	assert.Equal(t, 5000, status.Limit)
	assert.Equal(t, reset, status.Reset.Unix())
}

func TestRateLimiter_IgnoresMalformedHeaders(t *testing.T) {
	rl := NewRateLimiter()
	h := http.Header{}
	h.Set("X-RateLimit-Remaining", "lots")
	h.Set("X-RateLimit-Reset", "soon")

	rl.updateFromHeaders(h)

	status, observed := rl.Snapshot()
	assert.Equal(t, 5000, status.Remaining)
	assert.False(t, observed)
}

func TestRateLimiter_NetworkError(t *testing.T) {
	rl := NewRateLimiter()
	client := &http.Client{Transport: rl.Middleware(http.DefaultTransport)}

	_, err := client.Get("http://127.0.0.1:1")
	assert.Error(t, err)
}
