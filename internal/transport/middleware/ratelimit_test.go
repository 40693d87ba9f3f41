package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func hit(h http.Handler, addr string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/matching_rest", nil)
	req.RemoteAddr = addr
	h.ServeHTTP(rec, req)
	return rec
}

func TestRateLimiter_AllowsBurst(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(1, 10, time.Minute)
	defer rl.Stop()
	handler := rl.Limit()(okHandler())

	for i := 0; i < 10; i++ {
		assert.Equal(t, http.StatusOK, hit(handler, "1.2.3.4:1234").Code, "request %d should be allowed", i)
	}
}

func TestRateLimiter_BlocksOverBurst(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(1, 5, time.Minute)
	defer rl.Stop()
	handler := rl.Limit()(okHandler())

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, hit(handler, "1.2.3.4:1234").Code)
	}

	rec := hit(handler, "1.2.3.4:1234")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
}

func TestRateLimiter_SameIPDifferentPortsShareBudget(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(0.01, 1, time.Minute)
	defer rl.Stop()
	handler := rl.Limit()(okHandler())

	assert.Equal(t, http.StatusOK, hit(handler, "5.5.5.5:1000").Code)
	assert.Equal(t, http.StatusTooManyRequests, hit(handler, "5.5.5.5:2000").Code)
}

func TestRateLimiter_DifferentIPsIndependent(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(1, 2, time.Minute)
	defer rl.Stop()
	handler := rl.Limit()(okHandler())

	for i := 0; i < 2; i++ {
		hit(handler, "1.1.1.1:1234")
	}

	assert.Equal(t, http.StatusOK, hit(handler, "2.2.2.2:5678").Code)
}

func TestRateLimiter_TokenRefill(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(10, 1, time.Minute)
	defer rl.Stop()
	handler := rl.Limit()(okHandler())

	assert.Equal(t, http.StatusOK, hit(handler, "3.3.3.3:1234").Code)
	assert.Equal(t, http.StatusTooManyRequests, hit(handler, "3.3.3.3:1234").Code)

	time.Sleep(150 * time.Millisecond)

	assert.Equal(t, http.StatusOK, hit(handler, "3.3.3.3:1234").Code)
}

func TestRateLimiter_StopTwice(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(1, 1, time.Minute)
	rl.Stop()
	assert.NotPanics(t, rl.Stop)
}
