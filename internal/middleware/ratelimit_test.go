package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func doRequest(t *testing.T, h http.Handler, remoteAddr string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/auth/login", nil)
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRateLimitRejectsOverBurst(t *testing.T) {
	h := RateLimit(1, 2)(okHandler())

	for i := 0; i < 2; i++ {
		rec := doRequest(t, h, "1.2.3.4:5678")
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: got status %d, want %d", i+1, rec.Code, http.StatusOK)
		}
	}

	rec := doRequest(t, h, "1.2.3.4:5678")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("got status %d, want %d", rec.Code, http.StatusTooManyRequests)
	}
}

func TestRateLimitIsPerIP(t *testing.T) {
	h := RateLimit(1, 1)(okHandler())

	if rec := doRequest(t, h, "1.2.3.4:5678"); rec.Code != http.StatusOK {
		t.Fatalf("first IP: got status %d, want %d", rec.Code, http.StatusOK)
	}
	if rec := doRequest(t, h, "1.2.3.4:5678"); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("first IP second request: got status %d, want %d", rec.Code, http.StatusTooManyRequests)
	}

	// A different address gets its own bucket.
	if rec := doRequest(t, h, "5.6.7.8:1234"); rec.Code != http.StatusOK {
		t.Fatalf("second IP: got status %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestSweepDropsIdleVisitors(t *testing.T) {
	rl := newIPRateLimiter(1, 1, 30*time.Second)
	defer rl.stopCleanup()

	rl.getLimiter("1.2.3.4")
	rl.getLimiter("5.6.7.8")

	rl.mu.Lock()
	rl.visitors["1.2.3.4"].lastSeen = time.Now().Add(-time.Minute)
	rl.mu.Unlock()

	rl.sweep()

	rl.mu.Lock()
	defer rl.mu.Unlock()
	if _, ok := rl.visitors["1.2.3.4"]; ok {
		t.Error("idle visitor was not removed")
	}
	if _, ok := rl.visitors["5.6.7.8"]; !ok {
		t.Error("active visitor was removed")
	}
}
