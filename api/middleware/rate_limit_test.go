package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type fakeLimiter struct {
	counts map[string]int64
	err    error
}

func newFakeLimiter() *fakeLimiter {
	return &fakeLimiter{counts: make(map[string]int64)}
}

func (f *fakeLimiter) IncrWithTTL(_ context.Context, key string, _ time.Duration) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.counts[key]++
	return f.counts[key], nil
}

func TestRateLimitBlocksIPAboveLimit(t *testing.T) {
	store := newFakeLimiter()
	policy := NewRateLimitPolicy("mutations", time.Minute, 2, 0)
	handler := RateLimit(policy, store, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		resp := httptest.NewRecorder()
		handler.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200 got %d", i+1, resp.Code)
		}
	}

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 got %d", resp.Code)
	}
}

func TestRateLimitCountsUsersSeparately(t *testing.T) {
	store := newFakeLimiter()
	policy := NewRateLimitPolicy("mutations", time.Minute, 0, 1)
	handler := RateLimit(policy, store, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func(userID string) int {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req = req.WithContext(WithUserID(req.Context(), userID))
		resp := httptest.NewRecorder()
		handler.ServeHTTP(resp, req)
		return resp.Code
	}

	if code := send("user-a"); code != http.StatusOK {
		t.Fatalf("first user-a request: expected 200 got %d", code)
	}
	if code := send("user-b"); code != http.StatusOK {
		t.Fatalf("user-b must have its own counter, got %d", code)
	}
	if code := send("user-a"); code != http.StatusTooManyRequests {
		t.Fatalf("second user-a request: expected 429 got %d", code)
	}
}

func TestRateLimitDisabledPolicyPassesThrough(t *testing.T) {
	store := newFakeLimiter()
	policy := NewRateLimitPolicy("off", 0, 10, 10)
	handler := RateLimit(policy, store, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if len(store.counts) != 0 {
		t.Fatalf("disabled policy must not touch the store")
	}
}

func TestRateLimitHonorsForwardedFor(t *testing.T) {
	store := newFakeLimiter()
	policy := NewRateLimitPolicy("mutations", time.Minute, 1, 0)
	handler := RateLimit(policy, store, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i, want := range []int{http.StatusOK, http.StatusTooManyRequests} {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.RemoteAddr = "127.0.0.1:9999"
		req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
		resp := httptest.NewRecorder()
		handler.ServeHTTP(resp, req)
		if resp.Code != want {
			t.Fatalf("request %d: expected %d got %d", i+1, want, resp.Code)
		}
	}
	if _, ok := store.counts["rl:ip:mutations:203.0.113.7"]; !ok {
		t.Fatalf("expected counter keyed by forwarded client ip, got %v", store.counts)
	}
}
