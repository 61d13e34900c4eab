package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestLimiter_AllowsUpToLimit(t *testing.T) {
	l := New(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !l.Allow("key") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if l.Allow("key") {
		t.Error("request over the limit should be blocked")
	}
}

func TestLimiter_KeysAreIndependent(t *testing.T) {
	l := New(1, time.Minute)

	if !l.Allow("a") {
		t.Fatal("first request for a should be allowed")
	}
	if l.Allow("a") {
		t.Error("second request for a should be blocked")
	}
	if !l.Allow("b") {
		t.Error("request for a different key should be allowed")
	}
}

func TestLimiter_WindowExpires(t *testing.T) {
	l := New(1, 20*time.Millisecond)

	if !l.Allow("key") {
		t.Fatal("first request should be allowed")
	}
	if l.Allow("key") {
		t.Fatal("second request inside the window should be blocked")
	}

	time.Sleep(30 * time.Millisecond)

	if !l.Allow("key") {
		t.Error("request after window expiry should be allowed")
	}
}

func TestLimiter_Remaining(t *testing.T) {
	l := New(3, time.Minute)

	if got := l.Remaining("key"); got != 3 {
		t.Errorf("Remaining before any requests = %d, want 3", got)
	}
	l.Allow("key")
	l.Allow("key")
	if got := l.Remaining("key"); got != 1 {
		t.Errorf("Remaining after two requests = %d, want 1", got)
	}
}

func TestLimiter_Reset(t *testing.T) {
	l := New(1, time.Minute)

	l.Allow("key")
	if l.Allow("key") {
		t.Fatal("should be blocked before reset")
	}
	l.Reset("key")
	if !l.Allow("key") {
		t.Error("should be allowed after reset")
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{
			name:       "remote addr with port",
			remoteAddr: "203.0.113.7:54321",
			want:       "203.0.113.7",
		},
		{
			name:       "x-forwarded-for single",
			remoteAddr: "10.0.0.1:1234",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.7"},
			want:       "203.0.113.7",
		},
		{
			name:       "x-forwarded-for chain uses first",
			remoteAddr: "10.0.0.1:1234",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.2"},
			want:       "203.0.113.7",
		},
		{
			name:       "x-real-ip",
			remoteAddr: "10.0.0.1:1234",
			headers:    map[string]string{"X-Real-IP": "203.0.113.9"},
			want:       "203.0.113.9",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tc.remoteAddr
			for k, v := range tc.headers {
				r.Header.Set(k, v)
			}
			if got := ClientIP(r); got != tc.want {
				t.Errorf("ClientIP = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestLoginLimiter_BlocksEmailAfterRepeatedAttempts(t *testing.T) {
	ll := NewLoginLimiterWithConfig(100, time.Minute, 2, time.Minute)

	r := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	r.RemoteAddr = "203.0.113.7:1234"

	for i := 0; i < 2; i++ {
		if ok, _ := ll.Check(r, "target@vit.ac.in"); !ok {
			t.Fatalf("attempt %d should be allowed", i+1)
		}
	}
	if ok, reason := ll.Check(r, "target@vit.ac.in"); ok || reason == "" {
		t.Error("third attempt for the same email should be blocked with a reason")
	}

	// A different account from the same IP is unaffected.
	if ok, _ := ll.Check(r, "other@vit.ac.in"); !ok {
		t.Error("a different email should still be allowed")
	}
}

func TestLoginLimiter_ResetEmail(t *testing.T) {
	ll := NewLoginLimiterWithConfig(100, time.Minute, 1, time.Minute)

	r := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	r.RemoteAddr = "203.0.113.7:1234"

	if ok, _ := ll.Check(r, "user@vit.ac.in"); !ok {
		t.Fatal("first attempt should be allowed")
	}
	if ok, _ := ll.Check(r, "user@vit.ac.in"); ok {
		t.Fatal("second attempt should be blocked")
	}

	ll.ResetEmail("User@VIT.ac.in") // case-insensitive key

	if ok, _ := ll.Check(r, "user@vit.ac.in"); !ok {
		t.Error("attempt after reset should be allowed")
	}
}
