package ratelimit

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestLimiter_BurstThenDeny(t *testing.T) {
	l := New(3, time.Minute)
	for i := 0; i < 3; i++ {
		if !l.Allow("k") {
			t.Fatalf("attempt %d should be allowed", i+1)
		}
	}
	if l.Allow("k") {
		t.Fatal("fourth attempt should be denied")
	}
	if !l.Allow("other") {
		t.Fatal("keys are independent")
	}
}

func TestLimiter_Refills(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	l := New(1, time.Minute)
	l.now = func() time.Time { return now }

	if !l.Allow("k") || l.Allow("k") {
		t.Fatal("expected one allowed then denied")
	}
	now = now.Add(time.Minute)
	if !l.Allow("k") {
		t.Fatal("expected a token after the interval")
	}
}

func TestLimiter_ResetAndPrune(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	l := New(1, time.Minute)
	l.now = func() time.Time { return now }

	l.Allow("a")
	l.Allow("b")
	l.Reset("a")
	if !l.Allow("a") {
		t.Fatal("reset key should be allowed again")
	}

	now = now.Add(time.Hour)
	if n := l.Prune(); n != 2 {
		t.Fatalf("expected 2 pruned, got %d", n)
	}
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "10.0.0.1:5555"
	if got := ClientIP(r); got != "10.0.0.1" {
		t.Errorf("RemoteAddr: got %q", got)
	}

	r.Header.Set("X-Real-IP", "10.0.0.2")
	if got := ClientIP(r); got != "10.0.0.2" {
		t.Errorf("X-Real-IP: got %q", got)
	}

	r.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.3")
	if got := ClientIP(r); got != "203.0.113.9" {
		t.Errorf("X-Forwarded-For: got %q", got)
	}
}

func TestLoginLimiter_PerLogin(t *testing.T) {
	l := NewLoginLimiter()
	r := httptest.NewRequest("POST", "/login", nil)

	for i := 0; i < 5; i++ {
		if !l.Allow(r, "Ops@Tenant-A.test") {
			t.Fatalf("attempt %d should be allowed", i+1)
		}
	}
	if l.Allow(r, "ops@tenant-a.test") {
		t.Fatal("login ids are folded; sixth attempt should be denied")
	}

	l.Succeeded("ops@tenant-a.test")
	if !l.Allow(r, "ops@tenant-a.test") {
		t.Fatal("success should clear the login's attempts")
	}
}
