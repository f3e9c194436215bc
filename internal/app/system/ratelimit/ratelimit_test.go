package ratelimit

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestLimiterAllowAndReset(t *testing.T) {
	l := New(2, time.Minute)

	if !l.Allow("k") || !l.Allow("k") {
		t.Fatal("first two attempts should pass")
	}
	if l.Allow("k") {
		t.Error("third attempt should be blocked")
	}
	if !l.Allow("other") {
		t.Error("unrelated key should not be blocked")
	}

	l.Reset("k")
	if !l.Allow("k") {
		t.Error("reset should clear the window")
	}
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest("POST", "/", nil)
	r.RemoteAddr = "10.0.0.1:4321"
	if got := ClientIP(r); got != "10.0.0.1" {
		t.Errorf("remote addr: got %q", got)
	}

	r.Header.Set("X-Real-IP", "10.0.0.2")
	if got := ClientIP(r); got != "10.0.0.2" {
		t.Errorf("x-real-ip: got %q", got)
	}

	r.Header.Set("X-Forwarded-For", "10.0.0.3, 10.0.0.4")
	if got := ClientIP(r); got != "10.0.0.3" {
		t.Errorf("x-forwarded-for: got %q", got)
	}
}

func TestCredentialLimiterPerEmail(t *testing.T) {
	cl := &CredentialLimiter{
		ipLimiter:    New(100, time.Minute),
		emailLimiter: New(2, time.Minute),
	}
	r := httptest.NewRequest("POST", "/", nil)

	for i := 0; i < 2; i++ {
		if ok, reason := cl.Check(r, "A@c.test"); !ok {
			t.Fatalf("attempt %d blocked: %s", i, reason)
		}
	}
	if ok, _ := cl.Check(r, "a@c.test"); ok {
		t.Error("email limit should apply case-insensitively")
	}
	if ok, _ := cl.Check(r, "b@c.test"); !ok {
		t.Error("unrelated email should not be blocked")
	}

	cl.ForgiveEmail("a@c.test")
	if ok, _ := cl.Check(r, "a@c.test"); !ok {
		t.Error("forgiven email should be allowed again")
	}
}
