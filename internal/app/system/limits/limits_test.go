package limits_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/revenuedash/internal/app/system/limits"
)

func TestBody(t *testing.T) {
	var parseErr error
	h := limits.Body(16)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		parseErr = r.ParseForm()
	}))

	small := httptest.NewRequest("POST", "/", strings.NewReader("mount=abc"))
	small.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	h.ServeHTTP(httptest.NewRecorder(), small)
	if parseErr != nil {
		t.Fatalf("small body: %v", parseErr)
	}

	big := httptest.NewRequest("POST", "/", strings.NewReader("mount="+strings.Repeat("x", 64)))
	big.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	big.ContentLength = -1 // chunked: only the reader enforces the cap
	h.ServeHTTP(httptest.NewRecorder(), big)
	if parseErr == nil {
		t.Fatal("expected error for oversized body")
	}
}

func TestBody_DeclaredLengthOverCap(t *testing.T) {
	called := false
	h := limits.Body(16)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest("POST", "/", strings.NewReader(strings.Repeat("x", 64)))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("expected status %d, got %d", http.StatusRequestEntityTooLarge, rec.Code)
	}
	if called {
		t.Error("handler must not run for an oversized body")
	}
}

func TestForms_PicksCapByPath(t *testing.T) {
	h := limits.Forms(64,
		limits.Rule{Prefix: "/login", Max: 32},
		limits.Rule{Prefix: "/dashboard/", Max: 8},
	)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		method, path string
		size         int
		want         int
	}{
		{"POST", "/login", 32, http.StatusNoContent},
		{"POST", "/login", 33, http.StatusRequestEntityTooLarge},
		{"POST", "/dashboard/select", 9, http.StatusRequestEntityTooLarge},
		{"POST", "/other", 64, http.StatusNoContent},
		{"POST", "/other", 65, http.StatusRequestEntityTooLarge},
		{"GET", "/dashboard/panel", 1024, http.StatusNoContent},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(strings.Repeat("x", tt.size)))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != tt.want {
			t.Errorf("%s %s (%d bytes): got %d, want %d", tt.method, tt.path, tt.size, rec.Code, tt.want)
		}
	}
}
