package bootstrap

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/csrf"
)

// guardedRouter serves a token on GET /token and records what the POST
// handlers saw.
func guardedRouter(t *testing.T, seen *int) http.Handler {
	t.Helper()
	r := chi.NewRouter()
	useRequestGuards(r, validAppConfig(), false)

	r.Get("/token", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, csrf.Token(r))
	})
	post := func(w http.ResponseWriter, r *http.Request) {
		*seen = len(r.FormValue("password")) + len(r.FormValue("property_id"))
		w.WriteHeader(http.StatusOK)
	}
	r.Post("/login", post)
	r.Post("/dashboard/select", post)
	return r
}

func fetchToken(t *testing.T, h http.Handler) (string, []*http.Cookie) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/token", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("token request: status %d", rec.Code)
	}
	return rec.Body.String(), rec.Result().Cookies()
}

func formPost(target string, form url.Values, cookies []*http.Cookie) *http.Request {
	req := httptest.NewRequest("POST", target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return req
}

func TestRequestGuards_SmallLoginPasses(t *testing.T) {
	seen := -1
	h := guardedRouter(t, &seen)
	token, cookies := fetchToken(t, h)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, formPost("/login", url.Values{
		"gorilla.csrf.Token": {token},
		"password":           {"correct horse"},
	}, cookies))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if seen != len("correct horse") {
		t.Errorf("handler saw password len %d", seen)
	}
}

func TestRequestGuards_OversizedLoginRejectedBeforeCSRF(t *testing.T) {
	seen := -1
	h := guardedRouter(t, &seen)
	token, cookies := fetchToken(t, h)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, formPost("/login", url.Values{
		"gorilla.csrf.Token": {token},
		"password":           {strings.Repeat("x", 1<<20)},
	}, cookies))

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("expected status %d, got %d", http.StatusRequestEntityTooLarge, rec.Code)
	}
	if seen != -1 {
		t.Errorf("handler ran and saw %d bytes", seen)
	}
}

func TestRequestGuards_OversizedChunkedLoginNeverReachesHandler(t *testing.T) {
	seen := -1
	h := guardedRouter(t, &seen)
	token, cookies := fetchToken(t, h)

	req := formPost("/login", url.Values{
		"gorilla.csrf.Token": {token},
		"password":           {strings.Repeat("x", 1<<20)},
	}, cookies)
	req.ContentLength = -1

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code == http.StatusOK {
		t.Error("oversized body must not be accepted")
	}
	if seen != -1 {
		t.Errorf("handler ran and saw %d bytes", seen)
	}
}

func TestRequestGuards_OversizedSelectWithHeaderToken(t *testing.T) {
	seen := -1
	h := guardedRouter(t, &seen)
	token, cookies := fetchToken(t, h)

	req := formPost("/dashboard/select", url.Values{
		"mount":       {"m1"},
		"property_id": {strings.Repeat("p", 16<<10)},
	}, cookies)
	req.Header.Set("X-CSRF-Token", token)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("expected status %d, got %d", http.StatusRequestEntityTooLarge, rec.Code)
	}
	if seen != -1 {
		t.Errorf("handler ran and saw %d bytes", seen)
	}
}
