// internal/app/system/limits/limits.go
package limits

import (
	"net/http"
	"strings"
)

// Request body size limits. The dashboard and login only accept small forms.
const (
	// MaxLoginFormSize bounds POST /login.
	MaxLoginFormSize = 16 << 10 // 16 KB

	// MaxDashboardFormSize bounds the selection and unmount posts, and logout.
	MaxDashboardFormSize = 8 << 10 // 8 KB

	// MaxFormSize bounds any other state-changing request.
	MaxFormSize = 64 << 10 // 64 KB
)

// Rule caps request bodies for paths starting with Prefix.
type Rule struct {
	Prefix string
	Max    int64
}

// Body caps request bodies at n bytes. A declared length over the cap is
// answered 413 without calling next; otherwise reading past the cap fails,
// which the form parsers surface as an error.
func Body(n int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > n {
				http.Error(w, http.StatusText(http.StatusRequestEntityTooLarge), http.StatusRequestEntityTooLarge)
				return
			}
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, n)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Forms caps the bodies of state-changing requests by path. It belongs at the
// root of the router, ahead of any middleware that parses forms (CSRF). The
// first matching rule wins; unmatched paths get def.
func Forms(def int64, rules ...Rule) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		capped := make([]http.Handler, len(rules))
		for i, rule := range rules {
			capped[i] = Body(rule.Max)(next)
		}
		fallback := Body(def)(next)

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
				next.ServeHTTP(w, r)
				return
			}
			for i, rule := range rules {
				if strings.HasPrefix(r.URL.Path, rule.Prefix) {
					capped[i].ServeHTTP(w, r)
					return
				}
			}
			fallback.ServeHTTP(w, r)
		})
	}
}
