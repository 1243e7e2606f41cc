package middleware

import "net/http"

// NewMaxBodySizeHandler returns a middleware that limits incoming request
// bodies to limit bytes. The limit is enforced lazily by http.MaxBytesReader:
// a handler reading past it gets a *http.MaxBytesError, which the booking
// handler maps to 413 Request Entity Too Large.
func NewMaxBodySizeHandler(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}
