package middleware

import (
	apperrors "innkeep/pkg/errors"
	httputil "innkeep/pkg/http"
	"net/http"
)

// MaxRequestSize rejects bodies declared larger than limit and caps the
// bytes a handler can read from bodies of unknown length.
func MaxRequestSize(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				_ = httputil.WriteError(w, apperrors.RequestTooLarge(limit))
				return
			}
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, limit)
			}
			next.ServeHTTP(w, r)
		})
	}
}
