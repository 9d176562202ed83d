package middleware

import (
	"net/http"

	"github.com/DanielPopoola/storefront-checkout/internal/interfaces/rest"
)

// BodyLimit caps request bodies. It must wrap RequestValidation, which
// buffers the whole body before any handler runs.
func BodyLimit(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				rest.WriteBodyTooLarge(w, limit)
				return
			}
			if r.Body != nil && r.Body != http.NoBody {
				r.Body = http.MaxBytesReader(w, r.Body, limit)
			}
			next.ServeHTTP(w, r)
		})
	}
}
