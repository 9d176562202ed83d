package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/DanielPopoola/storefront-checkout/internal/application"
	"github.com/DanielPopoola/storefront-checkout/internal/interfaces/rest"
)

// Timeout bounds a request. Checkout remote calls detach from the request
// context, so this only decides when the client stops waiting.
func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	body := timeoutBody()

	return func(next http.Handler) http.Handler {
		timeoutHandler := http.TimeoutHandler(next, timeout, body)

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			w.Header().Set("Content-Type", "application/json")
			timeoutHandler.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func timeoutBody() string {
	timeoutErr := application.NewTimeoutError()
	body, _ := json.Marshal(rest.FailureResponse{
		OK:    false,
		Error: timeoutErr.Message,
	})
	return string(body)
}
