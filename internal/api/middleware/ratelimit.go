package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"

	"github.com/sakura-comic/backend/internal/api/response"
)

// RateLimit allows at most requests per window per client IP. Zero disables it.
// RealIP must run first so RemoteAddr is the client address.
func RateLimit(requests int, window time.Duration) func(http.Handler) http.Handler {
	if requests <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.Limit(
		requests,
		window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			response.Status(w, http.StatusTooManyRequests, "too many requests, try again later")
		}),
	)
}
