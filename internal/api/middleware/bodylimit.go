package middleware

import "net/http"

// MaxBodySize caps request bodies at maxBytes. Reads past the cap fail with
// *http.MaxBytesError, which the JSON decoder surfaces to handlers.
func MaxBodySize(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			next.ServeHTTP(w, r)
		})
	}
}
