package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/sakura-comic/backend/internal/logging"
	"github.com/sakura-comic/backend/internal/metrics"
)

const RequestIDHeader = "X-Request-ID"

type wrappedWriter struct {
	http.ResponseWriter
	statusCode int
}

func (w *wrappedWriter) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}

func wrap(w http.ResponseWriter) *wrappedWriter {
	if ww, ok := w.(*wrappedWriter); ok {
		return ww
	}
	return &wrappedWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

// silentPaths are polled endpoints that are only logged on errors (status >= 400).
var silentPaths = map[string]bool{
	"/healthz": true,
	"/metrics": true,
}

// RequestID reuses a client-supplied X-Request-ID or generates one, and puts it
// on the response and in the logging context.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(logging.ContextWithRequestID(r.Context(), id)))
	})
}

func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := wrap(w)
		next.ServeHTTP(wrapped, r)
		if silentPaths[r.URL.Path] && wrapped.statusCode < 400 {
			return
		}

		l := logging.Ctx(r.Context())
		ev := l.Info()
		switch {
		case wrapped.statusCode >= 500:
			ev = l.Error()
		case wrapped.statusCode >= 400:
			ev = l.Warn()
		}
		ev.Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", wrapped.statusCode).
			Dur("duration", time.Since(start)).
			Msg("HTTP request")
	})
}

// Metrics records request counts and latency labelled by the matched chi route
// pattern, so path ids do not blow up label cardinality.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := wrap(w)
		next.ServeHTTP(wrapped, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		metrics.RecordAPIRequest(r.Method, route, strconv.Itoa(wrapped.statusCode), time.Since(start))
	})
}
