package slogx

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/metavr/dashauth/pkg/idx"
)

const (
	// HeaderCorrelationID is read from requests and echoed on every response.
	HeaderCorrelationID = "X-Correlation-ID"

	// HeaderRequestID is accepted as a fallback from proxies that only set it.
	HeaderRequestID = "X-Request-ID"
)

// HTTPMiddleware tags each request with a correlation id, puts a request
// logger into the context and logs one line per request.
func HTTPMiddleware(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}

			correlationID := r.Header.Get(HeaderCorrelationID)
			if correlationID == "" {
				correlationID = r.Header.Get(HeaderRequestID)
			}
			if correlationID == "" {
				correlationID = idx.New().String()
			}
			w.Header().Set(HeaderCorrelationID, correlationID)

			logger := base.With(
				"method", r.Method,
				"path", r.URL.Path,
				"remote_addr", r.RemoteAddr,
			)

			ctx := WithContext(r.Context(), logger)
			ctx = WithCorrelationID(ctx, correlationID)
			r = r.WithContext(ctx)

			next.ServeHTTP(rw, r)

			FromContext(ctx).Info("http_request",
				"status", rw.status,
				"duration_ms", time.Since(start).Milliseconds(),
				"user_agent", r.UserAgent(),
			)
		})
	}
}

type responseWriter struct {
	http.ResponseWriter

	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}
