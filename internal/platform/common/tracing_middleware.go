package common

import (
	"log/slog"
	"net/http"
	"time"

	"go.classcore.tech/internal/common/tsid"
)

// TracingMiddleware extracts the correlation ID from incoming requests,
// stores it in the request context, and echoes it in the response so
// clients can reference the trace.
//
// Supported headers:
//   - X-Correlation-ID: primary tracing ID
//   - X-Request-ID: accepted as an alias
//
// A correlation ID is generated when neither header is present.
func TracingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		correlationID := r.Header.Get(HeaderCorrelationID)
		if correlationID == "" {
			correlationID = r.Header.Get(HeaderRequestID)
		}
		if correlationID == "" {
			correlationID = "trace-" + tsid.Generate()
		}

		ctx := WithCorrelationID(r.Context(), correlationID)
		w.Header().Set(HeaderCorrelationID, correlationID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type statusResponseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func (w *statusResponseWriter) WriteHeader(code int) {
	if !w.written {
		w.statusCode = code
		w.written = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusResponseWriter) Write(b []byte) (int, error) {
	w.written = true
	return w.ResponseWriter.Write(b)
}

// RequestLoggingMiddleware logs each request with its method, path,
// status, duration and correlation ID.
func RequestLoggingMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			srw := &statusResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(srw, r)

			logger.Debug("Request completed",
				"method", r.Method,
				"path", r.URL.Path,
				"status", srw.statusCode,
				"durationMs", time.Since(start).Milliseconds(),
				"correlationId", CorrelationIDFromContext(r.Context()),
			)
		})
	}
}

// PropagateTracingHeaders copies the correlation ID onto an outgoing
// request so downstream services can continue the trace.
func PropagateTracingHeaders(req *http.Request) {
	if correlationID := CorrelationIDFromContext(req.Context()); correlationID != "" {
		req.Header.Set(HeaderCorrelationID, correlationID)
	}
}

// TracingHTTPClient wraps http.Client to propagate tracing headers on
// every outgoing call.
type TracingHTTPClient struct {
	client *http.Client
}

// NewTracingHTTPClient wraps the given client; nil means
// http.DefaultClient.
func NewTracingHTTPClient(base *http.Client) *TracingHTTPClient {
	if base == nil {
		base = http.DefaultClient
	}
	return &TracingHTTPClient{client: base}
}

// Do executes the request with tracing headers set.
func (c *TracingHTTPClient) Do(req *http.Request) (*http.Response, error) {
	PropagateTracingHeaders(req)
	return c.client.Do(req)
}
