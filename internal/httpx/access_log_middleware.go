package httpx

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

type responseWriter struct {
	http.ResponseWriter
	statusCode    int
	bytesWritten  int64
	headerWritten bool
}

func wrapResponseWriter(w http.ResponseWriter) *responseWriter {
	if rw, ok := w.(*responseWriter); ok {
		return rw
	}
	return &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

func (rw *responseWriter) WriteHeader(code int) {
	if !rw.headerWritten {
		rw.statusCode = code
		rw.headerWritten = true
		rw.ResponseWriter.WriteHeader(code)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.headerWritten {
		rw.WriteHeader(http.StatusOK)
	}
	n, err := rw.ResponseWriter.Write(b)
	rw.bytesWritten += int64(n)
	return n, err
}

func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

type accessInfoKey struct{}

// accessInfo lets handlers deeper in the chain report who made the request.
type accessInfo struct {
	userID string
}

func noteUser(r *http.Request, userID string) {
	if info, ok := r.Context().Value(accessInfoKey{}).(*accessInfo); ok {
		info.userID = userID
	}
}

// AccessLogMiddleware writes one structured line per request.
func AccessLogMiddleware(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := wrapResponseWriter(w)
			info := &accessInfo{}

			// The line is written even when the handler panics; the panic is
			// passed on to RecoveryMiddleware afterwards.
			defer func() {
				p := recover()
				status := rw.statusCode
				if p != nil && !rw.headerWritten {
					status = http.StatusInternalServerError
				}
				log.Info("access",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Int("status", status),
					zap.Int64("duration_ms", time.Since(start).Milliseconds()),
					zap.Int64("bytes", rw.bytesWritten),
					zap.String("request_id", RequestIDFrom(r)),
					zap.String("user_id", info.userID),
				)
				if p != nil {
					panic(p)
				}
			}()

			next.ServeHTTP(rw, r.WithContext(context.WithValue(r.Context(), accessInfoKey{}, info)))
		})
	}
}
