package httpx

import (
	"net/http"
	"strconv"
	"time"

	"freader/internal/platform/metrics"
)

// Instrument records request count and latency for one route. route is the
// registered pattern, so path parameters do not explode label cardinality.
func Instrument(m *metrics.Metrics, route string, next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := wrapResponseWriter(w)
		next.ServeHTTP(rw, r)
		m.HTTPDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
		m.HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(rw.statusCode)).Inc()
	})
}
