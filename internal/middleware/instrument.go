package middleware

import (
	"net/http"
	"strconv"

	"github.com/felixge/httpsnoop"

	"regdocs/internal/metrics"
)

// Instrument records request count and latency for one route pattern
func Instrument(m *metrics.Metrics, route string, next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured := httpsnoop.CaptureMetrics(next, w, r)
		m.RecordHTTPRequest(r.Method, route, strconv.Itoa(captured.Code), captured.Duration)
	})
}
