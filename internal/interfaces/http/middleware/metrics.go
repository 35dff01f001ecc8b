package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/turtacn/DealLens/internal/infrastructure/monitoring/prometheus"
)

// unmatchedRoute labels requests no route matched, keeping label cardinality
// bounded.
const unmatchedRoute = "unmatched"

// Metrics records request counts, latency and in-flight requests labelled by
// the chi route pattern.
func Metrics(m *prometheus.AppMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			active := m.HTTPActiveRequests.WithLabelValues()
			active.Inc()
			defer active.Dec()

			start := time.Now()
			rec := newStatusRecorder(w)
			next.ServeHTTP(rec, r)

			route := unmatchedRoute
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if p := rctx.RoutePattern(); p != "" {
					route = p
				}
			}
			m.RecordHTTPRequest(r.Method, route, rec.statusCode, time.Since(start))
		})
	}
}

//Personal.AI order the ending
