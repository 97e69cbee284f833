package middleware

import (
	"net/http"
	"time"

	"github.com/Chamas111/booking-airbnb/internal/metrics"
	"github.com/gorilla/mux"
)

// MetricsMiddleware records requests under their route template so ids in the
// path do not explode label cardinality. Requests that matched no route are
// recorded as "unmatched".
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := newStatusRecorder(w)

		next.ServeHTTP(rec, r)

		route := "unmatched"
		if current := mux.CurrentRoute(r); current != nil {
			if tpl, err := current.GetPathTemplate(); err == nil {
				route = tpl
			}
		}
		metrics.ObserveHTTP(r.Method, route, rec.status, time.Since(start))
	})
}
