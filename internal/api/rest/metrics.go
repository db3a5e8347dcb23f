package rest

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registry = prometheus.DefaultRegisterer

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "h2h_http_requests_total",
			Help: "Total number of HTTP requests by path/method/code.",
		},
		[]string{"path", "method", "code"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "h2h_http_request_duration_seconds",
			Help:    "Duration of HTTP requests by path/method/code.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method", "code"},
	)
)

// MetricsMiddleware records request counts and latencies by route template.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		if route := mux.CurrentRoute(r); route != nil {
			if tmpl, err := route.GetPathTemplate(); err == nil {
				path = tmpl
			}
		}
		if path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		rec := newStatusRecorder(w)
		next.ServeHTTP(rec, r)

		code := strconv.Itoa(rec.status)
		httpRequests.WithLabelValues(path, r.Method, code).Inc()
		httpDuration.WithLabelValues(path, r.Method, code).Observe(time.Since(start).Seconds())
	})
}

// MetricsHandler serves the default prometheus registry.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}

func init() {
	for _, c := range []prometheus.Collector{httpRequests, httpDuration} {
		_ = registry.Register(c)
	}
}
