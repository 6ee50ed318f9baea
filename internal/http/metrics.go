package httpx

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var histogramBuckets = []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10}

func (r *Router) initMetrics() {
	r.registry = prometheus.NewRegistry()

	r.requestTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "accounts",
		Subsystem: "api",
		Name:      "http_requests_total",
		Help:      "Count of processed HTTP requests",
	}, []string{"method", "route", "status"})

	r.requestLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "accounts",
		Subsystem: "api",
		Name:      "http_request_duration_seconds",
		Help:      "Latency distribution of HTTP handlers",
		Buckets:   histogramBuckets,
	}, []string{"method", "route", "status"})

	r.rateLimitHits = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "accounts",
		Subsystem: "api",
		Name:      "rate_limit_hits_total",
		Help:      "Requests rejected by the sign-up limiter",
	}, []string{"route"})

	r.signupResults = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "accounts",
		Subsystem: "api",
		Name:      "signup_results_total",
		Help:      "Sign-up outcomes by response status",
	}, []string{"status"})

	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.requestTotal,
		r.requestLatency,
		r.rateLimitHits,
		r.signupResults,
	)
}

func (r *Router) recordRequestMetrics(method, route string, status int, duration time.Duration) {
	code := strconv.Itoa(status)
	r.requestTotal.WithLabelValues(method, route, code).Inc()
	r.requestLatency.WithLabelValues(method, route, code).Observe(duration.Seconds())
}

func (r *Router) recordRateLimitHit(route string) {
	r.rateLimitHits.WithLabelValues(route).Inc()
}

func (r *Router) recordSignupResult(status int) {
	r.signupResults.WithLabelValues(strconv.Itoa(status)).Inc()
}
