package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "employee_search"

// Collection groups the service metrics. A nil *Collection is valid and
// records nothing, which keeps tests free of registry setup.
type Collection struct {
	HTTPRequests       *prometheus.CounterVec
	HTTPDuration       *prometheus.HistogramVec
	RateLimitDecisions *prometheus.CounterVec
	QueryDuration      *prometheus.HistogramVec
	QueryErrors        *prometheus.CounterVec
	TrackedKeys        prometheus.Gauge

	gatherer prometheus.Gatherer
}

// New registers every collector on reg. Pass prometheus.NewRegistry() in
// tests to avoid duplicate registration on the default registerer.
func New(reg *prometheus.Registry) *Collection {
	factory := promauto.With(reg)

	return &Collection{
		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "HTTP requests by route, method and status code.",
			},
			[]string{"route", "method", "status"},
		),
		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route", "method"},
		),
		RateLimitDecisions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rate_limit_decisions_total",
				Help:      "Sliding window decisions by outcome.",
			},
			[]string{"outcome"},
		),
		QueryDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "query_duration_seconds",
				Help:      "Employee store query latency by query kind.",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"query"},
		),
		QueryErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "query_errors_total",
				Help:      "Employee store query failures by query kind.",
			},
			[]string{"query"},
		),
		TrackedKeys: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "rate_limit_tracked_keys",
				Help:      "Keys currently held by the sliding window limiter.",
			},
		),
		gatherer: reg,
	}
}

func (c *Collection) ObserveRequest(route, method string, status int, elapsed time.Duration) {
	if c == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	c.HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	c.HTTPDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

func (c *Collection) ObserveRateLimit(allowed bool) {
	if c == nil {
		return
	}
	outcome := "allowed"
	if !allowed {
		outcome = "rejected"
	}
	c.RateLimitDecisions.WithLabelValues(outcome).Inc()
}

func (c *Collection) ObserveQuery(query string, elapsed time.Duration, err error) {
	if c == nil {
		return
	}
	c.QueryDuration.WithLabelValues(query).Observe(elapsed.Seconds())
	if err != nil {
		c.QueryErrors.WithLabelValues(query).Inc()
	}
}

func (c *Collection) SetTrackedKeys(n int) {
	if c == nil {
		return
	}
	c.TrackedKeys.Set(float64(n))
}

// Handler exposes the registry in the Prometheus text format.
func (c *Collection) Handler() gin.HandlerFunc {
	var h http.Handler
	if c == nil {
		h = promhttp.Handler()
	} else {
		h = promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})
	}
	return gin.WrapH(h)
}

// Middleware records one request observation after the chain completes.
func (c *Collection) Middleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()
		c.ObserveRequest(ctx.FullPath(), ctx.Request.Method, ctx.Writer.Status(), time.Since(start))
	}
}
