// Package metrics holds the Prometheus instruments shared across the site.
// Collectors register with the default registry in init, so the /metrics
// handler exposes them without further wiring.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ContentResolutions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "revanew_content_resolutions_total",
			Help: "CMS section lookups by outcome (hit, miss, error).",
		}, []string{"outcome"})

	Uploads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "revanew_uploads_total",
			Help: "Image uploads by outcome (accepted, rejected, failed).",
		}, []string{"outcome"})

	GateDecisions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "revanew_admin_gate_decisions_total",
			Help: "Admin gate decisions by result.",
		}, []string{"result"})

	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "revanew_http_requests_total",
			Help: "HTTP requests by route template and status code.",
		}, []string{"route", "status"})

	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "revanew_http_request_duration_seconds",
			Help:    "HTTP request latency by route template.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"})
)

func init() {
	prometheus.MustRegister(
		ContentResolutions,
		Uploads,
		GateDecisions,
		HTTPRequests,
		HTTPDuration,
	)
}

// Middleware records request counts and latency keyed by the matched route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		HTTPRequests.WithLabelValues(route, strconv.Itoa(c.Writer.Status())).Inc()
		HTTPDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}
