package middleware

import (
	"sync"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RedisErrors counts Redis command failures by command name.
var RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "socialsync_redis_errors_total",
	Help: "Total number of Redis command errors.",
}, []string{"command"})

// UpstreamFailures counts failed calls to external providers (trends, AI).
var UpstreamFailures = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "socialsync_upstream_failures_total",
	Help: "Total number of failed external provider calls.",
}, []string{"provider"})

var (
	promOnce     sync.Once
	promInstance *fiberprometheus.FiberPrometheus
)

// InitMetrics creates the Prometheus middleware for the given service
// name. The underlying collectors register globally, so repeated calls
// (multiple servers in one process, as in tests) share one instance.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	promOnce.Do(func() {
		promInstance = fiberprometheus.New(serviceName)
	})
	return promInstance
}

// MetricsMiddleware returns a Fiber handler that records request metrics.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
