package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RedisErrors counts Redis command failures observed by the cache hook,
// labelled by command name.
var RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "inkwell_redis_errors_total",
	Help: "Total number of Redis command errors by command.",
}, []string{"command"})

// InitMetrics creates the Prometheus HTTP instrumentation for the service
// and registers the /metrics scrape endpoint on the app.
func InitMetrics(app *fiber.App, serviceName string) *fiberprometheus.FiberPrometheus {
	p := fiberprometheus.New(serviceName)
	p.RegisterAt(app, "/metrics")
	return p
}

// MetricsMiddleware returns the request instrumentation handler for the
// given collector.
func MetricsMiddleware(p *fiberprometheus.FiberPrometheus) fiber.Handler {
	return p.Middleware
}
