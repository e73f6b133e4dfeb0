// middleware/metrics.go
package middleware

import (
	"strconv"
	"time"

	"ulenguage/utils"

	"github.com/gofiber/fiber/v2"
)

// MetricsMiddleware records request counts and latencies. The route
// pattern is used as the path label to keep cardinality bounded.
func MetricsMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		path := c.Route().Path
		method := c.Method()
		status := strconv.Itoa(c.Response().StatusCode())

		utils.ReqCount.WithLabelValues(method, path, status).Inc()
		utils.ReqDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
		return err
	}
}
