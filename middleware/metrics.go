package middleware

import (
	"strconv"
	"time"

	"roomify-backend/metrics"

	"github.com/gin-gonic/gin"
)

// Metrics instruments requests with Prometheus counters and latency
// histograms. The route template is used as the path label so /bookings/42
// doesn't explode cardinality.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.ObserveHTTPRequest(c.Request.Method, path, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}
