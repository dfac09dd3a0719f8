package middleware

import (
	"strconv"
	"time"

	"inmofeed/pkg/logger"
	"inmofeed/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// Logging writes one line per request and records the HTTP metrics.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		method := c.Request.Method

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		logger.GlobalLogger.Printf("%s %s %d %v", method, path, status, latency)

		statusLabel := strconv.Itoa(status)
		metrics.HTTPRequestsTotal.WithLabelValues(method, path, statusLabel).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(method, path, statusLabel).Observe(latency.Seconds())
	}
}
