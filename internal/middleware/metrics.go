package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"jobposter-backend/internal/metrics"
)

// RequestMetrics record count and latency of every request by route template.
func RequestMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		metrics.ObserveRequest(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(c.Writer.Status()),
			time.Since(start).Seconds(),
		)
	}
}
