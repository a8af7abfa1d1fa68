package monitoring

import (
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

// Request counters feeding the monitoring snapshot and text reports.
var (
	activeHTTPRequests atomic.Int64
	totalHTTPRequests  atomic.Uint64
)

// RequestMetricsMiddleware counts in-flight and lifetime HTTP requests.
func RequestMetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		totalHTTPRequests.Add(1)
		activeHTTPRequests.Add(1)
		defer activeHTTPRequests.Add(-1)
		c.Next()
	}
}

func getHTTPStats() (active int64, total uint64) {
	return activeHTTPRequests.Load(), totalHTTPRequests.Load()
}
