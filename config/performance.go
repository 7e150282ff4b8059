package config

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const slowRequestThreshold = 200 * time.Millisecond

// PerformanceLogger logs every request and records it in m when m is set.
func PerformanceLogger(log logrus.FieldLogger, m *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		if m != nil {
			m.httpInFlight.Inc()
			defer m.httpInFlight.Dec()
		}

		// Process request
		c.Next()

		latency := time.Since(start)
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := c.Writer.Status()

		if m != nil {
			m.httpRequests.WithLabelValues(c.Request.Method, path, strconv.Itoa(status)).Inc()
			m.httpDuration.WithLabelValues(c.Request.Method, path).Observe(latency.Seconds())
		}

		entry := log.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  status,
			"latency": latency.String(),
		})
		entry.Info("request")

		if latency > slowRequestThreshold {
			entry.Warn("slow request")
		}
	}
}
