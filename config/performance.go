package config

import (
	"time"

	"github.com/gin-gonic/gin"

	"agenda-backend/logger"
)

// PerformanceLogger logs every request with its latency and flags the slow
// ones. Store and calendar calls run inline with the request, so latency
// here is the full user-visible wait.
func PerformanceLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start)
		log.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", latency,
		)

		if latency > 2*time.Second {
			log.Warn("slow request",
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"latency", latency,
			)
		}
	}
}
