package config

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

const slowRequest = 200 * time.Millisecond

func PerformanceLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start)
		attrs := []any{
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"latency", latency,
		}
		if c.FullPath() == "" {
			attrs[3] = c.Request.URL.Path
		}

		if latency > slowRequest {
			logger.Warn("slow request", attrs...)
			return
		}
		logger.Info("request", attrs...)
	}
}
