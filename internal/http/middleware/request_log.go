package middleware

import (
	"strings"
	"time"

	"cna-backend/internal/common/logger"

	"github.com/gin-gonic/gin"
)

func RequestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		if log == nil {
			return
		}

		status := c.Writer.Status()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		fields := map[string]interface{}{
			"method":     strings.ToUpper(c.Request.Method),
			"path":       path,
			"status":     status,
			"durationMs": time.Since(start).Milliseconds(),
		}
		if reqID := GetRequestID(c); reqID != "" {
			fields["requestId"] = reqID
		}

		switch {
		case status >= 500:
			log.Error("HTTP request", fields)
		case status >= 400:
			log.Warn("HTTP request", fields)
		default:
			log.Info("HTTP request", fields)
		}
	}
}
