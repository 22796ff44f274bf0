package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"vikendica/constants"
)

// LoggerMiddleware writes one structured line per request.
func LoggerMiddleware(entry *logrus.Entry) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		fields := logrus.Fields{
			"status":     c.Writer.Status(),
			"method":     c.Request.Method,
			"path":       path,
			"duration":   time.Since(start).String(),
			"client_ip":  c.ClientIP(),
			"request_id": c.GetString(constants.ContextRequestID),
		}
		if username := c.GetString(constants.ContextUsername); username != "" {
			fields["username"] = username
		}

		line := entry.WithFields(fields)
		switch status := c.Writer.Status(); {
		case status >= 500:
			line.Error("request failed")
		case status >= 400:
			line.Warn("request rejected")
		default:
			line.Info("request completed")
		}
	}
}
