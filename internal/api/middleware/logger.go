package middleware

import (
	"time"

	"energyhub/internal/obslog"

	"github.com/gin-gonic/gin"
)

// Logger replaces gin.Logger()'s default writer with a zerolog component
// logger, one structured line per request (method, path, status, latency).
func Logger() gin.HandlerFunc {
	log := obslog.Component("api")
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		log.Info().
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}
