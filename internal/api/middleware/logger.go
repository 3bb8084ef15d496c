package middleware

import (
	"strconv"
	"strings"
	"time"

	"github.com/nitishagar/bharatdcim/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Logger logs each request and records request metrics. Health checks and
// scrapes are counted but not logged.
func Logger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		elapsed := time.Since(start)

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		metrics.ObserveRequest(c.Request.Method, route, strconv.Itoa(status), elapsed)

		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/health") || path == "/metrics" {
			return
		}

		event := log.Info()
		if status >= 500 {
			event = log.Error()
		} else if status >= 400 {
			event = log.Warn()
		}
		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Str("route", route).
			Int("status", status).
			Int("bytes", c.Writer.Size()).
			Str("client_ip", c.ClientIP()).
			Dur("duration", elapsed).
			Msg("http request")
	}
}
