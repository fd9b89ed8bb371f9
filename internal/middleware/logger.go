package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/findim/internal/logger"
	"github.com/guttosm/findim/internal/metrics"
)

// RequestLogger logs one structured line per request and records it in the
// HTTP metrics.
//
// Behavior:
//   - Captures method, path and route template before handling.
//   - After the handler chain runs, logs status, latency and request_id.
//   - Requests that ended with status >= 500 are logged at error level.
//
// Usage:
//
//	router := gin.New()
//	router.Use(middleware.RequestID(), middleware.RequestLogger())
//
// Example log output:
//
//	{"component":"http","request_id":"...","method":"GET","path":"/api/v1/holidays/2024","status":200,"latency_ms":1}
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method
		path := c.Request.URL.Path

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		metrics.ObserveRequest(method, c.FullPath(), status, latency)

		rid, _ := c.Get(RequestIDKey)
		log := logger.With("http")
		ev := log.Info()
		if status >= 500 {
			ev = log.Error()
		}
		ev.
			Str("request_id", toString(rid)).
			Str("method", method).
			Str("path", path).
			Str("query", c.Request.URL.RawQuery).
			Int("status", status).
			Int64("latency_ms", latency.Milliseconds()).
			Str("client_ip", c.ClientIP()).
			Msg("http_request")
	}
}

func toString(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
