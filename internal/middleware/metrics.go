package middleware

import (
	"time"

	"vacancy_backend/internal/metrics"

	"github.com/gin-gonic/gin"
)

// MetricsMiddleware - метка route берется из шаблона маршрута, чтобы id не раздували кардинальность
func MetricsMiddleware(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.ObserveRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
