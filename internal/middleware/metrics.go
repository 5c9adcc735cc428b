package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/scolarite-dao/internal/service"
)

// UnmatchedRoute labels requests that hit no registered route, keeping the
// path label bounded.
const UnmatchedRoute = "unmatched"

// Metrics records every request served by the mock backend under its route
// template. Scrapes of the exposition endpoint itself are not counted.
func Metrics(metrics *service.MetricsService, skip ...string) gin.HandlerFunc {
	skipped := make(map[string]struct{}, len(skip))
	for _, route := range skip {
		skipped[route] = struct{}{}
	}
	return func(c *gin.Context) {
		if metrics == nil {
			c.Next()
			return
		}
		began := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = UnmatchedRoute
		}
		if _, ok := skipped[route]; ok {
			return
		}
		metrics.ObserveHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(began))
	}
}
