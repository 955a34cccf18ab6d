package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/seo-optimizer/toolkit/logging"
)

// Traffic records visitors and the outcome of every tool request.
func Traffic(traffic *logging.Traffic) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		traffic.TrackVisitor(c.ClientIP())

		c.Next()

		if route := c.FullPath(); strings.HasPrefix(route, "/api/tools/") {
			traffic.TrackRequest(route, time.Since(start), c.Writer.Status() >= 400)
		}
	}
}
