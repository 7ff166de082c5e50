package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

// RequestIDMiddleware is a middleware for adding a request ID to the context
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = time.Now().Format("20060102150405.000000000") + "-" + c.ClientIP()
		}
		c.Set("RequestID", requestID)
		c.Writer.Header().Set("X-Request-ID", requestID)
		c.Next()
	}
}

// LoggerMiddleware records the response time on the response headers
func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start)
		c.Writer.Header().Set("X-Response-Time", latency.String())
		if c.Writer.Status() >= 400 && len(c.Errors) > 0 {
			c.Writer.Header().Set("X-Error", c.Errors.String())
		}
	}
}
