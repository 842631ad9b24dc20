package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Gin context keys shared between middleware and handlers.
const (
	TraceIDHeader = "X-Trace-ID"
	TraceIDKey    = "trace_id"
	UserIDKey     = "user_id"
)

// EnrichContext assigns every request a trace id, reusing the caller's
// X-Trace-ID when present, and echoes it back in the response.
func EnrichContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader(TraceIDHeader)
		if traceID == "" {
			traceID = uuid.NewString()
		}
		c.Set(TraceIDKey, traceID)
		c.Header(TraceIDHeader, traceID)

		c.Next()
	}
}

// GetTraceID returns the trace id assigned by EnrichContext, or "".
func GetTraceID(c *gin.Context) string {
	return c.GetString(TraceIDKey)
}
