package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/segmentio/ksuid"
)

type CtxKey string

const CtxKeyTraceID CtxKey = "trace_id"

const HeaderTraceID = "X-Trace-Id"

// TraceID tags every request with a fresh ID, both in the request context for
// the logger and in the response headers so a user can report it.
func TraceID() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := ksuid.New().String()

		ctx := context.WithValue(c.Request.Context(), CtxKeyTraceID, traceID)
		c.Request = c.Request.Clone(ctx)
		c.Header(HeaderTraceID, traceID)

		c.Next()
	}
}
