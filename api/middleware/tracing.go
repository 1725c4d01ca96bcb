package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/ikonesteve/email-imap-proxy/internal/tracing"
)

// TracingMiddleware creates a new span for each request and adds common tags
func TracingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracing.StartHttpServerTracerSpanWithHeader(
			c.Request.Context(),
			c.Request.Method+" "+c.FullPath(),
			c.Request.Header,
		)
		defer span.Finish()

		tracing.TagComponentRest(span)

		if id, exists := c.Get("request_id"); exists {
			span.SetTag("request_id", id)
		}

		c.Request = c.Request.WithContext(ctx)

		c.Next()

		span.SetTag("http.status_code", c.Writer.Status())
		if c.Writer.Status() >= 400 {
			span.SetTag("error", true)
		}
	}
}
