// Package middleware provides the storefront's gin middleware.
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Tracing starts a server span per request via otelgin, named after the route pattern.
// It must run before SpanAttributes.
func Tracing(serviceName string, enabled bool) gin.HandlerFunc {
	if !enabled {
		return func(c *gin.Context) { c.Next() }
	}
	return otelgin.Middleware(serviceName,
		otelgin.WithFilter(func(r *http.Request) bool {
			return r.URL.Path != "/health"
		}),
	)
}

// SpanAttributes tags the request span with the request ID and user, and marks 5xx responses as errors.
// Place it after SessionIdentity.
func SpanAttributes() gin.HandlerFunc {
	return func(c *gin.Context) {
		span := trace.SpanFromContext(c.Request.Context())
		if !span.IsRecording() {
			c.Next()
			return
		}

		if id := c.GetString(RequestIDKey); id != "" {
			span.SetAttributes(attribute.String("request_id", id))
		}
		if who := CurrentIdentity(c); who.IsAuthenticated() {
			span.SetAttributes(
				attribute.String("user_id", who.UserID().String()),
				attribute.Bool("user.is_staff", who.IsStaff()),
			)
		}

		c.Next()

		if status := c.Writer.Status(); status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(status))
		}
	}
}
