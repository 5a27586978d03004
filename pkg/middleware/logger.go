package middleware

import (
	"bytes"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/manzanit0/addressmap/pkg/whttp"
)

type responseBodyWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (r responseBodyWriter) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

// Logger writes one record per inbound request. Response bodies are only
// included when debug is set.
func Logger(debug bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		w := &responseBodyWriter{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = w

		t0 := time.Now()

		c.Next()

		body := "<redacted>"
		if debug {
			body = w.body.String()
		}

		logFields := []any{
			slog.Group("http",
				slog.Group("request",
					"duration_ms", time.Since(t0).Milliseconds(),
					"method", c.Request.Method,
					"content_length", c.Request.ContentLength,
					"url", whttp.RedactURL(c.Request.URL),
					"client_ip", c.ClientIP(),
				),
				slog.Group("response",
					"status", c.Writer.Status(),
					"size", c.Writer.Size(),
					"body", body,
				),
			),
		}

		slog.InfoContext(c.Request.Context(), "inbound request", logFields...)
	}
}
