package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/google/uuid"

	"github.com/philipobrien-sdm/React-Local-LLM-AnythingLLM-Edition/pkg/logger"
)

// RequestIDKey is the request ID header name.
const RequestIDKey = "X-Request-ID"

// Logger logs one line per request with a propagated or generated request ID.
// Health-check paths are skipped to keep probe noise out of the logs.
func Logger() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		start := time.Now()
		path := string(c.Path())

		skipLogging := path == "/health/live" || path == "/health/ready" || path == "/ping"

		requestID := string(c.Request.Header.Peek(RequestIDKey))
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Response.Header.Set(RequestIDKey, requestID)

		var reqLogger *slog.Logger
		if !skipLogging {
			reqLogger = logger.WithRequestID(slog.Default(), requestID).With(
				"method", string(c.Method()),
				"path", path,
				"client_ip", c.ClientIP(),
			)
			reqLogger.Info("request started")
		}

		c.Next(ctx)

		if !skipLogging {
			latency := time.Since(start)
			statusCode := c.Response.StatusCode()

			reqLogger = reqLogger.With(
				"status", statusCode,
				"latency", latency.String(),
			)

			switch {
			case statusCode >= 500:
				reqLogger.Error("request completed with server error")
			case statusCode >= 400:
				reqLogger.Warn("request completed with client error")
			default:
				reqLogger.Info("request completed")
			}
		}
	}
}

// GetRequestID returns the request ID set on the response.
func GetRequestID(c *app.RequestContext) string {
	return string(c.Response.Header.Peek(RequestIDKey))
}
