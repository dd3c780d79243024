package middleware

import (
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/taskmaster/pkg/httpcontext"
)

// RequestLogger writes one access log line per request.
func RequestLogger(logger *zap.Logger) Middleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			start := time.Now()
			requestID := httpcontext.RequestID(ctx)
			path := string(ctx.Path())
			method := string(ctx.Method())

			next(ctx)

			status := ctx.Response.StatusCode()
			fields := []zap.Field{
				zap.Int("status", status),
				zap.String("method", method),
				zap.String("path", path),
				zap.String("ip", ctx.RemoteIP().String()),
				zap.String("user_agent", string(ctx.UserAgent())),
				zap.String("request_id", requestID),
				zap.Duration("latency", time.Since(start)),
			}

			if status >= fasthttp.StatusInternalServerError {
				logger.Error("http request", fields...)
				return
			}
			logger.Info("http request", fields...)
		}
	}
}
