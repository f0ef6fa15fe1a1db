package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/taskdeck-dev/taskdeck/internal/logger"
)

const RequestIDHeader = "X-Request-ID"

// RequestTracker assigns each request an ID and logs method, path,
// status, client IP and latency.
func RequestTracker() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		requestID := ctx.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx.Writer.Header().Set(RequestIDHeader, requestID)

		start := time.Now()
		ctx.Next()

		logger.Info("%s %s -> %d ip=%s id=%s took=%s",
			ctx.Request.Method,
			ctx.Request.URL.Path,
			ctx.Writer.Status(),
			ctx.ClientIP(),
			requestID,
			time.Since(start))
	}
}
