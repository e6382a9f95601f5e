package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"inkwire.app/newsroom/common/logger"
)

const requestIDHeader = "X-Request-Id"

// RequestID assigns each request an ID, echoes it in the response header,
// and attaches it to the context log fields so every log line in the
// request carries it. An ID supplied by the caller is kept.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		c.Writer.Header().Set(requestIDHeader, requestID)

		ctx := logger.WithLogFields(c.Request.Context(), logger.LogFields{
			RequestID: &requestID,
		})
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
