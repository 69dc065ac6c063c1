package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	HeaderRequestID  = "X-Request-Id"
	ContextRequestID = "requestID"
)

// RequestIDMiddleware tags every request with a UUID (or keeps the one a
// proxy already assigned) so log lines can be correlated.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.New().String()
		}

		c.Set(ContextRequestID, id)
		c.Writer.Header().Set(HeaderRequestID, id)

		c.Next()
	}
}
