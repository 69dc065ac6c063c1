package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/carkeep/car-registry/internal/auth"
	"github.com/carkeep/car-registry/internal/config"
)

const (
	ContextUserID  = "userID"
	ContextIsAdmin = "isAdmin"
)

// AuthMiddleware decodes the caller's token and stores the identity in
// the request context. Clients send the bare signed token in the
// Authorization header; a Bearer prefix is tolerated but not required.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader("Authorization")

		parts := strings.SplitN(tokenString, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			tokenString = parts[1]
		}

		ident, err := auth.DecodeToken(cfg.JWTSecret, tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token"})
			return
		}

		c.Set(ContextUserID, ident.UserID)
		c.Set(ContextIsAdmin, ident.IsAdmin)

		c.Next()
	}
}
