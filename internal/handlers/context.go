package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/carkeep/car-registry/internal/auth"
	"github.com/carkeep/car-registry/internal/middleware"
)

// currentIdentity reads the identity the auth middleware stored on the
// request. Only call it on routes behind AuthMiddleware.
func currentIdentity(c *gin.Context) auth.Identity {
	return auth.Identity{
		UserID:  c.MustGet(middleware.ContextUserID).(uint),
		IsAdmin: c.MustGet(middleware.ContextIsAdmin).(bool),
	}
}
