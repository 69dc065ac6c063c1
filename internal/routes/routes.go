package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/carkeep/car-registry/internal/config"
	"github.com/carkeep/car-registry/internal/handlers"
	"github.com/carkeep/car-registry/internal/middleware"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	authHandler := handlers.NewAuthHandler(db, cfg)
	userHandler := handlers.NewUserHandler(db)
	carHandler := handlers.NewCarHandler(db)

	api := r.Group("/api")
	{
		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)

		// The user directory predates the token layer and is served
		// without one.
		api.GET("/users", userHandler.List)

		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.PUT("/update_user/:id", userHandler.Update)
			secured.DELETE("/users/:id", userHandler.Delete)

			secured.GET("/cars", carHandler.List)
			secured.POST("/cars", carHandler.Create)
			secured.PUT("/cars/:id", carHandler.Update)
			secured.DELETE("/cars/:id", carHandler.Delete)
		}
	}
}
