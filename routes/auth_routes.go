// routes/auth_routes.go
package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Travelora/travelora_backend/controllers"
	"github.com/Travelora/travelora_backend/middleware"
)

// RegisterAuthRoutes sets up authentication endpoints.
func RegisterAuthRoutes(e *echo.Echo, db *mongo.Database) {
	authController := controllers.NewAuthController(db)

	auth := e.Group("/api/auth")
	auth.POST("/login", authController.Login)

	protected := auth.Group("")
	protected.Use(middleware.JWTMiddleware())
	protected.GET("/me", authController.GetCurrentUser)
	protected.POST("/logout", authController.Logout)
}
