// routes/category_approval_routes.go
package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Travelora/travelora_backend/controllers"
	"github.com/Travelora/travelora_backend/middleware"
	"github.com/Travelora/travelora_backend/models"
	"github.com/Travelora/travelora_backend/repositories"
	"github.com/Travelora/travelora_backend/services"
	"github.com/Travelora/travelora_backend/utils"
)

// RegisterCategoryApprovalRoutes sets up the approval workflow endpoints.
func RegisterCategoryApprovalRoutes(e *echo.Echo, db *mongo.Database) {
	service := services.NewCategoryApprovalService(
		repositories.NewUserRepository(db),
		repositories.NewServiceProviderRepository(db),
		repositories.NewCategoryApprovalRepository(db),
		utils.NewApprovalNotifier(db),
	)
	controller := controllers.NewCategoryApprovalController(service)

	group := e.Group("/api/category-approvals")
	group.Use(middleware.JWTMiddleware())

	// Read access for a single request is decided in the service: the
	// submitter, the profile owner or an admin.
	group.GET("/:id", controller.GetRequest)

	provider := group.Group("")
	provider.Use(middleware.RequireUserType(models.UserTypeServiceProvider))
	provider.POST("/create", controller.CreateRequest)
	provider.GET("/my-requests", controller.GetMyRequests)
	provider.PUT("/:id", controller.UpdateRequest)

	admin := group.Group("/admin")
	admin.Use(middleware.RequireAdmin())
	admin.GET("/all", controller.GetAllRequests)
	admin.GET("/pending", controller.GetPendingRequests)
	admin.PUT("/:id/approve", controller.ApproveRequest)
	admin.PUT("/:id/reject", controller.RejectRequest)
	admin.PUT("/:id/resubmit", controller.RequestResubmission)
	admin.DELETE("/:id", controller.DeleteRequest)
}
