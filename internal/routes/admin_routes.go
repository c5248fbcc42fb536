package routes

import (
	"github.com/gin-gonic/gin"

	"tourism_guide/internal/controllers"
	"tourism_guide/internal/middleware"
)

// AdminRoutes are the back-office content-management endpoints.
func AdminRoutes(r *gin.Engine) {
	admin := r.Group("/admin")
	admin.Use(middleware.RequireAuthWithRole("admin"))
	{
		admin.GET("/destinations", controllers.ListAllDestinations)
		admin.POST("/destinations", controllers.CreateDestination)
		admin.PUT("/destinations/:id", controllers.UpdateDestination)
		admin.PATCH("/destinations/:id/toggle", controllers.ToggleDestination)
		admin.DELETE("/destinations/:id", controllers.DeleteDestination)
		admin.POST("/destinations/:id/images", controllers.UploadDestinationImage)
		admin.DELETE("/destinations/photos/:photoId", controllers.DeleteDestinationPhoto)

		admin.POST("/categories", controllers.CreateCategory)
		admin.PUT("/categories/:id", controllers.UpdateCategory)
		admin.DELETE("/categories/:id", controllers.DeleteCategory)

		admin.GET("/routes", controllers.ListAllRoutes)
		admin.POST("/routes", controllers.CreateRoute)
		admin.PUT("/routes/:id", controllers.UpdateRoute)
		admin.PATCH("/routes/:id/toggle", controllers.ToggleRoute)
		admin.DELETE("/routes/:id", controllers.DeleteRoute)

		admin.PATCH("/reviews/:id/toggle", controllers.ToggleReviewApproval)
		admin.DELETE("/reviews/:id", controllers.DeleteReview)

		admin.GET("/feedback", controllers.ListFeedback)
		admin.PATCH("/feedback/:id/read", controllers.MarkFeedbackRead)

		admin.GET("/users", controllers.ListUsers)
		admin.PATCH("/users/:id/toggle", controllers.ToggleUserRole)
		admin.DELETE("/users/:id", controllers.DeleteUser)

		admin.GET("/export/routes", controllers.ExportRoutes)
		admin.GET("/export/destinations", controllers.ExportDestinations)
	}
}
