package routes

import (
	"github.com/gin-gonic/gin"

	"tourism_guide/internal/controllers"
)

// PublicRoutes are the visitor-facing API endpoints; no authentication.
func PublicRoutes(r *gin.Engine) {
	api := r.Group("/api")
	{
		api.GET("/destinations", controllers.ListDestinations)
		api.GET("/destinations/nearby", controllers.NearbyDestinations)
		api.GET("/destinations/:id", controllers.GetDestination)
		api.GET("/destinations/:id/reviews", controllers.ListReviews)
		api.POST("/destinations/:id/reviews", controllers.CreateReview)

		api.GET("/categories", controllers.ListCategories)

		api.GET("/routes", controllers.ListRoutes)
		api.GET("/routes/stats", controllers.GetRouteStats)
		api.GET("/routes/:id/selection", controllers.GetRouteSelection)

		api.POST("/feedback", controllers.SubmitFeedback)
		api.GET("/statistics", controllers.GetStatistics)
	}
}
