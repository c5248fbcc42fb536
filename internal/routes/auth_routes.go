package routes

import (
	"github.com/gin-gonic/gin"

	"tourism_guide/internal/controllers"
	"tourism_guide/internal/middleware"
)

func AuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/signup", controllers.SignupUser)
		auth.POST("/login", controllers.LoginUser)
		auth.GET("/me", middleware.RequireAuth(), controllers.Me)
	}
}
