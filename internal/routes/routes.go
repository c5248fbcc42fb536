package routes

import (
	ginlog "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"

	"tourism_guide/internal/controllers"
)

func SetupRouter() *gin.Engine {
	r := gin.New()

	// Recovery and request logging must precede route registration.
	r.Use(gin.Recovery())
	r.Use(ginlog.SetLogger())

	r.GET("/health", controllers.HealthCheck)
	r.Static("/uploads", "./uploads")

	AuthRoutes(r)
	PublicRoutes(r)
	AdminRoutes(r)

	return r
}
