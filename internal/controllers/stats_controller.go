package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tourism_guide/internal/config"
	"tourism_guide/internal/models"
	"tourism_guide/internal/transit"
)

type topRatedRow struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	AvgRating   float64 `json:"avg_rating"`
	ReviewCount int     `json:"review_count"`
}

// GetStatistics returns the overall system numbers plus the transit
// aggregate: totals, top-rated destinations, and route stats by mode.
func GetStatistics(c *gin.Context) {
	counts := map[string]*int64{
		"total_destinations":  new(int64),
		"active_destinations": new(int64),
		"total_categories":    new(int64),
		"total_routes":        new(int64),
		"total_reviews":       new(int64),
		"total_users":         new(int64),
	}

	config.DB.Model(&models.Destination{}).Count(counts["total_destinations"])
	config.DB.Model(&models.Destination{}).Where("is_active = ?", true).Count(counts["active_destinations"])
	config.DB.Model(&models.Category{}).Count(counts["total_categories"])
	config.DB.Model(&models.Route{}).Count(counts["total_routes"])
	config.DB.Model(&models.Review{}).Where("is_approved = ?", true).Count(counts["total_reviews"])
	config.DB.Model(&models.User{}).Count(counts["total_users"])

	var topRated []topRatedRow
	err := config.DB.Model(&models.Destination{}).
		Select(`destinations.id, destinations.name,
			ROUND(AVG(reviews.rating)::numeric, 1) AS avg_rating,
			COUNT(reviews.id) AS review_count`).
		Joins("JOIN reviews ON reviews.destination_id = destinations.id AND reviews.is_approved = true AND reviews.deleted_at IS NULL").
		Group("destinations.id, destinations.name").
		Having("COUNT(reviews.id) >= ?", 3).
		Order("avg_rating DESC").
		Limit(5).
		Scan(&topRated).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	catalog := transit.NewCatalog(transit.NewGormRouteSource(config.DB), transit.NewGormDestinationLookup(config.DB), nil)
	routes, err := catalog.Load(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Unable to load routes. Please try again.", "retryable": true})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_destinations":     *counts["total_destinations"],
		"active_destinations":    *counts["active_destinations"],
		"total_categories":       *counts["total_categories"],
		"total_routes":           *counts["total_routes"],
		"total_reviews":          *counts["total_reviews"],
		"total_users":            *counts["total_users"],
		"top_rated_destinations": topRated,
		"route_stats":            transit.Stats(routes),
	})
}

// HealthCheck reports service and database status.
func HealthCheck(c *gin.Context) {
	dbStatus := "connected"
	sqlDB, err := config.DB.DB()
	if err != nil || sqlDB.Ping() != nil {
		dbStatus = "disconnected"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"service":  "Tourism Guide System",
		"database": dbStatus,
	})
}
