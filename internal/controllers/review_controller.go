package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"tourism_guide/internal/config"
	"tourism_guide/internal/models"
)

type reviewInput struct {
	UserName string `json:"user_name" binding:"required"`
	Rating   int    `json:"rating" binding:"required,min=1,max=5"`
	Comment  string `json:"comment"`
}

// CreateReview submits a review for a destination. Logged-in users get
// their id attached; anonymous reviews are allowed. Auto-approved.
func CreateReview(c *gin.Context) {
	destinationID, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid destination ID"})
		return
	}

	var input reviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	var destination models.Destination
	if err := config.DB.First(&destination, destinationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Destination not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	review := models.Review{
		DestinationID: destination.ID,
		UserName:      input.UserName,
		Rating:        input.Rating,
		Comment:       input.Comment,
		IsApproved:    true,
	}
	if raw, exists := c.Get("user_id"); exists {
		if idFloat, ok := raw.(float64); ok {
			uid := uint(idFloat)
			review.UserID = &uid
		}
	}

	if err := config.DB.Create(&review).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Create review failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"review": review})
}

// ListReviews returns approved reviews for a destination, newest first,
// with limit/offset pagination.
func ListReviews(c *gin.Context) {
	destinationID, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid destination ID"})
		return
	}

	limit := clampInt(queryInt(c, "limit", 10), 1, 100)
	offset := queryInt(c, "offset", 0)
	if offset < 0 {
		offset = 0
	}

	var total int64
	if err := config.DB.Model(&models.Review{}).
		Where("destination_id = ? AND is_approved = ?", destinationID, true).
		Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var reviews []models.Review
	if err := config.DB.
		Where("destination_id = ? AND is_approved = ?", destinationID, true).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&reviews).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total":   total,
		"limit":   limit,
		"offset":  offset,
		"reviews": reviews,
	})
}

// ToggleReviewApproval lets an admin pull a review from display or
// restore it.
func ToggleReviewApproval(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid review ID"})
		return
	}

	var review models.Review
	if err := config.DB.First(&review, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
		return
	}

	review.IsApproved = !review.IsApproved
	if err := config.DB.Save(&review).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Update failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"review": review})
}

func DeleteReview(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid review ID"})
		return
	}

	if err := config.DB.Delete(&models.Review{}, id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Delete failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Review deleted successfully"})
}
