package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tourism_guide/internal/config"
	"tourism_guide/internal/models"
)

type feedbackInput struct {
	UserName string `json:"user_name"`
	Email    string `json:"email"`
	Rating   int    `json:"rating" binding:"required,min=1,max=5"`
	Category string `json:"category" binding:"required,oneof=usability features content design general"`
	Message  string `json:"message" binding:"required,min=10"`
}

// SubmitFeedback records site-wide feedback, from logged-in or anonymous
// visitors alike.
func SubmitFeedback(c *gin.Context) {
	var input feedbackInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	feedback := models.Feedback{
		UserName: input.UserName,
		Email:    input.Email,
		Rating:   input.Rating,
		Category: input.Category,
		Message:  input.Message,
		IsPublic: true,
	}
	if raw, exists := c.Get("user_id"); exists {
		if idFloat, ok := raw.(float64); ok {
			uid := uint(idFloat)
			feedback.UserID = &uid
		}
	}

	if err := config.DB.Create(&feedback).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Create feedback failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Thank you for your feedback!",
		"id":      feedback.ID,
	})
}

// ListFeedback is the admin inbox, newest first.
func ListFeedback(c *gin.Context) {
	var feedback []models.Feedback
	if err := config.DB.Order("created_at DESC").Find(&feedback).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var unread int64
	config.DB.Model(&models.Feedback{}).Where("is_read = ?", false).Count(&unread)

	c.JSON(http.StatusOK, gin.H{"feedback": feedback, "unread": unread})
}

// MarkFeedbackRead marks one feedback entry as read.
func MarkFeedbackRead(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid feedback ID"})
		return
	}

	var feedback models.Feedback
	if err := config.DB.First(&feedback, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Feedback not found"})
		return
	}

	feedback.IsRead = true
	if err := config.DB.Save(&feedback).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Update failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"feedback": feedback})
}
