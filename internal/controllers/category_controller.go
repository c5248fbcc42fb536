package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"tourism_guide/internal/config"
	"tourism_guide/internal/models"
)

type categoryRow struct {
	ID               uint   `json:"id"`
	Name             string `json:"name"`
	Icon             string `json:"icon"`
	DestinationCount int    `json:"destination_count"`
}

// ListCategories returns all categories with how many destinations each
// one holds, ordered by name for dropdown rendering.
func ListCategories(c *gin.Context) {
	var rows []categoryRow
	err := config.DB.Model(&models.Category{}).
		Select("categories.id, categories.name, categories.icon, COUNT(destinations.id) AS destination_count").
		Joins("LEFT JOIN destinations ON destinations.category_id = categories.id AND destinations.deleted_at IS NULL").
		Where("categories.deleted_at IS NULL").
		Group("categories.id").
		Order("categories.name").
		Scan(&rows).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing categories: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": rows})
}

func CreateCategory(c *gin.Context) {
	var input models.Category
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	if err := config.DB.Create(&input).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Create category failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"category": input})
}

func UpdateCategory(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
		return
	}

	var category models.Category
	if err := config.DB.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	var input struct {
		Name *string `json:"name"`
		Icon *string `json:"icon"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Name != nil {
		category.Name = *input.Name
	}
	if input.Icon != nil {
		category.Icon = *input.Icon
	}

	if err := config.DB.Save(&category).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Update failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"category": category})
}

// DeleteCategory removes a category, refusing while destinations still
// reference it.
func DeleteCategory(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
		return
	}

	var count int64
	if err := config.DB.Model(&models.Destination{}).Where("category_id = ?", id).Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Category still has destinations"})
		return
	}

	if err := config.DB.Delete(&models.Category{}, id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Delete failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}
