package controllers

import (
	"errors"
	"math"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"tourism_guide/internal/config"
	"tourism_guide/internal/models"
)

// destinationRow is the list projection: destination fields joined with
// category name/icon and approved-review aggregates.
type destinationRow struct {
	ID           uint     `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Address      string   `json:"address"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	ImagePath    string   `json:"image_path"`
	CategoryID   uint     `json:"category_id"`
	CategoryName string   `json:"category_name"`
	Icon         string   `json:"icon"`
	ReviewCount  int      `json:"review_count"`
	AvgRating    float64  `json:"avg_rating"`
	IsActive     bool     `json:"is_active"`
}

func destinationListQuery() *gorm.DB {
	return config.DB.Model(&models.Destination{}).
		Select(`destinations.id, destinations.name, destinations.description, destinations.address,
			destinations.latitude, destinations.longitude, destinations.image_path,
			destinations.category_id, destinations.is_active,
			categories.name AS category_name, categories.icon AS icon,
			COUNT(reviews.id) AS review_count,
			COALESCE(ROUND(AVG(reviews.rating)::numeric, 1), 0) AS avg_rating`).
		Joins("LEFT JOIN categories ON categories.id = destinations.category_id AND categories.deleted_at IS NULL").
		Joins("LEFT JOIN reviews ON reviews.destination_id = destinations.id AND reviews.is_approved = true AND reviews.deleted_at IS NULL").
		Group("destinations.id, categories.name, categories.icon")
}

// ListDestinations returns active destinations with aggregates, filtered
// by optional category and search terms.
func ListDestinations(c *gin.Context) {
	query := destinationListQuery().Where("destinations.is_active = ?", true)

	if categoryID := queryInt(c, "category", 0); categoryID > 0 {
		query = query.Where("destinations.category_id = ?", categoryID)
	}
	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("destinations.name ILIKE ? OR destinations.description ILIKE ?", like, like)
	}

	var rows []destinationRow
	if err := query.Order("destinations.name").Scan(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing destinations: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"destinations": rows})
}

// ListAllDestinations is the admin view: every destination regardless of
// active state, newest first.
func ListAllDestinations(c *gin.Context) {
	query := destinationListQuery()
	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("destinations.name ILIKE ? OR destinations.description ILIKE ?", like, like)
	}
	if categoryID := queryInt(c, "category", 0); categoryID > 0 {
		query = query.Where("destinations.category_id = ?", categoryID)
	}

	var rows []destinationRow
	if err := query.Order("destinations.created_at DESC").Scan(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"destinations": rows})
}

// GetDestination returns the detail view: the record with its category,
// images, approved reviews, and rating stats.
func GetDestination(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid destination ID"})
		return
	}

	var destination models.Destination
	err = config.DB.
		Preload("Category").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("is_primary DESC, id")
		}).
		Preload("Reviews", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_approved = ?", true).Order("created_at DESC")
		}).
		First(&destination, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Destination not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	var avg float64
	for _, r := range destination.Reviews {
		avg += float64(r.Rating)
	}
	if n := len(destination.Reviews); n > 0 {
		avg = math.Round(avg/float64(n)*10) / 10
	}

	c.JSON(http.StatusOK, gin.H{
		"destination":  destination,
		"review_count": len(destination.Reviews),
		"avg_rating":   avg,
	})
}

type nearbyResult struct {
	ID         uint    `json:"id"`
	Name       string  `json:"name"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	DistanceKm float64 `json:"distance_km"`
	ImagePath  string  `json:"image_path"`
}

// NearbyDestinations lists active destinations within a radius of a
// point, closest first. Distance is the flat-earth approximation; fine
// at municipal scale.
func NearbyDestinations(c *gin.Context) {
	lat := queryFloat(c, "latitude", math.NaN())
	lng := queryFloat(c, "longitude", math.NaN())
	if math.IsNaN(lat) || math.IsNaN(lng) || lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "latitude and longitude are required"})
		return
	}
	radius := queryFloat(c, "radius_km", 5)
	if radius < 0.1 {
		radius = 0.1
	} else if radius > 50 {
		radius = 50
	}
	limit := clampInt(queryInt(c, "limit", 10), 1, 50)

	var destinations []models.Destination
	if err := config.DB.
		Where("is_active = ? AND latitude IS NOT NULL AND longitude IS NOT NULL", true).
		Find(&destinations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	nearby := make([]nearbyResult, 0, len(destinations))
	for _, d := range destinations {
		dist := approxDistanceKm(lat, lng, *d.Latitude, *d.Longitude)
		if dist <= radius {
			nearby = append(nearby, nearbyResult{
				ID:         d.ID,
				Name:       d.Name,
				Latitude:   *d.Latitude,
				Longitude:  *d.Longitude,
				DistanceKm: math.Round(dist*100) / 100,
				ImagePath:  d.ImagePath,
			})
		}
	}
	sort.Slice(nearby, func(i, j int) bool { return nearby[i].DistanceKm < nearby[j].DistanceKm })
	if len(nearby) > limit {
		nearby = nearby[:limit]
	}

	c.JSON(http.StatusOK, gin.H{
		"center":       gin.H{"latitude": lat, "longitude": lng},
		"radius_km":    radius,
		"count":        len(nearby),
		"destinations": nearby,
	})
}

// approxDistanceKm is a degree-delta distance, ~111 km per degree.
func approxDistanceKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := lat2 - lat1
	dLng := lng2 - lng1
	return math.Sqrt(dLat*dLat+dLng*dLng) * 111
}

type destinationInput struct {
	Name          string   `json:"name" binding:"required"`
	CategoryID    uint     `json:"category_id" binding:"required"`
	Description   string   `json:"description"`
	Address       string   `json:"address"`
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
	ContactNumber string   `json:"contact_number"`
	Email         string   `json:"email"`
	Website       string   `json:"website"`
	OpeningHours  string   `json:"opening_hours"`
	EntryFee      string   `json:"entry_fee"`
	IsActive      *bool    `json:"is_active"`
}

func CreateDestination(c *gin.Context) {
	var input destinationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	destination := models.Destination{
		Name:          input.Name,
		CategoryID:    input.CategoryID,
		Description:   input.Description,
		Address:       input.Address,
		Latitude:      input.Latitude,
		Longitude:     input.Longitude,
		ContactNumber: input.ContactNumber,
		Email:         input.Email,
		Website:       input.Website,
		OpeningHours:  input.OpeningHours,
		EntryFee:      input.EntryFee,
		IsActive:      true,
	}
	if input.IsActive != nil {
		destination.IsActive = *input.IsActive
	}

	if err := config.DB.Create(&destination).Error; err != nil {
		logrus.WithError(err).Error("CreateDestination: create failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Create destination failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"destination": destination})
}

func UpdateDestination(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid destination ID"})
		return
	}

	var destination models.Destination
	if err := config.DB.First(&destination, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Destination not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	var input destinationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	destination.Name = input.Name
	destination.CategoryID = input.CategoryID
	destination.Description = input.Description
	destination.Address = input.Address
	destination.Latitude = input.Latitude
	destination.Longitude = input.Longitude
	destination.ContactNumber = input.ContactNumber
	destination.Email = input.Email
	destination.Website = input.Website
	destination.OpeningHours = input.OpeningHours
	destination.EntryFee = input.EntryFee
	if input.IsActive != nil {
		destination.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&destination).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Update failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"destination": destination})
}

func ToggleDestination(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid destination ID"})
		return
	}

	var destination models.Destination
	if err := config.DB.First(&destination, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Destination not found"})
		return
	}

	destination.IsActive = !destination.IsActive
	if err := config.DB.Save(&destination).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Update failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"destination": destination})
}

// DeleteDestination removes a destination along with its photos and any
// routes that reference it as an endpoint.
func DeleteDestination(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid destination ID"})
		return
	}

	var destination models.Destination
	if err := config.DB.Preload("Images").First(&destination, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Destination not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start transaction"})
		return
	}

	if err := tx.Where("destination_id = ?", destination.ID).Delete(&models.DestinationImage{}).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete photos: " + err.Error()})
		return
	}
	if err := tx.Where("destination_id = ?", destination.ID).Delete(&models.Review{}).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete reviews: " + err.Error()})
		return
	}
	if err := tx.Where("origin_id = ? OR destination_id = ?", destination.ID, destination.ID).Delete(&models.Route{}).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete routes: " + err.Error()})
		return
	}
	if err := tx.Delete(&destination).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete destination: " + err.Error()})
		return
	}
	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Transaction commit failed: " + err.Error()})
		return
	}

	removeStoredImage(destination.ImagePath)
	for _, img := range destination.Images {
		removeStoredImage(img.ImagePath)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Destination deleted successfully"})
}

// UploadDestinationImage attaches an image to a destination. The first
// file field named "image" becomes the primary photo; "photos" adds
// gallery entries.
func UploadDestinationImage(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid destination ID"})
		return
	}

	var destination models.Destination
	if err := config.DB.First(&destination, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Destination not found"})
		return
	}

	if file, err := c.FormFile("image"); err == nil {
		path, err := saveUploadedImage(file, "destinations")
		if err != nil {
			logrus.WithError(err).Error("UploadDestinationImage: primary image save failed")
			c.JSON(http.StatusBadRequest, gin.H{"error": "Could not save image: " + err.Error()})
			return
		}
		removeStoredImage(destination.ImagePath)
		destination.ImagePath = path
		if err := config.DB.Save(&destination).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	form, err := c.MultipartForm()
	if err == nil {
		for _, file := range form.File["photos"] {
			path, err := saveUploadedImage(file, "destinations")
			if err != nil {
				logrus.WithError(err).Warn("UploadDestinationImage: gallery photo skipped")
				continue
			}
			photo := models.DestinationImage{DestinationID: destination.ID, ImagePath: path}
			if err := config.DB.Create(&photo).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
		}
	}

	config.DB.Preload("Images").First(&destination, destination.ID)
	c.JSON(http.StatusOK, gin.H{"destination": destination})
}

// DeleteDestinationPhoto removes a single gallery photo.
func DeleteDestinationPhoto(c *gin.Context) {
	photoID, err := parseIDParam(c, "photoId")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid photo ID"})
		return
	}

	var photo models.DestinationImage
	if err := config.DB.First(&photo, photoID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Photo not found"})
		return
	}

	if err := config.DB.Delete(&photo).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Delete failed: " + err.Error()})
		return
	}
	removeStoredImage(photo.ImagePath)
	c.JSON(http.StatusOK, gin.H{"message": "Photo deleted successfully"})
}
