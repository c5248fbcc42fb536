package controllers

import (
	"encoding/binary"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"tourism_guide/internal/config"
	"tourism_guide/internal/models"
	"tourism_guide/internal/transit"

	"github.com/twpayne/go-geom"
	gjson "github.com/twpayne/go-geom/encoding/geojson"
	"github.com/twpayne/go-geom/encoding/wkb"
)

// parseAndConvertGeometry parses a GeoJSON string into WKB bytes for storage.
func parseAndConvertGeometry(raw string) ([]byte, error) {
	if raw == "" {
		return nil, nil
	}
	var g geom.T
	if err := gjson.Unmarshal([]byte(raw), &g); err != nil {
		return nil, err
	}
	return wkb.Marshal(g, binary.LittleEndian)
}

// convertWKBToGeoJSON converts stored WKB bytes back into a GeoJSON string.
func convertWKBToGeoJSON(wkbBytes []byte) (string, error) {
	if len(wkbBytes) == 0 {
		return "", nil
	}
	g, err := wkb.Unmarshal(wkbBytes)
	if err != nil {
		return "", err
	}
	b, err := gjson.Marshal(g)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// newCatalog wires the transit core to the database for one request.
func newCatalog() (*transit.Catalog, *transit.GormDestinationLookup) {
	lookup := transit.NewGormDestinationLookup(config.DB)
	return transit.NewCatalog(transit.NewGormRouteSource(config.DB), lookup, nil), lookup
}

// ListRoutes is the public route list: active routes decorated with
// endpoint names, computed fares, and display-ready fields. Optional
// destination and transport_mode query filters apply as an AND.
func ListRoutes(c *gin.Context) {
	catalog, lookup := newCatalog()
	routes, err := catalog.Load(c.Request.Context())
	if err != nil {
		// No stale state is kept; the client is told it can retry.
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":     "Unable to load routes. Please try again.",
			"retryable": true,
		})
		return
	}

	destID := queryInt(c, "destination", 0)
	if destID < 0 {
		destID = 0
	}
	state := transit.FilterState{
		DestinationID: uint(destID),
		Mode:          transit.TransportMode(c.Query("transport_mode")),
	}
	filtered := transit.Filter(routes, state)

	display := make([]transit.DisplayRoute, 0, len(filtered))
	for _, r := range filtered {
		display = append(display, transit.Present(r,
			endpointName(c, lookup, r.OriginID),
			endpointName(c, lookup, r.DestinationID)))
	}

	c.JSON(http.StatusOK, gin.H{
		"routes": display,
		"count":  len(display),
		"modes":  transit.Modes(routes),
	})
}

// endpointName resolves a destination name for display, tolerating
// deleted endpoints.
func endpointName(c *gin.Context, lookup *transit.GormDestinationLookup, id uint) string {
	ep, err := lookup.Endpoint(c.Request.Context(), id)
	if err != nil {
		return ""
	}
	return ep.Name
}

// GetRouteSelection resolves a route's endpoints for map display: both
// coordinates, labels, viewport padding, and the stored path as GeoJSON
// when one was drawn by an admin.
func GetRouteSelection(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid route ID"})
		return
	}

	catalog, _ := newCatalog()
	if _, err := catalog.Load(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":     "Unable to load routes. Please try again.",
			"retryable": true,
		})
		return
	}

	sel, err := catalog.Select(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, transit.ErrUnknownRoute):
			c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
		case errors.Is(err, transit.ErrMissingCoordinates), errors.Is(err, transit.ErrUnknownDestination):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Route locations don't have map coordinates set. Unable to display on map.",
			})
		default:
			logrus.WithError(err).Error("GetRouteSelection: selection failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	response := gin.H{"selection": sel}

	var record models.Route
	if err := config.DB.First(&record, id).Error; err == nil && len(record.Geometry) > 0 {
		if path, err := convertWKBToGeoJSON(record.Geometry); err == nil && path != "" {
			response["path"] = path
		}
	}

	c.JSON(http.StatusOK, response)
}

// GetRouteStats returns the derived aggregate over the active route set.
func GetRouteStats(c *gin.Context) {
	catalog, _ := newCatalog()
	routes, err := catalog.Load(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":     "Unable to load routes. Please try again.",
			"retryable": true,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": transit.Stats(routes)})
}

type routeInput struct {
	Name                 string  `json:"route_name"`
	OriginID             uint    `json:"origin_id" binding:"required"`
	DestinationID        uint    `json:"destination_id" binding:"required"`
	TransportMode        string  `json:"transport_mode" binding:"required"`
	DistanceKm           float64 `json:"distance_km"`
	EstimatedTimeMinutes int     `json:"estimated_time_minutes"`
	BaseFare             float64 `json:"base_fare"`
	FarePerKm            float64 `json:"fare_per_km"`
	Description          string  `json:"description"`
	Geometry             string  `json:"geometry"` // optional GeoJSON path
	IsActive             *bool   `json:"is_active"`
}

// CreateRoute adds a transportation route between two destinations.
func CreateRoute(c *gin.Context) {
	var input routeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		logrus.WithError(err).Warn("CreateRoute: invalid input payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	for _, endpointID := range []uint{input.OriginID, input.DestinationID} {
		var count int64
		if err := config.DB.Model(&models.Destination{}).Where("id = ?", endpointID).Count(&count).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if count == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Origin or destination does not exist"})
			return
		}
	}

	wkbGeom, err := parseAndConvertGeometry(input.Geometry)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid geometry: " + err.Error()})
		return
	}

	route := models.Route{
		Name:                 input.Name,
		OriginID:             input.OriginID,
		DestinationID:        input.DestinationID,
		TransportMode:        input.TransportMode,
		DistanceKm:           input.DistanceKm,
		EstimatedTimeMinutes: input.EstimatedTimeMinutes,
		BaseFare:             input.BaseFare,
		FarePerKm:            input.FarePerKm,
		Description:          input.Description,
		Geometry:             wkbGeom,
		IsActive:             true,
	}
	if input.IsActive != nil {
		route.IsActive = *input.IsActive
	}

	if err := config.DB.Create(&route).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Create route failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"route": route})
}

// ListAllRoutes is the admin view: every route including inactive ones,
// with the same display projection the public list uses.
func ListAllRoutes(c *gin.Context) {
	var records []models.Route
	if err := config.DB.Order("id").Find(&records).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	lookup := transit.NewGormDestinationLookup(config.DB)
	type adminRoute struct {
		transit.DisplayRoute
		IsActive bool `json:"is_active"`
	}
	display := make([]adminRoute, 0, len(records))
	for _, rec := range records {
		r := transit.FromModel(rec)
		display = append(display, adminRoute{
			DisplayRoute: transit.Present(r,
				endpointName(c, lookup, r.OriginID),
				endpointName(c, lookup, r.DestinationID)),
			IsActive: rec.IsActive,
		})
	}
	c.JSON(http.StatusOK, gin.H{"routes": display})
}

// UpdateRoute handles updating an existing route.
func UpdateRoute(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		logrus.WithError(err).Warn("UpdateRoute: invalid route ID in parameter")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid route ID"})
		return
	}

	var existing models.Route
	if err := config.DB.First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
		} else {
			logrus.WithError(err).Error("UpdateRoute: database error fetching route")
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	var input struct {
		Name                 *string  `json:"route_name"`
		OriginID             *uint    `json:"origin_id"`
		DestinationID        *uint    `json:"destination_id"`
		TransportMode        *string  `json:"transport_mode"`
		DistanceKm           *float64 `json:"distance_km"`
		EstimatedTimeMinutes *int     `json:"estimated_time_minutes"`
		BaseFare             *float64 `json:"base_fare"`
		FarePerKm            *float64 `json:"fare_per_km"`
		Description          *string  `json:"description"`
		Geometry             *string  `json:"geometry"`
		IsActive             *bool    `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		logrus.WithError(err).Warn("UpdateRoute: invalid input payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Name != nil {
		existing.Name = *input.Name
	}
	if input.OriginID != nil {
		existing.OriginID = *input.OriginID
	}
	if input.DestinationID != nil {
		existing.DestinationID = *input.DestinationID
	}
	if input.TransportMode != nil {
		existing.TransportMode = *input.TransportMode
	}
	if input.DistanceKm != nil {
		existing.DistanceKm = *input.DistanceKm
	}
	if input.EstimatedTimeMinutes != nil {
		existing.EstimatedTimeMinutes = *input.EstimatedTimeMinutes
	}
	if input.BaseFare != nil {
		existing.BaseFare = *input.BaseFare
	}
	if input.FarePerKm != nil {
		existing.FarePerKm = *input.FarePerKm
	}
	if input.Description != nil {
		existing.Description = *input.Description
	}
	if input.IsActive != nil {
		existing.IsActive = *input.IsActive
	}
	if input.Geometry != nil {
		if *input.Geometry == "" {
			existing.Geometry = nil
		} else {
			wkbGeom, err := parseAndConvertGeometry(*input.Geometry)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid geometry: " + err.Error()})
				return
			}
			existing.Geometry = wkbGeom
		}
	}

	if err := config.DB.Save(&existing).Error; err != nil {
		logrus.WithError(err).Error("UpdateRoute: failed to save updated route")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Update failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"route": existing})
}

// ToggleRoute flips a route's active state.
func ToggleRoute(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid route ID"})
		return
	}

	var route models.Route
	if err := config.DB.First(&route, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
		return
	}

	route.IsActive = !route.IsActive
	if err := config.DB.Save(&route).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Update failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"route": route})
}

// DeleteRoute removes a route.
func DeleteRoute(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid route ID"})
		return
	}

	var route models.Route
	if err := config.DB.First(&route, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	if err := config.DB.Delete(&route).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Delete failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Route deleted successfully"})
}
