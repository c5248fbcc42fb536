package models

import "gorm.io/gorm"

// Route is a directed transportation link between two destinations with a
// transport mode and a base-plus-per-kilometer fare model. Fare math and
// display rules live in internal/transit; this is the persisted record.
type Route struct {
	gorm.Model

	Name          string `json:"route_name"`
	OriginID      uint   `json:"origin_id"`
	DestinationID uint   `json:"destination_id"`

	// One of: jeepney, taxi, bus, van, tricycle, walking. Unknown values
	// are tolerated downstream and rendered with a generic style.
	TransportMode string `json:"transport_mode" binding:"required"`

	DistanceKm           float64 `json:"distance_km"`
	EstimatedTimeMinutes int     `json:"estimated_time_minutes"`
	BaseFare             float64 `json:"base_fare"`
	FarePerKm            float64 `json:"fare_per_km"`
	Description          string  `json:"description"`

	// Optional drawn path stored as WKB (SRID 4326 LINESTRING).
	// Accepted and served as GeoJSON on the API surface.
	Geometry []byte `gorm:"type:bytea" json:"-"`

	IsActive bool `json:"is_active" gorm:"default:true"`

	Origin      *Destination `gorm:"foreignKey:OriginID" json:"origin,omitempty"`
	Destination *Destination `gorm:"foreignKey:DestinationID" json:"destination,omitempty"`
}
