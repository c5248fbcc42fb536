package models

import "gorm.io/gorm"

// Destination is a point of interest managed through the admin back-office.
// Latitude/Longitude are pointers because a destination may legitimately
// lack coordinates; such destinations are listable but cannot be placed
// on the map or used as a drawable route endpoint.
type Destination struct {
	gorm.Model
	Name          string   `json:"name" binding:"required"`
	CategoryID    uint     `json:"category_id"`
	Description   string   `json:"description"`
	Address       string   `json:"address"`
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
	ContactNumber string   `json:"contact_number"`
	Email         string   `json:"email"`
	Website       string   `json:"website"`
	OpeningHours  string   `json:"opening_hours"`
	EntryFee      string   `json:"entry_fee"`
	ImagePath     string   `json:"image_path"`
	IsActive      bool     `json:"is_active" gorm:"default:true"`

	Category *Category          `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Images   []DestinationImage `gorm:"foreignKey:DestinationID;constraint:OnDelete:CASCADE;" json:"images,omitempty"`
	Reviews  []Review           `gorm:"foreignKey:DestinationID;constraint:OnDelete:CASCADE;" json:"reviews,omitempty"`
}

// HasCoordinates reports whether the destination can be placed on the map.
func (d *Destination) HasCoordinates() bool {
	return d.Latitude != nil && d.Longitude != nil
}
