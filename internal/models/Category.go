package models

import "gorm.io/gorm"

// Category groups destinations for browsing and filtering.
// Icon holds a Font Awesome class name rendered by the client.
type Category struct {
	gorm.Model
	Name string `json:"name" binding:"required"`
	Icon string `json:"icon"`

	Destinations []Destination `gorm:"foreignKey:CategoryID" json:"destinations,omitempty"`
}
