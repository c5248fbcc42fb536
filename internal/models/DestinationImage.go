package models

import "gorm.io/gorm"

type DestinationImage struct {
	gorm.Model
	DestinationID uint   `json:"destination_id" gorm:"index"`
	ImagePath     string `json:"image_path" gorm:"not null"`
	Caption       string `json:"caption"`
	IsPrimary     bool   `json:"is_primary" gorm:"default:false"`
}
