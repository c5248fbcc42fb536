package models

import "gorm.io/gorm"

// Feedback is site-wide feedback about the guide itself, as opposed to
// Review which targets a single destination.
type Feedback struct {
	gorm.Model
	UserID   *uint  `json:"user_id"`
	UserName string `json:"user_name"`
	Email    string `json:"email"`
	Rating   int    `json:"rating" binding:"required,min=1,max=5"`
	Category string `json:"category" binding:"required,oneof=usability features content design general"`
	Message  string `json:"message" binding:"required,min=10"`
	IsPublic bool   `json:"is_public" gorm:"default:true"`
	IsRead   bool   `json:"is_read" gorm:"default:false"`
}
