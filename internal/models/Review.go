package models

import "gorm.io/gorm"

// Review is visitor feedback on a destination. Reviews are auto-approved
// on submission; admins can revoke approval or delete outright.
type Review struct {
	gorm.Model
	DestinationID uint   `json:"destination_id" gorm:"index"`
	UserID        *uint  `json:"user_id"` // nil for anonymous reviewers
	UserName      string `json:"user_name"`
	Rating        int    `json:"rating" binding:"required,min=1,max=5"`
	Comment       string `json:"comment"`
	IsApproved    bool   `json:"is_approved" gorm:"default:true"`
}
