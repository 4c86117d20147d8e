package models

import (
	"gorm.io/gorm"
)

// CenterProfile contains information about the service center's business
// plus its persisted aggregate rating.
type CenterProfile struct {
	gorm.Model
	ProviderID    uint    `json:"provider_id" gorm:"uniqueIndex"`
	BusinessName  string  `json:"business_name"`
	Description   string  `json:"description"`
	Address       string  `json:"address"`
	City          string  `json:"city"`
	PhoneNumber   string  `json:"phone_number"`
	Email         string  `json:"email"`
	Website       string  `json:"website"`
	AverageRating float64 `json:"average_rating" gorm:"type:decimal(2,1);default:0"`
	RatingCount   int64   `json:"rating_count" gorm:"default:0"`
}
