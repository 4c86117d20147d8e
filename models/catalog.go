package models

import (
	"gorm.io/gorm"
)

// ServiceOffering is a service a center advertises. Bookings reference
// offerings by name, so deleting an offering never touches booking history.
type ServiceOffering struct {
	gorm.Model
	ProviderID        uint     `json:"provider_id" gorm:"index"`
	Provider          User     `json:"provider,omitempty" gorm:"foreignKey:ProviderID"`
	Name              string   `json:"name"`
	Description       string   `json:"description"`
	BasePrice         float64  `json:"base_price" gorm:"type:decimal(10,2)"`
	EstimatedDuration Duration `json:"estimated_duration" gorm:"type:jsonb"`
}
