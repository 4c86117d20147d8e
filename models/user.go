package models

import (
	"time"
)

const (
	RoleOwner         = "owner"
	RoleServiceCenter = "service_center"
	RoleAdmin         = "admin"
)

// ValidRole reports whether a role string is one of the known roles.
func ValidRole(role string) bool {
	return role == RoleOwner || role == RoleServiceCenter || role == RoleAdmin
}

type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name"`
	Email     string    `json:"email" gorm:"unique"`
	Password  string    `json:"password,omitempty"`
	Phone     string    `json:"phone"`
	Role      string    `json:"role" gorm:"default:owner"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Bookings       []Booking         `json:"bookings,omitempty" gorm:"foreignKey:OwnerID"`
	CenterBookings []Booking         `json:"center_bookings,omitempty" gorm:"foreignKey:ProviderID"`
	Offerings      []ServiceOffering `json:"offerings,omitempty" gorm:"foreignKey:ProviderID"`
}
