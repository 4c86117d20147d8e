package models

import (
	"gorm.io/gorm"
)

// Feedback is the owner's post-completion rating, at most one per booking.
type Feedback struct {
	gorm.Model
	BookingID  uint    `json:"booking_id" gorm:"uniqueIndex"`
	Booking    Booking `json:"booking,omitempty" gorm:"foreignKey:BookingID"`
	OwnerID    uint    `json:"owner_id"`
	ProviderID uint    `json:"provider_id" gorm:"index"`
	Rating     float64 `json:"rating" gorm:"type:decimal(2,1);not null"`
	Comment    string  `json:"comment"`
}

// HasExistingFeedback reports whether the booking was already rated.
func (f *Feedback) HasExistingFeedback(tx *gorm.DB) (bool, error) {
	var count int64
	err := tx.Model(&Feedback{}).
		Where("booking_id = ? AND deleted_at IS NULL", f.BookingID).
		Count(&count).Error
	return count > 0, err
}

// RecomputeProviderRating recalculates the provider's stored mean rating over
// all feedback for that provider and persists it on the center profile.
// Called synchronously from every feedback submission.
func RecomputeProviderRating(tx *gorm.DB, providerID uint) (float64, int64, error) {
	var aggregate struct {
		AvgRating float64
		Count     int64
	}
	err := tx.Model(&Feedback{}).
		Select("COALESCE(AVG(rating), 0) as avg_rating, COUNT(*) as count").
		Where("provider_id = ? AND deleted_at IS NULL", providerID).
		Scan(&aggregate).Error
	if err != nil {
		return 0, 0, err
	}

	err = tx.Model(&CenterProfile{}).
		Where("provider_id = ?", providerID).
		Updates(map[string]interface{}{
			"average_rating": aggregate.AvgRating,
			"rating_count":   aggregate.Count,
		}).Error
	return aggregate.AvgRating, aggregate.Count, err
}
