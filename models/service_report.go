package models

import (
	"time"

	"gorm.io/gorm"
)

// PartUsed is one parts line item inside a completed service.
type PartUsed struct {
	gorm.Model
	CompletedServiceID uint    `json:"completed_service_id" gorm:"index"`
	Name               string  `json:"name"`
	Quantity           int     `json:"quantity" gorm:"default:1"`
	UnitPrice          float64 `json:"unit_price" gorm:"type:decimal(10,2)"`
	TotalPrice         float64 `json:"total_price" gorm:"type:decimal(10,2)"`
}

// CompletedService is one performed service with its parts and labor.
type CompletedService struct {
	gorm.Model
	ReportID    uint       `json:"report_id" gorm:"index"`
	ServiceName string     `json:"service_name"`
	Description string     `json:"description"`
	PartsUsed   []PartUsed `json:"parts_used" gorm:"foreignKey:CompletedServiceID;constraint:OnDelete:CASCADE"`
	LaborHours  float64    `json:"labor_hours"`
	LaborRate   float64    `json:"labor_rate" gorm:"type:decimal(10,2)"`
	LaborCost   float64    `json:"labor_cost" gorm:"type:decimal(10,2)"`
	ServiceCost float64    `json:"service_cost" gorm:"type:decimal(10,2)"`
}

// AdditionalWork is work performed beyond the requested services.
type AdditionalWork struct {
	gorm.Model
	ReportID        uint    `json:"report_id" gorm:"index"`
	Description     string  `json:"description"`
	Cost            float64 `json:"cost" gorm:"type:decimal(10,2)"`
	ApprovedByOwner bool    `json:"approved_by_owner" gorm:"default:false"`
}

// ServiceReport is the itemized completion record, at most one per booking.
// It is immutable after creation; no update path is exposed.
type ServiceReport struct {
	gorm.Model
	ReportNumber string  `json:"report_number" gorm:"uniqueIndex"`
	BookingID    uint    `json:"booking_id" gorm:"uniqueIndex"`
	Booking      Booking `json:"booking,omitempty" gorm:"foreignKey:BookingID"`

	TechnicianName string    `json:"technician_name"`
	WorkStartTime  time.Time `json:"work_start_time"`
	WorkEndTime    time.Time `json:"work_end_time"`

	CompletedServices []CompletedService `json:"completed_services" gorm:"foreignKey:ReportID;constraint:OnDelete:CASCADE"`
	AdditionalWork    []AdditionalWork   `json:"additional_work" gorm:"foreignKey:ReportID;constraint:OnDelete:CASCADE"`

	PartsTotal          float64 `json:"parts_total" gorm:"type:decimal(10,2)"`
	LaborTotal          float64 `json:"labor_total" gorm:"type:decimal(10,2)"`
	ServicesTotal       float64 `json:"services_total" gorm:"type:decimal(10,2)"`
	AdditionalWorkTotal float64 `json:"additional_work_total" gorm:"type:decimal(10,2)"`
	Taxes               float64 `json:"taxes" gorm:"type:decimal(10,2)"`
	Discount            float64 `json:"discount" gorm:"type:decimal(10,2)"`
	FinalTotal          float64 `json:"final_total" gorm:"type:decimal(10,2)"`
}

// ComputeTotals fills the cost breakdown from the line items. Taxes and
// Discount are flat amounts supplied by the caller and must already be set.
//
//	final = parts + labor + services + additional work + taxes - discount
func (r *ServiceReport) ComputeTotals() {
	r.PartsTotal = 0
	r.LaborTotal = 0
	r.ServicesTotal = 0
	r.AdditionalWorkTotal = 0

	for i := range r.CompletedServices {
		cs := &r.CompletedServices[i]
		for _, part := range cs.PartsUsed {
			r.PartsTotal += part.TotalPrice
		}
		r.LaborTotal += cs.LaborCost
		r.ServicesTotal += cs.ServiceCost
	}
	for _, work := range r.AdditionalWork {
		r.AdditionalWorkTotal += work.Cost
	}

	r.FinalTotal = r.PartsTotal + r.LaborTotal + r.ServicesTotal + r.AdditionalWorkTotal + r.Taxes - r.Discount
}

// ReportExists checks whether a completion report was already submitted for
// the booking.
func ReportExists(tx *gorm.DB, bookingID uint) (bool, error) {
	var count int64
	err := tx.Model(&ServiceReport{}).Where("booking_id = ?", bookingID).Count(&count).Error
	return count > 0, err
}
