package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Dark-Zeus/auto-connect-sub001/utils"
)

type BookingStatus string

const (
	StatusPending    BookingStatus = "pending"
	StatusConfirmed  BookingStatus = "confirmed"
	StatusInProgress BookingStatus = "in_progress"
	StatusCompleted  BookingStatus = "completed"
	StatusRejected   BookingStatus = "rejected"
	StatusCancelled  BookingStatus = "cancelled"
)

// ActiveStatuses are the statuses that occupy a slot. At most one booking per
// (provider, date, time slot) may hold one of these at a time.
var ActiveStatuses = []BookingStatus{StatusPending, StatusConfirmed, StatusInProgress}

// transitions is the closed transition table. Confirming a pending booking
// also marks work started, so the persisted state after a "confirmed"
// transition is in_progress (see ApplyTransition).
var transitions = map[BookingStatus][]BookingStatus{
	StatusPending:    {StatusConfirmed, StatusRejected, StatusCancelled},
	StatusConfirmed:  {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
}

// Terminal reports whether no further transitions are possible.
func (s BookingStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusRejected || s == StatusCancelled
}

// CanTransition reports whether the table allows moving from s to next.
func (s BookingStatus) CanTransition(next BookingStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// VehicleSnapshot is the vehicle as it was at booking time. Stored inline so
// later edits to the vehicle registry never rewrite booking history.
type VehicleSnapshot struct {
	RegistrationNumber string `json:"registration_number"`
	Make               string `json:"make"`
	Model              string `json:"model"`
	Year               int    `json:"year"`
}

func (v VehicleSnapshot) Value() (driver.Value, error) {
	jsonData, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

func (v *VehicleSnapshot) Scan(value interface{}) error {
	return scanJSON(value, v)
}

// ServiceList is the list of requested service names.
type ServiceList []string

func (l ServiceList) Value() (driver.Value, error) {
	jsonData, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

func (l *ServiceList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

// CenterResponse is the provider's optional message or re-proposal recorded
// alongside a status change.
type CenterResponse struct {
	Message           string    `json:"message,omitempty"`
	ProposedDate      string    `json:"proposed_date,omitempty"`
	ProposedTimeSlot  string    `json:"proposed_time_slot,omitempty"`
	EstimatedDuration *Duration `json:"estimated_duration,omitempty"`
}

func (r CenterResponse) Value() (driver.Value, error) {
	jsonData, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

func (r *CenterResponse) Scan(value interface{}) error {
	return scanJSON(value, r)
}

func scanJSON(value interface{}, dst interface{}) error {
	if value == nil {
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("failed to unmarshal %T: unsupported type %T", dst, value)
	}
	return json.Unmarshal(data, dst)
}

type Booking struct {
	gorm.Model
	BookingRef string `json:"booking_ref" gorm:"uniqueIndex"`

	OwnerID    uint `json:"owner_id"`
	Owner      User `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	ProviderID uint `json:"provider_id" gorm:"index:idx_provider_date"`
	Provider   User `json:"provider,omitempty" gorm:"foreignKey:ProviderID"`

	Vehicle  VehicleSnapshot `json:"vehicle" gorm:"type:jsonb"`
	Services ServiceList     `json:"services" gorm:"type:jsonb"`

	PreferredDate     time.Time `json:"preferred_date" gorm:"type:date;index:idx_provider_date"`
	PreferredTimeSlot string    `json:"preferred_time_slot"`

	ContactPhone string `json:"contact_phone"`
	ContactEmail string `json:"contact_email"`

	Status BookingStatus `json:"status"`
	Notes  string        `json:"notes"`

	CenterResponse *CenterResponse `json:"center_response,omitempty" gorm:"type:jsonb"`

	FinalCost float64 `json:"final_cost"`

	BookedAt    time.Time  `json:"booked_at"`
	ConfirmedAt *time.Time `json:"confirmed_at,omitempty"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.Status == "" {
		b.Status = StatusPending
	}
	if b.BookingRef == "" {
		b.BookingRef = utils.GenerateBookingRef()
	}
	if b.BookedAt.IsZero() {
		b.BookedAt = time.Now().UTC()
	}
	return nil
}

// ApplyTransition moves the booking to newStatus in memory, enforcing the
// transition table and stamping the timestamp of the destination state.
// Confirming auto-advances to in_progress: both confirmed_at and started_at
// are recorded in the same transition. Downstream consumers depend on this,
// do not split it.
func (b *Booking) ApplyTransition(newStatus BookingStatus, now time.Time) error {
	if !b.Status.CanTransition(newStatus) {
		return &utils.StateError{Current: string(b.Status), Attempted: string(newStatus)}
	}

	switch newStatus {
	case StatusConfirmed:
		b.ConfirmedAt = &now
		b.StartedAt = &now
		b.Status = StatusInProgress
	case StatusInProgress:
		b.StartedAt = &now
		b.Status = StatusInProgress
	case StatusCompleted:
		b.CompletedAt = &now
		b.Status = StatusCompleted
	case StatusRejected:
		b.Status = StatusRejected
	case StatusCancelled:
		b.CancelledAt = &now
		b.Status = StatusCancelled
	default:
		return &utils.StateError{Current: string(b.Status), Attempted: string(newStatus)}
	}
	return nil
}

// UpdateStatus applies the transition and persists the booking.
func (b *Booking) UpdateStatus(tx *gorm.DB, newStatus BookingStatus) error {
	if err := b.ApplyTransition(newStatus, time.Now().UTC()); err != nil {
		return err
	}
	return tx.Save(b).Error
}

// CancellableByOwner is the owner-side cancellation set. An in_progress
// booking can only be cancelled by the provider.
func (b *Booking) CancellableByOwner() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// ActiveBookingExists locks and checks for a booking already occupying the
// (provider, date, slot) key. Must run inside the same transaction as the
// subsequent insert; the row locks plus the partial unique index in
// db.Migrate make the check-then-insert atomic.
func ActiveBookingExists(tx *gorm.DB, providerID uint, date time.Time, timeSlot string) (bool, error) {
	startMin, err := utils.SlotStartMinutes(timeSlot)
	if err != nil {
		return false, &utils.ValidationError{Field: "preferred_time_slot", Reason: err.Error()}
	}
	start := utils.FormatClock(startMin)

	var existing Booking
	result := tx.Raw(`
		SELECT *
		FROM bookings
		WHERE provider_id = ?
		  AND preferred_date = ?
		  AND (preferred_time_slot = ? OR preferred_time_slot LIKE ?)
		  AND status IN ?
		  AND deleted_at IS NULL
		LIMIT 1
		FOR UPDATE
	`, providerID, date.Format(utils.DateLayout), start, start+"-%", ActiveStatuses).
		Scan(&existing)
	if result.Error != nil {
		return false, result.Error
	}
	return existing.ID != 0, nil
}

// ConflictOnDuplicate maps a unique-index violation onto a ConflictError.
// The FOR UPDATE probes cannot see a competitor's uncommitted insert, so
// under a true race the loser's insert is rejected by the unique index
// instead; this keeps that path on the same 409 contract as the probe.
// Any other error passes through unchanged.
func ConflictOnDuplicate(err error, resource, reason string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return &utils.ConflictError{Resource: resource, Reason: reason}
	}
	return err
}

// ActiveSlotsForDate returns the preferred time slots of the provider's
// active bookings on one date. Read path for the availability projection.
func ActiveSlotsForDate(tx *gorm.DB, providerID uint, date time.Time) ([]string, error) {
	var slots []string
	err := tx.Model(&Booking{}).
		Where("provider_id = ? AND preferred_date = ? AND status IN ?", providerID, date, ActiveStatuses).
		Pluck("preferred_time_slot", &slots).Error
	return slots, err
}
