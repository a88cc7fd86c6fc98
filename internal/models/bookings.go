package models

import (
	"time"

	"github.com/google/uuid"
)

// BookingStatus tracks a reservation through its life. New bookings are
// admitted directly into confirmed; pending exists for host-driven workflows.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

// ParseBookingStatus validates a status string against the closed enumeration.
func ParseBookingStatus(s string) (BookingStatus, bool) {
	switch BookingStatus(s) {
	case BookingPending, BookingConfirmed, BookingCompleted, BookingCancelled:
		return BookingStatus(s), true
	}
	return "", false
}

// Active reports whether the booking still blocks its date range. Only
// cancelled bookings release their dates.
func (s BookingStatus) Active() bool {
	return s != BookingCancelled
}

type Booking struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;index;not null" json:"userId"`
	CarID  uuid.UUID `gorm:"type:uuid;index;not null" json:"carId"`
	// Inclusive calendar dates; StartDate <= EndDate always holds.
	StartDate Date `gorm:"type:date;not null" json:"startDate"`
	EndDate   Date `gorm:"type:date;not null" json:"endDate"`
	// TotalPrice is fixed at admission time (car price x inclusive day count)
	// and never changes afterwards.
	TotalPrice float64       `gorm:"not null" json:"totalPrice"`
	Status     BookingStatus `gorm:"type:varchar(16);index;not null" json:"status"`
	CreatedAt  time.Time     `json:"createdAt"`
	UpdatedAt  time.Time     `json:"updatedAt"`
}

// OverlapsRange reports whether the booking shares a calendar day with the
// inclusive range [start, end].
func (b *Booking) OverlapsRange(start, end Date) bool {
	return Overlaps(b.StartDate, b.EndDate, start, end)
}

// BookingWithCar is the renter-facing projection of a booking joined with a
// summary of the booked car.
type BookingWithCar struct {
	Booking
	Car *CarSummary `json:"car,omitempty"`
}

// BookingWithUser is the host-facing projection of a booking joined with the
// renter's contact details.
type BookingWithUser struct {
	Booking
	User *UserSummary `json:"user,omitempty"`
}
