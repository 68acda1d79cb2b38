package domain

import (
	"time"

	"github.com/google/uuid"
)

// BookingStatus represents the lifecycle state of a facility booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusApproved  BookingStatus = "approved"
	StatusRejected  BookingStatus = "rejected"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
	StatusNoShow    BookingStatus = "no_show"
)

// IsValid returns true for a known booking status
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCancelled,
		StatusCompleted, StatusNoShow:
		return true
	}
	return false
}

// IsTerminal returns true for statuses with no outgoing transitions
func (s BookingStatus) IsTerminal() bool {
	switch s {
	case StatusRejected, StatusCancelled, StatusCompleted, StatusNoShow:
		return true
	}
	return false
}

// IsActive returns true while the status still blocks the facility's time slot
func (s BookingStatus) IsActive() bool {
	return s == StatusPending || s == StatusApproved
}

// Booking represents a single reservation of a facility for a time interval.
// StartTime/EndTime are wall-clock instants in the facility's locale; the
// reserved span is the half-open interval [StartTime, EndTime).
type Booking struct {
	ID          uuid.UUID
	FacilityID  uuid.UUID
	RequesterID uuid.UUID
	StartTime   time.Time
	EndTime     time.Time
	Status      BookingStatus
	Purpose     *string
	Attendees   *int

	// Pricing snapshot taken at creation time
	TotalFee   float64
	DepositDue float64

	ApprovedBy         *uuid.UUID
	ApprovedAt         *time.Time
	RejectedBy         *uuid.UUID
	RejectedAt         *time.Time
	RejectionReason    *string
	CancelledAt        *time.Time
	CancellationReason *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Duration returns the length of the booked span
func (b *Booking) Duration() time.Duration {
	return b.EndTime.Sub(b.StartTime)
}

// IsActive returns true while the booking still blocks its time slot
func (b *Booking) IsActive() bool {
	return b.Status.IsActive()
}

// CanBeCancelled returns true if the booking may still be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.IsActive()
}

// IsOwnedBy returns true if the booking belongs to the given user
func (b *Booking) IsOwnedBy(userID uuid.UUID) bool {
	return b.RequesterID == userID
}

// FacilityBookingsFilter narrows a facility's booking listing
type FacilityBookingsFilter struct {
	FacilityID uuid.UUID
	Status     *BookingStatus // optional status filter
	From       *time.Time     // optional period start
	To         *time.Time     // optional period end
	ActiveOnly bool           // only slot-blocking statuses (pending, approved)
}
