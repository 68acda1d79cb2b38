package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// BookingRequest is the input to booking validation
type BookingRequest struct {
	FacilityID uuid.UUID
	StartTime  time.Time
	EndTime    time.Time
	Purpose    *string
	Attendees  *int
}

// Duration returns the requested span length
func (r *BookingRequest) Duration() time.Duration {
	return r.EndTime.Sub(r.StartTime)
}

// BookingDraft is the admissible, priced outcome of validation, to be
// persisted by the caller as a new Booking
type BookingDraft struct {
	Fee           float64
	Deposit       float64
	InitialStatus BookingStatus
}

// ValidateAndPrice runs the full validation pipeline for a booking request:
// the facility policy first (fail-fast on its violations), then conflict
// detection against the supplied active bookings, then the fee quote and
// the initial lifecycle status.
//
// Pure orchestration: storage is never touched here, the caller supplies
// existing bookings already fetched for the facility and date range.
func ValidateAndPrice(f *Facility, req *BookingRequest, existing []*Booking, now time.Time) (*BookingDraft, error) {
	if err := CheckPolicy(f, req, now); err != nil {
		return nil, err
	}

	if conflict := FirstConflict(req.StartTime, req.EndTime, existing); conflict != nil {
		return nil, fmt.Errorf("%w: overlaps booking %s (%s - %s)", ErrSlotConflict,
			conflict.ID, conflict.StartTime.Format(time.RFC3339),
			conflict.EndTime.Format(time.RFC3339))
	}

	quote := QuoteFee(f, req.StartTime, req.EndTime)

	return &BookingDraft{
		Fee:           quote.Fee,
		Deposit:       quote.Deposit,
		InitialStatus: f.InitialStatus(),
	}, nil
}
