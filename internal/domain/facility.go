package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/PMS-FacilityService/pkg/types"
)

// FacilityType categorizes a bookable facility within a building
type FacilityType string

const (
	FacilityGym         FacilityType = "gym"
	FacilityLaundry     FacilityType = "laundry"
	FacilityMeetingRoom FacilityType = "meeting_room"
	FacilityPartyRoom   FacilityType = "party_room"
	FacilitySauna       FacilityType = "sauna"
	FacilityPool        FacilityType = "pool"
	FacilityPlayground  FacilityType = "playground"
	FacilityParking     FacilityType = "parking"
	FacilityStorage     FacilityType = "storage"
	FacilityGarden      FacilityType = "garden"
	FacilityBBQ         FacilityType = "bbq"
	FacilityBikeStorage FacilityType = "bike_storage"
	FacilityOther       FacilityType = "other"
)

// IsValid returns true for a known facility type
func (t FacilityType) IsValid() bool {
	switch t {
	case FacilityGym, FacilityLaundry, FacilityMeetingRoom, FacilityPartyRoom,
		FacilitySauna, FacilityPool, FacilityPlayground, FacilityParking,
		FacilityStorage, FacilityGarden, FacilityBBQ, FacilityBikeStorage,
		FacilityOther:
		return true
	}
	return false
}

// Facility represents a shared building facility that residents can book.
// The policy knobs (availability window, duration and advance limits,
// capacity, approval requirement) drive booking validation; the pricing
// knobs drive the fee quote.
type Facility struct {
	ID          uuid.UUID
	BuildingID  uuid.UUID
	Name        string
	Type        FacilityType
	Description *string
	Location    *string
	Rules       *string

	Capacity         *int
	IsBookable       bool
	RequiresApproval bool
	MaxBookingHours  *int
	MaxAdvanceDays   *int
	MinAdvanceHours  *int
	AvailableFrom    *types.TimeString // nil = no lower bound
	AvailableTo      *types.TimeString // nil = no upper bound
	AvailableDays    WeekdaySet

	HourlyFee     *float64
	DepositAmount *float64

	Amenities []string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FacilityListFilter narrows a building's facility listing
type FacilityListFilter struct {
	Type            *FacilityType // optional type filter
	IncludeInactive bool          // include deactivated facilities
}

// Window returns the facility's daily booking window, defaulting to the
// whole day on an unset bound
func (f *Facility) Window() (types.TimeString, types.TimeString) {
	from := types.TimeString("00:00")
	to := types.EndOfDay

	if f.AvailableFrom != nil && !f.AvailableFrom.IsZero() {
		from = *f.AvailableFrom
	}
	if f.AvailableTo != nil && !f.AvailableTo.IsZero() {
		to = *f.AvailableTo
	}

	return from, to
}

// IsOpenOn returns true if the facility accepts bookings on the given weekday
func (f *Facility) IsOpenOn(day time.Weekday) bool {
	return f.AvailableDays.Contains(day)
}

// AcceptsBookings returns true when the facility can take new bookings at all
func (f *Facility) AcceptsBookings() bool {
	return f.IsActive && f.IsBookable
}

// InitialStatus returns the status a freshly validated booking starts in
func (f *Facility) InitialStatus() BookingStatus {
	if f.RequiresApproval {
		return StatusPending
	}
	return StatusApproved
}
