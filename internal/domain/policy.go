package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/PMS-FacilityService/pkg/types"
)

// CheckPolicy validates a booking request against the facility's declared
// booking policy. Checks run in a fixed order, fail-fast:
//  1. time range sanity
//  2. availability window (weekday + time-of-day of both endpoints)
//  3. maximum duration
//  4. capacity
//  5. minimum advance notice
//  6. maximum advance horizon
//
// Pure function of its inputs; conflict detection is a separate concern
// (see FindConflicts).
func CheckPolicy(f *Facility, req *BookingRequest, now time.Time) error {
	if !req.EndTime.After(req.StartTime) {
		return fmt.Errorf("%w: start=%s, end=%s", ErrInvalidTimeRange,
			req.StartTime.Format(time.RFC3339), req.EndTime.Format(time.RFC3339))
	}

	if err := checkAvailabilityWindow(f, req); err != nil {
		return err
	}

	if f.MaxBookingHours != nil {
		limit := time.Duration(*f.MaxBookingHours) * time.Hour
		if req.Duration() > limit {
			return fmt.Errorf("%w: booked %s, limit %dh", ErrExceedsMaxDuration,
				req.Duration(), *f.MaxBookingHours)
		}
	}

	if f.Capacity != nil && req.Attendees != nil && *req.Attendees > *f.Capacity {
		return fmt.Errorf("%w: attendees=%d, capacity=%d", ErrExceedsCapacity,
			*req.Attendees, *f.Capacity)
	}

	if f.MinAdvanceHours != nil {
		earliest := now.Add(time.Duration(*f.MinAdvanceHours) * time.Hour)
		if req.StartTime.Before(earliest) {
			return fmt.Errorf("%w: start=%s, earliest allowed=%s (%dh notice)",
				ErrTooSoonToBook, req.StartTime.Format(time.RFC3339),
				earliest.Format(time.RFC3339), *f.MinAdvanceHours)
		}
	}

	if f.MaxAdvanceDays != nil {
		latest := now.Add(time.Duration(*f.MaxAdvanceDays) * 24 * time.Hour)
		if req.StartTime.After(latest) {
			return fmt.Errorf("%w: start=%s, latest allowed=%s (%dd horizon)",
				ErrTooFarInAdvance, req.StartTime.Format(time.RFC3339),
				latest.Format(time.RFC3339), *f.MaxAdvanceDays)
		}
	}

	return nil
}

// checkAvailabilityWindow verifies the weekday of the start and the
// time-of-day of both endpoints against [availableFrom, availableTo],
// bounds inclusive
func checkAvailabilityWindow(f *Facility, req *BookingRequest) error {
	day := req.StartTime.Weekday()
	if !f.AvailableDays.Contains(day) {
		return fmt.Errorf("%w: %s is not a bookable day (available: %s)",
			ErrOutsideAvailabilityWindow, day, f.AvailableDays)
	}

	from, to := f.Window()
	startClock := types.NewTimeString(req.StartTime)
	endClock := types.NewTimeString(req.EndTime)
	// An end exactly at midnight reads as 24:00 of the booking day
	if endClock == "00:00" {
		endClock = types.EndOfDay
	}

	if startClock.IsBefore(from) || startClock.IsAfter(to) ||
		endClock.IsBefore(from) || endClock.IsAfter(to) {
		return fmt.Errorf("%w: booked %s-%s, window %s-%s",
			ErrOutsideAvailabilityWindow, startClock, endClock, from, to)
	}

	return nil
}
