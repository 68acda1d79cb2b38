package domain

import (
	"time"

	"github.com/m04kA/PMS-FacilityService/pkg/types"
)

// Slot is a derived fixed-width candidate interval within a single day,
// tagged available or not. Slots are computed on demand and never stored.
type Slot struct {
	StartTime time.Time
	EndTime   time.Time
	Available bool
}

// ComputeSlots derives the slot grid of a facility for the given date.
// The grid covers [availableFrom, availableTo) in granularity-minute steps;
// a trailing partial slot is dropped. A slot is available when the date's
// weekday is bookable and no active booking overlaps the slot's half-open
// interval. On a closed weekday the full grid is still returned with every
// slot unavailable.
//
// Pure function: the same inputs always produce the same sequence.
func ComputeSlots(f *Facility, date time.Time, existing []*Booking, granularityMinutes int) []Slot {
	if granularityMinutes <= 0 {
		granularityMinutes = DefaultSlotGranularityMinutes
	}

	from, to := f.Window()
	dayOpen := f.AvailableDays.Contains(date.Weekday())

	slots := make([]Slot, 0)

	cursor := from
	for cursor.IsBefore(to) {
		slotEnd, err := cursor.AddMinutes(granularityMinutes)
		if err != nil {
			// Сетка уперлась в конец суток
			break
		}
		if slotEnd.IsAfter(to) {
			break
		}

		start := clockOnDate(date, cursor)
		end := clockOnDate(date, slotEnd)

		slots = append(slots, Slot{
			StartTime: start,
			EndTime:   end,
			Available: dayOpen && !HasConflict(start, end, existing),
		})

		cursor = slotEnd
	}

	return slots
}

// clockOnDate pins a wall-clock time to the given date, preserving the
// date's location. 24:00 lands on the next day's midnight.
func clockOnDate(date time.Time, clock types.TimeString) time.Time {
	midnight := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return midnight.Add(time.Duration(clock.Minutes()) * time.Minute)
}
