package domain

import "time"

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Back-to-back spans never overlap, so a booking
// ending at 11:00 does not conflict with one starting at 11:00.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// FindConflicts returns every active booking whose span overlaps
// [start, end). Bookings in terminal statuses never conflict, which
// deliberately lets a freed slot be rebooked.
func FindConflicts(start, end time.Time, existing []*Booking) []*Booking {
	var conflicts []*Booking
	for _, b := range existing {
		if !b.IsActive() {
			continue
		}
		if Overlaps(start, end, b.StartTime, b.EndTime) {
			conflicts = append(conflicts, b)
		}
	}
	return conflicts
}

// FirstConflict returns the first overlapping active booking, or nil
func FirstConflict(start, end time.Time, existing []*Booking) *Booking {
	for _, b := range existing {
		if !b.IsActive() {
			continue
		}
		if Overlaps(start, end, b.StartTime, b.EndTime) {
			return b
		}
	}
	return nil
}

// HasConflict reports whether [start, end) overlaps any active booking
func HasConflict(start, end time.Time, existing []*Booking) bool {
	return FirstConflict(start, end, existing) != nil
}
