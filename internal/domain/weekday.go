package domain

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// WeekdaySet is the set of weekdays on which a facility accepts bookings.
// Bit 0 is Monday through bit 6 Sunday, so Monday=1, Tuesday=2, Wednesday=4,
// Thursday=8, Friday=16, Saturday=32, Sunday=64. Stored as a SMALLINT bitmask.
type WeekdaySet uint8

// AllWeekdays is the set with every day of the week enabled
const AllWeekdays WeekdaySet = 127

// NewWeekdaySet builds a set from the given weekdays
func NewWeekdaySet(days ...time.Weekday) WeekdaySet {
	var s WeekdaySet
	for _, d := range days {
		s = s.With(d)
	}
	return s
}

// With returns a copy of the set with the given day enabled
func (s WeekdaySet) With(d time.Weekday) WeekdaySet {
	return s | 1<<isoIndex(d)
}

// Contains returns true if the given weekday is in the set
func (s WeekdaySet) Contains(d time.Weekday) bool {
	return s&(1<<isoIndex(d)) != 0
}

// IsEmpty returns true when no weekday is enabled. A facility with an empty
// set fails the availability window check for every request.
func (s WeekdaySet) IsEmpty() bool {
	return s == 0
}

// Days returns the enabled weekdays in ISO order, Monday first
func (s WeekdaySet) Days() []time.Weekday {
	days := make([]time.Weekday, 0, 7)
	for i := 0; i < 7; i++ {
		if s&(1<<i) != 0 {
			days = append(days, fromISOIndex(i))
		}
	}
	return days
}

// ISONumbers returns the enabled weekdays as ISO numbers, Monday=1 through
// Sunday=7. This is the wire representation of the set.
func (s WeekdaySet) ISONumbers() []int {
	nums := make([]int, 0, 7)
	for i := 0; i < 7; i++ {
		if s&(1<<i) != 0 {
			nums = append(nums, i+1)
		}
	}
	return nums
}

// WeekdaySetFromISONumbers builds a set from ISO weekday numbers
func WeekdaySetFromISONumbers(days []int) (WeekdaySet, error) {
	var s WeekdaySet
	for _, d := range days {
		if d < 1 || d > 7 {
			return 0, fmt.Errorf("domain: weekday number %d is out of range 1..7", d)
		}
		s |= 1 << (d - 1)
	}
	return s, nil
}

// String renders the set like "Mon,Tue,Fri" for logs and error details
func (s WeekdaySet) String() string {
	if s.IsEmpty() {
		return "none"
	}
	if s == AllWeekdays {
		return "all"
	}

	names := make([]string, 0, 7)
	for _, d := range s.Days() {
		names = append(names, d.String()[:3])
	}
	return strings.Join(names, ",")
}

// Scan implements sql.Scanner. NULL reads as all days enabled.
func (s *WeekdaySet) Scan(value interface{}) error {
	if value == nil {
		*s = AllWeekdays
		return nil
	}

	v, ok := value.(int64)
	if !ok {
		return fmt.Errorf("domain: cannot scan weekday set from %T", value)
	}
	if v < 0 || v > int64(AllWeekdays) {
		return fmt.Errorf("domain: weekday mask %d is out of range", v)
	}

	*s = WeekdaySet(v)
	return nil
}

// Value implements driver.Valuer
func (s WeekdaySet) Value() (driver.Value, error) {
	if s > AllWeekdays {
		return nil, fmt.Errorf("domain: weekday mask %d is out of range", s)
	}
	return int64(s), nil
}

// isoIndex maps time.Weekday (Sunday=0) to the ISO bit index (Monday=0)
func isoIndex(d time.Weekday) int {
	return (int(d) + 6) % 7
}

func fromISOIndex(i int) time.Weekday {
	return time.Weekday((i + 1) % 7)
}
