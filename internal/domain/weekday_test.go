package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekdaySet_BitmaskEncoding(t *testing.T) {
	// Monday=1 ... Sunday=64
	cases := []struct {
		day  time.Weekday
		mask WeekdaySet
	}{
		{time.Monday, 1},
		{time.Tuesday, 2},
		{time.Wednesday, 4},
		{time.Thursday, 8},
		{time.Friday, 16},
		{time.Saturday, 32},
		{time.Sunday, 64},
	}

	for _, tc := range cases {
		t.Run(tc.day.String(), func(t *testing.T) {
			s := NewWeekdaySet(tc.day)
			assert.Equal(t, tc.mask, s)
			assert.True(t, s.Contains(tc.day))

			for _, other := range cases {
				if other.day != tc.day {
					assert.False(t, s.Contains(other.day))
				}
			}
		})
	}
}

func TestWeekdaySet_AllAndEmpty(t *testing.T) {
	assert.Equal(t, WeekdaySet(127), AllWeekdays)

	for d := time.Sunday; d <= time.Saturday; d++ {
		assert.True(t, AllWeekdays.Contains(d))
	}

	var empty WeekdaySet
	assert.True(t, empty.IsEmpty())
	for d := time.Sunday; d <= time.Saturday; d++ {
		assert.False(t, empty.Contains(d))
	}
}

func TestWeekdaySet_Days(t *testing.T) {
	s := NewWeekdaySet(time.Friday, time.Monday, time.Sunday)

	// ISO order: Monday first, Sunday last
	assert.Equal(t, []time.Weekday{time.Monday, time.Friday, time.Sunday}, s.Days())
	assert.Equal(t, "Mon,Fri,Sun", s.String())
}

func TestWeekdaySet_ScanValue(t *testing.T) {
	var s WeekdaySet
	require.NoError(t, s.Scan(int64(5))) // Monday + Wednesday
	assert.True(t, s.Contains(time.Monday))
	assert.True(t, s.Contains(time.Wednesday))
	assert.False(t, s.Contains(time.Tuesday))

	v, err := s.Value()
	require.NoError(t, err)
	assert.Equal(t, int64(5), v)

	// NULL reads as every day enabled
	require.NoError(t, s.Scan(nil))
	assert.Equal(t, AllWeekdays, s)

	assert.Error(t, s.Scan(int64(200)))
	assert.Error(t, s.Scan("monday"))
}

func TestWeekdaySet_ISONumbers(t *testing.T) {
	s, err := WeekdaySetFromISONumbers([]int{1, 3, 7})
	require.NoError(t, err)
	assert.True(t, s.Contains(time.Monday))
	assert.True(t, s.Contains(time.Wednesday))
	assert.True(t, s.Contains(time.Sunday))
	assert.False(t, s.Contains(time.Saturday))

	assert.Equal(t, []int{1, 3, 7}, s.ISONumbers())
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, AllWeekdays.ISONumbers())

	_, err = WeekdaySetFromISONumbers([]int{0})
	assert.Error(t, err)
	_, err = WeekdaySetFromISONumbers([]int{8})
	assert.Error(t, err)
}
