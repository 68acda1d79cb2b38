package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PMS-FacilityService/pkg/ptr"
	"github.com/m04kA/PMS-FacilityService/pkg/types"
)

// newTestFacility возвращает площадку с открытым окном 09:00-18:00 по всем дням
// и без дополнительных ограничений. Тесты донастраивают нужные поля.
func newTestFacility() *Facility {
	return &Facility{
		ID:            uuid.New(),
		BuildingID:    uuid.New(),
		Name:          "Conference Room A",
		Type:          FacilityMeetingRoom,
		IsBookable:    true,
		IsActive:      true,
		AvailableFrom: ptr.Ptr(types.TimeString("09:00")),
		AvailableTo:   ptr.Ptr(types.TimeString("18:00")),
		AvailableDays: AllWeekdays,
	}
}

// mondayAt строит время в понедельник 2025-03-03 с заданными часами и минутами.
func mondayAt(hour, minute int) time.Time {
	return time.Date(2025, 3, 3, hour, minute, 0, 0, time.UTC)
}

func TestCheckPolicy_InvalidTimeRange(t *testing.T) {
	f := newTestFacility()
	now := mondayAt(8, 0)

	cases := []struct {
		name       string
		start, end time.Time
	}{
		{"end before start", mondayAt(12, 0), mondayAt(10, 0)},
		{"zero duration", mondayAt(12, 0), mondayAt(12, 0)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := CheckPolicy(f, &BookingRequest{FacilityID: f.ID, StartTime: tc.start, EndTime: tc.end}, now)
			assert.ErrorIs(t, err, ErrInvalidTimeRange)
		})
	}
}

func TestCheckPolicy_AvailabilityWindow(t *testing.T) {
	f := newTestFacility()
	now := mondayAt(0, 0)

	cases := []struct {
		name       string
		start, end time.Time
		wantErr    error
	}{
		{"inside window", mondayAt(10, 0), mondayAt(12, 0), nil},
		{"exact window bounds", mondayAt(9, 0), mondayAt(18, 0), nil},
		{"starts before opening", mondayAt(8, 30), mondayAt(10, 0), ErrOutsideAvailabilityWindow},
		{"ends after closing", mondayAt(17, 0), mondayAt(18, 30), ErrOutsideAvailabilityWindow},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := CheckPolicy(f, &BookingRequest{FacilityID: f.ID, StartTime: tc.start, EndTime: tc.end}, now)
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}

func TestCheckPolicy_ClosedWeekday(t *testing.T) {
	f := newTestFacility()
	f.AvailableDays = NewWeekdaySet(time.Tuesday, time.Wednesday)
	now := mondayAt(0, 0)

	err := CheckPolicy(f, &BookingRequest{FacilityID: f.ID, StartTime: mondayAt(10, 0), EndTime: mondayAt(11, 0)}, now)
	assert.ErrorIs(t, err, ErrOutsideAvailabilityWindow)
}

func TestCheckPolicy_EmptyWeekdaySet(t *testing.T) {
	// Пустой набор дней означает, что площадка закрыта всегда.
	f := newTestFacility()
	f.AvailableDays = 0
	now := mondayAt(0, 0)

	for dayOffset := 0; dayOffset < 7; dayOffset++ {
		start := mondayAt(10, 0).AddDate(0, 0, dayOffset)
		end := start.Add(time.Hour)
		err := CheckPolicy(f, &BookingRequest{FacilityID: f.ID, StartTime: start, EndTime: end}, now)
		assert.ErrorIs(t, err, ErrOutsideAvailabilityWindow, "day offset %d", dayOffset)
	}
}

func TestCheckPolicy_MaxDuration(t *testing.T) {
	// Лимит 2 часа, запрос на 3 часа в рамках окна доступности.
	f := newTestFacility()
	f.MaxBookingHours = ptr.Ptr(2)
	now := mondayAt(0, 0)

	err := CheckPolicy(f, &BookingRequest{FacilityID: f.ID, StartTime: mondayAt(10, 0), EndTime: mondayAt(13, 0)}, now)
	assert.ErrorIs(t, err, ErrExceedsMaxDuration)

	// Ровно в лимит — проходит.
	err = CheckPolicy(f, &BookingRequest{FacilityID: f.ID, StartTime: mondayAt(10, 0), EndTime: mondayAt(12, 0)}, now)
	assert.NoError(t, err)
}

func TestCheckPolicy_Capacity(t *testing.T) {
	f := newTestFacility()
	f.Capacity = ptr.Ptr(10)
	now := mondayAt(0, 0)

	req := &BookingRequest{FacilityID: f.ID, StartTime: mondayAt(10, 0), EndTime: mondayAt(11, 0)}

	req.Attendees = ptr.Ptr(11)
	assert.ErrorIs(t, CheckPolicy(f, req, now), ErrExceedsCapacity)

	req.Attendees = ptr.Ptr(10)
	assert.NoError(t, CheckPolicy(f, req, now))

	// Без указания числа участников проверка не выполняется.
	req.Attendees = nil
	assert.NoError(t, CheckPolicy(f, req, now))
}

func TestCheckPolicy_AdvanceLimits(t *testing.T) {
	now := mondayAt(9, 0)

	t.Run("too soon", func(t *testing.T) {
		f := newTestFacility()
		f.MinAdvanceHours = ptr.Ptr(24)

		// Старт через 2 часа при требовании минимум за сутки.
		err := CheckPolicy(f, &BookingRequest{FacilityID: f.ID, StartTime: mondayAt(11, 0), EndTime: mondayAt(12, 0)}, now)
		assert.ErrorIs(t, err, ErrTooSoonToBook)

		// Старт ровно через сутки — проходит.
		start := now.Add(24 * time.Hour)
		err = CheckPolicy(f, &BookingRequest{FacilityID: f.ID, StartTime: start, EndTime: start.Add(time.Hour)}, now)
		assert.NoError(t, err)
	})

	t.Run("too far", func(t *testing.T) {
		f := newTestFacility()
		f.MaxAdvanceDays = ptr.Ptr(7)

		start := now.Add(8 * 24 * time.Hour)
		err := CheckPolicy(f, &BookingRequest{FacilityID: f.ID, StartTime: start, EndTime: start.Add(time.Hour)}, now)
		assert.ErrorIs(t, err, ErrTooFarInAdvance)

		start = now.Add(7 * 24 * time.Hour)
		err = CheckPolicy(f, &BookingRequest{FacilityID: f.ID, StartTime: start, EndTime: start.Add(time.Hour)}, now)
		assert.NoError(t, err)
	})
}

func TestCheckPolicy_RuleOrder(t *testing.T) {
	// Запрос нарушает сразу несколько правил: перевёрнутый интервал,
	// закрытый день и превышение лимита. Возвращается первая проверка.
	f := newTestFacility()
	f.AvailableDays = NewWeekdaySet(time.Friday)
	f.MaxBookingHours = ptr.Ptr(1)
	now := mondayAt(0, 0)

	err := CheckPolicy(f, &BookingRequest{FacilityID: f.ID, StartTime: mondayAt(14, 0), EndTime: mondayAt(10, 0)}, now)
	assert.ErrorIs(t, err, ErrInvalidTimeRange)

	// С корректным интервалом первой срабатывает проверка окна.
	err = CheckPolicy(f, &BookingRequest{FacilityID: f.ID, StartTime: mondayAt(10, 0), EndTime: mondayAt(14, 0)}, now)
	assert.ErrorIs(t, err, ErrOutsideAvailabilityWindow)
}

func TestCheckPolicy_UnsetLimitsAreSkipped(t *testing.T) {
	// Площадка без единого ограничения: любой корректный интервал внутри
	// суток проходит проверку.
	f := newTestFacility()
	f.AvailableFrom = nil
	f.AvailableTo = nil
	now := mondayAt(0, 0)

	err := CheckPolicy(f, &BookingRequest{FacilityID: f.ID, StartTime: mondayAt(0, 0), EndTime: mondayAt(23, 59)}, now)
	require.NoError(t, err)
}

func TestCheckPolicy_BookingEndingAtMidnight(t *testing.T) {
	// Бронь до полуночи при окне до 24:00.
	f := newTestFacility()
	f.AvailableFrom = ptr.Ptr(types.TimeString("20:00"))
	f.AvailableTo = ptr.Ptr(types.EndOfDay)
	now := mondayAt(0, 0)

	start := mondayAt(22, 0)
	end := time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC)
	err := CheckPolicy(f, &BookingRequest{FacilityID: f.ID, StartTime: start, EndTime: end}, now)
	assert.NoError(t, err)
}

func TestCheckPolicy_ScenarioMaxDurationOverWindow(t *testing.T) {
	// Площадка с лимитом 2 часа и окном 09:00-18:00 во все дни.
	// Запрос на понедельник 10:00-13:00 отклоняется по длительности.
	f := newTestFacility()
	f.MaxBookingHours = ptr.Ptr(2)
	now := time.Date(2025, 2, 24, 12, 0, 0, 0, time.UTC)

	err := CheckPolicy(f, &BookingRequest{
		FacilityID: f.ID,
		StartTime:  mondayAt(10, 0),
		EndTime:    mondayAt(13, 0),
	}, now)

	assert.ErrorIs(t, err, ErrExceedsMaxDuration)
	assert.NotErrorIs(t, err, ErrOutsideAvailabilityWindow)
}
