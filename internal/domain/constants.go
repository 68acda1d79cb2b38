package domain

// Default policy values
const (
	DefaultSlotGranularityMinutes = 30
)

// Business validation constants
const (
	MinSlotGranularityMinutes = 5
	MaxSlotGranularityMinutes = 480 // 8 hours

	MaxBookingHoursLimit = 168 // 1 week
	MaxAdvanceDaysLimit  = 365 // 1 year
	MaxAdvanceHoursLimit = 720 // 30 days of mandatory notice
	MaxFacilityCapacity  = 10000

	MaxNameLength    = 200
	MaxPurposeLength = 500
	MaxReasonLength  = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses список статусов, блокирующих слот объекта
// Используется при поиске конфликтующих бронирований
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusApproved,
}

// TerminalStatuses список конечных статусов жизненного цикла
var TerminalStatuses = []BookingStatus{
	StatusRejected,
	StatusCancelled,
	StatusCompleted,
	StatusNoShow,
}
