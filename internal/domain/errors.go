package domain

import "errors"

// Validation violations, one sentinel per rejection rule. Checks run in a
// fixed order and the first violation wins; callers branch with errors.Is
// and the wrapped detail carries the offending values.
var (
	// ErrInvalidTimeRange возвращается, когда конец интервала не позже начала
	ErrInvalidTimeRange = errors.New("end time must be after start time")

	// ErrOutsideAvailabilityWindow возвращается при выходе за окно доступности объекта
	ErrOutsideAvailabilityWindow = errors.New("requested time is outside the facility availability window")

	// ErrExceedsMaxDuration возвращается при превышении максимальной длительности
	ErrExceedsMaxDuration = errors.New("booking exceeds the maximum allowed duration")

	// ErrExceedsCapacity возвращается при превышении вместимости объекта
	ErrExceedsCapacity = errors.New("attendees exceed the facility capacity")

	// ErrTooSoonToBook возвращается при нарушении минимального срока уведомления
	ErrTooSoonToBook = errors.New("booking start is too soon")

	// ErrTooFarInAdvance возвращается при выходе за горизонт бронирования
	ErrTooFarInAdvance = errors.New("booking start is too far in advance")

	// ErrSlotConflict возвращается при пересечении с активным бронированием
	ErrSlotConflict = errors.New("time slot conflicts with an existing booking")

	// ErrInvalidTransition возвращается при недопустимом переходе статуса
	ErrInvalidTransition = errors.New("invalid booking status transition")
)
