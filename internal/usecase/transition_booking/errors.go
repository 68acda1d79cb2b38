package transition_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("transition_booking: booking not found")

	// ErrAccessDenied возвращается, когда пользователь не имеет отношения
	// к бронированию (не автор и не управляющий зданием)
	ErrAccessDenied = errors.New("transition_booking: access denied")

	// ErrBuildingUnavailable возвращается, когда BuildingService недоступен
	// и определить полномочия пользователя невозможно
	ErrBuildingUnavailable = errors.New("transition_booking: building service unavailable")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("transition_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("transition_booking: internal error")
)

// Недопустимые переходы жизненного цикла пробрасываются как
// domain.ErrInvalidTransition с контекстом нарушения.
