package create_booking

import "errors"

var (
	// ErrFacilityNotFound возвращается, когда площадка не найдена
	ErrFacilityNotFound = errors.New("create_booking: facility not found")

	// ErrFacilityNotBookable возвращается, когда площадка деактивирована
	// или закрыта для бронирования
	ErrFacilityNotBookable = errors.New("create_booking: facility is not bookable")

	// ErrNotBuildingMember возвращается, когда пользователь не относится
	// к зданию площадки (не житель и не управляющий)
	ErrNotBuildingMember = errors.New("create_booking: user is not a member of the building")

	// ErrBuildingUnavailable возвращается, когда BuildingService недоступен
	// и проверить принадлежность пользователя к зданию невозможно
	ErrBuildingUnavailable = errors.New("create_booking: building service unavailable")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

// Нарушения политики бронирования и конфликты слотов пробрасываются
// как сентинелы internal/domain (ErrInvalidTimeRange, ErrSlotConflict и далее),
// чтобы обработчики ветвились через errors.Is по единой таксономии.
