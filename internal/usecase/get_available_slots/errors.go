package get_available_slots

import "errors"

var (
	// ErrFacilityNotFound возвращается, когда площадка не найдена
	// или деактивирована
	ErrFacilityNotFound = errors.New("facility not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
