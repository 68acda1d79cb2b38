package facilities

import "errors"

var (
	// ErrFacilityNotFound возвращается, когда площадка не найдена
	ErrFacilityNotFound = errors.New("facility not found")

	// ErrBuildingNotFound возвращается, когда здание не найдено
	ErrBuildingNotFound = errors.New("building not found")

	// ErrBuildingUnavailable возвращается, когда BuildingService недоступен
	ErrBuildingUnavailable = errors.New("building service unavailable")

	// ErrDuplicateName возвращается при попытке создать площадку с занятым именем
	ErrDuplicateName = errors.New("facility name already taken in this building")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
