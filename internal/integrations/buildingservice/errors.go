package buildingservice

import "errors"

var (
	// ErrBuildingNotFound возвращается, когда здание не найдено
	ErrBuildingNotFound = errors.New("building not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("buildingservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("buildingservice client: invalid response")

	// ErrUnavailable возвращается, когда BuildingService недоступен
	// Проверки доступа при этом не деградируют: вызывающая сторона
	// обязана отказать в операции
	ErrUnavailable = errors.New("buildingservice client: service unavailable")
)
