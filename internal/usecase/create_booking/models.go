package create_booking

import (
	"time"

	"github.com/google/uuid"
)

// Request модель запроса на создание бронирования
type Request struct {
	RequesterID uuid.UUID // ID пользователя из заголовка авторизации
	FacilityID  uuid.UUID // ID площадки
	StartTime   time.Time // Начало интервала
	EndTime     time.Time // Конец интервала (полуоткрытый [start, end))
	Purpose     *string   // Цель бронирования (опционально)
	Attendees   *int      // Ожидаемое число участников (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID          uuid.UUID // ID созданного бронирования
	FacilityID  uuid.UUID // ID площадки
	RequesterID uuid.UUID // ID пользователя
	StartTime   time.Time // Начало интервала
	EndTime     time.Time // Конец интервала
	Status      string    // Начальный статус (pending или approved)
	Purpose     *string   // Цель бронирования
	Attendees   *int      // Число участников

	// Ценовой снимок, зафиксированный при создании
	TotalFee   float64 // Стоимость по тарифу площадки
	DepositDue float64 // Возвращаемый депозит

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
