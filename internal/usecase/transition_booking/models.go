package transition_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/PMS-FacilityService/internal/domain"
)

// Request модель запроса на переход бронирования
type Request struct {
	BookingID uuid.UUID               // ID бронирования
	ActorID   uuid.UUID               // ID пользователя, выполняющего действие
	Action    domain.TransitionAction // approve, reject, cancel, complete, no_show
	Reason    *string                 // Причина (обязательна для reject)
}

// Response модель ответа с бронированием после перехода
type Response struct {
	ID          uuid.UUID // ID бронирования
	FacilityID  uuid.UUID // ID площадки
	RequesterID uuid.UUID // ID автора бронирования
	StartTime   time.Time // Начало интервала
	EndTime     time.Time // Конец интервала
	Status      string    // Статус после перехода
	Purpose     *string   // Цель бронирования
	Attendees   *int      // Число участников

	TotalFee   float64 // Стоимость по тарифу площадки
	DepositDue float64 // Возвращаемый депозит

	// Поля аудита, заполняются соответствующим переходом
	ApprovedBy         *uuid.UUID
	ApprovedAt         *time.Time
	RejectedBy         *uuid.UUID
	RejectedAt         *time.Time
	RejectionReason    *string
	CancelledAt        *time.Time
	CancellationReason *string

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
