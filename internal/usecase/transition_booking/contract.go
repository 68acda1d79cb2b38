package transition_booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/PMS-FacilityService/internal/domain"
	"github.com/m04kA/PMS-FacilityService/internal/integrations/buildingservice"
)

// BookingRepository интерфейс репозитория бронирований
// Методы переходов условные: строка обновляется, только если статус
// не изменился с момента чтения
type BookingRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	Approve(ctx context.Context, id uuid.UUID, approverID uuid.UUID) error
	Reject(ctx context.Context, id uuid.UUID, rejecterID uuid.UUID, reason string) error
	Cancel(ctx context.Context, id uuid.UUID, fromStatus domain.BookingStatus, reason *string) error
	UpdateStatus(ctx context.Context, id uuid.UUID, fromStatus, toStatus domain.BookingStatus) error
}

// FacilityRepository интерфейс репозитория площадок
type FacilityRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Facility, error)
}

// BuildingServiceClient интерфейс клиента для BuildingService
type BuildingServiceClient interface {
	GetBuilding(ctx context.Context, buildingID uuid.UUID) (*buildingservice.Building, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Metrics интерфейс бизнес-метрик переходов жизненного цикла
type Metrics interface {
	IncBookingTransition(action string)
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
