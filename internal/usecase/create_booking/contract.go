package create_booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/PMS-FacilityService/internal/domain"
	"github.com/m04kA/PMS-FacilityService/internal/integrations/buildingservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	FindActiveByFacility(ctx context.Context, facilityID uuid.UUID, from, to time.Time) ([]*domain.Booking, error)
}

// FacilityRepository интерфейс репозитория площадок
type FacilityRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Facility, error)
}

// BuildingServiceClient интерфейс клиента для BuildingService
type BuildingServiceClient interface {
	GetBuilding(ctx context.Context, buildingID uuid.UUID) (*buildingservice.Building, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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

// Metrics интерфейс бизнес-метрик создания бронирований
// Реализация терпима к nil-приемнику, поэтому метрики можно не включать
type Metrics interface {
	IncBookingCreated(status string)
	IncBookingConflict()
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
