package bookings

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/PMS-FacilityService/internal/domain"
	"github.com/m04kA/PMS-FacilityService/internal/integrations/buildingservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	GetByRequester(ctx context.Context, requesterID uuid.UUID, status *domain.BookingStatus) ([]*domain.Booking, error)
	GetByFacilityWithFilter(ctx context.Context, filter domain.FacilityBookingsFilter) ([]*domain.Booking, error)
	FindPendingByBuilding(ctx context.Context, buildingID uuid.UUID) ([]*domain.Booking, error)
}

// FacilityRepository интерфейс репозитория площадок
type FacilityRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Facility, error)
}

// BuildingServiceClient интерфейс клиента для BuildingService
type BuildingServiceClient interface {
	GetBuilding(ctx context.Context, buildingID uuid.UUID) (*buildingservice.Building, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
