package facilities

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/PMS-FacilityService/internal/domain"
	"github.com/m04kA/PMS-FacilityService/internal/integrations/buildingservice"
)

// FacilityRepository интерфейс репозитория площадок
type FacilityRepository interface {
	Create(ctx context.Context, facility *domain.Facility) (*domain.Facility, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Facility, error)
	ListByBuilding(ctx context.Context, buildingID uuid.UUID, filter domain.FacilityListFilter) ([]*domain.Facility, error)
	Update(ctx context.Context, facility *domain.Facility) (*domain.Facility, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
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
