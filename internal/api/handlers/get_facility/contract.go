package get_facility

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/PMS-FacilityService/internal/service/facilities/models"
)

type FacilityService interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.FacilityResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
