package delete_facility

import (
	"context"

	"github.com/google/uuid"
)

type FacilityService interface {
	Deactivate(ctx context.Context, id uuid.UUID, buildingID uuid.UUID, userID uuid.UUID) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
