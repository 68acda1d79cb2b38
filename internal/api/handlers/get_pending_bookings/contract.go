package get_pending_bookings

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/PMS-FacilityService/internal/service/bookings/models"
)

type BookingService interface {
	GetPendingBookings(ctx context.Context, buildingID uuid.UUID, userID uuid.UUID) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
