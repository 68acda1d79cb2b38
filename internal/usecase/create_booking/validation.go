package create_booking

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/PMS-FacilityService/internal/domain"
)

// validateRequest валидирует входные данные запроса
// Политика площадки проверяется дальше в domain.ValidateAndPrice,
// здесь отсекаются запросы, некорректные при любой политике
func validateRequest(req *Request, now time.Time) error {
	if req.RequesterID == uuid.Nil {
		return fmt.Errorf("%w: requesterID is required", ErrInvalidInput)
	}

	if req.FacilityID == uuid.Nil {
		return fmt.Errorf("%w: facilityID is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return fmt.Errorf("%w: startTime and endTime are required", ErrInvalidInput)
	}

	if !req.EndTime.After(req.StartTime) {
		return fmt.Errorf("%w: end %s is not after start %s", domain.ErrInvalidTimeRange,
			req.EndTime.Format(time.RFC3339), req.StartTime.Format(time.RFC3339))
	}

	// Бронирования задним числом не принимаются независимо от
	// настроек minAdvanceHours площадки
	if req.StartTime.Before(now) {
		return fmt.Errorf("%w: start %s is in the past", domain.ErrInvalidTimeRange,
			req.StartTime.Format(time.RFC3339))
	}

	if req.Attendees != nil && *req.Attendees <= 0 {
		return fmt.Errorf("%w: attendeesCount must be positive", ErrInvalidInput)
	}

	if req.Purpose != nil && len(*req.Purpose) > domain.MaxPurposeLength {
		return fmt.Errorf("%w: purpose exceeds %d characters", ErrInvalidInput, domain.MaxPurposeLength)
	}

	return nil
}
