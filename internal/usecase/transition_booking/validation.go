package transition_booking

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/PMS-FacilityService/internal/domain"
)

// validateRequest валидирует входные данные запроса
// Семантика перехода (допустимость действия, обязательность причины,
// временные ограничения) проверяется дальше в domain.Transition
func validateRequest(req *Request) error {
	if req.BookingID == uuid.Nil {
		return fmt.Errorf("%w: bookingID is required", ErrInvalidInput)
	}

	if req.ActorID == uuid.Nil {
		return fmt.Errorf("%w: actorID is required", ErrInvalidInput)
	}

	if !req.Action.IsValid() {
		return fmt.Errorf("%w: unknown action %q", ErrInvalidInput, req.Action)
	}

	if req.Reason != nil && len(*req.Reason) > domain.MaxReasonLength {
		return fmt.Errorf("%w: reason exceeds %d characters", ErrInvalidInput, domain.MaxReasonLength)
	}

	return nil
}
