package get_available_slots

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/PMS-FacilityService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.FacilityID == uuid.Nil {
		return fmt.Errorf("%w: facilityID is required", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// Шаг сетки: 0 означает значение по умолчанию, иначе в допустимых пределах
	if req.GranularityMinutes != 0 &&
		(req.GranularityMinutes < domain.MinSlotGranularityMinutes ||
			req.GranularityMinutes > domain.MaxSlotGranularityMinutes) {
		return fmt.Errorf("%w: granularity must be between %d and %d minutes",
			ErrInvalidInput, domain.MinSlotGranularityMinutes, domain.MaxSlotGranularityMinutes)
	}

	return nil
}
