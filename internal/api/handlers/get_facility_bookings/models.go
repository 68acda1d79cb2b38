package get_facility_bookings

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/PMS-FacilityService/internal/domain"
	"github.com/m04kA/PMS-FacilityService/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров.
// Даты from и to задают включительный диапазон дней.
func ToServiceRequest(
	facilityID uuid.UUID,
	userID uuid.UUID,
	statusStr string,
	fromStr string,
	toStr string,
) (*models.GetFacilityBookingsRequest, error) {
	req := &models.GetFacilityBookingsRequest{
		UserID:     userID,
		FacilityID: facilityID,
	}

	// Парсим status если указан
	if statusStr != "" {
		req.Status = &statusStr
	}

	// Парсим from если указана
	if fromStr != "" {
		from, err := time.Parse(domain.DateFormat, fromStr)
		if err != nil {
			return nil, err
		}
		req.From = &from
	}

	// Парсим to если указана, граница сдвигается на конец дня
	if toStr != "" {
		to, err := time.Parse(domain.DateFormat, toStr)
		if err != nil {
			return nil, err
		}
		endOfDay := to.Add(24 * time.Hour)
		req.To = &endOfDay
	}

	return req, nil
}
