package get_available_slots

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/PMS-FacilityService/internal/domain"
	getAvailableSlots "github.com/m04kA/PMS-FacilityService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	FacilityID         uuid.UUID       `json:"facilityId"`
	Date               string          `json:"date"`
	GranularityMinutes int             `json:"granularityMinutes"`
	Slots              []AvailableSlot `json:"slots"`
}

// AvailableSlot модель слота сетки доступности
type AvailableSlot struct {
	StartTime string `json:"startTime"` // RFC3339
	EndTime   string `json:"endTime"`   // RFC3339
	Available bool   `json:"available"`
}

// ToUseCaseRequest создает запрос use case из параметров маршрута
func ToUseCaseRequest(facilityID uuid.UUID, dateStr string, granularity int) (*getAvailableSlots.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		FacilityID:         facilityID,
		Date:               date,
		GranularityMinutes: granularity,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			StartTime: slot.StartTime.Format(time.RFC3339),
			EndTime:   slot.EndTime.Format(time.RFC3339),
			Available: slot.Available,
		}
	}

	return &AvailableSlotsResponse{
		FacilityID:         resp.FacilityID,
		Date:               resp.Date.Format(domain.DateFormat),
		GranularityMinutes: resp.GranularityMinutes,
		Slots:              slots,
	}
}
