package get_facility

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/PMS-FacilityService/internal/api/handlers"
	"github.com/m04kA/PMS-FacilityService/internal/service/facilities"
)

const (
	msgInvalidBuildingID = "некорректный ID здания"
	msgInvalidFacilityID = "некорректный ID площадки"
	msgNotFound          = "площадка не найдена"
)

type Handler struct {
	service FacilityService
	logger  Logger
}

func NewHandler(service FacilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/buildings/{buildingId}/facilities/{facilityId}
// Публичный маршрут, карточка площадки доступна всем жителям.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем buildingId и facilityId из URL
	vars := mux.Vars(r)

	buildingID, err := uuid.Parse(vars["buildingId"])
	if err != nil {
		h.logger.Warn("GET /buildings/{id}/facilities/{facilityId} - Invalid building ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBuildingID)
		return
	}

	facilityID, err := uuid.Parse(vars["facilityId"])
	if err != nil {
		h.logger.Warn("GET /buildings/{id}/facilities/{facilityId} - Invalid facility ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFacilityID)
		return
	}

	// Получаем площадку
	result, err := h.service.GetByID(r.Context(), facilityID)
	if err != nil {
		switch {
		case errors.Is(err, facilities.ErrFacilityNotFound):
			h.logger.Warn("GET /buildings/{id}/facilities/{facilityId} - Facility not found: facility_id=%s",
				facilityID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /buildings/{id}/facilities/{facilityId} - Failed to get facility: facility_id=%s, error=%v",
				facilityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Площадка из другого здания не раскрывается
	if result.BuildingID != buildingID {
		h.logger.Warn("GET /buildings/{id}/facilities/{facilityId} - Building mismatch: facility_id=%s, building_id=%s",
			facilityID, buildingID)
		handlers.RespondNotFound(w, msgNotFound)
		return
	}

	h.logger.Info("GET /buildings/{id}/facilities/{facilityId} - Facility retrieved successfully: facility_id=%s",
		facilityID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
