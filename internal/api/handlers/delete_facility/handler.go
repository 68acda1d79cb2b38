package delete_facility

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/PMS-FacilityService/internal/api/handlers"
	"github.com/m04kA/PMS-FacilityService/internal/api/middleware"
	"github.com/m04kA/PMS-FacilityService/internal/service/facilities"
)

const (
	msgInvalidBuildingID   = "некорректный ID здания"
	msgInvalidFacilityID   = "некорректный ID площадки"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgNotFound            = "площадка не найдена"
	msgBuildingNotFound    = "здание не найдено"
	msgForbidden           = "доступ запрещен"
	msgBuildingUnavailable = "сервис зданий временно недоступен"
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

// Handle DELETE /api/v1/buildings/{buildingId}/facilities/{facilityId}
// Мягкое удаление: площадка деактивируется, существующие бронирования
// не отменяются. Доступно только менеджерам здания.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем buildingId и facilityId из URL
	vars := mux.Vars(r)

	buildingID, err := uuid.Parse(vars["buildingId"])
	if err != nil {
		h.logger.Warn("DELETE /buildings/{id}/facilities/{facilityId} - Invalid building ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBuildingID)
		return
	}

	facilityID, err := uuid.Parse(vars["facilityId"])
	if err != nil {
		h.logger.Warn("DELETE /buildings/{id}/facilities/{facilityId} - Invalid facility ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFacilityID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /buildings/{id}/facilities/{facilityId} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Деактивируем площадку (сервис сам проверит права менеджера)
	err = h.service.Deactivate(r.Context(), facilityID, buildingID, userID)
	if err != nil {
		switch {
		case errors.Is(err, facilities.ErrFacilityNotFound):
			h.logger.Warn("DELETE /buildings/{id}/facilities/{facilityId} - Facility not found: facility_id=%s, building_id=%s",
				facilityID, buildingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, facilities.ErrBuildingNotFound):
			h.logger.Warn("DELETE /buildings/{id}/facilities/{facilityId} - Building not found: building_id=%s",
				buildingID)
			handlers.RespondNotFound(w, msgBuildingNotFound)

		case errors.Is(err, facilities.ErrAccessDenied):
			h.logger.Warn("DELETE /buildings/{id}/facilities/{facilityId} - Access denied: facility_id=%s, user_id=%s",
				facilityID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, facilities.ErrBuildingUnavailable):
			h.logger.Error("DELETE /buildings/{id}/facilities/{facilityId} - Building service unavailable: facility_id=%s, error=%v",
				facilityID, err)
			handlers.RespondError(w, http.StatusBadGateway, msgBuildingUnavailable)

		default:
			h.logger.Error("DELETE /buildings/{id}/facilities/{facilityId} - Failed to deactivate facility: facility_id=%s, error=%v",
				facilityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /buildings/{id}/facilities/{facilityId} - Facility deactivated successfully: facility_id=%s, user_id=%s",
		facilityID, userID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
