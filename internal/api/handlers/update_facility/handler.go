package update_facility

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/PMS-FacilityService/internal/api/handlers"
	"github.com/m04kA/PMS-FacilityService/internal/api/middleware"
	"github.com/m04kA/PMS-FacilityService/internal/service/facilities"
	"github.com/m04kA/PMS-FacilityService/internal/service/facilities/models"
)

const (
	msgInvalidBuildingID   = "некорректный ID здания"
	msgInvalidFacilityID   = "некорректный ID площадки"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgInvalidData         = "некорректные данные площадки"
	msgFacilityNotFound    = "площадка не найдена"
	msgBuildingNotFound    = "здание не найдено"
	msgForbidden           = "доступ запрещен"
	msgDuplicateName       = "площадка с таким названием уже существует в здании"
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

// Handle PUT /api/v1/buildings/{buildingId}/facilities/{facilityId}
// Частичное обновление: меняются только переданные поля.
// Доступно только менеджерам здания.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем buildingId и facilityId из URL
	vars := mux.Vars(r)

	buildingID, err := uuid.Parse(vars["buildingId"])
	if err != nil {
		h.logger.Warn("PUT /buildings/{id}/facilities/{facilityId} - Invalid building ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBuildingID)
		return
	}

	facilityID, err := uuid.Parse(vars["facilityId"])
	if err != nil {
		h.logger.Warn("PUT /buildings/{id}/facilities/{facilityId} - Invalid facility ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFacilityID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /buildings/{id}/facilities/{facilityId} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Декодируем body, идентификаторы берем из URL и контекста
	var req models.UpdateFacilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /buildings/{id}/facilities/{facilityId} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID
	req.BuildingID = buildingID

	// Обновляем площадку (сервис сам проверит права менеджера)
	result, err := h.service.Update(r.Context(), facilityID, &req)
	if err != nil {
		switch {
		case errors.Is(err, facilities.ErrFacilityNotFound):
			h.logger.Warn("PUT /buildings/{id}/facilities/{facilityId} - Facility not found: facility_id=%s, building_id=%s",
				facilityID, buildingID)
			handlers.RespondNotFound(w, msgFacilityNotFound)

		case errors.Is(err, facilities.ErrInvalidInput):
			h.logger.Warn("PUT /buildings/{id}/facilities/{facilityId} - Invalid data: facility_id=%s, error=%v",
				facilityID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		case errors.Is(err, facilities.ErrBuildingNotFound):
			h.logger.Warn("PUT /buildings/{id}/facilities/{facilityId} - Building not found: building_id=%s", buildingID)
			handlers.RespondNotFound(w, msgBuildingNotFound)

		case errors.Is(err, facilities.ErrAccessDenied):
			h.logger.Warn("PUT /buildings/{id}/facilities/{facilityId} - Access denied: facility_id=%s, user_id=%s",
				facilityID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, facilities.ErrDuplicateName):
			h.logger.Warn("PUT /buildings/{id}/facilities/{facilityId} - Duplicate facility name: facility_id=%s",
				facilityID)
			handlers.RespondError(w, http.StatusConflict, msgDuplicateName)

		case errors.Is(err, facilities.ErrBuildingUnavailable):
			h.logger.Error("PUT /buildings/{id}/facilities/{facilityId} - Building service unavailable: facility_id=%s, error=%v",
				facilityID, err)
			handlers.RespondError(w, http.StatusBadGateway, msgBuildingUnavailable)

		default:
			h.logger.Error("PUT /buildings/{id}/facilities/{facilityId} - Failed to update facility: facility_id=%s, error=%v",
				facilityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /buildings/{id}/facilities/{facilityId} - Facility updated successfully: facility_id=%s, user_id=%s",
		facilityID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
