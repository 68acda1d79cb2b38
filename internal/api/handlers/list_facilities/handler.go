package list_facilities

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/PMS-FacilityService/internal/api/handlers"
	"github.com/m04kA/PMS-FacilityService/internal/api/middleware"
	"github.com/m04kA/PMS-FacilityService/internal/service/facilities"
	"github.com/m04kA/PMS-FacilityService/internal/service/facilities/models"
)

const (
	msgInvalidBuildingID   = "некорректный ID здания"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgInvalidParams       = "некорректные параметры запроса"
	msgForbidden           = "доступ запрещен"
	msgBuildingNotFound    = "здание не найдено"
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

// Handle GET /api/v1/buildings/{buildingId}/facilities
// Query params: type, includeInactive (опционально).
// Деактивированные площадки видят только менеджеры здания.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем buildingId из URL
	vars := mux.Vars(r)
	buildingIDStr := vars["buildingId"]

	buildingID, err := uuid.Parse(buildingIDStr)
	if err != nil {
		h.logger.Warn("GET /buildings/{id}/facilities - Invalid building ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBuildingID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /buildings/{id}/facilities - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Получаем опциональные query параметры
	serviceReq := &models.ListFacilitiesRequest{
		UserID:     userID,
		BuildingID: buildingID,
	}

	if typeStr := r.URL.Query().Get("type"); typeStr != "" {
		serviceReq.Type = &typeStr
	}

	if includeInactiveStr := r.URL.Query().Get("includeInactive"); includeInactiveStr != "" {
		includeInactive, err := strconv.ParseBool(includeInactiveStr)
		if err != nil {
			h.logger.Warn("GET /buildings/{id}/facilities - Invalid includeInactive value: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
		serviceReq.IncludeInactive = includeInactive
	}

	// Получаем список площадок здания
	result, err := h.service.ListByBuilding(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, facilities.ErrInvalidInput):
			h.logger.Warn("GET /buildings/{id}/facilities - Invalid parameters: building_id=%s, error=%v",
				buildingID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		case errors.Is(err, facilities.ErrBuildingNotFound):
			h.logger.Warn("GET /buildings/{id}/facilities - Building not found: building_id=%s", buildingID)
			handlers.RespondNotFound(w, msgBuildingNotFound)

		case errors.Is(err, facilities.ErrAccessDenied):
			h.logger.Warn("GET /buildings/{id}/facilities - Access denied: building_id=%s, user_id=%s",
				buildingID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, facilities.ErrBuildingUnavailable):
			h.logger.Error("GET /buildings/{id}/facilities - Building service unavailable: building_id=%s, error=%v",
				buildingID, err)
			handlers.RespondError(w, http.StatusBadGateway, msgBuildingUnavailable)

		default:
			h.logger.Error("GET /buildings/{id}/facilities - Failed to list facilities: building_id=%s, error=%v",
				buildingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /buildings/{id}/facilities - Facilities retrieved successfully: building_id=%s, count=%d",
		buildingID, len(result.Facilities))
	handlers.RespondJSON(w, http.StatusOK, result)
}
