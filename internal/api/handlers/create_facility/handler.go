package create_facility

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
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgInvalidData         = "некорректные данные площадки"
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

// Handle POST /api/v1/buildings/{buildingId}/facilities
// Доступно только менеджерам здания.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем buildingId из URL
	vars := mux.Vars(r)
	buildingIDStr := vars["buildingId"]

	buildingID, err := uuid.Parse(buildingIDStr)
	if err != nil {
		h.logger.Warn("POST /buildings/{id}/facilities - Invalid building ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBuildingID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /buildings/{id}/facilities - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Декодируем body, идентификаторы берем из URL и контекста
	var req models.CreateFacilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /buildings/{id}/facilities - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID
	req.BuildingID = buildingID

	// Создаем площадку (сервис сам проверит права менеджера)
	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, facilities.ErrInvalidInput):
			h.logger.Warn("POST /buildings/{id}/facilities - Invalid data: building_id=%s, error=%v",
				buildingID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		case errors.Is(err, facilities.ErrBuildingNotFound):
			h.logger.Warn("POST /buildings/{id}/facilities - Building not found: building_id=%s", buildingID)
			handlers.RespondNotFound(w, msgBuildingNotFound)

		case errors.Is(err, facilities.ErrAccessDenied):
			h.logger.Warn("POST /buildings/{id}/facilities - Access denied: building_id=%s, user_id=%s",
				buildingID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, facilities.ErrDuplicateName):
			h.logger.Warn("POST /buildings/{id}/facilities - Duplicate facility name: building_id=%s, name=%s",
				buildingID, req.Name)
			handlers.RespondError(w, http.StatusConflict, msgDuplicateName)

		case errors.Is(err, facilities.ErrBuildingUnavailable):
			h.logger.Error("POST /buildings/{id}/facilities - Building service unavailable: building_id=%s, error=%v",
				buildingID, err)
			handlers.RespondError(w, http.StatusBadGateway, msgBuildingUnavailable)

		default:
			h.logger.Error("POST /buildings/{id}/facilities - Failed to create facility: building_id=%s, error=%v",
				buildingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /buildings/{id}/facilities - Facility created successfully: facility_id=%s, building_id=%s, user_id=%s",
		result.ID, buildingID, userID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
