package get_pending_bookings

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/PMS-FacilityService/internal/api/handlers"
	"github.com/m04kA/PMS-FacilityService/internal/api/middleware"
	"github.com/m04kA/PMS-FacilityService/internal/service/bookings"
)

const (
	msgInvalidBuildingID   = "некорректный ID здания"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgBuildingNotFound    = "здание не найдено"
	msgForbidden           = "доступ запрещен"
	msgBuildingUnavailable = "сервис зданий временно недоступен"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/buildings/{buildingId}/bookings/pending
// Очередь заявок на модерацию по всем площадкам здания.
// Доступно только менеджерам здания.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем buildingId из URL
	vars := mux.Vars(r)
	buildingIDStr := vars["buildingId"]

	buildingID, err := uuid.Parse(buildingIDStr)
	if err != nil {
		h.logger.Warn("GET /buildings/{id}/bookings/pending - Invalid building ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBuildingID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /buildings/{id}/bookings/pending - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Получаем очередь заявок (сервис сам проверит права менеджера)
	result, err := h.service.GetPendingBookings(r.Context(), buildingID, userID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBuildingNotFound):
			h.logger.Warn("GET /buildings/{id}/bookings/pending - Building not found: building_id=%s", buildingID)
			handlers.RespondNotFound(w, msgBuildingNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /buildings/{id}/bookings/pending - Access denied: building_id=%s, user_id=%s",
				buildingID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrBuildingUnavailable):
			h.logger.Error("GET /buildings/{id}/bookings/pending - Building service unavailable: building_id=%s, error=%v",
				buildingID, err)
			handlers.RespondError(w, http.StatusBadGateway, msgBuildingUnavailable)

		default:
			h.logger.Error("GET /buildings/{id}/bookings/pending - Failed to get pending bookings: building_id=%s, error=%v",
				buildingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /buildings/{id}/bookings/pending - Pending bookings retrieved successfully: building_id=%s, count=%d",
		buildingID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result.Bookings)
}
