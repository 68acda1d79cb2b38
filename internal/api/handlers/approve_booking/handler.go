package approve_booking

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/PMS-FacilityService/internal/api/handlers"
	"github.com/m04kA/PMS-FacilityService/internal/api/middleware"
	"github.com/m04kA/PMS-FacilityService/internal/domain"
	transitionBooking "github.com/m04kA/PMS-FacilityService/internal/usecase/transition_booking"
)

const (
	msgInvalidBookingID    = "некорректный ID бронирования"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgNotFound            = "бронирование не найдено"
	msgForbidden           = "доступ запрещен"
	msgCannotApprove       = "бронирование не может быть подтверждено"
	msgBuildingUnavailable = "сервис зданий временно недоступен"
)

type Handler struct {
	useCase TransitionBookingUseCase
	logger  Logger
}

func NewHandler(useCase TransitionBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/approve
// Доступно только менеджерам здания площадки.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем bookingId из URL
	vars := mux.Vars(r)
	bookingIDStr := vars["bookingId"]

	bookingID, err := uuid.Parse(bookingIDStr)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/approve - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings/{id}/approve - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Выполняем переход approve
	useCaseReq := &transitionBooking.Request{
		BookingID: bookingID,
		ActorID:   userID,
		Action:    domain.ActionApprove,
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, transitionBooking.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/approve - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, transitionBooking.ErrAccessDenied):
			h.logger.Warn("POST /bookings/{id}/approve - Access denied: booking_id=%s, user_id=%s",
				bookingID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, domain.ErrInvalidTransition):
			h.logger.Warn("POST /bookings/{id}/approve - Invalid transition: booking_id=%s, error=%v",
				bookingID, err)
			handlers.RespondError(w, http.StatusConflict, msgCannotApprove)

		case errors.Is(err, transitionBooking.ErrBuildingUnavailable):
			h.logger.Error("POST /bookings/{id}/approve - Building service unavailable: booking_id=%s, error=%v",
				bookingID, err)
			handlers.RespondError(w, http.StatusBadGateway, msgBuildingUnavailable)

		case errors.Is(err, transitionBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{id}/approve - Invalid input: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidBookingID)

		default:
			h.logger.Error("POST /bookings/{id}/approve - Failed to approve booking: booking_id=%s, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/approve - Booking approved successfully: booking_id=%s, manager_id=%s",
		bookingID, userID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
