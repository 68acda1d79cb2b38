package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/PMS-FacilityService/internal/api/handlers"
	"github.com/m04kA/PMS-FacilityService/internal/api/middleware"
	"github.com/m04kA/PMS-FacilityService/internal/domain"
	createBooking "github.com/m04kA/PMS-FacilityService/internal/usecase/create_booking"
)

const (
	msgMissingUserID       = "отсутствует ID пользователя"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidInput        = "некорректные данные бронирования"
	msgSlotConflict        = "выбранный интервал уже занят"
	msgFacilityNotFound    = "площадка не найдена"
	msgFacilityNotBookable = "площадка недоступна для бронирования"
	msgNotBuildingMember   = "пользователь не относится к зданию площадки"
	msgBuildingUnavailable = "сервис зданий временно недоступен"
	msgInvalidTimeRange    = "время окончания должно быть позже времени начала"
	msgOutsideWindow       = "интервал выходит за окно доступности площадки"
	msgExceedsMaxDuration  = "превышена максимальная длительность бронирования"
	msgExceedsCapacity     = "число участников превышает вместимость площадки"
	msgTooSoonToBook       = "до начала бронирования осталось слишком мало времени"
	msgTooFarInAdvance     = "дата бронирования слишком далеко в будущем"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Декодируем body
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case
	useCaseReq := req.ToUseCaseRequest(userID)

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSlotConflict):
			h.logger.Warn("POST /bookings - Slot conflict: user_id=%s, facility_id=%s", userID, req.FacilityID)
			handlers.RespondError(w, http.StatusConflict, msgSlotConflict)

		case errors.Is(err, createBooking.ErrFacilityNotFound):
			h.logger.Warn("POST /bookings - Facility not found: facility_id=%s", req.FacilityID)
			handlers.RespondNotFound(w, msgFacilityNotFound)

		case errors.Is(err, createBooking.ErrFacilityNotBookable):
			h.logger.Warn("POST /bookings - Facility not bookable: facility_id=%s", req.FacilityID)
			handlers.RespondBadRequest(w, msgFacilityNotBookable)

		case errors.Is(err, createBooking.ErrNotBuildingMember):
			h.logger.Warn("POST /bookings - Not a building member: user_id=%s, facility_id=%s", userID, req.FacilityID)
			handlers.RespondForbidden(w, msgNotBuildingMember)

		case errors.Is(err, createBooking.ErrBuildingUnavailable):
			h.logger.Error("POST /bookings - Building service unavailable: facility_id=%s, error=%v", req.FacilityID, err)
			handlers.RespondError(w, http.StatusBadGateway, msgBuildingUnavailable)

		case errors.Is(err, domain.ErrInvalidTimeRange):
			h.logger.Warn("POST /bookings - Invalid time range: user_id=%s, facility_id=%s", userID, req.FacilityID)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, domain.ErrOutsideAvailabilityWindow):
			h.logger.Warn("POST /bookings - Outside availability window: user_id=%s, facility_id=%s", userID, req.FacilityID)
			handlers.RespondBadRequest(w, msgOutsideWindow)

		case errors.Is(err, domain.ErrExceedsMaxDuration):
			h.logger.Warn("POST /bookings - Exceeds max duration: user_id=%s, facility_id=%s", userID, req.FacilityID)
			handlers.RespondBadRequest(w, msgExceedsMaxDuration)

		case errors.Is(err, domain.ErrExceedsCapacity):
			h.logger.Warn("POST /bookings - Exceeds capacity: user_id=%s, facility_id=%s", userID, req.FacilityID)
			handlers.RespondBadRequest(w, msgExceedsCapacity)

		case errors.Is(err, domain.ErrTooSoonToBook):
			h.logger.Warn("POST /bookings - Too soon to book: user_id=%s, facility_id=%s", userID, req.FacilityID)
			handlers.RespondBadRequest(w, msgTooSoonToBook)

		case errors.Is(err, domain.ErrTooFarInAdvance):
			h.logger.Warn("POST /bookings - Too far in advance: user_id=%s, facility_id=%s", userID, req.FacilityID)
			handlers.RespondBadRequest(w, msgTooFarInAdvance)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%s, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%s, facility_id=%s, error=%v",
				userID, req.FacilityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%s, user_id=%s, facility_id=%s, status=%s",
		result.ID, userID, req.FacilityID, result.Status)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
