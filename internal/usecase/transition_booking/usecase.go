package transition_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/PMS-FacilityService/internal/domain"
	bookingRepo "github.com/m04kA/PMS-FacilityService/internal/infra/storage/booking"
	facilityRepo "github.com/m04kA/PMS-FacilityService/internal/infra/storage/facility"
	buildingClient "github.com/m04kA/PMS-FacilityService/internal/integrations/buildingservice"
)

// UseCase use case для переходов бронирования по жизненному циклу
type UseCase struct {
	bookingRepo    BookingRepository
	facilityRepo   FacilityRepository
	buildingClient BuildingServiceClient
	timeProvider   TimeProvider
	metrics        Metrics
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	facilityRepo FacilityRepository,
	buildingClient BuildingServiceClient,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:    bookingRepo,
		facilityRepo:   facilityRepo,
		buildingClient: buildingClient,
		timeProvider:   &RealTimeProvider{},
		metrics:        metrics,
		logger:         logger,
	}
}

// Execute выполняет переход бронирования
// Правила переходов и полномочий применяет domain.Transition; запись
// в БД условная, поэтому конкурентный переход одной и той же брони
// пройдет ровно один раз
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("TransitionBooking: booking=%s, action=%s, actor=%s",
		req.BookingID, req.Action, req.ActorID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("TransitionBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем бронирование
	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("TransitionBooking: booking id=%s not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("TransitionBooking: failed to get booking id=%s: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	// 3. Определяем полномочия пользователя через здание площадки
	capability, err := uc.resolveCapability(ctx, booking, req.ActorID)
	if err != nil {
		return nil, err
	}

	// 4. Проверяем переход по таблице жизненного цикла
	now := uc.timeProvider.Now()
	cmd := domain.TransitionCommand{
		BookingID:  req.BookingID,
		Action:     req.Action,
		Reason:     req.Reason,
		ActorID:    req.ActorID,
		Capability: capability,
	}

	next, err := domain.Transition(booking, cmd, now)
	if err != nil {
		uc.logger.Warn("TransitionBooking: transition rejected: %v", err)
		return nil, err
	}

	// 5. Фиксируем переход условным обновлением
	if err := uc.persistTransition(ctx, booking, req, next); err != nil {
		if errors.Is(err, bookingRepo.ErrStatusConflict) {
			// Бронь успела сменить статус между чтением и записью
			uc.logger.Warn("TransitionBooking: booking id=%s changed status concurrently", req.BookingID)
			return nil, fmt.Errorf("%w: booking status changed concurrently", domain.ErrInvalidTransition)
		}
		uc.logger.Error("TransitionBooking: failed to persist %s for booking id=%s: %v",
			req.Action, req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to persist transition: %v", ErrInternal, err)
	}

	uc.logger.Info("TransitionBooking: booking id=%s moved %s -> %s by %s",
		req.BookingID, booking.Status, next, capability)
	uc.metrics.IncBookingTransition(string(req.Action))

	// 6. Перечитываем бронирование с заполненными полями аудита
	updated, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		uc.logger.Error("TransitionBooking: failed to reload booking id=%s: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to reload booking: %v", ErrInternal, err)
	}

	return toResponse(updated), nil
}

// resolveCapability определяет, в какой роли пользователь выполняет переход.
// Управляющий зданием действует как manager, автор брони как requester,
// остальным доступ запрещен.
func (uc *UseCase) resolveCapability(ctx context.Context, booking *domain.Booking, actorID uuid.UUID) (domain.ActorCapability, error) {
	facility, err := uc.facilityRepo.GetByID(ctx, booking.FacilityID)
	if err != nil {
		if errors.Is(err, facilityRepo.ErrFacilityNotFound) {
			uc.logger.Error("TransitionBooking: facility id=%s of booking id=%s not found",
				booking.FacilityID, booking.ID)
			return "", fmt.Errorf("%w: booking references unknown facility", ErrInternal)
		}
		uc.logger.Error("TransitionBooking: failed to get facility id=%s: %v", booking.FacilityID, err)
		return "", fmt.Errorf("%w: failed to get facility: %v", ErrInternal, err)
	}

	building, err := uc.buildingClient.GetBuilding(ctx, facility.BuildingID)
	if err != nil {
		if errors.Is(err, buildingClient.ErrBuildingNotFound) {
			uc.logger.Error("TransitionBooking: building id=%s of facility id=%s not found",
				facility.BuildingID, facility.ID)
			return "", fmt.Errorf("%w: facility references unknown building", ErrInternal)
		}
		uc.logger.Error("TransitionBooking: failed to get building id=%s: %v", facility.BuildingID, err)
		return "", fmt.Errorf("%w: %v", ErrBuildingUnavailable, err)
	}

	if building.IsManager(actorID) {
		return domain.CapabilityManager, nil
	}
	if booking.IsOwnedBy(actorID) {
		return domain.CapabilityRequester, nil
	}

	uc.logger.Warn("TransitionBooking: user id=%s is neither requester nor manager for booking id=%s",
		actorID, booking.ID)
	return "", ErrAccessDenied
}

// persistTransition записывает переход методом репозитория,
// соответствующим действию
func (uc *UseCase) persistTransition(ctx context.Context, booking *domain.Booking, req *Request, next domain.BookingStatus) error {
	switch req.Action {
	case domain.ActionApprove:
		return uc.bookingRepo.Approve(ctx, req.BookingID, req.ActorID)
	case domain.ActionReject:
		// Непустая причина гарантирована domain.Transition
		return uc.bookingRepo.Reject(ctx, req.BookingID, req.ActorID, *req.Reason)
	case domain.ActionCancel:
		return uc.bookingRepo.Cancel(ctx, req.BookingID, booking.Status, req.Reason)
	case domain.ActionComplete, domain.ActionNoShow:
		return uc.bookingRepo.UpdateStatus(ctx, req.BookingID, booking.Status, next)
	default:
		return fmt.Errorf("%w: unsupported action %s", ErrInvalidInput, req.Action)
	}
}

// toResponse конвертирует модель бронирования в ответ usecase
func toResponse(b *domain.Booking) *Response {
	return &Response{
		ID:                 b.ID,
		FacilityID:         b.FacilityID,
		RequesterID:        b.RequesterID,
		StartTime:          b.StartTime,
		EndTime:            b.EndTime,
		Status:             string(b.Status),
		Purpose:            b.Purpose,
		Attendees:          b.Attendees,
		TotalFee:           b.TotalFee,
		DepositDue:         b.DepositDue,
		ApprovedBy:         b.ApprovedBy,
		ApprovedAt:         b.ApprovedAt,
		RejectedBy:         b.RejectedBy,
		RejectedAt:         b.RejectedAt,
		RejectionReason:    b.RejectionReason,
		CancelledAt:        b.CancelledAt,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
}
