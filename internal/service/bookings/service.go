package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/PMS-FacilityService/internal/domain"
	bookingRepo "github.com/m04kA/PMS-FacilityService/internal/infra/storage/booking"
	facilityRepo "github.com/m04kA/PMS-FacilityService/internal/infra/storage/facility"
	buildingClient "github.com/m04kA/PMS-FacilityService/internal/integrations/buildingservice"
	"github.com/m04kA/PMS-FacilityService/internal/service/bookings/models"
)

// Service сервис для чтения бронирований
type Service struct {
	bookingRepo    BookingRepository
	facilityRepo   FacilityRepository
	buildingClient BuildingServiceClient
	logger         Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	facilityRepo FacilityRepository,
	buildingClient BuildingServiceClient,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:    bookingRepo,
		facilityRepo:   facilityRepo,
		buildingClient: buildingClient,
		logger:         logger,
	}
}

// GetByID получает бронирование по ID
// Проверяет права доступа - пользователь может видеть только своё бронирование
// или если он является менеджером здания
func (s *Service) GetByID(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s for user=%s", id, userID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%s not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа
	if err := s.checkUserAccess(ctx, booking, userID); err != nil {
		if errors.Is(err, ErrAccessDenied) {
			s.logger.Warn("GetByID: access denied for user=%s to booking id=%s", userID, id)
		}
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched booking id=%s", id)
	return models.FromDomainBooking(booking), nil
}

// GetRequesterBookings получает историю бронирований жителя
// Опционально фильтрует по статусу
func (s *Service) GetRequesterBookings(ctx context.Context, req *models.GetRequesterBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetRequesterBookings: fetching bookings for requester=%s, status=%v",
		req.RequesterID, req.Status)

	// Конвертируем статус из строки в domain.BookingStatus
	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetRequesterBookings: invalid status=%s for requester=%s", *req.Status, req.RequesterID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByRequester(ctx, req.RequesterID, domainStatus)
	if err != nil {
		s.logger.Error("GetRequesterBookings: repository error for requester=%s: %v", req.RequesterID, err)
		return nil, fmt.Errorf("%w: GetRequesterBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetRequesterBookings: successfully fetched %d bookings for requester=%s",
		len(bookings), req.RequesterID)
	return models.FromDomainBookingList(bookings), nil
}

// GetFacilityBookings получает бронирования площадки с фильтрацией
// по статусу и периоду
// Доступно только менеджерам здания
func (s *Service) GetFacilityBookings(ctx context.Context, req *models.GetFacilityBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetFacilityBookings: fetching bookings for facility=%s, user=%s",
		req.FacilityID, req.UserID)

	// 1. Получаем площадку, чтобы узнать здание
	facility, err := s.facilityRepo.GetByID(ctx, req.FacilityID)
	if err != nil {
		if errors.Is(err, facilityRepo.ErrFacilityNotFound) {
			s.logger.Warn("GetFacilityBookings: facility id=%s not found", req.FacilityID)
			return nil, ErrFacilityNotFound
		}
		s.logger.Error("GetFacilityBookings: repository error for facility id=%s: %v", req.FacilityID, err)
		return nil, fmt.Errorf("%w: GetFacilityBookings - repository error: %v", ErrInternal, err)
	}

	// 2. Проверяем права доступа (только менеджер здания)
	if err := s.checkManagerAccess(ctx, facility.BuildingID, req.UserID); err != nil {
		return nil, err
	}

	// 3. Конвертируем request в domain фильтр
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetFacilityBookings: invalid filter for facility=%s: %v", req.FacilityID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 4. Получаем бронирования с фильтрацией
	bookings, err := s.bookingRepo.GetByFacilityWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetFacilityBookings: repository error for facility=%s: %v", req.FacilityID, err)
		return nil, fmt.Errorf("%w: GetFacilityBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetFacilityBookings: successfully fetched %d bookings for facility=%s",
		len(bookings), req.FacilityID)
	return models.FromDomainBookingList(bookings), nil
}

// GetPendingBookings получает очередь заявок здания, ожидающих решения
// Доступно только менеджерам здания
func (s *Service) GetPendingBookings(ctx context.Context, buildingID uuid.UUID, userID uuid.UUID) (*models.BookingListResponse, error) {
	s.logger.Info("GetPendingBookings: fetching pending bookings for building=%s by user=%s",
		buildingID, userID)

	// Проверяем права доступа (только менеджер здания)
	if err := s.checkManagerAccess(ctx, buildingID, userID); err != nil {
		return nil, err
	}

	bookings, err := s.bookingRepo.FindPendingByBuilding(ctx, buildingID)
	if err != nil {
		s.logger.Error("GetPendingBookings: repository error for building=%s: %v", buildingID, err)
		return nil, fmt.Errorf("%w: GetPendingBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetPendingBookings: successfully fetched %d pending bookings for building=%s",
		len(bookings), buildingID)
	return models.FromDomainBookingList(bookings), nil
}

// Вспомогательные методы

// checkUserAccess проверяет, что пользователь имеет доступ к бронированию
// Пользователь видит своё бронирование или любое бронирование здания,
// которым он управляет
func (s *Service) checkUserAccess(ctx context.Context, booking *domain.Booking, userID uuid.UUID) error {
	// Если пользователь владелец бронирования - доступ разрешён
	if booking.IsOwnedBy(userID) {
		return nil
	}

	// Иначе доступ есть только у менеджера здания площадки
	facility, err := s.facilityRepo.GetByID(ctx, booking.FacilityID)
	if err != nil {
		s.logger.Error("checkUserAccess: failed to get facility id=%s: %v", booking.FacilityID, err)
		return fmt.Errorf("%w: checkUserAccess - failed to get facility: %v", ErrInternal, err)
	}

	return s.checkManagerAccess(ctx, facility.BuildingID, userID)
}

// checkManagerAccess проверяет, что пользователь является менеджером здания
// Любой сбой BuildingService запрещает операцию
func (s *Service) checkManagerAccess(ctx context.Context, buildingID uuid.UUID, userID uuid.UUID) error {
	building, err := s.buildingClient.GetBuilding(ctx, buildingID)
	if err != nil {
		if errors.Is(err, buildingClient.ErrBuildingNotFound) {
			s.logger.Warn("checkManagerAccess: building id=%s not found", buildingID)
			return ErrBuildingNotFound
		}
		s.logger.Error("checkManagerAccess: failed to get building id=%s: %v", buildingID, err)
		return fmt.Errorf("%w: checkManagerAccess - failed to get building: %v", ErrBuildingUnavailable, err)
	}

	if !building.IsManager(userID) {
		s.logger.Warn("checkManagerAccess: user=%s is not a manager of building=%s", userID, buildingID)
		return ErrAccessDenied
	}

	return nil
}
