package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/PMS-FacilityService/internal/domain"
	facilityRepo "github.com/m04kA/PMS-FacilityService/internal/infra/storage/facility"
)

// UseCase use case для получения сетки слотов площадки на дату
type UseCase struct {
	bookingRepo  BookingRepository
	facilityRepo FacilityRepository
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	facilityRepo FacilityRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		facilityRepo: facilityRepo,
		logger:       logger,
	}
}

// Execute выполняет use case получения сетки слотов
// Сетка детерминирована: один и тот же набор бронирований на дату
// всегда дает одну и ту же последовательность слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: facility=%s, date=%s, granularity=%d",
		req.FacilityID, req.Date.Format(domain.DateFormat), req.GranularityMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем площадку
	facility, err := uc.facilityRepo.GetByID(ctx, req.FacilityID)
	if err != nil {
		if errors.Is(err, facilityRepo.ErrFacilityNotFound) {
			uc.logger.Warn("GetAvailableSlots: facility id=%s not found", req.FacilityID)
			return nil, ErrFacilityNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get facility id=%s: %v", req.FacilityID, err)
		return nil, fmt.Errorf("%w: failed to get facility: %v", ErrInternal, err)
	}

	// Деактивированная площадка для жителей не существует
	if !facility.IsActive {
		uc.logger.Warn("GetAvailableSlots: facility id=%s is inactive", req.FacilityID)
		return nil, ErrFacilityNotFound
	}

	// 3. Активные бронирования за сутки запрошенной даты
	dayStart := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, req.Date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	bookings, err := uc.bookingRepo.FindActiveByFacility(ctx, req.FacilityID, dayStart, dayEnd)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 4. Строим сетку слотов
	granularity := req.GranularityMinutes
	if granularity == 0 {
		granularity = domain.DefaultSlotGranularityMinutes
	}

	grid := domain.ComputeSlots(facility, dayStart, bookings, granularity)

	slots := make([]Slot, len(grid))
	for i, s := range grid {
		slots[i] = Slot{
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
			Available: s.Available,
		}
	}

	uc.logger.Info("GetAvailableSlots: generated %d slots for facility=%s, date=%s",
		len(slots), req.FacilityID, req.Date.Format(domain.DateFormat))

	return &Response{
		FacilityID:         req.FacilityID,
		Date:               dayStart,
		GranularityMinutes: granularity,
		Slots:              slots,
	}, nil
}
