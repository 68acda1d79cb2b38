package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/m04kA/PMS-FacilityService/internal/domain"
	bookingRepo "github.com/m04kA/PMS-FacilityService/internal/infra/storage/booking"
	facilityRepo "github.com/m04kA/PMS-FacilityService/internal/infra/storage/facility"
	buildingClient "github.com/m04kA/PMS-FacilityService/internal/integrations/buildingservice"
)

// Код ошибки PostgreSQL для сбоя сериализации
const pgSerializationFailure = "40001"

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo    BookingRepository
	facilityRepo   FacilityRepository
	buildingClient BuildingServiceClient
	txManager      TransactionManager
	timeProvider   TimeProvider
	metrics        Metrics
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	facilityRepo FacilityRepository,
	buildingClient BuildingServiceClient,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:    bookingRepo,
		facilityRepo:   facilityRepo,
		buildingClient: buildingClient,
		txManager:      txManager,
		timeProvider:   &RealTimeProvider{},
		metrics:        metrics,
		logger:         logger,
	}
}

// Execute выполняет use case создания бронирования
// Проверка доступности и вставка выполняются в сериализуемой транзакции;
// exclusion constraint таблицы bookings страхует гонку на уровне БД
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: requester=%s, facility=%s, start=%s, end=%s",
		req.RequesterID, req.FacilityID,
		req.StartTime.Format(time.RFC3339), req.EndTime.Format(time.RFC3339))

	// 1. Получаем текущее время
	now := uc.timeProvider.Now()

	// 2. Валидация входных данных
	if err := validateRequest(req, now); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 3. Получаем площадку
	facility, err := uc.facilityRepo.GetByID(ctx, req.FacilityID)
	if err != nil {
		if errors.Is(err, facilityRepo.ErrFacilityNotFound) {
			uc.logger.Warn("CreateBooking: facility id=%s not found", req.FacilityID)
			return nil, ErrFacilityNotFound
		}
		uc.logger.Error("CreateBooking: failed to get facility id=%s: %v", req.FacilityID, err)
		return nil, fmt.Errorf("%w: failed to get facility: %v", ErrInternal, err)
	}

	// 4. Площадка должна принимать бронирования
	if !facility.AcceptsBookings() {
		uc.logger.Warn("CreateBooking: facility id=%s is not bookable (active=%t, bookable=%t)",
			facility.ID, facility.IsActive, facility.IsBookable)
		return nil, ErrFacilityNotBookable
	}

	// 5. Проверяем принадлежность пользователя к зданию площадки
	building, err := uc.buildingClient.GetBuilding(ctx, facility.BuildingID)
	if err != nil {
		if errors.Is(err, buildingClient.ErrBuildingNotFound) {
			uc.logger.Error("CreateBooking: building id=%s of facility id=%s not found",
				facility.BuildingID, facility.ID)
			return nil, fmt.Errorf("%w: facility references unknown building", ErrInternal)
		}
		uc.logger.Error("CreateBooking: failed to get building id=%s: %v", facility.BuildingID, err)
		return nil, fmt.Errorf("%w: %v", ErrBuildingUnavailable, err)
	}

	if !building.IsMember(req.RequesterID) {
		uc.logger.Warn("CreateBooking: user id=%s is not a member of building id=%s",
			req.RequesterID, building.ID)
		return nil, ErrNotBuildingMember
	}

	// Переменная для хранения результата
	var result *domain.Booking

	// 6. Проверка доступности и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Активные бронирования, пересекающие запрошенный интервал,
		// с блокировкой FOR UPDATE
		existing, err := uc.bookingRepo.FindActiveByFacility(txCtx, req.FacilityID, req.StartTime, req.EndTime)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get active bookings: %v", err)
			return fmt.Errorf("%w: failed to get active bookings: %v", ErrInternal, err)
		}

		// 6.2. Политика площадки, конфликты, расчет стоимости
		domainReq := &domain.BookingRequest{
			FacilityID: req.FacilityID,
			StartTime:  req.StartTime,
			EndTime:    req.EndTime,
			Purpose:    req.Purpose,
			Attendees:  req.Attendees,
		}

		draft, err := domain.ValidateAndPrice(facility, domainReq, existing, now)
		if err != nil {
			uc.logger.Warn("CreateBooking: request rejected: %v", err)
			return err
		}

		uc.logger.Info("CreateBooking: slot available, fee=%.2f, deposit=%.2f, status=%s",
			draft.Fee, draft.Deposit, draft.InitialStatus)

		// 6.3. Создаем бронирование с ценовым снимком
		booking := &domain.Booking{
			FacilityID:  req.FacilityID,
			RequesterID: req.RequesterID,
			StartTime:   req.StartTime,
			EndTime:     req.EndTime,
			Status:      draft.InitialStatus,
			Purpose:     req.Purpose,
			Attendees:   req.Attendees,
			TotalFee:    draft.Fee,
			DepositDue:  draft.Deposit,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSlotTaken) {
				// Проигрыш гонки: exclusion constraint сработал на вставке
				uc.logger.Warn("CreateBooking: slot taken at insert: %v", err)
				return fmt.Errorf("%w: slot was taken concurrently", domain.ErrSlotConflict)
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		// Исчерпанные повторы сериализации равносильны проигрышу слота
		if isSerializationFailure(err) {
			uc.logger.Warn("CreateBooking: serialization retries exhausted: %v", err)
			uc.metrics.IncBookingConflict()
			return nil, fmt.Errorf("%w: concurrent booking attempt", domain.ErrSlotConflict)
		}
		if errors.Is(err, domain.ErrSlotConflict) {
			uc.metrics.IncBookingConflict()
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%s status=%s", result.ID, result.Status)
	uc.metrics.IncBookingCreated(string(result.Status))

	// Конвертируем в response
	return &Response{
		ID:          result.ID,
		FacilityID:  result.FacilityID,
		RequesterID: result.RequesterID,
		StartTime:   result.StartTime,
		EndTime:     result.EndTime,
		Status:      string(result.Status),
		Purpose:     result.Purpose,
		Attendees:   result.Attendees,
		TotalFee:    result.TotalFee,
		DepositDue:  result.DepositDue,
		CreatedAt:   result.CreatedAt,
		UpdatedAt:   result.UpdatedAt,
	}, nil
}

// isSerializationFailure проверяет, что ошибка вызвана сбоем сериализации
// (PostgreSQL code 40001), пробравшимся через обертки транзакций
func isSerializationFailure(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pgSerializationFailure
}
