package facilities

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/PMS-FacilityService/internal/domain"
	facilityRepo "github.com/m04kA/PMS-FacilityService/internal/infra/storage/facility"
	buildingClient "github.com/m04kA/PMS-FacilityService/internal/integrations/buildingservice"
	"github.com/m04kA/PMS-FacilityService/internal/service/facilities/models"
)

// Service сервис для управления площадками здания
type Service struct {
	facilityRepo   FacilityRepository
	buildingClient BuildingServiceClient
	logger         Logger
}

// NewService создает новый экземпляр сервиса площадок
func NewService(
	facilityRepo FacilityRepository,
	buildingClient BuildingServiceClient,
	logger Logger,
) *Service {
	return &Service{
		facilityRepo:   facilityRepo,
		buildingClient: buildingClient,
		logger:         logger,
	}
}

// Create создает новую площадку в здании
// Доступно только менеджерам здания
func (s *Service) Create(ctx context.Context, req *models.CreateFacilityRequest) (*models.FacilityResponse, error) {
	s.logger.Info("Create: creating facility name=%q in building=%s by user=%s",
		req.Name, req.BuildingID, req.UserID)

	// 1. Конвертируем запрос в domain модель
	facility, err := req.ToDomainFacility()
	if err != nil {
		s.logger.Warn("Create: invalid request for building=%s: %v", req.BuildingID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 2. Валидируем параметры площадки
	if err := s.validateFacilityData(facility); err != nil {
		s.logger.Warn("Create: validation failed for building=%s: %v", req.BuildingID, err)
		return nil, err
	}

	// 3. Проверяем права доступа (только менеджер здания)
	if err := s.checkManagerAccess(ctx, req.BuildingID, req.UserID); err != nil {
		return nil, err
	}

	// 4. Создаем площадку
	created, err := s.facilityRepo.Create(ctx, facility)
	if err != nil {
		if errors.Is(err, facilityRepo.ErrDuplicateName) {
			s.logger.Warn("Create: facility name=%q already exists in building=%s", req.Name, req.BuildingID)
			return nil, ErrDuplicateName
		}
		s.logger.Error("Create: repository error for building=%s: %v", req.BuildingID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created facility id=%s in building=%s", created.ID, req.BuildingID)
	return models.FromDomainFacility(created), nil
}

// GetByID получает площадку по ID
// Публичный метод - доступен всем жителям здания
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*models.FacilityResponse, error) {
	s.logger.Info("GetByID: fetching facility id=%s", id)

	facility, err := s.facilityRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, facilityRepo.ErrFacilityNotFound) {
			s.logger.Warn("GetByID: facility id=%s not found", id)
			return nil, ErrFacilityNotFound
		}
		s.logger.Error("GetByID: repository error for facility id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetByID: successfully fetched facility id=%s", id)
	return models.FromDomainFacility(facility), nil
}

// ListByBuilding получает список площадок здания
// По умолчанию возвращает только активные площадки; includeInactive
// доступен только менеджерам здания
func (s *Service) ListByBuilding(ctx context.Context, req *models.ListFacilitiesRequest) (*models.FacilityListResponse, error) {
	s.logger.Info("ListByBuilding: fetching facilities for building=%s, type=%v, includeInactive=%v",
		req.BuildingID, req.Type, req.IncludeInactive)

	// 1. Конвертируем request в domain фильтр
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("ListByBuilding: invalid filter for building=%s: %v", req.BuildingID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 2. Деактивированные площадки видят только менеджеры здания
	if req.IncludeInactive {
		if err := s.checkManagerAccess(ctx, req.BuildingID, req.UserID); err != nil {
			return nil, err
		}
	}

	// 3. Получаем список площадок
	facilities, err := s.facilityRepo.ListByBuilding(ctx, req.BuildingID, filter)
	if err != nil {
		s.logger.Error("ListByBuilding: repository error for building=%s: %v", req.BuildingID, err)
		return nil, fmt.Errorf("%w: ListByBuilding - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByBuilding: successfully fetched %d facilities for building=%s",
		len(facilities), req.BuildingID)
	return models.FromDomainFacilityList(facilities), nil
}

// Update обновляет существующую площадку
// Доступно только менеджерам здания
// Поддерживает частичное обновление - обновляются только указанные поля
func (s *Service) Update(ctx context.Context, id uuid.UUID, req *models.UpdateFacilityRequest) (*models.FacilityResponse, error) {
	s.logger.Info("Update: updating facility id=%s by user=%s", id, req.UserID)

	// 1. Получаем существующую площадку
	facility, err := s.facilityRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, facilityRepo.ErrFacilityNotFound) {
			s.logger.Warn("Update: facility id=%s not found", id)
			return nil, ErrFacilityNotFound
		}
		s.logger.Error("Update: repository error for facility id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	// Площадка должна принадлежать зданию из пути запроса
	if facility.BuildingID != req.BuildingID {
		s.logger.Warn("Update: facility id=%s does not belong to building=%s", id, req.BuildingID)
		return nil, ErrFacilityNotFound
	}

	// 2. Применяем обновления к копии и валидируем результат
	tempFacility := *facility
	if err := req.ApplyToFacility(&tempFacility); err != nil {
		s.logger.Warn("Update: invalid request for facility id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.validateFacilityData(&tempFacility); err != nil {
		s.logger.Warn("Update: validation failed for facility id=%s: %v", id, err)
		return nil, err
	}

	// 3. Проверяем права доступа (только менеджер здания)
	if err := s.checkManagerAccess(ctx, facility.BuildingID, req.UserID); err != nil {
		return nil, err
	}

	// 4. Применяем обновления к оригиналу и сохраняем
	if err := req.ApplyToFacility(facility); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	updated, err := s.facilityRepo.Update(ctx, facility)
	if err != nil {
		if errors.Is(err, facilityRepo.ErrFacilityNotFound) {
			s.logger.Warn("Update: facility id=%s not found during update", id)
			return nil, ErrFacilityNotFound
		}
		if errors.Is(err, facilityRepo.ErrDuplicateName) {
			s.logger.Warn("Update: facility name=%q already exists in building=%s",
				facility.Name, facility.BuildingID)
			return nil, ErrDuplicateName
		}
		s.logger.Error("Update: repository error for facility id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated facility id=%s", id)
	return models.FromDomainFacility(updated), nil
}

// Deactivate деактивирует площадку (мягкое удаление)
// Доступно только менеджерам здания
// Существующие бронирования при этом не отменяются
func (s *Service) Deactivate(ctx context.Context, id uuid.UUID, buildingID uuid.UUID, userID uuid.UUID) error {
	s.logger.Info("Deactivate: deactivating facility id=%s by user=%s", id, userID)

	// 1. Получаем площадку для проверки принадлежности зданию
	facility, err := s.facilityRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, facilityRepo.ErrFacilityNotFound) {
			s.logger.Warn("Deactivate: facility id=%s not found", id)
			return ErrFacilityNotFound
		}
		s.logger.Error("Deactivate: repository error for facility id=%s: %v", id, err)
		return fmt.Errorf("%w: Deactivate - repository error: %v", ErrInternal, err)
	}

	if facility.BuildingID != buildingID {
		s.logger.Warn("Deactivate: facility id=%s does not belong to building=%s", id, buildingID)
		return ErrFacilityNotFound
	}

	// 2. Проверяем права доступа (только менеджер здания)
	if err := s.checkManagerAccess(ctx, facility.BuildingID, userID); err != nil {
		return err
	}

	// 3. Деактивируем площадку
	if err := s.facilityRepo.Deactivate(ctx, id); err != nil {
		if errors.Is(err, facilityRepo.ErrFacilityNotFound) {
			s.logger.Warn("Deactivate: facility id=%s not found during deactivation", id)
			return ErrFacilityNotFound
		}
		s.logger.Error("Deactivate: repository error for facility id=%s: %v", id, err)
		return fmt.Errorf("%w: Deactivate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Deactivate: successfully deactivated facility id=%s", id)
	return nil
}

// Вспомогательные методы

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

// validateFacilityData валидирует параметры площадки
func (s *Service) validateFacilityData(f *domain.Facility) error {
	// Проверяем название
	if f.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if len(f.Name) > 255 {
		return fmt.Errorf("%w: name must be at most 255 characters", ErrInvalidInput)
	}

	// Проверяем тип площадки
	if !f.Type.IsValid() {
		return fmt.Errorf("%w: unknown facility type %q", ErrInvalidInput, f.Type)
	}

	// Проверяем вместимость
	if f.Capacity != nil && (*f.Capacity <= 0 || *f.Capacity > 10000) {
		return fmt.Errorf("%w: capacity must be between 1 and 10000", ErrInvalidInput)
	}

	// Проверяем ограничения бронирования
	if f.MaxBookingHours != nil && (*f.MaxBookingHours <= 0 || *f.MaxBookingHours > 168) {
		return fmt.Errorf("%w: maxBookingHours must be between 1 and 168", ErrInvalidInput)
	}
	if f.MaxAdvanceDays != nil && (*f.MaxAdvanceDays < 0 || *f.MaxAdvanceDays > 365) {
		return fmt.Errorf("%w: maxAdvanceDays must be between 0 and 365", ErrInvalidInput)
	}
	if f.MinAdvanceHours != nil && (*f.MinAdvanceHours < 0 || *f.MinAdvanceHours > 720) {
		return fmt.Errorf("%w: minAdvanceHours must be between 0 and 720", ErrInvalidInput)
	}

	// Проверяем порядок границ окна доступности
	if f.AvailableFrom != nil && f.AvailableTo != nil {
		if !f.AvailableFrom.IsBefore(*f.AvailableTo) {
			return fmt.Errorf("%w: availableFrom must be before availableTo", ErrInvalidInput)
		}
	}

	// Проверяем тарифы
	if f.HourlyFee != nil && *f.HourlyFee < 0 {
		return fmt.Errorf("%w: hourlyFee must not be negative", ErrInvalidInput)
	}
	if f.DepositAmount != nil && *f.DepositAmount < 0 {
		return fmt.Errorf("%w: depositAmount must not be negative", ErrInvalidInput)
	}

	return nil
}
