package facilities

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PMS-FacilityService/internal/domain"
	facilityRepo "github.com/m04kA/PMS-FacilityService/internal/infra/storage/facility"
	"github.com/m04kA/PMS-FacilityService/internal/integrations/buildingservice"
	"github.com/m04kA/PMS-FacilityService/internal/service/facilities/models"
	"github.com/m04kA/PMS-FacilityService/pkg/ptr"
)

type mockFacilityRepo struct {
	mock.Mock
}

func (m *mockFacilityRepo) Create(ctx context.Context, facility *domain.Facility) (*domain.Facility, error) {
	args := m.Called(ctx, facility)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Facility), args.Error(1)
}

func (m *mockFacilityRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Facility, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Facility), args.Error(1)
}

func (m *mockFacilityRepo) ListByBuilding(ctx context.Context, buildingID uuid.UUID, filter domain.FacilityListFilter) ([]*domain.Facility, error) {
	args := m.Called(ctx, buildingID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Facility), args.Error(1)
}

func (m *mockFacilityRepo) Update(ctx context.Context, facility *domain.Facility) (*domain.Facility, error) {
	args := m.Called(ctx, facility)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Facility), args.Error(1)
}

func (m *mockFacilityRepo) Deactivate(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockBuildingClient struct {
	mock.Mock
}

func (m *mockBuildingClient) GetBuilding(ctx context.Context, buildingID uuid.UUID) (*buildingservice.Building, error) {
	args := m.Called(ctx, buildingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*buildingservice.Building), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type testEnv struct {
	svc        *Service
	facilities *mockFacilityRepo
	buildings  *mockBuildingClient
	managerID  uuid.UUID
	residentID uuid.UUID
	building   *buildingservice.Building
}

func newTestEnv() *testEnv {
	env := &testEnv{
		facilities: new(mockFacilityRepo),
		buildings:  new(mockBuildingClient),
		managerID:  uuid.New(),
		residentID: uuid.New(),
	}

	env.building = &buildingservice.Building{
		ID:          uuid.New(),
		Name:        "Maple Court",
		ManagerIDs:  []uuid.UUID{env.managerID},
		ResidentIDs: []uuid.UUID{env.residentID},
	}

	env.svc = NewService(env.facilities, env.buildings, nopLogger{})

	return env
}

func (env *testEnv) expectManagerCheck() {
	env.buildings.On("GetBuilding", mock.Anything, env.building.ID).Return(env.building, nil).Once()
}

func (env *testEnv) newFacility() *domain.Facility {
	return &domain.Facility{
		ID:            uuid.New(),
		BuildingID:    env.building.ID,
		Name:          "Gym",
		Type:          domain.FacilityGym,
		IsBookable:    true,
		AvailableDays: domain.AllWeekdays,
		IsActive:      true,
		CreatedAt:     time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt:     time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestFacilityCreate_AsManager(t *testing.T) {
	env := newTestEnv()
	env.expectManagerCheck()

	created := env.newFacility()
	env.facilities.On("Create", mock.Anything, mock.MatchedBy(func(f *domain.Facility) bool {
		return f.BuildingID == env.building.ID &&
			f.Name == "Gym" &&
			f.Type == domain.FacilityGym &&
			f.IsBookable && f.IsActive &&
			f.AvailableDays == domain.AllWeekdays
	})).Return(created, nil).Once()

	resp, err := env.svc.Create(context.Background(), &models.CreateFacilityRequest{
		UserID:     env.managerID,
		BuildingID: env.building.ID,
		Name:       "Gym",
		Type:       "gym",
	})

	require.NoError(t, err)
	assert.Equal(t, created.ID, resp.ID)
	assert.True(t, resp.IsActive)
}

func TestFacilityCreate_ResidentDenied(t *testing.T) {
	env := newTestEnv()
	env.expectManagerCheck()

	resp, err := env.svc.Create(context.Background(), &models.CreateFacilityRequest{
		UserID:     env.residentID,
		BuildingID: env.building.ID,
		Name:       "Gym",
		Type:       "gym",
	})

	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Nil(t, resp)
	env.facilities.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestFacilityCreate_DuplicateName(t *testing.T) {
	env := newTestEnv()
	env.expectManagerCheck()

	env.facilities.On("Create", mock.Anything, mock.Anything).
		Return(nil, facilityRepo.ErrDuplicateName).Once()

	resp, err := env.svc.Create(context.Background(), &models.CreateFacilityRequest{
		UserID:     env.managerID,
		BuildingID: env.building.ID,
		Name:       "Gym",
		Type:       "gym",
	})

	assert.ErrorIs(t, err, ErrDuplicateName)
	assert.Nil(t, resp)
}

func TestFacilityCreate_UnknownTypeRejected(t *testing.T) {
	env := newTestEnv()

	resp, err := env.svc.Create(context.Background(), &models.CreateFacilityRequest{
		UserID:     env.managerID,
		BuildingID: env.building.ID,
		Name:       "Helipad",
		Type:       "helipad",
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Nil(t, resp)
	// Валидация отсекает запрос до обращения к внешнему сервису
	env.buildings.AssertNotCalled(t, "GetBuilding", mock.Anything, mock.Anything)
}

func TestFacilityCreate_WindowOrderValidated(t *testing.T) {
	env := newTestEnv()

	resp, err := env.svc.Create(context.Background(), &models.CreateFacilityRequest{
		UserID:        env.managerID,
		BuildingID:    env.building.ID,
		Name:          "Sauna",
		Type:          "sauna",
		AvailableFrom: ptr.Ptr("18:00"),
		AvailableTo:   ptr.Ptr("10:00"),
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Nil(t, resp)
}

func TestFacilityCreate_NegativeFeeRejected(t *testing.T) {
	env := newTestEnv()

	resp, err := env.svc.Create(context.Background(), &models.CreateFacilityRequest{
		UserID:     env.managerID,
		BuildingID: env.building.ID,
		Name:       "Sauna",
		Type:       "sauna",
		HourlyFee:  ptr.Ptr(-10.0),
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Nil(t, resp)
}

func TestFacilityGetByID_ReturnsFacility(t *testing.T) {
	env := newTestEnv()
	facility := env.newFacility()

	env.facilities.On("GetByID", mock.Anything, facility.ID).Return(facility, nil).Once()

	resp, err := env.svc.GetByID(context.Background(), facility.ID)

	require.NoError(t, err)
	assert.Equal(t, facility.ID, resp.ID)
	assert.Equal(t, "gym", resp.Type)
}

func TestFacilityGetByID_NotFound(t *testing.T) {
	env := newTestEnv()
	id := uuid.New()

	env.facilities.On("GetByID", mock.Anything, id).
		Return(nil, facilityRepo.ErrFacilityNotFound).Once()

	resp, err := env.svc.GetByID(context.Background(), id)

	assert.ErrorIs(t, err, ErrFacilityNotFound)
	assert.Nil(t, resp)
}

func TestFacilityList_ActiveOnlyByDefault(t *testing.T) {
	env := newTestEnv()
	facility := env.newFacility()

	env.facilities.On("ListByBuilding", mock.Anything, env.building.ID,
		mock.MatchedBy(func(f domain.FacilityListFilter) bool {
			return !f.IncludeInactive && f.Type == nil
		})).Return([]*domain.Facility{facility}, nil).Once()

	resp, err := env.svc.ListByBuilding(context.Background(), &models.ListFacilitiesRequest{
		UserID:     env.residentID,
		BuildingID: env.building.ID,
	})

	require.NoError(t, err)
	require.Len(t, resp.Facilities, 1)
	// Без includeInactive список не требует прав менеджера
	env.buildings.AssertNotCalled(t, "GetBuilding", mock.Anything, mock.Anything)
}

func TestFacilityList_IncludeInactiveNeedsManager(t *testing.T) {
	env := newTestEnv()
	env.expectManagerCheck()

	env.facilities.On("ListByBuilding", mock.Anything, env.building.ID,
		mock.MatchedBy(func(f domain.FacilityListFilter) bool {
			return f.IncludeInactive
		})).Return([]*domain.Facility{}, nil).Once()

	resp, err := env.svc.ListByBuilding(context.Background(), &models.ListFacilitiesRequest{
		UserID:          env.managerID,
		BuildingID:      env.building.ID,
		IncludeInactive: true,
	})

	require.NoError(t, err)
	assert.Empty(t, resp.Facilities)
}

func TestFacilityList_IncludeInactiveDeniedForResident(t *testing.T) {
	env := newTestEnv()
	env.expectManagerCheck()

	resp, err := env.svc.ListByBuilding(context.Background(), &models.ListFacilitiesRequest{
		UserID:          env.residentID,
		BuildingID:      env.building.ID,
		IncludeInactive: true,
	})

	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Nil(t, resp)
	env.facilities.AssertNotCalled(t, "ListByBuilding", mock.Anything, mock.Anything, mock.Anything)
}

func TestFacilityList_TypeFilter(t *testing.T) {
	env := newTestEnv()

	env.facilities.On("ListByBuilding", mock.Anything, env.building.ID,
		mock.MatchedBy(func(f domain.FacilityListFilter) bool {
			return f.Type != nil && *f.Type == domain.FacilitySauna
		})).Return([]*domain.Facility{}, nil).Once()

	resp, err := env.svc.ListByBuilding(context.Background(), &models.ListFacilitiesRequest{
		UserID:     env.residentID,
		BuildingID: env.building.ID,
		Type:       ptr.Ptr("sauna"),
	})

	require.NoError(t, err)
	assert.Empty(t, resp.Facilities)
}

func TestFacilityList_UnknownTypeRejected(t *testing.T) {
	env := newTestEnv()

	resp, err := env.svc.ListByBuilding(context.Background(), &models.ListFacilitiesRequest{
		UserID:     env.residentID,
		BuildingID: env.building.ID,
		Type:       ptr.Ptr("helipad"),
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Nil(t, resp)
}

func TestFacilityUpdate_PartialUpdateKeepsOtherFields(t *testing.T) {
	env := newTestEnv()
	env.expectManagerCheck()

	existing := env.newFacility()
	existing.HourlyFee = ptr.Ptr(25.0)

	env.facilities.On("GetByID", mock.Anything, existing.ID).Return(existing, nil).Once()
	env.facilities.On("Update", mock.Anything, mock.MatchedBy(func(f *domain.Facility) bool {
		return f.ID == existing.ID &&
			f.Name == "Fitness Room" &&
			f.HourlyFee != nil && *f.HourlyFee == 25.0
	})).Return(existing, nil).Once()

	resp, err := env.svc.Update(context.Background(), existing.ID, &models.UpdateFacilityRequest{
		UserID:     env.managerID,
		BuildingID: env.building.ID,
		Name:       ptr.Ptr("Fitness Room"),
	})

	require.NoError(t, err)
	assert.Equal(t, existing.ID, resp.ID)
}

func TestFacilityUpdate_ForeignBuildingHiddenAsNotFound(t *testing.T) {
	env := newTestEnv()
	existing := env.newFacility()

	env.facilities.On("GetByID", mock.Anything, existing.ID).Return(existing, nil).Once()

	resp, err := env.svc.Update(context.Background(), existing.ID, &models.UpdateFacilityRequest{
		UserID:     env.managerID,
		BuildingID: uuid.New(),
		Name:       ptr.Ptr("Fitness Room"),
	})

	assert.ErrorIs(t, err, ErrFacilityNotFound)
	assert.Nil(t, resp)
	env.facilities.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestFacilityUpdate_InvalidResultRejected(t *testing.T) {
	env := newTestEnv()
	existing := env.newFacility()

	env.facilities.On("GetByID", mock.Anything, existing.ID).Return(existing, nil).Once()

	resp, err := env.svc.Update(context.Background(), existing.ID, &models.UpdateFacilityRequest{
		UserID:     env.managerID,
		BuildingID: env.building.ID,
		HourlyFee:  ptr.Ptr(-5.0),
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Nil(t, resp)
	env.facilities.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestFacilityUpdate_NotFound(t *testing.T) {
	env := newTestEnv()
	id := uuid.New()

	env.facilities.On("GetByID", mock.Anything, id).
		Return(nil, facilityRepo.ErrFacilityNotFound).Once()

	resp, err := env.svc.Update(context.Background(), id, &models.UpdateFacilityRequest{
		UserID:     env.managerID,
		BuildingID: env.building.ID,
	})

	assert.ErrorIs(t, err, ErrFacilityNotFound)
	assert.Nil(t, resp)
}

func TestFacilityDeactivate_AsManager(t *testing.T) {
	env := newTestEnv()
	env.expectManagerCheck()

	existing := env.newFacility()
	env.facilities.On("GetByID", mock.Anything, existing.ID).Return(existing, nil).Once()
	env.facilities.On("Deactivate", mock.Anything, existing.ID).Return(nil).Once()

	err := env.svc.Deactivate(context.Background(), existing.ID, env.building.ID, env.managerID)

	require.NoError(t, err)
	env.facilities.AssertCalled(t, "Deactivate", mock.Anything, existing.ID)
}

func TestFacilityDeactivate_ForeignBuildingHiddenAsNotFound(t *testing.T) {
	env := newTestEnv()
	existing := env.newFacility()

	env.facilities.On("GetByID", mock.Anything, existing.ID).Return(existing, nil).Once()

	err := env.svc.Deactivate(context.Background(), existing.ID, uuid.New(), env.managerID)

	assert.ErrorIs(t, err, ErrFacilityNotFound)
	env.facilities.AssertNotCalled(t, "Deactivate", mock.Anything, mock.Anything)
}

func TestFacilityDeactivate_ResidentDenied(t *testing.T) {
	env := newTestEnv()
	env.expectManagerCheck()

	existing := env.newFacility()
	env.facilities.On("GetByID", mock.Anything, existing.ID).Return(existing, nil).Once()

	err := env.svc.Deactivate(context.Background(), existing.ID, env.building.ID, env.residentID)

	assert.ErrorIs(t, err, ErrAccessDenied)
	env.facilities.AssertNotCalled(t, "Deactivate", mock.Anything, mock.Anything)
}
