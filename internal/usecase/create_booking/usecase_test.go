package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PMS-FacilityService/internal/domain"
	bookingRepo "github.com/m04kA/PMS-FacilityService/internal/infra/storage/booking"
	facilityRepo "github.com/m04kA/PMS-FacilityService/internal/infra/storage/facility"
	"github.com/m04kA/PMS-FacilityService/internal/integrations/buildingservice"
	"github.com/m04kA/PMS-FacilityService/pkg/metrics"
	"github.com/m04kA/PMS-FacilityService/pkg/types"
)

// Понедельник, 08:00 UTC
var testNow = time.Date(2025, 3, 3, 8, 0, 0, 0, time.UTC)

type mockBookingRepo struct {
	mock.Mock
}

func (m *mockBookingRepo) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	args := m.Called(ctx, booking)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *mockBookingRepo) FindActiveByFacility(ctx context.Context, facilityID uuid.UUID, from, to time.Time) ([]*domain.Booking, error) {
	args := m.Called(ctx, facilityID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Booking), args.Error(1)
}

type mockFacilityRepo struct {
	mock.Mock
}

func (m *mockFacilityRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Facility, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Facility), args.Error(1)
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

// inlineTxManager выполняет замыкание без реальной транзакции
type inlineTxManager struct{}

func (inlineTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time { return p.now }

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func newTestUseCase() (*UseCase, *mockBookingRepo, *mockFacilityRepo, *mockBuildingClient) {
	bookings := new(mockBookingRepo)
	facilities := new(mockFacilityRepo)
	buildings := new(mockBuildingClient)

	uc := NewUseCase(bookings, facilities, buildings, inlineTxManager{}, (*metrics.Metrics)(nil), nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: testNow}

	return uc, bookings, facilities, buildings
}

func newTestFacility(buildingID uuid.UUID) *domain.Facility {
	from := types.TimeString("09:00")
	to := types.TimeString("18:00")
	fee := 25.0

	return &domain.Facility{
		ID:            uuid.New(),
		BuildingID:    buildingID,
		Name:          "Meeting Room A",
		Type:          domain.FacilityMeetingRoom,
		IsBookable:    true,
		IsActive:      true,
		AvailableFrom: &from,
		AvailableTo:   &to,
		AvailableDays: domain.AllWeekdays,
		HourlyFee:     &fee,
	}
}

func newTestBuilding(buildingID uuid.UUID, residents ...uuid.UUID) *buildingservice.Building {
	return &buildingservice.Building{
		ID:          buildingID,
		Name:        "Riverside Tower",
		ResidentIDs: residents,
	}
}

func TestCreateBooking_InstantConfirmation(t *testing.T) {
	uc, bookings, facilities, buildings := newTestUseCase()

	buildingID := uuid.New()
	requesterID := uuid.New()
	facility := newTestFacility(buildingID)

	req := &Request{
		RequesterID: requesterID,
		FacilityID:  facility.ID,
		StartTime:   testNow.Add(2 * time.Hour), // 10:00
		EndTime:     testNow.Add(4 * time.Hour), // 12:00
	}

	facilities.On("GetByID", mock.Anything, facility.ID).Return(facility, nil).Once()
	buildings.On("GetBuilding", mock.Anything, buildingID).
		Return(newTestBuilding(buildingID, requesterID), nil).Once()
	bookings.On("FindActiveByFacility", mock.Anything, facility.ID, req.StartTime, req.EndTime).
		Return([]*domain.Booking{}, nil).Once()

	created := &domain.Booking{
		ID:          uuid.New(),
		FacilityID:  facility.ID,
		RequesterID: requesterID,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Status:      domain.StatusApproved,
		TotalFee:    50.0,
		CreatedAt:   testNow,
		UpdatedAt:   testNow,
	}
	// Без requiresApproval бронь уходит в БД сразу подтвержденной,
	// с ценовым снимком по тарифу площадки
	bookings.On("Create", mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.Status == domain.StatusApproved && b.TotalFee == 50.0 && b.DepositDue == 0
	})).Return(created, nil).Once()

	resp, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, created.ID, resp.ID)
	assert.Equal(t, "approved", resp.Status)
	assert.InDelta(t, 50.0, resp.TotalFee, 1e-9)

	bookings.AssertExpectations(t)
	facilities.AssertExpectations(t)
	buildings.AssertExpectations(t)
}

func TestCreateBooking_ApprovalFlowStartsPending(t *testing.T) {
	uc, bookings, facilities, buildings := newTestUseCase()

	buildingID := uuid.New()
	requesterID := uuid.New()
	facility := newTestFacility(buildingID)
	facility.RequiresApproval = true
	deposit := 200.0
	facility.DepositAmount = &deposit

	req := &Request{
		RequesterID: requesterID,
		FacilityID:  facility.ID,
		StartTime:   testNow.Add(2 * time.Hour),
		EndTime:     testNow.Add(3 * time.Hour),
	}

	facilities.On("GetByID", mock.Anything, facility.ID).Return(facility, nil).Once()
	buildings.On("GetBuilding", mock.Anything, buildingID).
		Return(newTestBuilding(buildingID, requesterID), nil).Once()
	bookings.On("FindActiveByFacility", mock.Anything, facility.ID, req.StartTime, req.EndTime).
		Return([]*domain.Booking{}, nil).Once()
	bookings.On("Create", mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.Status == domain.StatusPending && b.DepositDue == 200.0
	})).Return(&domain.Booking{
		ID:         uuid.New(),
		Status:     domain.StatusPending,
		TotalFee:   25.0,
		DepositDue: 200.0,
	}, nil).Once()

	resp, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "pending", resp.Status)
	assert.InDelta(t, 200.0, resp.DepositDue, 1e-9)

	bookings.AssertExpectations(t)
}

func TestCreateBooking_FacilityNotFound(t *testing.T) {
	uc, _, facilities, _ := newTestUseCase()

	facilityID := uuid.New()
	facilities.On("GetByID", mock.Anything, facilityID).
		Return(nil, facilityRepo.ErrFacilityNotFound).Once()

	_, err := uc.Execute(context.Background(), &Request{
		RequesterID: uuid.New(),
		FacilityID:  facilityID,
		StartTime:   testNow.Add(2 * time.Hour),
		EndTime:     testNow.Add(3 * time.Hour),
	})

	assert.ErrorIs(t, err, ErrFacilityNotFound)
}

func TestCreateBooking_FacilityNotBookable(t *testing.T) {
	uc, bookings, facilities, buildings := newTestUseCase()

	facility := newTestFacility(uuid.New())
	facility.IsBookable = false

	facilities.On("GetByID", mock.Anything, facility.ID).Return(facility, nil).Once()

	_, err := uc.Execute(context.Background(), &Request{
		RequesterID: uuid.New(),
		FacilityID:  facility.ID,
		StartTime:   testNow.Add(2 * time.Hour),
		EndTime:     testNow.Add(3 * time.Hour),
	})

	assert.ErrorIs(t, err, ErrFacilityNotBookable)
	buildings.AssertNotCalled(t, "GetBuilding", mock.Anything, mock.Anything)
	bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateBooking_NotBuildingMember(t *testing.T) {
	uc, bookings, facilities, buildings := newTestUseCase()

	buildingID := uuid.New()
	facility := newTestFacility(buildingID)
	stranger := uuid.New()

	facilities.On("GetByID", mock.Anything, facility.ID).Return(facility, nil).Once()
	// В списках здания только другие жители
	buildings.On("GetBuilding", mock.Anything, buildingID).
		Return(newTestBuilding(buildingID, uuid.New(), uuid.New()), nil).Once()

	_, err := uc.Execute(context.Background(), &Request{
		RequesterID: stranger,
		FacilityID:  facility.ID,
		StartTime:   testNow.Add(2 * time.Hour),
		EndTime:     testNow.Add(3 * time.Hour),
	})

	assert.ErrorIs(t, err, ErrNotBuildingMember)
	bookings.AssertNotCalled(t, "FindActiveByFacility", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateBooking_BuildingServiceDown(t *testing.T) {
	uc, _, facilities, buildings := newTestUseCase()

	buildingID := uuid.New()
	facility := newTestFacility(buildingID)

	facilities.On("GetByID", mock.Anything, facility.ID).Return(facility, nil).Once()
	buildings.On("GetBuilding", mock.Anything, buildingID).
		Return(nil, buildingservice.ErrUnavailable).Once()

	_, err := uc.Execute(context.Background(), &Request{
		RequesterID: uuid.New(),
		FacilityID:  facility.ID,
		StartTime:   testNow.Add(2 * time.Hour),
		EndTime:     testNow.Add(3 * time.Hour),
	})

	// Членство проверить нельзя, значит бронировать нельзя
	assert.ErrorIs(t, err, ErrBuildingUnavailable)
}

func TestCreateBooking_PolicyViolationPassesThrough(t *testing.T) {
	uc, bookings, facilities, buildings := newTestUseCase()

	buildingID := uuid.New()
	requesterID := uuid.New()
	facility := newTestFacility(buildingID)

	// 19:00-20:00, окно площадки закрывается в 18:00
	req := &Request{
		RequesterID: requesterID,
		FacilityID:  facility.ID,
		StartTime:   testNow.Add(11 * time.Hour),
		EndTime:     testNow.Add(12 * time.Hour),
	}

	facilities.On("GetByID", mock.Anything, facility.ID).Return(facility, nil).Once()
	buildings.On("GetBuilding", mock.Anything, buildingID).
		Return(newTestBuilding(buildingID, requesterID), nil).Once()
	bookings.On("FindActiveByFacility", mock.Anything, facility.ID, req.StartTime, req.EndTime).
		Return([]*domain.Booking{}, nil).Once()

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, domain.ErrOutsideAvailabilityWindow)
	bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateBooking_ConflictWithExistingBooking(t *testing.T) {
	uc, bookings, facilities, buildings := newTestUseCase()

	buildingID := uuid.New()
	requesterID := uuid.New()
	facility := newTestFacility(buildingID)

	req := &Request{
		RequesterID: requesterID,
		FacilityID:  facility.ID,
		StartTime:   testNow.Add(2 * time.Hour),
		EndTime:     testNow.Add(4 * time.Hour),
	}

	existing := &domain.Booking{
		ID:         uuid.New(),
		FacilityID: facility.ID,
		StartTime:  testNow.Add(3 * time.Hour),
		EndTime:    testNow.Add(5 * time.Hour),
		Status:     domain.StatusApproved,
	}

	facilities.On("GetByID", mock.Anything, facility.ID).Return(facility, nil).Once()
	buildings.On("GetBuilding", mock.Anything, buildingID).
		Return(newTestBuilding(buildingID, requesterID), nil).Once()
	bookings.On("FindActiveByFacility", mock.Anything, facility.ID, req.StartTime, req.EndTime).
		Return([]*domain.Booking{existing}, nil).Once()

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, domain.ErrSlotConflict)
	bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateBooking_SlotTakenAtInsert(t *testing.T) {
	uc, bookings, facilities, buildings := newTestUseCase()

	buildingID := uuid.New()
	requesterID := uuid.New()
	facility := newTestFacility(buildingID)

	req := &Request{
		RequesterID: requesterID,
		FacilityID:  facility.ID,
		StartTime:   testNow.Add(2 * time.Hour),
		EndTime:     testNow.Add(4 * time.Hour),
	}

	facilities.On("GetByID", mock.Anything, facility.ID).Return(facility, nil).Once()
	buildings.On("GetBuilding", mock.Anything, buildingID).
		Return(newTestBuilding(buildingID, requesterID), nil).Once()
	bookings.On("FindActiveByFacility", mock.Anything, facility.ID, req.StartTime, req.EndTime).
		Return([]*domain.Booking{}, nil).Once()
	// Конкурент успел вставить свою бронь: exclusion constraint
	bookings.On("Create", mock.Anything, mock.Anything).
		Return(nil, bookingRepo.ErrSlotTaken).Once()

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, domain.ErrSlotConflict)
	bookings.AssertExpectations(t)
}

func TestCreateBooking_ValidationRejectsBadInput(t *testing.T) {
	uc, _, _, _ := newTestUseCase()
	ctx := context.Background()

	// Начало в прошлом
	_, err := uc.Execute(ctx, &Request{
		RequesterID: uuid.New(),
		FacilityID:  uuid.New(),
		StartTime:   testNow.Add(-time.Hour),
		EndTime:     testNow.Add(time.Hour),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTimeRange)

	// Конец раньше начала
	_, err = uc.Execute(ctx, &Request{
		RequesterID: uuid.New(),
		FacilityID:  uuid.New(),
		StartTime:   testNow.Add(2 * time.Hour),
		EndTime:     testNow.Add(time.Hour),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTimeRange)

	// Нет площадки
	_, err = uc.Execute(ctx, &Request{
		RequesterID: uuid.New(),
		StartTime:   testNow.Add(time.Hour),
		EndTime:     testNow.Add(2 * time.Hour),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
