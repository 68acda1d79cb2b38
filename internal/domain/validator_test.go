package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PMS-FacilityService/pkg/ptr"
)

func TestValidateAndPrice_InstantConfirmationWithFee(t *testing.T) {
	// Площадка без модерации с тарифом 25.00 в час: бронь на два часа
	// оценивается в 50.00 и сразу получает статус approved.
	f := newTestFacility()
	f.RequiresApproval = false
	f.HourlyFee = ptr.Ptr(25.0)

	req := &BookingRequest{
		FacilityID: f.ID,
		StartTime:  mondayAt(10, 0),
		EndTime:    mondayAt(12, 0),
	}

	draft, err := ValidateAndPrice(f, req, nil, mondayAt(8, 0))

	require.NoError(t, err)
	assert.InDelta(t, 50.0, draft.Fee, 1e-9)
	assert.Zero(t, draft.Deposit)
	assert.Equal(t, StatusApproved, draft.InitialStatus)
}

func TestValidateAndPrice_ApprovalFlowStartsPending(t *testing.T) {
	f := newTestFacility()
	f.RequiresApproval = true
	f.DepositAmount = ptr.Ptr(200.0)

	req := &BookingRequest{
		FacilityID: f.ID,
		StartTime:  mondayAt(10, 0),
		EndTime:    mondayAt(11, 0),
	}

	draft, err := ValidateAndPrice(f, req, nil, mondayAt(8, 0))

	require.NoError(t, err)
	assert.Equal(t, StatusPending, draft.InitialStatus)
	assert.Equal(t, 200.0, draft.Deposit)
	assert.Zero(t, draft.Fee)
}

func TestValidateAndPrice_SlotConflict(t *testing.T) {
	f := newTestFacility()

	existing := []*Booking{
		newTestBooking(mondayAt(10, 0), mondayAt(12, 0), StatusApproved),
	}

	req := &BookingRequest{
		FacilityID: f.ID,
		StartTime:  mondayAt(11, 0),
		EndTime:    mondayAt(13, 0),
	}

	draft, err := ValidateAndPrice(f, req, existing, mondayAt(8, 0))

	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.Nil(t, draft)
}

func TestValidateAndPrice_TerminalBookingsDoNotConflict(t *testing.T) {
	f := newTestFacility()

	existing := []*Booking{
		newTestBooking(mondayAt(10, 0), mondayAt(12, 0), StatusCancelled),
	}

	req := &BookingRequest{
		FacilityID: f.ID,
		StartTime:  mondayAt(10, 0),
		EndTime:    mondayAt(12, 0),
	}

	_, err := ValidateAndPrice(f, req, existing, mondayAt(8, 0))
	assert.NoError(t, err)
}

func TestValidateAndPrice_PolicyRunsBeforeConflicts(t *testing.T) {
	// Запрос одновременно выходит за окно доступности и пересекается с
	// существующей бронью: побеждает проверка политики.
	f := newTestFacility()

	existing := []*Booking{
		newTestBooking(mondayAt(18, 0), mondayAt(20, 0), StatusApproved),
	}

	req := &BookingRequest{
		FacilityID: f.ID,
		StartTime:  mondayAt(18, 0),
		EndTime:    mondayAt(20, 0),
	}

	_, err := ValidateAndPrice(f, req, existing, mondayAt(8, 0))

	assert.ErrorIs(t, err, ErrOutsideAvailabilityWindow)
	assert.NotErrorIs(t, err, ErrSlotConflict)
}

func TestValidateAndPrice_BackToBackBookings(t *testing.T) {
	f := newTestFacility()

	existing := []*Booking{
		newTestBooking(mondayAt(10, 0), mondayAt(11, 0), StatusApproved),
	}

	req := &BookingRequest{
		FacilityID: f.ID,
		StartTime:  mondayAt(11, 0),
		EndTime:    mondayAt(12, 0),
	}

	_, err := ValidateAndPrice(f, req, existing, mondayAt(8, 0))
	assert.NoError(t, err)
}
