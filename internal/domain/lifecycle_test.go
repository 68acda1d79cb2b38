package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PMS-FacilityService/pkg/ptr"
)

func managerCmd(action TransitionAction) TransitionCommand {
	return TransitionCommand{
		BookingID:  uuid.New(),
		Action:     action,
		ActorID:    uuid.New(),
		Capability: CapabilityManager,
	}
}

func TestTransition_LegalMoves(t *testing.T) {
	now := mondayAt(20, 0)
	start := mondayAt(10, 0)
	end := mondayAt(12, 0)

	cases := []struct {
		name string
		from BookingStatus
		cmd  TransitionCommand
		want BookingStatus
	}{
		{"pending approve", StatusPending, managerCmd(ActionApprove), StatusApproved},
		{
			"pending reject with reason",
			StatusPending,
			TransitionCommand{Action: ActionReject, Reason: ptr.Ptr("double booked"), Capability: CapabilityManager},
			StatusRejected,
		},
		{
			"pending cancel by requester",
			StatusPending,
			TransitionCommand{Action: ActionCancel, Capability: CapabilityRequester},
			StatusCancelled,
		},
		{
			"approved cancel by manager",
			StatusApproved,
			managerCmd(ActionCancel),
			StatusCancelled,
		},
		{
			"approved complete by system",
			StatusApproved,
			TransitionCommand{Action: ActionComplete, Capability: CapabilitySystem},
			StatusCompleted,
		},
		{
			"approved no_show by manager",
			StatusApproved,
			managerCmd(ActionNoShow),
			StatusNoShow,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := newTestBooking(start, end, tc.from)
			next, err := Transition(b, tc.cmd, now)
			require.NoError(t, err)
			assert.Equal(t, tc.want, next)
			// Саму бронь переход не трогает.
			assert.Equal(t, tc.from, b.Status)
		})
	}
}

func TestTransition_IllegalMoves(t *testing.T) {
	now := mondayAt(20, 0)
	b := func(s BookingStatus) *Booking { return newTestBooking(mondayAt(10, 0), mondayAt(12, 0), s) }

	cases := []struct {
		name   string
		from   BookingStatus
		action TransitionAction
	}{
		{"approve approved", StatusApproved, ActionApprove},
		{"reject approved", StatusApproved, ActionReject},
		{"approve rejected", StatusRejected, ActionApprove},
		{"cancel cancelled", StatusCancelled, ActionCancel},
		{"cancel completed", StatusCompleted, ActionCancel},
		{"approve no_show", StatusNoShow, ActionApprove},
		{"complete pending", StatusPending, ActionComplete},
		{"no_show pending", StatusPending, ActionNoShow},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cmd := managerCmd(tc.action)
			cmd.Reason = ptr.Ptr("reason")
			booking := b(tc.from)

			_, err := Transition(booking, cmd, now)
			assert.ErrorIs(t, err, ErrInvalidTransition)
			assert.Equal(t, tc.from, booking.Status)
		})
	}
}

func TestTransition_SecondApproveFails(t *testing.T) {
	// Повторное одобрение уже одобренной брони отклоняется, статус не
	// меняется.
	b := newTestBooking(mondayAt(10, 0), mondayAt(12, 0), StatusPending)
	now := mondayAt(8, 0)

	next, err := Transition(b, managerCmd(ActionApprove), now)
	require.NoError(t, err)
	require.Equal(t, StatusApproved, next)
	b.Status = next

	_, err = Transition(b, managerCmd(ActionApprove), now)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, StatusApproved, b.Status)
}

func TestTransition_RejectRequiresReason(t *testing.T) {
	b := newTestBooking(mondayAt(10, 0), mondayAt(12, 0), StatusPending)
	now := mondayAt(8, 0)

	cmd := managerCmd(ActionReject)
	_, err := Transition(b, cmd, now)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	cmd.Reason = ptr.Ptr("   ")
	_, err = Transition(b, cmd, now)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	cmd.Reason = ptr.Ptr("room under maintenance")
	next, err := Transition(b, cmd, now)
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, next)
}

func TestTransition_CancelReasonOptional(t *testing.T) {
	b := newTestBooking(mondayAt(10, 0), mondayAt(12, 0), StatusApproved)
	now := mondayAt(8, 0)

	cmd := TransitionCommand{Action: ActionCancel, Capability: CapabilityRequester}
	next, err := Transition(b, cmd, now)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, next)
}

func TestTransition_CapabilityGuards(t *testing.T) {
	now := mondayAt(20, 0)

	cases := []struct {
		name       string
		from       BookingStatus
		action     TransitionAction
		capability ActorCapability
		allowed    bool
	}{
		{"requester cannot approve", StatusPending, ActionApprove, CapabilityRequester, false},
		{"requester cannot reject", StatusPending, ActionReject, CapabilityRequester, false},
		{"system cannot approve", StatusPending, ActionApprove, CapabilitySystem, false},
		{"requester cannot complete", StatusApproved, ActionComplete, CapabilityRequester, false},
		{"requester cannot mark no_show", StatusApproved, ActionNoShow, CapabilityRequester, false},
		{"manager can cancel", StatusApproved, ActionCancel, CapabilityManager, true},
		{"system can complete", StatusApproved, ActionComplete, CapabilitySystem, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := newTestBooking(mondayAt(10, 0), mondayAt(12, 0), tc.from)
			cmd := TransitionCommand{Action: tc.action, Reason: ptr.Ptr("reason"), Capability: tc.capability}

			_, err := Transition(b, cmd, now)
			if tc.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidTransition)
			}
		})
	}
}

func TestTransition_TimeGates(t *testing.T) {
	start := mondayAt(10, 0)
	end := mondayAt(12, 0)

	t.Run("complete before end", func(t *testing.T) {
		b := newTestBooking(start, end, StatusApproved)
		_, err := Transition(b, managerCmd(ActionComplete), mondayAt(11, 0))
		assert.ErrorIs(t, err, ErrInvalidTransition)

		next, err := Transition(b, managerCmd(ActionComplete), end)
		require.NoError(t, err)
		assert.Equal(t, StatusCompleted, next)
	})

	t.Run("no_show before start", func(t *testing.T) {
		b := newTestBooking(start, end, StatusApproved)
		_, err := Transition(b, managerCmd(ActionNoShow), mondayAt(9, 0))
		assert.ErrorIs(t, err, ErrInvalidTransition)

		next, err := Transition(b, managerCmd(ActionNoShow), mondayAt(10, 30))
		require.NoError(t, err)
		assert.Equal(t, StatusNoShow, next)
	})
}

func TestTerminalStatusesHaveNoMoves(t *testing.T) {
	now := mondayAt(20, 0)
	actions := []TransitionAction{ActionApprove, ActionReject, ActionCancel, ActionComplete, ActionNoShow}

	for _, status := range TerminalStatuses {
		for _, action := range actions {
			b := newTestBooking(mondayAt(10, 0), mondayAt(12, 0), status)
			cmd := managerCmd(action)
			cmd.Reason = ptr.Ptr("reason")

			_, err := Transition(b, cmd, now)
			assert.ErrorIs(t, err, ErrInvalidTransition, "%s + %s", status, action)
		}
	}
}

func TestInitialStatusFollowsApprovalFlag(t *testing.T) {
	f := newTestFacility()

	f.RequiresApproval = true
	assert.Equal(t, StatusPending, f.InitialStatus())

	f.RequiresApproval = false
	assert.Equal(t, StatusApproved, f.InitialStatus())
}
