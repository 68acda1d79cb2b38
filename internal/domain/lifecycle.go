package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TransitionAction is a lifecycle action requested for a booking
type TransitionAction string

const (
	ActionApprove  TransitionAction = "approve"
	ActionReject   TransitionAction = "reject"
	ActionCancel   TransitionAction = "cancel"
	ActionComplete TransitionAction = "complete"
	ActionNoShow   TransitionAction = "no_show"
)

// IsValid returns true for a known transition action
func (a TransitionAction) IsValid() bool {
	switch a {
	case ActionApprove, ActionReject, ActionCancel, ActionComplete, ActionNoShow:
		return true
	}
	return false
}

// ActorCapability describes who is performing a transition
type ActorCapability string

const (
	CapabilityRequester ActorCapability = "requester"
	CapabilityManager   ActorCapability = "manager"
	CapabilitySystem    ActorCapability = "system"
)

// TransitionCommand is a request to move a booking through its lifecycle
type TransitionCommand struct {
	BookingID  uuid.UUID
	Action     TransitionAction
	Reason     *string
	ActorID    uuid.UUID
	Capability ActorCapability
}

type transitionKey struct {
	from   BookingStatus
	action TransitionAction
}

// transitions is the single source of truth for legal lifecycle moves
// (current status x action -> next status)
var transitions = map[transitionKey]BookingStatus{
	{StatusPending, ActionApprove}:   StatusApproved,
	{StatusPending, ActionReject}:    StatusRejected,
	{StatusPending, ActionCancel}:    StatusCancelled,
	{StatusApproved, ActionCancel}:   StatusCancelled,
	{StatusApproved, ActionComplete}: StatusCompleted,
	{StatusApproved, ActionNoShow}:   StatusNoShow,
}

// actionCapabilities lists who may perform each action
var actionCapabilities = map[TransitionAction][]ActorCapability{
	ActionApprove:  {CapabilityManager},
	ActionReject:   {CapabilityManager},
	ActionCancel:   {CapabilityRequester, CapabilityManager},
	ActionComplete: {CapabilitySystem, CapabilityManager},
	ActionNoShow:   {CapabilitySystem, CapabilityManager},
}

// NextStatus looks up the transition table
func NextStatus(from BookingStatus, action TransitionAction) (BookingStatus, bool) {
	next, ok := transitions[transitionKey{from: from, action: action}]
	return next, ok
}

// Transition validates cmd against the booking's current state and returns
// the status the booking should move to. Guard order: table lookup, actor
// capability, action-specific conditions (mandatory reject reason, time
// gates for complete/no_show). The booking itself is never mutated here;
// persisting the new status is the caller's job, so a failed transition
// leaves state untouched by construction.
func Transition(b *Booking, cmd TransitionCommand, now time.Time) (BookingStatus, error) {
	next, ok := NextStatus(b.Status, cmd.Action)
	if !ok {
		return "", fmt.Errorf("%w: %s does not accept %s", ErrInvalidTransition,
			b.Status, cmd.Action)
	}

	if !capabilityAllowed(cmd.Action, cmd.Capability) {
		return "", fmt.Errorf("%w: %s requires %s capability, got %s",
			ErrInvalidTransition, cmd.Action,
			joinCapabilities(actionCapabilities[cmd.Action]), cmd.Capability)
	}

	switch cmd.Action {
	case ActionReject:
		if cmd.Reason == nil || strings.TrimSpace(*cmd.Reason) == "" {
			return "", fmt.Errorf("%w: reject requires a non-empty reason", ErrInvalidTransition)
		}
	case ActionComplete:
		if now.Before(b.EndTime) {
			return "", fmt.Errorf("%w: cannot complete before the booking ends at %s",
				ErrInvalidTransition, b.EndTime.Format(time.RFC3339))
		}
	case ActionNoShow:
		if now.Before(b.StartTime) {
			return "", fmt.Errorf("%w: cannot mark no-show before the booking starts at %s",
				ErrInvalidTransition, b.StartTime.Format(time.RFC3339))
		}
	}

	return next, nil
}

func capabilityAllowed(action TransitionAction, capability ActorCapability) bool {
	for _, allowed := range actionCapabilities[action] {
		if capability == allowed {
			return true
		}
	}
	return false
}

func joinCapabilities(caps []ActorCapability) string {
	names := make([]string, len(caps))
	for i, c := range caps {
		names[i] = string(c)
	}
	return strings.Join(names, "/")
}
