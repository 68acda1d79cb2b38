package update_booking_status

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/PMS-FacilityService/internal/domain"
	transitionBooking "github.com/m04kA/PMS-FacilityService/internal/usecase/transition_booking"
)

// UpdateBookingStatusRequest HTTP request model
type UpdateBookingStatusRequest struct {
	Action string  `json:"action"` // approve, reject, cancel, complete, no_show
	Reason *string `json:"reason,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID          uuid.UUID `json:"id"`
	FacilityID  uuid.UUID `json:"facilityId"`
	RequesterID uuid.UUID `json:"requesterId"`
	StartTime   string    `json:"startTime"`
	EndTime     string    `json:"endTime"`
	Status      string    `json:"status"`
	Purpose     *string   `json:"purpose,omitempty"`
	Attendees   *int      `json:"attendees,omitempty"`
	TotalFee    float64   `json:"totalFee"`
	DepositDue  float64   `json:"depositDue"`

	ApprovedBy         *uuid.UUID `json:"approvedBy,omitempty"`
	ApprovedAt         *string    `json:"approvedAt,omitempty"`
	RejectedBy         *uuid.UUID `json:"rejectedBy,omitempty"`
	RejectedAt         *string    `json:"rejectedAt,omitempty"`
	RejectionReason    *string    `json:"rejectionReason,omitempty"`
	CancelledAt        *string    `json:"cancelledAt,omitempty"`
	CancellationReason *string    `json:"cancellationReason,omitempty"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateBookingStatusRequest) ToUseCaseRequest(bookingID uuid.UUID, actorID uuid.UUID) *transitionBooking.Request {
	return &transitionBooking.Request{
		BookingID: bookingID,
		ActorID:   actorID,
		Action:    domain.TransitionAction(r.Action),
		Reason:    r.Reason,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *transitionBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:                 resp.ID,
		FacilityID:         resp.FacilityID,
		RequesterID:        resp.RequesterID,
		StartTime:          resp.StartTime.Format(time.RFC3339),
		EndTime:            resp.EndTime.Format(time.RFC3339),
		Status:             resp.Status,
		Purpose:            resp.Purpose,
		Attendees:          resp.Attendees,
		TotalFee:           resp.TotalFee,
		DepositDue:         resp.DepositDue,
		ApprovedBy:         resp.ApprovedBy,
		ApprovedAt:         formatTimePtr(resp.ApprovedAt),
		RejectedBy:         resp.RejectedBy,
		RejectedAt:         formatTimePtr(resp.RejectedAt),
		RejectionReason:    resp.RejectionReason,
		CancelledAt:        formatTimePtr(resp.CancelledAt),
		CancellationReason: resp.CancellationReason,
		CreatedAt:          resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          resp.UpdatedAt.Format(time.RFC3339),
	}
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
