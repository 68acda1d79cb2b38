package reject_booking

import (
	"time"

	"github.com/google/uuid"

	transitionBooking "github.com/m04kA/PMS-FacilityService/internal/usecase/transition_booking"
)

// RejectBookingRequest HTTP request model
type RejectBookingRequest struct {
	Reason string `json:"reason"`
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

	RejectedBy      *uuid.UUID `json:"rejectedBy,omitempty"`
	RejectedAt      *string    `json:"rejectedAt,omitempty"`
	RejectionReason *string    `json:"rejectionReason,omitempty"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *transitionBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID,
		FacilityID:      resp.FacilityID,
		RequesterID:     resp.RequesterID,
		StartTime:       resp.StartTime.Format(time.RFC3339),
		EndTime:         resp.EndTime.Format(time.RFC3339),
		Status:          resp.Status,
		Purpose:         resp.Purpose,
		Attendees:       resp.Attendees,
		TotalFee:        resp.TotalFee,
		DepositDue:      resp.DepositDue,
		RejectedBy:      resp.RejectedBy,
		RejectedAt:      formatTimePtr(resp.RejectedAt),
		RejectionReason: resp.RejectionReason,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
