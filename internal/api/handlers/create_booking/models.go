package create_booking

import (
	"time"

	"github.com/google/uuid"

	createBooking "github.com/m04kA/PMS-FacilityService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	FacilityID uuid.UUID `json:"facilityId"`
	StartTime  time.Time `json:"startTime"` // RFC3339
	EndTime    time.Time `json:"endTime"`   // RFC3339
	Purpose    *string   `json:"purpose,omitempty"`
	Attendees  *int      `json:"attendees,omitempty"`
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
	CreatedAt   string    `json:"createdAt"`
	UpdatedAt   string    `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case.
// RequesterID берется из контекста авторизации, а не из тела запроса.
func (r *CreateBookingRequest) ToUseCaseRequest(requesterID uuid.UUID) *createBooking.Request {
	return &createBooking.Request{
		RequesterID: requesterID,
		FacilityID:  r.FacilityID,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
		Purpose:     r.Purpose,
		Attendees:   r.Attendees,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:          resp.ID,
		FacilityID:  resp.FacilityID,
		RequesterID: resp.RequesterID,
		StartTime:   resp.StartTime.Format(time.RFC3339),
		EndTime:     resp.EndTime.Format(time.RFC3339),
		Status:      resp.Status,
		Purpose:     resp.Purpose,
		Attendees:   resp.Attendees,
		TotalFee:    resp.TotalFee,
		DepositDue:  resp.DepositDue,
		CreatedAt:   resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   resp.UpdatedAt.Format(time.RFC3339),
	}
}
