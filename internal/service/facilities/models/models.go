package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/PMS-FacilityService/internal/domain"
	"github.com/m04kA/PMS-FacilityService/pkg/types"
)

var (
	// ErrInvalidFacilityType возвращается при некорректном типе площадки
	ErrInvalidFacilityType = errors.New("invalid facility type")
)

// Request модели

// CreateFacilityRequest запрос на создание площадки.
// UserID и BuildingID заполняются хендлером из контекста и пути запроса.
type CreateFacilityRequest struct {
	UserID     uuid.UUID `json:"-"`
	BuildingID uuid.UUID `json:"-"`

	Name             string   `json:"name"`
	Type             string   `json:"type"`
	Description      *string  `json:"description,omitempty"`
	Location         *string  `json:"location,omitempty"`
	Rules            *string  `json:"rules,omitempty"`
	Capacity         *int     `json:"capacity,omitempty"`
	IsBookable       *bool    `json:"isBookable,omitempty"`       // nil = true
	RequiresApproval bool     `json:"requiresApproval,omitempty"` // false = моментальное подтверждение
	MaxBookingHours  *int     `json:"maxBookingHours,omitempty"`
	MaxAdvanceDays   *int     `json:"maxAdvanceDays,omitempty"`
	MinAdvanceHours  *int     `json:"minAdvanceHours,omitempty"`
	AvailableFrom    *string  `json:"availableFrom,omitempty"` // "HH:MM"
	AvailableTo      *string  `json:"availableTo,omitempty"`   // "HH:MM", "24:00" = до конца дня
	AvailableDays    []int    `json:"availableDays,omitempty"` // ISO номера 1..7, пусто = все дни
	HourlyFee        *float64 `json:"hourlyFee,omitempty"`
	DepositAmount    *float64 `json:"depositAmount,omitempty"`
	Amenities        []string `json:"amenities,omitempty"`
}

// UpdateFacilityRequest запрос на обновление площадки
// Все поля опциональны - обновляются только переданные значения
type UpdateFacilityRequest struct {
	UserID     uuid.UUID `json:"-"`
	BuildingID uuid.UUID `json:"-"`

	Name             *string  `json:"name,omitempty"`
	Type             *string  `json:"type,omitempty"`
	Description      *string  `json:"description,omitempty"`
	Location         *string  `json:"location,omitempty"`
	Rules            *string  `json:"rules,omitempty"`
	Capacity         *int     `json:"capacity,omitempty"`
	IsBookable       *bool    `json:"isBookable,omitempty"`
	RequiresApproval *bool    `json:"requiresApproval,omitempty"`
	MaxBookingHours  *int     `json:"maxBookingHours,omitempty"`
	MaxAdvanceDays   *int     `json:"maxAdvanceDays,omitempty"`
	MinAdvanceHours  *int     `json:"minAdvanceHours,omitempty"`
	AvailableFrom    *string  `json:"availableFrom,omitempty"`
	AvailableTo      *string  `json:"availableTo,omitempty"`
	AvailableDays    []int    `json:"availableDays,omitempty"`
	HourlyFee        *float64 `json:"hourlyFee,omitempty"`
	DepositAmount    *float64 `json:"depositAmount,omitempty"`
	Amenities        []string `json:"amenities,omitempty"`
	IsActive         *bool    `json:"isActive,omitempty"`
}

// ListFacilitiesRequest запрос на получение списка площадок здания
type ListFacilitiesRequest struct {
	UserID          uuid.UUID `json:"-"`
	BuildingID      uuid.UUID `json:"-"`
	Type            *string   `json:"type,omitempty"`
	IncludeInactive bool      `json:"includeInactive,omitempty"` // Только для менеджеров здания
}

// Response модели

// FacilityResponse ответ с данными площадки
type FacilityResponse struct {
	ID               uuid.UUID `json:"id"`
	BuildingID       uuid.UUID `json:"buildingId"`
	Name             string    `json:"name"`
	Type             string    `json:"type"`
	Description      *string   `json:"description,omitempty"`
	Location         *string   `json:"location,omitempty"`
	Rules            *string   `json:"rules,omitempty"`
	Capacity         *int      `json:"capacity,omitempty"`
	IsBookable       bool      `json:"isBookable"`
	RequiresApproval bool      `json:"requiresApproval"`
	MaxBookingHours  *int      `json:"maxBookingHours,omitempty"`
	MaxAdvanceDays   *int      `json:"maxAdvanceDays,omitempty"`
	MinAdvanceHours  *int      `json:"minAdvanceHours,omitempty"`
	AvailableFrom    *string   `json:"availableFrom,omitempty"`
	AvailableTo      *string   `json:"availableTo,omitempty"`
	AvailableDays    []int     `json:"availableDays"`
	HourlyFee        *float64  `json:"hourlyFee,omitempty"`
	DepositAmount    *float64  `json:"depositAmount,omitempty"`
	Amenities        []string  `json:"amenities,omitempty"`
	IsActive         bool      `json:"isActive"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// FacilityListResponse ответ со списком площадок
type FacilityListResponse struct {
	Facilities []FacilityResponse `json:"facilities"`
}

// Методы конвертации

// ToDomainFacility конвертирует CreateFacilityRequest в domain модель
// Незаполненные isBookable и availableDays получают значения по умолчанию
func (r *CreateFacilityRequest) ToDomainFacility() (*domain.Facility, error) {
	facility := &domain.Facility{
		BuildingID:       r.BuildingID,
		Name:             strings.TrimSpace(r.Name),
		Type:             domain.FacilityType(r.Type),
		Description:      r.Description,
		Location:         r.Location,
		Rules:            r.Rules,
		Capacity:         r.Capacity,
		IsBookable:       true,
		RequiresApproval: r.RequiresApproval,
		MaxBookingHours:  r.MaxBookingHours,
		MaxAdvanceDays:   r.MaxAdvanceDays,
		MinAdvanceHours:  r.MinAdvanceHours,
		AvailableDays:    domain.AllWeekdays,
		HourlyFee:        r.HourlyFee,
		DepositAmount:    r.DepositAmount,
		Amenities:        r.Amenities,
		IsActive:         true,
	}

	if r.IsBookable != nil {
		facility.IsBookable = *r.IsBookable
	}

	if len(r.AvailableDays) > 0 {
		set, err := domain.WeekdaySetFromISONumbers(r.AvailableDays)
		if err != nil {
			return nil, err
		}
		facility.AvailableDays = set
	}

	if r.AvailableFrom != nil {
		ts, err := types.NewTimeStringFromString(*r.AvailableFrom)
		if err != nil {
			return nil, err
		}
		facility.AvailableFrom = &ts
	}
	if r.AvailableTo != nil {
		ts, err := types.NewTimeStringFromString(*r.AvailableTo)
		if err != nil {
			return nil, err
		}
		facility.AvailableTo = &ts
	}

	return facility, nil
}

// ApplyToFacility применяет обновления к существующей площадке
// Обновляются только непустые (not nil) поля из request
func (r *UpdateFacilityRequest) ApplyToFacility(facility *domain.Facility) error {
	if r.Name != nil {
		facility.Name = strings.TrimSpace(*r.Name)
	}
	if r.Type != nil {
		facility.Type = domain.FacilityType(*r.Type)
	}
	if r.Description != nil {
		facility.Description = r.Description
	}
	if r.Location != nil {
		facility.Location = r.Location
	}
	if r.Rules != nil {
		facility.Rules = r.Rules
	}
	if r.Capacity != nil {
		facility.Capacity = r.Capacity
	}
	if r.IsBookable != nil {
		facility.IsBookable = *r.IsBookable
	}
	if r.RequiresApproval != nil {
		facility.RequiresApproval = *r.RequiresApproval
	}
	if r.MaxBookingHours != nil {
		facility.MaxBookingHours = r.MaxBookingHours
	}
	if r.MaxAdvanceDays != nil {
		facility.MaxAdvanceDays = r.MaxAdvanceDays
	}
	if r.MinAdvanceHours != nil {
		facility.MinAdvanceHours = r.MinAdvanceHours
	}
	if len(r.AvailableDays) > 0 {
		set, err := domain.WeekdaySetFromISONumbers(r.AvailableDays)
		if err != nil {
			return err
		}
		facility.AvailableDays = set
	}
	if r.AvailableFrom != nil {
		ts, err := types.NewTimeStringFromString(*r.AvailableFrom)
		if err != nil {
			return err
		}
		facility.AvailableFrom = &ts
	}
	if r.AvailableTo != nil {
		ts, err := types.NewTimeStringFromString(*r.AvailableTo)
		if err != nil {
			return err
		}
		facility.AvailableTo = &ts
	}
	if r.HourlyFee != nil {
		facility.HourlyFee = r.HourlyFee
	}
	if r.DepositAmount != nil {
		facility.DepositAmount = r.DepositAmount
	}
	if r.Amenities != nil {
		facility.Amenities = r.Amenities
	}
	if r.IsActive != nil {
		facility.IsActive = *r.IsActive
	}
	return nil
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListFacilitiesRequest) ToDomainFilter() (domain.FacilityListFilter, error) {
	filter := domain.FacilityListFilter{
		IncludeInactive: r.IncludeInactive,
	}

	if r.Type != nil {
		facilityType, err := ToDomainFacilityType(*r.Type)
		if err != nil {
			return filter, err
		}
		filter.Type = &facilityType
	}

	return filter, nil
}

// FromDomainFacility конвертирует domain модель в DTO
func FromDomainFacility(f *domain.Facility) *FacilityResponse {
	if f == nil {
		return nil
	}

	resp := &FacilityResponse{
		ID:               f.ID,
		BuildingID:       f.BuildingID,
		Name:             f.Name,
		Type:             string(f.Type),
		Description:      f.Description,
		Location:         f.Location,
		Rules:            f.Rules,
		Capacity:         f.Capacity,
		IsBookable:       f.IsBookable,
		RequiresApproval: f.RequiresApproval,
		MaxBookingHours:  f.MaxBookingHours,
		MaxAdvanceDays:   f.MaxAdvanceDays,
		MinAdvanceHours:  f.MinAdvanceHours,
		AvailableDays:    f.AvailableDays.ISONumbers(),
		HourlyFee:        f.HourlyFee,
		DepositAmount:    f.DepositAmount,
		Amenities:        f.Amenities,
		IsActive:         f.IsActive,
		CreatedAt:        f.CreatedAt,
		UpdatedAt:        f.UpdatedAt,
	}

	if f.AvailableFrom != nil {
		from := f.AvailableFrom.String()
		resp.AvailableFrom = &from
	}
	if f.AvailableTo != nil {
		to := f.AvailableTo.String()
		resp.AvailableTo = &to
	}

	return resp
}

// FromDomainFacilityList конвертирует список domain моделей в DTO
func FromDomainFacilityList(facilities []*domain.Facility) *FacilityListResponse {
	if facilities == nil {
		return &FacilityListResponse{
			Facilities: []FacilityResponse{},
		}
	}

	resp := &FacilityListResponse{
		Facilities: make([]FacilityResponse, len(facilities)),
	}

	for i, facility := range facilities {
		if facilityResp := FromDomainFacility(facility); facilityResp != nil {
			resp.Facilities[i] = *facilityResp
		}
	}

	return resp
}

// ToDomainFacilityType конвертирует строку в domain.FacilityType с валидацией
func ToDomainFacilityType(facilityType string) (domain.FacilityType, error) {
	t := domain.FacilityType(facilityType)
	if !t.IsValid() {
		return "", ErrInvalidFacilityType
	}
	return t, nil
}
