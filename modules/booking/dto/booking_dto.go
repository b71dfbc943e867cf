package dto

import (
	"time"

	"castle-admin/core/dto"
)

type BookingResponse struct {
	ID              int64      `json:"id"`
	BookingRef      string     `json:"bookingRef"`
	CustomerName    string     `json:"customerName"`
	CustomerEmail   string     `json:"customerEmail"`
	CustomerPhone   string     `json:"customerPhone"`
	CustomerAddress string     `json:"customerAddress"`
	CastleID        *int64     `json:"castleId,omitempty"`
	CastleName      string     `json:"castleName"`
	Date            string     `json:"date"`
	EndDate         string     `json:"endDate,omitempty"`
	Overnight       bool       `json:"overnight"`
	PaymentMethod   string     `json:"paymentMethod"`
	TotalPrice      float64    `json:"totalPrice"`
	Deposit         float64    `json:"deposit"`
	Status          string     `json:"status"`
	StoredStatus    string     `json:"storedStatus"`
	Notes           string     `json:"notes"`
	CalendarEventID string     `json:"calendarEventId,omitempty"`
	AgreementSigned bool       `json:"agreementSigned"`
	AgreementAt     *time.Time `json:"agreementSignedAt,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

type PaginatedBookingResponse = dto.Pagination[BookingResponse]

// UpdateBookingRequest is either a status change (only Status set) or a full
// edit. Nil fields are left as they are.
type UpdateBookingRequest struct {
	Status          *string  `json:"status,omitempty" validate:"omitempty,oneof=pending confirmed completed expired cancelled"`
	CustomerName    *string  `json:"customerName,omitempty" validate:"omitempty,min=1,max=200"`
	CustomerEmail   *string  `json:"customerEmail,omitempty" validate:"omitempty,email"`
	CustomerPhone   *string  `json:"customerPhone,omitempty" validate:"omitempty,max=50"`
	CustomerAddress *string  `json:"customerAddress,omitempty"`
	CastleID        *int64   `json:"castleId,omitempty" validate:"omitempty,gt=0"`
	CastleName      *string  `json:"castleName,omitempty"`
	Date            *string  `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EndDate         *string  `json:"endDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Overnight       *bool    `json:"overnight,omitempty"`
	AdditionalCosts *float64 `json:"additionalCosts,omitempty" validate:"omitempty,gte=0"`
	TotalPrice      *float64 `json:"totalPrice,omitempty" validate:"omitempty,gte=0"`
	Deposit         *float64 `json:"deposit,omitempty" validate:"omitempty,gte=0"`
	Notes           *string  `json:"notes,omitempty"`
}

// StatusOnly reports whether the request carries nothing but a status.
func (r UpdateBookingRequest) StatusOnly() bool {
	return r.Status != nil &&
		r.CustomerName == nil && r.CustomerEmail == nil && r.CustomerPhone == nil &&
		r.CustomerAddress == nil && r.CastleID == nil && r.CastleName == nil &&
		r.Date == nil && r.EndDate == nil && r.Overnight == nil &&
		r.AdditionalCosts == nil && r.TotalPrice == nil && r.Deposit == nil && r.Notes == nil
}

type ConfirmBookingResponse struct {
	Booking         *BookingResponse `json:"booking"`
	CalendarEventID string           `json:"calendarEventId,omitempty"`
	CalendarLink    string           `json:"calendarLink,omitempty"`
}

type AddTestBookingResponse struct {
	Success   bool             `json:"success"`
	Message   string           `json:"message"`
	BookingID int64            `json:"bookingId,omitempty"`
	Booking   *BookingResponse `json:"booking,omitempty"`
}

type SweepResult struct {
	Expired   int `json:"expired"`
	Completed int `json:"completed"`
}
