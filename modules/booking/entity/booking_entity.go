package entity

import (
	"time"

	"castle-admin/core/entity"
)

type Booking struct {
	BookingRef        string     `db:"booking_ref" json:"booking_ref"`
	CustomerName      string     `db:"customer_name" json:"customer_name"`
	CustomerEmail     string     `db:"customer_email" json:"customer_email"`
	CustomerPhone     string     `db:"customer_phone" json:"customer_phone"`
	CustomerAddress   string     `db:"customer_address" json:"customer_address"`
	CastleID          *int64     `db:"castle_id" json:"castle_id"`
	CastleName        string     `db:"castle_name" json:"castle_name"`
	Date              time.Time  `db:"date" json:"date"`
	EndDate           *time.Time `db:"end_date" json:"end_date"`
	Overnight         bool       `db:"overnight" json:"overnight"`
	AdditionalCosts   float64    `db:"additional_costs" json:"additional_costs"`
	PaymentMethod     string     `db:"payment_method" json:"payment_method"`
	TotalPrice        float64    `db:"total_price" json:"total_price"`
	Deposit           float64    `db:"deposit" json:"deposit"`
	Status            Status     `db:"status" json:"status"`
	Notes             string     `db:"notes" json:"notes"`
	CalendarEventID   *string    `db:"calendar_event_id" json:"calendar_event_id"`
	AgreementSigned   bool       `db:"agreement_signed" json:"agreement_signed"`
	AgreementSignedAt *time.Time `db:"agreement_signed_at" json:"agreement_signed_at"`
	AgreementSignedBy *string    `db:"agreement_signed_by" json:"agreement_signed_by"`
	entity.BaseEntity
}

// LastDay is the final day the booking occupies.
func (b Booking) LastDay() time.Time {
	if b.EndDate != nil && b.EndDate.After(b.Date) {
		return *b.EndDate
	}
	return b.Date
}

type BookingFilter struct {
	Status     string
	Search     string
	PageNumber int
	PageSize   int
	// Today is the business-local day used to derive statuses.
	Today      time.Time
}

type PaginatedBookingEntity = entity.Pagination[Booking]
