package dto

import (
	"time"

	"castle-admin/core/dto"

	"github.com/google/uuid"
)

// BookingConfirmation is everything the confirmation email renders.
type BookingConfirmation struct {
	BookingID     int64   `json:"bookingId"`
	BookingRef    string  `json:"bookingRef"`
	CustomerName  string  `json:"customerName"`
	CustomerEmail string  `json:"customerEmail"`
	CastleName    string  `json:"castleName"`
	Date          string  `json:"date"`
	EndDate       string  `json:"endDate,omitempty"`
	TotalPrice    float64 `json:"totalPrice"`
	Deposit       float64 `json:"deposit"`
}

// SendEmailPayload is the asynq task payload.
type SendEmailPayload struct {
	NotificationID uuid.UUID `json:"notification_id"`
}

type NotificationResponse struct {
	ID        uuid.UUID      `json:"id"`
	BookingID *int64         `json:"bookingId,omitempty"`
	Channel   string         `json:"channel"`
	Recipient string         `json:"recipient"`
	Subject   string         `json:"subject"`
	Status    string         `json:"status"`
	Error     string         `json:"error,omitempty"`
	Attempts  int            `json:"attempts"`
	Data      map[string]any `json:"data,omitempty"`
	SentAt    *time.Time     `json:"sentAt,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}

type PaginatedNotificationResponse = dto.Pagination[NotificationResponse]
