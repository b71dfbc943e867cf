package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"castle-admin/core/entity"

	"github.com/google/uuid"
)

type DeliveryStatus string

const (
	StatusQueued DeliveryStatus = "queued"
	StatusSent   DeliveryStatus = "sent"
	StatusFailed DeliveryStatus = "failed"

	ChannelEmail = "email"
)

// Notification is one outbound message and its delivery outcome.
type Notification struct {
	ID        uuid.UUID      `db:"id" json:"id"`
	BookingID *int64         `db:"booking_id" json:"booking_id"`
	Channel   string         `db:"channel" json:"channel"`
	Recipient string         `db:"recipient" json:"recipient"`
	Subject   string         `db:"subject" json:"subject"`
	Status    DeliveryStatus `db:"status" json:"status"`
	Error     *string        `db:"error" json:"error"`
	Attempts  int            `db:"attempts" json:"attempts"`
	Data      JSONB          `db:"data" json:"data"`
	SentAt    *time.Time     `db:"sent_at" json:"sent_at"`
	CreatedAt time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt time.Time      `db:"updated_at" json:"updated_at"`
}

type JSONB map[string]any

func (a JSONB) Value() (driver.Value, error) {
	if a == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(a)
}

func (a *JSONB) Scan(value any) error {
	if value == nil {
		return nil
	}
	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, a)
}

type PaginatedNotificationEntity = entity.Pagination[Notification]
