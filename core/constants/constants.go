package constants

import "time"

// Database
const (
	DatabaseSSLMode         = "disable"
	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 10
	DatabaseConnMaxLifetime = 30 // minutes
)

// Server
const (
	ShutdownTimeout = 10 * time.Second
)

// Request
const (
	DefaultRequestTimeout  = 15 * time.Second
	ExternalRequestTimeout = 30 * time.Second
	DefaultPageNumber      = 1
	DefaultPageSize        = 20
	MaxPageSize            = 100
)

// Context keys
const (
	ContextTokenData  = "token_data"
	ContextAdminEmail = "admin_email"
)

// Redis keys
const (
	RedisKeyCalendarEvents = "calendar:events:"
	CalendarEventsTTL      = 5 * time.Minute
)

// Queue
const (
	QueueDefault            = "default"
	QueueCritical           = "critical"
	TaskSendEmail           = "notification:send_email"
	TaskSweepStatuses       = "booking:sweep_statuses"
	SweepStatusesCronSpec   = "*/15 * * * *"
	NotificationMaxRetries  = 5
	NotificationTaskTimeout = 2 * time.Minute
)

// Broker routing keys
const (
	EventBookingConfirmed = "booking.confirmed"
	EventBookingCancelled = "booking.cancelled"
	EventBookingCompleted = "booking.completed"
	EventBookingExpired   = "booking.expired"
	EventBookingDeleted   = "booking.deleted"
	EventBookingImported  = "booking.imported"
)

// Pricing
const (
	OvernightSurcharge = 20
	DepositRate        = 0.3
)

// Calendar
const (
	DefaultTimezone      = "Europe/London"
	DefaultEventStart    = "10:00:00"
	DefaultEventEnd      = "18:00:00"
	CalendarScope        = "https://www.googleapis.com/auth/calendar"
	BookingSummaryPrefix = "🏰 "
	MaintenanceMarker    = "🔧"
	DatabaseEventPrefix  = "db"
	DatabaseSourceKey    = "source"
	DatabaseSourceValue  = "database"
	MergedDatabasePrefix = "db_"
	MergedCalendarPrefix = "cal-"
)

// Booking references
const (
	BookingRefPrefix   = "BC"
	BookingRefAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	BookingRefLength   = 6
	TestBookingRef     = "TEST001"
)

// Storage
const (
	ServiceImagePrefix = "services"
	MaxImageUploadSize = 5 << 20
)
