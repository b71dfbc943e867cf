package dto

import "time"

const (
	SourceDatabase = "database"
	SourceCalendar = "calendar"
)

// MergedBooking is one row of the admin overview, from either source.
type MergedBooking struct {
	ID              string  `json:"id"`
	Source          string  `json:"source"`
	BookingID       *int64  `json:"bookingId,omitempty"`
	CalendarEventID string  `json:"calendarEventId,omitempty"`
	BookingRef      string  `json:"bookingRef"`
	CustomerName    string  `json:"customerName"`
	CustomerEmail   string  `json:"customerEmail"`
	CustomerPhone   string  `json:"customerPhone"`
	CustomerAddress string  `json:"customerAddress"`
	CastleName      string  `json:"castleName"`
	Date            string  `json:"date"`
	EndDate         string  `json:"endDate,omitempty"`
	Days            int     `json:"days"`
	Overnight       bool    `json:"overnight"`
	TotalPrice      float64 `json:"totalPrice"`
	Deposit         float64 `json:"deposit"`
	Status          string  `json:"status"`
	Notes           string  `json:"notes"`

	StartDay time.Time `json:"-"`
	LastDay  time.Time `json:"-"`
}

type OverviewResponse struct {
	Year              int             `json:"year"`
	Month             int             `json:"month"`
	Bookings          []MergedBooking `json:"bookings"`
	Counts            map[string]int  `json:"counts"`
	Total             int             `json:"total"`
	CalendarConnected bool            `json:"calendarConnected"`
	CalendarError     string          `json:"calendarError,omitempty"`
}

type GridDay struct {
	Date     string          `json:"date"`
	Day      int             `json:"day"`
	InMonth  bool            `json:"inMonth"`
	Today    bool            `json:"today"`
	Bookings []MergedBooking `json:"bookings"`
}

type GridResponse struct {
	Year          int         `json:"year"`
	Month         int         `json:"month"`
	Weeks         [][]GridDay `json:"weeks"`
	CalendarError string      `json:"calendarError,omitempty"`
}

// DayRange is an inclusive run of calendar days.
type DayRange struct {
	Start  string `json:"start"`
	End    string `json:"end"`
	Reason string `json:"reason"`
}

type CastleAvailability struct {
	CastleID          int64      `json:"castleId"`
	CastleName        string     `json:"castleName"`
	MaintenanceStatus string     `json:"maintenanceStatus"`
	Busy              []DayRange `json:"busy"`
	FreeDays          []string   `json:"freeDays"`
}

type AvailabilityResponse struct {
	Year          int                  `json:"year"`
	Month         int                  `json:"month"`
	Castles       []CastleAvailability `json:"castles"`
	CalendarError string               `json:"calendarError,omitempty"`
}
