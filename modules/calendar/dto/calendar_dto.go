package dto

// GoogleCalendarEvent is the subset of the Calendar v3 event resource used here.
type GoogleCalendarEvent struct {
	ID                 string              `json:"id,omitempty"`
	Summary            string              `json:"summary,omitempty"`
	Description        string              `json:"description,omitempty"`
	Location           string              `json:"location,omitempty"`
	Start              EventTime           `json:"start"`
	End                EventTime           `json:"end"`
	Status             string              `json:"status,omitempty"`
	HTMLLink           string              `json:"htmlLink,omitempty"`
	Attendees          []Attendee          `json:"attendees,omitempty"`
	ExtendedProperties *ExtendedProperties `json:"extendedProperties,omitempty"`
	Created            string              `json:"created,omitempty"`
	Updated            string              `json:"updated,omitempty"`
}

type EventTime struct {
	DateTime string `json:"dateTime,omitempty"`
	Date     string `json:"date,omitempty"`
	TimeZone string `json:"timeZone,omitempty"`
}

type Attendee struct {
	Email          string `json:"email"`
	DisplayName    string `json:"displayName,omitempty"`
	ResponseStatus string `json:"responseStatus,omitempty"`
}

type ExtendedProperties struct {
	Private map[string]string `json:"private,omitempty"`
	Shared  map[string]string `json:"shared,omitempty"`
}

type EventList struct {
	Items         []GoogleCalendarEvent `json:"items"`
	NextPageToken string                `json:"nextPageToken,omitempty"`
}

type ContactDetails struct {
	Phone string `json:"phone"`
	Email string `json:"email,omitempty" validate:"omitempty,email"`
}

type Duration struct {
	Start string `json:"start" validate:"required"`
	End   string `json:"end"`
}

// BookingEventRequest is the admin payload for creating or editing a booking
// event directly on the calendar.
type BookingEventRequest struct {
	CustomerName     string         `json:"customerName" validate:"required"`
	ContactDetails   ContactDetails `json:"contactDetails"`
	Location         string         `json:"location"`
	Notes            string         `json:"notes"`
	Duration         Duration       `json:"duration"`
	Cost             float64        `json:"cost" validate:"gte=0"`
	BouncyCastleType string         `json:"bouncyCastleType"`
	BookingRef       string         `json:"bookingRef,omitempty"`
}

type CalendarStatusResponse struct {
	Status          string `json:"status"`
	Message         string `json:"message"`
	EventsThisMonth int    `json:"eventsThisMonth"`
	LastUpdated     string `json:"lastUpdated"`
	CalendarID      string `json:"calendarId,omitempty"`
}

type EventsResponse struct {
	Year   int                   `json:"year"`
	Month  int                   `json:"month"`
	Events []GoogleCalendarEvent `json:"events"`
}
