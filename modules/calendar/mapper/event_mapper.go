package mapper

import (
	"encoding/base32"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"castle-admin/core/constants"
	"castle-admin/core/errors"
	"castle-admin/modules/calendar/dto"

	"golang.org/x/crypto/blake2b"
)

const (
	dateLayout     = "2006-01-02"
	localLayout    = "2006-01-02T15:04:05"
	shortLayout    = "2006-01-02T15:04"
	overnightToken = "(Overnight)"
)

var (
	refEncoding = base32.NewEncoding(constants.BookingRefAlphabet).WithPadding(base32.NoPadding)

	castleTypeRe = lineRe("Castle Type")
	phoneRe      = lineRe("Phone")
	emailRe      = lineRe("Email")
	customerRe   = lineRe("Customer")
	bookingRefRe = lineRe("Booking Ref")
	notesRe      = lineRe("Notes")
	costRe       = regexp.MustCompile(`Cost:\s*£\s*([0-9]+(?:\.[0-9]+)?)`)
	castleRe     = regexp.MustCompile(`Castle:\s*([^(\n]+)`)
)

func lineRe(label string) *regexp.Regexp {
	return regexp.MustCompile(`(?m)^\s*` + regexp.QuoteMeta(label) + `:\s*(.+?)\s*$`)
}

// ParsedEvent is what the admin views read out of a booking event.
type ParsedEvent struct {
	ID         string
	Customer   string
	CastleType string
	Phone      string
	Email      string
	BookingRef string
	Notes      string
	Location   string
	Cost       float64
	HasCost    bool
	Overnight  bool
	Start      time.Time
	End        time.Time
	StartDay   time.Time
	LastDay    time.Time
	Days       int
	MultiDay   bool
}

// Ended reports whether the event finished before now.
func (p ParsedEvent) Ended(now time.Time) bool {
	return !p.End.IsZero() && p.End.Before(now)
}

// FriendlyRef derives the short booking reference for a calendar event id.
// The same id always yields the same reference.
func FriendlyRef(eventID string) string {
	sum := blake2b.Sum256([]byte(eventID))
	return constants.BookingRefPrefix + refEncoding.EncodeToString(sum[:])[:constants.BookingRefLength]
}

// DatabaseEventID is the calendar event id used for a confirmed database booking.
func DatabaseEventID(bookingID int64) string {
	return fmt.Sprintf("%s%08d", constants.DatabaseEventPrefix, bookingID)
}

func IsDatabaseOrigin(ev dto.GoogleCalendarEvent) bool {
	if ev.ExtendedProperties != nil && ev.ExtendedProperties.Private[constants.DatabaseSourceKey] == constants.DatabaseSourceValue {
		return true
	}
	rest, ok := strings.CutPrefix(ev.ID, constants.DatabaseEventPrefix)
	if !ok || len(rest) < 8 {
		return false
	}
	_, err := strconv.ParseUint(rest, 10, 64)
	return err == nil
}

func IsMaintenance(ev dto.GoogleCalendarEvent) bool {
	return strings.Contains(ev.Summary, constants.MaintenanceMarker)
}

// MarkDatabaseOrigin stamps an event with the id and private property that
// tie it to a bookings row.
func MarkDatabaseOrigin(ev *dto.GoogleCalendarEvent, bookingID int64) {
	ev.ID = DatabaseEventID(bookingID)
	if ev.ExtendedProperties == nil {
		ev.ExtendedProperties = &dto.ExtendedProperties{}
	}
	if ev.ExtendedProperties.Private == nil {
		ev.ExtendedProperties.Private = map[string]string{}
	}
	ev.ExtendedProperties.Private[constants.DatabaseSourceKey] = constants.DatabaseSourceValue
	ev.ExtendedProperties.Private["bookingId"] = strconv.FormatInt(bookingID, 10)
}

// BuildEvent turns an admin booking request into a calendar event. Times are
// local to loc; a bare date runs from the default opening to closing time.
func BuildEvent(req dto.BookingEventRequest, loc *time.Location) (*dto.GoogleCalendarEvent, *errors.AppError) {
	start, err := parseBoundary(req.Duration.Start, constants.DefaultEventStart, loc)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidRequestData, "invalid duration.start", err)
	}

	endRaw := req.Duration.End
	if endRaw == "" {
		endRaw = start.Format(dateLayout)
	}
	end, err := parseBoundary(endRaw, constants.DefaultEventEnd, loc)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidRequestData, "invalid duration.end", err)
	}
	if !end.After(start) {
		return nil, errors.NewAppError(errors.ErrInvalidRequestData, "duration.end must be after duration.start", nil)
	}

	ev := &dto.GoogleCalendarEvent{
		Summary:     constants.BookingSummaryPrefix + strings.TrimSpace(req.CustomerName),
		Description: describe(req),
		Location:    req.Location,
		Start:       dto.EventTime{DateTime: start.Format(time.RFC3339), TimeZone: loc.String()},
		End:         dto.EventTime{DateTime: end.Format(time.RFC3339), TimeZone: loc.String()},
	}
	if req.ContactDetails.Email != "" {
		ev.Attendees = []dto.Attendee{{Email: req.ContactDetails.Email, DisplayName: req.CustomerName}}
	}
	return ev, nil
}

// BuildBlock creates an all-day event covering startDay through lastDay.
func BuildBlock(summary, description string, startDay, lastDay time.Time) *dto.GoogleCalendarEvent {
	if lastDay.Before(startDay) {
		lastDay = startDay
	}
	return &dto.GoogleCalendarEvent{
		Summary:     summary,
		Description: description,
		Start:       dto.EventTime{Date: startDay.Format(dateLayout)},
		End:         dto.EventTime{Date: lastDay.AddDate(0, 0, 1).Format(dateLayout)},
	}
}

func describe(req dto.BookingEventRequest) string {
	var lines []string
	add := func(label, value string) {
		if v := strings.TrimSpace(value); v != "" {
			lines = append(lines, label+": "+v)
		}
	}
	add("Customer", req.CustomerName)
	add("Phone", req.ContactDetails.Phone)
	add("Email", req.ContactDetails.Email)
	add("Castle Type", req.BouncyCastleType)
	if req.Cost > 0 {
		lines = append(lines, "Cost: £"+strconv.FormatFloat(req.Cost, 'f', -1, 64))
	}
	add("Booking Ref", req.BookingRef)
	add("Notes", req.Notes)
	return strings.Join(lines, "\n")
}

func parseBoundary(raw, defaultClock string, loc *time.Location) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.In(loc), nil
	}
	for _, layout := range []string{localLayout, shortLayout} {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t, nil
		}
	}
	if _, err := time.ParseInLocation(dateLayout, raw, loc); err != nil {
		return time.Time{}, fmt.Errorf("unrecognised time %q", raw)
	}
	return time.ParseInLocation(localLayout, raw+"T"+defaultClock, loc)
}

// EventBounds returns the start and exclusive end of an event in loc.
func EventBounds(ev dto.GoogleCalendarEvent, loc *time.Location) (time.Time, time.Time, error) {
	start, err := eventTime(ev.Start, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("event %s start: %w", ev.ID, err)
	}
	end, err := eventTime(ev.End, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("event %s end: %w", ev.ID, err)
	}
	if !end.After(start) {
		end = start
	}
	return start, end, nil
}

func eventTime(et dto.EventTime, loc *time.Location) (time.Time, error) {
	if et.DateTime != "" {
		t, err := time.Parse(time.RFC3339, et.DateTime)
		if err != nil {
			return time.Time{}, err
		}
		return t.In(loc), nil
	}
	if et.Date != "" {
		return time.ParseInLocation(dateLayout, et.Date, loc)
	}
	return time.Time{}, fmt.Errorf("missing date")
}

// ParseEvent reads the booking markers back out of an event.
func ParseEvent(ev dto.GoogleCalendarEvent, loc *time.Location) (ParsedEvent, error) {
	start, end, err := EventBounds(ev, loc)
	if err != nil {
		return ParsedEvent{}, err
	}

	desc := ev.Description
	p := ParsedEvent{
		ID:         ev.ID,
		CastleType: match(castleTypeRe, desc),
		Phone:      match(phoneRe, desc),
		Email:      match(emailRe, desc),
		BookingRef: match(bookingRefRe, desc),
		Notes:      match(notesRe, desc),
		Location:   ev.Location,
		Overnight:  strings.Contains(desc, overnightToken),
		Start:      start,
		End:        end,
	}
	if p.CastleType == "" {
		p.CastleType = strings.TrimSpace(match(castleRe, desc))
	}
	if p.Email == "" && len(ev.Attendees) > 0 {
		p.Email = ev.Attendees[0].Email
	}
	if m := costRe.FindStringSubmatch(desc); m != nil {
		if cost, err := strconv.ParseFloat(m[1], 64); err == nil {
			p.Cost, p.HasCost = cost, true
		}
	}

	p.Customer = CustomerName(ev.Summary)
	if p.Customer == "" {
		p.Customer = match(customerRe, desc)
	}

	p.StartDay = startOfDay(start)
	last := end
	if end.After(start) {
		last = end.Add(-time.Nanosecond)
	}
	p.LastDay = startOfDay(last)
	p.Days = daysBetween(p.StartDay, p.LastDay) + 1
	p.MultiDay = p.Days > 1
	return p, nil
}

// CustomerName strips the booking and maintenance markers from a summary.
func CustomerName(summary string) string {
	s := strings.TrimSpace(summary)
	s = strings.TrimPrefix(s, strings.TrimSpace(constants.BookingSummaryPrefix))
	s = strings.TrimPrefix(strings.TrimSpace(s), constants.MaintenanceMarker)
	return strings.TrimSpace(s)
}

func match(re *regexp.Regexp, s string) string {
	if m := re.FindStringSubmatch(s); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	ua := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	ub := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}
