package mapper

import (
	"strings"
	"testing"
	"time"

	"castle-admin/core/constants"
	"castle-admin/modules/calendar/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func london(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Europe/London")
	require.NoError(t, err)
	return loc
}

func TestFriendlyRefIsStable(t *testing.T) {
	a := FriendlyRef("abc123def456")
	b := FriendlyRef("abc123def456")
	c := FriendlyRef("abc123def457")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, len(constants.BookingRefPrefix)+constants.BookingRefLength)
	assert.True(t, strings.HasPrefix(a, "BC"))
	for _, r := range a[2:] {
		assert.Contains(t, constants.BookingRefAlphabet, string(r))
	}
}

func TestDatabaseOrigin(t *testing.T) {
	assert.Equal(t, "db00000042", DatabaseEventID(42))
	assert.True(t, IsDatabaseOrigin(dto.GoogleCalendarEvent{ID: "db00000042"}))
	assert.False(t, IsDatabaseOrigin(dto.GoogleCalendarEvent{ID: "dbq3kk1o8vrm"}))
	assert.False(t, IsDatabaseOrigin(dto.GoogleCalendarEvent{ID: "7h2c9"}))

	ev := dto.GoogleCalendarEvent{ID: "random"}
	MarkDatabaseOrigin(&ev, 7)
	assert.Equal(t, "db00000007", ev.ID)
	assert.True(t, IsDatabaseOrigin(dto.GoogleCalendarEvent{
		ID:                 "other",
		ExtendedProperties: ev.ExtendedProperties,
	}))
}

func TestIsMaintenance(t *testing.T) {
	assert.True(t, IsMaintenance(dto.GoogleCalendarEvent{Summary: "🔧 Maintenance: Big Red"}))
	assert.False(t, IsMaintenance(dto.GoogleCalendarEvent{Summary: "🏰 Jane"}))
}

func TestBuildEventBareDateUsesOpeningHours(t *testing.T) {
	loc := london(t)
	ev, appErr := BuildEvent(dto.BookingEventRequest{
		CustomerName:     "Jane Doe",
		ContactDetails:   dto.ContactDetails{Phone: "07123", Email: "jane@example.com"},
		Location:         "Leeds",
		Duration:         dto.Duration{Start: "2024-06-15"},
		Cost:             120,
		BouncyCastleType: "Princess Palace",
		BookingRef:       "BCABC123",
	}, loc)
	require.Nil(t, appErr)

	assert.Equal(t, "🏰 Jane Doe", ev.Summary)
	assert.Equal(t, "2024-06-15T10:00:00+01:00", ev.Start.DateTime)
	assert.Equal(t, "2024-06-15T18:00:00+01:00", ev.End.DateTime)
	assert.Equal(t, "Europe/London", ev.Start.TimeZone)
	assert.Contains(t, ev.Description, "Castle Type: Princess Palace")
	assert.Contains(t, ev.Description, "Cost: £120")
	assert.Contains(t, ev.Description, "Booking Ref: BCABC123")
	require.Len(t, ev.Attendees, 1)
}

func TestBuildEventRejectsBadRange(t *testing.T) {
	loc := london(t)
	_, appErr := BuildEvent(dto.BookingEventRequest{
		CustomerName: "x",
		Duration:     dto.Duration{Start: "2024-06-15T12:00", End: "2024-06-15T09:00"},
	}, loc)
	require.NotNil(t, appErr)

	_, appErr = BuildEvent(dto.BookingEventRequest{CustomerName: "x", Duration: dto.Duration{Start: "soon"}}, loc)
	require.NotNil(t, appErr)
}

func TestParseEventRoundTripsMarkers(t *testing.T) {
	loc := london(t)
	ev, appErr := BuildEvent(dto.BookingEventRequest{
		CustomerName:     "Jane Doe",
		ContactDetails:   dto.ContactDetails{Phone: "07123 456789"},
		Duration:         dto.Duration{Start: "2024-06-15", End: "2024-06-17"},
		Cost:             240.5,
		BouncyCastleType: "Princess Palace",
		Notes:            "Back garden (Overnight)",
	}, loc)
	require.Nil(t, appErr)

	p, err := ParseEvent(*ev, loc)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", p.Customer)
	assert.Equal(t, "Princess Palace", p.CastleType)
	assert.Equal(t, "07123 456789", p.Phone)
	assert.True(t, p.HasCost)
	assert.InDelta(t, 240.5, p.Cost, 0.001)
	assert.True(t, p.Overnight)
	assert.Equal(t, 3, p.Days)
	assert.True(t, p.MultiDay)
	assert.Equal(t, "2024-06-17", p.LastDay.Format("2006-01-02"))
}

func TestParseEventAllDayAndCastleFallback(t *testing.T) {
	loc := london(t)
	p, err := ParseEvent(dto.GoogleCalendarEvent{
		ID:          "evt1",
		Summary:     "Birthday party",
		Description: "Castle: Jungle Bounce (Overnight)\nPhone: 0800",
		Start:       dto.EventTime{Date: "2024-06-15"},
		End:         dto.EventTime{Date: "2024-06-16"},
	}, loc)
	require.NoError(t, err)

	assert.Equal(t, "Jungle Bounce", p.CastleType)
	assert.False(t, p.HasCost)
	assert.Equal(t, 1, p.Days)
	assert.False(t, p.MultiDay)
	assert.Equal(t, "2024-06-15", p.LastDay.Format("2006-01-02"))
	assert.True(t, p.Ended(time.Date(2024, 6, 16, 0, 0, 1, 0, loc)))
	assert.False(t, p.Ended(time.Date(2024, 6, 15, 23, 0, 0, 0, loc)))
}

func TestParseEventMissingDates(t *testing.T) {
	_, err := ParseEvent(dto.GoogleCalendarEvent{ID: "x"}, time.UTC)
	assert.Error(t, err)
}

func TestBuildBlock(t *testing.T) {
	start := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	ev := BuildBlock("🔧 Maintenance: Big Red", "Patch seams", start, start.AddDate(0, 0, 2))

	assert.Equal(t, "2024-07-01", ev.Start.Date)
	assert.Equal(t, "2024-07-04", ev.End.Date)
	assert.True(t, IsMaintenance(*ev))
}
