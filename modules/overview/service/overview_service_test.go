package service

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"castle-admin/core/errors"
	bookingentity "castle-admin/modules/booking/entity"
	caldto "castle-admin/modules/calendar/dto"
	fleetentity "castle-admin/modules/fleet/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bookingSource struct {
	rows     []bookingentity.Booking
	err      error
	from, to time.Time
}

func (b *bookingSource) ListOverlapping(_ context.Context, from, to time.Time) ([]bookingentity.Booking, error) {
	b.from, b.to = from, to
	return b.rows, b.err
}

type castleSource []fleetentity.Service

func (c castleSource) ListAll(context.Context) ([]fleetentity.Service, error) {
	return c, nil
}

type eventSource struct {
	connected bool
	loc       *time.Location
	events    []caldto.GoogleCalendarEvent
	err       *errors.AppError
	calls     int
}

func (e *eventSource) Connected() bool          { return e.connected }
func (e *eventSource) Location() *time.Location { return e.loc }

func (e *eventSource) MonthEvents(context.Context, int, time.Month) ([]caldto.GoogleCalendarEvent, *errors.AppError) {
	e.calls++
	return e.events, e.err
}

func newService(t *testing.T, bookings *bookingSource, events *eventSource) *OverviewService {
	t.Helper()
	loc := london(t)
	events.loc = loc
	svc := NewOverviewService(bookings, castleSource(castles()), events)
	svc.now = func() time.Time { return time.Date(2024, 6, 10, 12, 0, 0, 0, loc) }
	return svc
}

func TestOverviewMergesSources(t *testing.T) {
	src := fixture()
	bookings := &bookingSource{rows: src.Bookings}
	events := &eventSource{connected: true, events: src.Events}
	svc := newService(t, bookings, events)

	resp, appErr := svc.Overview(context.Background(), 2024, time.June, Filter{Status: "confirmed"})
	require.Nil(t, appErr)

	assert.Equal(t, 2024, resp.Year)
	assert.Equal(t, 6, resp.Month)
	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, 5, resp.Counts["all"])
	assert.True(t, resp.CalendarConnected)
	assert.Empty(t, resp.CalendarError)
	assert.Equal(t, "2024-06-01", bookings.from.Format("2006-01-02"))
	assert.Equal(t, "2024-07-01", bookings.to.Format("2006-01-02"))
}

func TestOverviewCalendarFailureKeepsDatabaseRows(t *testing.T) {
	src := fixture()
	events := &eventSource{
		connected: true,
		err:       errors.NewAppError(errors.ErrExternalService, "calendar unavailable", nil),
	}
	svc := newService(t, &bookingSource{rows: src.Bookings}, events)

	resp, appErr := svc.Overview(context.Background(), 2024, time.June, Filter{})
	require.Nil(t, appErr)
	assert.Equal(t, "calendar unavailable", resp.CalendarError)
	assert.Equal(t, []string{"db_3", "db_1", "db_4"}, ids(resp.Bookings))
}

func TestOverviewDisconnectedCalendarSkipsEvents(t *testing.T) {
	events := &eventSource{connected: false}
	svc := newService(t, &bookingSource{}, events)

	resp, appErr := svc.Overview(context.Background(), 2024, time.June, Filter{})
	require.Nil(t, appErr)
	assert.False(t, resp.CalendarConnected)
	assert.Equal(t, 0, events.calls)
	assert.Empty(t, resp.Bookings)
}

func TestOverviewDatabaseFailure(t *testing.T) {
	svc := newService(t, &bookingSource{err: stderrors.New("connection refused")}, &eventSource{})

	resp, appErr := svc.Overview(context.Background(), 2024, time.June, Filter{})
	assert.Nil(t, resp)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrGetFailed, appErr.Code)
}

func TestGridUsesUnfilteredEntries(t *testing.T) {
	src := fixture()
	svc := newService(t, &bookingSource{rows: src.Bookings}, &eventSource{connected: true, events: src.Events})

	resp, appErr := svc.Grid(context.Background(), 2024, time.June)
	require.Nil(t, appErr)
	require.Len(t, resp.Weeks, 6)
	assert.True(t, resp.Weeks[2][1].Today)
	// June 22 is a Saturday in the fourth row.
	require.Len(t, resp.Weeks[3][6].Bookings, 1)
	assert.Equal(t, "cal-evt-cost", resp.Weeks[3][6].Bookings[0].ID)
}
