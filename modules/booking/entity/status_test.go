package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckTransition(t *testing.T) {
	allowed := [][2]Status{
		{StatusPending, StatusConfirmed},
		{StatusPending, StatusCancelled},
		{StatusPending, StatusExpired},
		{StatusConfirmed, StatusCancelled},
		{StatusConfirmed, StatusCompleted},
	}
	for _, tr := range allowed {
		changed, err := CheckTransition(tr[0], tr[1])
		require.NoError(t, err, "%s -> %s", tr[0], tr[1])
		assert.True(t, changed)
	}

	for _, st := range AllStatuses {
		changed, err := CheckTransition(st, st)
		assert.NoError(t, err)
		assert.False(t, changed)
	}

	rejected := [][2]Status{
		{StatusCompleted, StatusPending},
		{StatusExpired, StatusConfirmed},
		{StatusCancelled, StatusConfirmed},
		{StatusConfirmed, StatusPending},
		{StatusPending, StatusCompleted},
		{StatusConfirmed, StatusExpired},
	}
	for _, tr := range rejected {
		_, err := CheckTransition(tr[0], tr[1])
		assert.ErrorIs(t, err, ErrInvalidTransition, "%s -> %s", tr[0], tr[1])
	}
}

func TestTerminal(t *testing.T) {
	assert.False(t, StatusPending.Terminal())
	assert.False(t, StatusConfirmed.Terminal())
	assert.True(t, StatusCompleted.Terminal())
	assert.True(t, StatusExpired.Terminal())
	assert.True(t, StatusCancelled.Terminal())
}

func TestDeriveStatus(t *testing.T) {
	now := time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)
	yesterday := time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC)
	today := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, StatusExpired, DeriveStatus(StatusPending, yesterday, now))
	assert.Equal(t, StatusCompleted, DeriveStatus(StatusConfirmed, yesterday, now))
	assert.Equal(t, StatusCancelled, DeriveStatus(StatusCancelled, yesterday, now))
	assert.Equal(t, StatusPending, DeriveStatus(StatusPending, today, now))
	assert.Equal(t, StatusConfirmed, DeriveStatus(StatusConfirmed, today, now))
}

func TestLastDay(t *testing.T) {
	start := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 2)

	assert.Equal(t, start, Booking{Date: start}.LastDay())
	assert.Equal(t, end, Booking{Date: start, EndDate: &end}.LastDay())

	before := start.AddDate(0, 0, -1)
	assert.Equal(t, start, Booking{Date: start, EndDate: &before}.LastDay())
}

func TestParseStatus(t *testing.T) {
	st, ok := ParseStatus("confirmed")
	assert.True(t, ok)
	assert.Equal(t, StatusConfirmed, st)

	_, ok = ParseStatus("all")
	assert.False(t, ok)
}
