package service

import (
	"testing"
	"time"

	"castle-admin/modules/overview/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthGridShape(t *testing.T) {
	weeks := MonthGrid(2024, time.June, nil, time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC))

	require.Len(t, weeks, 6)
	assert.Equal(t, "2024-05-26", weeks[0][0].Date)
	assert.False(t, weeks[0][0].InMonth)
	assert.Equal(t, "2024-06-01", weeks[0][6].Date)
	assert.True(t, weeks[0][6].InMonth)
	assert.Equal(t, "2024-07-06", weeks[5][6].Date)

	assert.True(t, weeks[2][1].Today)
	assert.Equal(t, 10, weeks[2][1].Day)
	assert.False(t, weeks[2][2].Today)
	for _, week := range weeks {
		require.Len(t, week, 7)
		for _, d := range week {
			assert.NotNil(t, d.Bookings)
		}
	}
}

func TestMonthGridFourWeeks(t *testing.T) {
	// February 2026 starts on a Sunday and ends on a Saturday.
	weeks := MonthGrid(2026, time.February, nil, time.Time{})
	require.Len(t, weeks, 4)
	assert.Equal(t, "2026-02-01", weeks[0][0].Date)
	assert.Equal(t, "2026-02-28", weeks[3][6].Date)
}

func TestMonthGridPlacesMultiDayBookings(t *testing.T) {
	entry := dto.MergedBooking{
		ID:       "db_1",
		StartDay: time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC),
		LastDay:  time.Date(2024, 6, 16, 0, 0, 0, 0, time.UTC),
	}
	single := dto.MergedBooking{
		ID:       "cal-x",
		StartDay: time.Date(2024, 6, 16, 0, 0, 0, 0, time.UTC),
	}

	weeks := MonthGrid(2024, time.June, []dto.MergedBooking{entry, single}, time.Time{})

	assert.Empty(t, weeks[2][4].Bookings)
	assert.Len(t, weeks[2][5].Bookings, 1)
	assert.Len(t, weeks[2][6].Bookings, 1)
	require.Len(t, weeks[3][0].Bookings, 2)
	assert.Equal(t, "db_1", weeks[3][0].Bookings[0].ID)
	assert.Equal(t, "cal-x", weeks[3][0].Bookings[1].ID)
	assert.Empty(t, weeks[3][1].Bookings)
}
