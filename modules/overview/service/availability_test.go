package service

import (
	"context"
	"testing"
	"time"

	fleetentity "castle-admin/modules/fleet/entity"
	"castle-admin/modules/overview/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(castle string, status string, start, end time.Time) dto.MergedBooking {
	return dto.MergedBooking{CastleName: castle, Status: status, StartDay: start, LastDay: end}
}

func TestAvailabilityMergesBusyDays(t *testing.T) {
	maintStart, maintEnd := day(time.June, 11), day(time.June, 13)
	fleet := castles()
	fleet[1].MaintenanceStatus = fleetentity.MaintenanceInProgress
	fleet[1].MaintenanceStartDate = &maintStart
	fleet[1].MaintenanceEndDate = &maintEnd
	broken := fleetentity.Service{Name: "Dragon Den", MaintenanceStatus: fleetentity.MaintenanceOutOfService}
	broken.ID = 3
	fleet = append(fleet, broken)

	entries := []dto.MergedBooking{
		entry("Princess Palace", "confirmed", day(time.June, 14), day(time.June, 16)),
		entry("princess palace", "pending", day(time.June, 17), day(time.June, 17)),
		entry("Princess Palace", "cancelled", day(time.June, 20), day(time.June, 20)),
		entry("Princess Palace", "completed", day(time.May, 30), day(time.June, 2)),
		entry("Pirate Ship", "confirmed", day(time.June, 13), day(time.June, 14)),
	}

	got := Availability(2024, time.June, fleet, entries)
	require.Len(t, got, 3)

	princess := got[0]
	assert.Equal(t, int64(1), princess.CastleID)
	assert.Equal(t, []dto.DayRange{
		{Start: "2024-06-01", End: "2024-06-02", Reason: "booked"},
		{Start: "2024-06-14", End: "2024-06-17", Reason: "booked"},
	}, princess.Busy)
	assert.Len(t, princess.FreeDays, 24)
	assert.Equal(t, "2024-06-03", princess.FreeDays[0])
	assert.Contains(t, princess.FreeDays, "2024-06-20")

	pirate := got[1]
	assert.Equal(t, "maintenance", pirate.MaintenanceStatus)
	assert.Equal(t, []dto.DayRange{{Start: "2024-06-11", End: "2024-06-14", Reason: "maintenance"}}, pirate.Busy)
	assert.Len(t, pirate.FreeDays, 26)

	dragon := got[2]
	assert.Equal(t, []dto.DayRange{{Start: "2024-06-01", End: "2024-06-30", Reason: "maintenance"}}, dragon.Busy)
	assert.NotNil(t, dragon.FreeDays)
	assert.Empty(t, dragon.FreeDays)
}

func TestAvailabilityOpenEndedMaintenance(t *testing.T) {
	start := day(time.June, 25)
	fleet := castles()[:1]
	fleet[0].MaintenanceStatus = fleetentity.MaintenanceInProgress
	fleet[0].MaintenanceStartDate = &start

	got := Availability(2024, time.June, fleet, nil)
	require.Len(t, got, 1)
	assert.Equal(t, []dto.DayRange{{Start: "2024-06-25", End: "2024-06-30", Reason: "maintenance"}}, got[0].Busy)
	assert.Len(t, got[0].FreeDays, 24)
}

func TestOverviewAvailability(t *testing.T) {
	src := fixture()
	svc := newService(t, &bookingSource{rows: src.Bookings}, &eventSource{connected: true, events: src.Events})

	resp, appErr := svc.Availability(context.Background(), 2024, time.June)
	require.Nil(t, appErr)
	require.Len(t, resp.Castles, 2)

	assert.Equal(t, "Princess Palace", resp.Castles[0].CastleName)
	assert.Len(t, resp.Castles[0].Busy, 4)
	assert.Equal(t, []dto.DayRange{{Start: "2024-06-01", End: "2024-06-02", Reason: "booked"}}, resp.Castles[1].Busy)
}
