package service

import (
	"sort"
	"strings"
	"time"

	bookingentity "castle-admin/modules/booking/entity"
	fleetentity "castle-admin/modules/fleet/entity"
	"castle-admin/modules/overview/dto"
)

const (
	reasonBooked      = "booked"
	reasonMaintenance = "maintenance"
)

// span is an inclusive range of civil days.
type span struct {
	start, end time.Time
	reason     string
}

// Availability reports, per castle, the merged busy ranges of a month and the
// days left free. Cancelled bookings do not occupy a castle; maintenance
// windows and out-of-service castles do.
func Availability(year int, month time.Month, castles []fleetentity.Service, entries []dto.MergedBooking) []dto.CastleAvailability {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	out := make([]dto.CastleAvailability, 0, len(castles))
	for _, castle := range castles {
		var spans []span
		for _, e := range entries {
			if e.Status == string(bookingentity.StatusCancelled) || !strings.EqualFold(e.CastleName, castle.Name) {
				continue
			}
			end := e.LastDay
			if end.Before(e.StartDay) {
				end = e.StartDay
			}
			spans = append(spans, span{start: e.StartDay, end: end, reason: reasonBooked})
		}
		if s, ok := maintenanceSpan(castle, first, last); ok {
			spans = append(spans, s)
		}

		busy := mergeSpans(clip(spans, first, last))
		avail := dto.CastleAvailability{
			CastleID:          castle.ID,
			CastleName:        castle.Name,
			MaintenanceStatus: string(castle.MaintenanceStatus),
			Busy:              make([]dto.DayRange, 0, len(busy)),
			FreeDays:          freeDays(busy, first, last),
		}
		for _, s := range busy {
			avail.Busy = append(avail.Busy, dto.DayRange{
				Start:  s.start.Format(dateLayout),
				End:    s.end.Format(dateLayout),
				Reason: s.reason,
			})
		}
		out = append(out, avail)
	}
	return out
}

func maintenanceSpan(castle fleetentity.Service, first, last time.Time) (span, bool) {
	switch castle.MaintenanceStatus {
	case fleetentity.MaintenanceOutOfService:
		return span{start: first, end: last, reason: reasonMaintenance}, true
	case fleetentity.MaintenanceInProgress:
		if castle.MaintenanceStartDate == nil {
			return span{start: first, end: last, reason: reasonMaintenance}, true
		}
		end := last
		if castle.MaintenanceEndDate != nil {
			end = civil(*castle.MaintenanceEndDate)
		}
		return span{start: civil(*castle.MaintenanceStartDate), end: end, reason: reasonMaintenance}, true
	}
	return span{}, false
}

func clip(spans []span, first, last time.Time) []span {
	out := spans[:0]
	for _, s := range spans {
		if s.end.Before(first) || s.start.After(last) {
			continue
		}
		if s.start.Before(first) {
			s.start = first
		}
		if s.end.After(last) {
			s.end = last
		}
		out = append(out, s)
	}
	return out
}

// mergeSpans joins overlapping or back-to-back spans. A merged span keeps
// the maintenance reason if any of its parts had it.
func mergeSpans(spans []span) []span {
	if len(spans) == 0 {
		return spans
	}
	sort.Slice(spans, func(i, j int) bool {
		return spans[i].start.Before(spans[j].start)
	})

	merged := []span{spans[0]}
	for _, current := range spans[1:] {
		prev := &merged[len(merged)-1]
		if current.start.After(prev.end.AddDate(0, 0, 1)) {
			merged = append(merged, current)
			continue
		}
		if current.end.After(prev.end) {
			prev.end = current.end
		}
		if current.reason == reasonMaintenance {
			prev.reason = reasonMaintenance
		}
	}
	return merged
}

func freeDays(busy []span, first, last time.Time) []string {
	days := []string{}
	i := 0
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		for i < len(busy) && busy[i].end.Before(d) {
			i++
		}
		if i < len(busy) && !d.Before(busy[i].start) {
			continue
		}
		days = append(days, d.Format(dateLayout))
	}
	return days
}
