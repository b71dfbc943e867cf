package service

import (
	"time"

	"castle-admin/modules/overview/dto"

	"github.com/jinzhu/now"
)

// MonthGrid lays the month out as Sunday-first weeks. Leading and trailing
// days from the neighbouring months fill the first and last week, and each
// day lists the entries that occupy it.
func MonthGrid(year int, month time.Month, entries []dto.MergedBooking, today time.Time) [][]dto.GridDay {
	cfg := &now.Config{WeekStartDay: time.Sunday, TimeLocation: time.UTC}
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	gridStart := cfg.With(first).BeginningOfWeek()
	gridEnd := cfg.With(first).EndOfMonth()
	gridEnd = civil(cfg.With(gridEnd).EndOfWeek())

	todayDay := civil(today)
	var weeks [][]dto.GridDay
	for weekStart := gridStart; !weekStart.After(gridEnd); weekStart = weekStart.AddDate(0, 0, 7) {
		week := make([]dto.GridDay, 7)
		for i := range week {
			d := weekStart.AddDate(0, 0, i)
			week[i] = dto.GridDay{
				Date:     d.Format(dateLayout),
				Day:      d.Day(),
				InMonth:  d.Month() == month,
				Today:    d.Equal(todayDay),
				Bookings: occupying(entries, d),
			}
		}
		weeks = append(weeks, week)
	}
	return weeks
}

func occupying(entries []dto.MergedBooking, d time.Time) []dto.MergedBooking {
	out := []dto.MergedBooking{}
	for _, e := range entries {
		last := e.LastDay
		if last.Before(e.StartDay) {
			last = e.StartDay
		}
		if !d.Before(e.StartDay) && !d.After(last) {
			out = append(out, e)
		}
	}
	return out
}
