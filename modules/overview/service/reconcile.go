package service

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"castle-admin/core/constants"
	"castle-admin/core/logger"
	bookingentity "castle-admin/modules/booking/entity"
	"castle-admin/modules/booking/pricing"
	caldto "castle-admin/modules/calendar/dto"
	calmapper "castle-admin/modules/calendar/mapper"
	fleetentity "castle-admin/modules/fleet/entity"
	"castle-admin/modules/overview/dto"
)

const dateLayout = "2006-01-02"

// Filter narrows the merged list. An empty or "all" status keeps every status.
type Filter struct {
	Status string
	Search string
}

func (f Filter) keep(b dto.MergedBooking) bool {
	if f.Status != "" && f.Status != "all" && b.Status != f.Status {
		return false
	}
	term := strings.ToLower(strings.TrimSpace(f.Search))
	if term == "" {
		return true
	}
	for _, field := range []string{b.CustomerName, b.CustomerEmail, b.CastleName, b.BookingRef} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

type Sources struct {
	Bookings []bookingentity.Booking
	Events   []caldto.GoogleCalendarEvent
	Castles  []fleetentity.Service
}

type Result struct {
	Bookings []dto.MergedBooking
	Counts   map[string]int
}

// Reconcile merges database bookings with calendar-only bookings. Expired
// bookings are dropped, calendar copies of database bookings are skipped, and
// counts are taken before the status and search filter.
func Reconcile(src Sources, filter Filter, now time.Time, loc *time.Location) Result {
	now = now.In(loc)
	merged := make([]dto.MergedBooking, 0, len(src.Bookings)+len(src.Events))
	refs := make(map[string]struct{}, len(src.Bookings))
	linked := make(map[string]struct{}, len(src.Bookings))

	for i := range src.Bookings {
		b := &src.Bookings[i]
		refs[b.BookingRef] = struct{}{}
		if b.CalendarEventID != nil && *b.CalendarEventID != "" {
			linked[*b.CalendarEventID] = struct{}{}
		}
		m := fromDatabase(b, now)
		if m.Status == string(bookingentity.StatusExpired) {
			continue
		}
		merged = append(merged, m)
	}

	catalog := fleetentity.Catalog(src.Castles)
	for _, ev := range src.Events {
		if calmapper.IsDatabaseOrigin(ev) || calmapper.IsMaintenance(ev) {
			continue
		}
		if _, ok := linked[ev.ID]; ok {
			continue
		}
		ref := calmapper.FriendlyRef(ev.ID)
		if _, ok := refs[ref]; ok {
			continue
		}
		m, err := fromCalendar(ev, ref, catalog, now, loc)
		if err != nil {
			logger.Warn("OverviewService:Reconcile:SkipEvent", "event_id", ev.ID, "error", err)
			continue
		}
		merged = append(merged, m)
	}

	counts := map[string]int{"all": len(merged)}
	for _, st := range bookingentity.AllStatuses {
		if st != bookingentity.StatusExpired {
			counts[string(st)] = 0
		}
	}
	out := make([]dto.MergedBooking, 0, len(merged))
	for _, m := range merged {
		counts[m.Status]++
		if filter.keep(m) {
			out = append(out, m)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].StartDay.Equal(out[j].StartDay) {
			return out[i].StartDay.Before(out[j].StartDay)
		}
		return out[i].BookingRef < out[j].BookingRef
	})
	return Result{Bookings: out, Counts: counts}
}

func fromDatabase(b *bookingentity.Booking, now time.Time) dto.MergedBooking {
	id := b.ID
	last := b.LastDay()
	m := dto.MergedBooking{
		ID:              constants.MergedDatabasePrefix + strconv.FormatInt(b.ID, 10),
		Source:          dto.SourceDatabase,
		BookingID:       &id,
		BookingRef:      b.BookingRef,
		CustomerName:    b.CustomerName,
		CustomerEmail:   b.CustomerEmail,
		CustomerPhone:   b.CustomerPhone,
		CustomerAddress: b.CustomerAddress,
		CastleName:      b.CastleName,
		Date:            b.Date.Format(dateLayout),
		Days:            pricing.Days(b.Date, b.EndDate),
		Overnight:       b.Overnight,
		TotalPrice:      b.TotalPrice,
		Deposit:         b.Deposit,
		Status:          string(bookingentity.DeriveStatus(b.Status, last, now)),
		Notes:           b.Notes,
		StartDay:        civil(b.Date),
		LastDay:         civil(last),
	}
	if b.EndDate != nil {
		m.EndDate = b.EndDate.Format(dateLayout)
	}
	if b.CalendarEventID != nil {
		m.CalendarEventID = *b.CalendarEventID
	}
	return m
}

func fromCalendar(ev caldto.GoogleCalendarEvent, ref string, catalog fleetentity.Catalog, now time.Time, loc *time.Location) (dto.MergedBooking, error) {
	p, err := calmapper.ParseEvent(ev, loc)
	if err != nil {
		return dto.MergedBooking{}, err
	}

	castleName := p.CastleType
	basePrice := 0.0
	if castle := catalog.Match(p.CastleType, ev.Summary, ev.Description); castle != nil {
		castleName = castle.Name
		basePrice = castle.Price
	}

	total := p.Cost
	if !p.HasCost {
		last := p.LastDay
		total = pricing.Calculate(basePrice, p.StartDay, &last, p.Overnight, 0).Total
	}

	status := bookingentity.StatusConfirmed
	if p.Ended(now) {
		status = bookingentity.StatusCompleted
	}

	m := dto.MergedBooking{
		ID:              constants.MergedCalendarPrefix + ev.ID,
		Source:          dto.SourceCalendar,
		CalendarEventID: ev.ID,
		BookingRef:      ref,
		CustomerName:    p.Customer,
		CustomerEmail:   p.Email,
		CustomerPhone:   p.Phone,
		CustomerAddress: p.Location,
		CastleName:      castleName,
		Date:            p.StartDay.Format(dateLayout),
		Days:            p.Days,
		Overnight:       p.Overnight,
		TotalPrice:      total,
		Deposit:         pricing.Deposit(total),
		Status:          string(status),
		Notes:           p.Notes,
		StartDay:        civil(p.StartDay),
		LastDay:         civil(p.LastDay),
	}
	if p.MultiDay {
		m.EndDate = p.LastDay.Format(dateLayout)
	}
	return m, nil
}

// civil drops the clock and zone so days compare by calendar date.
func civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
