package service

import (
	"context"

	"castle-admin/core/constants"
	"castle-admin/core/errors"
	"castle-admin/core/logger"
	"castle-admin/modules/booking/dto"
	"castle-admin/modules/booking/entity"
	"castle-admin/modules/booking/mapper"
	"castle-admin/modules/booking/pricing"
	calmapper "castle-admin/modules/calendar/mapper"
	fleetentity "castle-admin/modules/fleet/entity"
)

// ImportCalendarEvent copies a calendar-only booking into the database. The
// new row takes the event's friendly reference, so the merged view pairs the
// two from then on.
func (s *BookingService) ImportCalendarEvent(ctx context.Context, eventID string) (*dto.BookingResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.ExternalRequestTimeout)
	defer cancel()

	ev, appErr := s.calendar.GetEvent(ctx, eventID)
	if appErr != nil {
		return nil, appErr
	}
	if calmapper.IsDatabaseOrigin(*ev) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "event already belongs to a database booking", nil)
	}
	if calmapper.IsMaintenance(*ev) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "maintenance blocks cannot be imported", nil)
	}

	parsed, err := calmapper.ParseEvent(*ev, s.loc)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "calendar event has no usable dates", err)
	}

	ref := calmapper.FriendlyRef(ev.ID)
	existing, err := s.repo.GetByRef(ctx, ref)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get booking failed", err)
	}
	if existing != nil {
		return nil, errors.NewAppError(errors.ErrAlreadyExists, "booking already imported", nil)
	}

	castles, err := s.castles.ListAll(ctx)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get castles failed", err)
	}

	b := &entity.Booking{
		BookingRef:      ref,
		CustomerName:    parsed.Customer,
		CustomerEmail:   parsed.Email,
		CustomerPhone:   parsed.Phone,
		CustomerAddress: parsed.Location,
		CastleName:      parsed.CastleType,
		Date:            parsed.StartDay,
		Overnight:       parsed.Overnight,
		Status:          entity.StatusConfirmed,
		Notes:           parsed.Notes,
		CalendarEventID: &ev.ID,
	}
	if parsed.MultiDay {
		last := parsed.LastDay
		b.EndDate = &last
	}

	castle := fleetentity.Catalog(castles).Match(parsed.CastleType, ev.Summary, ev.Description)
	if castle != nil {
		b.CastleID = &castle.ID
		b.CastleName = castle.Name
	}
	switch {
	case parsed.HasCost:
		b.TotalPrice = parsed.Cost
	case castle != nil:
		b.TotalPrice = pricing.Calculate(castle.Price, b.Date, b.EndDate, b.Overnight, 0).Total
	}
	b.Deposit = pricing.Deposit(b.TotalPrice)

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "import booking failed", err)
	}
	logger.Info("BookingService:ImportCalendarEvent:Success", "event_id", ev.ID, "booking_ref", ref, "id", b.ID)
	s.publish(ctx, constants.EventBookingImported, b)
	return mapper.ToBookingResponse(b, s.today()), nil
}

// SweepStatuses persists the derived statuses of bookings whose last day
// has passed.
func (s *BookingService) SweepStatuses(ctx context.Context) (*dto.SweepResult, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	today := s.today()
	due, err := s.repo.ListDue(ctx, today)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "list due bookings failed", err)
	}

	groups := map[entity.Status][]*entity.Booking{}
	for i := range due {
		b := &due[i]
		next := entity.DeriveStatus(b.Status, b.LastDay(), today)
		if next != b.Status {
			groups[b.Status] = append(groups[b.Status], b)
		}
	}

	result := &dto.SweepResult{}
	for from, bookings := range groups {
		to := entity.DeriveStatus(from, bookings[0].LastDay(), today)
		ids := make([]int64, 0, len(bookings))
		for _, b := range bookings {
			ids = append(ids, b.ID)
		}
		updated, err := s.repo.UpdateStatuses(ctx, ids, from, to)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrUpdateFailed, "update booking statuses failed", err)
		}
		if len(updated) < len(ids) {
			logger.Warn("BookingService:SweepStatuses:Skipped", "from", from, "to", to, "skipped", len(ids)-len(updated))
		}
		switch to {
		case entity.StatusExpired:
			result.Expired += len(updated)
		case entity.StatusCompleted:
			result.Completed += len(updated)
		}
		changed := make(map[int64]bool, len(updated))
		for _, id := range updated {
			changed[id] = true
		}
		for _, b := range bookings {
			if !changed[b.ID] {
				continue
			}
			b.Status = to
			s.publish(ctx, statusEvent(to), b)
		}
	}

	logger.Info("BookingService:SweepStatuses:Done", "expired", result.Expired, "completed", result.Completed)
	return result, nil
}
