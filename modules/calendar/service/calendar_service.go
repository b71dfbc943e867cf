package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"castle-admin/core/cache"
	"castle-admin/core/constants"
	"castle-admin/core/errors"
	"castle-admin/core/logger"
	"castle-admin/modules/calendar/client"
	"castle-admin/modules/calendar/dto"
	"castle-admin/modules/calendar/mapper"

	"github.com/jinzhu/now"
)

type CalendarServiceInterface interface {
	Connected() bool
	Location() *time.Location
	Status(ctx context.Context) *dto.CalendarStatusResponse
	MonthEvents(ctx context.Context, year int, month time.Month) ([]dto.GoogleCalendarEvent, *errors.AppError)
	GetEvent(ctx context.Context, eventID string) (*dto.GoogleCalendarEvent, *errors.AppError)
	CreateEvent(ctx context.Context, req *dto.BookingEventRequest) (*dto.GoogleCalendarEvent, *errors.AppError)
	CreateDatabaseEvent(ctx context.Context, bookingID int64, req *dto.BookingEventRequest) (*dto.GoogleCalendarEvent, *errors.AppError)
	UpdateEvent(ctx context.Context, eventID string, req *dto.BookingEventRequest) (*dto.GoogleCalendarEvent, *errors.AppError)
	DeleteEvent(ctx context.Context, eventID string) *errors.AppError
	CreateBlock(ctx context.Context, summary, description string, startDay, lastDay time.Time) (*dto.GoogleCalendarEvent, *errors.AppError)
}

type CalendarService struct {
	client     client.EventsClient
	cache      cache.Cache
	loc        *time.Location
	calendarID string
	now        func() time.Time
}

func NewCalendarService(c client.EventsClient, store cache.Cache, loc *time.Location, calendarID string) *CalendarService {
	if store == nil {
		store = cache.Noop()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &CalendarService{client: c, cache: store, loc: loc, calendarID: calendarID, now: time.Now}
}

func (s *CalendarService) Connected() bool {
	return s.client != nil && s.client.Configured()
}

func (s *CalendarService) Location() *time.Location {
	return s.loc
}

func (s *CalendarService) Status(ctx context.Context) *dto.CalendarStatusResponse {
	current := s.now().In(s.loc)
	resp := &dto.CalendarStatusResponse{
		LastUpdated: current.Format(time.RFC3339),
		CalendarID:  s.calendarID,
	}
	if !s.Connected() {
		resp.Status = "disconnected"
		resp.Message = "Google Calendar credentials are not configured"
		return resp
	}

	events, appErr := s.MonthEvents(ctx, current.Year(), current.Month())
	if appErr != nil {
		resp.Status = "error"
		resp.Message = appErr.Message
		return resp
	}
	resp.Status = "connected"
	resp.Message = "Google Calendar is connected"
	resp.EventsThisMonth = len(events)
	return resp
}

func monthKey(t time.Time) string {
	return constants.RedisKeyCalendarEvents + t.Format("2006-01")
}

func (s *CalendarService) monthWindow(year int, month time.Month) (time.Time, time.Time) {
	begin := now.With(time.Date(year, month, 1, 12, 0, 0, 0, s.loc)).BeginningOfMonth()
	return begin, begin.AddDate(0, 1, 0)
}

// MonthEvents lists every event overlapping the month in the business timezone.
func (s *CalendarService) MonthEvents(ctx context.Context, year int, month time.Month) ([]dto.GoogleCalendarEvent, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.ExternalRequestTimeout)
	defer cancel()

	if month < time.January || month > time.December {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "month must be between 1 and 12", nil)
	}

	begin, end := s.monthWindow(year, month)
	key := monthKey(begin)

	var cached []dto.GoogleCalendarEvent
	err := s.cache.GetJSON(ctx, key, &cached)
	switch {
	case err == nil:
		logger.Debug("CalendarService:MonthEvents:CacheHit", "key", key, "count", len(cached))
		return cached, nil
	case !stderrors.Is(err, cache.ErrMiss):
		logger.Warn("CalendarService:MonthEvents:CacheError", "key", key, "error", err)
	}

	events, err := s.client.List(ctx, begin, end)
	if err != nil {
		return nil, s.apiError("MonthEvents", err)
	}
	if events == nil {
		events = []dto.GoogleCalendarEvent{}
	}

	if err := s.cache.SetJSON(ctx, key, events, constants.CalendarEventsTTL); err != nil {
		logger.Warn("CalendarService:MonthEvents:CacheSetError", "key", key, "error", err)
	}
	logger.Info("CalendarService:MonthEvents:Fetched", "key", key, "count", len(events))
	return events, nil
}

func (s *CalendarService) GetEvent(ctx context.Context, eventID string) (*dto.GoogleCalendarEvent, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.ExternalRequestTimeout)
	defer cancel()

	ev, err := s.client.Get(ctx, eventID)
	if err != nil {
		return nil, s.apiError("GetEvent", err)
	}
	return ev, nil
}

func (s *CalendarService) CreateEvent(ctx context.Context, req *dto.BookingEventRequest) (*dto.GoogleCalendarEvent, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.ExternalRequestTimeout)
	defer cancel()

	ev, appErr := mapper.BuildEvent(*req, s.loc)
	if appErr != nil {
		return nil, appErr
	}
	created, err := s.client.Insert(ctx, ev)
	if err != nil {
		return nil, s.apiError("CreateEvent", err)
	}
	s.invalidate(ctx, *created)
	logger.Info("CalendarService:CreateEvent:Success", "event_id", created.ID)
	return created, nil
}

// CreateDatabaseEvent inserts the event for a confirmed booking under its
// deterministic id. If the id is already taken the existing event is returned.
func (s *CalendarService) CreateDatabaseEvent(ctx context.Context, bookingID int64, req *dto.BookingEventRequest) (*dto.GoogleCalendarEvent, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.ExternalRequestTimeout)
	defer cancel()

	ev, appErr := mapper.BuildEvent(*req, s.loc)
	if appErr != nil {
		return nil, appErr
	}
	mapper.MarkDatabaseOrigin(ev, bookingID)

	created, err := s.client.Insert(ctx, ev)
	if err != nil {
		if !client.IsConflict(err) {
			return nil, s.apiError("CreateDatabaseEvent", err)
		}
		logger.Info("CalendarService:CreateDatabaseEvent:Exists", "event_id", ev.ID, "booking_id", bookingID)
		existing, err := s.client.Get(ctx, ev.ID)
		if err != nil {
			return nil, s.apiError("CreateDatabaseEvent", err)
		}
		return existing, nil
	}
	s.invalidate(ctx, *created)
	logger.Info("CalendarService:CreateDatabaseEvent:Success", "event_id", created.ID, "booking_id", bookingID)
	return created, nil
}

func (s *CalendarService) UpdateEvent(ctx context.Context, eventID string, req *dto.BookingEventRequest) (*dto.GoogleCalendarEvent, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.ExternalRequestTimeout)
	defer cancel()

	ev, appErr := mapper.BuildEvent(*req, s.loc)
	if appErr != nil {
		return nil, appErr
	}

	previous, err := s.client.Get(ctx, eventID)
	if err != nil {
		return nil, s.apiError("UpdateEvent", err)
	}
	updated, err := s.client.Patch(ctx, eventID, ev)
	if err != nil {
		return nil, s.apiError("UpdateEvent", err)
	}
	s.invalidate(ctx, *previous, *updated)
	logger.Info("CalendarService:UpdateEvent:Success", "event_id", eventID)
	return updated, nil
}

func (s *CalendarService) DeleteEvent(ctx context.Context, eventID string) *errors.AppError {
	ctx, cancel := context.WithTimeout(ctx, constants.ExternalRequestTimeout)
	defer cancel()

	previous, err := s.client.Get(ctx, eventID)
	if err != nil {
		return s.apiError("DeleteEvent", err)
	}
	if err := s.client.Delete(ctx, eventID); err != nil {
		return s.apiError("DeleteEvent", err)
	}
	s.invalidate(ctx, *previous)
	logger.Info("CalendarService:DeleteEvent:Success", "event_id", eventID)
	return nil
}

func (s *CalendarService) CreateBlock(ctx context.Context, summary, description string, startDay, lastDay time.Time) (*dto.GoogleCalendarEvent, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.ExternalRequestTimeout)
	defer cancel()

	created, err := s.client.Insert(ctx, mapper.BuildBlock(summary, description, startDay.In(s.loc), lastDay.In(s.loc)))
	if err != nil {
		return nil, s.apiError("CreateBlock", err)
	}
	s.invalidate(ctx, *created)
	logger.Info("CalendarService:CreateBlock:Success", "event_id", created.ID, "summary", summary)
	return created, nil
}

// invalidate drops the cached months that any of the events overlaps.
func (s *CalendarService) invalidate(ctx context.Context, events ...dto.GoogleCalendarEvent) {
	seen := map[string]struct{}{}
	var keys []string
	for _, ev := range events {
		start, end, err := mapper.EventBounds(ev, s.loc)
		if err != nil {
			continue
		}
		if end.After(start) {
			end = end.Add(-time.Nanosecond)
		}
		for m := now.With(start).BeginningOfMonth(); !m.After(end); m = m.AddDate(0, 1, 0) {
			key := monthKey(m)
			if _, ok := seen[key]; !ok {
				seen[key] = struct{}{}
				keys = append(keys, key)
			}
		}
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		logger.Warn("CalendarService:Invalidate:Error", "keys", keys, "error", err)
	}
}

func (s *CalendarService) apiError(step string, err error) *errors.AppError {
	logger.Error(fmt.Sprintf("CalendarService:%s:Error", step), "error", err)
	switch {
	case stderrors.Is(err, client.ErrNotConfigured):
		return errors.NewAppError(errors.ErrExternalService, "Google Calendar is not connected", err)
	case client.IsNotFound(err):
		return errors.NewAppError(errors.ErrNotFound, "calendar event not found", err)
	case client.IsConflict(err):
		return errors.NewAppError(errors.ErrConflict, "calendar event already exists", err)
	default:
		return errors.NewAppError(errors.ErrExternalService, "Google Calendar request failed", err)
	}
}
