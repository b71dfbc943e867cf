package service

import (
	"context"
	"time"

	"castle-admin/core/constants"
	"castle-admin/core/errors"
	"castle-admin/core/logger"
	bookingentity "castle-admin/modules/booking/entity"
	caldto "castle-admin/modules/calendar/dto"
	fleetentity "castle-admin/modules/fleet/entity"
	"castle-admin/modules/overview/dto"

	"github.com/jinzhu/now"
	"github.com/sourcegraph/conc/pool"
)

type BookingSource interface {
	ListOverlapping(ctx context.Context, from, to time.Time) ([]bookingentity.Booking, error)
}

type CastleSource interface {
	ListAll(ctx context.Context) ([]fleetentity.Service, error)
}

type EventSource interface {
	Connected() bool
	Location() *time.Location
	MonthEvents(ctx context.Context, year int, month time.Month) ([]caldto.GoogleCalendarEvent, *errors.AppError)
}

type OverviewServiceInterface interface {
	Location() *time.Location
	Overview(ctx context.Context, year int, month time.Month, filter Filter) (*dto.OverviewResponse, *errors.AppError)
	Grid(ctx context.Context, year int, month time.Month) (*dto.GridResponse, *errors.AppError)
	Availability(ctx context.Context, year int, month time.Month) (*dto.AvailabilityResponse, *errors.AppError)
}

// monthView is one month of reconciled bookings plus what produced it.
type monthView struct {
	Result
	castles []fleetentity.Service
	calErr  string
}

type OverviewService struct {
	bookings BookingSource
	castles  CastleSource
	calendar EventSource
	now      func() time.Time
}

func NewOverviewService(bookings BookingSource, castles CastleSource, calendar EventSource) *OverviewService {
	return &OverviewService{bookings: bookings, castles: castles, calendar: calendar, now: time.Now}
}

func (s *OverviewService) Location() *time.Location {
	return s.calendar.Location()
}

// Overview returns the merged bookings of one month. A calendar failure
// degrades to database rows only and is reported in CalendarError.
func (s *OverviewService) Overview(ctx context.Context, year int, month time.Month, filter Filter) (*dto.OverviewResponse, *errors.AppError) {
	m, appErr := s.merge(ctx, year, month, filter)
	if appErr != nil {
		return nil, appErr
	}
	return &dto.OverviewResponse{
		Year:              year,
		Month:             int(month),
		Bookings:          m.Bookings,
		Counts:            m.Counts,
		Total:             len(m.Bookings),
		CalendarConnected: s.calendar.Connected(),
		CalendarError:     m.calErr,
	}, nil
}

func (s *OverviewService) Grid(ctx context.Context, year int, month time.Month) (*dto.GridResponse, *errors.AppError) {
	m, appErr := s.merge(ctx, year, month, Filter{})
	if appErr != nil {
		return nil, appErr
	}
	return &dto.GridResponse{
		Year:          year,
		Month:         int(month),
		Weeks:         MonthGrid(year, month, m.Bookings, s.now().In(s.Location())),
		CalendarError: m.calErr,
	}, nil
}

func (s *OverviewService) Availability(ctx context.Context, year int, month time.Month) (*dto.AvailabilityResponse, *errors.AppError) {
	m, appErr := s.merge(ctx, year, month, Filter{})
	if appErr != nil {
		return nil, appErr
	}
	return &dto.AvailabilityResponse{
		Year:          year,
		Month:         int(month),
		Castles:       Availability(year, month, m.castles, m.Bookings),
		CalendarError: m.calErr,
	}, nil
}

func (s *OverviewService) merge(ctx context.Context, year int, month time.Month, filter Filter) (*monthView, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.ExternalRequestTimeout)
	defer cancel()

	loc := s.Location()
	monthStart := now.With(time.Date(year, month, 1, 0, 0, 0, 0, loc)).BeginningOfMonth()
	monthEnd := monthStart.AddDate(0, 1, 0)

	var (
		src    Sources
		calErr string
	)
	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		rows, err := s.bookings.ListOverlapping(ctx, monthStart, monthEnd)
		src.Bookings = rows
		return err
	})
	p.Go(func(ctx context.Context) error {
		rows, err := s.castles.ListAll(ctx)
		src.Castles = rows
		return err
	})
	if s.calendar.Connected() {
		p.Go(func(ctx context.Context) error {
			events, appErr := s.calendar.MonthEvents(ctx, year, month)
			if appErr != nil {
				logger.Warn("OverviewService:Merge:CalendarError", "year", year, "month", int(month), "error", appErr.Message)
				calErr = appErr.Message
				return nil
			}
			src.Events = events
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		logger.Error("OverviewService:Merge:Error", "year", year, "month", int(month), "error", err)
		return nil, errors.NewAppError(errors.ErrGetFailed, "get bookings failed", err)
	}

	result := Reconcile(src, filter, s.now(), loc)
	logger.Info("OverviewService:Merge:Done",
		"year", year,
		"month", int(month),
		"database", len(src.Bookings),
		"events", len(src.Events),
		"merged", len(result.Bookings),
	)
	return &monthView{Result: result, castles: src.Castles, calErr: calErr}, nil
}
