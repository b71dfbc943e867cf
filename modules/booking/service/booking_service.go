package service

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"castle-admin/core/broker"
	"castle-admin/core/constants"
	"castle-admin/core/errors"
	"castle-admin/core/logger"
	"castle-admin/core/params"
	"castle-admin/core/utils"
	"castle-admin/modules/booking/dto"
	"castle-admin/modules/booking/entity"
	"castle-admin/modules/booking/mapper"
	"castle-admin/modules/booking/pricing"
	"castle-admin/modules/booking/repository"
	businessentity "castle-admin/modules/business/entity"
	caldto "castle-admin/modules/calendar/dto"
	calservice "castle-admin/modules/calendar/service"
	fleetentity "castle-admin/modules/fleet/entity"
	notifdto "castle-admin/modules/notification/dto"

	"github.com/hibiken/asynq"
)

const (
	dateLayout              = "2006-01-02"
	msgConfirmedWithEvent   = "Booking confirmed and added to calendar"
	msgConfirmed            = "Booking confirmed"
	msgTestBookingExists    = "Booking already exists with this reference"
	msgTestBookingCreated   = "Test booking added successfully"
	msgBookingNotFound      = "booking not found"
	msgOnlyPendingConfirmed = "only pending bookings can be confirmed"
	msgBookingExpired       = "booking date has passed"
)

// CastleLookup is the slice of the fleet catalog bookings need for pricing.
type CastleLookup interface {
	GetByID(ctx context.Context, id int64) (*fleetentity.Service, error)
	ListAll(ctx context.Context) ([]fleetentity.Service, error)
}

type ConfirmationNotifier interface {
	EnqueueBookingConfirmation(ctx context.Context, msg *notifdto.BookingConfirmation) *errors.AppError
}

type FeatureSource interface {
	Features() businessentity.FeaturesConfig
}

type BookingServiceInterface interface {
	List(ctx context.Context, q params.QueryParams) (*dto.PaginatedBookingResponse, *errors.AppError)
	Get(ctx context.Context, id int64) (*dto.BookingResponse, *errors.AppError)
	Update(ctx context.Context, id int64, req *dto.UpdateBookingRequest) (*dto.BookingResponse, string, *errors.AppError)
	Delete(ctx context.Context, id int64) *errors.AppError
	Confirm(ctx context.Context, id int64) (*dto.ConfirmBookingResponse, string, *errors.AppError)
	AddTestBooking(ctx context.Context) (*dto.AddTestBookingResponse, *errors.AppError)
	ImportCalendarEvent(ctx context.Context, eventID string) (*dto.BookingResponse, *errors.AppError)
	SweepStatuses(ctx context.Context) (*dto.SweepResult, *errors.AppError)
}

type BookingService struct {
	repo      repository.BookingRepositoryInterface
	castles   CastleLookup
	calendar  calservice.CalendarServiceInterface
	notifier  ConfirmationNotifier
	features  FeatureSource
	publisher broker.Publisher
	loc       *time.Location
	now       func() time.Time
}

func NewBookingService(
	repo repository.BookingRepositoryInterface,
	castles CastleLookup,
	calendar calservice.CalendarServiceInterface,
	notifier ConfirmationNotifier,
	features FeatureSource,
	publisher broker.Publisher,
) *BookingService {
	if publisher == nil {
		publisher = broker.LogPublisher{}
	}
	return &BookingService{
		repo:      repo,
		castles:   castles,
		calendar:  calendar,
		notifier:  notifier,
		features:  features,
		publisher: publisher,
		loc:       calendar.Location(),
		now:       time.Now,
	}
}

func (s *BookingService) today() time.Time {
	return s.now().In(s.loc)
}

func (s *BookingService) List(ctx context.Context, q params.QueryParams) (*dto.PaginatedBookingResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if q.Status != "" && q.Status != "all" {
		if _, ok := entity.ParseStatus(q.Status); !ok {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "unknown status filter", nil)
		}
	}

	logger.Info("BookingService:List:Request", "status", q.Status, "search", q.Search, "page_number", q.PageNumber, "page_size", q.PageSize)
	page, err := s.repo.List(ctx, entity.BookingFilter{
		Status:     q.Status,
		Search:     q.Search,
		PageNumber: q.PageNumber,
		PageSize:   q.PageSize,
		Today:      s.today(),
	})
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get bookings failed", err)
	}
	logger.Info("BookingService:List:Result", "total_items", page.TotalItems)
	return mapper.ToPaginatedBookingResponse(page, s.today()), nil
}

func (s *BookingService) Get(ctx context.Context, id int64) (*dto.BookingResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	b, appErr := s.load(ctx, id)
	if appErr != nil {
		return nil, appErr
	}
	return mapper.ToBookingResponse(b, s.today()), nil
}

func (s *BookingService) load(ctx context.Context, id int64) (*entity.Booking, *errors.AppError) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get booking failed", err)
	}
	if b == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, msgBookingNotFound, nil)
	}
	return b, nil
}

// Update applies either a status change or a full edit.
func (s *BookingService) Update(ctx context.Context, id int64, req *dto.UpdateBookingRequest) (*dto.BookingResponse, string, *errors.AppError) {
	if req.StatusOnly() {
		return s.changeStatus(ctx, id, *req.Status)
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	b, appErr := s.load(ctx, id)
	if appErr != nil {
		return nil, "", appErr
	}
	if appErr := s.applyEdit(ctx, b, req); appErr != nil {
		return nil, "", appErr
	}

	if err := s.repo.Update(ctx, b); err != nil {
		if stderrors.Is(err, repository.ErrBookingNotFound) {
			return nil, "", errors.NewAppError(errors.ErrNotFound, msgBookingNotFound, err)
		}
		return nil, "", errors.NewAppError(errors.ErrUpdateFailed, "update booking failed", err)
	}
	logger.Info("BookingService:Update:Success", "id", id)

	if b.Status == entity.StatusConfirmed && b.CalendarEventID != nil && s.calendar.Connected() {
		if _, appErr := s.calendar.UpdateEvent(ctx, *b.CalendarEventID, eventRequest(b)); appErr != nil {
			logger.Warn("BookingService:Update:CalendarSyncFailed", "id", id, "event_id", *b.CalendarEventID, "error", appErr)
		}
	}
	return mapper.ToBookingResponse(b, s.today()), "Booking updated successfully", nil
}

func (s *BookingService) applyEdit(ctx context.Context, b *entity.Booking, req *dto.UpdateBookingRequest) *errors.AppError {
	repriced := false
	setString := func(dst *string, v *string) {
		if v != nil {
			*dst = strings.TrimSpace(*v)
		}
	}
	setString(&b.CustomerName, req.CustomerName)
	setString(&b.CustomerEmail, req.CustomerEmail)
	setString(&b.CustomerPhone, req.CustomerPhone)
	setString(&b.CustomerAddress, req.CustomerAddress)
	setString(&b.Notes, req.Notes)

	if req.CastleID != nil {
		castle, err := s.castles.GetByID(ctx, *req.CastleID)
		if err != nil {
			return errors.NewAppError(errors.ErrGetFailed, "get castle failed", err)
		}
		if castle == nil {
			return errors.NewAppError(errors.ErrInvalidInput, "castle not found", nil)
		}
		b.CastleID = &castle.ID
		b.CastleName = castle.Name
		repriced = true
	}
	setString(&b.CastleName, req.CastleName)

	if req.Date != nil {
		d, err := time.ParseInLocation(dateLayout, *req.Date, s.loc)
		if err != nil {
			return errors.NewAppError(errors.ErrInvalidInput, "date must be YYYY-MM-DD", err)
		}
		b.Date = d
		repriced = true
	}
	if req.EndDate != nil {
		if *req.EndDate == "" {
			b.EndDate = nil
		} else {
			d, err := time.ParseInLocation(dateLayout, *req.EndDate, s.loc)
			if err != nil {
				return errors.NewAppError(errors.ErrInvalidInput, "endDate must be YYYY-MM-DD", err)
			}
			b.EndDate = &d
		}
		repriced = true
	}
	if b.EndDate != nil && !b.EndDate.After(b.Date) {
		b.EndDate = nil
	}
	if req.Overnight != nil {
		b.Overnight = *req.Overnight
		repriced = true
	}
	if req.AdditionalCosts != nil {
		b.AdditionalCosts = *req.AdditionalCosts
		repriced = true
	}

	switch {
	case req.TotalPrice != nil:
		b.TotalPrice = *req.TotalPrice
		b.Deposit = pricing.Deposit(b.TotalPrice)
	case repriced:
		quote, appErr := s.quote(ctx, b)
		if appErr != nil {
			return appErr
		}
		b.TotalPrice = quote.Total
		b.Deposit = quote.Deposit
	}
	if req.Deposit != nil {
		b.Deposit = *req.Deposit
	}
	return nil
}

func (s *BookingService) quote(ctx context.Context, b *entity.Booking) (*pricing.Quote, *errors.AppError) {
	if b.CastleID == nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "castle is required to price a booking", nil)
	}
	castle, err := s.castles.GetByID(ctx, *b.CastleID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get castle failed", err)
	}
	if castle == nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "castle not found", nil)
	}
	q := pricing.Calculate(castle.Price, b.Date, b.EndDate, b.Overnight, b.AdditionalCosts)
	return &q, nil
}

func (s *BookingService) changeStatus(ctx context.Context, id int64, raw string) (*dto.BookingResponse, string, *errors.AppError) {
	to, ok := entity.ParseStatus(raw)
	if !ok {
		return nil, "", errors.NewAppError(errors.ErrInvalidInput, "unknown status", nil)
	}
	if to == entity.StatusConfirmed {
		b, appErr := s.load(ctx, id)
		if appErr != nil {
			return nil, "", appErr
		}
		if b.Status == entity.StatusPending {
			resp, msg, appErr := s.Confirm(ctx, id)
			if appErr != nil {
				return nil, "", appErr
			}
			return resp.Booking, msg, nil
		}
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	b, appErr := s.load(ctx, id)
	if appErr != nil {
		return nil, "", appErr
	}
	// Transitions start from the displayed status. A derived target is
	// persisted even though it already shows.
	current := entity.DeriveStatus(b.Status, b.LastDay(), s.today())
	changed, err := entity.CheckTransition(current, to)
	if err != nil {
		return nil, "", errors.NewAppError(errors.ErrInvalidTransition, err.Error(), err)
	}
	if !changed && current == b.Status {
		return mapper.ToBookingResponse(b, s.today()), "Booking status unchanged", nil
	}

	if err := s.repo.UpdateStatus(ctx, id, b.Status, to); err != nil {
		if stderrors.Is(err, repository.ErrStatusChanged) {
			return nil, "", errors.NewAppError(errors.ErrConflict, "booking was modified by another request", err)
		}
		return nil, "", errors.NewAppError(errors.ErrUpdateFailed, "update booking status failed", err)
	}
	logger.Info("BookingService:ChangeStatus:Success", "id", id, "from", b.Status, "to", to)
	b.Status = to

	if to == entity.StatusCancelled {
		s.removeEvent(ctx, b)
	}
	s.publish(ctx, statusEvent(to), b)
	return mapper.ToBookingResponse(b, s.today()), "Booking status updated", nil
}

// Confirm moves a pending booking to confirmed, placing it on the calendar
// and queuing the customer email when those features are on.
func (s *BookingService) Confirm(ctx context.Context, id int64) (*dto.ConfirmBookingResponse, string, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.ExternalRequestTimeout)
	defer cancel()

	b, appErr := s.load(ctx, id)
	if appErr != nil {
		return nil, "", appErr
	}
	if b.Status != entity.StatusPending {
		return nil, "", errors.NewAppError(errors.ErrInvalidTransition, msgOnlyPendingConfirmed, nil)
	}
	if entity.DeriveStatus(b.Status, b.LastDay(), s.today()) != b.Status {
		return nil, "", errors.NewAppError(errors.ErrInvalidTransition, msgBookingExpired, nil)
	}

	features := s.features.Features()
	resp := &dto.ConfirmBookingResponse{}
	var eventID *string
	if features.CalendarIntegration && s.calendar.Connected() {
		ev, appErr := s.calendar.CreateDatabaseEvent(ctx, b.ID, eventRequest(b))
		if appErr != nil {
			logger.Error("BookingService:Confirm:CalendarError", "id", id, "error", appErr)
			return nil, "", appErr
		}
		eventID = &ev.ID
		resp.CalendarEventID = ev.ID
		resp.CalendarLink = ev.HTMLLink
	}

	if err := s.repo.Confirm(ctx, b.ID, eventID); err != nil {
		if stderrors.Is(err, repository.ErrStatusChanged) {
			return nil, "", errors.NewAppError(errors.ErrConflict, "booking was modified by another request", err)
		}
		return nil, "", errors.NewAppError(errors.ErrUpdateFailed, "confirm booking failed", err)
	}
	b.Status = entity.StatusConfirmed
	if eventID != nil {
		b.CalendarEventID = eventID
	}
	logger.Info("BookingService:Confirm:Success", "id", id, "event_id", utils.DerefString(eventID))

	if features.EmailNotifications && b.CustomerEmail != "" && s.notifier != nil {
		if appErr := s.notifier.EnqueueBookingConfirmation(ctx, confirmation(b)); appErr != nil {
			logger.Warn("BookingService:Confirm:NotifyFailed", "id", id, "error", appErr)
		}
	}
	s.publish(ctx, constants.EventBookingConfirmed, b)

	resp.Booking = mapper.ToBookingResponse(b, s.today())
	if eventID != nil {
		return resp, msgConfirmedWithEvent, nil
	}
	return resp, msgConfirmed, nil
}

func (s *BookingService) Delete(ctx context.Context, id int64) *errors.AppError {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	b, appErr := s.load(ctx, id)
	if appErr != nil {
		return appErr
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if stderrors.Is(err, repository.ErrBookingNotFound) {
			return errors.NewAppError(errors.ErrNotFound, msgBookingNotFound, err)
		}
		return errors.NewAppError(errors.ErrDeleteFailed, "delete booking failed", err)
	}
	logger.Info("BookingService:Delete:Success", "id", id, "booking_ref", b.BookingRef)

	s.removeEvent(ctx, b)
	s.publish(ctx, constants.EventBookingDeleted, b)
	return nil
}

func (s *BookingService) removeEvent(ctx context.Context, b *entity.Booking) {
	if b.CalendarEventID == nil || !s.calendar.Connected() {
		return
	}
	if appErr := s.calendar.DeleteEvent(ctx, *b.CalendarEventID); appErr != nil && appErr.Code != errors.ErrNotFound {
		logger.Warn("BookingService:RemoveEvent:Failed", "id", b.ID, "event_id", *b.CalendarEventID, "error", appErr)
	}
}

func (s *BookingService) AddTestBooking(ctx context.Context) (*dto.AddTestBookingResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	existing, err := s.repo.GetByRef(ctx, constants.TestBookingRef)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get booking failed", err)
	}
	if existing != nil {
		return &dto.AddTestBookingResponse{Success: false, Message: msgTestBookingExists, BookingID: existing.ID}, nil
	}

	castleID := int64(1)
	b := &entity.Booking{
		BookingRef:      constants.TestBookingRef,
		CustomerName:    "John Sample",
		CustomerEmail:   "customer@example.com",
		CustomerPhone:   "+1 (555) 123-4567",
		CustomerAddress: "123 Sample Street, Example City, EX 12345",
		CastleID:        &castleID,
		CastleName:      "Premium Service",
		Date:            time.Date(2025, 7, 28, 0, 0, 0, 0, s.loc),
		PaymentMethod:   "credit_card",
		TotalPrice:      150,
		Deposit:         50,
		Status:          entity.StatusConfirmed,
		Notes:           "Sample booking for testing purposes",
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "Failed to add test booking", err)
	}
	logger.Info("BookingService:AddTestBooking:Success", "booking_ref", b.BookingRef, "id", b.ID)
	return &dto.AddTestBookingResponse{
		Success:   true,
		Message:   msgTestBookingCreated,
		BookingID: b.ID,
		Booking:   mapper.ToBookingResponse(b, s.today()),
	}, nil
}

func statusEvent(st entity.Status) string {
	switch st {
	case entity.StatusConfirmed:
		return constants.EventBookingConfirmed
	case entity.StatusCancelled:
		return constants.EventBookingCancelled
	case entity.StatusCompleted:
		return constants.EventBookingCompleted
	case entity.StatusExpired:
		return constants.EventBookingExpired
	default:
		return "booking." + string(st)
	}
}

func (s *BookingService) publish(ctx context.Context, key string, b *entity.Booking) {
	if err := s.publisher.Publish(ctx, key, mapper.ToBookingResponse(b, s.today())); err != nil {
		logger.Warn("BookingService:Publish:Error", "event", key, "id", b.ID, "error", err)
	}
}

// eventRequest describes a booking the way calendar events are written.
func eventRequest(b *entity.Booking) *caldto.BookingEventRequest {
	notes := b.Notes
	if b.Overnight && !strings.Contains(notes, "(Overnight)") {
		notes = strings.TrimSpace(notes + " (Overnight)")
	}
	req := &caldto.BookingEventRequest{
		CustomerName:     b.CustomerName,
		ContactDetails:   caldto.ContactDetails{Phone: b.CustomerPhone, Email: b.CustomerEmail},
		Location:         b.CustomerAddress,
		Notes:            notes,
		Duration:         caldto.Duration{Start: b.Date.Format(dateLayout), End: b.LastDay().Format(dateLayout)},
		Cost:             b.TotalPrice,
		BouncyCastleType: b.CastleName,
		BookingRef:       b.BookingRef,
	}
	return req
}

func confirmation(b *entity.Booking) *notifdto.BookingConfirmation {
	msg := &notifdto.BookingConfirmation{
		BookingID:     b.ID,
		BookingRef:    b.BookingRef,
		CustomerName:  b.CustomerName,
		CustomerEmail: b.CustomerEmail,
		CastleName:    b.CastleName,
		Date:          b.Date.Format(dateLayout),
		TotalPrice:    b.TotalPrice,
		Deposit:       b.Deposit,
	}
	if b.EndDate != nil {
		msg.EndDate = b.EndDate.Format(dateLayout)
	}
	return msg
}

// HandleSweepTask is the asynq handler for the periodic status sweep.
func (s *BookingService) HandleSweepTask(ctx context.Context, _ *asynq.Task) error {
	result, appErr := s.SweepStatuses(ctx)
	if appErr != nil {
		return appErr
	}
	logger.Info("BookingService:HandleSweepTask:Done", "expired", result.Expired, "completed", result.Completed)
	return nil
}
