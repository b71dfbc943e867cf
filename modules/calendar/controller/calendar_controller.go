package controller

import (
	"strconv"
	"time"

	"castle-admin/core/controller"
	"castle-admin/core/errors"
	"castle-admin/core/logger"
	"castle-admin/modules/calendar/dto"
	"castle-admin/modules/calendar/service"
	"castle-admin/modules/calendar/validator"

	"github.com/labstack/echo/v4"
)

type CalendarController struct {
	controller.BaseController
	service service.CalendarServiceInterface
}

func NewCalendarController(svc service.CalendarServiceInterface) *CalendarController {
	return &CalendarController{
		BaseController: controller.NewBaseController(),
		service:        svc,
	}
}

// GetStatus reports whether the business calendar is reachable.
// @Summary Calendar connection status
// @Tags Calendar
// @Security BearerAuth
// @Produce json
// @Success 200 {object} controller.SuccessResponse{data=dto.CalendarStatusResponse}
// @Router /admin/calendar [get]
func (c *CalendarController) GetStatus(ctx echo.Context) error {
	status := c.service.Status(ctx.Request().Context())
	return c.SuccessResponse(ctx, status, status.Message)
}

// @Summary List events for a month
// @Tags Calendar
// @Security BearerAuth
// @Produce json
// @Param year query int false "Year"
// @Param month query int false "Month 1-12"
// @Success 200 {object} controller.SuccessResponse{data=dto.EventsResponse}
// @Failure 502 {object} controller.ErrorResponse
// @Router /admin/calendar/events [get]
func (c *CalendarController) ListEvents(ctx echo.Context) error {
	year, month, appErr := YearMonth(ctx, c.service.Location())
	if appErr != nil {
		return c.BadRequest(appErr.Code, appErr.Message)
	}

	events, appErr := c.service.MonthEvents(ctx.Request().Context(), year, month)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, dto.EventsResponse{Year: year, Month: int(month), Events: events}, "events retrieved")
}

// @Summary Create a booking event
// @Tags Calendar
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body dto.BookingEventRequest true "Booking event"
// @Success 201 {object} controller.SuccessResponse{data=dto.GoogleCalendarEvent}
// @Failure 400 {object} controller.ErrorResponse
// @Router /admin/calendar/events [post]
func (c *CalendarController) CreateEvent(ctx echo.Context) error {
	var req dto.BookingEventRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "invalid request body")
	}
	if result := validator.ValidateBookingEventRequest(&req); result.HasError() {
		return c.BadRequest(errors.ErrInvalidInput, "validation failed", result.Errors)
	}

	created, appErr := c.service.CreateEvent(ctx.Request().Context(), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.CreatedResponse(ctx, created, "Calendar event created")
}

// @Summary Update a booking event
// @Tags Calendar
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Event id"
// @Param body body dto.BookingEventRequest true "Booking event"
// @Success 200 {object} controller.SuccessResponse{data=dto.GoogleCalendarEvent}
// @Failure 404 {object} controller.ErrorResponse
// @Router /admin/calendar/events/{id} [put]
func (c *CalendarController) UpdateEvent(ctx echo.Context) error {
	id := ctx.Param("id")
	var req dto.BookingEventRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "invalid request body")
	}
	if result := validator.ValidateBookingEventRequest(&req); result.HasError() {
		return c.BadRequest(errors.ErrInvalidInput, "validation failed", result.Errors)
	}

	updated, appErr := c.service.UpdateEvent(ctx.Request().Context(), id, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, updated, "Calendar event updated")
}

// @Summary Delete a calendar event
// @Tags Calendar
// @Security BearerAuth
// @Param id path string true "Event id"
// @Success 200 {object} controller.SuccessResponse
// @Failure 404 {object} controller.ErrorResponse
// @Router /admin/calendar/events/{id} [delete]
func (c *CalendarController) DeleteEvent(ctx echo.Context) error {
	id := ctx.Param("id")
	if appErr := c.service.DeleteEvent(ctx.Request().Context(), id); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	logger.Info("CalendarController:DeleteEvent:Success", "event_id", id)
	return c.SuccessResponse(ctx, nil, "Calendar event deleted")
}

// YearMonth reads ?year=&month=, defaulting to the current month in loc.
func YearMonth(ctx echo.Context, loc *time.Location) (int, time.Month, *errors.AppError) {
	current := time.Now().In(loc)
	year, month := current.Year(), current.Month()

	if raw := ctx.QueryParam("year"); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil || y < 1970 || y > 9999 {
			return 0, 0, errors.NewAppError(errors.ErrInvalidInput, "year must be a valid year", err)
		}
		year = y
	}
	if raw := ctx.QueryParam("month"); raw != "" {
		m, err := strconv.Atoi(raw)
		if err != nil || m < 1 || m > 12 {
			return 0, 0, errors.NewAppError(errors.ErrInvalidInput, "month must be between 1 and 12", err)
		}
		month = time.Month(m)
	}
	return year, month, nil
}
