package controller

import (
	"castle-admin/core/controller"
	"castle-admin/core/errors"
	"castle-admin/core/logger"
	"castle-admin/core/middleware"
	"castle-admin/core/params"
	"castle-admin/core/utils"
	"castle-admin/modules/booking/dto"
	"castle-admin/modules/booking/service"
	"castle-admin/modules/booking/validator"

	"github.com/labstack/echo/v4"
)

type BookingController struct {
	controller.BaseController
	service service.BookingServiceInterface
}

func NewBookingController(svc service.BookingServiceInterface) *BookingController {
	return &BookingController{
		BaseController: controller.NewBaseController(),
		service:        svc,
	}
}

// @Summary List database bookings
// @Tags Bookings
// @Security BearerAuth
// @Produce json
// @Param status query string false "all or one status"
// @Param search query string false "Name, email, castle or reference contains"
// @Param page_number query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} controller.SuccessResponse{data=dto.PaginatedBookingResponse}
// @Failure 400 {object} controller.ErrorResponse
// @Router /admin/bookings [get]
func (c *BookingController) List(ctx echo.Context) error {
	q := params.NewQueryParams(ctx)
	page, appErr := c.service.List(ctx.Request().Context(), *q)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, page, "bookings retrieved")
}

// @Summary Get a booking
// @Tags Bookings
// @Security BearerAuth
// @Produce json
// @Param id path int true "Booking id"
// @Success 200 {object} controller.SuccessResponse{data=dto.BookingResponse}
// @Failure 404 {object} controller.ErrorResponse
// @Router /admin/bookings/{id} [get]
func (c *BookingController) Get(ctx echo.Context) error {
	id, err := utils.ToInt64(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "invalid booking id")
	}
	booking, appErr := c.service.Get(ctx.Request().Context(), id)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, booking, "booking retrieved")
}

// Update is a status change when the body carries only status, and a full
// edit otherwise.
// @Summary Update a booking
// @Tags Bookings
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Booking id"
// @Param body body dto.UpdateBookingRequest true "Status or fields"
// @Success 200 {object} controller.SuccessResponse{data=dto.BookingResponse}
// @Failure 422 {object} controller.ErrorResponse
// @Router /admin/bookings/{id} [put]
func (c *BookingController) Update(ctx echo.Context) error {
	id, err := utils.ToInt64(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "invalid booking id")
	}
	var req dto.UpdateBookingRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "invalid request body")
	}
	if result := validator.ValidateUpdateBookingRequest(&req); result.HasError() {
		return c.BadRequest(errors.ErrInvalidInput, "validation failed", result.Errors)
	}

	booking, msg, appErr := c.service.Update(ctx.Request().Context(), id, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, booking, msg)
}

// @Summary Delete a booking
// @Tags Bookings
// @Security BearerAuth
// @Param id path int true "Booking id"
// @Success 200 {object} controller.SuccessResponse
// @Failure 404 {object} controller.ErrorResponse
// @Router /admin/bookings/{id} [delete]
func (c *BookingController) Delete(ctx echo.Context) error {
	id, err := utils.ToInt64(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "invalid booking id")
	}
	if appErr := c.service.Delete(ctx.Request().Context(), id); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "Booking deleted successfully")
}

// @Summary Confirm a pending booking
// @Tags Bookings
// @Security BearerAuth
// @Produce json
// @Param id path int true "Booking id"
// @Success 200 {object} controller.SuccessResponse{data=dto.ConfirmBookingResponse}
// @Failure 422 {object} controller.ErrorResponse
// @Failure 502 {object} controller.ErrorResponse
// @Router /admin/bookings/{id}/confirm [post]
func (c *BookingController) Confirm(ctx echo.Context) error {
	id, err := utils.ToInt64(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "invalid booking id")
	}
	resp, msg, appErr := c.service.Confirm(ctx.Request().Context(), id)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	logger.Info("BookingController:Confirm:Success", "id", id, "admin", middleware.AdminEmail(ctx))
	return c.SuccessResponse(ctx, resp, msg)
}

// @Summary Insert the sample booking
// @Tags Bookings
// @Security BearerAuth
// @Produce json
// @Success 200 {object} controller.SuccessResponse{data=dto.AddTestBookingResponse}
// @Router /admin/add-test-booking [post]
func (c *BookingController) AddTestBooking(ctx echo.Context) error {
	resp, appErr := c.service.AddTestBooking(ctx.Request().Context())
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, resp, resp.Message)
}

// @Summary Import a calendar event as a booking
// @Tags Bookings
// @Security BearerAuth
// @Produce json
// @Param id path string true "Calendar event id"
// @Success 201 {object} controller.SuccessResponse{data=dto.BookingResponse}
// @Failure 409 {object} controller.ErrorResponse
// @Router /admin/calendar/events/{id}/import [post]
func (c *BookingController) ImportCalendarEvent(ctx echo.Context) error {
	booking, appErr := c.service.ImportCalendarEvent(ctx.Request().Context(), ctx.Param("id"))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.CreatedResponse(ctx, booking, "Calendar event imported")
}

// @Summary Persist derived statuses now
// @Tags Bookings
// @Security BearerAuth
// @Produce json
// @Success 200 {object} controller.SuccessResponse{data=dto.SweepResult}
// @Router /admin/bookings/sweep [post]
func (c *BookingController) SweepStatuses(ctx echo.Context) error {
	result, appErr := c.service.SweepStatuses(ctx.Request().Context())
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "booking statuses updated")
}
