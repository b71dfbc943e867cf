package controller

import (
	"strings"

	"castle-admin/core/controller"
	"castle-admin/core/errors"
	bookingentity "castle-admin/modules/booking/entity"
	calcontroller "castle-admin/modules/calendar/controller"
	"castle-admin/modules/overview/service"

	"github.com/labstack/echo/v4"
)

type OverviewController struct {
	controller.BaseController
	service service.OverviewServiceInterface
}

func NewOverviewController(svc service.OverviewServiceInterface) *OverviewController {
	return &OverviewController{
		BaseController: controller.NewBaseController(),
		service:        svc,
	}
}

// @Summary Merged database and calendar bookings for a month
// @Tags Overview
// @Security BearerAuth
// @Produce json
// @Param year query int false "Year"
// @Param month query int false "Month 1-12"
// @Param status query string false "all or one status"
// @Param search query string false "Name, email, castle or reference contains"
// @Success 200 {object} controller.SuccessResponse{data=dto.OverviewResponse}
// @Failure 400 {object} controller.ErrorResponse
// @Router /admin/bookings/overview [get]
func (c *OverviewController) Overview(ctx echo.Context) error {
	year, month, appErr := calcontroller.YearMonth(ctx, c.service.Location())
	if appErr != nil {
		return c.BadRequest(appErr.Code, appErr.Message)
	}
	status := strings.ToLower(strings.TrimSpace(ctx.QueryParam("status")))
	if status != "" && status != "all" {
		if _, ok := bookingentity.ParseStatus(status); !ok {
			return c.BadRequest(errors.ErrInvalidInput, "unknown status filter")
		}
	}

	resp, appErr := c.service.Overview(ctx.Request().Context(), year, month, service.Filter{
		Status: status,
		Search: ctx.QueryParam("search"),
	})
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, resp, "bookings retrieved")
}

// @Summary Month grid of merged bookings
// @Tags Overview
// @Security BearerAuth
// @Produce json
// @Param year query int false "Year"
// @Param month query int false "Month 1-12"
// @Success 200 {object} controller.SuccessResponse{data=dto.GridResponse}
// @Router /admin/bookings/overview/grid [get]
func (c *OverviewController) Grid(ctx echo.Context) error {
	year, month, appErr := calcontroller.YearMonth(ctx, c.service.Location())
	if appErr != nil {
		return c.BadRequest(appErr.Code, appErr.Message)
	}
	resp, appErr := c.service.Grid(ctx.Request().Context(), year, month)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, resp, "calendar grid retrieved")
}

// @Summary Free and busy days per castle for a month
// @Tags Overview
// @Security BearerAuth
// @Produce json
// @Param year query int false "Year"
// @Param month query int false "Month 1-12"
// @Success 200 {object} controller.SuccessResponse{data=dto.AvailabilityResponse}
// @Router /admin/bookings/overview/availability [get]
func (c *OverviewController) Availability(ctx echo.Context) error {
	year, month, appErr := calcontroller.YearMonth(ctx, c.service.Location())
	if appErr != nil {
		return c.BadRequest(appErr.Code, appErr.Message)
	}
	resp, appErr := c.service.Availability(ctx.Request().Context(), year, month)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, resp, "availability retrieved")
}
