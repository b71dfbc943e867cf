package controller

import (
	"castle-admin/core/controller"
	"castle-admin/core/params"
	"castle-admin/modules/notification/service"

	"github.com/labstack/echo/v4"
)

type NotificationController struct {
	controller.BaseController
	service service.NotificationServiceInterface
}

func NewNotificationController(svc service.NotificationServiceInterface) *NotificationController {
	return &NotificationController{
		BaseController: controller.NewBaseController(),
		service:        svc,
	}
}

// @Summary List outbound notifications
// @Tags Notifications
// @Security BearerAuth
// @Produce json
// @Param status query string false "queued, sent or failed"
// @Param page_number query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} controller.SuccessResponse{data=dto.PaginatedNotificationResponse}
// @Router /admin/notifications [get]
func (c *NotificationController) List(ctx echo.Context) error {
	q := params.NewQueryParams(ctx)
	page, appErr := c.service.List(ctx.Request().Context(), *q)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, page, "notifications retrieved")
}
