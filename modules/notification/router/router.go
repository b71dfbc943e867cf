package router

import (
	"castle-admin/core/middleware"
	"castle-admin/modules/notification/controller"

	"github.com/labstack/echo/v4"
)

type NotificationRouter struct {
	controller *controller.NotificationController
}

func NewNotificationRouter(controller *controller.NotificationController) *NotificationRouter {
	return &NotificationRouter{controller: controller}
}

func (r *NotificationRouter) Register(api *echo.Group, mw *middleware.Middleware) {
	group := api.Group("/admin/notifications", mw.AdminMiddleware())
	group.GET("", r.controller.List)
}
