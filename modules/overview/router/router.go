package router

import (
	"castle-admin/core/middleware"
	"castle-admin/modules/overview/controller"

	"github.com/labstack/echo/v4"
)

type OverviewRouter struct {
	controller *controller.OverviewController
}

func NewOverviewRouter(ctrl *controller.OverviewController) *OverviewRouter {
	return &OverviewRouter{controller: ctrl}
}

func (r *OverviewRouter) Register(api *echo.Group, mw *middleware.Middleware) {
	group := api.Group("/admin/bookings/overview", mw.AdminMiddleware())
	group.GET("", r.controller.Overview)
	group.GET("/grid", r.controller.Grid)
	group.GET("/availability", r.controller.Availability)
}
