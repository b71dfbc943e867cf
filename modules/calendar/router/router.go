package router

import (
	"castle-admin/core/middleware"
	"castle-admin/modules/calendar/controller"

	"github.com/labstack/echo/v4"
)

type CalendarRouter struct {
	controller *controller.CalendarController
}

func NewCalendarRouter(ctrl *controller.CalendarController) *CalendarRouter {
	return &CalendarRouter{controller: ctrl}
}

func (r *CalendarRouter) Register(api *echo.Group, mw *middleware.Middleware) {
	cal := api.Group("/admin/calendar", mw.AdminMiddleware())
	cal.GET("", r.controller.GetStatus)
	cal.GET("/events", r.controller.ListEvents)
	cal.POST("/events", r.controller.CreateEvent)
	cal.PUT("/events/:id", r.controller.UpdateEvent)
	cal.DELETE("/events/:id", r.controller.DeleteEvent)
}
