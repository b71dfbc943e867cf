package router

import (
	"castle-admin/core/middleware"
	"castle-admin/modules/booking/controller"

	"github.com/labstack/echo/v4"
)

type BookingRouter struct {
	controller *controller.BookingController
}

func NewBookingRouter(ctrl *controller.BookingController) *BookingRouter {
	return &BookingRouter{controller: ctrl}
}

func (r *BookingRouter) Register(api *echo.Group, mw *middleware.Middleware) {
	admin := api.Group("/admin", mw.AdminMiddleware())
	admin.POST("/add-test-booking", r.controller.AddTestBooking)
	admin.POST("/calendar/events/:id/import", r.controller.ImportCalendarEvent)

	bookings := admin.Group("/bookings")
	bookings.GET("", r.controller.List)
	bookings.POST("/sweep", r.controller.SweepStatuses)
	bookings.GET("/:id", r.controller.Get)
	bookings.PUT("/:id", r.controller.Update)
	bookings.DELETE("/:id", r.controller.Delete)
	bookings.POST("/:id/confirm", r.controller.Confirm)
}
