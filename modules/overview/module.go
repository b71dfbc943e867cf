package overview

import (
	"castle-admin/core/middleware"
	"castle-admin/modules/overview/controller"
	"castle-admin/modules/overview/router"
	"castle-admin/modules/overview/service"

	"github.com/labstack/echo/v4"
)

func Init(api *echo.Group, bookings service.BookingSource, castles service.CastleSource, calendar service.EventSource, mw *middleware.Middleware) *service.OverviewService {
	svc := service.NewOverviewService(bookings, castles, calendar)
	ctrl := controller.NewOverviewController(svc)
	router.NewOverviewRouter(ctrl).Register(api, mw)
	return svc
}
