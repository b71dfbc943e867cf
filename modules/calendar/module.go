package calendar

import (
	"context"
	"time"

	"castle-admin/core/cache"
	"castle-admin/core/config"
	"castle-admin/core/middleware"
	"castle-admin/modules/calendar/client"
	"castle-admin/modules/calendar/controller"
	"castle-admin/modules/calendar/router"
	"castle-admin/modules/calendar/service"

	"github.com/labstack/echo/v4"
)

// Init builds the calendar service, mounts its admin routes and returns it
// so the booking, overview and fleet modules can share it.
func Init(ctx context.Context, api *echo.Group, cfg config.GoogleAPIConfig, store cache.Cache, loc *time.Location, mw *middleware.Middleware) *service.CalendarService {
	svc := service.NewCalendarService(client.New(ctx, cfg), store, loc, cfg.CalendarID)
	ctrl := controller.NewCalendarController(svc)
	router.NewCalendarRouter(ctrl).Register(api, mw)
	return svc
}
