package booking

import (
	"castle-admin/core/broker"
	"castle-admin/core/database"
	"castle-admin/core/middleware"
	"castle-admin/modules/booking/controller"
	"castle-admin/modules/booking/repository"
	"castle-admin/modules/booking/router"
	"castle-admin/modules/booking/service"
	calservice "castle-admin/modules/calendar/service"

	"github.com/labstack/echo/v4"
)

type Deps struct {
	DB        database.Database
	Castles   service.CastleLookup
	Calendar  calservice.CalendarServiceInterface
	Notifier  service.ConfirmationNotifier
	Features  service.FeatureSource
	Publisher broker.Publisher
}

// Init mounts the booking routes and returns the service and its repository
// so the overview and the worker can reuse them.
func Init(api *echo.Group, deps Deps, mw *middleware.Middleware) (*service.BookingService, *repository.BookingRepository) {
	repo := repository.NewBookingRepository(deps.DB)
	svc := service.NewBookingService(repo, deps.Castles, deps.Calendar, deps.Notifier, deps.Features, deps.Publisher)
	ctrl := controller.NewBookingController(svc)
	router.NewBookingRouter(ctrl).Register(api, mw)
	return svc, repo
}
