package fleet

import (
	"castle-admin/core/middleware"
	"castle-admin/core/storage"
	"castle-admin/modules/fleet/controller"
	"castle-admin/modules/fleet/repository"
	"castle-admin/modules/fleet/router"
	"castle-admin/modules/fleet/service"

	"github.com/labstack/echo/v4"
)

func Init(api *echo.Group, repo repository.ServiceRepositoryInterface, calendar service.MaintenanceCalendar, uploader storage.Uploader, describer service.Describer, mw *middleware.Middleware) *service.FleetService {
	svc := service.NewFleetService(repo, calendar, uploader, describer)
	ctrl := controller.NewFleetController(svc)
	router.NewFleetRouter(ctrl).Register(api, mw)
	return svc
}
