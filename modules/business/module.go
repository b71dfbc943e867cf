package business

import (
	"castle-admin/core/middleware"
	"castle-admin/modules/business/controller"
	"castle-admin/modules/business/router"
	"castle-admin/modules/business/service"

	"github.com/labstack/echo/v4"
)

// Init mounts the configuration routes on an already-loaded service.
func Init(api *echo.Group, svc *service.BusinessService, mw *middleware.Middleware) {
	ctrl := controller.NewBusinessController(svc)
	router.NewBusinessRouter(ctrl).Register(api, mw)
}
