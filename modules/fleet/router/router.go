package router

import (
	"castle-admin/core/middleware"
	"castle-admin/modules/fleet/controller"

	"github.com/labstack/echo/v4"
)

type FleetRouter struct {
	controller *controller.FleetController
}

func NewFleetRouter(ctrl *controller.FleetController) *FleetRouter {
	return &FleetRouter{controller: ctrl}
}

// Register mounts the catalog under /admin/services and its /admin/fleet alias.
func (r *FleetRouter) Register(api *echo.Group, mw *middleware.Middleware) {
	for _, prefix := range []string{"/admin/services", "/admin/fleet"} {
		group := api.Group(prefix, mw.AdminMiddleware())
		group.GET("", r.controller.List)
		group.POST("", r.controller.Create)
		group.POST("/description", r.controller.GenerateDescription)
		group.GET("/:id", r.controller.Get)
		group.PUT("/:id", r.controller.Update)
		group.DELETE("/:id", r.controller.Delete)
		group.PUT("/:id/maintenance", r.controller.SetMaintenance)
		group.POST("/:id/image", r.controller.UploadImage)
	}
}
