package router

import (
	"castle-admin/core/middleware"
	"castle-admin/modules/business/controller"

	"github.com/labstack/echo/v4"
)

type BusinessRouter struct {
	controller *controller.BusinessController
}

func NewBusinessRouter(ctrl *controller.BusinessController) *BusinessRouter {
	return &BusinessRouter{controller: ctrl}
}

func (r *BusinessRouter) Register(api *echo.Group, mw *middleware.Middleware) {
	cfg := api.Group("/config")
	cfg.GET("", r.controller.GetConfig)
	cfg.GET("/structured-data", r.controller.GetStructuredData)
	cfg.POST("/breadcrumbs", r.controller.PostBreadcrumbs)
	cfg.GET("/presets/:industry", r.controller.GetWithPreset)

	admin := api.Group("/admin/config", mw.AdminMiddleware())
	admin.GET("/validate", r.controller.Validate)
}
