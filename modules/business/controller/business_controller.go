package controller

import (
	"net/http"

	"castle-admin/core/controller"
	"castle-admin/core/errors"
	"castle-admin/core/logger"
	"castle-admin/core/validator"
	"castle-admin/modules/business/dto"
	"castle-admin/modules/business/service"

	"github.com/labstack/echo/v4"
)

type BusinessController struct {
	service *service.BusinessService
	controller.BaseController
}

func NewBusinessController(svc *service.BusinessService) *BusinessController {
	return &BusinessController{
		service:        svc,
		BaseController: controller.NewBaseController(),
	}
}

// GetConfig returns the business configuration as-is for the site frontend.
// @Summary Business configuration
// @Tags Config
// @Produce json
// @Success 200 {object} entity.BusinessConfig
// @Failure 500 {object} map[string]string
// @Router /config [get]
func (c *BusinessController) GetConfig(ctx echo.Context) error {
	cfg, appErr := c.service.Load()
	if appErr != nil {
		logger.Error("BusinessController:GetConfig:Error", "error", appErr)
		return ctx.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to load business configuration"})
	}
	return ctx.JSON(http.StatusOK, cfg)
}

// GetStructuredData returns the LocalBusiness JSON-LD document.
// @Summary LocalBusiness structured data
// @Tags Config
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /config/structured-data [get]
func (c *BusinessController) GetStructuredData(ctx echo.Context) error {
	cfg, appErr := c.service.Load()
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return ctx.JSON(http.StatusOK, service.StructuredData(cfg))
}

// @Summary BreadcrumbList structured data
// @Tags Config
// @Accept json
// @Produce json
// @Param request body dto.BreadcrumbRequest true "Breadcrumb items"
// @Router /config/breadcrumbs [post]
func (c *BusinessController) PostBreadcrumbs(ctx echo.Context) error {
	req := new(dto.BreadcrumbRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}
	if result := validator.Struct(req); result.HasError() {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request data", result)
	}
	return ctx.JSON(http.StatusOK, service.Breadcrumbs(req.Items))
}

// @Summary Business configuration with an industry preset applied
// @Tags Config
// @Produce json
// @Param industry path string true "Industry preset key"
// @Router /config/presets/{industry} [get]
func (c *BusinessController) GetWithPreset(ctx echo.Context) error {
	cfg, appErr := c.service.ApplyIndustryPreset(ctx.Param("industry"))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, cfg, "Preset applied")
}

// @Summary Validate the loaded business configuration
// @Tags Config
// @Security BearerAuth
// @Produce json
// @Router /admin/config/validate [get]
func (c *BusinessController) Validate(ctx echo.Context) error {
	cfg, appErr := c.service.Load()
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	ok, field := service.Validate(cfg)
	return c.SuccessResponse(ctx, dto.ValidationReport{Valid: ok, MissingField: field}, "Configuration checked")
}
