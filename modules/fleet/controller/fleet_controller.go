package controller

import (
	"castle-admin/core/controller"
	"castle-admin/core/errors"
	"castle-admin/core/params"
	"castle-admin/core/utils"
	"castle-admin/modules/fleet/dto"
	"castle-admin/modules/fleet/service"
	"castle-admin/modules/fleet/validator"

	"github.com/labstack/echo/v4"
)

type FleetController struct {
	controller.BaseController
	service service.FleetServiceInterface
}

func NewFleetController(svc service.FleetServiceInterface) *FleetController {
	return &FleetController{
		BaseController: controller.NewBaseController(),
		service:        svc,
	}
}

// @Summary List services
// @Tags Services
// @Security BearerAuth
// @Produce json
// @Param search query string false "Name or category contains"
// @Param status query string false "Maintenance status"
// @Param page_number query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} controller.SuccessResponse{data=dto.PaginatedServiceResponse}
// @Router /admin/services [get]
func (c *FleetController) List(ctx echo.Context) error {
	q := params.NewQueryParams(ctx)
	page, appErr := c.service.List(ctx.Request().Context(), *q)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, page, "services retrieved")
}

// @Summary Get a service
// @Tags Services
// @Security BearerAuth
// @Produce json
// @Param id path int true "Service id"
// @Success 200 {object} controller.SuccessResponse{data=dto.ServiceResponse}
// @Failure 404 {object} controller.ErrorResponse
// @Router /admin/services/{id} [get]
func (c *FleetController) Get(ctx echo.Context) error {
	id, err := utils.ToInt64(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "invalid service id")
	}
	svc, appErr := c.service.Get(ctx.Request().Context(), id)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, svc, "service retrieved")
}

// @Summary Create a service
// @Tags Services
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body dto.CreateServiceRequest true "Service"
// @Success 201 {object} controller.SuccessResponse{data=dto.ServiceResponse}
// @Failure 400 {object} controller.ErrorResponse
// @Router /admin/services [post]
func (c *FleetController) Create(ctx echo.Context) error {
	var req dto.CreateServiceRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "invalid request body")
	}
	if result := validator.ValidateCreateServiceRequest(&req); result.HasError() {
		return c.BadRequest(errors.ErrInvalidInput, "validation failed", result.Errors)
	}
	svc, appErr := c.service.Create(ctx.Request().Context(), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.CreatedResponse(ctx, svc, "service created")
}

// @Summary Update a service
// @Tags Services
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Service id"
// @Param body body dto.UpdateServiceRequest true "Fields to change"
// @Success 200 {object} controller.SuccessResponse{data=dto.ServiceResponse}
// @Router /admin/services/{id} [put]
func (c *FleetController) Update(ctx echo.Context) error {
	id, err := utils.ToInt64(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "invalid service id")
	}
	var req dto.UpdateServiceRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "invalid request body")
	}
	if result := validator.ValidateUpdateServiceRequest(&req); result.HasError() {
		return c.BadRequest(errors.ErrInvalidInput, "validation failed", result.Errors)
	}
	svc, appErr := c.service.Update(ctx.Request().Context(), id, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, svc, "service updated")
}

// @Summary Delete a service
// @Tags Services
// @Security BearerAuth
// @Param id path int true "Service id"
// @Success 200 {object} controller.SuccessResponse
// @Router /admin/services/{id} [delete]
func (c *FleetController) Delete(ctx echo.Context) error {
	id, err := utils.ToInt64(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "invalid service id")
	}
	if appErr := c.service.Delete(ctx.Request().Context(), id); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "service deleted")
}

// @Summary Set maintenance status
// @Tags Services
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Service id"
// @Param body body dto.MaintenanceRequest true "Maintenance state"
// @Success 200 {object} controller.SuccessResponse{data=dto.ServiceResponse}
// @Router /admin/services/{id}/maintenance [put]
func (c *FleetController) SetMaintenance(ctx echo.Context) error {
	id, err := utils.ToInt64(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "invalid service id")
	}
	var req dto.MaintenanceRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "invalid request body")
	}
	if result := validator.ValidateMaintenanceRequest(&req); result.HasError() {
		return c.BadRequest(errors.ErrInvalidInput, "validation failed", result.Errors)
	}
	svc, appErr := c.service.SetMaintenance(ctx.Request().Context(), id, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, svc, "maintenance updated")
}

// @Summary Upload a service image
// @Tags Services
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Service id"
// @Param image formData file true "Image file"
// @Success 200 {object} controller.SuccessResponse{data=dto.ServiceResponse}
// @Router /admin/services/{id}/image [post]
func (c *FleetController) UploadImage(ctx echo.Context) error {
	id, err := utils.ToInt64(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "invalid service id")
	}
	header, err := ctx.FormFile("image")
	if err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "image file is required")
	}
	file, err := header.Open()
	if err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "cannot read image file")
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	svc, appErr := c.service.UploadImage(ctx.Request().Context(), id, header.Filename, contentType, header.Size, file)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, svc, "image uploaded")
}

// @Summary Generate a service description
// @Tags Services
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body dto.DescriptionRequest true "Service basics"
// @Success 200 {object} controller.SuccessResponse{data=dto.DescriptionResponse}
// @Router /admin/services/description [post]
func (c *FleetController) GenerateDescription(ctx echo.Context) error {
	var req dto.DescriptionRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "invalid request body")
	}
	if result := validator.ValidateDescriptionRequest(&req); result.HasError() {
		return c.BadRequest(errors.ErrInvalidInput, "validation failed", result.Errors)
	}
	return c.SuccessResponse(ctx, c.service.GenerateDescription(ctx.Request().Context(), &req), "description generated")
}
