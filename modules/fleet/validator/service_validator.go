package validator

import (
	"strings"
	"time"

	"castle-admin/core/validator"
	"castle-admin/modules/fleet/dto"
)

func ValidateCreateServiceRequest(req *dto.CreateServiceRequest) *validator.Result {
	req.Name = strings.TrimSpace(req.Name)
	return validator.Struct(req)
}

func ValidateUpdateServiceRequest(req *dto.UpdateServiceRequest) *validator.Result {
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		req.Name = &name
	}
	return validator.Struct(req)
}

// ValidateMaintenanceRequest also requires a start date whenever the window
// has an end date, and rejects windows that end before they start.
func ValidateMaintenanceRequest(req *dto.MaintenanceRequest) *validator.Result {
	result := validator.Struct(req)
	if result.HasError() {
		return result
	}
	if req.EndDate != "" && req.StartDate == "" {
		result.AddError("startDate", "is required when endDate is set")
		return result
	}
	if req.StartDate != "" && req.EndDate != "" {
		start, _ := time.Parse("2006-01-02", req.StartDate)
		end, _ := time.Parse("2006-01-02", req.EndDate)
		if end.Before(start) {
			result.AddError("endDate", "must not be before startDate")
		}
	}
	return result
}

func ValidateDescriptionRequest(req *dto.DescriptionRequest) *validator.Result {
	req.Name = strings.TrimSpace(req.Name)
	return validator.Struct(req)
}
