package validator

import (
	"time"

	"castle-admin/core/validator"
	"castle-admin/modules/booking/dto"
)

func ValidateUpdateBookingRequest(req *dto.UpdateBookingRequest) *validator.Result {
	result := validator.Struct(req)
	if result.HasError() {
		return result
	}
	if req.Status != nil && !req.StatusOnly() {
		result.AddError("status", "cannot be combined with other fields")
	}
	if req.Date != nil && req.EndDate != nil {
		start, _ := time.Parse("2006-01-02", *req.Date)
		end, _ := time.Parse("2006-01-02", *req.EndDate)
		if end.Before(start) {
			result.AddError("endDate", "must not be before date")
		}
	}
	return result
}
