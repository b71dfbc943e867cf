package validator

import (
	"strings"

	"castle-admin/core/validator"
	"castle-admin/modules/calendar/dto"
)

func ValidateBookingEventRequest(req *dto.BookingEventRequest) *validator.Result {
	result := validator.Struct(req)
	if strings.TrimSpace(req.CustomerName) == "" && !hasField(result, "customerName") {
		result.AddError("customerName", "is required")
	}
	if req.ContactDetails.Phone == "" && req.ContactDetails.Email == "" {
		result.AddError("contactDetails", "phone or email is required")
	}
	return result
}

func hasField(result *validator.Result, field string) bool {
	for _, e := range result.Errors {
		if e.Field == field {
			return true
		}
	}
	return false
}
