package validator

import (
	"testing"

	"castle-admin/modules/booking/dto"

	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T { return &v }

func TestValidateUpdateBookingRequest(t *testing.T) {
	assert.False(t, ValidateUpdateBookingRequest(&dto.UpdateBookingRequest{Status: ptr("confirmed")}).HasError())
	assert.False(t, ValidateUpdateBookingRequest(&dto.UpdateBookingRequest{
		CustomerName: ptr("Jane"),
		Date:         ptr("2024-06-15"),
		EndDate:      ptr("2024-06-16"),
	}).HasError())

	result := ValidateUpdateBookingRequest(&dto.UpdateBookingRequest{Status: ptr("archived")})
	assert.True(t, result.HasError())
	assert.Equal(t, "status", result.Errors[0].Field)

	result = ValidateUpdateBookingRequest(&dto.UpdateBookingRequest{Status: ptr("confirmed"), Notes: ptr("x")})
	assert.Equal(t, "status", result.Errors[0].Field)

	result = ValidateUpdateBookingRequest(&dto.UpdateBookingRequest{Date: ptr("2024-06-15"), EndDate: ptr("2024-06-14")})
	assert.Equal(t, "endDate", result.Errors[0].Field)

	result = ValidateUpdateBookingRequest(&dto.UpdateBookingRequest{Date: ptr("15/06/2024")})
	assert.Equal(t, "date", result.Errors[0].Field)
}
