package validator

import (
	"testing"

	"castle-admin/modules/fleet/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateMaintenanceRequest(t *testing.T) {
	tests := []struct {
		name  string
		req   dto.MaintenanceRequest
		field string
	}{
		{name: "available", req: dto.MaintenanceRequest{Status: "available"}},
		{name: "window", req: dto.MaintenanceRequest{Status: "maintenance", StartDate: "2024-06-10", EndDate: "2024-06-12"}},
		{name: "unknown status", req: dto.MaintenanceRequest{Status: "broken"}, field: "status"},
		{name: "bad date", req: dto.MaintenanceRequest{Status: "maintenance", StartDate: "10/06/2024"}, field: "startDate"},
		{name: "end without start", req: dto.MaintenanceRequest{Status: "maintenance", EndDate: "2024-06-12"}, field: "startDate"},
		{name: "end before start", req: dto.MaintenanceRequest{Status: "maintenance", StartDate: "2024-06-12", EndDate: "2024-06-10"}, field: "endDate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateMaintenanceRequest(&tt.req)
			if tt.field == "" {
				assert.False(t, result.HasError())
				return
			}
			require.True(t, result.HasError())
			assert.Equal(t, tt.field, result.Errors[0].Field)
		})
	}
}

func TestValidateCreateServiceRequestTrimsName(t *testing.T) {
	req := dto.CreateServiceRequest{Name: "   ", Price: 10}
	result := ValidateCreateServiceRequest(&req)

	require.True(t, result.HasError())
	assert.Equal(t, "name", result.Errors[0].Field)
}

func TestValidateDescriptionRequestNeedsCategory(t *testing.T) {
	result := ValidateDescriptionRequest(&dto.DescriptionRequest{Name: "Princess Palace"})

	require.True(t, result.HasError())
	assert.Equal(t, "category", result.Errors[0].Field)
}
