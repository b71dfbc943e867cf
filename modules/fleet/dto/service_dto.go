package dto

import (
	"time"

	"castle-admin/core/dto"
)

type ServiceResponse struct {
	ID                   int64     `json:"id"`
	Name                 string    `json:"name"`
	Category             string    `json:"category"`
	Size                 string    `json:"size"`
	Price                float64   `json:"price"`
	Description          string    `json:"description"`
	ImageURL             string    `json:"imageUrl,omitempty"`
	MaintenanceStatus    string    `json:"maintenanceStatus"`
	MaintenanceNotes     string    `json:"maintenanceNotes,omitempty"`
	MaintenanceStartDate string    `json:"maintenanceStartDate,omitempty"`
	MaintenanceEndDate   string    `json:"maintenanceEndDate,omitempty"`
	MaintenanceEventID   string    `json:"maintenanceEventId,omitempty"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

type PaginatedServiceResponse = dto.Pagination[ServiceResponse]

type CreateServiceRequest struct {
	Name        string  `json:"name" validate:"required,max=200"`
	Category    string  `json:"category" validate:"max=100"`
	Size        string  `json:"size" validate:"max=100"`
	Price       float64 `json:"price" validate:"gte=0"`
	Description string  `json:"description"`
}

type UpdateServiceRequest struct {
	Name        *string  `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Category    *string  `json:"category,omitempty" validate:"omitempty,max=100"`
	Size        *string  `json:"size,omitempty" validate:"omitempty,max=100"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	Description *string  `json:"description,omitempty"`
}

type MaintenanceRequest struct {
	Status    string `json:"status" validate:"required,oneof=available maintenance out_of_service"`
	Notes     string `json:"notes"`
	StartDate string `json:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `json:"endDate" validate:"omitempty,datetime=2006-01-02"`
}

type DescriptionRequest struct {
	Name     string  `json:"name" validate:"required"`
	Category string  `json:"category" validate:"required"`
	Size     string  `json:"size"`
	Price    float64 `json:"price" validate:"gte=0"`
}

type DescriptionResponse struct {
	Description string `json:"description"`
	Source      string `json:"source"`
}
