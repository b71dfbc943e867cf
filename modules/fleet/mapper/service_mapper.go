package mapper

import (
	"time"

	coredto "castle-admin/core/dto"
	"castle-admin/core/utils"
	"castle-admin/modules/fleet/dto"
	"castle-admin/modules/fleet/entity"
)

func ToServiceResponse(s *entity.Service) *dto.ServiceResponse {
	return &dto.ServiceResponse{
		ID:                   s.ID,
		Name:                 s.Name,
		Category:             s.Category,
		Size:                 s.Size,
		Price:                s.Price,
		Description:          s.Description,
		ImageURL:             utils.DerefString(s.ImageURL),
		MaintenanceStatus:    string(s.MaintenanceStatus),
		MaintenanceNotes:     s.MaintenanceNotes,
		MaintenanceStartDate: day(s.MaintenanceStartDate),
		MaintenanceEndDate:   day(s.MaintenanceEndDate),
		MaintenanceEventID:   utils.DerefString(s.MaintenanceEventID),
		CreatedAt:            s.CreatedAt,
		UpdatedAt:            s.UpdatedAt,
	}
}

func ToPaginatedServiceResponse(page *entity.PaginatedServiceEntity) *dto.PaginatedServiceResponse {
	if page == nil {
		return &dto.PaginatedServiceResponse{Items: []dto.ServiceResponse{}}
	}
	items := make([]dto.ServiceResponse, len(page.Items))
	for i := range page.Items {
		items[i] = *ToServiceResponse(&page.Items[i])
	}
	return &dto.PaginatedServiceResponse{
		Items:      items,
		TotalItems: page.TotalItems,
		TotalPages: coredto.TotalPages(page.TotalItems, page.PageSize),
		PageNumber: page.PageNumber,
		PageSize:   page.PageSize,
	}
}

func ToServiceEntity(req *dto.CreateServiceRequest) *entity.Service {
	return &entity.Service{
		Name:              req.Name,
		Category:          req.Category,
		Size:              req.Size,
		Price:             req.Price,
		Description:       req.Description,
		MaintenanceStatus: entity.MaintenanceAvailable,
	}
}

// ApplyUpdate copies the non-nil fields of req onto s.
func ApplyUpdate(s *entity.Service, req *dto.UpdateServiceRequest) {
	if req.Name != nil {
		s.Name = *req.Name
	}
	if req.Category != nil {
		s.Category = *req.Category
	}
	if req.Size != nil {
		s.Size = *req.Size
	}
	if req.Price != nil {
		s.Price = *req.Price
	}
	if req.Description != nil {
		s.Description = *req.Description
	}
}

func day(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
