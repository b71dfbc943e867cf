package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"strings"
	"time"

	"castle-admin/core/constants"
	"castle-admin/core/errors"
	"castle-admin/core/logger"
	"castle-admin/core/params"
	"castle-admin/core/storage"
	caldto "castle-admin/modules/calendar/dto"
	"castle-admin/modules/fleet/dto"
	"castle-admin/modules/fleet/entity"
	"castle-admin/modules/fleet/mapper"
	"castle-admin/modules/fleet/repository"
)

// MaintenanceCalendar is the part of the calendar service used to block
// out maintenance windows.
type MaintenanceCalendar interface {
	Connected() bool
	Location() *time.Location
	CreateBlock(ctx context.Context, summary, description string, startDay, lastDay time.Time) (*caldto.GoogleCalendarEvent, *errors.AppError)
	DeleteEvent(ctx context.Context, eventID string) *errors.AppError
}

type FleetServiceInterface interface {
	List(ctx context.Context, q params.QueryParams) (*dto.PaginatedServiceResponse, *errors.AppError)
	Get(ctx context.Context, id int64) (*dto.ServiceResponse, *errors.AppError)
	Create(ctx context.Context, req *dto.CreateServiceRequest) (*dto.ServiceResponse, *errors.AppError)
	Update(ctx context.Context, id int64, req *dto.UpdateServiceRequest) (*dto.ServiceResponse, *errors.AppError)
	Delete(ctx context.Context, id int64) *errors.AppError
	SetMaintenance(ctx context.Context, id int64, req *dto.MaintenanceRequest) (*dto.ServiceResponse, *errors.AppError)
	UploadImage(ctx context.Context, id int64, filename, contentType string, size int64, body io.Reader) (*dto.ServiceResponse, *errors.AppError)
	GenerateDescription(ctx context.Context, req *dto.DescriptionRequest) *dto.DescriptionResponse
}

type FleetService struct {
	repo      repository.ServiceRepositoryInterface
	calendar  MaintenanceCalendar
	uploader  storage.Uploader
	describer Describer
}

// NewFleetService wires the catalog. uploader and describer may be nil when
// S3 or Gemini are not configured.
func NewFleetService(repo repository.ServiceRepositoryInterface, calendar MaintenanceCalendar, uploader storage.Uploader, describer Describer) *FleetService {
	return &FleetService{repo: repo, calendar: calendar, uploader: uploader, describer: describer}
}

func (s *FleetService) List(ctx context.Context, q params.QueryParams) (*dto.PaginatedServiceResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	page, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get services failed", err)
	}
	return mapper.ToPaginatedServiceResponse(page), nil
}

func (s *FleetService) Get(ctx context.Context, id int64) (*dto.ServiceResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	svc, appErr := s.find(ctx, id)
	if appErr != nil {
		return nil, appErr
	}
	return mapper.ToServiceResponse(svc), nil
}

func (s *FleetService) Create(ctx context.Context, req *dto.CreateServiceRequest) (*dto.ServiceResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	svc := mapper.ToServiceEntity(req)
	if err := s.repo.Create(ctx, svc); err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "create service failed", err)
	}
	logger.Info("FleetService:Create:Success", "id", svc.ID, "name", svc.Name)
	return mapper.ToServiceResponse(svc), nil
}

func (s *FleetService) Update(ctx context.Context, id int64, req *dto.UpdateServiceRequest) (*dto.ServiceResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	svc, appErr := s.find(ctx, id)
	if appErr != nil {
		return nil, appErr
	}
	mapper.ApplyUpdate(svc, req)
	if err := s.repo.Update(ctx, svc); err != nil {
		return nil, s.writeError("update service failed", errors.ErrUpdateFailed, err)
	}
	return mapper.ToServiceResponse(svc), nil
}

func (s *FleetService) Delete(ctx context.Context, id int64) *errors.AppError {
	ctx, cancel := context.WithTimeout(ctx, constants.ExternalRequestTimeout)
	defer cancel()

	svc, appErr := s.find(ctx, id)
	if appErr != nil {
		return appErr
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.writeError("delete service failed", errors.ErrDeleteFailed, err)
	}
	s.removeBlock(ctx, svc)
	logger.Info("FleetService:Delete:Success", "id", id)
	return nil
}

// SetMaintenance records a maintenance state. Any existing calendar block is
// removed, and a new one is created for a maintenance window when the
// calendar is connected.
func (s *FleetService) SetMaintenance(ctx context.Context, id int64, req *dto.MaintenanceRequest) (*dto.ServiceResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.ExternalRequestTimeout)
	defer cancel()

	status, ok := entity.ParseMaintenanceStatus(req.Status)
	if !ok {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "invalid maintenance status", nil)
	}
	svc, appErr := s.find(ctx, id)
	if appErr != nil {
		return nil, appErr
	}

	loc := s.location()
	start, end, err := window(req.StartDate, req.EndDate, loc)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "invalid maintenance window", err)
	}

	s.removeBlock(ctx, svc)
	svc.MaintenanceEventID = nil
	svc.MaintenanceStatus = status

	if status == entity.MaintenanceAvailable {
		svc.MaintenanceNotes = ""
		svc.MaintenanceStartDate = nil
		svc.MaintenanceEndDate = nil
	} else {
		svc.MaintenanceNotes = strings.TrimSpace(req.Notes)
		svc.MaintenanceStartDate = start
		svc.MaintenanceEndDate = end
	}

	if status == entity.MaintenanceInProgress && start != nil {
		if s.calendar != nil && s.calendar.Connected() {
			last := *start
			if end != nil {
				last = *end
			}
			summary := fmt.Sprintf("%s Maintenance: %s", constants.MaintenanceMarker, svc.Name)
			block, appErr := s.calendar.CreateBlock(ctx, summary, svc.MaintenanceNotes, *start, last)
			if appErr != nil {
				return nil, appErr
			}
			svc.MaintenanceEventID = &block.ID
		} else {
			logger.Warn("FleetService:SetMaintenance:CalendarDisconnected", "id", id)
		}
	}

	if err := s.repo.SetMaintenance(ctx, svc); err != nil {
		return nil, s.writeError("update maintenance failed", errors.ErrUpdateFailed, err)
	}
	logger.Info("FleetService:SetMaintenance:Success", "id", id, "status", status)
	return mapper.ToServiceResponse(svc), nil
}

func (s *FleetService) UploadImage(ctx context.Context, id int64, filename, contentType string, size int64, body io.Reader) (*dto.ServiceResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.ExternalRequestTimeout)
	defer cancel()

	if s.uploader == nil {
		return nil, errors.NewAppError(errors.ErrExternalService, "image storage is not configured", nil)
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "file must be an image", nil)
	}
	if size > constants.MaxImageUploadSize {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "image is too large", nil)
	}

	svc, appErr := s.find(ctx, id)
	if appErr != nil {
		return nil, appErr
	}

	url, err := s.uploader.Upload(ctx, storage.ServiceImageKey(svc.Name, filename), body, contentType)
	if err != nil {
		logger.Error("FleetService:UploadImage:Error", "id", id, "error", err)
		return nil, errors.NewAppError(errors.ErrExternalService, "image upload failed", err)
	}
	if err := s.repo.SetImage(ctx, id, url); err != nil {
		return nil, s.writeError("update service image failed", errors.ErrUpdateFailed, err)
	}
	svc.ImageURL = &url
	return mapper.ToServiceResponse(svc), nil
}

// GenerateDescription asks the describer for copy and falls back to the
// template when it is missing or fails.
func (s *FleetService) GenerateDescription(ctx context.Context, req *dto.DescriptionRequest) *dto.DescriptionResponse {
	if s.describer != nil {
		ctx, cancel := context.WithTimeout(ctx, constants.ExternalRequestTimeout)
		defer cancel()

		text, err := s.describer.Describe(ctx, *req)
		if err == nil {
			return &dto.DescriptionResponse{Description: text, Source: SourceGemini}
		}
		logger.Warn("FleetService:GenerateDescription:Fallback", "name", req.Name, "error", err)
	}
	return &dto.DescriptionResponse{Description: TemplateDescription(*req), Source: SourceTemplate}
}

func (s *FleetService) find(ctx context.Context, id int64) (*entity.Service, *errors.AppError) {
	svc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get service failed", err)
	}
	if svc == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "service not found", nil)
	}
	return svc, nil
}

func (s *FleetService) removeBlock(ctx context.Context, svc *entity.Service) {
	if svc.MaintenanceEventID == nil || *svc.MaintenanceEventID == "" || s.calendar == nil {
		return
	}
	if appErr := s.calendar.DeleteEvent(ctx, *svc.MaintenanceEventID); appErr != nil && appErr.Code != errors.ErrNotFound {
		logger.Warn("FleetService:RemoveBlock:Error", "id", svc.ID, "event_id", *svc.MaintenanceEventID, "error", appErr.Message)
	}
}

func (s *FleetService) location() *time.Location {
	if s.calendar != nil && s.calendar.Location() != nil {
		return s.calendar.Location()
	}
	return time.UTC
}

func (s *FleetService) writeError(msg string, code errors.ErrorCode, err error) *errors.AppError {
	if stderrors.Is(err, repository.ErrServiceNotFound) {
		return errors.NewAppError(errors.ErrNotFound, "service not found", err)
	}
	return errors.NewAppError(code, msg, err)
}

func window(startDate, endDate string, loc *time.Location) (*time.Time, *time.Time, error) {
	parse := func(v string) (*time.Time, error) {
		if v == "" {
			return nil, nil
		}
		t, err := time.ParseInLocation("2006-01-02", v, loc)
		if err != nil {
			return nil, err
		}
		return &t, nil
	}
	start, err := parse(startDate)
	if err != nil {
		return nil, nil, err
	}
	end, err := parse(endDate)
	if err != nil {
		return nil, nil, err
	}
	if end != nil && start == nil {
		return nil, nil, fmt.Errorf("end date without start date")
	}
	if start != nil && end != nil && end.Before(*start) {
		return nil, nil, fmt.Errorf("end date before start date")
	}
	return start, end, nil
}
