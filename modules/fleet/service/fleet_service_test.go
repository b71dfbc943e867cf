package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	apperrors "castle-admin/core/errors"
	caldto "castle-admin/modules/calendar/dto"
	"castle-admin/modules/fleet/dto"
	"castle-admin/modules/fleet/entity"
	"castle-admin/modules/fleet/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	repository.ServiceRepositoryInterface
	items    map[int64]*entity.Service
	imageURL string
}

func (r *fakeRepo) GetByID(_ context.Context, id int64) (*entity.Service, error) {
	s, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *fakeRepo) SetMaintenance(_ context.Context, s *entity.Service) error {
	cp := *s
	r.items[s.ID] = &cp
	return nil
}

func (r *fakeRepo) SetImage(_ context.Context, id int64, url string) error {
	r.imageURL = url
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id int64) error {
	delete(r.items, id)
	return nil
}

type fakeCalendar struct {
	connected bool
	created   []string
	deleted   []string
	start     time.Time
	last      time.Time
}

func (c *fakeCalendar) Connected() bool          { return c.connected }
func (c *fakeCalendar) Location() *time.Location { return time.UTC }

func (c *fakeCalendar) CreateBlock(_ context.Context, summary, _ string, startDay, lastDay time.Time) (*caldto.GoogleCalendarEvent, *apperrors.AppError) {
	c.created = append(c.created, summary)
	c.start, c.last = startDay, lastDay
	return &caldto.GoogleCalendarEvent{ID: "block-1", Summary: summary}, nil
}

func (c *fakeCalendar) DeleteEvent(_ context.Context, id string) *apperrors.AppError {
	c.deleted = append(c.deleted, id)
	return nil
}

type fakeUploader struct {
	key string
}

func (u *fakeUploader) Upload(_ context.Context, key string, body io.Reader, _ string) (string, error) {
	u.key = key
	_, _ = io.ReadAll(body)
	return "https://cdn.example.com/" + key, nil
}

func (u *fakeUploader) Delete(context.Context, string) error { return nil }

type failingDescriber struct{}

func (failingDescriber) Describe(context.Context, dto.DescriptionRequest) (string, error) {
	return "", errors.New("quota exceeded")
}

type cannedDescriber struct{}

func (cannedDescriber) Describe(context.Context, dto.DescriptionRequest) (string, error) {
	return "A castle fit for royalty.", nil
}

func newRepoWithID() *fakeRepo {
	castle := &entity.Service{Name: "Princess Palace", Price: 120, MaintenanceStatus: entity.MaintenanceAvailable}
	castle.ID = 1
	return &fakeRepo{items: map[int64]*entity.Service{1: castle}}
}

func TestSetMaintenanceCreatesBlock(t *testing.T) {
	repo := newRepoWithID()
	cal := &fakeCalendar{connected: true}
	svc := NewFleetService(repo, cal, nil, nil)

	resp, appErr := svc.SetMaintenance(context.Background(), 1, &dto.MaintenanceRequest{
		Status: "maintenance", Notes: "seam repair", StartDate: "2024-06-10", EndDate: "2024-06-12",
	})
	require.Nil(t, appErr)
	assert.Equal(t, "maintenance", resp.MaintenanceStatus)
	assert.Equal(t, "block-1", resp.MaintenanceEventID)
	assert.Equal(t, []string{"🔧 Maintenance: Princess Palace"}, cal.created)
	assert.Equal(t, "2024-06-10", cal.start.Format("2006-01-02"))
	assert.Equal(t, "2024-06-12", cal.last.Format("2006-01-02"))
	assert.Equal(t, "seam repair", repo.items[1].MaintenanceNotes)
}

func TestSetMaintenanceAvailableRemovesBlock(t *testing.T) {
	repo := newRepoWithID()
	eventID := "block-1"
	start := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	repo.items[1].MaintenanceStatus = entity.MaintenanceInProgress
	repo.items[1].MaintenanceEventID = &eventID
	repo.items[1].MaintenanceStartDate = &start
	repo.items[1].MaintenanceNotes = "seam repair"
	cal := &fakeCalendar{connected: true}
	svc := NewFleetService(repo, cal, nil, nil)

	resp, appErr := svc.SetMaintenance(context.Background(), 1, &dto.MaintenanceRequest{Status: "available"})
	require.Nil(t, appErr)
	assert.Equal(t, []string{"block-1"}, cal.deleted)
	assert.Empty(t, cal.created)
	assert.Empty(t, resp.MaintenanceEventID)
	assert.Empty(t, resp.MaintenanceNotes)
	assert.Nil(t, repo.items[1].MaintenanceStartDate)
}

func TestSetMaintenanceWithoutCalendarStillSaves(t *testing.T) {
	repo := newRepoWithID()
	cal := &fakeCalendar{}
	svc := NewFleetService(repo, cal, nil, nil)

	resp, appErr := svc.SetMaintenance(context.Background(), 1, &dto.MaintenanceRequest{Status: "maintenance", StartDate: "2024-06-10"})
	require.Nil(t, appErr)
	assert.Empty(t, cal.created)
	assert.Equal(t, "maintenance", resp.MaintenanceStatus)
}

func TestSetMaintenanceRejectsBadStatus(t *testing.T) {
	svc := NewFleetService(newRepoWithID(), &fakeCalendar{}, nil, nil)

	_, appErr := svc.SetMaintenance(context.Background(), 1, &dto.MaintenanceRequest{Status: "broken"})
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrInvalidInput, appErr.Code)
}

func TestSetMaintenanceMissingService(t *testing.T) {
	svc := NewFleetService(newRepoWithID(), &fakeCalendar{}, nil, nil)

	_, appErr := svc.SetMaintenance(context.Background(), 42, &dto.MaintenanceRequest{Status: "available"})
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrNotFound, appErr.Code)
}

func TestUploadImage(t *testing.T) {
	repo := newRepoWithID()
	up := &fakeUploader{}
	svc := NewFleetService(repo, &fakeCalendar{}, up, nil)

	resp, appErr := svc.UploadImage(context.Background(), 1, "front.PNG", "image/png", 10, strings.NewReader("png-bytes"))
	require.Nil(t, appErr)
	assert.True(t, strings.HasPrefix(up.key, "services/princess-palace-"))
	assert.True(t, strings.HasSuffix(up.key, ".png"))
	assert.Equal(t, "https://cdn.example.com/"+up.key, resp.ImageURL)
	assert.Equal(t, resp.ImageURL, repo.imageURL)
}

func TestUploadImageRejectsNonImage(t *testing.T) {
	svc := NewFleetService(newRepoWithID(), &fakeCalendar{}, &fakeUploader{}, nil)

	_, appErr := svc.UploadImage(context.Background(), 1, "notes.txt", "text/plain", 10, strings.NewReader("x"))
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrInvalidInput, appErr.Code)
}

func TestUploadImageWithoutStorage(t *testing.T) {
	svc := NewFleetService(newRepoWithID(), &fakeCalendar{}, nil, nil)

	_, appErr := svc.UploadImage(context.Background(), 1, "a.png", "image/png", 10, strings.NewReader("x"))
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrExternalService, appErr.Code)
}

func TestDeleteRemovesMaintenanceBlock(t *testing.T) {
	repo := newRepoWithID()
	eventID := "block-9"
	repo.items[1].MaintenanceEventID = &eventID
	cal := &fakeCalendar{connected: true}
	svc := NewFleetService(repo, cal, nil, nil)

	require.Nil(t, svc.Delete(context.Background(), 1))
	assert.Equal(t, []string{"block-9"}, cal.deleted)
	assert.Empty(t, repo.items)
}

func TestGenerateDescription(t *testing.T) {
	req := &dto.DescriptionRequest{Name: "Princess Palace", Category: "Bouncy Castle", Size: "12ft x 12ft", Price: 120}

	resp := NewFleetService(nil, nil, nil, cannedDescriber{}).GenerateDescription(context.Background(), req)
	assert.Equal(t, SourceGemini, resp.Source)
	assert.Equal(t, "A castle fit for royalty.", resp.Description)

	resp = NewFleetService(nil, nil, nil, failingDescriber{}).GenerateDescription(context.Background(), req)
	assert.Equal(t, SourceTemplate, resp.Source)
	assert.Equal(t, TemplateDescription(*req), resp.Description)

	resp = NewFleetService(nil, nil, nil, nil).GenerateDescription(context.Background(), req)
	assert.Equal(t, SourceTemplate, resp.Source)
}

func TestTemplateDescription(t *testing.T) {
	text := TemplateDescription(dto.DescriptionRequest{Name: "Princess Palace", Category: "Bouncy Castle", Size: "12ft x 12ft", Price: 120})

	assert.Contains(t, text, "The Princess Palace is a fantastic bouncy castle measuring 12ft x 12ft")
	assert.Contains(t, text, "from £120 per day")

	text = TemplateDescription(dto.DescriptionRequest{Name: "Slide", Category: "Slide"})
	assert.NotContains(t, text, "measuring")
	assert.NotContains(t, text, "£")
}
