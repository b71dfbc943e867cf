package client

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"castle-admin/core/config"
	"castle-admin/core/constants"
	"castle-admin/core/logger"
	"castle-admin/modules/calendar/dto"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
)

// ErrNotConfigured is returned by every call on a client built without
// credentials.
var ErrNotConfigured = stderrors.New("google calendar credentials are not configured")

// APIError carries a non-2xx response from the Calendar API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("google calendar api: status %d: %s", e.StatusCode, e.Body)
}

func IsNotFound(err error) bool {
	var apiErr *APIError
	return stderrors.As(err, &apiErr) && (apiErr.StatusCode == http.StatusNotFound || apiErr.StatusCode == http.StatusGone)
}

func IsConflict(err error) bool {
	var apiErr *APIError
	return stderrors.As(err, &apiErr) && apiErr.StatusCode == http.StatusConflict
}

type EventsClient interface {
	List(ctx context.Context, timeMin, timeMax time.Time) ([]dto.GoogleCalendarEvent, error)
	Get(ctx context.Context, eventID string) (*dto.GoogleCalendarEvent, error)
	Insert(ctx context.Context, event *dto.GoogleCalendarEvent) (*dto.GoogleCalendarEvent, error)
	Patch(ctx context.Context, eventID string, event *dto.GoogleCalendarEvent) (*dto.GoogleCalendarEvent, error)
	Delete(ctx context.Context, eventID string) error
	Configured() bool
}

type restClient struct {
	http       *http.Client
	baseURL    string
	calendarID string
}

// NewHTTPClient returns an authorized client. A service account is preferred;
// otherwise an OAuth refresh token is used. ok is false when neither is set.
func NewHTTPClient(ctx context.Context, cfg config.GoogleAPIConfig) (*http.Client, bool) {
	var c *http.Client
	switch {
	case cfg.HasServiceAccount():
		jwtCfg := &jwt.Config{
			Email:      cfg.ServiceAccountEmail,
			PrivateKey: []byte(cfg.PrivateKey),
			Scopes:     []string{constants.CalendarScope},
			TokenURL:   google.JWTTokenURL,
		}
		c = jwtCfg.Client(ctx)
	case cfg.HasRefreshToken():
		oauthCfg := &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       []string{constants.CalendarScope},
		}
		c = oauthCfg.Client(ctx, &oauth2.Token{RefreshToken: cfg.RefreshToken})
	default:
		return nil, false
	}
	c.Timeout = constants.ExternalRequestTimeout
	return c, true
}

func New(ctx context.Context, cfg config.GoogleAPIConfig) EventsClient {
	httpClient, ok := NewHTTPClient(ctx, cfg)
	if !ok {
		logger.Warn("CalendarClient:New:NoCredentials")
		return &restClient{baseURL: cfg.BaseURL, calendarID: cfg.CalendarID}
	}
	return NewWithHTTPClient(httpClient, cfg.BaseURL, cfg.CalendarID)
}

// NewWithHTTPClient is used by tests to aim the client at a fake server.
func NewWithHTTPClient(httpClient *http.Client, baseURL, calendarID string) EventsClient {
	if calendarID == "" {
		calendarID = "primary"
	}
	return &restClient{
		http:       httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		calendarID: calendarID,
	}
}

func (c *restClient) Configured() bool {
	return c.http != nil
}

func (c *restClient) eventsURL() string {
	return fmt.Sprintf("%s/calendars/%s/events", c.baseURL, url.PathEscape(c.calendarID))
}

func (c *restClient) eventURL(eventID string) string {
	return c.eventsURL() + "/" + url.PathEscape(eventID)
}

func (c *restClient) List(ctx context.Context, timeMin, timeMax time.Time) ([]dto.GoogleCalendarEvent, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	var events []dto.GoogleCalendarEvent
	pageToken := ""
	for {
		q := url.Values{}
		q.Set("singleEvents", "true")
		q.Set("orderBy", "startTime")
		q.Set("timeMin", timeMin.Format(time.RFC3339))
		q.Set("timeMax", timeMax.Format(time.RFC3339))
		q.Set("maxResults", "250")
		if pageToken != "" {
			q.Set("pageToken", pageToken)
		}

		var page dto.EventList
		if err := c.do(ctx, http.MethodGet, c.eventsURL()+"?"+q.Encode(), nil, &page); err != nil {
			return nil, err
		}
		events = append(events, page.Items...)
		if page.NextPageToken == "" {
			break
		}
		pageToken = page.NextPageToken
	}
	return events, nil
}

func (c *restClient) Get(ctx context.Context, eventID string) (*dto.GoogleCalendarEvent, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}
	var ev dto.GoogleCalendarEvent
	if err := c.do(ctx, http.MethodGet, c.eventURL(eventID), nil, &ev); err != nil {
		return nil, err
	}
	return &ev, nil
}

func (c *restClient) Insert(ctx context.Context, event *dto.GoogleCalendarEvent) (*dto.GoogleCalendarEvent, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}
	var created dto.GoogleCalendarEvent
	if err := c.do(ctx, http.MethodPost, c.eventsURL(), event, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *restClient) Patch(ctx context.Context, eventID string, event *dto.GoogleCalendarEvent) (*dto.GoogleCalendarEvent, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}
	var updated dto.GoogleCalendarEvent
	if err := c.do(ctx, http.MethodPatch, c.eventURL(eventID), event, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *restClient) Delete(ctx context.Context, eventID string) error {
	if !c.Configured() {
		return ErrNotConfigured
	}
	return c.do(ctx, http.MethodDelete, c.eventURL(eventID), nil, nil)
}

func (c *restClient) do(ctx context.Context, method, rawURL string, body, dest any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("google calendar request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		logger.Error("CalendarClient:Do:APIError", "method", method, "status", resp.StatusCode)
		return &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}

	if dest == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
