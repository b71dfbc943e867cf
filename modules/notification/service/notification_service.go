package service

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strconv"

	"castle-admin/core/constants"
	"castle-admin/core/errors"
	"castle-admin/core/logger"
	"castle-admin/core/mailer"
	"castle-admin/core/params"
	"castle-admin/core/queue"
	"castle-admin/modules/notification/dto"
	"castle-admin/modules/notification/entity"
	"castle-admin/modules/notification/mapper"
	"castle-admin/modules/notification/repository"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

var confirmationTemplate = template.Must(template.New("confirmation").Parse(`<!doctype html>
<html>
<body style="font-family:Arial,Helvetica,sans-serif;color:#111">
  <h2>Your booking is confirmed</h2>
  <p>Hi {{.CustomerName}},</p>
  <p>Thanks for booking with {{.BusinessName}}. Here are your details:</p>
  <table cellpadding="4">
    <tr><td><strong>Reference</strong></td><td>{{.BookingRef}}</td></tr>
    <tr><td><strong>Castle</strong></td><td>{{.CastleName}}</td></tr>
    <tr><td><strong>Date</strong></td><td>{{.Date}}{{if .EndDate}} to {{.EndDate}}{{end}}</td></tr>
    <tr><td><strong>Total</strong></td><td>£{{.Total}}</td></tr>
    <tr><td><strong>Deposit</strong></td><td>£{{.Deposit}}</td></tr>
  </table>
  <p>Reply to this email if anything needs changing.</p>
</body>
</html>`))

type NotificationServiceInterface interface {
	EnqueueBookingConfirmation(ctx context.Context, msg *dto.BookingConfirmation) *errors.AppError
	List(ctx context.Context, q params.QueryParams) (*dto.PaginatedNotificationResponse, *errors.AppError)
}

type NotificationService struct {
	repo         repository.NotificationRepositoryInterface
	queue        queue.Enqueuer
	sender       mailer.Sender
	businessName string
}

func NewNotificationService(repo repository.NotificationRepositoryInterface, q queue.Enqueuer, sender mailer.Sender, businessName string) *NotificationService {
	return &NotificationService{repo: repo, queue: q, sender: sender, businessName: businessName}
}

// SetQueue swaps the enqueuer once the worker mux exists.
func (s *NotificationService) SetQueue(q queue.Enqueuer) {
	s.queue = q
}

// EnqueueBookingConfirmation records a queued email and hands it to the worker.
func (s *NotificationService) EnqueueBookingConfirmation(ctx context.Context, msg *dto.BookingConfirmation) *errors.AppError {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if msg.CustomerEmail == "" {
		return errors.NewAppError(errors.ErrInvalidInput, "customer email is required", nil)
	}

	bookingID := msg.BookingID
	n := &entity.Notification{
		ID:        uuid.New(),
		BookingID: &bookingID,
		Channel:   entity.ChannelEmail,
		Recipient: msg.CustomerEmail,
		Subject:   fmt.Sprintf("Booking confirmed: %s", msg.BookingRef),
		Status:    entity.StatusQueued,
		Data: entity.JSONB{
			"bookingId":    msg.BookingID,
			"bookingRef":   msg.BookingRef,
			"customerName": msg.CustomerName,
			"castleName":   msg.CastleName,
			"date":         msg.Date,
			"endDate":      msg.EndDate,
			"totalPrice":   msg.TotalPrice,
			"deposit":      msg.Deposit,
		},
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return errors.NewAppError(errors.ErrCreateFailed, "create notification failed", err)
	}

	err := s.queue.Enqueue(ctx, constants.TaskSendEmail, dto.SendEmailPayload{NotificationID: n.ID},
		asynq.Queue(constants.QueueCritical),
		asynq.MaxRetry(constants.NotificationMaxRetries),
		asynq.Timeout(constants.NotificationTaskTimeout),
	)
	if err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "enqueue notification failed", err)
	}
	logger.Info("NotificationService:EnqueueBookingConfirmation:Queued", "notification_id", n.ID, "booking_id", msg.BookingID)
	return nil
}

// HandleSendEmail delivers a queued notification. A send failure is
// returned so asynq retries the task.
func (s *NotificationService) HandleSendEmail(ctx context.Context, t *asynq.Task) error {
	var payload dto.SendEmailPayload
	if err := queue.DecodePayload(t, &payload); err != nil {
		return err
	}

	n, err := s.repo.GetByID(ctx, payload.NotificationID)
	if err != nil {
		return err
	}
	if n == nil {
		logger.Warn("NotificationService:HandleSendEmail:Missing", "notification_id", payload.NotificationID)
		return fmt.Errorf("notification %s not found: %w", payload.NotificationID, asynq.SkipRetry)
	}
	if n.Status == entity.StatusSent {
		return nil
	}

	html, err := s.render(n)
	if err != nil {
		_ = s.repo.MarkFailed(ctx, n.ID, err.Error())
		return fmt.Errorf("render notification %s: %v: %w", n.ID, err, asynq.SkipRetry)
	}

	if err := s.sender.Send(ctx, mailer.Message{To: n.Recipient, Subject: n.Subject, HTML: html}); err != nil {
		logger.Error("NotificationService:HandleSendEmail:SendFailed", "notification_id", n.ID, "error", err)
		if markErr := s.repo.MarkFailed(ctx, n.ID, err.Error()); markErr != nil {
			logger.Error("NotificationService:HandleSendEmail:MarkFailed", "notification_id", n.ID, "error", markErr)
		}
		return err
	}

	if err := s.repo.MarkSent(ctx, n.ID); err != nil {
		logger.Error("NotificationService:HandleSendEmail:MarkSent", "notification_id", n.ID, "error", err)
		return err
	}
	logger.Info("NotificationService:HandleSendEmail:Sent", "notification_id", n.ID, "recipient", n.Recipient)
	return nil
}

func (s *NotificationService) render(n *entity.Notification) (string, error) {
	str := func(key string) string {
		v, _ := n.Data[key].(string)
		return v
	}
	money := func(key string) string {
		if v, ok := n.Data[key].(float64); ok {
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
		return "0"
	}
	var buf bytes.Buffer
	err := confirmationTemplate.Execute(&buf, map[string]string{
		"BusinessName": s.businessName,
		"CustomerName": str("customerName"),
		"BookingRef":   str("bookingRef"),
		"CastleName":   str("castleName"),
		"Date":         str("date"),
		"EndDate":      str("endDate"),
		"Total":        money("totalPrice"),
		"Deposit":      money("deposit"),
	})
	return buf.String(), err
}

func (s *NotificationService) List(ctx context.Context, q params.QueryParams) (*dto.PaginatedNotificationResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	page, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get notifications failed", err)
	}
	return mapper.ToPaginatedNotificationResponse(page), nil
}
