package repository

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"

	"castle-admin/core/database"
	"castle-admin/core/logger"
	"castle-admin/core/params"
	"castle-admin/modules/notification/entity"

	"github.com/google/uuid"
)

var ErrNotificationNotFound = stderrors.New("notification not found")

type NotificationRepositoryInterface interface {
	Create(ctx context.Context, n *entity.Notification) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Notification, error)
	List(ctx context.Context, q params.QueryParams) (*entity.PaginatedNotificationEntity, error)
	MarkSent(ctx context.Context, id uuid.UUID) error
	MarkFailed(ctx context.Context, id uuid.UUID, reason string) error
}

type NotificationRepository struct {
	db database.Database
}

func NewNotificationRepository(db database.Database) *NotificationRepository {
	return &NotificationRepository{db: db}
}

const notificationColumns = `id, booking_id, channel, recipient, subject, status, error, attempts, data, sent_at, created_at, updated_at`

func (r *NotificationRepository) Create(ctx context.Context, n *entity.Notification) error {
	query := `
		INSERT INTO notifications (id, booking_id, channel, recipient, subject, status, data)
		VALUES (:id, :booking_id, :channel, :recipient, :subject, :status, :data)
		RETURNING created_at, updated_at
	`
	rows, err := r.db.NamedQueryContext(ctx, query, n)
	if err != nil {
		logger.Error("NotificationRepository:Create:Error", "error", err)
		return err
	}
	defer rows.Close()

	if rows.Next() {
		return rows.Scan(&n.CreatedAt, &n.UpdatedAt)
	}
	return rows.Err()
}

func (r *NotificationRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Notification, error) {
	var n entity.Notification
	err := r.db.GetContext(ctx, &n, `SELECT `+notificationColumns+` FROM notifications WHERE id = $1`, id)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error("NotificationRepository:GetByID:Error", "id", id, "error", err)
		return nil, err
	}
	return &n, nil
}

func (r *NotificationRepository) List(ctx context.Context, q params.QueryParams) (*entity.PaginatedNotificationEntity, error) {
	baseQuery := `FROM notifications`
	var args []any
	if q.Status != "" {
		baseQuery += ` WHERE status = $1`
		args = append(args, q.Status)
	}

	var totalItems int
	if err := r.db.GetContext(ctx, &totalItems, "SELECT COUNT(*) "+baseQuery, args...); err != nil {
		logger.Error("NotificationRepository:List:Count:Error", "error", err)
		return nil, err
	}

	query := fmt.Sprintf(`SELECT %s %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		notificationColumns, baseQuery, len(args)+1, len(args)+2)
	args = append(args, q.PageSize, q.Offset())

	var items []entity.Notification
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		logger.Error("NotificationRepository:List:Select:Error", "error", err)
		return nil, err
	}

	return &entity.PaginatedNotificationEntity{
		Items:      items,
		TotalItems: totalItems,
		PageNumber: q.PageNumber,
		PageSize:   q.PageSize,
	}, nil
}

func (r *NotificationRepository) MarkSent(ctx context.Context, id uuid.UUID) error {
	return r.exec(ctx, "MarkSent", `
		UPDATE notifications
		SET status = $1, error = NULL, attempts = attempts + 1, sent_at = now(), updated_at = now()
		WHERE id = $2`, entity.StatusSent, id)
}

func (r *NotificationRepository) MarkFailed(ctx context.Context, id uuid.UUID, reason string) error {
	return r.exec(ctx, "MarkFailed", `
		UPDATE notifications
		SET status = $1, error = $2, attempts = attempts + 1, updated_at = now()
		WHERE id = $3`, entity.StatusFailed, reason, id)
}

func (r *NotificationRepository) exec(ctx context.Context, step, query string, args ...any) error {
	result, err := r.db.SQLx().ExecContext(ctx, query, args...)
	if err != nil {
		logger.Error("NotificationRepository:"+step+":Error", "error", err)
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotificationNotFound
	}
	return nil
}
