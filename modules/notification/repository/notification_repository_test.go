package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"castle-admin/core/database"
	"castle-admin/core/params"
	"castle-admin/modules/notification/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T) (*NotificationRepository, sqlmock.Sqlmock) {
	t.Helper()
	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { raw.Close() })
	return NewNotificationRepository(database.New(sqlx.NewDb(raw, "postgres"))), mock
}

var columns = []string{"id", "booking_id", "channel", "recipient", "subject", "status", "error", "attempts", "data", "sent_at", "created_at", "updated_at"}

func TestGetByIDScansJSONB(t *testing.T) {
	repo, mock := newRepo(t)
	id := uuid.New()
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM notifications WHERE id = $1")).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(id.String(), int64(3), "email", "jane@example.com", "Booking confirmed", "queued", nil, 0,
				[]byte(`{"bookingRef":"BC123456","totalPrice":150}`), nil, now, now))

	n, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, n)
	assert.Equal(t, entity.StatusQueued, n.Status)
	assert.Equal(t, "BC123456", n.Data["bookingRef"])
	assert.Equal(t, 150.0, n.Data["totalPrice"])
}

func TestGetByIDMissing(t *testing.T) {
	repo, mock := newRepo(t)
	id := uuid.New()
	mock.ExpectQuery("FROM notifications").WithArgs(id).WillReturnRows(sqlmock.NewRows(columns))

	n, err := repo.GetByID(context.Background(), id)
	assert.NoError(t, err)
	assert.Nil(t, n)
}

func TestListFiltersByStatus(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM notifications WHERE status = $1")).
		WithArgs("failed").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at DESC LIMIT $2 OFFSET $3")).
		WithArgs("failed", 10, 0).
		WillReturnRows(sqlmock.NewRows(columns))

	page, err := repo.List(context.Background(), params.QueryParams{PageNumber: 1, PageSize: 10, Status: "failed"})
	require.NoError(t, err)
	assert.Equal(t, 0, page.TotalItems)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkFailedMissingRow(t *testing.T) {
	repo, mock := newRepo(t)
	id := uuid.New()
	mock.ExpectExec("UPDATE notifications").
		WithArgs(entity.StatusFailed, "smtp down", id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.MarkFailed(context.Background(), id, "smtp down"), ErrNotificationNotFound)
}
