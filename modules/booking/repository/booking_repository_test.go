package repository

import (
	"context"
	"database/sql/driver"
	"regexp"
	"testing"
	"time"

	"castle-admin/core/database"
	"castle-admin/modules/booking/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var columns = []string{
	"id", "booking_ref", "customer_name", "customer_email", "customer_phone", "customer_address",
	"castle_id", "castle_name", "date", "end_date", "overnight", "additional_costs", "payment_method",
	"total_price", "deposit", "status", "notes", "calendar_event_id",
	"agreement_signed", "agreement_signed_at", "agreement_signed_by", "created_at", "updated_at",
}

func newRepo(t *testing.T) (*BookingRepository, sqlmock.Sqlmock) {
	t.Helper()
	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { raw.Close() })
	return NewBookingRepository(database.New(sqlx.NewDb(raw, "postgres"))), mock
}

func row(id int64, ref, status string, date time.Time) []driver.Value {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	return []driver.Value{
		id, ref, "Jane Doe", "jane@example.com", "07123", "1 High St",
		int64(3), "Princess Palace", date, nil, false, 0.0, "cash",
		150.0, 45.0, status, "", nil,
		false, nil, nil, now, now,
	}
}

func TestListAppliesFilters(t *testing.T) {
	repo, mock := newRepo(t)
	date := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	today := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM bookings WHERE (status = $1 AND COALESCE(end_date, date) >= $2) AND (customer_name ILIKE $3")).
		WithArgs("pending", "2024-06-10", "%jane%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta("LIMIT $4 OFFSET $5")).
		WithArgs("pending", "2024-06-10", "%jane%", 10, 10).
		WillReturnRows(sqlmock.NewRows(columns).AddRow(row(7, "BCAAAAAA", "pending", date)...))

	page, err := repo.List(context.Background(), entity.BookingFilter{Status: "pending", Search: "jane", PageNumber: 2, PageSize: 10, Today: today})
	require.NoError(t, err)
	assert.Equal(t, 1, page.TotalItems)
	require.Len(t, page.Items, 1)
	assert.Equal(t, entity.StatusPending, page.Items[0].Status)
	assert.Equal(t, int64(3), *page.Items[0].CastleID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListAllSkipsStatusFilter(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM bookings")).
		WithArgs().
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(regexp.QuoteMeta("LIMIT $1 OFFSET $2")).
		WithArgs(20, 0).
		WillReturnRows(sqlmock.NewRows(columns))

	page, err := repo.List(context.Background(), entity.BookingFilter{Status: "all", PageNumber: 1, PageSize: 20})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDMissing(t *testing.T) {
	repo, mock := newRepo(t)
	mock.ExpectQuery("FROM bookings WHERE id = \\$1").WithArgs(int64(99)).WillReturnRows(sqlmock.NewRows(columns))

	b, err := repo.GetByID(context.Background(), 99)
	assert.NoError(t, err)
	assert.Nil(t, b)
}

func TestCreateReturnsID(t *testing.T) {
	repo, mock := newRepo(t)
	created := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("INSERT INTO bookings").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(12, created, created))

	b := &entity.Booking{BookingRef: "TEST001", Status: entity.StatusConfirmed, Date: created}
	require.NoError(t, repo.Create(context.Background(), b))
	assert.Equal(t, int64(12), b.ID)
	assert.Equal(t, created, b.CreatedAt)
}

func TestConfirmRequiresPending(t *testing.T) {
	repo, mock := newRepo(t)
	eventID := "db00000005"

	mock.ExpectExec("UPDATE bookings").
		WithArgs(entity.StatusConfirmed, eventID, int64(5), entity.StatusPending).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Confirm(context.Background(), 5, &eventID)
	assert.ErrorIs(t, err, ErrStatusChanged)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteMissing(t *testing.T) {
	repo, mock := newRepo(t)
	mock.ExpectExec("DELETE FROM bookings").WithArgs(int64(4)).WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), 4), ErrBookingNotFound)
}

func TestListDueAndUpdateStatuses(t *testing.T) {
	repo, mock := newRepo(t)
	today := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE status IN ($1, $2) AND COALESCE(end_date, date) < $3")).
		WithArgs("pending", "confirmed", "2024-06-15").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(row(1, "BC111111", "pending", today.AddDate(0, 0, -3))...).
			AddRow(row(2, "BC222222", "confirmed", today.AddDate(0, 0, -1))...))
	mock.ExpectQuery(regexp.QuoteMeta("WHERE status = $2 AND id IN ($3, $4) RETURNING id")).
		WithArgs(entity.StatusExpired, entity.StatusPending, int64(1), int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))

	due, err := repo.ListDue(context.Background(), today)
	require.NoError(t, err)
	require.Len(t, due, 2)

	updated, err := repo.UpdateStatuses(context.Background(), []int64{1, 3}, entity.StatusPending, entity.StatusExpired)
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, updated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListFiltersByDerivedStatus(t *testing.T) {
	today := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	tests := []struct {
		status string
		where  string
		args   []driver.Value
	}{
		{
			status: "expired",
			where:  "WHERE (status = $1 OR (status = $2 AND COALESCE(end_date, date) < $3))",
			args:   []driver.Value{"expired", "pending", "2024-06-10"},
		},
		{
			status: "completed",
			where:  "WHERE (status = $1 OR (status = $2 AND COALESCE(end_date, date) < $3))",
			args:   []driver.Value{"completed", "confirmed", "2024-06-10"},
		},
		{
			status: "confirmed",
			where:  "WHERE (status = $1 AND COALESCE(end_date, date) >= $2)",
			args:   []driver.Value{"confirmed", "2024-06-10"},
		},
		{
			status: "cancelled",
			where:  "WHERE status = $1",
			args:   []driver.Value{"cancelled"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			repo, mock := newRepo(t)

			mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM bookings " + tt.where)).
				WithArgs(tt.args...).
				WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
			mock.ExpectQuery(regexp.QuoteMeta(tt.where + " ORDER BY date DESC, id DESC")).
				WithArgs(append(append([]driver.Value{}, tt.args...), 20, 0)...).
				WillReturnRows(sqlmock.NewRows(columns).AddRow(row(7, "BC000007", "pending", time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))...))

			page, err := repo.List(context.Background(), entity.BookingFilter{Status: tt.status, PageNumber: 1, PageSize: 20, Today: today})
			require.NoError(t, err)
			assert.Equal(t, 1, page.TotalItems)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestListOverlappingUsesMonthWindow(t *testing.T) {
	repo, mock := newRepo(t)
	from := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE date < $2 AND COALESCE(end_date, date) >= $1")).
		WithArgs("2024-06-01", "2024-07-01").
		WillReturnRows(sqlmock.NewRows(columns).AddRow(row(1, "BC111111", "confirmed", time.Date(2024, 5, 30, 0, 0, 0, 0, time.UTC))...))

	bookings, err := repo.ListOverlapping(context.Background(), from, to)
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, "BC111111", bookings[0].BookingRef)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByRef(t *testing.T) {
	repo, mock := newRepo(t)
	mock.ExpectQuery("FROM bookings WHERE booking_ref = \\$1").
		WithArgs("TEST001").
		WillReturnRows(sqlmock.NewRows(columns).AddRow(row(3, "TEST001", "confirmed", time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC))...))

	b, err := repo.GetByRef(context.Background(), "TEST001")
	require.NoError(t, err)
	require.NotNil(t, b)
	assert.Equal(t, int64(3), b.ID)
	assert.Equal(t, entity.StatusConfirmed, b.Status)
}
