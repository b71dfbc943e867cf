package repository

import (
	"context"
	"database/sql/driver"
	"regexp"
	"testing"
	"time"

	"castle-admin/core/database"
	"castle-admin/core/params"
	"castle-admin/modules/fleet/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var columns = []string{
	"id", "name", "category", "size", "price", "description", "image_url",
	"maintenance_status", "maintenance_notes", "maintenance_start_date", "maintenance_end_date", "maintenance_event_id",
	"created_at", "updated_at",
}

func newRepo(t *testing.T) (*ServiceRepository, sqlmock.Sqlmock) {
	t.Helper()
	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { raw.Close() })
	return NewServiceRepository(database.New(sqlx.NewDb(raw, "postgres"))), mock
}

func castleRow(id int64, name string) []driver.Value {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	return []driver.Value{id, name, "Bouncy Castle", "12ft", 120.0, "", nil, "available", "", nil, nil, nil, now, now}
}

func TestListSearchesNameAndCategory(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM services WHERE (name ILIKE $1 OR category ILIKE $1)")).
		WithArgs("%palace%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY name, id LIMIT $2 OFFSET $3")).
		WithArgs("%palace%", 10, 0).
		WillReturnRows(sqlmock.NewRows(columns).AddRow(castleRow(1, "Princess Palace")...))

	page, err := repo.List(context.Background(), params.QueryParams{PageNumber: 1, PageSize: 10, Search: "palace"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Princess Palace", page.Items[0].Name)
	assert.Equal(t, entity.MaintenanceAvailable, page.Items[0].MaintenanceStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListAll(t *testing.T) {
	repo, mock := newRepo(t)
	mock.ExpectQuery("FROM services ORDER BY id").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(castleRow(1, "Princess Palace")...).
			AddRow(castleRow(2, "Pirate Ship")...))

	items, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, int64(2), items[1].ID)
}

func TestGetByIDMissing(t *testing.T) {
	repo, mock := newRepo(t)
	mock.ExpectQuery("FROM services WHERE id = \\$1").WithArgs(int64(5)).WillReturnRows(sqlmock.NewRows(columns))

	s, err := repo.GetByID(context.Background(), 5)
	assert.NoError(t, err)
	assert.Nil(t, s)
}

func TestCreateReturnsID(t *testing.T) {
	repo, mock := newRepo(t)
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("INSERT INTO services").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(9, now, now))

	s := &entity.Service{Name: "Pirate Ship", MaintenanceStatus: entity.MaintenanceAvailable}
	require.NoError(t, repo.Create(context.Background(), s))
	assert.Equal(t, int64(9), s.ID)
}

func TestSetImageMissing(t *testing.T) {
	repo, mock := newRepo(t)
	mock.ExpectExec("UPDATE services SET image_url").
		WithArgs("https://cdn.example.com/a.png", int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.SetImage(context.Background(), 3, "https://cdn.example.com/a.png"), ErrServiceNotFound)
}
