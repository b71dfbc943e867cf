package repository

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"castle-admin/core/database"
	"castle-admin/core/logger"
	"castle-admin/modules/booking/entity"

	"github.com/jmoiron/sqlx"
)

var (
	ErrBookingNotFound = stderrors.New("booking not found")
	ErrStatusChanged   = stderrors.New("booking status changed concurrently")
)

const bookingColumns = `
	id, booking_ref, customer_name, customer_email, customer_phone, customer_address,
	castle_id, castle_name, date, end_date, overnight, additional_costs, payment_method,
	total_price, deposit, status, notes, calendar_event_id,
	agreement_signed, agreement_signed_at, agreement_signed_by, created_at, updated_at`

type BookingRepositoryInterface interface {
	List(ctx context.Context, filter entity.BookingFilter) (*entity.PaginatedBookingEntity, error)
	ListOverlapping(ctx context.Context, from, to time.Time) ([]entity.Booking, error)
	ListDue(ctx context.Context, today time.Time) ([]entity.Booking, error)
	GetByID(ctx context.Context, id int64) (*entity.Booking, error)
	GetByRef(ctx context.Context, ref string) (*entity.Booking, error)
	Create(ctx context.Context, b *entity.Booking) error
	Update(ctx context.Context, b *entity.Booking) error
	UpdateStatus(ctx context.Context, id int64, from, to entity.Status) error
	UpdateStatuses(ctx context.Context, ids []int64, from, to entity.Status) ([]int64, error)
	Confirm(ctx context.Context, id int64, calendarEventID *string) error
	Delete(ctx context.Context, id int64) error
}

type BookingRepository struct {
	db database.Database
}

func NewBookingRepository(db database.Database) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) List(ctx context.Context, filter entity.BookingFilter) (*entity.PaginatedBookingEntity, error) {
	offset := (filter.PageNumber - 1) * filter.PageSize

	var conditions []string
	var args []any
	argIndex := 1

	if filter.Status != "" && filter.Status != "all" {
		cond, condArgs := derivedStatusCondition(entity.Status(filter.Status), filter.Today, argIndex)
		conditions = append(conditions, cond)
		args = append(args, condArgs...)
		argIndex += len(condArgs)
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(customer_name ILIKE $%[1]d OR customer_email ILIKE $%[1]d OR castle_name ILIKE $%[1]d OR booking_ref ILIKE $%[1]d)",
			argIndex))
		args = append(args, "%"+filter.Search+"%")
		argIndex++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	var totalItems int
	if err := r.db.GetContext(ctx, &totalItems, "SELECT COUNT(*) FROM bookings"+whereClause, args...); err != nil {
		logger.Error("BookingRepository:List:Count:Error", "error", err)
		return nil, err
	}

	query := "SELECT " + bookingColumns + " FROM bookings" + whereClause +
		fmt.Sprintf(" ORDER BY date DESC, id DESC LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, filter.PageSize, offset)

	var bookings []entity.Booking
	if err := r.db.SelectContext(ctx, &bookings, query, args...); err != nil {
		logger.Error("BookingRepository:List:Select:Error", "error", err)
		return nil, err
	}

	return &entity.PaginatedBookingEntity{
		Items:      bookings,
		TotalItems: totalItems,
		PageNumber: filter.PageNumber,
		PageSize:   filter.PageSize,
	}, nil
}

// derivedStatusCondition matches rows by the status they display on today,
// so a pending booking whose last day has passed is listed as expired and a
// confirmed one as completed.
func derivedStatusCondition(status entity.Status, today time.Time, argIndex int) (string, []any) {
	day := today.Format("2006-01-02")
	switch status {
	case entity.StatusPending, entity.StatusConfirmed:
		return fmt.Sprintf("(status = $%d AND COALESCE(end_date, date) >= $%d)", argIndex, argIndex+1),
			[]any{string(status), day}
	case entity.StatusExpired, entity.StatusCompleted:
		from := entity.StatusPending
		if status == entity.StatusCompleted {
			from = entity.StatusConfirmed
		}
		return fmt.Sprintf("(status = $%d OR (status = $%d AND COALESCE(end_date, date) < $%d))", argIndex, argIndex+1, argIndex+2),
			[]any{string(status), string(from), day}
	default:
		return fmt.Sprintf("status = $%d", argIndex), []any{string(status)}
	}
}

// ListOverlapping returns bookings occupying any day in [from, to).
func (r *BookingRepository) ListOverlapping(ctx context.Context, from, to time.Time) ([]entity.Booking, error) {
	query := `SELECT ` + bookingColumns + `
		FROM bookings
		WHERE date < $2 AND COALESCE(end_date, date) >= $1
		ORDER BY date, booking_ref`

	var bookings []entity.Booking
	if err := r.db.SelectContext(ctx, &bookings, query, from.Format("2006-01-02"), to.Format("2006-01-02")); err != nil {
		logger.Error("BookingRepository:ListOverlapping:Error", "error", err)
		return nil, err
	}
	return bookings, nil
}

// ListDue returns pending and confirmed bookings whose last day is before today.
func (r *BookingRepository) ListDue(ctx context.Context, today time.Time) ([]entity.Booking, error) {
	query, args, err := sqlx.In(`SELECT `+bookingColumns+`
		FROM bookings
		WHERE status IN (?) AND COALESCE(end_date, date) < ?
		ORDER BY id`,
		[]string{string(entity.StatusPending), string(entity.StatusConfirmed)}, today.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}

	var bookings []entity.Booking
	if err := r.db.SelectContext(ctx, &bookings, r.db.SQLx().Rebind(query), args...); err != nil {
		logger.Error("BookingRepository:ListDue:Error", "error", err)
		return nil, err
	}
	return bookings, nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*entity.Booking, error) {
	return r.getOne(ctx, "id = $1", id)
}

func (r *BookingRepository) GetByRef(ctx context.Context, ref string) (*entity.Booking, error) {
	return r.getOne(ctx, "booking_ref = $1", ref)
}

func (r *BookingRepository) getOne(ctx context.Context, where string, arg any) (*entity.Booking, error) {
	var b entity.Booking
	err := r.db.GetContext(ctx, &b, "SELECT "+bookingColumns+" FROM bookings WHERE "+where, arg)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error("BookingRepository:GetOne:Error", "where", where, "error", err)
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepository) Create(ctx context.Context, b *entity.Booking) error {
	query := `
		INSERT INTO bookings (
			booking_ref, customer_name, customer_email, customer_phone, customer_address,
			castle_id, castle_name, date, end_date, overnight, additional_costs, payment_method,
			total_price, deposit, status, notes, calendar_event_id,
			agreement_signed, agreement_signed_at, agreement_signed_by
		) VALUES (
			:booking_ref, :customer_name, :customer_email, :customer_phone, :customer_address,
			:castle_id, :castle_name, :date, :end_date, :overnight, :additional_costs, :payment_method,
			:total_price, :deposit, :status, :notes, :calendar_event_id,
			:agreement_signed, :agreement_signed_at, :agreement_signed_by
		)
		RETURNING id, created_at, updated_at
	`
	rows, err := r.db.NamedQueryContext(ctx, query, b)
	if err != nil {
		logger.Error("BookingRepository:Create:Error", "booking_ref", b.BookingRef, "error", err)
		return err
	}
	defer rows.Close()

	if rows.Next() {
		return rows.Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	}
	return rows.Err()
}

func (r *BookingRepository) Update(ctx context.Context, b *entity.Booking) error {
	query := `
		UPDATE bookings SET
			customer_name = :customer_name,
			customer_email = :customer_email,
			customer_phone = :customer_phone,
			customer_address = :customer_address,
			castle_id = :castle_id,
			castle_name = :castle_name,
			date = :date,
			end_date = :end_date,
			overnight = :overnight,
			additional_costs = :additional_costs,
			total_price = :total_price,
			deposit = :deposit,
			notes = :notes,
			updated_at = now()
		WHERE id = :id
	`
	result, err := r.db.NamedExecContext(ctx, query, b)
	if err != nil {
		logger.Error("BookingRepository:Update:Error", "id", b.ID, "error", err)
		return err
	}
	return requireRow(result)
}

// UpdateStatus moves a booking from one status to another. It fails with
// ErrStatusChanged if the stored status is no longer from.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, from, to entity.Status) error {
	result, err := r.db.SQLx().ExecContext(ctx,
		`UPDATE bookings SET status = $1, updated_at = now() WHERE id = $2 AND status = $3`,
		to, id, from)
	if err != nil {
		logger.Error("BookingRepository:UpdateStatus:Error", "id", id, "error", err)
		return err
	}
	if err := requireRow(result); err != nil {
		return ErrStatusChanged
	}
	return nil
}

// UpdateStatuses moves the given bookings that still hold status from to
// status to, and returns the ids it actually changed.
func (r *BookingRepository) UpdateStatuses(ctx context.Context, ids []int64, from, to entity.Status) ([]int64, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(`UPDATE bookings SET status = ?, updated_at = now() WHERE status = ? AND id IN (?) RETURNING id`, to, from, ids)
	if err != nil {
		return nil, err
	}
	var updated []int64
	if err := r.db.SelectContext(ctx, &updated, r.db.SQLx().Rebind(query), args...); err != nil {
		logger.Error("BookingRepository:UpdateStatuses:Error", "to", to, "error", err)
		return nil, err
	}
	return updated, nil
}

// Confirm marks a pending booking confirmed and records its calendar event.
func (r *BookingRepository) Confirm(ctx context.Context, id int64, calendarEventID *string) error {
	result, err := r.db.SQLx().ExecContext(ctx, `
		UPDATE bookings
		SET status = $1, calendar_event_id = COALESCE($2, calendar_event_id), updated_at = now()
		WHERE id = $3 AND status = $4`,
		entity.StatusConfirmed, calendarEventID, id, entity.StatusPending)
	if err != nil {
		logger.Error("BookingRepository:Confirm:Error", "id", id, "error", err)
		return err
	}
	if err := requireRow(result); err != nil {
		return ErrStatusChanged
	}
	return nil
}

func (r *BookingRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.SQLx().ExecContext(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		logger.Error("BookingRepository:Delete:Error", "id", id, "error", err)
		return err
	}
	return requireRow(result)
}

func requireRow(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrBookingNotFound
	}
	return nil
}
