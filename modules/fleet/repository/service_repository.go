package repository

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"strings"

	"castle-admin/core/database"
	"castle-admin/core/logger"
	"castle-admin/core/params"
	"castle-admin/modules/fleet/entity"
)

var ErrServiceNotFound = stderrors.New("service not found")

const serviceColumns = `
	id, name, category, size, price, description, image_url,
	maintenance_status, maintenance_notes, maintenance_start_date, maintenance_end_date, maintenance_event_id,
	created_at, updated_at`

type ServiceRepositoryInterface interface {
	List(ctx context.Context, q params.QueryParams) (*entity.PaginatedServiceEntity, error)
	ListAll(ctx context.Context) ([]entity.Service, error)
	GetByID(ctx context.Context, id int64) (*entity.Service, error)
	Create(ctx context.Context, s *entity.Service) error
	Update(ctx context.Context, s *entity.Service) error
	SetMaintenance(ctx context.Context, s *entity.Service) error
	SetImage(ctx context.Context, id int64, imageURL string) error
	Delete(ctx context.Context, id int64) error
}

type ServiceRepository struct {
	db database.Database
}

func NewServiceRepository(db database.Database) *ServiceRepository {
	return &ServiceRepository{db: db}
}

func (r *ServiceRepository) List(ctx context.Context, q params.QueryParams) (*entity.PaginatedServiceEntity, error) {
	var conditions []string
	var args []any
	argIndex := 1

	if q.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(name ILIKE $%[1]d OR category ILIKE $%[1]d)", argIndex))
		args = append(args, "%"+q.Search+"%")
		argIndex++
	}
	if q.Status != "" && q.Status != "all" {
		conditions = append(conditions, fmt.Sprintf("maintenance_status = $%d", argIndex))
		args = append(args, q.Status)
		argIndex++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	var totalItems int
	if err := r.db.GetContext(ctx, &totalItems, "SELECT COUNT(*) FROM services"+whereClause, args...); err != nil {
		logger.Error("ServiceRepository:List:Count:Error", "error", err)
		return nil, err
	}

	query := "SELECT " + serviceColumns + " FROM services" + whereClause +
		fmt.Sprintf(" ORDER BY name, id LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, q.PageSize, q.Offset())

	var items []entity.Service
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		logger.Error("ServiceRepository:List:Select:Error", "error", err)
		return nil, err
	}

	return &entity.PaginatedServiceEntity{
		Items:      items,
		TotalItems: totalItems,
		PageNumber: q.PageNumber,
		PageSize:   q.PageSize,
	}, nil
}

// ListAll returns the whole catalog, used for castle matching and pricing.
func (r *ServiceRepository) ListAll(ctx context.Context) ([]entity.Service, error) {
	var items []entity.Service
	if err := r.db.SelectContext(ctx, &items, "SELECT "+serviceColumns+" FROM services ORDER BY id"); err != nil {
		logger.Error("ServiceRepository:ListAll:Error", "error", err)
		return nil, err
	}
	return items, nil
}

func (r *ServiceRepository) GetByID(ctx context.Context, id int64) (*entity.Service, error) {
	var s entity.Service
	err := r.db.GetContext(ctx, &s, "SELECT "+serviceColumns+" FROM services WHERE id = $1", id)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error("ServiceRepository:GetByID:Error", "id", id, "error", err)
		return nil, err
	}
	return &s, nil
}

func (r *ServiceRepository) Create(ctx context.Context, s *entity.Service) error {
	query := `
		INSERT INTO services (name, category, size, price, description, image_url, maintenance_status)
		VALUES (:name, :category, :size, :price, :description, :image_url, :maintenance_status)
		RETURNING id, created_at, updated_at
	`
	rows, err := r.db.NamedQueryContext(ctx, query, s)
	if err != nil {
		logger.Error("ServiceRepository:Create:Error", "name", s.Name, "error", err)
		return err
	}
	defer rows.Close()

	if rows.Next() {
		return rows.Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	}
	return rows.Err()
}

func (r *ServiceRepository) Update(ctx context.Context, s *entity.Service) error {
	query := `
		UPDATE services SET
			name = :name,
			category = :category,
			size = :size,
			price = :price,
			description = :description,
			updated_at = now()
		WHERE id = :id
	`
	result, err := r.db.NamedExecContext(ctx, query, s)
	if err != nil {
		logger.Error("ServiceRepository:Update:Error", "id", s.ID, "error", err)
		return err
	}
	return requireRow(result)
}

func (r *ServiceRepository) SetMaintenance(ctx context.Context, s *entity.Service) error {
	query := `
		UPDATE services SET
			maintenance_status = :maintenance_status,
			maintenance_notes = :maintenance_notes,
			maintenance_start_date = :maintenance_start_date,
			maintenance_end_date = :maintenance_end_date,
			maintenance_event_id = :maintenance_event_id,
			updated_at = now()
		WHERE id = :id
	`
	result, err := r.db.NamedExecContext(ctx, query, s)
	if err != nil {
		logger.Error("ServiceRepository:SetMaintenance:Error", "id", s.ID, "error", err)
		return err
	}
	return requireRow(result)
}

func (r *ServiceRepository) SetImage(ctx context.Context, id int64, imageURL string) error {
	result, err := r.db.SQLx().ExecContext(ctx,
		`UPDATE services SET image_url = $1, updated_at = now() WHERE id = $2`, imageURL, id)
	if err != nil {
		logger.Error("ServiceRepository:SetImage:Error", "id", id, "error", err)
		return err
	}
	return requireRow(result)
}

func (r *ServiceRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.SQLx().ExecContext(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		logger.Error("ServiceRepository:Delete:Error", "id", id, "error", err)
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
		return ErrServiceNotFound
	}
	return nil
}
