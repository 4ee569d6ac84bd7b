package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"coworking/internal/db"
)

type AdditionalServiceRepository interface {
	Create(ctx context.Context, s *db.AdditionalService) error
	List(ctx context.Context) ([]db.AdditionalService, error)
	GetByID(ctx context.Context, id int) (*db.AdditionalService, error)
	GetByIDs(ctx context.Context, ids []int) ([]db.AdditionalService, error)
	ExistsByName(ctx context.Context, name string, excludeID int) (bool, error)
	Update(ctx context.Context, s *db.AdditionalService) error
	Delete(ctx context.Context, id int) error
	CountSpaces(ctx context.Context, id int) (int, error)
}

type additionalServiceRepository struct {
	db *sql.DB
}

func NewAdditionalServiceRepository(db *sql.DB) AdditionalServiceRepository {
	return &additionalServiceRepository{db: db}
}

const serviceColumns = `id, service_name, description, price, created_at, updated_at`

func scanService(row interface{ Scan(...interface{}) error }, s *db.AdditionalService) error {
	return row.Scan(&s.ID, &s.ServiceName, &s.Description, &s.Price, &s.CreatedAt, &s.UpdatedAt)
}

func (r *additionalServiceRepository) Create(ctx context.Context, s *db.AdditionalService) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO additional_services (service_name, description, price) VALUES ($1, $2, $3) RETURNING id, created_at, updated_at`,
		s.ServiceName, s.Description, s.Price).
		Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	return mapError(err)
}

func (r *additionalServiceRepository) List(ctx context.Context) ([]db.AdditionalService, error) {
	return r.query(ctx, `SELECT `+serviceColumns+` FROM additional_services ORDER BY service_name`)
}

func (r *additionalServiceRepository) GetByID(ctx context.Context, id int) (*db.AdditionalService, error) {
	var s db.AdditionalService
	row := r.db.QueryRowContext(ctx, `SELECT `+serviceColumns+` FROM additional_services WHERE id = $1`, id)
	if err := scanService(row, &s); err != nil {
		return nil, mapError(err)
	}
	return &s, nil
}

func (r *additionalServiceRepository) GetByIDs(ctx context.Context, ids []int) ([]db.AdditionalService, error) {
	if len(ids) == 0 {
		return []db.AdditionalService{}, nil
	}
	return r.query(ctx,
		`SELECT `+serviceColumns+` FROM additional_services WHERE id = ANY($1) ORDER BY id`,
		pq.Array(toInt64s(ids)))
}

func (r *additionalServiceRepository) query(ctx context.Context, query string, args ...interface{}) ([]db.AdditionalService, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying additional services: %w", err)
	}
	defer rows.Close()

	services := []db.AdditionalService{}
	for rows.Next() {
		var s db.AdditionalService
		if err := scanService(rows, &s); err != nil {
			return nil, fmt.Errorf("error scanning additional service: %w", err)
		}
		services = append(services, s)
	}
	return services, rows.Err()
}

func (r *additionalServiceRepository) ExistsByName(ctx context.Context, name string, excludeID int) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM additional_services WHERE LOWER(service_name) = LOWER($1) AND id <> $2)`, name, excludeID).
		Scan(&exists)
	return exists, err
}

func (r *additionalServiceRepository) Update(ctx context.Context, s *db.AdditionalService) error {
	err := r.db.QueryRowContext(ctx,
		`UPDATE additional_services SET service_name = $2, description = $3, price = $4, updated_at = NOW() WHERE id = $1 RETURNING updated_at`,
		s.ID, s.ServiceName, s.Description, s.Price).
		Scan(&s.UpdatedAt)
	return mapError(err)
}

func (r *additionalServiceRepository) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM additional_services WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	return checkAffected(res)
}

func (r *additionalServiceRepository) CountSpaces(ctx context.Context, id int) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM space_services WHERE service_id = $1`, id).Scan(&n)
	return n, err
}
