package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"coworking/internal/db"
	"coworking/internal/entities"
)

type LocationRepository interface {
	Create(ctx context.Context, l *db.Location) error
	List(ctx context.Context, filter entities.LocationFilter) ([]db.Location, error)
	GetByID(ctx context.Context, id int) (*db.Location, error)
	ExistsByName(ctx context.Context, name string, excludeID int) (bool, error)
	Update(ctx context.Context, l *db.Location) error
	Delete(ctx context.Context, id int) error
	CountSpaces(ctx context.Context, id int) (int, error)
}

type locationRepository struct {
	db *sql.DB
}

func NewLocationRepository(db *sql.DB) LocationRepository {
	return &locationRepository{db: db}
}

const locationColumns = `id, name, address, city, country, postal_code, description, created_at, updated_at`

func scanLocation(row interface{ Scan(...interface{}) error }, l *db.Location) error {
	return row.Scan(&l.ID, &l.Name, &l.Address, &l.City, &l.Country, &l.PostalCode, &l.Description, &l.CreatedAt, &l.UpdatedAt)
}

func (r *locationRepository) Create(ctx context.Context, l *db.Location) error {
	query := `
		INSERT INTO locations (name, address, city, country, postal_code, description)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, l.Name, l.Address, l.City, l.Country, l.PostalCode, l.Description).
		Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt)
	return mapError(err)
}

func (r *locationRepository) List(ctx context.Context, filter entities.LocationFilter) ([]db.Location, error) {
	var where whereBuilder
	if filter.City != "" {
		where.add("LOWER(city) =", strings.ToLower(filter.City))
	}
	query := `SELECT ` + locationColumns + ` FROM locations` + where.String() + ` ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query, where.args...)
	if err != nil {
		return nil, fmt.Errorf("error querying locations: %w", err)
	}
	defer rows.Close()

	locations := []db.Location{}
	for rows.Next() {
		var l db.Location
		if err := scanLocation(rows, &l); err != nil {
			return nil, fmt.Errorf("error scanning location: %w", err)
		}
		locations = append(locations, l)
	}
	return locations, rows.Err()
}

func (r *locationRepository) GetByID(ctx context.Context, id int) (*db.Location, error) {
	var l db.Location
	row := r.db.QueryRowContext(ctx, `SELECT `+locationColumns+` FROM locations WHERE id = $1`, id)
	if err := scanLocation(row, &l); err != nil {
		return nil, mapError(err)
	}
	return &l, nil
}

func (r *locationRepository) ExistsByName(ctx context.Context, name string, excludeID int) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM locations WHERE LOWER(name) = LOWER($1) AND id <> $2)`, name, excludeID).
		Scan(&exists)
	return exists, err
}

func (r *locationRepository) Update(ctx context.Context, l *db.Location) error {
	query := `
		UPDATE locations
		SET name = $2, address = $3, city = $4, country = $5, postal_code = $6, description = $7, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`
	err := r.db.QueryRowContext(ctx, query, l.ID, l.Name, l.Address, l.City, l.Country, l.PostalCode, l.Description).
		Scan(&l.UpdatedAt)
	return mapError(err)
}

func (r *locationRepository) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM locations WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	return checkAffected(res)
}

func (r *locationRepository) CountSpaces(ctx context.Context, id int) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM spaces WHERE location_id = $1`, id).Scan(&n)
	return n, err
}
