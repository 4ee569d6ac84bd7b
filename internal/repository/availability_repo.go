package repository

import (
	"context"
	"database/sql"
	"fmt"

	"coworking/internal/db"
	"coworking/internal/entities"
)

type AvailabilityRepository interface {
	Create(ctx context.Context, a *db.Availability) error
	List(ctx context.Context, filter entities.AvailabilityFilter) ([]db.Availability, error)
	GetByID(ctx context.Context, id int) (*db.Availability, error)
	ListForSpaceDate(ctx context.Context, spaceID int, date string) ([]db.Availability, error)
	Update(ctx context.Context, a *db.Availability) error
	Delete(ctx context.Context, id int) error
	CountOverlappingBookings(ctx context.Context, spaceID int, date, start, end string) (int, error)
}

type availabilityRepository struct {
	db *sql.DB
}

func NewAvailabilityRepository(db *sql.DB) AvailabilityRepository {
	return &availabilityRepository{db: db}
}

const availabilityColumns = `id, space_id, to_char(date, 'YYYY-MM-DD'), start_time, end_time, is_available, notes, created_at, updated_at`

func scanAvailability(row interface{ Scan(...interface{}) error }, a *db.Availability) error {
	return row.Scan(&a.ID, &a.SpaceID, &a.Date, &a.StartTime, &a.EndTime, &a.IsAvailable, &a.Notes, &a.CreatedAt, &a.UpdatedAt)
}

func (r *availabilityRepository) Create(ctx context.Context, a *db.Availability) error {
	query := `
		INSERT INTO availability (space_id, date, start_time, end_time, is_available, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, a.SpaceID, a.Date, a.StartTime, a.EndTime, a.IsAvailable, a.Notes).
		Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	return mapError(err)
}

func (r *availabilityRepository) List(ctx context.Context, filter entities.AvailabilityFilter) ([]db.Availability, error) {
	var where whereBuilder
	if filter.SpaceID > 0 {
		where.add("space_id =", filter.SpaceID)
	}
	if filter.Date != "" {
		where.add("date =", filter.Date)
	}
	return r.query(ctx, `SELECT `+availabilityColumns+` FROM availability`+where.String()+` ORDER BY date, start_time`, where.args...)
}

func (r *availabilityRepository) ListForSpaceDate(ctx context.Context, spaceID int, date string) ([]db.Availability, error) {
	return r.query(ctx,
		`SELECT `+availabilityColumns+` FROM availability WHERE space_id = $1 AND date = $2 ORDER BY start_time`,
		spaceID, date)
}

func (r *availabilityRepository) query(ctx context.Context, query string, args ...interface{}) ([]db.Availability, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying availability: %w", err)
	}
	defer rows.Close()

	blocks := []db.Availability{}
	for rows.Next() {
		var a db.Availability
		if err := scanAvailability(rows, &a); err != nil {
			return nil, fmt.Errorf("error scanning availability: %w", err)
		}
		blocks = append(blocks, a)
	}
	return blocks, rows.Err()
}

func (r *availabilityRepository) GetByID(ctx context.Context, id int) (*db.Availability, error) {
	var a db.Availability
	row := r.db.QueryRowContext(ctx, `SELECT `+availabilityColumns+` FROM availability WHERE id = $1`, id)
	if err := scanAvailability(row, &a); err != nil {
		return nil, mapError(err)
	}
	return &a, nil
}

func (r *availabilityRepository) Update(ctx context.Context, a *db.Availability) error {
	query := `
		UPDATE availability
		SET date = $2, start_time = $3, end_time = $4, is_available = $5, notes = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`
	err := r.db.QueryRowContext(ctx, query, a.ID, a.Date, a.StartTime, a.EndTime, a.IsAvailable, a.Notes).
		Scan(&a.UpdatedAt)
	return mapError(err)
}

func (r *availabilityRepository) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM availability WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	return checkAffected(res)
}

// CountOverlappingBookings counts pending or confirmed bookings intersecting [start, end) on the date.
func (r *availabilityRepository) CountOverlappingBookings(ctx context.Context, spaceID int, date, start, end string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM bookings
		WHERE space_id = $1 AND booking_date = $2
			AND status IN ('pending', 'confirmed')
			AND start_time < $4 AND end_time > $3`,
		spaceID, date, start, end).
		Scan(&n)
	return n, err
}
