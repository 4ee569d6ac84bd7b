package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"coworking/internal/db"
	"coworking/internal/entities"
)

type SpaceRepository interface {
	Create(ctx context.Context, s *db.Space) error
	List(ctx context.Context, filter entities.SpaceFilter) ([]db.Space, error)
	GetByID(ctx context.Context, id int) (*db.Space, error)
	ExistsByName(ctx context.Context, locationID int, name string, excludeID int) (bool, error)
	Update(ctx context.Context, s *db.Space) error
	Delete(ctx context.Context, id int) error
	CountActiveBookings(ctx context.Context, id int) (int, error)

	ListServices(ctx context.Context, spaceID int) ([]db.AdditionalService, error)
	AssociatedServiceIDs(ctx context.Context, spaceID int, serviceIDs []int) ([]int, error)
	AddServices(ctx context.Context, spaceID int, serviceIDs []int) error
	RemoveService(ctx context.Context, spaceID, serviceID int) error
}

type spaceRepository struct {
	db *sql.DB
}

func NewSpaceRepository(db *sql.DB) SpaceRepository {
	return &spaceRepository{db: db}
}

const spaceSelect = `
	SELECT s.id, s.location_id, s.space_type_id, s.name, s.description, s.capacity, s.price_per_hour,
		s.opening_time, s.closing_time, s.available_days, s.is_active, s.created_at, s.updated_at,
		l.name AS location_name, st.type_name AS space_type_name
	FROM spaces s
	JOIN locations l ON l.id = s.location_id
	JOIN space_types st ON st.id = s.space_type_id`

func scanSpace(row interface{ Scan(...interface{}) error }, s *db.Space) error {
	var days pq.Int64Array
	err := row.Scan(
		&s.ID, &s.LocationID, &s.SpaceTypeID, &s.Name, &s.Description, &s.Capacity, &s.PricePerHour,
		&s.OpeningTime, &s.ClosingTime, &days, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
		&s.LocationName, &s.SpaceTypeName,
	)
	if err != nil {
		return err
	}
	s.AvailableDays = toInts(days)
	return nil
}

func (r *spaceRepository) Create(ctx context.Context, s *db.Space) error {
	query := `
		INSERT INTO spaces
		(location_id, space_type_id, name, description, capacity, price_per_hour, opening_time, closing_time, available_days, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query,
		s.LocationID,
		s.SpaceTypeID,
		s.Name,
		s.Description,
		s.Capacity,
		s.PricePerHour,
		s.OpeningTime,
		s.ClosingTime,
		pq.Array(toInt64s(s.AvailableDays)),
		s.IsActive,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	return mapError(err)
}

func (r *spaceRepository) List(ctx context.Context, filter entities.SpaceFilter) ([]db.Space, error) {
	var where whereBuilder
	if filter.LocationID > 0 {
		where.add("s.location_id =", filter.LocationID)
	}
	if filter.SpaceTypeID > 0 {
		where.add("s.space_type_id =", filter.SpaceTypeID)
	}
	if filter.MinCapacity > 0 {
		where.add("s.capacity >=", filter.MinCapacity)
	}
	if filter.Active != nil {
		where.add("s.is_active =", *filter.Active)
	}
	query := spaceSelect + where.String() + ` ORDER BY l.name, s.name`

	rows, err := r.db.QueryContext(ctx, query, where.args...)
	if err != nil {
		return nil, fmt.Errorf("error querying spaces: %w", err)
	}
	defer rows.Close()

	spaces := []db.Space{}
	for rows.Next() {
		var s db.Space
		if err := scanSpace(rows, &s); err != nil {
			return nil, fmt.Errorf("error scanning space: %w", err)
		}
		spaces = append(spaces, s)
	}
	return spaces, rows.Err()
}

func (r *spaceRepository) GetByID(ctx context.Context, id int) (*db.Space, error) {
	var s db.Space
	if err := scanSpace(r.db.QueryRowContext(ctx, spaceSelect+` WHERE s.id = $1`, id), &s); err != nil {
		return nil, mapError(err)
	}
	return &s, nil
}

func (r *spaceRepository) ExistsByName(ctx context.Context, locationID int, name string, excludeID int) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM spaces WHERE location_id = $1 AND LOWER(name) = LOWER($2) AND id <> $3)`,
		locationID, name, excludeID).
		Scan(&exists)
	return exists, err
}

func (r *spaceRepository) Update(ctx context.Context, s *db.Space) error {
	query := `
		UPDATE spaces
		SET location_id = $2, space_type_id = $3, name = $4, description = $5, capacity = $6, price_per_hour = $7,
			opening_time = $8, closing_time = $9, available_days = $10, is_active = $11, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`
	err := r.db.QueryRowContext(ctx, query,
		s.ID,
		s.LocationID,
		s.SpaceTypeID,
		s.Name,
		s.Description,
		s.Capacity,
		s.PricePerHour,
		s.OpeningTime,
		s.ClosingTime,
		pq.Array(toInt64s(s.AvailableDays)),
		s.IsActive,
	).Scan(&s.UpdatedAt)
	return mapError(err)
}

func (r *spaceRepository) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM spaces WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	return checkAffected(res)
}

func (r *spaceRepository) CountActiveBookings(ctx context.Context, id int) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bookings WHERE space_id = $1 AND status IN ('pending', 'confirmed')`, id).
		Scan(&n)
	return n, err
}

func (r *spaceRepository) ListServices(ctx context.Context, spaceID int) ([]db.AdditionalService, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT a.id, a.service_name, a.description, a.price, a.created_at, a.updated_at
		FROM additional_services a
		JOIN space_services ss ON ss.service_id = a.id
		WHERE ss.space_id = $1
		ORDER BY a.service_name`, spaceID)
	if err != nil {
		return nil, fmt.Errorf("error querying space services: %w", err)
	}
	defer rows.Close()

	services := []db.AdditionalService{}
	for rows.Next() {
		var s db.AdditionalService
		if err := scanService(rows, &s); err != nil {
			return nil, fmt.Errorf("error scanning space service: %w", err)
		}
		services = append(services, s)
	}
	return services, rows.Err()
}

// AssociatedServiceIDs returns the subset of serviceIDs already linked to the space.
func (r *spaceRepository) AssociatedServiceIDs(ctx context.Context, spaceID int, serviceIDs []int) ([]int, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT service_id FROM space_services WHERE space_id = $1 AND service_id = ANY($2) ORDER BY service_id`,
		spaceID, pq.Array(toInt64s(serviceIDs)))
	if err != nil {
		return nil, fmt.Errorf("error querying space services: %w", err)
	}
	defer rows.Close()

	ids := []int{}
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning service ID: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *spaceRepository) AddServices(ctx context.Context, spaceID int, serviceIDs []int) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		for _, id := range serviceIDs {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO space_services (space_id, service_id) VALUES ($1, $2)`, spaceID, id); err != nil {
				return mapError(err)
			}
		}
		return nil
	})
}

func (r *spaceRepository) RemoveService(ctx context.Context, spaceID, serviceID int) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM space_services WHERE space_id = $1 AND service_id = $2`, spaceID, serviceID)
	if err != nil {
		return mapError(err)
	}
	return checkAffected(res)
}
