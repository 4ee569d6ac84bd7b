package repository

import (
	"context"
	"database/sql"
	"fmt"

	"coworking/internal/db"
)

type SpaceTypeRepository interface {
	Create(ctx context.Context, st *db.SpaceType) error
	List(ctx context.Context) ([]db.SpaceType, error)
	GetByID(ctx context.Context, id int) (*db.SpaceType, error)
	ExistsByName(ctx context.Context, name string, excludeID int) (bool, error)
	Update(ctx context.Context, st *db.SpaceType) error
	Delete(ctx context.Context, id int) error
	CountSpaces(ctx context.Context, id int) (int, error)
}

type spaceTypeRepository struct {
	db *sql.DB
}

func NewSpaceTypeRepository(db *sql.DB) SpaceTypeRepository {
	return &spaceTypeRepository{db: db}
}

func (r *spaceTypeRepository) Create(ctx context.Context, st *db.SpaceType) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO space_types (type_name, description) VALUES ($1, $2) RETURNING id, created_at, updated_at`,
		st.TypeName, st.Description).
		Scan(&st.ID, &st.CreatedAt, &st.UpdatedAt)
	return mapError(err)
}

func (r *spaceTypeRepository) List(ctx context.Context) ([]db.SpaceType, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, type_name, description, created_at, updated_at FROM space_types ORDER BY type_name`)
	if err != nil {
		return nil, fmt.Errorf("error querying space types: %w", err)
	}
	defer rows.Close()

	types := []db.SpaceType{}
	for rows.Next() {
		var st db.SpaceType
		if err := rows.Scan(&st.ID, &st.TypeName, &st.Description, &st.CreatedAt, &st.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning space type: %w", err)
		}
		types = append(types, st)
	}
	return types, rows.Err()
}

func (r *spaceTypeRepository) GetByID(ctx context.Context, id int) (*db.SpaceType, error) {
	var st db.SpaceType
	err := r.db.QueryRowContext(ctx,
		`SELECT id, type_name, description, created_at, updated_at FROM space_types WHERE id = $1`, id).
		Scan(&st.ID, &st.TypeName, &st.Description, &st.CreatedAt, &st.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return &st, nil
}

func (r *spaceTypeRepository) ExistsByName(ctx context.Context, name string, excludeID int) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM space_types WHERE LOWER(type_name) = LOWER($1) AND id <> $2)`, name, excludeID).
		Scan(&exists)
	return exists, err
}

func (r *spaceTypeRepository) Update(ctx context.Context, st *db.SpaceType) error {
	err := r.db.QueryRowContext(ctx,
		`UPDATE space_types SET type_name = $2, description = $3, updated_at = NOW() WHERE id = $1 RETURNING updated_at`,
		st.ID, st.TypeName, st.Description).
		Scan(&st.UpdatedAt)
	return mapError(err)
}

func (r *spaceTypeRepository) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM space_types WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	return checkAffected(res)
}

func (r *spaceTypeRepository) CountSpaces(ctx context.Context, id int) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM spaces WHERE space_type_id = $1`, id).Scan(&n)
	return n, err
}
