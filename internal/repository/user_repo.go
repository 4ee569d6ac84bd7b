package repository

import (
	"context"
	"database/sql"
	"fmt"

	"coworking/internal/db"
)

type UserRepository interface {
	Create(ctx context.Context, u *db.User) error
	GetByID(ctx context.Context, id int) (*db.User, error)
	GetByEmail(ctx context.Context, email string) (*db.User, error)
	ExistsByEmail(ctx context.Context, email string, excludeID int) (bool, error)
	List(ctx context.Context) ([]db.User, error)
	Update(ctx context.Context, u *db.User) error
	UpdatePassword(ctx context.Context, id int, passwordHash string) error
	Delete(ctx context.Context, id int) error
	CountActiveBookings(ctx context.Context, id int) (int, error)
}

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, first_name, last_name, email, password_hash, phone, role, created_at, updated_at`

func scanUser(row interface{ Scan(...interface{}) error }, u *db.User) error {
	return row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash, &u.Phone, &u.Role, &u.CreatedAt, &u.UpdatedAt)
}

func (r *userRepository) Create(ctx context.Context, u *db.User) error {
	query := `
		INSERT INTO users (first_name, last_name, email, password_hash, phone, role)
		VALUES ($1, $2, LOWER($3), $4, $5, $6)
		RETURNING id, email, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, u.FirstName, u.LastName, u.Email, u.PasswordHash, u.Phone, u.Role).
		Scan(&u.ID, &u.Email, &u.CreatedAt, &u.UpdatedAt)
	return mapError(err)
}

func (r *userRepository) GetByID(ctx context.Context, id int) (*db.User, error) {
	var u db.User
	if err := scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id), &u); err != nil {
		return nil, mapError(err)
	}
	return &u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*db.User, error) {
	var u db.User
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = LOWER($1)`, email)
	if err := scanUser(row, &u); err != nil {
		return nil, mapError(err)
	}
	return &u, nil
}

func (r *userRepository) ExistsByEmail(ctx context.Context, email string, excludeID int) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = LOWER($1) AND id <> $2)`, email, excludeID).
		Scan(&exists)
	return exists, err
}

func (r *userRepository) List(ctx context.Context) ([]db.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("error querying users: %w", err)
	}
	defer rows.Close()

	users := []db.User{}
	for rows.Next() {
		var u db.User
		if err := scanUser(rows, &u); err != nil {
			return nil, fmt.Errorf("error scanning user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *userRepository) Update(ctx context.Context, u *db.User) error {
	query := `
		UPDATE users
		SET first_name = $2, last_name = $3, email = LOWER($4), phone = $5, role = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING email, updated_at`
	err := r.db.QueryRowContext(ctx, query, u.ID, u.FirstName, u.LastName, u.Email, u.Phone, u.Role).
		Scan(&u.Email, &u.UpdatedAt)
	return mapError(err)
}

func (r *userRepository) UpdatePassword(ctx context.Context, id int, passwordHash string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET password_hash = $2, updated_at = NOW() WHERE id = $1`, id, passwordHash)
	if err != nil {
		return err
	}
	return checkAffected(res)
}

func (r *userRepository) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	return checkAffected(res)
}

func (r *userRepository) CountActiveBookings(ctx context.Context, id int) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bookings WHERE user_id = $1 AND status IN ('pending', 'confirmed')`, id).
		Scan(&n)
	return n, err
}
