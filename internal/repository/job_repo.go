package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"
)

type JobRepository interface {
	GetConfirmedBookingIDsPastEnd(ctx context.Context, today, now string) ([]int, error)
	GetAwaitingPaymentBookingIDsCreatedBefore(ctx context.Context, before time.Time) ([]int, error)
	UpdateBookingStatuses(ctx context.Context, ids []int, newStatus string) (int64, error)
}

type jobRepository struct {
	db *sql.DB
}

func NewJobRepository(db *sql.DB) JobRepository {
	return &jobRepository{db: db}
}

// GetConfirmedBookingIDsPastEnd finds confirmed bookings whose date is before today,
// or whose end time has passed today. today is YYYY-MM-DD and now is HH:MM.
func (r *jobRepository) GetConfirmedBookingIDsPastEnd(ctx context.Context, today, now string) ([]int, error) {
	return r.ids(ctx, `
		SELECT id FROM bookings
		WHERE status = 'confirmed'
			AND (booking_date < $1 OR (booking_date = $1 AND end_time <= $2))
		ORDER BY id`, today, now)
}

// GetAwaitingPaymentBookingIDsCreatedBefore finds pending bookings whose checkout was never completed.
func (r *jobRepository) GetAwaitingPaymentBookingIDsCreatedBefore(ctx context.Context, before time.Time) ([]int, error) {
	return r.ids(ctx, `
		SELECT id FROM bookings
		WHERE status = 'pending' AND payment_status = 'pending' AND created_at < $1
		ORDER BY id`, before)
}

func (r *jobRepository) ids(ctx context.Context, query string, args ...interface{}) ([]int, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying booking IDs: %w", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning booking ID: %w", err)
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating rows: %w", err)
	}
	return ids, nil
}

func (r *jobRepository) UpdateBookingStatuses(ctx context.Context, ids []int, newStatus string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result, err := r.db.ExecContext(ctx,
		`UPDATE bookings SET status = $1, updated_at = NOW() WHERE id = ANY($2)`,
		newStatus, pq.Array(toInt64s(ids)))
	if err != nil {
		return 0, fmt.Errorf("error updating booking statuses: %w", err)
	}
	return result.RowsAffected()
}
