package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"coworking/internal/db"
	"coworking/internal/entities"
)

type BookingRepository interface {
	Create(ctx context.Context, b *db.Booking, services []db.BookingService) error
	GetByID(ctx context.Context, id int) (*db.Booking, error)
	GetBySessionID(ctx context.Context, sessionID string) (*db.Booking, error)
	List(ctx context.Context, filter entities.BookingFilter) ([]db.Booking, error)
	ListActiveForSpaceDate(ctx context.Context, spaceID int, date string) ([]db.Booking, error)
	UpdateStatus(ctx context.Context, id int, status, paymentStatus string) error
	Delete(ctx context.Context, id int) error
}

type bookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) BookingRepository {
	return &bookingRepository{db: db}
}

const bookingSelect = `
	SELECT b.id, b.code, b.user_id, b.space_id, to_char(b.booking_date, 'YYYY-MM-DD'), b.start_time, b.end_time,
		b.status, b.total_price, b.notes, b.payment_status, b.stripe_session_id, b.stripe_payment_intent_id,
		b.created_at, b.updated_at, s.name AS space_name, u.email AS user_email
	FROM bookings b
	JOIN spaces s ON s.id = b.space_id
	JOIN users u ON u.id = b.user_id`

func scanBooking(row interface{ Scan(...interface{}) error }, b *db.Booking) error {
	return row.Scan(
		&b.ID, &b.Code, &b.UserID, &b.SpaceID, &b.BookingDate, &b.StartTime, &b.EndTime,
		&b.Status, &b.TotalPrice, &b.Notes, &b.PaymentStatus, &b.StripeSessionID, &b.StripePaymentIntentID,
		&b.CreatedAt, &b.UpdatedAt, &b.SpaceName, &b.UserEmail,
	)
}

// Create inserts the booking and its services in one transaction. The space row is locked
// first so two requests for the same space serialize, and the overlap check is repeated
// under that lock.
func (r *bookingRepository) Create(ctx context.Context, b *db.Booking, services []db.BookingService) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		var spaceID int
		if err := tx.QueryRowContext(ctx, `SELECT id FROM spaces WHERE id = $1 FOR UPDATE`, b.SpaceID).Scan(&spaceID); err != nil {
			return mapError(err)
		}

		var conflicts int
		err := tx.QueryRowContext(ctx, `
			SELECT COUNT(*) FROM bookings
			WHERE space_id = $1 AND booking_date = $2
				AND status IN ('pending', 'confirmed')
				AND start_time < $4 AND end_time > $3`,
			b.SpaceID, b.BookingDate, b.StartTime, b.EndTime).
			Scan(&conflicts)
		if err != nil {
			return fmt.Errorf("error checking booking conflicts: %w", err)
		}
		if conflicts > 0 {
			return ErrSlotTaken
		}

		query := `
			INSERT INTO bookings
			(code, user_id, space_id, booking_date, start_time, end_time, status, total_price, notes, payment_status)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING id, created_at, updated_at`
		err = tx.QueryRowContext(ctx, query,
			b.Code,
			b.UserID,
			b.SpaceID,
			b.BookingDate,
			b.StartTime,
			b.EndTime,
			b.Status,
			b.TotalPrice,
			b.Notes,
			b.PaymentStatus,
		).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
		if err != nil {
			return mapError(err)
		}

		for _, s := range services {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO booking_services (booking_id, service_id, price) VALUES ($1, $2, $3)`,
				b.ID, s.ServiceID, s.Price); err != nil {
				return mapError(err)
			}
		}
		b.Services = services
		return nil
	})
}

func (r *bookingRepository) GetByID(ctx context.Context, id int) (*db.Booking, error) {
	return r.getOne(ctx, bookingSelect+` WHERE b.id = $1`, id)
}

func (r *bookingRepository) GetBySessionID(ctx context.Context, sessionID string) (*db.Booking, error) {
	return r.getOne(ctx, bookingSelect+` WHERE b.stripe_session_id = $1`, sessionID)
}

func (r *bookingRepository) getOne(ctx context.Context, query string, arg interface{}) (*db.Booking, error) {
	var b db.Booking
	if err := scanBooking(r.db.QueryRowContext(ctx, query, arg), &b); err != nil {
		return nil, mapError(err)
	}
	services, err := r.loadServices(ctx, []int{b.ID})
	if err != nil {
		return nil, err
	}
	b.Services = services[b.ID]
	return &b, nil
}

func (r *bookingRepository) loadServices(ctx context.Context, bookingIDs []int) (map[int][]db.BookingService, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT bs.booking_id, bs.service_id, a.service_name, bs.price
		FROM booking_services bs
		JOIN additional_services a ON a.id = bs.service_id
		WHERE bs.booking_id = ANY($1)
		ORDER BY bs.booking_id, a.service_name`, pq.Array(toInt64s(bookingIDs)))
	if err != nil {
		return nil, fmt.Errorf("error querying booking services: %w", err)
	}
	defer rows.Close()

	out := map[int][]db.BookingService{}
	for rows.Next() {
		var bookingID int
		var s db.BookingService
		if err := rows.Scan(&bookingID, &s.ServiceID, &s.ServiceName, &s.Price); err != nil {
			return nil, fmt.Errorf("error scanning booking service: %w", err)
		}
		out[bookingID] = append(out[bookingID], s)
	}
	return out, rows.Err()
}

func (r *bookingRepository) List(ctx context.Context, filter entities.BookingFilter) ([]db.Booking, error) {
	var where whereBuilder
	if filter.UserID > 0 {
		where.add("b.user_id =", filter.UserID)
	}
	if filter.SpaceID > 0 {
		where.add("b.space_id =", filter.SpaceID)
	}
	if filter.Status != "" {
		where.add("b.status =", filter.Status)
	}
	if filter.Date != "" {
		where.add("b.booking_date =", filter.Date)
	}
	return r.query(ctx, bookingSelect+where.String()+` ORDER BY b.booking_date DESC, b.start_time DESC`, where.args...)
}

func (r *bookingRepository) ListActiveForSpaceDate(ctx context.Context, spaceID int, date string) ([]db.Booking, error) {
	return r.query(ctx,
		bookingSelect+` WHERE b.space_id = $1 AND b.booking_date = $2 AND b.status IN ('pending', 'confirmed') ORDER BY b.start_time`,
		spaceID, date)
}

func (r *bookingRepository) query(ctx context.Context, query string, args ...interface{}) ([]db.Booking, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying bookings: %w", err)
	}
	defer rows.Close()

	bookings := []db.Booking{}
	for rows.Next() {
		var b db.Booking
		if err := scanBooking(rows, &b); err != nil {
			return nil, fmt.Errorf("error scanning booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id int, status, paymentStatus string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE bookings SET status = $2, payment_status = $3, updated_at = NOW() WHERE id = $1`,
		id, status, paymentStatus)
	if err != nil {
		return fmt.Errorf("error updating booking %d status: %w", id, err)
	}
	return checkAffected(res)
}

func (r *bookingRepository) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	return checkAffected(res)
}
