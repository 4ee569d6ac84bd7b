package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// PaymentRepository stores Stripe references on bookings and applies payment outcomes.
type PaymentRepository interface {
	SetCheckoutSession(ctx context.Context, bookingID int, sessionID string) error
	MarkPaidBySessionID(ctx context.Context, sessionID, paymentIntentID string) (int, error)
	MarkRefundedByPaymentIntentID(ctx context.Context, paymentIntentID string) (int, error)
}

type paymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) SetCheckoutSession(ctx context.Context, bookingID int, sessionID string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE bookings
		SET stripe_session_id = $2, payment_status = 'pending', updated_at = NOW()
		WHERE id = $1`,
		bookingID, sessionID)
	if err != nil {
		return fmt.Errorf("error saving checkout session for booking %d: %w", bookingID, err)
	}
	return checkAffected(res)
}

// MarkPaidBySessionID records the payment and confirms the booking if it is still pending.
// A booking cancelled in the meantime keeps its status.
func (r *paymentRepository) MarkPaidBySessionID(ctx context.Context, sessionID, paymentIntentID string) (int, error) {
	var id int
	err := r.db.QueryRowContext(ctx, `
		UPDATE bookings
		SET payment_status = 'paid',
			stripe_payment_intent_id = $2,
			status = CASE WHEN status = 'pending' THEN 'confirmed' ELSE status END,
			updated_at = NOW()
		WHERE stripe_session_id = $1 AND $1 <> ''
		RETURNING id`,
		sessionID, paymentIntentID).
		Scan(&id)
	if err != nil {
		return 0, mapError(err)
	}
	return id, nil
}

// MarkRefundedByPaymentIntentID cancels the booking paid with paymentIntentID unless it is
// already refunded. An empty id never matches.
func (r *paymentRepository) MarkRefundedByPaymentIntentID(ctx context.Context, paymentIntentID string) (int, error) {
	var id int
	err := r.db.QueryRowContext(ctx, `
		UPDATE bookings
		SET status = 'cancelled', payment_status = 'refunded', updated_at = NOW()
		WHERE stripe_payment_intent_id = $1 AND $1 <> '' AND payment_status <> 'refunded'
		RETURNING id`,
		paymentIntentID).
		Scan(&id)
	if err != nil {
		return 0, mapError(err)
	}
	return id, nil
}
