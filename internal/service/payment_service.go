package service

import (
	"context"
	"errors"
	"net/http"

	"coworking/internal/auth"
	"coworking/internal/db"
	apperrors "coworking/internal/errors"
	"coworking/internal/logger"
	"coworking/internal/repository"
)

type PaymentService interface {
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
	GetBySessionID(ctx context.Context, actor auth.Principal, sessionID string) (*db.Booking, error)
}

type paymentService struct {
	gateway  PaymentGateway
	payments repository.PaymentRepository
	bookings repository.BookingRepository
	users    repository.UserRepository
	notifier *Notifier
	log      *logger.Logger
}

func NewPaymentService(
	gateway PaymentGateway,
	payments repository.PaymentRepository,
	bookings repository.BookingRepository,
	users repository.UserRepository,
	notifier *Notifier,
	log *logger.Logger,
) PaymentService {
	return &paymentService{
		gateway:  gateway,
		payments: payments,
		bookings: bookings,
		users:    users,
		notifier: notifier,
		log:      log,
	}
}

// HandleWebhook applies a verified provider event. Events for unknown sessions are
// acknowledged so the provider stops retrying them.
func (s *paymentService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	if s.gateway == nil {
		return apperrors.NewHTTPError(http.StatusServiceUnavailable, "Payments are not enabled")
	}

	event, err := s.gateway.ParseWebhook(payload, signature)
	if err != nil {
		if errors.Is(err, ErrInvalidSignature) {
			return apperrors.BadRequest("Invalid webhook signature")
		}
		return apperrors.BadRequest("Invalid webhook payload")
	}

	switch event.Type {
	case EventCheckoutCompleted:
		return s.checkoutCompleted(ctx, event)
	case EventChargeRefunded:
		return s.chargeRefunded(ctx, event)
	default:
		s.log.Debug("Ignoring payment event", "type", event.Type)
		return nil
	}
}

func (s *paymentService) checkoutCompleted(ctx context.Context, event *PaymentEvent) error {
	if event.SessionID == "" {
		s.log.Warn("Ignoring checkout event without session id")
		return nil
	}
	id, err := s.payments.MarkPaidBySessionID(ctx, event.SessionID, event.PaymentIntentID)
	if errors.Is(err, repository.ErrNotFound) {
		s.log.Warn("Checkout completed for unknown session", "session_id", event.SessionID)
		return nil
	}
	if err != nil {
		return apperrors.Wrap(err)
	}

	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return translate(err, "Booking")
	}
	s.log.Info("Booking paid", "booking_id", b.ID, "status", b.Status)

	// Paid after the booking was cancelled: give the money back.
	if b.Status == db.BookingCancelled {
		if event.PaymentIntentID == "" {
			s.log.Error("Cannot refund cancelled booking without payment intent", "booking_id", b.ID)
			return nil
		}
		if err := s.gateway.RefundPayment(ctx, event.PaymentIntentID); err != nil {
			s.log.Error("Refund for cancelled booking failed", "booking_id", b.ID, "error", err)
			return apperrors.Wrap(err)
		}
		if _, err := s.payments.MarkRefundedByPaymentIntentID(ctx, event.PaymentIntentID); err != nil {
			return apperrors.Wrap(err)
		}
		b.PaymentStatus = db.PaymentRefunded
	}

	s.notify(ctx, b)
	return nil
}

// chargeRefunded records refunds made outside the service. Refunds the service issued
// itself already left the booking refunded, so those match nothing and send no notification.
func (s *paymentService) chargeRefunded(ctx context.Context, event *PaymentEvent) error {
	if event.PaymentIntentID == "" {
		s.log.Warn("Ignoring refund event without payment intent")
		return nil
	}
	id, err := s.payments.MarkRefundedByPaymentIntentID(ctx, event.PaymentIntentID)
	if errors.Is(err, repository.ErrNotFound) {
		s.log.Debug("Refund for unknown or already refunded payment intent", "payment_intent_id", event.PaymentIntentID)
		return nil
	}
	if err != nil {
		return apperrors.Wrap(err)
	}

	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return translate(err, "Booking")
	}
	s.log.Info("Booking refunded", "booking_id", b.ID)
	s.notify(ctx, b)
	return nil
}

func (s *paymentService) GetBySessionID(ctx context.Context, actor auth.Principal, sessionID string) (*db.Booking, error) {
	if sessionID == "" {
		return nil, apperrors.BadRequest("session_id is required")
	}
	b, err := s.bookings.GetBySessionID(ctx, sessionID)
	if err != nil {
		return nil, translate(err, "Booking")
	}
	if !actor.CanAccess(b.UserID) {
		return nil, apperrors.Forbidden("You do not have access to this booking")
	}
	return b, nil
}

func (s *paymentService) notify(ctx context.Context, b *db.Booking) {
	if s.notifier == nil {
		return
	}
	u, err := s.users.GetByID(ctx, b.UserID)
	if err != nil {
		s.log.Warn("Skipping booking notification", "booking_id", b.ID, "error", err)
		return
	}
	s.notifier.BookingStatusChanged(b, u)
}
