package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"coworking/internal/auth"
	"coworking/internal/db"
	"coworking/internal/entities"
	apperrors "coworking/internal/errors"
	"coworking/internal/logger"
	"coworking/internal/repository"
	"coworking/internal/utils"
	"coworking/internal/validator"
)

const maxCodeAttempts = 3

type BookingService interface {
	Check(ctx context.Context, req entities.BookingRequest) (*entities.BookingCheckResponse, error)
	Create(ctx context.Context, actor auth.Principal, req entities.BookingRequest) (*entities.BookingResult, error)
	List(ctx context.Context, actor auth.Principal, filter entities.BookingFilter) ([]db.Booking, error)
	Get(ctx context.Context, actor auth.Principal, id int) (*db.Booking, error)
	Cancel(ctx context.Context, actor auth.Principal, id int) (*db.Booking, error)
	Confirm(ctx context.Context, id int) (*db.Booking, error)
	Delete(ctx context.Context, id int) error
}

// BookingDeps groups what the booking flow needs. Gateway is nil when payments are disabled.
type BookingDeps struct {
	Spaces       repository.SpaceRepository
	Availability repository.AvailabilityRepository
	Bookings     repository.BookingRepository
	Services     repository.AdditionalServiceRepository
	Users        repository.UserRepository
	Payments     repository.PaymentRepository
	Gateway      PaymentGateway
	Notifier     *Notifier
	Validator    *validator.Validator
	Log          *logger.Logger
	Location     *time.Location
	Currency     string
	Now          func() time.Time
}

type bookingService struct {
	BookingDeps
}

func NewBookingService(deps BookingDeps) BookingService {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Location == nil {
		deps.Location = time.UTC
	}
	if deps.Log == nil {
		deps.Log = logger.Nop()
	}
	return &bookingService{BookingDeps: deps}
}

type quote struct {
	space    *db.Space
	hours    float64
	total    float64
	services []db.BookingService
}

// evaluate runs every booking rule in order and prices the request.
func (s *bookingService) evaluate(ctx context.Context, req *entities.BookingRequest) (*quote, error) {
	if err := s.Validator.Struct(req); err != nil {
		return nil, err
	}
	if req.StartTime >= req.EndTime {
		return nil, apperrors.Validation([]apperrors.FieldError{{
			Field:   "end_time",
			Message: "end_time must be after start_time",
		}})
	}

	now := s.Now().In(s.Location)
	today := now.Format(utils.DateLayout)
	if req.BookingDate < today {
		return nil, apperrors.BadRequest("Booking date cannot be in the past")
	}
	if req.BookingDate == today && req.StartTime < now.Format(utils.ClockLayout) {
		return nil, apperrors.BadRequest("Booking start time has already passed")
	}

	space, err := s.Spaces.GetByID(ctx, req.SpaceID)
	if err != nil {
		return nil, translate(err, "Space")
	}
	if !space.IsActive {
		return nil, apperrors.BadRequest("Space '%s' is not active", space.Name)
	}

	weekday, err := utils.Weekday(req.BookingDate)
	if err != nil {
		return nil, apperrors.BadRequest("Invalid booking date: %s", req.BookingDate)
	}
	if !utils.ContainsDay(space.AvailableDays, weekday) {
		return nil, apperrors.BadRequest("Space is not available on %s", weekday)
	}
	if !utils.Within(req.StartTime, req.EndTime, space.OpeningTime, space.ClosingTime) {
		return nil, apperrors.BadRequest("Booking must be within opening hours (%s - %s)", space.OpeningTime, space.ClosingTime)
	}

	blocks, err := s.Availability.ListForSpaceDate(ctx, space.ID, req.BookingDate)
	if err != nil {
		return nil, apperrors.Wrap(err)
	}
	for _, block := range blocks {
		if !block.IsAvailable && utils.Overlaps(req.StartTime, req.EndTime, block.StartTime, block.EndTime) {
			return nil, apperrors.Conflict("Space is unavailable from %s to %s", block.StartTime, block.EndTime)
		}
	}

	active, err := s.Bookings.ListActiveForSpaceDate(ctx, space.ID, req.BookingDate)
	if err != nil {
		return nil, apperrors.Wrap(err)
	}
	for _, other := range active {
		if utils.Overlaps(req.StartTime, req.EndTime, other.StartTime, other.EndTime) {
			return nil, apperrors.Conflict("Space is already booked from %s to %s", other.StartTime, other.EndTime)
		}
	}

	q := &quote{space: space, hours: utils.HoursBetween(req.StartTime, req.EndTime)}
	q.total = q.hours * space.PricePerHour

	if ids := uniqueInts(req.ServiceIDs); len(ids) > 0 {
		found, err := s.Services.GetByIDs(ctx, ids)
		if err != nil {
			return nil, apperrors.Wrap(err)
		}
		if missing := missingIDs(ids, found); len(missing) > 0 {
			return nil, apperrors.BadRequest("Service(s) not found: %s", joinInts(missing))
		}
		linked, err := s.Spaces.AssociatedServiceIDs(ctx, space.ID, ids)
		if err != nil {
			return nil, apperrors.Wrap(err)
		}
		if unlinked := subtractInts(ids, linked); len(unlinked) > 0 {
			return nil, apperrors.BadRequest("Service(s) not offered by this space: %s", joinInts(unlinked))
		}
		for _, svc := range found {
			q.services = append(q.services, db.BookingService{
				ServiceID:   svc.ID,
				ServiceName: svc.ServiceName,
				Price:       svc.Price,
			})
			q.total += svc.Price
		}
	}

	q.total = utils.RoundMoney(q.total)
	return q, nil
}

// Check answers whether a slot can be booked. Rule violations come back as
// available=false; malformed input and unknown spaces are still errors.
func (s *bookingService) Check(ctx context.Context, req entities.BookingRequest) (*entities.BookingCheckResponse, error) {
	q, err := s.evaluate(ctx, &req)
	if err != nil {
		httpErr := apperrors.As(err)
		if httpErr != nil && len(httpErr.Fields) == 0 &&
			(httpErr.Code == http.StatusBadRequest || httpErr.Code == http.StatusConflict) {
			return &entities.BookingCheckResponse{Available: false, Message: httpErr.Message}, nil
		}
		return nil, err
	}
	return &entities.BookingCheckResponse{
		Available:  true,
		Message:    "Space is available",
		Hours:      q.hours,
		TotalPrice: q.total,
	}, nil
}

func (s *bookingService) Create(ctx context.Context, actor auth.Principal, req entities.BookingRequest) (*entities.BookingResult, error) {
	q, err := s.evaluate(ctx, &req)
	if err != nil {
		return nil, err
	}

	b := &db.Booking{
		UserID:        actor.UserID,
		SpaceID:       q.space.ID,
		BookingDate:   req.BookingDate,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		Status:        db.BookingPending,
		TotalPrice:    q.total,
		Notes:         req.Notes,
		PaymentStatus: db.PaymentUnpaid,
		SpaceName:     q.space.Name,
		UserEmail:     actor.Email,
	}

	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		b.Code = utils.GenerateBookingCode()
		err = s.Bookings.Create(ctx, b, q.services)
		if !errors.Is(err, repository.ErrDuplicate) {
			break
		}
	}
	switch {
	case errors.Is(err, repository.ErrSlotTaken):
		return nil, apperrors.Conflict("Space is already booked for this time slot")
	case err != nil:
		return nil, translate(err, "Booking")
	}
	s.Log.Info("Booking created", "booking_id", b.ID, "code", b.Code, "space_id", b.SpaceID, "user_id", b.UserID)

	result := &entities.BookingResult{Booking: b}
	if s.Gateway != nil && b.TotalPrice > 0 {
		url, err := s.startCheckout(ctx, b)
		if err != nil {
			return nil, err
		}
		result.CheckoutURL = url
	}

	s.notify(ctx, b)
	return result, nil
}

// startCheckout opens a payment session. If the provider fails the booking is cancelled
// so it does not hold the slot.
func (s *bookingService) startCheckout(ctx context.Context, b *db.Booking) (string, error) {
	sess, err := s.Gateway.CreateCheckoutSession(ctx, CheckoutRequest{
		AmountCents:   utils.ToMinorUnits(b.TotalPrice),
		Currency:      s.Currency,
		Description:   fmt.Sprintf("%s on %s, %s - %s", b.SpaceName, b.BookingDate, b.StartTime, b.EndTime),
		CustomerEmail: b.UserEmail,
		BookingCode:   b.Code,
	})
	if err == nil {
		err = s.Payments.SetCheckoutSession(ctx, b.ID, sess.ID)
	}
	if err != nil {
		s.Log.Error("Checkout session failed", "booking_id", b.ID, "error", err)
		if uerr := s.Bookings.UpdateStatus(ctx, b.ID, db.BookingCancelled, db.PaymentUnpaid); uerr != nil {
			s.Log.Error("Failed to cancel booking after checkout error", "booking_id", b.ID, "error", uerr)
		}
		return "", &apperrors.HTTPError{
			Code:    http.StatusBadGateway,
			Message: "Payment provider is unavailable, please try again later",
			Err:     err,
		}
	}

	b.PaymentStatus = db.PaymentPending
	b.StripeSessionID = sess.ID
	return sess.URL, nil
}

func (s *bookingService) List(ctx context.Context, actor auth.Principal, filter entities.BookingFilter) ([]db.Booking, error) {
	if !actor.IsAdmin() {
		filter.UserID = actor.UserID
	}
	if filter.Status != "" && !validBookingStatus(filter.Status) {
		return nil, apperrors.BadRequest("Invalid status: %s", filter.Status)
	}
	if filter.Date != "" {
		if _, err := time.Parse(utils.DateLayout, filter.Date); err != nil {
			return nil, apperrors.BadRequest("date must be in YYYY-MM-DD format")
		}
	}
	bookings, err := s.Bookings.List(ctx, filter)
	return bookings, translate(err, "Booking")
}

func (s *bookingService) Get(ctx context.Context, actor auth.Principal, id int) (*db.Booking, error) {
	b, err := s.Bookings.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err, "Booking")
	}
	if !actor.CanAccess(b.UserID) {
		return nil, apperrors.Forbidden("You do not have access to this booking")
	}
	return b, nil
}

func (s *bookingService) Cancel(ctx context.Context, actor auth.Principal, id int) (*db.Booking, error) {
	b, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !b.IsActive() {
		return nil, apperrors.Conflict("Cannot cancel a booking with status '%s'", b.Status)
	}

	paymentStatus := b.PaymentStatus
	if b.PaymentStatus == db.PaymentPaid && s.Gateway != nil {
		if err := s.Gateway.RefundPayment(ctx, b.StripePaymentIntentID); err != nil {
			s.Log.Error("Refund failed", "booking_id", b.ID, "error", err)
			return nil, &apperrors.HTTPError{
				Code:    http.StatusBadGateway,
				Message: "Refund could not be processed, please try again later",
				Err:     err,
			}
		}
		paymentStatus = db.PaymentRefunded
	}

	if err := s.Bookings.UpdateStatus(ctx, b.ID, db.BookingCancelled, paymentStatus); err != nil {
		return nil, translate(err, "Booking")
	}
	b.Status = db.BookingCancelled
	b.PaymentStatus = paymentStatus
	s.Log.Info("Booking cancelled", "booking_id", b.ID, "by_user", actor.UserID)

	s.notify(ctx, b)
	return b, nil
}

func (s *bookingService) Confirm(ctx context.Context, id int) (*db.Booking, error) {
	b, err := s.Bookings.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err, "Booking")
	}
	if b.Status != db.BookingPending {
		return nil, apperrors.Conflict("Only pending bookings can be confirmed (current status: %s)", b.Status)
	}
	if err := s.Bookings.UpdateStatus(ctx, b.ID, db.BookingConfirmed, b.PaymentStatus); err != nil {
		return nil, translate(err, "Booking")
	}
	b.Status = db.BookingConfirmed

	s.notify(ctx, b)
	return b, nil
}

func (s *bookingService) Delete(ctx context.Context, id int) error {
	return translate(s.Bookings.Delete(ctx, id), "Booking")
}

func (s *bookingService) notify(ctx context.Context, b *db.Booking) {
	if s.Notifier == nil {
		return
	}
	u, err := s.Users.GetByID(ctx, b.UserID)
	if err != nil {
		s.Log.Warn("Skipping booking notification", "booking_id", b.ID, "error", err)
		return
	}
	s.Notifier.BookingStatusChanged(b, u)
}

func validBookingStatus(status string) bool {
	switch status {
	case db.BookingPending, db.BookingConfirmed, db.BookingCancelled, db.BookingCompleted:
		return true
	}
	return false
}

// subtractInts returns the values of a not present in b.
func subtractInts(a, b []int) []int {
	seen := make(map[int]struct{}, len(b))
	for _, v := range b {
		seen[v] = struct{}{}
	}
	var out []int
	for _, v := range a {
		if _, ok := seen[v]; !ok {
			out = append(out, v)
		}
	}
	return out
}
