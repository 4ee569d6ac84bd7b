package service

import (
	"context"
	"fmt"
	"time"

	"coworking/internal/db"
	"coworking/internal/logger"
	"coworking/internal/repository"
	"coworking/internal/utils"
)

type JobService struct {
	repo       repository.JobRepository
	log        *logger.Logger
	loc        *time.Location
	pendingTTL time.Duration
	now        func() time.Time
}

func NewJobService(repo repository.JobRepository, loc *time.Location, pendingTTL time.Duration, log *logger.Logger) *JobService {
	if loc == nil {
		loc = time.UTC
	}
	return &JobService{repo: repo, log: log, loc: loc, pendingTTL: pendingTTL, now: time.Now}
}

// CompleteFinishedBookings marks confirmed bookings whose end has passed as completed.
func (s *JobService) CompleteFinishedBookings(ctx context.Context) (int64, error) {
	now := s.now().In(s.loc)
	ids, err := s.repo.GetConfirmedBookingIDsPastEnd(ctx, now.Format(utils.DateLayout), now.Format(utils.ClockLayout))
	if err != nil {
		return 0, fmt.Errorf("cron job: failed to get finished bookings: %w", err)
	}
	if len(ids) == 0 {
		s.log.Debug("Cron job: no finished bookings")
		return 0, nil
	}

	n, err := s.repo.UpdateBookingStatuses(ctx, ids, db.BookingCompleted)
	if err != nil {
		return 0, fmt.Errorf("cron job: failed to complete bookings: %w", err)
	}
	s.log.Info("Cron job: bookings completed", "count", n, "ids", ids)
	return n, nil
}

// CancelAbandonedCheckouts cancels pending bookings whose checkout was opened more than
// pendingTTL ago and never paid, freeing their slots.
func (s *JobService) CancelAbandonedCheckouts(ctx context.Context) (int64, error) {
	before := s.now().Add(-s.pendingTTL)
	ids, err := s.repo.GetAwaitingPaymentBookingIDsCreatedBefore(ctx, before)
	if err != nil {
		return 0, fmt.Errorf("cron job: failed to get abandoned checkouts: %w", err)
	}
	if len(ids) == 0 {
		s.log.Debug("Cron job: no abandoned checkouts")
		return 0, nil
	}

	n, err := s.repo.UpdateBookingStatuses(ctx, ids, db.BookingCancelled)
	if err != nil {
		return 0, fmt.Errorf("cron job: failed to cancel abandoned checkouts: %w", err)
	}
	s.log.Info("Cron job: abandoned checkouts cancelled", "count", n, "ids", ids)
	return n, nil
}

// RunAll runs every maintenance job, logging failures and returning the first one.
func (s *JobService) RunAll(ctx context.Context) error {
	var first error
	if _, err := s.CompleteFinishedBookings(ctx); err != nil {
		s.log.Error("Cron job failed", "job", "complete_finished_bookings", "error", err)
		first = err
	}
	if _, err := s.CancelAbandonedCheckouts(ctx); err != nil {
		s.log.Error("Cron job failed", "job", "cancel_abandoned_checkouts", "error", err)
		if first == nil {
			first = err
		}
	}
	return first
}
