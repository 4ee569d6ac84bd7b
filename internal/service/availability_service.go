package service

import (
	"context"
	"time"

	"coworking/internal/db"
	"coworking/internal/entities"
	apperrors "coworking/internal/errors"
	"coworking/internal/repository"
	"coworking/internal/utils"
	"coworking/internal/validator"
)

type AvailabilityService interface {
	Create(ctx context.Context, req entities.AvailabilityRequest) (*db.Availability, error)
	List(ctx context.Context, filter entities.AvailabilityFilter) ([]db.Availability, error)
	Get(ctx context.Context, id int) (*db.Availability, error)
	Update(ctx context.Context, id int, upd entities.AvailabilityUpdate) (*db.Availability, error)
	Delete(ctx context.Context, id int) error
}

type availabilityService struct {
	repo      repository.AvailabilityRepository
	spaces    repository.SpaceRepository
	validator *validator.Validator
}

func NewAvailabilityService(repo repository.AvailabilityRepository, spaces repository.SpaceRepository, v *validator.Validator) AvailabilityService {
	return &availabilityService{repo: repo, spaces: spaces, validator: v}
}

func (s *availabilityService) Create(ctx context.Context, req entities.AvailabilityRequest) (*db.Availability, error) {
	if err := s.validator.Struct(&req); err != nil {
		return nil, err
	}
	block := req.Model()
	if err := s.checkBlock(ctx, block); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, block); err != nil {
		return nil, translate(err, "Availability")
	}
	return block, nil
}

func (s *availabilityService) List(ctx context.Context, filter entities.AvailabilityFilter) ([]db.Availability, error) {
	if filter.Date != "" {
		if _, err := time.Parse(utils.DateLayout, filter.Date); err != nil {
			return nil, apperrors.BadRequest("date must be in YYYY-MM-DD format")
		}
	}
	blocks, err := s.repo.List(ctx, filter)
	return blocks, translate(err, "Availability")
}

func (s *availabilityService) Get(ctx context.Context, id int) (*db.Availability, error) {
	block, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err, "Availability")
	}
	return block, nil
}

func (s *availabilityService) Update(ctx context.Context, id int, upd entities.AvailabilityUpdate) (*db.Availability, error) {
	if err := s.validator.Struct(&upd); err != nil {
		return nil, err
	}
	block, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	upd.Apply(block)
	if err := s.checkBlock(ctx, block); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, block); err != nil {
		return nil, translate(err, "Availability")
	}
	return block, nil
}

// checkBlock requires start < end, an existing space, and no overlap with other blocks
// of the same space and date. The block itself is skipped when updating.
func (s *availabilityService) checkBlock(ctx context.Context, block *db.Availability) error {
	if block.StartTime >= block.EndTime {
		return apperrors.Validation([]apperrors.FieldError{{
			Field:   "end_time",
			Message: "end_time must be after start_time",
		}})
	}
	if _, err := s.spaces.GetByID(ctx, block.SpaceID); err != nil {
		return translate(err, "Space")
	}

	existing, err := s.repo.ListForSpaceDate(ctx, block.SpaceID, block.Date)
	if err != nil {
		return apperrors.Wrap(err)
	}
	for _, other := range existing {
		if other.ID == block.ID {
			continue
		}
		if utils.Overlaps(block.StartTime, block.EndTime, other.StartTime, other.EndTime) {
			return apperrors.Conflict("Availability block overlaps an existing block (%s - %s)", other.StartTime, other.EndTime)
		}
	}
	return nil
}

func (s *availabilityService) Delete(ctx context.Context, id int) error {
	block, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	n, err := s.repo.CountOverlappingBookings(ctx, block.SpaceID, block.Date, block.StartTime, block.EndTime)
	if err != nil {
		return apperrors.Wrap(err)
	}
	if n > 0 {
		return apperrors.Conflict("Cannot delete availability: %d booking(s) overlap this block", n)
	}
	return translate(s.repo.Delete(ctx, id), "Availability")
}
