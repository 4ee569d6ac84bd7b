package service

import (
	"context"
	"strings"

	"coworking/internal/db"
	"coworking/internal/entities"
	apperrors "coworking/internal/errors"
	"coworking/internal/repository"
	"coworking/internal/validator"
)

type LocationService interface {
	Create(ctx context.Context, req entities.LocationRequest) (*db.Location, error)
	List(ctx context.Context, filter entities.LocationFilter) ([]db.Location, error)
	Get(ctx context.Context, id int) (*db.Location, error)
	Update(ctx context.Context, id int, upd entities.LocationUpdate) (*db.Location, error)
	Delete(ctx context.Context, id int) error
	ListSpaces(ctx context.Context, id int) ([]db.Space, error)
}

type locationService struct {
	repo      repository.LocationRepository
	spaces    repository.SpaceRepository
	validator *validator.Validator
}

func NewLocationService(repo repository.LocationRepository, spaces repository.SpaceRepository, v *validator.Validator) LocationService {
	return &locationService{repo: repo, spaces: spaces, validator: v}
}

func (s *locationService) Create(ctx context.Context, req entities.LocationRequest) (*db.Location, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := s.validator.Struct(&req); err != nil {
		return nil, err
	}
	if err := s.ensureUniqueName(ctx, req.Name, 0); err != nil {
		return nil, err
	}

	l := req.Model()
	if err := s.repo.Create(ctx, l); err != nil {
		return nil, translate(err, "Location")
	}
	return l, nil
}

func (s *locationService) List(ctx context.Context, filter entities.LocationFilter) ([]db.Location, error) {
	locations, err := s.repo.List(ctx, filter)
	return locations, translate(err, "Location")
}

func (s *locationService) Get(ctx context.Context, id int) (*db.Location, error) {
	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err, "Location")
	}
	return l, nil
}

func (s *locationService) Update(ctx context.Context, id int, upd entities.LocationUpdate) (*db.Location, error) {
	if err := s.validator.Struct(&upd); err != nil {
		return nil, err
	}
	l, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if upd.Name != nil {
		trimmed := strings.TrimSpace(*upd.Name)
		upd.Name = &trimmed
		if err := s.ensureUniqueName(ctx, trimmed, id); err != nil {
			return nil, err
		}
	}

	upd.Apply(l)
	if err := s.repo.Update(ctx, l); err != nil {
		return nil, translate(err, "Location")
	}
	return l, nil
}

func (s *locationService) Delete(ctx context.Context, id int) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	n, err := s.repo.CountSpaces(ctx, id)
	if err != nil {
		return apperrors.Wrap(err)
	}
	if n > 0 {
		return apperrors.Conflict("Cannot delete location: it has %d space(s)", n)
	}
	return translate(s.repo.Delete(ctx, id), "Location")
}

func (s *locationService) ListSpaces(ctx context.Context, id int) ([]db.Space, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	spaces, err := s.spaces.List(ctx, entities.SpaceFilter{LocationID: id})
	return spaces, translate(err, "Space")
}

func (s *locationService) ensureUniqueName(ctx context.Context, name string, excludeID int) error {
	exists, err := s.repo.ExistsByName(ctx, name, excludeID)
	if err != nil {
		return apperrors.Wrap(err)
	}
	if exists {
		return apperrors.Conflict("Location with name '%s' already exists", name)
	}
	return nil
}
