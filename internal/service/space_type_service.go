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

type SpaceTypeService interface {
	Create(ctx context.Context, req entities.SpaceTypeRequest) (*db.SpaceType, error)
	List(ctx context.Context) ([]db.SpaceType, error)
	Get(ctx context.Context, id int) (*db.SpaceType, error)
	Update(ctx context.Context, id int, upd entities.SpaceTypeUpdate) (*db.SpaceType, error)
	Delete(ctx context.Context, id int) error
}

type spaceTypeService struct {
	repo      repository.SpaceTypeRepository
	validator *validator.Validator
}

func NewSpaceTypeService(repo repository.SpaceTypeRepository, v *validator.Validator) SpaceTypeService {
	return &spaceTypeService{repo: repo, validator: v}
}

func (s *spaceTypeService) Create(ctx context.Context, req entities.SpaceTypeRequest) (*db.SpaceType, error) {
	req.TypeName = strings.TrimSpace(req.TypeName)
	if err := s.validator.Struct(&req); err != nil {
		return nil, err
	}
	if err := s.ensureUniqueName(ctx, req.TypeName, 0); err != nil {
		return nil, err
	}

	st := req.Model()
	if err := s.repo.Create(ctx, st); err != nil {
		return nil, translate(err, "Space type")
	}
	return st, nil
}

func (s *spaceTypeService) List(ctx context.Context) ([]db.SpaceType, error) {
	types, err := s.repo.List(ctx)
	return types, translate(err, "Space type")
}

func (s *spaceTypeService) Get(ctx context.Context, id int) (*db.SpaceType, error) {
	st, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err, "Space type")
	}
	return st, nil
}

func (s *spaceTypeService) Update(ctx context.Context, id int, upd entities.SpaceTypeUpdate) (*db.SpaceType, error) {
	if err := s.validator.Struct(&upd); err != nil {
		return nil, err
	}
	st, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if upd.TypeName != nil {
		trimmed := strings.TrimSpace(*upd.TypeName)
		upd.TypeName = &trimmed
		if err := s.ensureUniqueName(ctx, trimmed, id); err != nil {
			return nil, err
		}
	}

	upd.Apply(st)
	if err := s.repo.Update(ctx, st); err != nil {
		return nil, translate(err, "Space type")
	}
	return st, nil
}

func (s *spaceTypeService) Delete(ctx context.Context, id int) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	n, err := s.repo.CountSpaces(ctx, id)
	if err != nil {
		return apperrors.Wrap(err)
	}
	if n > 0 {
		return apperrors.Conflict("Cannot delete space type: it is used by %d space(s)", n)
	}
	return translate(s.repo.Delete(ctx, id), "Space type")
}

func (s *spaceTypeService) ensureUniqueName(ctx context.Context, name string, excludeID int) error {
	exists, err := s.repo.ExistsByName(ctx, name, excludeID)
	if err != nil {
		return apperrors.Wrap(err)
	}
	if exists {
		return apperrors.Conflict("Space type '%s' already exists", name)
	}
	return nil
}
