package service

import (
	"context"
	"strings"

	"coworking/internal/db"
	"coworking/internal/entities"
	apperrors "coworking/internal/errors"
	"coworking/internal/repository"
	"coworking/internal/utils"
	"coworking/internal/validator"
)

// AdditionalServiceService manages the paid add-ons that can be attached to spaces.
type AdditionalServiceService interface {
	Create(ctx context.Context, req entities.ServiceRequest) (*db.AdditionalService, error)
	List(ctx context.Context) ([]db.AdditionalService, error)
	Get(ctx context.Context, id int) (*db.AdditionalService, error)
	Update(ctx context.Context, id int, upd entities.ServiceUpdate) (*db.AdditionalService, error)
	Delete(ctx context.Context, id int) error
}

type additionalServiceService struct {
	repo      repository.AdditionalServiceRepository
	validator *validator.Validator
}

func NewAdditionalServiceService(repo repository.AdditionalServiceRepository, v *validator.Validator) AdditionalServiceService {
	return &additionalServiceService{repo: repo, validator: v}
}

func (s *additionalServiceService) Create(ctx context.Context, req entities.ServiceRequest) (*db.AdditionalService, error) {
	req.ServiceName = strings.TrimSpace(req.ServiceName)
	if err := s.validator.Struct(&req); err != nil {
		return nil, err
	}
	if err := s.ensureUniqueName(ctx, req.ServiceName, 0); err != nil {
		return nil, err
	}

	svc := req.Model()
	svc.Price = utils.RoundMoney(svc.Price)
	if err := s.repo.Create(ctx, svc); err != nil {
		return nil, translate(err, "Service")
	}
	return svc, nil
}

func (s *additionalServiceService) List(ctx context.Context) ([]db.AdditionalService, error) {
	services, err := s.repo.List(ctx)
	return services, translate(err, "Service")
}

func (s *additionalServiceService) Get(ctx context.Context, id int) (*db.AdditionalService, error) {
	svc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err, "Service")
	}
	return svc, nil
}

func (s *additionalServiceService) Update(ctx context.Context, id int, upd entities.ServiceUpdate) (*db.AdditionalService, error) {
	if err := s.validator.Struct(&upd); err != nil {
		return nil, err
	}
	svc, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if upd.ServiceName != nil {
		trimmed := strings.TrimSpace(*upd.ServiceName)
		upd.ServiceName = &trimmed
		if err := s.ensureUniqueName(ctx, trimmed, id); err != nil {
			return nil, err
		}
	}

	upd.Apply(svc)
	svc.Price = utils.RoundMoney(svc.Price)
	if err := s.repo.Update(ctx, svc); err != nil {
		return nil, translate(err, "Service")
	}
	return svc, nil
}

func (s *additionalServiceService) Delete(ctx context.Context, id int) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	n, err := s.repo.CountSpaces(ctx, id)
	if err != nil {
		return apperrors.Wrap(err)
	}
	if n > 0 {
		return apperrors.Conflict("Cannot delete service: it is associated with %d space(s)", n)
	}
	return translate(s.repo.Delete(ctx, id), "Service")
}

func (s *additionalServiceService) ensureUniqueName(ctx context.Context, name string, excludeID int) error {
	exists, err := s.repo.ExistsByName(ctx, name, excludeID)
	if err != nil {
		return apperrors.Wrap(err)
	}
	if exists {
		return apperrors.Conflict("Service '%s' already exists", name)
	}
	return nil
}
