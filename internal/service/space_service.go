package service

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"coworking/internal/db"
	"coworking/internal/entities"
	apperrors "coworking/internal/errors"
	"coworking/internal/repository"
	"coworking/internal/utils"
	"coworking/internal/validator"
)

type SpaceService interface {
	Create(ctx context.Context, req entities.SpaceRequest) (*db.Space, error)
	List(ctx context.Context, filter entities.SpaceFilter) ([]db.Space, error)
	Get(ctx context.Context, id int) (*db.Space, error)
	Update(ctx context.Context, id int, upd entities.SpaceUpdate) (*db.Space, error)
	Delete(ctx context.Context, id int) error
	ListServices(ctx context.Context, id int) ([]db.AdditionalService, error)
	AssociateServices(ctx context.Context, id int, req entities.SpaceServicesRequest) ([]db.AdditionalService, error)
	DissociateService(ctx context.Context, id, serviceID int) error
}

type spaceService struct {
	repo       repository.SpaceRepository
	locations  repository.LocationRepository
	spaceTypes repository.SpaceTypeRepository
	services   repository.AdditionalServiceRepository
	validator  *validator.Validator
}

func NewSpaceService(
	repo repository.SpaceRepository,
	locations repository.LocationRepository,
	spaceTypes repository.SpaceTypeRepository,
	services repository.AdditionalServiceRepository,
	v *validator.Validator,
) SpaceService {
	return &spaceService{
		repo:       repo,
		locations:  locations,
		spaceTypes: spaceTypes,
		services:   services,
		validator:  v,
	}
}

func (s *spaceService) Create(ctx context.Context, req entities.SpaceRequest) (*db.Space, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := s.validator.Struct(&req); err != nil {
		return nil, err
	}
	space := req.Model()
	space.PricePerHour = utils.RoundMoney(space.PricePerHour)
	space.AvailableDays = normalizeDays(space.AvailableDays)

	if err := s.checkSpace(ctx, space, 0); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, space); err != nil {
		return nil, translate(err, "Space")
	}
	return s.Get(ctx, space.ID)
}

func (s *spaceService) List(ctx context.Context, filter entities.SpaceFilter) ([]db.Space, error) {
	spaces, err := s.repo.List(ctx, filter)
	return spaces, translate(err, "Space")
}

// Get returns the space with its location, type and associated services.
func (s *spaceService) Get(ctx context.Context, id int) (*db.Space, error) {
	space, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err, "Space")
	}
	services, err := s.repo.ListServices(ctx, id)
	if err != nil {
		return nil, apperrors.Wrap(err)
	}
	space.Services = services
	return space, nil
}

func (s *spaceService) Update(ctx context.Context, id int, upd entities.SpaceUpdate) (*db.Space, error) {
	if err := s.validator.Struct(&upd); err != nil {
		return nil, err
	}
	space, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err, "Space")
	}
	if upd.Name != nil {
		trimmed := strings.TrimSpace(*upd.Name)
		upd.Name = &trimmed
	}

	upd.Apply(space)
	space.PricePerHour = utils.RoundMoney(space.PricePerHour)
	space.AvailableDays = normalizeDays(space.AvailableDays)

	if err := s.checkSpace(ctx, space, id); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, space); err != nil {
		return nil, translate(err, "Space")
	}
	return s.Get(ctx, id)
}

// checkSpace runs the rules that span several fields or tables.
func (s *spaceService) checkSpace(ctx context.Context, space *db.Space, excludeID int) error {
	if space.OpeningTime >= space.ClosingTime {
		return apperrors.Validation([]apperrors.FieldError{{
			Field:   "closing_time",
			Message: "closing_time must be after opening_time",
		}})
	}
	if _, err := s.locations.GetByID(ctx, space.LocationID); err != nil {
		return translate(err, "Location")
	}
	if _, err := s.spaceTypes.GetByID(ctx, space.SpaceTypeID); err != nil {
		return translate(err, "Space type")
	}
	exists, err := s.repo.ExistsByName(ctx, space.LocationID, space.Name, excludeID)
	if err != nil {
		return apperrors.Wrap(err)
	}
	if exists {
		return apperrors.Conflict("Space '%s' already exists in this location", space.Name)
	}
	return nil
}

func (s *spaceService) Delete(ctx context.Context, id int) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return translate(err, "Space")
	}
	n, err := s.repo.CountActiveBookings(ctx, id)
	if err != nil {
		return apperrors.Wrap(err)
	}
	if n > 0 {
		return apperrors.Conflict("Cannot delete space: it has %d active booking(s)", n)
	}
	return translate(s.repo.Delete(ctx, id), "Space")
}

func (s *spaceService) ListServices(ctx context.Context, id int) ([]db.AdditionalService, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, translate(err, "Space")
	}
	services, err := s.repo.ListServices(ctx, id)
	return services, apperrors.Wrap(err)
}

func (s *spaceService) AssociateServices(ctx context.Context, id int, req entities.SpaceServicesRequest) ([]db.AdditionalService, error) {
	if err := s.validator.Struct(&req); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, translate(err, "Space")
	}

	ids := uniqueInts(req.ServiceIDs)
	found, err := s.services.GetByIDs(ctx, ids)
	if err != nil {
		return nil, apperrors.Wrap(err)
	}
	if missing := missingIDs(ids, found); len(missing) > 0 {
		return nil, apperrors.NewHTTPError(http.StatusNotFound, "Service(s) not found: "+joinInts(missing))
	}

	already, err := s.repo.AssociatedServiceIDs(ctx, id, ids)
	if err != nil {
		return nil, apperrors.Wrap(err)
	}
	if len(already) > 0 {
		return nil, apperrors.Conflict("Service(s) already associated with this space: %s", joinInts(already))
	}

	if err := s.repo.AddServices(ctx, id, ids); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.Conflict("Service(s) already associated with this space")
		}
		return nil, apperrors.Wrap(err)
	}
	return s.ListServices(ctx, id)
}

func (s *spaceService) DissociateService(ctx context.Context, id, serviceID int) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return translate(err, "Space")
	}
	if err := s.repo.RemoveService(ctx, id, serviceID); err != nil {
		return translate(err, "Service association")
	}
	return nil
}

func normalizeDays(days []int) []int {
	out := uniqueInts(days)
	sort.Ints(out)
	return out
}

func uniqueInts(in []int) []int {
	seen := make(map[int]struct{}, len(in))
	out := make([]int, 0, len(in))
	for _, v := range in {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func missingIDs(ids []int, found []db.AdditionalService) []int {
	have := make(map[int]struct{}, len(found))
	for _, f := range found {
		have[f.ID] = struct{}{}
	}
	var missing []int
	for _, id := range ids {
		if _, ok := have[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}

func joinInts(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ", ")
}
