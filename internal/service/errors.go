package service

import (
	"errors"

	apperrors "coworking/internal/errors"
	"coworking/internal/repository"
)

// translate converts repository sentinels into HTTP errors for the named resource.
func translate(err error, resource string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return apperrors.NotFound(resource)
	case errors.Is(err, repository.ErrDuplicate):
		return apperrors.Conflict("%s already exists", resource)
	case errors.Is(err, repository.ErrInUse):
		return apperrors.Conflict("%s is still referenced by other records", resource)
	}
	return apperrors.Wrap(err)
}
