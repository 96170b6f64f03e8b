package usecase

import (
	"errors"

	"internport-backend/internal/domain"
	"internport-backend/pkg/apperror"
)

// notFound maps a repository miss to a client-facing 404 and wraps every
// other failure as internal.
func notFound(err error, message string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return apperror.NotFound(message)
	}
	return internal(err)
}

// internal passes AppErrors through untouched.
func internal(err error) error {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return apperror.Internal(err)
}
