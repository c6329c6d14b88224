// Package dberr translates gorm errors into the errs taxonomy.
package dberr

import (
	"context"
	"errors"

	"github.com/daniel06264831/menuia/internal/pkg/errs"

	"gorm.io/gorm"
)

// Wrap classifies err raised by operation. Typed errors and context
// cancellation pass through; anything else is an upstream failure.
func Wrap(operation string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	case errors.Is(err, errs.ErrObjectNotFound),
		errors.Is(err, errs.ErrConflict),
		errors.Is(err, errs.ErrVersionIsInvalid),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return err
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return errs.NewConflictErrorWithCause(operation, "record already exists", err)
	}
	return errs.NewUpstreamError(operation, err)
}

// NotFound maps gorm.ErrRecordNotFound to ObjectNotFound and wraps the rest.
func NotFound(operation, paramName string, id any, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewObjectNotFoundError(paramName, id)
	}
	return Wrap(operation, err)
}
