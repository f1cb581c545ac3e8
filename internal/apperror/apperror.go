// Package apperror holds the error kinds shared by repositories, services and
// the HTTP layer.
package apperror

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrUnavailable  = errors.New("service unavailable")
)

func Validation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func NotFound(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

func Conflict(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConflict, fmt.Sprintf(format, args...))
}

// FromGorm maps gorm sentinel errors onto the application kinds and leaves
// everything else untouched.
func FromGorm(err error, entity string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return NotFound("%s not found", entity)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return Conflict("%s already exists", entity)
	default:
		return err
	}
}
