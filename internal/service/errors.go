package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrInvalidInput     = errors.New("invalid input")
	ErrConflict         = errors.New("conflict")

	ErrDriverProfileNotFound = fmt.Errorf("driver profile %w", ErrNotFound)
	ErrNoActiveAssignment    = fmt.Errorf("%w: no active vehicle assignment found", ErrInvalidInput)
)

func invalidInput(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// translateStoreError maps persistence errors onto the service sentinels.
func translateStoreError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: record already exists", ErrConflict)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return invalidInput("referenced record does not exist")
	default:
		return err
	}
}
