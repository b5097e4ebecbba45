package catalog

import (
	"errors"
	"fmt"

	"storefront/internal/repository"
)

var (
	// ErrNotFound indica que la entidad no existe
	ErrNotFound = errors.New("not found")
	// ErrInvalidID indica un identificador con formato incorrecto
	ErrInvalidID = errors.New("invalid id")
)

// ValidationError representa un error de validación
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ConflictError es una violación de unicidad o de integridad referencial
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

func conflictf(format string, args ...any) error {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}

// IsClientError informa si err se debe a la petición y no al almacén
func IsClientError(err error) bool {
	var verr *ValidationError
	var cerr *ConflictError
	return errors.As(err, &verr) || errors.As(err, &cerr) ||
		errors.Is(err, ErrInvalidID) || errors.Is(err, ErrNotFound)
}

func notFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

var errNoFields = &ValidationError{Message: "No valid fields to update"}

// isDuplicate informa de cualquier violación de índice único
func isDuplicate(err error) bool {
	var dup *repository.DuplicateKeyError
	return errors.As(err, &dup)
}
