package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrStorage            = errors.New("falla de almacenamiento")
	ErrExceedsPending     = errors.New("el pago excede el saldo pendiente")
)

// Kind clasifica un error para que los llamadores decidan sin comparar mensajes.
type Kind string

const (
	KindValidation     Kind = "validation"
	KindNotFound       Kind = "not_found"
	KindStorageFailure Kind = "storage_failure"
	KindConflict       Kind = "conflict"
	KindUnauthorized   Kind = "unauthorized"
)

// KindOf deriva el tipo de error. Lo que no es un error de dominio conocido
// se considera falla de almacenamiento.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrExceedsPending):
		return KindValidation
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrUserNotFound):
		return KindNotFound
	case errors.Is(err, ErrConflict), errors.Is(err, ErrDuplicate), errors.Is(err, ErrEmailAlreadyExists):
		return KindConflict
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrForbidden):
		return KindUnauthorized
	default:
		return KindStorageFailure
	}
}

// ValidationError error de validación con el campo afectado.
type ValidationError struct {
	Field string
	Err   error
}

// NewValidationError crea un error de validación sobre ErrInvalidInput.
func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{
		Field: field,
		Err:   fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...)),
	}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }
