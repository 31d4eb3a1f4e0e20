package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jhoicas/facturacion-india-api/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want domain.Kind
	}{
		{"nil", nil, ""},
		{"validación", domain.NewValidationError("amount", "debe ser positivo"), domain.KindValidation},
		{"excede pendiente", fmt.Errorf("pago: %w", domain.ErrExceedsPending), domain.KindValidation},
		{"no encontrado", fmt.Errorf("get company: %w", domain.ErrNotFound), domain.KindNotFound},
		{"conflicto", domain.ErrConflict, domain.KindConflict},
		{"duplicado", domain.ErrDuplicate, domain.KindConflict},
		{"no autorizado", domain.ErrUnauthorized, domain.KindUnauthorized},
		{"almacenamiento", fmt.Errorf("commit: %w", domain.ErrStorage), domain.KindStorageFailure},
		{"desconocido", errors.New("connection reset"), domain.KindStorageFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.KindOf(tt.err))
		})
	}
}

func TestValidationError_UnwrapYMensaje(t *testing.T) {
	err := domain.NewValidationError("discount", "fuera de rango: %s", "120")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, "discount: entrada inválida: fuera de rango: 120", err.Error())

	var ve *domain.ValidationError
	assert.True(t, errors.As(fmt.Errorf("wrap: %w", err), &ve))
	assert.Equal(t, "discount", ve.Field)
}
