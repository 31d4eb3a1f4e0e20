package dto_test

import (
	"testing"

	"github.com/jhoicas/facturacion-india-api/internal/application/dto"
	"github.com/stretchr/testify/assert"
)

func TestPageRequest_Normalize(t *testing.T) {
	tests := []struct {
		name          string
		in            dto.PageRequest
		limit, offset int
	}{
		{"vacío usa el valor por defecto", dto.PageRequest{}, dto.DefaultPageLimit, 0},
		{"límite negativo", dto.PageRequest{Limit: -1, Offset: -5}, dto.DefaultPageLimit, 0},
		{"límite excesivo", dto.PageRequest{Limit: 500, Offset: 40}, dto.MaxPageLimit, 40},
		{"válido", dto.PageRequest{Limit: 10, Offset: 30}, 10, 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.in
			p.Normalize()
			assert.Equal(t, tt.limit, p.Limit)
			assert.Equal(t, tt.offset, p.Offset)
		})
	}
}

func TestNewPageResponse(t *testing.T) {
	got := dto.NewPageResponse(dto.PageRequest{Limit: 20, Offset: 0}, 45)
	assert.Equal(t, dto.PageResponse{Limit: 20, Offset: 0, Total: 45, HasMore: true}, got)

	got = dto.NewPageResponse(dto.PageRequest{Limit: 20, Offset: 40}, 45)
	assert.False(t, got.HasMore)
	assert.Equal(t, 45, got.Total)

	assert.False(t, dto.NewPageResponse(dto.PageRequest{Limit: 20}, 0).HasMore)
}
