package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLikePattern(t *testing.T) {
	assert.Equal(t, "%INV/2602%", likePattern("INV/2602"))
	assert.Equal(t, `%50\%\_off\\x%`, likePattern(`50%_off\x`))
	assert.Equal(t, "%%", likePattern(""))
}

func TestLimitArg(t *testing.T) {
	assert.Nil(t, limitArg(0))
	assert.Nil(t, limitArg(-3))
	got := limitArg(20)
	require.NotNil(t, got)
	assert.Equal(t, 20, *got)
}

func TestIsUniqueViolation(t *testing.T) {
	wrapped := fmt.Errorf("insertar factura: %w", &pgconn.PgError{Code: "23505"})
	assert.True(t, isUniqueViolation(wrapped))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("conexión cerrada")))
}

func TestNulos(t *testing.T) {
	assert.Nil(t, nullIfEmpty(""))
	assert.Equal(t, "x", derefStr(nullIfEmpty("x")))
	assert.Equal(t, "", derefStr(nil))
	assert.True(t, isNoRows(fmt.Errorf("buscar: %w", pgx.ErrNoRows)))
}
