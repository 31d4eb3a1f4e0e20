package auth_test

import (
	"context"
	"testing"

	"github.com/jhoicas/facturacion-india-api/internal/application/auth"
	"github.com/jhoicas/facturacion-india-api/internal/application/billing/billingtest"
	"github.com/jhoicas/facturacion-india-api/internal/application/dto"
	"github.com/jhoicas/facturacion-india-api/internal/domain"
	pkgjwt "github.com/jhoicas/facturacion-india-api/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret-key-for-unit-tests"

func newAuth(store *billingtest.Store) *auth.AuthUseCase {
	return auth.NewAuthUseCase(store.Users(), auth.JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: "facturacion-test"}).
		WithBcryptCost(bcrypt.MinCost)
}

func TestAuth_RegistroYLogin(t *testing.T) {
	store := billingtest.NewStore()
	uc := newAuth(store)
	ctx := context.Background()

	u, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: " Owner@Shop.in ", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.Equal(t, "owner@shop.in", u.Email)
	assert.Equal(t, "owner@shop.in", u.Name)
	assert.Equal(t, "active", u.Status)

	res, err := uc.Login(ctx, dto.LoginRequest{Email: "OWNER@shop.in", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.Equal(t, u.ID, res.User.ID)

	claims, err := pkgjwt.Parse(testSecret, res.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, "owner@shop.in", claims.Email)
}

func TestAuth_RegistroRechazado(t *testing.T) {
	store := billingtest.NewStore()
	uc := newAuth(store)
	ctx := context.Background()

	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "no-es-email", Password: "s3cret-pass"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@b.in", Password: "corta"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@b.in", Password: "s3cret-pass"})
	require.NoError(t, err)
	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "A@B.in", Password: "otra-clave-1"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))
}

func TestAuth_LoginInvalido(t *testing.T) {
	store := billingtest.NewStore()
	uc := newAuth(store)
	ctx := context.Background()
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@b.in", Password: "s3cret-pass"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "a@b.in", Password: "equivocada"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@b.in", Password: "s3cret-pass"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
