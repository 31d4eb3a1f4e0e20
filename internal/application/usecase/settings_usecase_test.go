package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/jhoicas/facturacion-india-api/internal/application/billing/billingtest"
	"github.com/jhoicas/facturacion-india-api/internal/application/dto"
	"github.com/jhoicas/facturacion-india-api/internal/application/usecase"
	"github.com/jhoicas/facturacion-india-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettings_EmisorUpsert(t *testing.T) {
	store := billingtest.NewStore()
	uc := usecase.NewSettingsUseCase(store.Settings()).WithClock(func() time.Time { return testNow })
	ctx := context.Background()

	_, err := uc.GetSeller(ctx, testUser)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.SaveSeller(ctx, testUser, dto.SellerInfoRequest{Name: " "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.SaveSeller(ctx, testUser, dto.SellerInfoRequest{Name: "Acme", GSTNo: "24aaaaa0000a1z5"})
	require.NoError(t, err)
	_, err = uc.SaveSeller(ctx, testUser, dto.SellerInfoRequest{Name: "Acme Traders", City: "Vapi"})
	require.NoError(t, err)

	got, err := uc.GetSeller(ctx, testUser)
	require.NoError(t, err)
	assert.Equal(t, "Acme Traders", got.Name)
	assert.Equal(t, "Vapi", got.City)
	assert.Empty(t, got.GSTNo)
	assert.Equal(t, testNow, got.UpdatedAt)
}

func TestSettings_Banco(t *testing.T) {
	store := billingtest.NewStore()
	uc := usecase.NewSettingsUseCase(store.Settings())
	ctx := context.Background()

	_, err := uc.SaveBank(ctx, testUser, dto.BankDetailsRequest{BankName: "Yes Bank"})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "account_number", verr.Field)

	_, err = uc.SaveBank(ctx, testUser, dto.BankDetailsRequest{BankName: "Yes Bank", AccountNumber: "0256", IFSCCode: "yesb0000256"})
	require.NoError(t, err)
	got, err := uc.GetBank(ctx, testUser)
	require.NoError(t, err)
	assert.Equal(t, "YESB0000256", got.IFSCCode)
}
