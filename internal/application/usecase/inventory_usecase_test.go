package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/jhoicas/facturacion-india-api/internal/application/billing/billingtest"
	"github.com/jhoicas/facturacion-india-api/internal/application/dto"
	"github.com/jhoicas/facturacion-india-api/internal/application/usecase"
	"github.com/jhoicas/facturacion-india-api/internal/domain"
	"github.com/jhoicas/facturacion-india-api/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testUser = "user-1"

var testNow = time.Date(2026, 2, 19, 9, 0, 0, 0, time.UTC)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newInventoryUC(store *billingtest.Store) *usecase.InventoryUseCase {
	return usecase.NewInventoryUseCase(store.Items(), logger.Nop()).WithClock(func() time.Time { return testNow })
}

func TestInventory_CrearValidaciones(t *testing.T) {
	uc := newInventoryUC(billingtest.NewStore())
	ctx := context.Background()

	tests := []struct {
		name  string
		in    dto.CreateInventoryItemRequest
		field string
	}{
		{"sin nombre", dto.CreateInventoryItemRequest{HSN: "7318"}, "name"},
		{"sin hsn", dto.CreateInventoryItemRequest{Name: "Nut"}, "hsn"},
		{"precio negativo", dto.CreateInventoryItemRequest{Name: "Nut", HSN: "7318", Rate: d("-1")}, "rate"},
		{"gst fuera de rango", dto.CreateInventoryItemRequest{Name: "Nut", HSN: "7318", GSTRate: d("101")}, "gst_rate"},
		{"stock negativo", dto.CreateInventoryItemRequest{Name: "Nut", HSN: "7318", Stock: -2}, "stock"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Create(ctx, testUser, tt.in)
			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestInventory_CRUD(t *testing.T) {
	store := billingtest.NewStore()
	uc := newInventoryUC(store)
	ctx := context.Background()

	item, err := uc.Create(ctx, testUser, dto.CreateInventoryItemRequest{Name: " Hex Nut ", HSN: "7318", Rate: d("12.345"), GSTRate: d("18")})
	require.NoError(t, err)
	assert.Equal(t, "Hex Nut", item.Name)
	assert.Equal(t, usecase.DefaultUnit, item.Unit)
	assert.True(t, d("12.35").Equal(item.Rate))

	_, err = uc.Create(ctx, testUser, dto.CreateInventoryItemRequest{Name: "hex nut", HSN: "7318"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	stock := 40
	unit := "box"
	upd, err := uc.Update(ctx, testUser, item.ID, dto.UpdateInventoryItemRequest{Stock: &stock, Unit: &unit})
	require.NoError(t, err)
	assert.Equal(t, 40, upd.Stock)
	assert.Equal(t, "box", upd.Unit)

	_, err = uc.Get(ctx, "otro-usuario", item.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := uc.List(ctx, testUser, "7318", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, 20, list.Page.Limit)
	assert.Equal(t, 1, list.Page.Total)
	assert.False(t, list.Page.HasMore)

	require.NoError(t, uc.Delete(ctx, testUser, item.ID))
	_, err = uc.Get(ctx, testUser, item.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInventory_ImportCreaActualizaYOmite(t *testing.T) {
	store := billingtest.NewStore()
	uc := newInventoryUC(store)
	ctx := context.Background()

	_, err := uc.Create(ctx, testUser, dto.CreateInventoryItemRequest{Name: "Washer", HSN: "7318", Rate: d("1")})
	require.NoError(t, err)

	res, err := uc.Import(ctx, testUser, []dto.CreateInventoryItemRequest{
		{Name: "Bolt", HSN: "7318", Rate: d("5"), GSTRate: d("18")},
		{Name: "washer", HSN: "7318", Rate: d("1.50")},
		{Name: "Sin HSN"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Created)
	assert.Equal(t, 1, res.Updated)
	require.Len(t, res.Skipped, 1)
	assert.Contains(t, res.Skipped[0], "fila 3")

	list, err := uc.List(ctx, testUser, "washer", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.True(t, d("1.5").Equal(list.Items[0].Rate))
}
