package billing_test

import (
	"context"
	"testing"
	"time"

	"github.com/jhoicas/facturacion-india-api/internal/application/billing"
	"github.com/jhoicas/facturacion-india-api/internal/application/billing/billingtest"
	"github.com/jhoicas/facturacion-india-api/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testUser = "user-1"

var testNow = time.Date(2026, 2, 19, 9, 0, 0, 0, time.UTC)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func fixedClock() time.Time { return testNow }

func testConfig() billing.Config {
	return billing.Config{DueDays: 30, JunkRetention: 30 * 24 * time.Hour, NumberAttempts: 5}
}

// numbererMock devuelve los números programados con On("Next").
type numbererMock struct{ mock.Mock }

func (m *numbererMock) Next(now time.Time) string { return m.Called(now).String(0) }

// seqNumberer numera INV/2602/0001, 0002, ...
type seqNumberer struct{ n int }

func (s *seqNumberer) Next(time.Time) string {
	s.n++
	return "INV/2602/" + decimal.NewFromInt(int64(s.n)).StringFixed(0)
}

func seedCompany(t *testing.T, store *billingtest.Store, id, name, pending string) {
	t.Helper()
	err := store.Companies().Create(context.Background(), &entity.Company{
		ID:            id,
		UserID:        testUser,
		Name:          name,
		State:         "Gujarat",
		PendingAmount: d(pending),
		CreatedAt:     testNow,
		UpdatedAt:     testNow,
	})
	require.NoError(t, err)
}

func assertPending(t *testing.T, store *billingtest.Store, companyID, want string) {
	t.Helper()
	got := store.Pending(companyID)
	require.Truef(t, d(want).Equal(got), "saldo de %s: esperado %s, obtenido %s", companyID, want, got)
}
