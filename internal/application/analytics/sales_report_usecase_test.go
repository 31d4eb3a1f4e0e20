package analytics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jhoicas/facturacion-india-api/internal/application/analytics"
	"github.com/jhoicas/facturacion-india-api/internal/domain/repository"
	"github.com/jhoicas/facturacion-india-api/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type repoMock struct{ mock.Mock }

func (m *repoMock) MonthlyRevenue(ctx context.Context, userID, tz string, since time.Time) ([]repository.MonthlyRevenueResult, error) {
	args := m.Called(ctx, userID, tz, since)
	rows, _ := args.Get(0).([]repository.MonthlyRevenueResult)
	return rows, args.Error(1)
}

func (m *repoMock) TopCompanies(ctx context.Context, userID string, limit int) ([]repository.CompanyRevenueResult, error) {
	args := m.Called(ctx, userID, limit)
	rows, _ := args.Get(0).([]repository.CompanyRevenueResult)
	return rows, args.Error(1)
}

func (m *repoMock) TopItems(ctx context.Context, userID string, order repository.ItemSalesOrder, limit int) ([]repository.ItemSalesResult, error) {
	args := m.Called(ctx, userID, order, limit)
	rows, _ := args.Get(0).([]repository.ItemSalesResult)
	return rows, args.Error(1)
}

func (m *repoMock) RevenueByWeekday(ctx context.Context, userID, tz string) ([]repository.WeekdayRevenueResult, error) {
	args := m.Called(ctx, userID, tz)
	rows, _ := args.Get(0).([]repository.WeekdayRevenueResult)
	return rows, args.Error(1)
}

func (m *repoMock) Totals(ctx context.Context, userID string) (repository.SalesTotalsResult, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(repository.SalesTotalsResult), args.Error(1)
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

var ist = time.FixedZone("IST", 5*3600+1800)

func TestGrowthPercent(t *testing.T) {
	tests := []struct {
		cur, prev, want string
	}{
		{"150", "100", "50"},
		{"50", "100", "-50"},
		{"10", "0", "100"},
		{"0", "0", "0"},
		{"100", "300", "-66.67"},
	}
	for _, tt := range tests {
		got := analytics.GrowthPercent(d(tt.cur), d(tt.prev))
		assert.True(t, d(tt.want).Equal(got), "%s vs %s = %s", tt.cur, tt.prev, got)
	}
}

func TestSalesReport_DerivaIndicadores(t *testing.T) {
	repo := &repoMock{}
	now := time.Date(2026, 2, 19, 10, 0, 0, 0, ist)
	since := time.Date(2025, 3, 1, 0, 0, 0, 0, ist)

	repo.On("MonthlyRevenue", mock.Anything, "u1", "IST", since).Return([]repository.MonthlyRevenueResult{
		{Month: time.Date(2026, 1, 1, 0, 0, 0, 0, ist), Revenue: d("4000"), InvoiceCount: 2},
		{Month: time.Date(2026, 2, 1, 0, 0, 0, 0, ist), Revenue: d("6000"), InvoiceCount: 3},
	}, nil)
	repo.On("TopCompanies", mock.Anything, "u1", 5).Return([]repository.CompanyRevenueResult{
		{CompanyID: "c1", CompanyName: "Buyer Co", Revenue: d("7000"), InvoiceCount: 3},
	}, nil)
	repo.On("TopItems", mock.Anything, "u1", repository.ItemSalesByRevenue, 10).Return([]repository.ItemSalesResult{
		{ItemName: "Nut", Quantity: d("100"), Revenue: d("5000")},
	}, nil)
	repo.On("TopItems", mock.Anything, "u1", repository.ItemSalesByQuantity, 10).Return([]repository.ItemSalesResult{
		{ItemName: "Washer", Quantity: d("900"), Revenue: d("900")},
	}, nil)
	repo.On("RevenueByWeekday", mock.Anything, "u1", "IST").Return([]repository.WeekdayRevenueResult{
		{Weekday: 1, Revenue: d("2500"), InvoiceCount: 2},
	}, nil)
	repo.On("Totals", mock.Anything, "u1").Return(repository.SalesTotalsResult{
		InvoiceCount: 5, Revenue: d("10000"), Outstanding: d("2500"), CompanyCount: 4, RepeatCompanies: 1,
	}, nil)

	uc := analytics.NewSalesReportUseCase(repo, ist, logger.Nop()).WithClock(func() time.Time { return now })
	r, err := uc.GetSalesReport(context.Background(), "u1")
	require.NoError(t, err)

	assert.True(t, d("10000").Equal(r.TotalRevenue))
	assert.True(t, d("2000").Equal(r.AverageOrderValue))
	assert.True(t, d("75").Equal(r.CollectionRate))
	assert.True(t, d("25").Equal(r.RepeatCustomerRate))
	assert.True(t, d("6000").Equal(r.ThisMonthRevenue))
	assert.True(t, d("4000").Equal(r.LastMonthRevenue))
	assert.True(t, d("50").Equal(r.MonthOverMonth))

	require.Len(t, r.Monthly, 12)
	assert.Equal(t, "Mar 2025", r.Monthly[0].Month)
	assert.True(t, r.Monthly[0].Revenue.IsZero())
	assert.Equal(t, "Feb 2026", r.Monthly[11].Month)
	assert.Equal(t, 3, r.Monthly[11].InvoiceCount)

	require.Len(t, r.TopCompanies, 1)
	assert.Equal(t, "Buyer Co", r.TopCompanies[0].CompanyName)
	assert.Equal(t, "Nut", r.TopItemsByRevenue[0].ItemName)
	assert.Equal(t, "Washer", r.TopItemsByQuantity[0].ItemName)

	require.Len(t, r.ByWeekday, 7)
	assert.Equal(t, "Sunday", r.ByWeekday[0].Day)
	assert.Equal(t, "Monday", r.ByWeekday[1].Day)
	assert.True(t, d("2500").Equal(r.ByWeekday[1].Revenue))
	repo.AssertExpectations(t)
}

func TestSalesReport_SinVentas(t *testing.T) {
	repo := &repoMock{}
	repo.On("MonthlyRevenue", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)
	repo.On("TopCompanies", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)
	repo.On("TopItems", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)
	repo.On("RevenueByWeekday", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)
	repo.On("Totals", mock.Anything, mock.Anything).Return(repository.SalesTotalsResult{}, nil)

	r, err := analytics.NewSalesReportUseCase(repo, ist, logger.Nop()).GetSalesReport(context.Background(), "u1")
	require.NoError(t, err)
	assert.True(t, r.AverageOrderValue.IsZero())
	assert.True(t, r.CollectionRate.IsZero())
	assert.True(t, r.MonthOverMonth.IsZero())
	assert.Empty(t, r.TopCompanies)
	assert.Len(t, r.Monthly, 12)
}

func TestSalesReport_ErrorDeConsulta(t *testing.T) {
	repo := &repoMock{}
	boom := errors.New("db caída")
	repo.On("MonthlyRevenue", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)
	repo.On("TopCompanies", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)
	repo.On("TopItems", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)
	repo.On("RevenueByWeekday", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)
	repo.On("Totals", mock.Anything, mock.Anything).Return(repository.SalesTotalsResult{}, boom)

	_, err := analytics.NewSalesReportUseCase(repo, ist, logger.Nop()).GetSalesReport(context.Background(), "u1")
	assert.ErrorIs(t, err, boom)
}
