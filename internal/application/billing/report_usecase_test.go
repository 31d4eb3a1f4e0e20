package billing_test

import (
	"context"
	"testing"
	"time"

	"github.com/jhoicas/facturacion-india-api/internal/application/billing"
	"github.com/jhoicas/facturacion-india-api/internal/application/billing/billingtest"
	"github.com/jhoicas/facturacion-india-api/internal/application/dto"
	"github.com/jhoicas/facturacion-india-api/internal/domain"
	"github.com/jhoicas/facturacion-india-api/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type reportWriterMock struct{ mock.Mock }

func (m *reportWriterMock) Write(ctx context.Context, r billing.CompanyReport) ([]byte, error) {
	args := m.Called(ctx, r)
	b, _ := args.Get(0).([]byte)
	return b, args.Error(1)
}

func TestReportFileName(t *testing.T) {
	tests := map[string]string{
		"Buyer Co":                               "Buyer_Co_Report.xlsx",
		"Shree Ganesh & Sons (Vapi)":             "Shree_Ganesh___Sons__Vapi__Report.xlsx",
		"A very long company name that overflows": "A_very_long_company_name_that__Report.xlsx",
		"नमस्ते Co":                               "_______Co_Report.xlsx",
	}
	for in, want := range tests {
		assert.Equal(t, want, billing.ReportFileName(in), in)
	}
}

func TestReport_ReuneFacturasEnOrdenYPagos(t *testing.T) {
	store := billingtest.NewStore()
	seedCompany(t, store, "c1", "Buyer Co", "0")
	ctx := context.Background()

	clock := testNow
	invoices := billing.NewInvoiceUseCase(store.TxRunner(), store.Invoices(), store.Companies(), store.Items(),
		&seqNumberer{}, testConfig(), logger.Nop()).WithClock(func() time.Time { return clock })
	first, err := invoices.Create(ctx, testUser, dto.CreateInvoiceRequest{CompanyID: "c1", Items: []dto.InvoiceLineRequest{line("a", "100", "1")}})
	require.NoError(t, err)
	clock = clock.Add(time.Hour)
	second, err := invoices.Create(ctx, testUser, dto.CreateInvoiceRequest{CompanyID: "c1", Items: []dto.InvoiceLineRequest{line("b", "50", "2"), line("c", "5", "1")}})
	require.NoError(t, err)
	_, err = newPaymentUC(store).Record(ctx, testUser, "c1", "", dto.RecordPaymentRequest{Amount: d("60")})
	require.NoError(t, err)

	w := &reportWriterMock{}
	w.On("Write", mock.Anything, mock.Anything).Return([]byte("xlsx"), nil)
	uc := billing.NewReportUseCase(store.Companies(), store.Invoices(), store.Payments(), w, testConfig(), logger.Nop()).
		WithClock(fixedClock)

	data, name, err := uc.ExportCompany(ctx, testUser, "c1")
	require.NoError(t, err)
	assert.Equal(t, []byte("xlsx"), data)
	assert.Equal(t, "Buyer_Co_Report.xlsx", name)

	report := w.Calls[0].Arguments.Get(1).(billing.CompanyReport)
	assert.Equal(t, "Buyer Co", report.Company.Name)
	require.Len(t, report.Invoices, 2)
	assert.Equal(t, first.ID, report.Invoices[0].Invoice.ID)
	assert.Equal(t, second.ID, report.Invoices[1].Invoice.ID)
	assert.Len(t, report.Invoices[1].Lines, 2)
	require.Len(t, report.Payments, 1)
	assert.Equal(t, testNow, report.GeneratedAt)

	_, _, err = uc.ExportCompany(ctx, testUser, "otra")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
