package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/facturacion-india-api/internal/application/auth"
	"github.com/jhoicas/facturacion-india-api/internal/application/billing"
	"github.com/jhoicas/facturacion-india-api/internal/application/billing/billingtest"
	"github.com/jhoicas/facturacion-india-api/internal/application/usecase"
	"github.com/jhoicas/facturacion-india-api/internal/domain/numbering"
	"github.com/jhoicas/facturacion-india-api/internal/infrastructure/pdf"
	"github.com/jhoicas/facturacion-india-api/internal/infrastructure/xlsx"
	apphttp "github.com/jhoicas/facturacion-india-api/internal/interfaces/http"
	"github.com/jhoicas/facturacion-india-api/pkg/logger"
)

// apiClient app completa sobre el almacenamiento en memoria.
type apiClient struct {
	t     *testing.T
	app   *fiber.App
	token string
}

func newAPI(t *testing.T) *apiClient {
	t.Helper()
	store := billingtest.NewStore()
	cfg := billing.Config{}
	log := logger.Nop()

	deps := apphttp.RouterDeps{
		AuthUC: auth.NewAuthUseCase(store.Users(), auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}).
			WithBcryptCost(bcrypt.MinCost),
		UserUC:    usecase.NewUserUseCase(store.Users()),
		CompanyUC: billing.NewCompanyUseCase(store.Companies(), store.TxRunner(), cfg, log),
		InvoiceUC: billing.NewInvoiceUseCase(store.TxRunner(), store.Invoices(), store.Companies(), store.Items(),
			numbering.NewGenerator(nil, nil), cfg, log),
		PaymentUC:   billing.NewPaymentUseCase(store.TxRunner(), store.Payments(), store.Companies(), log),
		PDFUC:       billing.NewPDFUseCase(store.Invoices(), store.Companies(), store.Settings(), pdf.NewMarotoPDFGenerator(), cfg, log),
		ReportUC:    billing.NewReportUseCase(store.Companies(), store.Invoices(), store.Payments(), xlsx.NewReportWriter(), cfg, log),
		InventoryUC: usecase.NewInventoryUseCase(store.Items(), log),
		SettingsUC:  usecase.NewSettingsUseCase(store.Settings()),
		JWTSecret:   testJWTSecret,
		Logger:      log,
	}
	app := fiber.New()
	apphttp.Router(app, deps)
	return &apiClient{t: t, app: app}
}

func (a *apiClient) do(method, path string, body any, headers ...string) (*http.Response, []byte) {
	a.t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(a.t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if a.token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+a.token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	return a.send(req)
}

func (a *apiClient) send(req *http.Request) (*http.Response, []byte) {
	a.t.Helper()
	resp, err := a.app.Test(req, -1)
	require.NoError(a.t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(a.t, err)
	return resp, out
}

func (a *apiClient) login() {
	a.t.Helper()
	resp, _ := a.do(http.MethodPost, "/api/auth/register", map[string]string{"email": "Owner@Acme.in", "password": "s3cret-pass", "name": "Owner"})
	require.Equal(a.t, http.StatusCreated, resp.StatusCode)

	resp, body := a.do(http.MethodPost, "/api/auth/login", map[string]string{"email": "owner@acme.in", "password": "s3cret-pass"})
	require.Equal(a.t, http.StatusOK, resp.StatusCode)
	var out struct {
		Token string `json:"token"`
	}
	require.NoError(a.t, json.Unmarshal(body, &out))
	require.NotEmpty(a.t, out.Token)
	a.token = out.Token
}

func decode(t *testing.T, body []byte) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(body, &m), string(body))
	return m
}

func TestAPI_AuthYPerfil(t *testing.T) {
	api := newAPI(t)

	resp, _ := api.do(http.MethodGet, "/api/companies", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	api.login()
	resp, body := api.do(http.MethodGet, "/api/auth/me", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "owner@acme.in", decode(t, body)["email"])

	resp, _ = api.do(http.MethodPost, "/api/auth/register", map[string]string{"email": "owner@acme.in", "password": "otra-clave-1"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	api.token = ""
	resp, body = api.do(http.MethodPost, "/api/auth/login", map[string]string{"email": "owner@acme.in", "password": "incorrecta"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", decode(t, body)["code"])
}

func TestAPI_FacturaPagoYDescargas(t *testing.T) {
	api := newAPI(t)
	api.login()

	resp, body := api.do(http.MethodPost, "/api/companies", map[string]any{"name": "Buyer Co", "state": "Gujarat", "pending_amount": "2000"})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	companyID := decode(t, body)["id"].(string)

	resp, body = api.do(http.MethodPost, "/api/companies", map[string]any{"name": " "})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decode(t, body)["code"])

	items := []map[string]any{{"key": "nut", "name": "Nut", "unit": "pcs", "rate": "50", "use_boxes": true, "boxes": "3", "items_per_box": "12"}}
	resp, body = api.do(http.MethodPost, "/api/invoices/preview", map[string]any{"items": items})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Equal(t, "1800", decode(t, body)["grand_total"])

	resp, body = api.do(http.MethodPost, "/api/invoices", map[string]any{"company_id": companyID, "items": items})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	inv := decode(t, body)
	invoiceID := inv["id"].(string)
	assert.Regexp(t, `^INV/\d{4}/\d{4}$`, inv["invoice_number"])

	resp, body = api.do(http.MethodGet, "/api/invoices/search?q="+inv["invoice_number"].(string)[9:], nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Equal(t, invoiceID, decode(t, body)["id"])

	// Pago idempotente: el reintento devuelve el mismo asiento.
	resp, body = api.do(http.MethodPost, "/api/companies/"+companyID+"/payments", map[string]any{"amount": "800"}, apphttp.HeaderIdempotencyKey, "k-1")
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	first := decode(t, body)
	assert.Equal(t, "3800", first["previous_balance"])
	resp, body = api.do(http.MethodPost, "/api/companies/"+companyID+"/payments", map[string]any{"amount": "800"}, apphttp.HeaderIdempotencyKey, "k-1")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, first["id"], decode(t, body)["id"])

	resp, body = api.do(http.MethodPost, "/api/companies/"+companyID+"/payments", map[string]any{"amount": "99999"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "EXCEEDS_PENDING", decode(t, body)["code"])

	resp, body = api.do(http.MethodGet, "/api/payments/pending", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "3000", decode(t, body)["total_pending"])

	resp, body = api.do(http.MethodGet, "/api/invoices/"+invoiceID+"/pdf?vehicle_no=GJ-15&include_balance=true", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), ".pdf")
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))

	resp, body = api.do(http.MethodGet, "/api/companies/"+companyID+"/report", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "Buyer_Co_Report.xlsx")
	assert.True(t, bytes.HasPrefix(body, []byte("PK")))

	resp, _ = api.do(http.MethodGet, "/api/invoices/no-existe", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPI_PapeleraDeEmpresas(t *testing.T) {
	api := newAPI(t)
	api.login()

	resp, body := api.do(http.MethodPost, "/api/companies", map[string]any{"name": "Old Co"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id := decode(t, body)["id"].(string)

	resp, _ = api.do(http.MethodDelete, "/api/companies/"+id+"/permanent", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, _ = api.do(http.MethodDelete, "/api/companies/"+id, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, body = api.do(http.MethodGet, "/api/companies/junk", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	junk := decode(t, body)["items"].([]any)
	require.Len(t, junk, 1)
	assert.EqualValues(t, 30, junk[0].(map[string]any)["days_until_purge"])

	resp, _ = api.do(http.MethodPost, "/api/companies/"+id+"/restore", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = api.do(http.MethodGet, "/api/companies/"+id, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAPI_ImportarListaDePrecios(t *testing.T) {
	api := newAPI(t)
	api.login()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "precios.csv")
	require.NoError(t, err)
	_, err = fw.Write([]byte("name,hsn,rate,gst\nNut,7318,50,18\nBolt,,10,18\n"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/inventory/import", &buf)
	req.Header.Set(fiber.HeaderContentType, mw.FormDataContentType())
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+api.token)
	resp, body := api.send(req)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	out := decode(t, body)
	assert.EqualValues(t, 1, out["created"])
	assert.Len(t, out["skipped"], 1)

	resp, body = api.do(http.MethodGet, "/api/inventory?search=nut", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode(t, body)["items"], 1)
}

func TestAPI_Ajustes(t *testing.T) {
	api := newAPI(t)
	api.login()

	resp, _ := api.do(http.MethodGet, "/api/settings/seller", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body := api.do(http.MethodPut, "/api/settings/seller", map[string]string{"name": "Acme Traders", "gst_no": "24aaaaa0000a1z5"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Equal(t, "24AAAAA0000A1Z5", decode(t, body)["gst_no"])

	resp, _ = api.do(http.MethodPut, "/api/settings/bank", map[string]string{"bank_name": "Yes Bank"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
