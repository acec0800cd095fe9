package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/brecho-pos/internal/application/analytics"
	"github.com/jhoicas/brecho-pos/internal/application/auth"
	"github.com/jhoicas/brecho-pos/internal/application/consignment"
	"github.com/jhoicas/brecho-pos/internal/application/coupon"
	"github.com/jhoicas/brecho-pos/internal/application/customer"
	"github.com/jhoicas/brecho-pos/internal/application/dto"
	"github.com/jhoicas/brecho-pos/internal/application/inventory"
	"github.com/jhoicas/brecho-pos/internal/application/sales"
	"github.com/jhoicas/brecho-pos/internal/application/state"
	"github.com/jhoicas/brecho-pos/internal/infrastructure/memory"
	"github.com/jhoicas/brecho-pos/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/brecho-pos/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type apiFixture struct {
	app     *fiber.App
	authUC  *auth.AuthUseCase
	admin   string // token
	caixa   string // token
	caixaID string
}

func newAPI(t *testing.T) *apiFixture {
	t.Helper()
	ctx := context.Background()
	store := memory.New()
	repos := store.Repos()

	authUC := auth.NewAuthUseCase(repos.Profiles, store, auth.JWTConfig{
		Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer,
	}, nil)
	itemUC := inventory.NewItemUseCase(repos.Items, repos.Vendors, nil, nil)
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:      authUC,
		ItemUC:      itemUC,
		VendorUC:    consignment.NewVendorUseCase(repos, store, decimal.RequireFromString("0.5"), nil),
		CustomerUC:  customer.NewCustomerUseCase(repos.Customers, repos.CustomerTxs),
		CouponUC:    coupon.NewCouponUseCase(repos.Coupons),
		SaleUC:      sales.NewSaleUseCase(repos, store, itemUC, pdf.NewMarotoPDFGenerator(), sales.Config{StoreName: "Brechó"}, nil),
		DashboardUC: analytics.NewDashboardUseCase(repos),
		StateUC:     state.NewStateUseCase(repos),
		JWTSecret:   testJWTSecret,
	})

	_, err := authUC.AddProfile(ctx, dto.CreateProfileRequest{Name: "Ana", Email: "ana@brecho.com", Password: "secreta1", Role: "ADMIN"})
	require.NoError(t, err)
	caixa, err := authUC.AddProfile(ctx, dto.CreateProfileRequest{Name: "Bia", Email: "bia@brecho.com", Password: "secreta2", Role: "CAIXA"})
	require.NoError(t, err)

	f := &apiFixture{app: app, authUC: authUC, caixaID: caixa.ID}
	f.admin = f.login(t, "ana@brecho.com", "secreta1")
	f.caixa = f.login(t, "bia@brecho.com", "secreta2")
	return f
}

func (f *apiFixture) do(t *testing.T, method, path, token string, body interface{}) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, out
}

func (f *apiFixture) login(t *testing.T, email, password string) string {
	t.Helper()
	resp, body := f.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: email, Password: password})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var out dto.LoginResponse
	require.NoError(t, json.Unmarshal(body, &out))
	return out.Token
}

func decode[T any](t *testing.T, body []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(body, &v), string(body))
	return v
}

// ──────────────────────────────────────────────────────────────────────────────
// Auth y perfiles
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_CredencialesIncorrectas(t *testing.T) {
	f := newAPI(t)
	resp, body := f.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "ana@brecho.com", Password: "otra"})

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, string(body), "INVALID_CREDENTIALS")
}

func TestLogin_CamposVacios(t *testing.T) {
	f := newAPI(t)
	resp, _ := f.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHealth_Publico(t *testing.T) {
	f := newAPI(t)
	resp, _ := f.do(t, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestProfiles_CaixaNoPuedeListar(t *testing.T) {
	f := newAPI(t)
	resp, _ := f.do(t, http.MethodGet, "/api/profiles", f.caixa, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestProfiles_DesactivarCaixaRevocaSuSesion(t *testing.T) {
	f := newAPI(t)

	resp, body := f.do(t, http.MethodPatch, "/api/profiles/"+f.caixaID+"/toggle", f.admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.False(t, decode[dto.ProfileResponse](t, body).Active)

	resp, body = f.do(t, http.MethodGet, "/api/auth/me", f.caixa, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, string(body), "SESSION_REVOKED")

	resp, body = f.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "bia@brecho.com", Password: "secreta2"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Contains(t, string(body), "ACCOUNT_DISABLED")
}

func TestProfiles_AdminNoPuedeEliminarseASiMismo(t *testing.T) {
	f := newAPI(t)
	me := decode[dto.ProfileResponse](t, func() []byte {
		_, b := f.do(t, http.MethodGet, "/api/auth/me", f.admin, nil)
		return b
	}())

	resp, body := f.do(t, http.MethodDelete, "/api/profiles/"+me.ID, f.admin, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Contains(t, string(body), "SELF_PROTECTION")
}

// ──────────────────────────────────────────────────────────────────────────────
// Flujo PDV completo
// ──────────────────────────────────────────────────────────────────────────────

func TestFlujo_ConsignacionVentaYComprobante(t *testing.T) {
	f := newAPI(t)

	resp, body := f.do(t, http.MethodPost, "/api/vendors", f.caixa, map[string]interface{}{"name": "Carla", "phone": "11999"})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	vendor := decode[dto.VendorResponse](t, body)

	resp, body = f.do(t, http.MethodPost, "/api/items", f.caixa, map[string]interface{}{
		"image": "https://cdn.example.com/vestido.png", "category": "Vestido", "size": "M",
		"condition": "GOOD", "price": 100, "vendor_id": vendor.ID,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	item := decode[dto.ItemResponse](t, body)
	assert.Equal(t, "EVALUATION", item.Status)

	// Una pieza en evaluación no se vende.
	resp, body = f.do(t, http.MethodPost, "/api/sales/quote", f.caixa, dto.QuoteRequest{ItemIDs: []string{item.ID}})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, string(body), "ITEM_UNAVAILABLE")

	resp, body = f.do(t, http.MethodPost, "/api/items/"+item.ID+"/approve", f.caixa, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	// Cupón inexistente: cotiza sin descuento y avisa.
	resp, body = f.do(t, http.MethodPost, "/api/sales/quote", f.caixa, dto.QuoteRequest{ItemIDs: []string{item.ID}, CouponCode: "NOPE"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	quote := decode[dto.QuoteResponse](t, body)
	assert.True(t, quote.Total.Equal(decimal.NewFromInt(100)))
	assert.NotEmpty(t, quote.CouponError)

	resp, body = f.do(t, http.MethodPost, "/api/coupons", f.admin, map[string]interface{}{"code": "DEZ", "type": "PERCENT", "value": 10})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	resp, body = f.do(t, http.MethodPost, "/api/sales", f.caixa, map[string]interface{}{
		"item_ids": []string{item.ID}, "coupon_code": "DEZ", "payment_method": "PIX",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	checkout := decode[dto.CheckoutResponse](t, body)
	assert.True(t, checkout.Sale.Total.Equal(decimal.NewFromInt(90)))
	require.Len(t, checkout.Vendors, 1)
	assert.True(t, checkout.Vendors[0].Balance.Equal(decimal.NewFromInt(50)))

	// La misma pieza no se vende dos veces.
	resp, body = f.do(t, http.MethodPost, "/api/sales", f.caixa, map[string]interface{}{"item_ids": []string{item.ID}})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, string(body), "ITEM_UNAVAILABLE")

	resp, body = f.do(t, http.MethodGet, "/api/sales/"+checkout.Sale.ID+"/receipt", f.caixa, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), ".pdf")
	assert.Equal(t, "%PDF", string(body[:4]))

	// Repasse mayor que el saldo.
	resp, body = f.do(t, http.MethodPost, "/api/vendors/"+vendor.ID+"/pay", f.caixa, map[string]interface{}{"amount": 80})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, string(body), "INSUFFICIENT_BALANCE")

	resp, body = f.do(t, http.MethodPost, "/api/vendors/"+vendor.ID+"/pay", f.caixa, map[string]interface{}{"amount": 50})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	paid := decode[dto.PayVendorResponse](t, body)
	assert.True(t, paid.Vendor.Balance.IsZero())

	resp, body = f.do(t, http.MethodGet, "/api/dashboard/summary", f.caixa, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	summary := decode[dto.DashboardSummaryDTO](t, body)
	assert.Equal(t, 1, summary.TodaySalesCount)
}

func TestCupones_CaixaNoPuedeCrear(t *testing.T) {
	f := newAPI(t)
	resp, _ := f.do(t, http.MethodPost, "/api/coupons", f.caixa, map[string]interface{}{"code": "X", "type": "FIXED", "value": 5})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestItems_NoEncontrada(t *testing.T) {
	f := newAPI(t)
	resp, body := f.do(t, http.MethodGet, "/api/items/no-existe", f.caixa, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, string(body), "NOT_FOUND")
}

func TestItems_ValidacionSinImagen(t *testing.T) {
	f := newAPI(t)
	resp, body := f.do(t, http.MethodPost, "/api/items", f.caixa, map[string]interface{}{"category": "Saia", "price": 10, "condition": "NEW"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(body), "VALIDATION")
}

func TestState_SoloAdminRecibePerfiles(t *testing.T) {
	f := newAPI(t)

	_, body := f.do(t, http.MethodGet, "/api/state", f.admin, nil)
	assert.Len(t, decode[dto.StateResponse](t, body).Profiles, 2)

	_, body = f.do(t, http.MethodGet, "/api/state", f.caixa, nil)
	assert.Empty(t, decode[dto.StateResponse](t, body).Profiles)
}

func TestTradeIn_AcreditaYRegistraExtracto(t *testing.T) {
	f := newAPI(t)

	resp, body := f.do(t, http.MethodPost, "/api/customers", f.caixa, map[string]interface{}{"name": "Duda"})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	cust := decode[dto.CustomerResponse](t, body)

	resp, body = f.do(t, http.MethodPost, "/api/sales/trade-in", f.caixa, map[string]interface{}{
		"customer_id": cust.ID, "credit_amount": 30,
		"items": []map[string]interface{}{{"image": "https://cdn.example.com/jaqueta.png", "category": "Jaqueta", "size": "G"}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	out := decode[dto.TradeInResponse](t, body)
	assert.True(t, out.Customer.StoreCredit.Equal(decimal.NewFromInt(30)))
	require.Len(t, out.Items, 1)
	assert.True(t, out.Items[0].Price.Equal(decimal.NewFromInt(60)))

	resp, body = f.do(t, http.MethodGet, "/api/customers/"+cust.ID+"/transactions", f.caixa, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	txs := decode[[]dto.CustomerTransactionResponse](t, body)
	require.Len(t, txs, 1)
	assert.Equal(t, "CREDIT_ADDED", txs[0].Type)
}
