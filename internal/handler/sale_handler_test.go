package handler

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"go-retail-ws/internal/apperr"
	"go-retail-ws/internal/model"
	"go-retail-ws/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCheckout struct {
	sale *model.Sale
	err  error

	gotReq   *model.CheckoutRequest
	gotActor *service.AuthUser
}

func (s *stubCheckout) Checkout(req *model.CheckoutRequest, actor *service.AuthUser) (*model.Sale, error) {
	s.gotReq = req
	s.gotActor = actor
	return s.sale, s.err
}

type stubSales struct {
	sales []model.Sale
	sale  *model.Sale
	err   error
}

func (s *stubSales) GetAllSales() ([]model.Sale, error) { return s.sales, s.err }
func (s *stubSales) GetSaleByID(uuid.UUID) (*model.Sale, error) { return s.sale, s.err }
func (s *stubSales) GetPurchasesByEmail(string) ([]model.Sale, error) { return s.sales, s.err }
func (s *stubSales) BackfillClientTypes() (int, int, error) { return 0, 0, s.err }

func newSaleApp(checkout *stubCheckout, sales *stubSales) *fiber.App {
	h := NewSaleHandler(checkout, sales)
	app := fiber.New()
	app.Post("/api/sales", h.CreateSale)
	app.Get("/api/sales/:id", h.GetSale)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path, body string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var parsed map[string]interface{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &parsed))
	}
	return resp.StatusCode, parsed
}

func TestCreateSaleInvalidJSON(t *testing.T) {
	app := newSaleApp(&stubCheckout{}, &stubSales{})

	status, body := postJSON(t, app, "/api/sales", `{not json`)

	assert.Equal(t, 400, status)
	assert.Equal(t, "Invalid JSON", body["error"])
}

func TestCreateSaleInsufficientStockIsConflict(t *testing.T) {
	stock := &apperr.InsufficientStockError{
		ProductID:   uuid.New(),
		ProductName: "ABRIGO",
		Available:   1,
		Requested:   3,
	}
	app := newSaleApp(&stubCheckout{err: stock}, &stubSales{})

	status, body := postJSON(t, app, "/api/sales",
		`{"customerName":"Ana","customerEmail":"ana@example.com","items":[],"total":100}`)

	assert.Equal(t, 409, status)
	assert.Contains(t, body["error"], "ABRIGO")
}

func TestCreateSaleSuccess(t *testing.T) {
	sale := &model.Sale{Total: 200.50, Status: model.SaleStatusCompleted}
	sale.ID = uuid.New()
	checkout := &stubCheckout{sale: sale}
	app := newSaleApp(checkout, &stubSales{})

	status, body := postJSON(t, app, "/api/sales",
		`{"customerName":"Ana","customerEmail":"ana@example.com","items":[{"productId":"`+uuid.NewString()+`","quantity":"2","price":100.25}],"total":"200.50"}`)

	require.Equal(t, 200, status)
	assert.Equal(t, sale.ID.String(), body["id"])
	assert.InDelta(t, 200.50, body["total"], 0.0001)

	// String-typed quantity and total coerce on the way in.
	require.NotNil(t, checkout.gotReq)
	require.Len(t, checkout.gotReq.Items, 1)
	assert.Equal(t, 2, checkout.gotReq.Items[0].Quantity.Int())
	assert.InDelta(t, 200.50, checkout.gotReq.Total.Float(), 0.0001)
	assert.Nil(t, checkout.gotActor)
}

func TestCreateSaleInternalErrorIsMasked(t *testing.T) {
	app := newSaleApp(&stubCheckout{err: assert.AnError}, &stubSales{})

	status, body := postJSON(t, app, "/api/sales",
		`{"customerName":"Ana","customerEmail":"ana@example.com","items":[],"total":100}`)

	assert.Equal(t, 500, status)
	assert.Equal(t, "Internal Server Error", body["error"])
}

func TestGetSaleInvalidID(t *testing.T) {
	app := newSaleApp(&stubCheckout{}, &stubSales{})

	req := httptest.NewRequest("GET", "/api/sales/not-a-uuid", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, 400, resp.StatusCode)
}

func TestGetSaleNotFound(t *testing.T) {
	app := newSaleApp(&stubCheckout{}, &stubSales{err: apperr.NotFound("sale")})

	req := httptest.NewRequest("GET", "/api/sales/"+uuid.NewString(), nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, 404, resp.StatusCode)
}
