package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	apihttp "github.com/daniel06264831/menuia/internal/adapters/in/http"
	"github.com/daniel06264831/menuia/internal/adapters/out/memory"
	"github.com/daniel06264831/menuia/internal/core/application/dispatch"
	"github.com/daniel06264831/menuia/internal/core/application/usecases/commands"
	"github.com/daniel06264831/menuia/internal/core/application/usecases/queries"
	"github.com/daniel06264831/menuia/internal/core/domain/services"
	"github.com/daniel06264831/menuia/internal/jobs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

type uowFactoryFunc func() commands.UoW

func (f uowFactoryFunc) Create() commands.UoW { return f() }

type driverUoWFactoryFunc func() commands.DriverUoW

func (f driverUoWFactoryFunc) Create() commands.DriverUoW { return f() }

type shopUoWFactoryFunc func() commands.ShopUoW

func (f shopUoWFactoryFunc) Create() commands.ShopUoW { return f() }

type ServerTestSuite struct {
	suite.Suite
	store   *memory.Store
	channel *memory.EventChannel
	e       *echo.Echo
}

func (suite *ServerTestSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	suite.store = memory.NewStore()
	suite.channel = memory.NewEventChannel()
	uows := memory.NewUnitOfWorkFactory(suite.store, nil)

	policy := services.DefaultScoringPolicy()
	policy.JitterRange = 0
	coordinator := dispatch.NewCoordinator(
		uowFactoryFunc(func() commands.UoW { return uows.Create() }),
		services.NewDispatchScorer(policy),
		suite.channel,
		jobs.NewRetryQueue(),
		dispatch.DefaultSettings(),
		logger,
	)

	reader := uows.Create()
	server := apihttp.NewServer(
		coordinator,
		commands.NewRegisterShopCommandHandler(shopUoWFactoryFunc(func() commands.ShopUoW { return uows.Create() })),
		commands.NewRegisterDriverCommandHandler(driverUoWFactoryFunc(func() commands.DriverUoW { return uows.Create() })),
		queries.NewAuthenticateShopQueryHandler(reader.ShopRepository()),
		queries.NewAuthenticateDriverQueryHandler(reader.DriverRepository()),
		queries.NewListShopOrdersQueryHandler(suite.store),
		queries.NewGetShopOrderStatusQueryHandler(reader.OrderRepository()),
		queries.NewGetCustomerActiveOrdersQueryHandler(suite.store),
		logger,
	)

	doc, err := apihttp.LoadAPIDocument(context.Background())
	suite.Require().NoError(err)

	suite.e = apihttp.NewEcho(server, doc, http.NotFoundHandler(), "error", logger)
}

func (suite *ServerTestSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	suite.e.ServeHTTP(rec, req)
	return rec
}

func (suite *ServerTestSuite) decode(rec *httptest.ResponseRecorder, v any) {
	suite.Require().NoError(json.Unmarshal(rec.Body.Bytes(), v))
}

func (suite *ServerTestSuite) registerShop() {
	rec := suite.do(http.MethodPost, "/api/v1/shops/register", map[string]any{
		"slug":     "tacos",
		"name":     "Tacos El Guero",
		"password": "secreto",
		"lat":      20.0,
		"lng":      -100.0,
	})
	suite.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
}

func (suite *ServerTestSuite) placeOrder(phone, payment string) *httptest.ResponseRecorder {
	return suite.do(http.MethodPost, "/api/v1/orders", map[string]any{
		"slug": "tacos",
		"order": map[string]any{
			"customerName":  "Ana",
			"customerPhone": phone,
			"address":       "Av. Madero 100",
			"items":         []map[string]any{{"name": "Taco", "quantity": 2, "price": 25}},
			"paymentMethod": payment,
			"type":          "domicilio",
		},
	})
}

func (suite *ServerTestSuite) TestHealth() {
	rec := suite.do(http.MethodGet, "/health", nil)
	suite.Equal(http.StatusOK, rec.Code)
	suite.JSONEq(`{"status":"ok"}`, rec.Body.String())
}

func (suite *ServerTestSuite) TestOpenAPIDocument() {
	rec := suite.do(http.MethodGet, "/openapi.json", nil)
	suite.Require().Equal(http.StatusOK, rec.Code)

	var doc map[string]any
	suite.decode(rec, &doc)
	suite.Equal("3.0.3", doc["openapi"])
	suite.Contains(doc["paths"], "/orders/update-status")
}

func (suite *ServerTestSuite) TestRegisterShop_DuplicateSlugConflicts() {
	suite.registerShop()

	rec := suite.do(http.MethodPost, "/api/v1/shops/register", map[string]any{
		"slug": "tacos", "name": "Otro", "password": "x",
	})
	suite.Equal(http.StatusConflict, rec.Code)

	var body apihttp.Error
	suite.decode(rec, &body)
	suite.Equal(http.StatusConflict, body.Code)
}

func (suite *ServerTestSuite) TestPlaceOrder_NotifiesShopAndRejectsSecondCashOrder() {
	suite.registerShop()

	rec := suite.placeOrder("4431234567", "efectivo")
	suite.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	var placed apihttp.PlaceOrderResponse
	suite.decode(rec, &placed)
	suite.True(placed.Success)

	rec = suite.placeOrder("443-123-4567", "efectivo")
	suite.Equal(http.StatusConflict, rec.Code)

	rec = suite.placeOrder("4431234567", "tarjeta")
	suite.Equal(http.StatusCreated, rec.Code)
}

func (suite *ServerTestSuite) TestPlaceOrder_UnknownShop() {
	rec := suite.placeOrder("4431234567", "efectivo")
	suite.Equal(http.StatusNotFound, rec.Code)
}

func (suite *ServerTestSuite) TestPlaceOrder_Invalid() {
	suite.registerShop()

	rec := suite.do(http.MethodPost, "/api/v1/orders", map[string]any{
		"slug":  "tacos",
		"order": map[string]any{"customerName": "Ana"},
	})
	suite.Equal(http.StatusBadRequest, rec.Code)
}

func (suite *ServerTestSuite) TestShopEndpoints_RequireCredentials() {
	suite.registerShop()

	rec := suite.do(http.MethodPost, "/api/v1/orders/list", map[string]any{"slug": "tacos", "password": "wrong"})
	suite.Equal(http.StatusUnauthorized, rec.Code)

	rec = suite.do(http.MethodPost, "/api/v1/orders/list", map[string]any{"slug": "tacos"})
	suite.Equal(http.StatusBadRequest, rec.Code)
}

func (suite *ServerTestSuite) TestShopOrderLifecycle() {
	suite.registerShop()

	var placed apihttp.PlaceOrderResponse
	suite.decode(suite.placeOrder("4431234567", "efectivo"), &placed)

	rec := suite.do(http.MethodPost, "/api/v1/orders/list", map[string]any{
		"slug": "tacos", "password": "secreto", "limit": 10,
	})
	suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var list apihttp.OrdersResponse
	suite.decode(rec, &list)
	suite.Require().Len(list.Orders, 1)
	suite.Equal(placed.OrderID, list.Orders[0].ID)

	rec = suite.do(http.MethodPost, "/api/v1/orders/status", map[string]any{
		"slug": "tacos", "password": "secreto", "orderId": placed.OrderID.String(),
	})
	suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var status apihttp.OrderResponse
	suite.decode(rec, &status)
	suite.Equal("pending", status.Order.OrderStatus)

	rec = suite.do(http.MethodPost, "/api/v1/orders/update-status", map[string]any{
		"slug": "tacos", "password": "secreto", "orderId": placed.OrderID.String(), "status": "shipped",
	})
	suite.Equal(http.StatusBadRequest, rec.Code)

	rec = suite.do(http.MethodPost, "/api/v1/orders/update-status", map[string]any{
		"slug": "tacos", "password": "secreto", "orderId": placed.OrderID.String(), "status": "cancelled",
	})
	suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	suite.decode(rec, &status)
	suite.Equal("cancelled", status.Order.OrderStatus)

	rec = suite.do(http.MethodGet, "/api/v1/customers/4431234567/orders", nil)
	suite.Require().Equal(http.StatusOK, rec.Code)
	suite.decode(rec, &list)
	suite.Empty(list.Orders)
}

func (suite *ServerTestSuite) TestOrderStatus_OtherShopIsNotFound() {
	suite.registerShop()
	var placed apihttp.PlaceOrderResponse
	suite.decode(suite.placeOrder("4431234567", "efectivo"), &placed)

	rec := suite.do(http.MethodPost, "/api/v1/shops/register", map[string]any{
		"slug": "pizza", "name": "Pizza", "password": "otro",
	})
	suite.Require().Equal(http.StatusCreated, rec.Code)

	rec = suite.do(http.MethodPost, "/api/v1/orders/status", map[string]any{
		"slug": "pizza", "password": "otro", "orderId": placed.OrderID.String(),
	})
	suite.Equal(http.StatusNotFound, rec.Code)
}

func (suite *ServerTestSuite) TestCustomerOrders() {
	suite.registerShop()
	suite.Require().Equal(http.StatusCreated, suite.placeOrder("4431234567", "efectivo").Code)

	rec := suite.do(http.MethodGet, "/api/v1/customers/4431234567/orders", nil)
	suite.Require().Equal(http.StatusOK, rec.Code)

	var list apihttp.OrdersResponse
	suite.decode(rec, &list)
	suite.Len(list.Orders, 1)
}

func (suite *ServerTestSuite) TestDriverRegisterAndLogin() {
	rec := suite.do(http.MethodPost, "/api/v1/drivers/register", map[string]any{
		"name": "Luis", "phone": "443 100 0001", "password": "1234", "vehicle": "moto",
	})
	suite.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	var registered apihttp.DriverResponse
	suite.decode(rec, &registered)
	suite.Equal("offline", registered.Driver.Status)

	rec = suite.do(http.MethodPost, "/api/v1/drivers/register", map[string]any{
		"name": "Otro", "phone": "4431000001", "password": "x",
	})
	suite.Equal(http.StatusConflict, rec.Code)

	rec = suite.do(http.MethodPost, "/api/v1/drivers/login", map[string]any{"phone": "4431000001", "password": "1234"})
	suite.Require().Equal(http.StatusOK, rec.Code)
	var login apihttp.DriverResponse
	suite.decode(rec, &login)
	suite.Equal(registered.Driver.ID, login.Driver.ID)

	rec = suite.do(http.MethodPost, "/api/v1/drivers/login", map[string]any{"phone": "4431000001", "password": "nope"})
	suite.Equal(http.StatusUnauthorized, rec.Code)
}

func TestServerTestSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}
