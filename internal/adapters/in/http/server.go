package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/daniel06264831/menuia/internal/core/application/dispatch"
	"github.com/daniel06264831/menuia/internal/core/application/usecases/commands"
	"github.com/daniel06264831/menuia/internal/core/application/usecases/queries"
	"github.com/daniel06264831/menuia/internal/core/domain/model/kernel"
	"github.com/daniel06264831/menuia/internal/core/domain/model/shop"
	"github.com/daniel06264831/menuia/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// OrderService is the part of dispatch.Coordinator the HTTP surface uses.
type OrderService interface {
	PlaceOrder(ctx context.Context, shopSlug string, req dispatch.OrderRequest) (queries.OrderView, error)
	UpdateShopOrderStatus(ctx context.Context, shopSlug string, orderID kernel.UUID, status string) (queries.OrderView, error)
}

// Server handles the REST endpoints under /api/v1.
type Server struct {
	orders OrderService

	// Command handlers
	registerShopHandler   commands.RegisterShopCommandHandler
	registerDriverHandler commands.RegisterDriverCommandHandler

	// Query handlers
	authenticateShopHandler   queries.AuthenticateShopQueryHandler
	authenticateDriverHandler queries.AuthenticateDriverQueryHandler
	listShopOrdersHandler     queries.ListShopOrdersQueryHandler
	shopOrderStatusHandler    queries.GetShopOrderStatusQueryHandler
	customerOrdersHandler     queries.GetCustomerActiveOrdersQueryHandler

	now    func() time.Time
	logger *slog.Logger
}

func NewServer(
	orders OrderService,
	registerShopHandler commands.RegisterShopCommandHandler,
	registerDriverHandler commands.RegisterDriverCommandHandler,
	authenticateShopHandler queries.AuthenticateShopQueryHandler,
	authenticateDriverHandler queries.AuthenticateDriverQueryHandler,
	listShopOrdersHandler queries.ListShopOrdersQueryHandler,
	shopOrderStatusHandler queries.GetShopOrderStatusQueryHandler,
	customerOrdersHandler queries.GetCustomerActiveOrdersQueryHandler,
	logger *slog.Logger,
) *Server {
	return &Server{
		orders:                    orders,
		registerShopHandler:       registerShopHandler,
		registerDriverHandler:     registerDriverHandler,
		authenticateShopHandler:   authenticateShopHandler,
		authenticateDriverHandler: authenticateDriverHandler,
		listShopOrdersHandler:     listShopOrdersHandler,
		shopOrderStatusHandler:    shopOrderStatusHandler,
		customerOrdersHandler:     customerOrdersHandler,
		now:                       time.Now,
		logger:                    logger.With("component", "http_server"),
	}
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// RegisterShop handles POST /api/v1/shops/register.
func (s *Server) RegisterShop(ctx echo.Context) error {
	var req RegisterShopRequest
	if err := ctx.Bind(&req); err != nil {
		return s.fail(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	var (
		location kernel.GeoPoint
		errList  []error
	)
	if req.Lat != nil && req.Lng != nil {
		point, err := kernel.NewGeoPoint(*req.Lat, *req.Lng)
		errList = append(errList, err)
		location = point
	}
	hours, err := shop.NewHours(req.Open, req.Close)
	errList = append(errList, err)
	if err = errors.Join(errList...); err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewRegisterShopCommand(req.Slug, req.Name, req.Password, location, hours, s.now())
	if err != nil {
		return s.fail(ctx, err)
	}

	registered, err := s.registerShopHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, RegisterShopResponse{
		Success: true,
		Shop:    queries.NewShopView(registered),
	})
}

// PlaceOrder handles POST /api/v1/orders.
func (s *Server) PlaceOrder(ctx echo.Context) error {
	var req PlaceOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return s.fail(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}
	if strings.TrimSpace(req.Slug) == "" {
		return s.fail(ctx, errs.NewValueIsRequiredError("slug"))
	}

	view, err := s.orders.PlaceOrder(ctx.Request().Context(), req.Slug, req.Order)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, PlaceOrderResponse{Success: true, OrderID: view.ID})
}

// ListOrders handles POST /api/v1/orders/list.
func (s *Server) ListOrders(ctx echo.Context) error {
	var req ListOrdersRequest
	if err := ctx.Bind(&req); err != nil {
		return s.fail(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	slug, err := s.authenticateShop(ctx, req.ShopCredentials)
	if err != nil {
		return s.fail(ctx, err)
	}

	from, fromErr := parseDate("startDate", req.StartDate, false)
	to, toErr := parseDate("endDate", req.EndDate, true)
	if err = errors.Join(fromErr, toErr); err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewListShopOrdersQuery(slug, from, to, req.Limit)
	if err != nil {
		return s.fail(ctx, err)
	}

	orders, err := s.listShopOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, OrdersResponse{Success: true, Orders: orders})
}

// OrderStatus handles POST /api/v1/orders/status.
func (s *Server) OrderStatus(ctx echo.Context) error {
	var req OrderStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return s.fail(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	slug, err := s.authenticateShop(ctx, req.ShopCredentials)
	if err != nil {
		return s.fail(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(req.OrderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetShopOrderStatusQuery(slug, orderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	view, err := s.shopOrderStatusHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, OrderResponse{Success: true, Order: view})
}

// UpdateOrderStatus handles POST /api/v1/orders/update-status.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	var req UpdateOrderStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return s.fail(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	slug, err := s.authenticateShop(ctx, req.ShopCredentials)
	if err != nil {
		return s.fail(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(req.OrderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	view, err := s.orders.UpdateShopOrderStatus(ctx.Request().Context(), slug, orderID, req.Status)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, OrderResponse{Success: true, Order: view})
}

// CustomerOrders handles GET /api/v1/customers/{phone}/orders.
func (s *Server) CustomerOrders(ctx echo.Context) error {
	var phone string
	err := runtime.BindStyledParameterWithOptions("simple", "phone", ctx.Param("phone"), &phone,
		runtime.BindStyledParameterOptions{
			ParamLocation: runtime.ParamLocationPath,
			Explode:       false,
			Required:      true,
		})
	if err != nil {
		return s.fail(ctx, errs.NewValueIsInvalidErrorWithCause("phone", err))
	}

	query, err := queries.NewGetCustomerActiveOrdersQuery(phone)
	if err != nil {
		return s.fail(ctx, err)
	}

	orders, err := s.customerOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, OrdersResponse{Success: true, Orders: orders})
}

// RegisterDriver handles POST /api/v1/drivers/register.
func (s *Server) RegisterDriver(ctx echo.Context) error {
	var req RegisterDriverRequest
	if err := ctx.Bind(&req); err != nil {
		return s.fail(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	cmd, err := commands.NewRegisterDriverCommand(kernel.NewUUID(), req.Name, req.Phone, req.Password, req.Vehicle, s.now())
	if err != nil {
		return s.fail(ctx, err)
	}

	registered, err := s.registerDriverHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, DriverResponse{Success: true, Driver: queries.NewDriverView(registered)})
}

// DriverLogin handles POST /api/v1/drivers/login. It only checks the
// credentials; presence changes happen on the socket.
func (s *Server) DriverLogin(ctx echo.Context) error {
	var req DriverLoginRequest
	if err := ctx.Bind(&req); err != nil {
		return s.fail(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	query, err := queries.NewAuthenticateDriverQuery(req.Phone, req.Password)
	if err != nil {
		return s.fail(ctx, err)
	}

	account, err := s.authenticateDriverHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, DriverResponse{Success: true, Driver: account})
}

func (s *Server) authenticateShop(ctx echo.Context, creds ShopCredentials) (string, error) {
	query, err := queries.NewAuthenticateShopQuery(creds.Slug, creds.Password)
	if err != nil {
		return "", err
	}

	account, err := s.authenticateShopHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return "", err
	}
	return account.Slug, nil
}

// parseDate accepts RFC 3339 or a plain date. A plain end date includes
// the whole day.
func parseDate(param, raw string, endOfRange bool) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}

	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}

	day, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return time.Time{}, errs.NewValueIsInvalidErrorWithCause(param, err)
	}
	if endOfRange {
		return day.AddDate(0, 0, 1), nil
	}
	return day, nil
}
