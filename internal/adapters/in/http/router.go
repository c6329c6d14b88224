package http

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// NewEcho builds the HTTP application: REST routes under /api/v1, the
// socket upgrade at /ws and the API document.
func NewEcho(server *Server, doc *APIDocument, socket http.Handler, logLevel string, logger *slog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(gommonLevel(logLevel))

	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/health" || c.Path() == "/ws"
		},
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{"method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency}
			if v.Error != nil {
				logger.ErrorContext(c.Request().Context(), "Request", append(attrs, "error", v.Error)...)
				return nil
			}
			logger.InfoContext(c.Request().Context(), "Request", attrs...)
			return nil
		},
	}))

	e.GET("/health", server.Health)
	e.GET("/ws", echo.WrapHandler(socket))
	e.GET("/openapi.json", doc.Serve)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api/v1")
	api.POST("/shops/register", server.RegisterShop)
	api.POST("/orders", server.PlaceOrder)
	api.POST("/orders/list", server.ListOrders)
	api.POST("/orders/status", server.OrderStatus)
	api.POST("/orders/update-status", server.UpdateOrderStatus)
	api.GET("/customers/:phone/orders", server.CustomerOrders)
	api.POST("/drivers/register", server.RegisterDriver)
	api.POST("/drivers/login", server.DriverLogin)

	return e
}

func gommonLevel(level string) log.Lvl {
	switch strings.ToLower(level) {
	case "debug":
		return log.DEBUG
	case "warn", "warning":
		return log.WARN
	case "error":
		return log.ERROR
	default:
		return log.INFO
	}
}
