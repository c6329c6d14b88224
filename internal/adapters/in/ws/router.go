package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/daniel06264831/menuia/internal/core/application/dispatch"
	"github.com/daniel06264831/menuia/internal/core/application/usecases/queries"
	"github.com/daniel06264831/menuia/internal/core/domain/model/kernel"
	"github.com/daniel06264831/menuia/internal/core/domain/model/order"
	"github.com/daniel06264831/menuia/internal/core/ports"
	"github.com/daniel06264831/menuia/internal/pkg/errs"
)

// Client events.
const (
	EventJoinStore        = "join-store"
	EventRegisterOrder    = "register-order"
	EventAcceptOrder      = "accept-order"
	EventUpdateOrderStep  = "update-order-step"
	EventDriverLogin      = "driver-login"
	EventDriverOnline     = "driver-online"
	EventDriverOffline    = "driver-offline"
	EventDriverLocation   = "driver-location"
	EventGetDriverHistory = "get-driver-history"
)

// ErrDriverMismatch rejects a request naming a driver other than the one
// the connection is bound to.
var ErrDriverMismatch = errors.New("connection is bound to another driver")

// Dispatcher is the part of dispatch.Coordinator the socket surface uses.
type Dispatcher interface {
	JoinShop(conn ports.ConnectionID, shopSlug string)
	PlaceOrder(ctx context.Context, shopSlug string, req dispatch.OrderRequest) (queries.OrderView, error)
	AcceptOrder(ctx context.Context, conn ports.ConnectionID, driverID, orderID kernel.UUID) (queries.OrderView, error)
	AdvanceOrder(ctx context.Context, driverID, orderID kernel.UUID, step order.DeliveryStatus) (queries.OrderView, error)
	Login(ctx context.Context, conn ports.ConnectionID, phone, password string) (dispatch.Session, error)
	GoOnline(ctx context.Context, conn ports.ConnectionID, driverID kernel.UUID) (dispatch.Session, error)
	GoOffline(ctx context.Context, conn ports.ConnectionID, driverID kernel.UUID) error
	Disconnect(ctx context.Context, conn ports.ConnectionID, driverID *kernel.UUID)
	ReportLocation(ctx context.Context, driverID kernel.UUID, lat, lng float64) error
	DriverHistory(ctx context.Context, driverID kernel.UUID) ([]queries.OrderView, error)
}

type registerOrderPayload struct {
	ShopID string                `json:"shopId"`
	Order  dispatch.OrderRequest `json:"order"`
}

type acceptOrderPayload struct {
	DriverID *kernel.UUID `json:"driverId"`
	OrderID  kernel.UUID  `json:"orderId"`
}

type updateOrderStepPayload struct {
	OrderID  kernel.UUID  `json:"orderId"`
	Step     string       `json:"step"`
	DriverID *kernel.UUID `json:"driverId"`
}

type driverLoginPayload struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type driverLocationPayload struct {
	DriverID *kernel.UUID `json:"driverId"`
	Lat      float64      `json:"lat"`
	Lng      float64      `json:"lng"`
}

type registerOrderResult struct {
	Success bool        `json:"success"`
	OrderID kernel.UUID `json:"orderId"`
}

type Router struct {
	dispatcher Dispatcher
	logger     *slog.Logger
}

func NewRouter(dispatcher Dispatcher, logger *slog.Logger) *Router {
	return &Router{
		dispatcher: dispatcher,
		logger:     logger.With("component", "ws_router"),
	}
}

// Handle runs one inbound frame and replies with ack or error.
func (r *Router) Handle(ctx context.Context, c *Client, frame inboundFrame) {
	result, err := r.route(ctx, c, frame)
	if err != nil {
		payload := errorPayloadFor(err)
		if payload.Code == CodeInternal || payload.Code == CodeUpstream {
			r.logger.ErrorContext(ctx, "Socket event failed", "event", frame.Event, "error", err)
		}
		c.reply(Frame{Event: EventError, Data: payload, Ack: frame.Ack})
		return
	}

	c.reply(Frame{Event: EventAck, Data: result, Ack: frame.Ack})
}

// Closed releases the connection's channels and presence.
func (r *Router) Closed(ctx context.Context, c *Client) {
	r.dispatcher.Disconnect(ctx, c.id, c.driverID)
}

func (r *Router) route(ctx context.Context, c *Client, frame inboundFrame) (any, error) {
	switch frame.Event {
	case EventJoinStore:
		var slug string
		if err := decode(frame.Data, &slug); err != nil {
			return nil, err
		}
		if slug == "" {
			return nil, errs.NewValueIsRequiredError("shopSlug")
		}
		r.dispatcher.JoinShop(c.id, slug)
		return map[string]string{"joined": slug}, nil

	case EventRegisterOrder:
		var p registerOrderPayload
		if err := decode(frame.Data, &p); err != nil {
			return nil, err
		}
		view, err := r.dispatcher.PlaceOrder(ctx, p.ShopID, p.Order)
		if err != nil {
			return nil, err
		}
		return registerOrderResult{Success: true, OrderID: view.ID}, nil

	case EventAcceptOrder:
		var p acceptOrderPayload
		if err := decode(frame.Data, &p); err != nil {
			return nil, err
		}
		driverID, err := c.resolveDriver(p.DriverID)
		if err != nil {
			return nil, err
		}
		return r.dispatcher.AcceptOrder(ctx, c.id, driverID, p.OrderID)

	case EventUpdateOrderStep:
		var p updateOrderStepPayload
		if err := decode(frame.Data, &p); err != nil {
			return nil, err
		}
		driverID, err := c.resolveDriver(p.DriverID)
		if err != nil {
			return nil, err
		}
		return r.dispatcher.AdvanceOrder(ctx, driverID, p.OrderID, order.DeliveryStatus(p.Step))

	case EventDriverLogin:
		var p driverLoginPayload
		if err := decode(frame.Data, &p); err != nil {
			return nil, err
		}
		session, err := r.dispatcher.Login(ctx, c.id, p.Phone, p.Password)
		if err != nil {
			return nil, err
		}
		c.bindDriver(session.Driver.ID)
		return session, nil

	case EventDriverOnline:
		driverID, err := r.decodeDriverID(c, frame.Data)
		if err != nil {
			return nil, err
		}
		session, err := r.dispatcher.GoOnline(ctx, c.id, driverID)
		if err != nil {
			return nil, err
		}
		c.bindDriver(driverID)
		return session, nil

	case EventDriverOffline:
		driverID, err := r.decodeDriverID(c, frame.Data)
		if err != nil {
			return nil, err
		}
		if err := r.dispatcher.GoOffline(ctx, c.id, driverID); err != nil {
			return nil, err
		}
		return map[string]string{"status": "offline"}, nil

	case EventDriverLocation:
		var p driverLocationPayload
		if err := decode(frame.Data, &p); err != nil {
			return nil, err
		}
		driverID, err := c.resolveDriver(p.DriverID)
		if err != nil {
			return nil, err
		}
		if err := r.dispatcher.ReportLocation(ctx, driverID, p.Lat, p.Lng); err != nil {
			return nil, err
		}
		return map[string]bool{"ok": true}, nil

	case EventGetDriverHistory:
		driverID, err := r.decodeDriverID(c, frame.Data)
		if err != nil {
			return nil, err
		}
		return r.dispatcher.DriverHistory(ctx, driverID)

	default:
		return nil, unknownEventError{event: frame.Event}
	}
}

// decodeDriverID reads a bare driver id; an empty payload means the bound
// driver.
func (r *Router) decodeDriverID(c *Client, data json.RawMessage) (kernel.UUID, error) {
	if len(data) == 0 || string(data) == "null" {
		return c.resolveDriver(nil)
	}

	var id kernel.UUID
	if err := decode(data, &id); err != nil {
		return kernel.UUID{}, err
	}
	return c.resolveDriver(&id)
}

func (c *Client) resolveDriver(explicit *kernel.UUID) (kernel.UUID, error) {
	switch {
	case explicit == nil && c.driverID == nil:
		return kernel.UUID{}, errs.NewValueIsRequiredError("driverId")
	case explicit == nil:
		return *c.driverID, nil
	case c.driverID != nil && !c.driverID.IsEqual(*explicit):
		return kernel.UUID{}, ErrDriverMismatch
	default:
		return *explicit, nil
	}
}

func decode(data json.RawMessage, v any) error {
	if len(data) == 0 {
		return errs.NewValueIsRequiredError("data")
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("data", err)
	}
	return nil
}

type unknownEventError struct {
	event string
}

func (e unknownEventError) Error() string {
	return fmt.Sprintf("unknown event %q", e.event)
}

func errorPayloadFor(err error) ErrorPayload {
	var (
		conflict  *errs.ConflictError
		unknown   unknownEventError
		errorCode string
	)

	switch {
	case errors.As(err, &unknown):
		errorCode = CodeUnknownEvent
	case errors.Is(err, queries.ErrInvalidCredentials), errors.Is(err, ErrDriverMismatch):
		errorCode = CodeUnauthorized
	case errors.As(err, &conflict):
		return ErrorPayload{Message: conflict.Reason, Code: CodeConflict}
	case errors.Is(err, errs.ErrConflict), errors.Is(err, errs.ErrVersionIsInvalid):
		errorCode = CodeConflict
	case errors.Is(err, errs.ErrObjectNotFound):
		errorCode = CodeNotFound
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		errorCode = CodeValidation
	case errors.Is(err, errs.ErrUpstream):
		return ErrorPayload{Message: "service temporarily unavailable", Code: CodeUpstream}
	default:
		return ErrorPayload{Message: "internal error", Code: CodeInternal}
	}

	return ErrorPayload{Message: err.Error(), Code: errorCode}
}
