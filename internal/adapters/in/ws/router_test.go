package ws

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/daniel06264831/menuia/internal/core/application/dispatch"
	"github.com/daniel06264831/menuia/internal/core/application/usecases/queries"
	"github.com/daniel06264831/menuia/internal/core/domain/model/kernel"
	"github.com/daniel06264831/menuia/internal/core/domain/model/order"
	"github.com/daniel06264831/menuia/internal/core/ports"
	"github.com/daniel06264831/menuia/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) JoinShop(conn ports.ConnectionID, shopSlug string) {
	m.Called(conn, shopSlug)
}

func (m *MockDispatcher) PlaceOrder(ctx context.Context, shopSlug string, req dispatch.OrderRequest) (queries.OrderView, error) {
	args := m.Called(ctx, shopSlug, req)
	return args.Get(0).(queries.OrderView), args.Error(1)
}

func (m *MockDispatcher) AcceptOrder(
	ctx context.Context,
	conn ports.ConnectionID,
	driverID, orderID kernel.UUID,
) (queries.OrderView, error) {
	args := m.Called(ctx, conn, driverID, orderID)
	return args.Get(0).(queries.OrderView), args.Error(1)
}

func (m *MockDispatcher) AdvanceOrder(
	ctx context.Context,
	driverID, orderID kernel.UUID,
	step order.DeliveryStatus,
) (queries.OrderView, error) {
	args := m.Called(ctx, driverID, orderID, step)
	return args.Get(0).(queries.OrderView), args.Error(1)
}

func (m *MockDispatcher) Login(ctx context.Context, conn ports.ConnectionID, phone, password string) (dispatch.Session, error) {
	args := m.Called(ctx, conn, phone, password)
	return args.Get(0).(dispatch.Session), args.Error(1)
}

func (m *MockDispatcher) GoOnline(ctx context.Context, conn ports.ConnectionID, driverID kernel.UUID) (dispatch.Session, error) {
	args := m.Called(ctx, conn, driverID)
	return args.Get(0).(dispatch.Session), args.Error(1)
}

func (m *MockDispatcher) GoOffline(ctx context.Context, conn ports.ConnectionID, driverID kernel.UUID) error {
	return m.Called(ctx, conn, driverID).Error(0)
}

func (m *MockDispatcher) Disconnect(ctx context.Context, conn ports.ConnectionID, driverID *kernel.UUID) {
	m.Called(ctx, conn, driverID)
}

func (m *MockDispatcher) ReportLocation(ctx context.Context, driverID kernel.UUID, lat, lng float64) error {
	return m.Called(ctx, driverID, lat, lng).Error(0)
}

func (m *MockDispatcher) DriverHistory(ctx context.Context, driverID kernel.UUID) ([]queries.OrderView, error) {
	args := m.Called(ctx, driverID)
	return args.Get(0).([]queries.OrderView), args.Error(1)
}

func frameOf(t *testing.T, event string, data any, ack string) inboundFrame {
	t.Helper()

	raw, err := json.Marshal(data)
	require.NoError(t, err)
	return inboundFrame{Event: event, Data: raw, Ack: ack}
}

func lastReply(t *testing.T, c *Client) map[string]any {
	t.Helper()

	select {
	case message := <-c.send:
		var reply map[string]any
		require.NoError(t, json.Unmarshal(message, &reply))
		return reply
	default:
		t.Fatal("no reply queued")
		return nil
	}
}

func TestRouter_JoinStore(t *testing.T) {
	ctx := context.Background()
	dispatcher := &MockDispatcher{}
	router := NewRouter(dispatcher, discardLogger())
	c := attach(NewHub(discardLogger()), "conn", 4)

	dispatcher.On("JoinShop", ports.ConnectionID("conn"), "tacos").Return()

	router.Handle(ctx, c, frameOf(t, EventJoinStore, "tacos", "1"))

	reply := lastReply(t, c)
	assert.Equal(t, EventAck, reply["event"])
	assert.Equal(t, "1", reply["ack"])
	dispatcher.AssertExpectations(t)
}

func TestRouter_LoginBindsDriver(t *testing.T) {
	ctx := context.Background()
	dispatcher := &MockDispatcher{}
	router := NewRouter(dispatcher, discardLogger())
	c := attach(NewHub(discardLogger()), "conn", 4)
	driverID := kernel.NewUUID()
	orderID := kernel.NewUUID()

	dispatcher.On("Login", ctx, ports.ConnectionID("conn"), "4431234567", "1234").
		Return(dispatch.Session{Driver: queries.DriverView{ID: driverID}}, nil)
	dispatcher.On("AcceptOrder", ctx, ports.ConnectionID("conn"), driverID, orderID).
		Return(queries.OrderView{ID: orderID}, nil)

	router.Handle(ctx, c, frameOf(t, EventDriverLogin, map[string]string{"phone": "4431234567", "password": "1234"}, ""))
	assert.Equal(t, EventAck, lastReply(t, c)["event"])
	require.NotNil(t, c.DriverID())
	assert.True(t, driverID.IsEqual(*c.DriverID()))

	// the bound driver is used when the payload names none
	router.Handle(ctx, c, frameOf(t, EventAcceptOrder, map[string]string{"orderId": orderID.String()}, "2"))
	reply := lastReply(t, c)
	assert.Equal(t, EventAck, reply["event"])
	assert.Equal(t, "2", reply["ack"])
	dispatcher.AssertExpectations(t)
}

func TestRouter_RejectsOtherDriver(t *testing.T) {
	ctx := context.Background()
	dispatcher := &MockDispatcher{}
	router := NewRouter(dispatcher, discardLogger())
	c := attach(NewHub(discardLogger()), "conn", 4)
	c.bindDriver(kernel.NewUUID())

	router.Handle(ctx, c, frameOf(t, EventAcceptOrder, map[string]string{
		"driverId": kernel.NewUUID().String(),
		"orderId":  kernel.NewUUID().String(),
	}, ""))

	reply := lastReply(t, c)
	assert.Equal(t, EventError, reply["event"])
	assert.Equal(t, CodeUnauthorized, reply["data"].(map[string]any)["code"])
	dispatcher.AssertNotCalled(t, "AcceptOrder")
}

func TestRouter_ConflictCarriesReason(t *testing.T) {
	ctx := context.Background()
	dispatcher := &MockDispatcher{}
	router := NewRouter(dispatcher, discardLogger())
	c := attach(NewHub(discardLogger()), "conn", 4)
	driverID := kernel.NewUUID()
	orderID := kernel.NewUUID()

	dispatcher.On("AcceptOrder", ctx, ports.ConnectionID("conn"), driverID, orderID).
		Return(queries.OrderView{}, order.ErrOrderAlreadyTaken)

	router.Handle(ctx, c, frameOf(t, EventAcceptOrder, map[string]string{
		"driverId": driverID.String(),
		"orderId":  orderID.String(),
	}, "7"))

	reply := lastReply(t, c)
	assert.Equal(t, EventError, reply["event"])
	assert.Equal(t, "7", reply["ack"])
	data := reply["data"].(map[string]any)
	assert.Equal(t, CodeConflict, data["code"])
	assert.Equal(t, "order already taken by another driver", data["message"])
}

func TestRouter_UpdateStepPassesStep(t *testing.T) {
	ctx := context.Background()
	dispatcher := &MockDispatcher{}
	router := NewRouter(dispatcher, discardLogger())
	c := attach(NewHub(discardLogger()), "conn", 4)
	driverID := kernel.NewUUID()
	orderID := kernel.NewUUID()
	c.bindDriver(driverID)

	dispatcher.On("AdvanceOrder", ctx, driverID, orderID, order.DeliveryOnWay).
		Return(queries.OrderView{ID: orderID}, nil)

	router.Handle(ctx, c, frameOf(t, EventUpdateOrderStep, map[string]string{
		"orderId": orderID.String(),
		"step":    "on_way",
	}, ""))

	assert.Equal(t, EventAck, lastReply(t, c)["event"])
	dispatcher.AssertExpectations(t)
}

func TestRouter_DriverIDRequired(t *testing.T) {
	ctx := context.Background()
	router := NewRouter(&MockDispatcher{}, discardLogger())
	c := attach(NewHub(discardLogger()), "conn", 4)

	router.Handle(ctx, c, inboundFrame{Event: EventGetDriverHistory})

	data := lastReply(t, c)["data"].(map[string]any)
	assert.Equal(t, CodeValidation, data["code"])
}

func TestRouter_UnknownEvent(t *testing.T) {
	ctx := context.Background()
	router := NewRouter(&MockDispatcher{}, discardLogger())
	c := attach(NewHub(discardLogger()), "conn", 4)

	router.Handle(ctx, c, inboundFrame{Event: "teleport"})

	data := lastReply(t, c)["data"].(map[string]any)
	assert.Equal(t, CodeUnknownEvent, data["code"])
}

func TestRouter_ClosedDisconnectsBoundDriver(t *testing.T) {
	ctx := context.Background()
	dispatcher := &MockDispatcher{}
	router := NewRouter(dispatcher, discardLogger())
	c := attach(NewHub(discardLogger()), "conn", 4)
	driverID := kernel.NewUUID()
	c.bindDriver(driverID)

	dispatcher.On("Disconnect", ctx, ports.ConnectionID("conn"), mock.MatchedBy(func(id *kernel.UUID) bool {
		return id != nil && id.IsEqual(driverID)
	})).Return()

	router.Closed(ctx, c)
	dispatcher.AssertExpectations(t)
}

func TestErrorPayloadFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code string
	}{
		{"required", errs.NewValueIsRequiredError("phone"), CodeValidation},
		{"out of range", errs.NewValueIsOutOfRangeError("lat", 91, -90, 90), CodeValidation},
		{"not found", errs.NewObjectNotFoundError("order", "x"), CodeNotFound},
		{"version", errs.NewVersionIsInvalidErrorWithCause("version"), CodeConflict},
		{"credentials", queries.ErrInvalidCredentials, CodeUnauthorized},
		{"upstream", errs.NewUpstreamError("redis publish", assert.AnError), CodeUpstream},
		{"other", assert.AnError, CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, errorPayloadFor(tt.err).Code)
		})
	}
}
