package dispatch

import (
	"context"

	"github.com/daniel06264831/menuia/internal/core/application/usecases/commands"
	"github.com/daniel06264831/menuia/internal/core/application/usecases/queries"
	"github.com/daniel06264831/menuia/internal/core/domain/model/driver"
	"github.com/daniel06264831/menuia/internal/core/domain/model/kernel"
	"github.com/daniel06264831/menuia/internal/core/ports"
)

// Session is what a driver's client needs after login or going online.
type Session struct {
	Driver       queries.DriverView  `json:"driver"`
	ActiveOrders []queries.OrderView `json:"activeOrders"`
}

// JoinShop subscribes a dashboard connection to its shop's events.
func (c *Coordinator) JoinShop(conn ports.ConnectionID, shopSlug string) {
	c.channel.JoinShopChannel(conn, shopSlug)
}

// Login checks the driver's credentials and brings the driver online on
// conn.
func (c *Coordinator) Login(ctx context.Context, conn ports.ConnectionID, phone, password string) (Session, error) {
	query, err := queries.NewAuthenticateDriverQuery(phone, password)
	if err != nil {
		return Session{}, err
	}

	reader := c.uowFactory.Create()
	account, err := queries.NewAuthenticateDriverQueryHandler(reader.DriverRepository()).Handle(ctx, query)
	if err != nil {
		return Session{}, err
	}

	return c.GoOnline(ctx, conn, account.ID)
}

// GoOnline marks the driver available (busy while carrying orders), joins
// conn to the driver's channels and replays what the driver missed: open
// offers near the driver and the orders the driver still carries.
func (c *Coordinator) GoOnline(ctx context.Context, conn ports.ConnectionID, driverID kernel.UUID) (Session, error) {
	cmd, err := commands.NewSetDriverPresenceCommand(driverID, driver.PresenceOnline)
	if err != nil {
		return Session{}, err
	}

	res, err := c.setPresence.Handle(ctx, cmd)
	if err != nil {
		return Session{}, err
	}

	c.channel.JoinDriverChannel(conn, driverID)
	c.channel.JoinBroadcastChannel(conn)

	c.replayOffers(ctx, res.Driver)

	session := Session{
		Driver:       queries.NewDriverView(res.Driver),
		ActiveOrders: make([]queries.OrderView, 0, len(res.ActiveOrders)),
	}
	for _, o := range res.ActiveOrders {
		view := queries.NewOrderView(o)
		session.ActiveOrders = append(session.ActiveOrders, view)
		c.publish(ctx, ports.Event{Channel: ports.DriverChannel(driverID), Name: ports.EventOrderAccepted, Payload: view})
	}

	c.logger.InfoContext(ctx, "Driver online",
		"driverId", driverID.String(), "presence", res.Driver.Presence().String(), "activeOrders", len(res.ActiveOrders))
	return session, nil
}

// GoOffline stops offers to the driver. Orders the driver carries are kept.
func (c *Coordinator) GoOffline(ctx context.Context, conn ports.ConnectionID, driverID kernel.UUID) error {
	cmd, err := commands.NewSetDriverPresenceCommand(driverID, driver.PresenceOffline)
	if err != nil {
		return err
	}

	if _, err = c.setPresence.Handle(ctx, cmd); err != nil {
		return err
	}

	c.channel.LeaveBroadcastChannel(conn)
	c.logger.InfoContext(ctx, "Driver offline", "driverId", driverID.String())
	return nil
}

// Disconnect drops conn from every channel. When conn was bound to a driver
// who is merely online, the driver goes offline; a busy driver stays busy.
func (c *Coordinator) Disconnect(ctx context.Context, conn ports.ConnectionID, driverID *kernel.UUID) {
	c.channel.Disconnect(conn)
	if driverID == nil {
		return
	}

	cmd, err := commands.NewSwapDriverPresenceCommand(*driverID, driver.PresenceOnline, driver.PresenceOffline)
	if err != nil {
		c.logger.ErrorContext(ctx, "Invalid disconnect", "driverId", driverID.String(), "error", err)
		return
	}

	if _, err = c.setPresence.Handle(ctx, cmd); err != nil {
		c.logger.ErrorContext(ctx, "Presence update on disconnect failed", "driverId", driverID.String(), "error", err)
	}
}

// ReportLocation stores the driver's position and shows it to the shop of
// every order the driver carries.
func (c *Coordinator) ReportLocation(ctx context.Context, driverID kernel.UUID, lat, lng float64) error {
	cmd, err := commands.NewUpdateDriverLocationCommand(driverID, lat, lng, c.now())
	if err != nil {
		return err
	}

	active, err := c.updateLocation.Handle(ctx, cmd)
	if err != nil {
		return err
	}

	for _, o := range active {
		c.publish(ctx, ports.Event{
			Channel: ports.ShopChannel(o.ShopSlug()),
			Name:    ports.EventDriverMoved,
			Payload: DriverMoved{OrderID: o.ID(), DriverID: driverID, Lat: lat, Lng: lng},
		})
	}
	return nil
}

// DriverHistory returns the driver's latest delivered orders.
func (c *Coordinator) DriverHistory(ctx context.Context, driverID kernel.UUID) ([]queries.OrderView, error) {
	query, err := queries.NewGetDriverHistoryQuery(driverID)
	if err != nil {
		return nil, err
	}

	return queries.NewGetDriverHistoryQueryHandler(c.uowFactory.Create().OrderRepository()).Handle(ctx, query)
}

// ActiveOrderFor returns the order the driver currently works on, or nil.
func (c *Coordinator) ActiveOrderFor(ctx context.Context, driverID kernel.UUID) (*queries.OrderView, error) {
	query, err := queries.NewGetActiveOrderForDriverQuery(driverID)
	if err != nil {
		return nil, err
	}

	return queries.NewGetActiveOrderForDriverQueryHandler(c.uowFactory.Create().OrderRepository()).Handle(ctx, query)
}

// replayOffers sends the orders still waiting for a driver that are within
// the regular radius of d. Orders of shops without a location were
// broadcast to everybody and are replayed without a distance.
func (c *Coordinator) replayOffers(ctx context.Context, d *driver.Driver) {
	pending, err := c.uowFactory.Create().OrderRepository().FindPendingDispatch(ctx)
	if err != nil {
		c.logger.ErrorContext(ctx, "Loading open offers failed", "driverId", d.ID().String(), "error", err)
		return
	}

	radius := c.scorer.Policy().RadiusKm
	for _, o := range pending {
		view := queries.NewOrderView(o)

		if o.ShopLocation().IsValid() {
			if !d.Position().IsKnown() {
				continue
			}
			km := kernel.Distance(d.Position().Point, o.ShopLocation())
			if km > radius {
				continue
			}
			view = view.WithDistance(km)
		}

		c.publish(ctx, ports.Event{Channel: ports.DriverChannel(d.ID()), Name: ports.EventNewRequest, Payload: view})
	}
}
