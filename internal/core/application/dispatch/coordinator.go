// Package dispatch orchestrates the real-time flows of the system: it runs
// the command and query handlers, decides which drivers are offered an
// order and pushes the resulting events to shops and drivers.
package dispatch

import (
	"context"
	"log/slog"
	"time"

	"github.com/daniel06264831/menuia/internal/core/application/usecases/commands"
	"github.com/daniel06264831/menuia/internal/core/application/usecases/queries"
	"github.com/daniel06264831/menuia/internal/core/domain/model/driver"
	"github.com/daniel06264831/menuia/internal/core/domain/model/kernel"
	"github.com/daniel06264831/menuia/internal/core/domain/model/order"
	"github.com/daniel06264831/menuia/internal/core/domain/services"
	"github.com/daniel06264831/menuia/internal/core/ports"
)

// DefaultRetryDelay is how long an offer stays with the nearby drivers
// before it is widened.
const DefaultRetryDelay = 120 * time.Second

// Settings are the business parameters of the coordinator.
type Settings struct {
	RetryDelay         time.Duration
	DeliveryFee        float64
	DefaultShippingFee float64
	// Location decides where a shop's day starts for daily order numbers.
	Location *time.Location
}

func DefaultSettings() Settings {
	return Settings{
		RetryDelay:         DefaultRetryDelay,
		DeliveryFee:        commands.DefaultDeliveryFee,
		DefaultShippingFee: commands.DefaultShippingFee,
		Location:           time.Local,
	}
}

// Outcome tells who was offered an order.
type Outcome struct {
	Notified  []kernel.UUID
	Broadcast bool
}

type Option func(*Coordinator)

// WithClock replaces the clock used for timestamps and retry times.
func WithClock(fn func() time.Time) Option {
	return func(c *Coordinator) {
		c.now = fn
	}
}

// Coordinator is safe for concurrent use. Each call works in its own units
// of work; the store decides every race.
type Coordinator struct {
	uowFactory commands.UoWFactory
	scorer     services.DispatchScorer
	channel    ports.EventChannel
	retries    ports.RetryScheduler
	settings   Settings
	now        func() time.Time
	logger     *slog.Logger

	placeOrder     commands.PlaceOrderCommandHandler
	claimOrder     commands.ClaimOrderCommandHandler
	advanceOrder   commands.AdvanceOrderCommandHandler
	cancelOrder    commands.CancelOrderCommandHandler
	completePickup commands.CompletePickupOrderCommandHandler
	setPresence    commands.SetDriverPresenceCommandHandler
	updateLocation commands.UpdateDriverLocationCommandHandler
}

func NewCoordinator(
	uowFactory commands.UoWFactory,
	scorer services.DispatchScorer,
	channel ports.EventChannel,
	retries ports.RetryScheduler,
	settings Settings,
	logger *slog.Logger,
	opts ...Option,
) *Coordinator {
	if settings.Location == nil {
		settings.Location = time.Local
	}

	c := &Coordinator{
		uowFactory: uowFactory,
		scorer:     scorer,
		channel:    channel,
		retries:    retries,
		settings:   settings,
		now:        time.Now,
		logger:     logger.With("component", "dispatch_coordinator"),

		placeOrder:     commands.NewPlaceOrderCommandHandler(uowFactory, settings.Location, settings.DefaultShippingFee),
		claimOrder:     commands.NewClaimOrderCommandHandler(uowFactory),
		advanceOrder:   commands.NewAdvanceOrderCommandHandler(uowFactory, settings.DeliveryFee),
		cancelOrder:    commands.NewCancelOrderCommandHandler(uowFactory),
		completePickup: commands.NewCompletePickupOrderCommandHandler(uowFactory),
		setPresence:    commands.NewSetDriverPresenceCommandHandler(uowFactory),
		updateLocation: commands.NewUpdateDriverLocationCommandHandler(uowFactory),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// PlaceOrder stores the order, tells the shop and, for delivery orders,
// offers it to nearby drivers and schedules the single widened retry.
func (c *Coordinator) PlaceOrder(ctx context.Context, shopSlug string, req OrderRequest) (queries.OrderView, error) {
	placedAt := c.now()

	cmd, err := req.ToCommand(kernel.NewUUID(), shopSlug, placedAt)
	if err != nil {
		return queries.OrderView{}, err
	}

	o, err := c.placeOrder.Handle(ctx, cmd)
	if err != nil {
		return queries.OrderView{}, err
	}

	view := queries.NewOrderView(o)
	c.publish(ctx, ports.Event{Channel: ports.ShopChannel(o.ShopSlug()), Name: ports.EventNewOrderSaved, Payload: view})

	if o.Fulfillment() == order.FulfillmentDelivery {
		c.Dispatch(ctx, o, false)
		c.retries.Schedule(o.ID(), placedAt.Add(c.settings.RetryDelay))
	}

	c.logger.InfoContext(ctx, "Order placed",
		"orderId", o.ID().String(), "shop", o.ShopSlug(), "dailyId", o.DailyID(), "fulfillment", string(o.Fulfillment()))
	return view, nil
}

// Dispatch offers o to the best ranked drivers. Without a usable shop
// location, or when loading candidates fails, the offer goes to every online
// driver instead. With force and nobody in range it is broadcast as well.
func (c *Coordinator) Dispatch(ctx context.Context, o *order.Order, force bool) Outcome {
	view := queries.NewOrderView(o)

	if !o.ShopLocation().IsValid() {
		c.logger.WarnContext(ctx, "Shop has no location, broadcasting order", "orderId", o.ID().String(), "shop", o.ShopSlug())
		return c.broadcast(ctx, view)
	}

	candidates, err := c.loadCandidates(ctx)
	if err != nil {
		c.logger.ErrorContext(ctx, "Loading dispatch candidates failed, broadcasting order",
			"orderId", o.ID().String(), "error", err)
		return c.broadcast(ctx, view)
	}

	ranked := c.scorer.Rank(o, candidates, services.RankOptions{ForceWiden: force})
	if len(ranked) == 0 {
		if force {
			c.logger.InfoContext(ctx, "No driver in the wide radius, broadcasting order", "orderId", o.ID().String())
			return c.broadcast(ctx, view)
		}
		c.logger.InfoContext(ctx, "No driver in range", "orderId", o.ID().String(), "candidates", len(candidates))
		return Outcome{}
	}

	outcome := Outcome{Notified: make([]kernel.UUID, 0, len(ranked))}
	for _, r := range ranked {
		c.publish(ctx, ports.Event{
			Channel: ports.DriverChannel(r.Driver.ID()),
			Name:    ports.EventNewRequest,
			Payload: view.WithDistance(r.DistanceKm),
		})
		outcome.Notified = append(outcome.Notified, r.Driver.ID())
	}

	c.logger.InfoContext(ctx, "Order offered", "orderId", o.ID().String(), "drivers", len(ranked), "widened", force)
	return outcome
}

// RetryDispatch widens the offer for an order that is still waiting for a
// driver. For any other order it does nothing.
func (c *Coordinator) RetryDispatch(ctx context.Context, orderID kernel.UUID) error {
	o, err := c.uowFactory.Create().OrderRepository().Get(ctx, orderID)
	if err != nil {
		return err
	}

	if !o.IsAwaitingDriver() {
		c.logger.DebugContext(ctx, "Retry skipped, order no longer waits for a driver",
			"orderId", orderID.String(), "status", o.Status().String())
		return nil
	}

	c.Dispatch(ctx, o, true)
	return nil
}

// loadCandidates reads outside any transaction; a stale view only changes
// who gets an offer, never who wins the claim.
func (c *Coordinator) loadCandidates(ctx context.Context) ([]services.Candidate, error) {
	reader := c.uowFactory.Create()

	drivers, err := reader.DriverRepository().ListCandidates(ctx, driver.CandidatePresences()...)
	if err != nil {
		return nil, err
	}

	candidates := make([]services.Candidate, 0, len(drivers))
	for _, d := range drivers {
		candidate := services.Candidate{Driver: d}
		if d.Presence() == driver.PresenceBusy {
			candidate.ActiveOrders, err = reader.OrderRepository().FindActiveByDriver(ctx, d.ID())
			if err != nil {
				return nil, err
			}
		}
		candidates = append(candidates, candidate)
	}

	return candidates, nil
}

func (c *Coordinator) broadcast(ctx context.Context, view queries.OrderView) Outcome {
	c.publish(ctx, ports.Event{Channel: ports.BroadcastChannel, Name: ports.EventNewRequest, Payload: view})
	return Outcome{Broadcast: true}
}

// publish never fails the caller: delivery is best effort.
func (c *Coordinator) publish(ctx context.Context, event ports.Event) {
	if err := c.channel.Publish(ctx, event); err != nil {
		c.logger.WarnContext(ctx, "Event delivery failed", "channel", event.Channel, "event", event.Name, "error", err)
	}
}
