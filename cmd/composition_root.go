package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	apihttp "github.com/daniel06264831/menuia/internal/adapters/in/http"
	"github.com/daniel06264831/menuia/internal/adapters/in/ws"
	"github.com/daniel06264831/menuia/internal/adapters/out/memory"
	"github.com/daniel06264831/menuia/internal/adapters/out/postgres"
	"github.com/daniel06264831/menuia/internal/adapters/out/postgres/orderrepo"
	"github.com/daniel06264831/menuia/internal/adapters/out/rabbitmq"
	eventredis "github.com/daniel06264831/menuia/internal/adapters/out/redis"
	"github.com/daniel06264831/menuia/internal/core/application/dispatch"
	"github.com/daniel06264831/menuia/internal/core/application/usecases/commands"
	"github.com/daniel06264831/menuia/internal/core/application/usecases/queries"
	"github.com/daniel06264831/menuia/internal/core/domain/services"
	"github.com/daniel06264831/menuia/internal/core/ports"
	"github.com/daniel06264831/menuia/internal/jobs"

	"github.com/labstack/echo/v4"
	goredis "github.com/redis/go-redis/v9"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// orderReader is the read side behind the shop and customer listings.
type orderReader interface {
	queries.ShopOrderReader
	queries.CustomerOrderReader
}

type CompositionRoot struct {
	config Config
	logger *slog.Logger

	gormDB      *gorm.DB
	uowFactory  ports.UnitOfWorkFactory
	orderReader orderReader

	publisher   *rabbitmq.OrderEventPublisher
	redisClient *goredis.Client
	relay       *eventredis.EventChannel

	hub         *ws.Hub
	retryQueue  *jobs.RetryQueue
	coordinator *dispatch.Coordinator
}

// NewCompositionRoot connects the configured store and brokers and wires
// the application. Close releases what it opened.
func NewCompositionRoot(ctx context.Context, config Config, logger *slog.Logger) (*CompositionRoot, error) {
	location, err := time.LoadLocation(config.ShopTimezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load shop timezone: %w", err)
	}

	c := &CompositionRoot{
		config:     config,
		logger:     logger,
		hub:        ws.NewHub(logger),
		retryQueue: jobs.NewRetryQueue(),
	}

	var publisher ports.OrderEventPublisher
	if config.RabbitMQURL != "" {
		c.publisher, err = rabbitmq.Dial(config.RabbitMQURL, config.OrderEventsExchange, logger)
		if err != nil {
			return nil, err
		}
		publisher = c.publisher
		logger.InfoContext(ctx, "Order events enabled", "exchange", c.publisher.Exchange())
	}

	switch config.StoreDriver {
	case StoreDriverMemory:
		store := memory.NewStore()
		c.uowFactory = memory.NewUnitOfWorkFactory(store, publisher)
		c.orderReader = store
		logger.WarnContext(ctx, "Using the in-memory store; data is lost on restart")
	default:
		db, err := gorm.Open(gorm_postgres.Open(config.PostgresDSN()), &gorm.Config{TranslateError: true})
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		if err = postgres.Migrate(db); err != nil {
			c.gormDB = db
			c.Close()
			return nil, fmt.Errorf("failed to migrate: %w", err)
		}
		c.gormDB = db
		c.uowFactory = postgres.NewGormUnitOfWorkFactory(db, publisher)
		c.orderReader = orderrepo.NewGormOrderReader(db)
	}

	var channel ports.EventChannel = c.hub
	if config.RedisAddr != "" {
		c.redisClient, err = eventredis.NewClient(ctx, config.RedisAddr, config.RedisPassword, config.RedisDB)
		if err != nil {
			c.Close()
			return nil, err
		}
		c.relay = eventredis.NewEventChannel(c.redisClient, c.hub, eventredis.DefaultPrefix, logger)
		channel = c.relay
	}

	settings := dispatch.Settings{
		RetryDelay:         config.DispatchRetryDelay,
		DeliveryFee:        config.DeliveryFee,
		DefaultShippingFee: config.DefaultShippingFee,
		Location:           location,
	}
	c.coordinator = dispatch.NewCoordinator(
		c.uowFactoryFunc(),
		services.NewDispatchScorer(config.ScoringPolicy()),
		channel,
		c.retryQueue,
		settings,
		logger,
	)

	return c, nil
}

func (c *CompositionRoot) Coordinator() *dispatch.Coordinator {
	return c.coordinator
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.retryQueue,
		c.coordinator,
		c.CreateSweepStalePresenceCommandHandler(),
		c.config.DriverStaleAfter,
		c.logger,
	)
}

func (c *CompositionRoot) CreateSweepStalePresenceCommandHandler() commands.SweepStalePresenceCommandHandler {
	return commands.NewSweepStalePresenceCommandHandler(c.driverUoWFactoryFunc())
}

func (c *CompositionRoot) CreateRegisterShopCommandHandler() commands.RegisterShopCommandHandler {
	var f commands.ShopUoWFactory = FuncShopUoWFactory(func() commands.ShopUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRegisterShopCommandHandler(f)
}

func (c *CompositionRoot) CreateRegisterDriverCommandHandler() commands.RegisterDriverCommandHandler {
	return commands.NewRegisterDriverCommandHandler(c.driverUoWFactoryFunc())
}

func (c *CompositionRoot) CreateAuthenticateShopQueryHandler() queries.AuthenticateShopQueryHandler {
	return queries.NewAuthenticateShopQueryHandler(c.uowFactory.Create().ShopRepository())
}

func (c *CompositionRoot) CreateAuthenticateDriverQueryHandler() queries.AuthenticateDriverQueryHandler {
	return queries.NewAuthenticateDriverQueryHandler(c.uowFactory.Create().DriverRepository())
}

func (c *CompositionRoot) CreateListShopOrdersQueryHandler() queries.ListShopOrdersQueryHandler {
	return queries.NewListShopOrdersQueryHandler(c.orderReader)
}

func (c *CompositionRoot) CreateGetShopOrderStatusQueryHandler() queries.GetShopOrderStatusQueryHandler {
	return queries.NewGetShopOrderStatusQueryHandler(c.uowFactory.Create().OrderRepository())
}

func (c *CompositionRoot) CreateGetCustomerActiveOrdersQueryHandler() queries.GetCustomerActiveOrdersQueryHandler {
	return queries.NewGetCustomerActiveOrdersQueryHandler(c.orderReader)
}

// CreateEcho builds the HTTP application with the REST API, the socket
// endpoint and the API document.
func (c *CompositionRoot) CreateEcho(ctx context.Context) (*echo.Echo, error) {
	doc, err := apihttp.LoadAPIDocument(ctx)
	if err != nil {
		return nil, err
	}

	server := apihttp.NewServer(
		c.coordinator,
		c.CreateRegisterShopCommandHandler(),
		c.CreateRegisterDriverCommandHandler(),
		c.CreateAuthenticateShopQueryHandler(),
		c.CreateAuthenticateDriverQueryHandler(),
		c.CreateListShopOrdersQueryHandler(),
		c.CreateGetShopOrderStatusQueryHandler(),
		c.CreateGetCustomerActiveOrdersQueryHandler(),
		c.logger,
	)
	socket := ws.NewHandler(c.hub, ws.NewRouter(c.coordinator, c.logger), c.logger)

	return apihttp.NewEcho(server, doc, socket, c.config.LogLevel, c.logger), nil
}

// RunRelay relays events from other instances until ctx is done. Without
// Redis it returns at once.
func (c *CompositionRoot) RunRelay(ctx context.Context) error {
	if c.relay == nil {
		return nil
	}
	return c.relay.Run(ctx)
}

func (c *CompositionRoot) Close() {
	var errList []error

	if c.publisher != nil {
		errList = append(errList, c.publisher.Close())
	}
	if c.redisClient != nil {
		errList = append(errList, c.redisClient.Close())
	}
	if c.gormDB != nil {
		if sqlDB, err := c.gormDB.DB(); err == nil {
			errList = append(errList, sqlDB.Close())
		}
	}

	if err := errors.Join(errList...); err != nil {
		c.logger.Error("Closing resources failed", "error", err)
	}
}

func (c *CompositionRoot) uowFactoryFunc() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) driverUoWFactoryFunc() commands.DriverUoWFactory {
	return FuncDriverUoWFactory(func() commands.DriverUoW {
		return c.uowFactory.Create()
	})
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncDriverUoWFactory func() commands.DriverUoW

func (f FuncDriverUoWFactory) Create() commands.DriverUoW {
	return f()
}

type FuncShopUoWFactory func() commands.ShopUoW

func (f FuncShopUoWFactory) Create() commands.ShopUoW {
	return f()
}
