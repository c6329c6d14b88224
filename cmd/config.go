package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/daniel06264831/menuia/internal/core/domain/services"
	"github.com/daniel06264831/menuia/internal/pkg/errs"

	"github.com/joho/godotenv"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

type Config struct {
	HTTPPort string

	StoreDriver string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSslMode   string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	RabbitMQURL         string
	OrderEventsExchange string

	DispatchRadiusKm      float64
	DispatchWideRadiusKm  float64
	DispatchRetryDelay    time.Duration
	DispatchBatchingBonus float64
	DispatchJitterRange   float64
	DriverLocationMaxAge  time.Duration
	DriverStaleAfter      time.Duration

	DeliveryFee        float64
	DefaultShippingFee float64
	ShopTimezone       string

	LogLevel string
}

// LoadConfig reads an optional .env file and then the environment. Unset
// keys take their defaults; malformed values are errors.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}

	policy := services.DefaultScoringPolicy()
	env := &envReader{}

	config := Config{
		HTTPPort: env.String("HTTP_PORT", "8080"),

		StoreDriver: strings.ToLower(env.String("STORE_DRIVER", StoreDriverPostgres)),
		DBHost:      env.String("DB_HOST", "localhost"),
		DBPort:      env.String("DB_PORT", "5432"),
		DBUser:      env.String("DB_USER", "postgres"),
		DBPassword:  env.String("DB_PASSWORD", ""),
		DBName:      env.String("DB_NAME", "menuia"),
		DBSslMode:   env.String("DB_SSLMODE", "disable"),

		RedisAddr:     env.String("REDIS_ADDR", ""),
		RedisPassword: env.String("REDIS_PASSWORD", ""),
		RedisDB:       env.Int("REDIS_DB", 0),

		RabbitMQURL:         env.String("RABBITMQ_URL", ""),
		OrderEventsExchange: env.String("ORDER_EVENTS_EXCHANGE", "menuia.orders"),

		DispatchRadiusKm:      env.Float("DISPATCH_RADIUS_KM", policy.RadiusKm),
		DispatchWideRadiusKm:  env.Float("DISPATCH_WIDE_RADIUS_KM", policy.WideRadiusKm),
		DispatchRetryDelay:    env.Duration("DISPATCH_RETRY_DELAY", 120*time.Second),
		DispatchBatchingBonus: env.Float("DISPATCH_BATCHING_BONUS", policy.BatchingBonus),
		DispatchJitterRange:   env.Float("DISPATCH_JITTER_RANGE", policy.JitterRange),
		DriverLocationMaxAge:  env.Duration("DRIVER_LOCATION_MAX_AGE", policy.MaxLocationAge),
		DriverStaleAfter:      env.Duration("DRIVER_STALE_AFTER", 30*time.Minute),

		DeliveryFee:        env.Float("DELIVERY_FEE", 35),
		DefaultShippingFee: env.Float("DEFAULT_SHIPPING_FEE", 35),
		ShopTimezone:       env.String("SHOP_TIMEZONE", "America/Mexico_City"),

		LogLevel: strings.ToLower(env.String("LOG_LEVEL", "info")),
	}

	if err := errors.Join(env.errList...); err != nil {
		return Config{}, err
	}
	return config, nil
}

func (c Config) Validate() error {
	var errList []error

	if _, err := strconv.Atoi(c.HTTPPort); err != nil {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("HTTP_PORT", err))
	}
	if c.StoreDriver != StoreDriverPostgres && c.StoreDriver != StoreDriverMemory {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("STORE_DRIVER",
			fmt.Errorf("%q is not one of %s, %s", c.StoreDriver, StoreDriverPostgres, StoreDriverMemory)))
	}
	if c.StoreDriver == StoreDriverPostgres && c.DBHost == "" {
		errList = append(errList, errs.NewValueIsRequiredError("DB_HOST"))
	}
	if c.RedisDB < 0 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("REDIS_DB", c.RedisDB, 0, 15))
	}
	if c.DispatchRetryDelay <= 0 {
		errList = append(errList, errs.NewValueIsInvalidError("DISPATCH_RETRY_DELAY"))
	}
	if c.DriverStaleAfter <= 0 {
		errList = append(errList, errs.NewValueIsInvalidError("DRIVER_STALE_AFTER"))
	}
	if c.DeliveryFee < 0 {
		errList = append(errList, errs.NewValueIsInvalidError("DELIVERY_FEE"))
	}
	if c.DefaultShippingFee < 0 {
		errList = append(errList, errs.NewValueIsInvalidError("DEFAULT_SHIPPING_FEE"))
	}
	if _, err := time.LoadLocation(c.ShopTimezone); err != nil {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("SHOP_TIMEZONE", err))
	}
	if err := c.ScoringPolicy().Validate(); err != nil {
		errList = append(errList, err)
	}

	return errors.Join(errList...)
}

// ScoringPolicy overlays the configured dispatch knobs on the defaults.
func (c Config) ScoringPolicy() services.ScoringPolicy {
	policy := services.DefaultScoringPolicy()
	policy.RadiusKm = c.DispatchRadiusKm
	policy.WideRadiusKm = c.DispatchWideRadiusKm
	policy.BatchingBonus = c.DispatchBatchingBonus
	policy.JitterRange = c.DispatchJitterRange
	policy.MaxLocationAge = c.DriverLocationMaxAge
	return policy
}

func (c Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// envReader reads typed variables and collects parse errors.
type envReader struct {
	errList []error
}

func (r *envReader) String(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func (r *envReader) Int(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		r.errList = append(r.errList, errs.NewValueIsInvalidErrorWithCause(key, err))
		return def
	}
	return n
}

func (r *envReader) Float(key string, def float64) float64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		r.errList = append(r.errList, errs.NewValueIsInvalidErrorWithCause(key, err))
		return def
	}
	return f
}

// Duration accepts Go durations ("90s") and bare seconds ("90").
func (r *envReader) Duration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		r.errList = append(r.errList, errs.NewValueIsInvalidErrorWithCause(key, err))
		return def
	}
	return d
}
