package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App      AppConfig
	Redis    RedisConfig
	Cart     CartConfig
	Snapshot SnapshotConfig
	Catalog  CatalogConfig
	Orders   OrdersConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Snapshot.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"ZAWADI_APP_ENV" required:"true"`
	Port         string `envconfig:"ZAWADI_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"ZAWADI_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"ZAWADI_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type RedisConfig struct {
	URL          string        `envconfig:"ZAWADI_REDIS_URL"`
	Address      string        `envconfig:"ZAWADI_REDIS_ADDR"`
	Password     string        `envconfig:"ZAWADI_REDIS_PASSWORD"`
	DB           int           `envconfig:"ZAWADI_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"ZAWADI_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"ZAWADI_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"ZAWADI_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"ZAWADI_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"ZAWADI_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// CartConfig carries the business limits for cart validation and shipping.
// Monetary values are whole KES. These are deployment-static; they are never
// fetched from the catalog backend.
type CartConfig struct {
	MaxQuantityPerItem    int `envconfig:"ZAWADI_CART_MAX_QTY_PER_ITEM" default:"10"`
	MaxItemsInCart        int `envconfig:"ZAWADI_CART_MAX_ITEMS" default:"50"`
	LargeQuantity         int `envconfig:"ZAWADI_CART_LARGE_QTY" default:"5"`
	MinOrderAmount        int `envconfig:"ZAWADI_CART_MIN_ORDER_KES" default:"500"`
	MaxOrderAmount        int `envconfig:"ZAWADI_CART_MAX_ORDER_KES" default:"1000000"`
	LargeOrderAmount      int `envconfig:"ZAWADI_CART_LARGE_ORDER_KES" default:"200000"`
	FreeShippingThreshold int `envconfig:"ZAWADI_CART_FREE_SHIPPING_KES" default:"5000"`
	ShippingStandard      int `envconfig:"ZAWADI_CART_SHIPPING_STANDARD_KES" default:"350"`
	ShippingExpress       int `envconfig:"ZAWADI_CART_SHIPPING_EXPRESS_KES" default:"750"`
	ShippingInternational int `envconfig:"ZAWADI_CART_SHIPPING_INTL_KES" default:"2500"`
}

type SnapshotConfig struct {
	Backend   string        `envconfig:"ZAWADI_SNAPSHOT_BACKEND" default:"memory"`
	FilePath  string        `envconfig:"ZAWADI_SNAPSHOT_FILE_PATH"`
	KeyPrefix string        `envconfig:"ZAWADI_SNAPSHOT_KEY_PREFIX" default:"zawadi:cart"`
	TTL       time.Duration `envconfig:"ZAWADI_SNAPSHOT_TTL" default:"168h"`
}

// NormalizedBackend returns the backend name lowercased and trimmed, the
// canonical form both validation and the store factory switch on.
func (s SnapshotConfig) NormalizedBackend() string {
	return strings.ToLower(strings.TrimSpace(s.Backend))
}

func (s SnapshotConfig) validate() error {
	switch s.NormalizedBackend() {
	case SnapshotBackendMemory, SnapshotBackendRedis:
		return nil
	case SnapshotBackendFile:
		if strings.TrimSpace(s.FilePath) == "" {
			return fmt.Errorf("%s is required for the file snapshot backend", EnvSnapshotFilePath)
		}
		return nil
	default:
		return fmt.Errorf("unknown snapshot backend %q", s.Backend)
	}
}

type CatalogConfig struct {
	BaseURL string        `envconfig:"ZAWADI_CATALOG_BASE_URL"`
	Timeout time.Duration `envconfig:"ZAWADI_CATALOG_TIMEOUT" default:"10s"`
}

type OrdersConfig struct {
	BaseURL string        `envconfig:"ZAWADI_ORDERS_BASE_URL"`
	Timeout time.Duration `envconfig:"ZAWADI_ORDERS_TIMEOUT" default:"10s"`
}
