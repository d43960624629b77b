package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is applied by envconfig when mapping environment variables.
const EnvPrefix = "jeansstore"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	DBDriverSQLite   = "sqlite"
	DBDriverPostgres = "postgres"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	Session       SessionConfig
	AuthRateLimit AuthRateLimitConfig
	ViaCEP        ViaCEPConfig
	FakeStore     FakeStoreConfig
	Checkout      CheckoutConfig
	FeatureFlags  FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"JEANSSTORE_APP_ENV" default:"dev"`
	Port         string `envconfig:"JEANSSTORE_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"JEANSSTORE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"JEANSSTORE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	Driver string `envconfig:"JEANSSTORE_DB_DRIVER" default:"sqlite"`
	DSN    string `envconfig:"JEANSSTORE_DB_DSN" default:"file::memory:?cache=shared"`

	MaxOpenConns    int           `envconfig:"JEANSSTORE_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"JEANSSTORE_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"JEANSSTORE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"JEANSSTORE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (db DBConfig) validate() error {
	switch db.Driver {
	case DBDriverSQLite, DBDriverPostgres:
	default:
		return fmt.Errorf("unsupported db driver %q", db.Driver)
	}
	if db.DSN == "" {
		return fmt.Errorf("database DSN is required")
	}
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"JEANSSTORE_REDIS_URL"`
	Address      string        `envconfig:"JEANSSTORE_REDIS_ADDR" default:"localhost:6379"`
	Password     string        `envconfig:"JEANSSTORE_REDIS_PASSWORD"`
	DB           int           `envconfig:"JEANSSTORE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"JEANSSTORE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"JEANSSTORE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"JEANSSTORE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"JEANSSTORE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"JEANSSTORE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// SessionConfig drives browser-session state and the mock-auth access tokens.
type SessionConfig struct {
	Secret            string        `envconfig:"JEANSSTORE_SESSION_SECRET" required:"true"`
	Issuer            string        `envconfig:"JEANSSTORE_SESSION_ISSUER" default:"jeansstore"`
	TokenTTLMinutes   int           `envconfig:"JEANSSTORE_SESSION_TOKEN_TTL_MINUTES" default:"60"`
	StateTTL          time.Duration `envconfig:"JEANSSTORE_SESSION_STATE_TTL" default:"24h"`
	LookupLockTTL     time.Duration `envconfig:"JEANSSTORE_SESSION_LOOKUP_LOCK_TTL" default:"15s"`
	LookupWindow      time.Duration `envconfig:"JEANSSTORE_SESSION_LOOKUP_WINDOW" default:"1m"`
	LookupWindowLimit int           `envconfig:"JEANSSTORE_SESSION_LOOKUP_WINDOW_LIMIT" default:"30"`
}

// TokenTTL returns the access token lifetime.
func (s SessionConfig) TokenTTL() time.Duration {
	if s.TokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(s.TokenTTLMinutes) * time.Minute
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"JEANSSTORE_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"JEANSSTORE_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"JEANSSTORE_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"JEANSSTORE_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"JEANSSTORE_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"JEANSSTORE_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type ViaCEPConfig struct {
	BaseURL string        `envconfig:"JEANSSTORE_VIACEP_BASE_URL" default:"https://viacep.com.br"`
	Timeout time.Duration `envconfig:"JEANSSTORE_VIACEP_TIMEOUT" default:"10s"`
}

type FakeStoreConfig struct {
	BaseURL    string        `envconfig:"JEANSSTORE_FAKESTORE_BASE_URL" default:"https://fakestoreapi.com"`
	Timeout    time.Duration `envconfig:"JEANSSTORE_FAKESTORE_TIMEOUT" default:"10s"`
	DemoUserID int           `envconfig:"JEANSSTORE_FAKESTORE_DEMO_USER_ID" default:"1"`
}

type CheckoutConfig struct {
	// DefaultDeliveryOption and DefaultPaymentMethod seed a fresh wizard state.
	DefaultDeliveryOption string `envconfig:"JEANSSTORE_CHECKOUT_DEFAULT_DELIVERY" default:"standard"`
	DefaultPaymentMethod  string `envconfig:"JEANSSTORE_CHECKOUT_DEFAULT_PAYMENT" default:"credit"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"JEANSSTORE_AUTO_MIGRATE" default:"true"`
}
