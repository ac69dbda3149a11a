package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"
	_ "time/tzdata" // TIMEZONE must resolve on hosts without zoneinfo

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"dev"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"zephyr"`
	Version     string `env:"VERSION" envDefault:"dev"`
	DevMode     bool   `env:"DEV_MODE" envDefault:"false"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error DEBUG INFO WARN ERROR"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text" validate:"oneof=text json"`
	LogDir    string `env:"LOG_DIR" envDefault:"logs"`

	// Port serves the ops surface: health, readiness and metrics
	Port int `env:"PORT" envDefault:"8080" validate:"gte=0,lte=65535"`

	StoreBackend string `env:"STORE_BACKEND" envDefault:"memory" validate:"oneof=postgres sqlite redis memory"`

	DBUser            string        `env:"DB_USER" envDefault:"postgres"`
	DBPassword        string        `env:"DB_PASSWORD" envDefault:"postgres"`
	DBHost            string        `env:"DB_HOST" envDefault:"localhost"`
	DBPort            string        `env:"DB_PORT" envDefault:"5432"`
	DBName            string        `env:"DB_NAME" envDefault:"zephyr"`
	DBMaxConns        int           `env:"DB_MAX_CONNS" envDefault:"20" validate:"gt=0"`
	DBMaxConnIdleTime time.Duration `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"5m"`
	DBMaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"30m"`

	SQLitePath string `env:"SQLITE_PATH" envDefault:"data/zephyr.db"`

	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0" validate:"gte=0"`

	// Timezone decides where a calendar day starts for streak crediting
	Timezone string `env:"TIMEZONE" envDefault:"UTC"`

	ShieldPolicy     string        `env:"SHIELD_POLICY" envDefault:"graduated" validate:"oneof=graduated single"`
	PurchaseCooldown time.Duration `env:"PURCHASE_COOLDOWN" envDefault:"0s" validate:"gte=0"`

	CacheSize int           `env:"SESSION_CACHE_SIZE" envDefault:"1024" validate:"gt=0"`
	CacheTTL  time.Duration `env:"SESSION_CACHE_TTL" envDefault:"30m" validate:"gt=0"`

	// Empty catalog paths select the embedded defaults
	CurriculumPath  string `env:"CURRICULUM_PATH"`
	ShopCatalogPath string `env:"SHOP_CATALOG_PATH"`

	DeadLetterPath  string        `env:"DEAD_LETTER_PATH" envDefault:"logs/deadletter.jsonl"`
	EventMaxRetries int           `env:"EVENT_MAX_RETRIES" envDefault:"5" validate:"gte=0"`
	EventRetryDelay time.Duration `env:"EVENT_RETRY_DELAY" envDefault:"2s" validate:"gt=0"`

	PersistRetries    int           `env:"PERSIST_RETRIES" envDefault:"3" validate:"gte=0"`
	PersistRetryDelay time.Duration `env:"PERSIST_RETRY_DELAY" envDefault:"200ms" validate:"gt=0"`
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf(ErrMsgParseEnv, withVariableNames(err))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// withVariableNames prefixes env parse errors with the variables that failed,
// since env reports them by struct field name
func withVariableNames(err error) error {
	var agg env.AggregateError
	if !errors.As(err, &agg) {
		return err
	}

	cfgType := reflect.TypeOf(Config{})
	var names []string
	for _, e := range agg.Errors {
		var parseErr env.ParseError
		if !errors.As(e, &parseErr) {
			continue
		}
		field, ok := cfgType.FieldByName(parseErr.Name)
		if !ok {
			continue
		}
		if name, _, _ := strings.Cut(field.Tag.Get("env"), ","); name != "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return err
	}
	return fmt.Errorf(ErrMsgInvalidVariables, strings.Join(names, ", "), err)
}

// Validate checks value ranges and enumerations
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf(ErrMsgInvalidConfig, err)
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf(ErrMsgInvalidTimezone, c.Timezone, err)
	}
	return nil
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

// Location returns the configured calendar timezone
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// IsProduction reports whether the service runs in a production environment
func (c *Config) IsProduction() bool {
	return c.Environment == "prod" || c.Environment == "production"
}
