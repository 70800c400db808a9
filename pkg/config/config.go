package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Booking      BookingConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"MUEBLESRENT_APP_ENV" required:"true"`
	Port         string `envconfig:"MUEBLESRENT_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"MUEBLESRENT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"MUEBLESRENT_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"MUEBLESRENT_DB_DSN"`
	Driver string `envconfig:"MUEBLESRENT_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"MUEBLESRENT_DB_HOST"`
	Port     int    `envconfig:"MUEBLESRENT_DB_PORT" default:"5432"`
	User     string `envconfig:"MUEBLESRENT_DB_USER"`
	Password string `envconfig:"MUEBLESRENT_DB_PASSWORD"`
	Name     string `envconfig:"MUEBLESRENT_DB_NAME"`
	SSLMode  string `envconfig:"MUEBLESRENT_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"MUEBLESRENT_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"MUEBLESRENT_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"MUEBLESRENT_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"MUEBLESRENT_DB_CONN_MAX_IDLE_TIME" default:"10m"`

	TxMaxRetries int `envconfig:"MUEBLESRENT_DB_TX_MAX_RETRIES" default:"3"`
}

type RedisConfig struct {
	URL          string        `envconfig:"MUEBLESRENT_REDIS_URL"`
	Address      string        `envconfig:"MUEBLESRENT_REDIS_ADDR"`
	Password     string        `envconfig:"MUEBLESRENT_REDIS_PASSWORD"`
	DB           int           `envconfig:"MUEBLESRENT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"MUEBLESRENT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"MUEBLESRENT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"MUEBLESRENT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"MUEBLESRENT_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"MUEBLESRENT_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"MUEBLESRENT_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"MUEBLESRENT_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"MUEBLESRENT_JWT_EXPIRATION_MINUTES" default:"480"`
}

type BookingConfig struct {
	SearchHorizonDays int           `envconfig:"MUEBLESRENT_BOOKING_SEARCH_HORIZON_DAYS" default:"90"`
	DepositPercent    int           `envconfig:"MUEBLESRENT_BOOKING_DEPOSIT_PERCENT" default:"30"`
	IdempotencyTTL    time.Duration `envconfig:"MUEBLESRENT_BOOKING_IDEMPOTENCY_TTL" default:"168h"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"MUEBLESRENT_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	values := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, env := range requiredDBEnvVars {
		if values[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
