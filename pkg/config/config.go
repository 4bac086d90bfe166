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
	Service      ServiceConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	FeatureFlags FeatureFlagsConfig
	Policy       PolicyConfig
	Cron         CronConfig
	RateLimit    RateLimitConfig
	CORS         CORSConfig
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
	Env          string `envconfig:"RENTIVA_APP_ENV" required:"true"`
	Port         string `envconfig:"RENTIVA_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"RENTIVA_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"RENTIVA_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"RENTIVA_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"RENTIVA_DB_DSN"`
	Driver string `envconfig:"RENTIVA_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"RENTIVA_DB_HOST"`
	LegacyPort     int    `envconfig:"RENTIVA_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"RENTIVA_DB_USER"`
	LegacyPassword string `envconfig:"RENTIVA_DB_PASSWORD"`
	LegacyName     string `envconfig:"RENTIVA_DB_NAME"`
	LegacySSLMode  string `envconfig:"RENTIVA_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"RENTIVA_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"RENTIVA_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"RENTIVA_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"RENTIVA_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"RENTIVA_REDIS_URL" required:"true"`
	Address      string        `envconfig:"RENTIVA_REDIS_ADDR"`
	Password     string        `envconfig:"RENTIVA_REDIS_PASSWORD"`
	DB           int           `envconfig:"RENTIVA_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"RENTIVA_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"RENTIVA_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"RENTIVA_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"RENTIVA_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"RENTIVA_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// JWTConfig verifies access tokens minted by the external identity provider.
type JWTConfig struct {
	Secret            string `envconfig:"RENTIVA_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"RENTIVA_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"RENTIVA_JWT_EXPIRATION_MINUTES" default:"60"`
}

type FeatureFlagsConfig struct {
	UseSQLite     bool `envconfig:"RENTIVA_USE_SQLITE" default:"false"`
	AutoMigrate   bool `envconfig:"RENTIVA_AUTO_MIGRATE" default:"false"`
	CheckSessions bool `envconfig:"RENTIVA_CHECK_SESSIONS" default:"false"`
}

// PolicyConfig tunes the money rules applied at return time.
type PolicyConfig struct {
	ExcellentRefundPct int `envconfig:"RENTIVA_POLICY_EXCELLENT_REFUND_PCT" default:"100"`
	GoodRefundPct      int `envconfig:"RENTIVA_POLICY_GOOD_REFUND_PCT" default:"90"`
	LateFeePctPerDay   int `envconfig:"RENTIVA_POLICY_LATE_FEE_PCT_PER_DAY" default:"10"`
}

type CronConfig struct {
	StrikeReplayInterval time.Duration `envconfig:"RENTIVA_CRON_STRIKE_REPLAY_INTERVAL" default:"1m"`
	StrikeReplayBatch    int           `envconfig:"RENTIVA_CRON_STRIKE_REPLAY_BATCH" default:"50"`
	StrikeMaxAttempts    int           `envconfig:"RENTIVA_CRON_STRIKE_MAX_ATTEMPTS" default:"10"`
	LockTTL              time.Duration `envconfig:"RENTIVA_CRON_LOCK_TTL" default:"5m"`
}

// RateLimitConfig throttles mutating API traffic. Zero window disables it.
type RateLimitConfig struct {
	Window    time.Duration `envconfig:"RENTIVA_RATE_LIMIT_WINDOW" default:"1m"`
	IPLimit   int           `envconfig:"RENTIVA_RATE_LIMIT_IP" default:"120"`
	UserLimit int           `envconfig:"RENTIVA_RATE_LIMIT_USER" default:"60"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"RENTIVA_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
