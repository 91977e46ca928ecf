package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	Throttle      ThrottleConfig
	CORS          CORSConfig
	FeatureFlags  FeatureFlagsConfig
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
	Env          string `envconfig:"LITTLELEMON_APP_ENV" required:"true"`
	Port         string `envconfig:"LITTLELEMON_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"LITTLELEMON_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"LITTLELEMON_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"LITTLELEMON_DB_DSN"`
	Driver string `envconfig:"LITTLELEMON_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"LITTLELEMON_DB_HOST"`
	LegacyPort     int    `envconfig:"LITTLELEMON_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"LITTLELEMON_DB_USER"`
	LegacyPassword string `envconfig:"LITTLELEMON_DB_PASSWORD"`
	LegacyName     string `envconfig:"LITTLELEMON_DB_NAME"`
	LegacySSLMode  string `envconfig:"LITTLELEMON_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"LITTLELEMON_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"LITTLELEMON_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"LITTLELEMON_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"LITTLELEMON_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// IsSQLite reports whether the configured driver is the embedded sqlite engine.
func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(strings.TrimSpace(db.Driver), DBDriverSQLite)
}

type RedisConfig struct {
	URL          string        `envconfig:"LITTLELEMON_REDIS_URL" required:"true"`
	Address      string        `envconfig:"LITTLELEMON_REDIS_ADDR"`
	Password     string        `envconfig:"LITTLELEMON_REDIS_PASSWORD"`
	DB           int           `envconfig:"LITTLELEMON_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"LITTLELEMON_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"LITTLELEMON_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"LITTLELEMON_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"LITTLELEMON_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"LITTLELEMON_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"LITTLELEMON_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"LITTLELEMON_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"LITTLELEMON_JWT_EXPIRATION_MINUTES" required:"true"`
}

// TokenTTL is the lifetime of an access token and of the session backing it.
func (j JWTConfig) TokenTTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"LITTLELEMON_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"LITTLELEMON_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"LITTLELEMON_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"LITTLELEMON_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"LITTLELEMON_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	TokenWindow           time.Duration `envconfig:"LITTLELEMON_AUTH_RATE_LIMIT_TOKEN_WINDOW" default:"1m"`
	TokenUsernameLimit    int           `envconfig:"LITTLELEMON_AUTH_RATE_LIMIT_TOKEN_USERNAME_LIMIT" default:"5"`
	TokenIPLimit          int           `envconfig:"LITTLELEMON_AUTH_RATE_LIMIT_TOKEN_IP_LIMIT" default:"20"`
	RegisterWindow        time.Duration `envconfig:"LITTLELEMON_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterUsernameLimit int           `envconfig:"LITTLELEMON_AUTH_RATE_LIMIT_REGISTER_USERNAME_LIMIT" default:"3"`
	RegisterIPLimit       int           `envconfig:"LITTLELEMON_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

// ThrottleConfig bounds how many authenticated requests a single user may issue per window.
type ThrottleConfig struct {
	UserWindow time.Duration `envconfig:"LITTLELEMON_THROTTLE_USER_WINDOW" default:"1m"`
	UserLimit  int           `envconfig:"LITTLELEMON_THROTTLE_USER_LIMIT" default:"60"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"LITTLELEMON_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000,http://localhost:8000"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"LITTLELEMON_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}
	if db.IsSQLite() {
		return fmt.Errorf("%s is required when %s=%s", EnvDBDSN, EnvDBDriver, DBDriverSQLite)
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
