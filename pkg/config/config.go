package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "spequip"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "SPEQUIP_DB_DSN"
	EnvDBHost = "SPEQUIP_DB_HOST"
	EnvDBUser = "SPEQUIP_DB_USER"
	EnvDBName = "SPEQUIP_DB_NAME"
)

var requiredDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
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
	Env          string `envconfig:"SPEQUIP_APP_ENV" required:"true"`
	Port         string `envconfig:"SPEQUIP_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"SPEQUIP_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SPEQUIP_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"SPEQUIP_DB_DSN"`

	Host     string `envconfig:"SPEQUIP_DB_HOST"`
	Port     int    `envconfig:"SPEQUIP_DB_PORT" default:"5432"`
	User     string `envconfig:"SPEQUIP_DB_USER"`
	Password string `envconfig:"SPEQUIP_DB_PASSWORD"`
	Name     string `envconfig:"SPEQUIP_DB_NAME"`
	SSLMode  string `envconfig:"SPEQUIP_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"SPEQUIP_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SPEQUIP_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SPEQUIP_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SPEQUIP_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"SPEQUIP_REDIS_URL"`
	Address      string        `envconfig:"SPEQUIP_REDIS_ADDR"`
	Password     string        `envconfig:"SPEQUIP_REDIS_PASSWORD"`
	DB           int           `envconfig:"SPEQUIP_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SPEQUIP_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SPEQUIP_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SPEQUIP_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SPEQUIP_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SPEQUIP_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"SPEQUIP_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"SPEQUIP_JWT_ISSUER" default:"spequip"`
	ExpirationMinutes      int    `envconfig:"SPEQUIP_JWT_EXPIRATION_MINUTES" default:"15"`
	RefreshTokenTTLMinutes int    `envconfig:"SPEQUIP_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"SPEQUIP_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"SPEQUIP_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"SPEQUIP_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"SPEQUIP_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"SPEQUIP_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"SPEQUIP_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"SPEQUIP_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"SPEQUIP_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"SPEQUIP_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"SPEQUIP_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"SPEQUIP_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"SPEQUIP_AUTO_MIGRATE" default:"false"`
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
