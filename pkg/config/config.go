package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/seedkitapp/seedkit-backend/pkg/enums"
)

type Config struct {
	App     AppConfig
	Admin   AdminConfig
	Store   StoreConfig
	DB      DBConfig
	Redis   RedisConfig
	Storage StorageConfig
	Media   MediaConfig
	Session SessionConfig
	Cron    CronConfig
	CORS    CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SEEDKIT_APP_ENV" required:"true"`
	Port         string `envconfig:"SEEDKIT_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"SEEDKIT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SEEDKIT_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// AdminConfig seeds the document's admin access code on first boot. The code
// stored inside the document stays authoritative afterwards.
type AdminConfig struct {
	AccessCode string `envconfig:"SEEDKIT_ADMIN_ACCESS_CODE" default:"admin2024"`
}

// StoreConfig selects and namespaces the key-value substrate that persists
// the application document.
type StoreConfig struct {
	Driver      string `envconfig:"SEEDKIT_STORE_DRIVER" default:"sqlite"`
	KeyPrefix   string `envconfig:"SEEDKIT_STORE_KEY_PREFIX" default:"seedkit:"`
	DocumentKey string `envconfig:"SEEDKIT_STORE_DOCUMENT_KEY" default:"state"`
	SQLitePath  string `envconfig:"SEEDKIT_STORE_SQLITE_PATH" default:"seedkit.db"`
}

// DriverEnum returns the parsed substrate driver.
func (s StoreConfig) DriverEnum() (enums.StoreDriver, error) {
	return enums.ParseStoreDriver(strings.ToLower(strings.TrimSpace(s.Driver)))
}

type DBConfig struct {
	DSN string `envconfig:"SEEDKIT_DB_DSN"`

	MaxOpenConns    int           `envconfig:"SEEDKIT_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"SEEDKIT_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"SEEDKIT_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SEEDKIT_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"SEEDKIT_REDIS_URL"`
	Address      string        `envconfig:"SEEDKIT_REDIS_ADDR"`
	Password     string        `envconfig:"SEEDKIT_REDIS_PASSWORD"`
	DB           int           `envconfig:"SEEDKIT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SEEDKIT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SEEDKIT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SEEDKIT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SEEDKIT_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SEEDKIT_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// StorageConfig bounds the advisory usage estimate. MaxMB mirrors the ~5 MB
// browser-storage budget the tool was designed around.
type StorageConfig struct {
	MaxMB        float64 `envconfig:"SEEDKIT_STORAGE_MAX_MB" default:"5"`
	WarnPercent  float64 `envconfig:"SEEDKIT_STORAGE_WARN_PERCENT" default:"80"`
	BlockPercent float64 `envconfig:"SEEDKIT_STORAGE_BLOCK_PERCENT" default:"95"`
}

type MediaConfig struct {
	ImageMaxWidth int `envconfig:"SEEDKIT_MEDIA_IMAGE_MAX_WIDTH" default:"800"`
	ImageQuality  int `envconfig:"SEEDKIT_MEDIA_IMAGE_QUALITY" default:"70"`
	MaxUploadMB   int `envconfig:"SEEDKIT_MEDIA_MAX_UPLOAD_MB" default:"25"`
}

type SessionConfig struct {
	TTL time.Duration `envconfig:"SEEDKIT_SESSION_TTL" default:"12h"`
}

type CronConfig struct {
	Interval time.Duration `envconfig:"SEEDKIT_CRON_INTERVAL" default:"5m"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"SEEDKIT_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

func (c *Config) validate() error {
	driver, err := c.Store.DriverEnum()
	if err != nil {
		return err
	}
	switch driver {
	case enums.StoreDriverSQLite:
		if strings.TrimSpace(c.Store.SQLitePath) == "" {
			return fmt.Errorf("%s is required for the sqlite store driver", EnvStoreSQLitePath)
		}
	case enums.StoreDriverPostgres:
		if strings.TrimSpace(c.DB.DSN) == "" {
			return fmt.Errorf("%s is required for the postgres store driver", EnvDBDSN)
		}
	case enums.StoreDriverRedis:
		if strings.TrimSpace(c.Redis.URL) == "" && strings.TrimSpace(c.Redis.Address) == "" {
			return fmt.Errorf("%s or %s is required for the redis store driver", EnvRedisURL, EnvRedisAddr)
		}
	}

	if c.Storage.MaxMB <= 0 {
		return fmt.Errorf("%s must be positive", EnvStorageMaxMB)
	}
	if c.Storage.WarnPercent <= 0 || c.Storage.WarnPercent > 100 {
		return fmt.Errorf("%s must be within (0,100]", EnvStorageWarnPercent)
	}
	if c.Storage.BlockPercent < c.Storage.WarnPercent || c.Storage.BlockPercent > 100 {
		return fmt.Errorf("%s must be within [warn,100]", EnvStorageBlockPercent)
	}

	if strings.TrimSpace(c.Admin.AccessCode) == "" {
		return fmt.Errorf("%s must not be empty", EnvAdminAccessCode)
	}

	if c.Media.ImageMaxWidth <= 0 {
		return fmt.Errorf("%s must be positive", EnvMediaImageMaxWidth)
	}
	if c.Media.ImageQuality <= 0 || c.Media.ImageQuality > 100 {
		return fmt.Errorf("%s must be within (0,100]", EnvMediaImageQuality)
	}

	return nil
}
