package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config is loaded once at startup and handed to the components that need
// it. Nothing else in the module reads the environment.
type Config struct {
	Port      int    `envconfig:"PORT" default:"8080"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"console"`

	Database Database `envconfig:"DATABASE"`
	JWT      JWT      `envconfig:"JWT"`
	CORS     CORS     `envconfig:"CORS"`
}

// Database keeps the BLUEPRINT_DB_* variable names used by existing
// deployments.
type Database struct {
	Driver          string        `envconfig:"DRIVER" default:"postgres"`
	Host            string        `envconfig:"BLUEPRINT_DB_HOST" default:"localhost"`
	Port            int           `envconfig:"BLUEPRINT_DB_PORT" default:"5432"`
	Name            string        `envconfig:"BLUEPRINT_DB_DATABASE" default:"tenant_backend"`
	User            string        `envconfig:"BLUEPRINT_DB_USERNAME" default:"postgres"`
	Password        string        `envconfig:"BLUEPRINT_DB_PASSWORD"`
	Schema          string        `envconfig:"BLUEPRINT_DB_SCHEMA" default:"public"`
	SSLMode         string        `envconfig:"BLUEPRINT_DB_SSL_MODE" default:"disable"`
	MaxOpenConns    int           `envconfig:"MAX_OPEN_CONNS" default:"100"`
	MaxIdleConns    int           `envconfig:"MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"CONN_MAX_LIFETIME" default:"1h"`
	ConnectTimeout  int           `envconfig:"CONNECT_TIMEOUT" default:"10"` // seconds
}

type JWT struct {
	SecretKey                string `envconfig:"SECRET_KEY" required:"true"`
	AccessTokenExpireMinutes int    `envconfig:"ACCESS_TOKEN_EXPIRE_MINUTES" default:"1440"`
}

type CORS struct {
	Origins []string `envconfig:"ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
}

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Load reads the process environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to load configuration: %w", err)
	}
	cfg.Database.Driver = strings.ToLower(cfg.Database.Driver)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT %d", c.Port)
	}
	switch strings.ToLower(c.Database.Driver) {
	case DriverPostgres, DriverMemory:
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q", c.Database.Driver)
	}
	if strings.TrimSpace(c.JWT.SecretKey) == "" {
		return fmt.Errorf("JWT_SECRET_KEY must not be empty")
	}
	if c.JWT.AccessTokenExpireMinutes <= 0 {
		return fmt.Errorf("ACCESS_TOKEN_EXPIRE_MINUTES must be positive")
	}
	return nil
}

func (j JWT) TokenTTL() time.Duration {
	return time.Duration(j.AccessTokenExpireMinutes) * time.Minute
}

// DSN renders the libpq connection string understood by the pgx driver.
func (d Database) DSN() string {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s connect_timeout=%d",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode, d.ConnectTimeout)
	if d.Schema != "" {
		dsn += " search_path=" + d.Schema
	}
	return dsn
}
