package db

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"
)

const defaultPort = 5432

// Config holds the connection parameters of one pool role, as found under
// db.core.masters.{role} in the configuration file.
type Config struct {
	// Driver name; only PostgreSQL is supported ("pgsql", "postgres", "postgresql").
	Driver   string `mapstructure:"db" yaml:"db"`
	Host     string `mapstructure:"host" yaml:"host"`
	Login    string `mapstructure:"login" yaml:"login"`
	Password string `mapstructure:"password" yaml:"password"`
	Database string `mapstructure:"database" yaml:"database"`
	SSLMode  string `mapstructure:"sslmode" yaml:"sslmode"`

	// DSN, when set, takes precedence over the discrete fields.
	DSN string `mapstructure:"dsn" yaml:"dsn"`

	Port int `mapstructure:"port" yaml:"port"`

	// Eager connections are pinged at creation; lazy ones connect on first use.
	Eager bool `mapstructure:"eager" yaml:"eager"`

	MaxConns int32 `mapstructure:"max_conns" yaml:"max_conns"`
	MinConns int32 `mapstructure:"min_conns" yaml:"min_conns"`

	HealthCheckPeriod time.Duration `mapstructure:"healthcheck_period" yaml:"healthcheck_period"`
	MaxConnIdleTime   time.Duration `mapstructure:"max_conn_idle_time" yaml:"max_conn_idle_time"`
	MaxConnLifetime   time.Duration `mapstructure:"max_conn_lifetime" yaml:"max_conn_lifetime"`

	RetryAttempts int           `mapstructure:"retry_attempts" yaml:"retry_attempts"`
	RetryInterval time.Duration `mapstructure:"retry_interval" yaml:"retry_interval"`
}

// Validate reports a malformed configuration.
func (c Config) Validate() error {
	switch c.Driver {
	case "pgsql", "postgres", "postgresql":
	case "":
		if c.DSN == "" {
			return ErrMissingDriver
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedDriver, c.Driver)
	}

	if c.DSN != "" {
		if _, err := url.Parse(c.DSN); err != nil {
			return errors.Join(ErrFailedToParseDBConfig, err)
		}
		return nil
	}

	if c.Host == "" {
		return fmt.Errorf("%w: host", ErrMissingField)
	}
	if c.Database == "" {
		return fmt.Errorf("%w: database", ErrMissingField)
	}
	if c.Login == "" {
		return fmt.Errorf("%w: login", ErrMissingField)
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("%w: port %d", ErrInvalidField, c.Port)
	}
	if c.MinConns < 0 || c.MaxConns < 0 || (c.MaxConns > 0 && c.MinConns > c.MaxConns) {
		return fmt.Errorf("%w: connection limits", ErrInvalidField)
	}
	return nil
}

// ConnectionString returns the PostgreSQL URL for the configuration.
func (c Config) ConnectionString() string {
	if c.DSN != "" {
		return c.DSN
	}

	port := c.Port
	if port == 0 {
		port = defaultPort
	}

	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.Login, c.Password),
		Host:   net.JoinHostPort(c.Host, strconv.Itoa(port)),
		Path:   "/" + c.Database,
	}
	if c.SSLMode != "" {
		u.RawQuery = url.Values{"sslmode": {c.SSLMode}}.Encode()
	}
	return u.String()
}
