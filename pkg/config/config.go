// Package config loads the console configuration with Viper from a file,
// CONSOLE_ environment variables and command-line flags.
//
// Precedence, highest first: bound flags, overrides, environment, file, defaults.
// Nested keys map to environment variables with "." replaced by "_":
// log.file.path is CONSOLE_LOG_FILE_PATH.
package config

import (
	"time"

	"github.com/dmitrymomot/console/pkg/db"
	"github.com/dmitrymomot/console/pkg/logger"
	"github.com/dmitrymomot/console/pkg/module"
	"github.com/dmitrymomot/console/pkg/redis"
)

// ModeCLI is the only execution mode the console bootstrap accepts.
const ModeCLI = "cli"

type Config struct {
	DB       DBConfig            `mapstructure:"db"`
	Log      LogConfig           `mapstructure:"log"`
	App      AppConfig           `mapstructure:"app"`
	Cache    CacheConfig         `mapstructure:"cache"`
	Metrics  MetricsConfig       `mapstructure:"metrics"`
	Language []string            `mapstructure:"language"`
	Modules  []module.Descriptor `mapstructure:"modules"`
}

type LogConfig struct {
	File   LogFileConfig       `mapstructure:"file"`
	Level  string              `mapstructure:"level"`
	Sentry logger.SentryConfig `mapstructure:"sentry"`
}

type LogFileConfig struct {
	Path string `mapstructure:"path"`
}

type DBConfig struct {
	Core CoreConfig `mapstructure:"core"`
}

// CoreConfig holds one connection config per pool role.
type CoreConfig struct {
	Masters map[string]db.Config `mapstructure:"masters"`
}

type AppConfig struct {
	// Path is the root path requests are relative to, e.g. "/" or "/console/".
	Path string `mapstructure:"path"`
	// Routes is the route table file (.yaml, .yml or .hcl).
	Routes string `mapstructure:"routes"`
	Mode   string `mapstructure:"mode"`
	// Manifest optionally points to a YAML module manifest used instead of Modules.
	Manifest string `mapstructure:"manifest"`
	Method   string `mapstructure:"method"`
}

type CacheConfig struct {
	Redis redis.Config  `mapstructure:"redis"`
	TTL   time.Duration `mapstructure:"ttl"`
}

type MetricsConfig struct {
	File string `mapstructure:"file"`
}

// DefaultLanguage returns the first supported language.
func (c *Config) DefaultLanguage() string {
	if len(c.Language) == 0 {
		return ""
	}
	return c.Language[0]
}
