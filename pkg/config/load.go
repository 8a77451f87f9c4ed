package config

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is the environment prefix for configuration keys.
const EnvPrefix = "CONSOLE"

// EnvConfigFile names the configuration file when no explicit path is given.
const EnvConfigFile = "CONSOLE_CONFIG_FILE"

type loader struct {
	reader     io.Reader
	overrides  map[string]any
	flags      map[string]*pflag.Flag
	file       string
	readerType string
	envPrefix  string
	searchPath []string
}

// Option configures Load.
type Option func(*loader)

// WithFile reads configuration from path. The format follows the extension.
func WithFile(path string) Option {
	return func(l *loader) { l.file = path }
}

// WithReader reads configuration of the given type ("yaml", "json", "toml") from r.
func WithReader(r io.Reader, typ string) Option {
	return func(l *loader) {
		l.reader = r
		l.readerType = typ
	}
}

// WithEnvPrefix changes the environment prefix. Default: CONSOLE.
func WithEnvPrefix(prefix string) Option {
	return func(l *loader) { l.envPrefix = prefix }
}

// WithOverride sets key regardless of file and environment.
func WithOverride(key string, value any) Option {
	return func(l *loader) { l.overrides[key] = value }
}

// WithFlag binds a command-line flag to key. The flag wins only when it was set.
func WithFlag(key string, f *pflag.Flag) Option {
	return func(l *loader) {
		if f != nil {
			l.flags[key] = f
		}
	}
}

// WithSearchPath adds directories searched for console.{yaml,json,toml}
// when no file is given.
func WithSearchPath(dirs ...string) Option {
	return func(l *loader) { l.searchPath = append(l.searchPath, dirs...) }
}

// Load reads and decodes the configuration. It does not validate it.
func Load(opts ...Option) (*Config, error) {
	l := &loader{
		envPrefix: EnvPrefix,
		overrides: make(map[string]any),
		flags:     make(map[string]*pflag.Flag),
	}
	for _, opt := range opts {
		opt(l)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(l.envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := l.read(v); err != nil {
		return nil, err
	}

	for key, f := range l.flags {
		if err := v.BindPFlag(key, f); err != nil {
			return nil, errors.Join(ErrBindFlag, err)
		}
	}
	for key, val := range l.overrides {
		v.Set(key, val)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Join(ErrDecodeConfig, err)
	}
	return &cfg, nil
}

func (l *loader) read(v *viper.Viper) error {
	file := l.file
	if file == "" && l.reader == nil {
		file = os.Getenv(EnvConfigFile)
	}

	switch {
	case file != "":
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return errors.Join(ErrReadConfig, err)
		}
	case l.reader != nil:
		v.SetConfigType(l.readerType)
		if err := v.ReadConfig(l.reader); err != nil {
			return errors.Join(ErrReadConfig, err)
		}
	case len(l.searchPath) > 0:
		v.SetConfigName("console")
		for _, dir := range l.searchPath {
			v.AddConfigPath(dir)
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return errors.Join(ErrReadConfig, err)
			}
		}
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.path", "/")
	v.SetDefault("app.mode", ModeCLI)
	v.SetDefault("app.method", "GET")
	v.SetDefault("log.level", "info")
	v.SetDefault("cache.ttl", "10m")
}
