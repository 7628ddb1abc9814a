// Package config loads application settings from defaults, an optional
// YAML file and BARCUT_* environment variables, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/piwi3910/BarCut/internal/model"
)

// EnvPrefix is the prefix of environment overrides, e.g. BARCUT_STOCK_LENGTH
// or BARCUT_SERVER_ADDR.
const EnvPrefix = "BARCUT"

// ErrInvalid is returned by Validate.
var ErrInvalid = errors.New("invalid configuration")

// Config is the full application configuration.
type Config struct {
	model.Settings `mapstructure:",squash" yaml:",inline"`
	Server         ServerConfig `mapstructure:"server" yaml:"server" json:"server"`
	Log            LogConfig    `mapstructure:"log" yaml:"log" json:"log"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr           string        `mapstructure:"addr" yaml:"addr" json:"addr"`
	RequestTimeout time.Duration `mapstructure:"request_timeout" yaml:"request_timeout" json:"request_timeout"` // Upper bound on one planning request
}

// LogConfig configures the process logger.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level" json:"level"`    // debug, info, warn or error
	Format string `mapstructure:"format" yaml:"format" json:"format"` // text or json
}

// Default returns the configuration with every default applied.
func Default() Config {
	return Config{
		Settings: model.DefaultSettings(),
		Server: ServerConfig{
			Addr:           ":8080",
			RequestTimeout: 30 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// DefaultConfigDir returns the default directory for application configuration.
// On all platforms this is ~/.barcut/
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".barcut")
}

// DefaultConfigPath returns the default path for the application config file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.yaml")
}

// setDefaults registers every key so that environment overrides apply even
// when no config file sets them.
func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("stock_length", d.StockLength)
	v.SetDefault("unit", d.Unit)
	v.SetDefault("decimals", d.Decimals)
	v.SetDefault("max_subset_size", d.MaxSubsetSize)
	v.SetDefault("min_offcut_length", d.MinOffcutLength)
	v.SetDefault("price_per_bar", d.PricePerBar)
	v.SetDefault("waste_percent", d.WastePercent)
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.request_timeout", d.Server.RequestTimeout)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
}

// Load reads the configuration. An empty path reads DefaultConfigPath and
// tolerates its absence; an explicit path must exist.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath()
	}

	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		missing := errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
		if explicit || !missing {
			return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func Validate(cfg Config) error {
	var problems []string
	if !(cfg.StockLength > 0) {
		problems = append(problems, "stock_length must be positive")
	}
	if cfg.Decimals < 0 || cfg.Decimals > 10 {
		problems = append(problems, "decimals must be between 0 and 10")
	}
	if cfg.MaxSubsetSize < 0 {
		problems = append(problems, "max_subset_size must not be negative")
	}
	if cfg.MinOffcutLength < 0 {
		problems = append(problems, "min_offcut_length must not be negative")
	}
	if cfg.PricePerBar < 0 {
		problems = append(problems, "price_per_bar must not be negative")
	}
	if cfg.WastePercent < 0 {
		problems = append(problems, "waste_percent must not be negative")
	}
	if cfg.Server.RequestTimeout < 0 {
		problems = append(problems, "server.request_timeout must not be negative")
	}
	if _, err := ParseLevel(cfg.Log.Level); err != nil {
		problems = append(problems, err.Error())
	}
	if cfg.Log.Format != "text" && cfg.Log.Format != "json" {
		problems = append(problems, fmt.Sprintf("log.format must be text or json, got %q", cfg.Log.Format))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
	}
	return nil
}

// Save persists cfg to path as YAML.
// It creates any missing parent directories automatically.
func Save(path string, cfg Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Backup copies the file at path to path+".bak" and returns the backup
// path. A missing file is not an error and returns "".
func Backup(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read config file: %w", err)
	}
	backup := path + ".bak"
	if err := os.WriteFile(backup, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write backup file: %w", err)
	}
	return backup, nil
}
