// SPDX-License-Identifier: MIT

// Package config loads dynhung settings from defaults, an optional config
// file and DYNHUNG_* environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended (with "_") to every key when read from the environment.
const EnvPrefix = "DYNHUNG"

// Keys understood by Load.
const (
	KeyAPIPort           = "api_port"
	KeyAPITimeout        = "api_timeout"
	KeyReadHeaderTimeout = "read_header_timeout"
	KeyShutdownTimeout   = "shutdown_timeout"
	KeyRateLimit         = "rate_limit"
	KeyRateBurst         = "rate_burst"
	KeyLogLevel          = "log_level"
	KeyLogDevelopment    = "log_development"
	KeyEpsilon           = "epsilon"
	KeyMaxN              = "max_n"
)

// Config is the resolved service configuration.
type Config struct {
	APIPort           int           `mapstructure:"api_port" validate:"min=0,max=65535"` // 0 picks an ephemeral port
	APITimeout        time.Duration `mapstructure:"api_timeout" validate:"gt=0"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" validate:"gt=0"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
	RateLimit         float64       `mapstructure:"rate_limit" validate:"gte=0"` // requests/second; 0 disables limiting
	RateBurst         int           `mapstructure:"rate_burst" validate:"gte=1"`
	LogLevel          string        `mapstructure:"log_level" validate:"oneof=debug info warn error"`
	LogDevelopment    bool          `mapstructure:"log_development"`
	Epsilon           float64       `mapstructure:"epsilon" validate:"gte=0"`
	MaxN              int           `mapstructure:"max_n" validate:"min=1"`
}

// ErrInvalid wraps every validation failure returned by Load.
var ErrInvalid = errors.New("config: invalid configuration")

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyAPIPort, 6060)
	v.SetDefault(KeyAPITimeout, "30s")
	v.SetDefault(KeyReadHeaderTimeout, "5s")
	v.SetDefault(KeyShutdownTimeout, "10s")
	v.SetDefault(KeyRateLimit, 50.0)
	v.SetDefault(KeyRateBurst, 100)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogDevelopment, false)
	v.SetDefault(KeyEpsilon, 1e-15)
	v.SetDefault(KeyMaxN, 512)
}

// New returns a viper instance with defaults and environment binding set up.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads file into v when file is non-empty, then decodes and validates
// the result. Flags bound to v (viper.BindPFlag) take precedence over all.
func Load(v *viper.Viper, file string) (Config, error) {
	var cfg Config
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return cfg, fmt.Errorf("fatal error config file: %w", err)
		}
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("config: decode: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return cfg, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	return cfg, nil
}
