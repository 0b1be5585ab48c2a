// Package config loads matchcore's startup configuration with viper: a
// per-service YAML file with environment-variable overrides and
// fsnotify-driven hot reload. Port, whitelist, and the guardrail
// constants are startup-configured. A hot reload rewrites every field of
// the watched Config in place, the port and epsilon included; components
// built from an earlier copy of the Config keep the values they were built
// with.
package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// DuplicateOrderPolicy selects what to do when a NEW arrives whose
// OrderKey already rests.
type DuplicateOrderPolicy string

const (
	// DuplicateReject drops the NEW silently, as if malformed.
	DuplicateReject DuplicateOrderPolicy = "reject"
	// DuplicateReplace cancels the existing resting order first, then
	// processes the NEW as if it were the only order with that key.
	DuplicateReplace DuplicateOrderPolicy = "replace"
	// DuplicateAccept allows both orders to coexist; the Registry keeps
	// only the most recently filed location, as a second entry under the
	// same key cannot have two homes in a map-backed index.
	DuplicateAccept DuplicateOrderPolicy = "accept"
)

// Config is the full set of startup parameters. The mapstructure struct
// tags carry the lower-cased, dot-free YAML/env key viper expects.
type Config struct {
	Port int `mapstructure:"port"`

	Symbols          []string `mapstructure:"symbols"`
	EnforceWhitelist bool     `mapstructure:"enforce_whitelist"`

	MaxGlobalOrders int     `mapstructure:"max_global_orders"`
	MaxPriceLevels  int     `mapstructure:"max_price_levels"`
	MaxTagSize      int     `mapstructure:"max_tag_size"`
	Epsilon         float64 `mapstructure:"epsilon"`

	// CorridorThreshold is the supplemented volatility-corridor guardrail:
	// a NEW LIMIT priced more than this fraction away from the book's last
	// traded price is rejected. 0 disables the check.
	CorridorThreshold float64 `mapstructure:"corridor_threshold"`

	DuplicateOrderPolicy DuplicateOrderPolicy `mapstructure:"duplicate_order_policy"`

	RejectDiagnostics bool   `mapstructure:"reject_diagnostics"`
	MetricsAddr       string `mapstructure:"metrics_addr"`
	LogLevel          string `mapstructure:"log_level"`
}

// Default returns the suggested startup defaults: a 10^7 global order
// cap, 2x10^4 price levels, a 64-byte tag budget, and a 1e-9 epsilon.
// The whitelist is left unenforced by default, so any well-formed
// symbol is accepted unless whitelist enforcement is turned on.
func Default() Config {
	return Config{
		Port:                 1234,
		Symbols:              []string{"IBM", "BTC", "SYM"},
		EnforceWhitelist:     false,
		MaxGlobalOrders:      10_000_000,
		MaxPriceLevels:       20_000,
		MaxTagSize:           64,
		Epsilon:              1e-9,
		CorridorThreshold:    0,
		DuplicateOrderPolicy: DuplicateReject,
		RejectDiagnostics:    false,
		MetricsAddr:          "",
		LogLevel:             "info",
	}
}

// Load reads configuration from ./config/matchcore.yaml (or ./matchcore.yaml
// as a fallback), overlays MATCHCORE_-prefixed environment variables, and
// unmarshals into a Config seeded with Default(). A missing config file is
// tolerated — the defaults and environment stand alone.
func Load() (*viper.Viper, *Config, error) {
	v := viper.New()
	v.SetConfigName("matchcore")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	v.SetEnvPrefix("MATCHCORE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := Default()
	setDefaults(v, cfg)

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, nil, fmt.Errorf("config: reading config file: %w", err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	return v, &cfg, nil
}

// WatchReload arranges for fsnotify-driven config-file changes to update
// every field of out in place and then call onReload. Nothing is rebound
// or rewired: a running pipeline keeps the port, epsilon, whitelist and
// guardrails it was built with.
func WatchReload(v *viper.Viper, out *Config, onReload func(*Config)) {
	v.WatchConfig()
	v.OnConfigChange(func(_ fsnotify.Event) {
		reloaded := *out
		if err := v.Unmarshal(&reloaded); err != nil {
			return
		}
		*out = reloaded
		if onReload != nil {
			onReload(out)
		}
	})
}

func setDefaults(v *viper.Viper, cfg Config) {
	v.SetDefault("port", cfg.Port)
	v.SetDefault("symbols", cfg.Symbols)
	v.SetDefault("enforce_whitelist", cfg.EnforceWhitelist)
	v.SetDefault("max_global_orders", cfg.MaxGlobalOrders)
	v.SetDefault("max_price_levels", cfg.MaxPriceLevels)
	v.SetDefault("max_tag_size", cfg.MaxTagSize)
	v.SetDefault("epsilon", cfg.Epsilon)
	v.SetDefault("corridor_threshold", cfg.CorridorThreshold)
	v.SetDefault("duplicate_order_policy", string(cfg.DuplicateOrderPolicy))
	v.SetDefault("reject_diagnostics", cfg.RejectDiagnostics)
	v.SetDefault("metrics_addr", cfg.MetricsAddr)
	v.SetDefault("log_level", cfg.LogLevel)
}
