package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Sentinel configuration errors.
var (
	ErrInvalidMaxDepth = errors.New("max depth must be positive")
	ErrInvalidLogLevel = errors.New("unknown log level")
)

const (
	configName     = ".gramc"
	envPrefix      = "GRAMC"
	defaultLevel   = "warn"
	builtinGrammar = "builtin:c"
)

// Config holds gramc settings read from .gramc.yaml, GRAMC_* variables and flags.
type Config struct {
	Grammar  string `mapstructure:"grammar"`
	Profile  string `mapstructure:"profile"`
	Root     string `mapstructure:"root"`
	MaxDepth int    `mapstructure:"max_depth"`
	LogLevel string `mapstructure:"log_level"`
	NoColor  bool   `mapstructure:"no_color"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("grammar", builtinGrammar)
	v.SetDefault("profile", "")
	v.SetDefault("root", "")
	v.SetDefault("max_depth", 1000)
	v.SetDefault("log_level", defaultLevel)
	v.SetDefault("no_color", false)
}

// loadConfig reads configuration file (configPath or .gramc.yaml in current or home directory)
// and environment variables into v.
func loadConfig(v *viper.Viper, configPath string) (*Config, error) {
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if e := v.ReadInConfig(); e != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(e, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", e)
		}
	}

	var cfg Config
	if e := v.Unmarshal(&cfg); e != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", e)
	}

	if e := validateConfig(&cfg); e != nil {
		return nil, fmt.Errorf("invalid configuration: %w", e)
	}

	return &cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.MaxDepth <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidMaxDepth, cfg.MaxDepth)
	}

	switch strings.ToLower(cfg.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, cfg.LogLevel)
	}

	return nil
}
