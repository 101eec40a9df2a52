package commands

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const configName = ".cqpolyfill"
const configType = "yaml"
const envPrefix = "CQPOLYFILL"
const envKeySeparator = "_"

// Config is the CLI's persisted/environment configuration. The core
// transpiler itself takes none (spec.md §6, "Environment variables / CLI /
// persisted state: None for the core itself") — everything here is CLI
// presentation and default wiring on top of it.
type Config struct {
	BaseURL string `mapstructure:"base_url"`
	Color   bool   `mapstructure:"color"`
}

// loadConfig loads CLI configuration from file, environment and defaults,
// the same layered precedence used throughout the example corpus.
func loadConfig(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("base_url", "")
	v.SetDefault("color", true)

	v.SetConfigType(configType)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", envKeySeparator))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}
