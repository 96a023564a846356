// Package config loads mplint configuration from flags, config files and
// environment variables via viper.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config represents the mplint configuration
type Config struct {
	Root     string `mapstructure:"root"`
	Manifest string `mapstructure:"manifest"`
	Format   string `mapstructure:"format"`
	Output   string `mapstructure:"output"`
	Quiet    bool   `mapstructure:"quiet"`
	Verbose  bool   `mapstructure:"verbose"`
	NoColor  bool   `mapstructure:"noColor"`
	// MaxCandidates bounds how many rename candidates the history command
	// reports per missing path.
	MaxCandidates int `mapstructure:"maxCandidates"`
}

// ConfigFiles lists the config file locations probed in order.
var ConfigFiles = []string{".mplintrc.json", ".mplintrc.yaml", ".mplintrc.yml"}

// LoadConfig loads configuration from various sources. Precedence:
// explicit rootPath argument > bound flags > config file > MPLINT_* env >
// defaults.
func LoadConfig(rootPath string) (*Config, error) {
	viper.SetDefault("format", "console")
	viper.SetDefault("quiet", false)
	viper.SetDefault("verbose", false)
	viper.SetDefault("noColor", false)
	viper.SetDefault("maxCandidates", 3)

	for _, path := range ConfigFiles {
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err == nil {
			break
		}
	}

	viper.SetEnvPrefix("MPLINT")
	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if rootPath != "" {
		config.Root = rootPath
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// validateConfig validates the configuration
func validateConfig(config *Config) error {
	if config.Format != "console" && config.Format != "json" && config.Format != "markdown" {
		return fmt.Errorf("invalid format: %s. Must be 'console', 'json', or 'markdown'", config.Format)
	}

	if config.Format == "markdown" && config.Output == "" {
		return fmt.Errorf("output file is required when format is 'markdown'")
	}

	if config.MaxCandidates < 1 {
		return fmt.Errorf("maxCandidates must be at least 1")
	}

	return nil
}
