package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/dotcommander/riverwqi/internal/cue"
)

// Formats lists the supported output formats.
var Formats = []string{"console", "json", "markdown", "text", "pdf"}

// DefaultConfigPaths are searched in order when no config file is given.
var DefaultConfigPaths = []string{".riverwqirc.json", ".riverwqirc.yaml", ".riverwqirc.yml"}

// Config represents the riverwqi configuration
type Config struct {
	Format  string       `mapstructure:"format" json:"format" yaml:"format"`
	Output  string       `mapstructure:"output" json:"output,omitempty" yaml:"output,omitempty"`
	Quiet   bool         `mapstructure:"quiet" json:"quiet" yaml:"quiet"`
	Verbose bool         `mapstructure:"verbose" json:"verbose" yaml:"verbose"`
	Plot    PlotConfig   `mapstructure:"plot" json:"plot" yaml:"plot"`
	Server  ServerConfig `mapstructure:"server" json:"server" yaml:"server"`
	Batch   BatchConfig  `mapstructure:"batch" json:"batch" yaml:"batch"`

	// File is the config file that was loaded, if any.
	File string `mapstructure:"-" json:"-" yaml:"-"`
}

// PlotConfig controls the parameter trend charts
type PlotConfig struct {
	MaxDistance float64 `mapstructure:"maxDistance" json:"maxDistance" yaml:"maxDistance"`
	Points      int     `mapstructure:"points" json:"points" yaml:"points"`
}

// ServerConfig controls the dashboard server
type ServerConfig struct {
	Addr string `mapstructure:"addr" json:"addr" yaml:"addr"`
}

// BatchConfig locates batch distance files
type BatchConfig struct {
	Root     string   `mapstructure:"root" json:"root" yaml:"root"`
	Patterns []string `mapstructure:"patterns" json:"patterns,omitempty" yaml:"patterns,omitempty"`
}

// LoadConfig loads configuration from defaults, the config file, environment
// variables and bound flags. An empty configFile searches DefaultConfigPaths.
func LoadConfig(configFile string) (*Config, error) {
	viper.SetDefault("format", "console")
	viper.SetDefault("output", "")
	viper.SetDefault("quiet", false)
	viper.SetDefault("verbose", false)
	viper.SetDefault("plot.maxDistance", 15.0)
	viper.SetDefault("plot.points", 120)
	viper.SetDefault("server.addr", ":8080")
	viper.SetDefault("batch.root", ".")
	viper.SetDefault("batch.patterns", []string{})

	path, err := findConfigFile(configFile)
	if err != nil {
		return nil, err
	}
	if path != "" {
		if err := validateConfigFile(path); err != nil {
			return nil, err
		}
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}

	// Environment variables
	viper.SetEnvPrefix("RIVERWQI")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	config.File = path

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func findConfigFile(configFile string) (string, error) {
	if configFile != "" {
		if _, err := os.Stat(configFile); err != nil {
			return "", fmt.Errorf("config file %s: %w", configFile, err)
		}
		return configFile, nil
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", nil
}

// validateConfigFile checks the raw file against the embedded CUE schema
// before viper merges it.
func validateConfigFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error reading config file %s: %w", path, err)
	}

	validator, err := cue.NewValidator()
	if err != nil {
		return err
	}

	found, err := validator.CheckFile(path, content)
	if err != nil {
		return err
	}
	if len(found) > 0 {
		msgs := make([]string, len(found))
		for i, v := range found {
			msgs[i] = v.String()
		}
		return fmt.Errorf("config file failed schema validation:\n  %s", strings.Join(msgs, "\n  "))
	}
	return nil
}

// validateConfig validates the configuration
func validateConfig(config *Config) error {
	if !IsFormat(config.Format) {
		return fmt.Errorf("invalid format: %s. Must be one of %s", config.Format, strings.Join(Formats, ", "))
	}

	if config.Plot.MaxDistance < 1 {
		return fmt.Errorf("plot max distance must be at least 1")
	}

	if config.Plot.Points < 2 {
		return fmt.Errorf("plot points must be at least 2")
	}

	return nil
}

// IsFormat reports whether format is supported.
func IsFormat(format string) bool {
	return slices.Contains(Formats, format)
}

// SaveConfig writes config to path as YAML for .yaml/.yml paths and as
// indented JSON otherwise.
func SaveConfig(config *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(config)
	default:
		data, err = json.MarshalIndent(config, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}
	return nil
}
