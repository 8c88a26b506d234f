package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/abdul-hamid-achik/postprobe/packages/core/runner"
	"github.com/abdul-hamid-achik/postprobe/packages/http"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config represents the postprobe configuration
type Config struct {
	BaseURL   string            `json:"baseUrl,omitempty" yaml:"baseUrl,omitempty"`
	Timeout   int               `json:"timeout,omitempty" yaml:"timeout,omitempty"` // milliseconds
	Async     *bool             `json:"async,omitempty" yaml:"async,omitempty"`
	Rate      *float64          `json:"rate,omitempty" yaml:"rate,omitempty"`       // requests per second, 0 = unpaced
	Headers   map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"` // Default headers for all requests
	Reporters []string          `json:"reporters,omitempty" yaml:"reporters,omitempty"`
	LogLevel  string            `json:"logLevel,omitempty" yaml:"logLevel,omitempty"`
	Verbose   *bool             `json:"verbose,omitempty" yaml:"verbose,omitempty"`
	NoColor   *bool             `json:"noColor,omitempty" yaml:"noColor,omitempty"`
	Suite     runner.SuiteArgs  `json:"suite,omitempty" yaml:"suite,omitempty"`
}

// boolPtr returns a pointer to a bool value
func boolPtr(b bool) *bool {
	return &b
}

// BoolPtr is exported version of boolPtr for external use
func BoolPtr(b bool) *bool {
	return &b
}

// Float64Ptr returns a pointer to a float64 value
func Float64Ptr(f float64) *float64 {
	return &f
}

// getBool returns the value of a bool pointer, or the default if nil
func getBool(b *bool, defaultVal bool) bool {
	if b == nil {
		return defaultVal
	}
	return *b
}

// GetAsync returns the async setting, defaulting to false
func (c *Config) GetAsync() bool {
	return getBool(c.Async, false)
}

// GetRate returns the dispatch rate, defaulting to 0 (unpaced)
func (c *Config) GetRate() float64 {
	if c.Rate == nil {
		return 0
	}
	return *c.Rate
}

// GetVerbose returns the verbose setting, defaulting to false
func (c *Config) GetVerbose() bool {
	return getBool(c.Verbose, false)
}

// GetNoColor returns the no color setting, defaulting to false
func (c *Config) GetNoColor() bool {
	return getBool(c.NoColor, false)
}

// Mode returns the execution mode selected by the async setting
func (c *Config) Mode() runner.Mode {
	return runner.ModeFromAsync(c.GetAsync())
}

// TimeoutDuration returns the client timeout
func (c *Config) TimeoutDuration() time.Duration {
	return time.Duration(c.Timeout) * time.Millisecond
}

// ConfigFilenames contains the possible config file names
var ConfigFilenames = []string{
	".postprobe.json",
	"postprobe.config.json",
	".postprobe.yaml",
	".postprobe.yml",
}

// LoadConfig loads configuration from the specified path or searches for config files
func LoadConfig(path string) (*Config, error) {
	if path != "" {
		return loadConfigFromFile(path)
	}

	// Search for config file in current directory
	return FindAndLoadConfig(".")
}

// FindAndLoadConfig searches for a config file in the given directory
func FindAndLoadConfig(dir string) (*Config, error) {
	for _, filename := range ConfigFilenames {
		configPath := filepath.Join(dir, filename)
		if _, err := os.Stat(configPath); err == nil {
			return loadConfigFromFile(configPath)
		}
	}

	// Return defaults if no config file found
	return DefaultConfig(), nil
}

// loadConfigFromFile loads configuration from a specific file
func loadConfigFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := DefaultConfig()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, config)
	default:
		err = json.Unmarshal(data, config)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	return config, nil
}

// Merge merges another config into this one, with other taking precedence
func (c *Config) Merge(other *Config) *Config {
	if other == nil {
		return c
	}

	result := *c // Copy

	if other.BaseURL != "" {
		result.BaseURL = other.BaseURL
	}
	if other.Timeout > 0 {
		result.Timeout = other.Timeout
	}
	if other.LogLevel != "" {
		result.LogLevel = other.LogLevel
	}

	// Boolean flags - only override if explicitly set in other config
	if other.Rate != nil {
		result.Rate = other.Rate
	}
	if other.Async != nil {
		result.Async = other.Async
	}
	if other.Verbose != nil {
		result.Verbose = other.Verbose
	}
	if other.NoColor != nil {
		result.NoColor = other.NoColor
	}

	// Merge headers
	if len(other.Headers) > 0 {
		headers := make(map[string]string, len(result.Headers)+len(other.Headers))
		for k, v := range result.Headers {
			headers[k] = v
		}
		for k, v := range other.Headers {
			headers[k] = v
		}
		result.Headers = headers
	}

	// Merge reporters
	if len(other.Reporters) > 0 {
		result.Reporters = other.Reporters
	}

	if other.Suite != (runner.SuiteArgs{}) {
		result.Suite = other.Suite
	}

	return &result
}

// Validate checks the values a run depends on
func (c *Config) Validate() error {
	if err := http.ValidateURL(c.BaseURL); err != nil {
		return fmt.Errorf("baseUrl: %w", err)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %d", c.Timeout)
	}
	if c.GetRate() < 0 {
		return fmt.Errorf("rate must not be negative, got %v", c.GetRate())
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("logLevel: %w", err)
	}
	for _, r := range c.Reporters {
		if r != "console" && r != "json" {
			return fmt.Errorf("unknown reporter %q (expected console or json)", r)
		}
	}
	return nil
}

// SaveConfig saves the configuration to a file
func (c *Config) SaveConfig(path string) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
