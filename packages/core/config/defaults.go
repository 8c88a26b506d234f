package config

import (
	"github.com/abdul-hamid-achik/postprobe/packages/core/runner"
	"github.com/abdul-hamid-achik/postprobe/packages/http"
)

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		BaseURL:   http.DefaultBaseURL,
		Timeout:   int(http.DefaultTimeout.Milliseconds()),
		Async:     boolPtr(false),
		Headers:   nil,
		Reporters: []string{"console"},
		LogLevel:  "info",
		Verbose:   boolPtr(false),
		NoColor:   boolPtr(false),
		Suite:     runner.DefaultSuiteArgs(),
	}
}

// IsDefault returns true if the config matches defaults
func (c *Config) IsDefault() bool {
	defaults := DefaultConfig()
	return c.BaseURL == defaults.BaseURL &&
		c.Timeout == defaults.Timeout &&
		c.GetAsync() == defaults.GetAsync() &&
		c.GetRate() == defaults.GetRate() &&
		len(c.Headers) == 0 &&
		c.LogLevel == defaults.LogLevel &&
		c.GetVerbose() == defaults.GetVerbose() &&
		c.GetNoColor() == defaults.GetNoColor() &&
		c.Suite == defaults.Suite
}
