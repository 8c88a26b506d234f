// Package config handles configuration loading and management for postprobe.
//
// It provides functionality for:
//   - Loading configuration from .postprobe.json or .postprobe.yaml files
//   - Default configuration values
//   - Merging CLI overrides on top of file values
//   - Validating the base URL and numeric limits
package config
