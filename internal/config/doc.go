// Package config loads, normalizes, and validates the TOML configuration
// shared by every linecut command.
package config
