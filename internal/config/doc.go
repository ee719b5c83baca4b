// Package config provides layered configuration.
//
// Defaults are overridden by an optional TOML file (MOODLENS_CONFIG), which
// is in turn overridden by environment variables. Validates backend choice
// and numeric bounds.
package config
