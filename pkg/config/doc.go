// Package config handles configuration management for progtmpl.
// It layers the embedded defaults, the user's TOML file, PROGTMPL_
// environment variables and command-line overrides.
package config
