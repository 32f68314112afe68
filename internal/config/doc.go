// Package config loads, normalizes, and validates cull configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the CULL_CONFIG environment
// fallback. The Config type centralizes every knob the CLI needs, so
// selection defaults, extension tables, and decoder settings are discovered
// in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical enum values, and clear validation errors.
package config
