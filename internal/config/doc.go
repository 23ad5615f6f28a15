// Package config loads, normalizes, and validates qbank configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the QBANK_DATA_DIR environment
// fallback. The Config type centralizes every knob the CLI and the library
// service need, so data, state, and export directories are discovered in one
// pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
