// Package config loads, normalizes, and validates Splice configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and canonicalizes editing and render settings.
// The Config type centralizes every knob the CLI needs, so data directories,
// external tool binaries, and render defaults are discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical interpolation names, and clear validation errors.
package config
