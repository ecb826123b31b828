// Package config loads, normalizes, and validates mediasort configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type centralizes every knob the
// CLI needs: the recognized media extension vocabulary, sidecar names, hash
// pool sizing, the two-digit-year pivot, and catalog/log locations.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, lowercase extension sets, and clear validation errors.
package config
