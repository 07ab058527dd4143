// Package config provides environment-driven configuration for the backend.
//
// Configuration is loaded from environment variables via envconfig with
// sensible defaults, so the server runs with no environment at all.
//
// Variables:
//   - PORT, HOST: HTTP listen address
//   - HISTORY_LIMIT: calculation history capacity (default 50)
//   - CURRENCY_RATES: optional YAML file overriding the built-in pair table
//   - LOG_LEVEL, LOG_DEV: logging behavior
//   - RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED: API rate limiting
package config
