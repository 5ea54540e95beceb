// Package config handles server-side configuration loading from YAML files,
// covering the HTTP listener, database connection, auth/session settings,
// and per-route rate limits.
package config
