// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the sync
// client. It is populated by merging defaults, environment variables,
// command-line flags and an optional JSON file.
//
// Struct tags:
//   - envPrefix is the prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       is the direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds sync source settings.
	App App `envPrefix:"APP_"`

	// Storage holds the local database settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Alert holds the credentials used to authenticate server alerts.
	Alert Alert `envPrefix:"ALERT_"`

	// Server holds the alert push listener settings.
	Server Server `envPrefix:"SERVER_"`

	// Workers holds background job settings.
	Workers Workers `envPrefix:"WORKERS_"`

	// Log holds the rotated log file settings.
	Log Log `envPrefix:"LOG_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds the settings of the synchronized address book source.
type App struct {
	// SourceName is the local name of the sync source (e.g. "contacts").
	// Env: APP_SOURCE_NAME
	SourceName string `env:"SOURCE_NAME"`

	// StoreURI is the remote store URI the source is bound to (e.g. "card").
	// Server alerts naming other URIs are ignored.
	// Env: APP_STORE_URI
	StoreURI string `env:"STORE_URI"`

	// ConflictPolicy is the conflict resolution policy id announced in the
	// session handshake.
	// Env: APP_CONFLICT_POLICY
	ConflictPolicy int `env:"CONFLICT_POLICY"`

	// CacheSize is the number of records the change enumerator materializes
	// at once.
	// Env: APP_CACHE_SIZE
	CacheSize int `env:"CACHE_SIZE"`

	// MaxItems is the capacity of the address book. Zero means unlimited.
	// Env: APP_MAX_ITEMS
	MaxItems int `env:"MAX_ITEMS"`
}

// Storage groups the configuration for the local storage backend.
type Storage struct {
	// DB holds the SQLite database settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the local SQLite database.
type DB struct {
	// DSN is the SQLite database file path.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Alert holds the credentials shared with the sync server that are used to
// verify server alert digests.
type Alert struct {
	// ServerID is the server identifier expected in alerts.
	// Env: ALERT_SERVER_ID
	ServerID string `env:"SERVER_ID"`

	// Password is the server password.
	// Env: ALERT_PASSWORD
	Password string `env:"PASSWORD"`

	// Nonce is the initial server nonce, used until a session provides a
	// fresh one.
	// Env: ALERT_NONCE
	Nonce string `env:"NONCE"`
}

// Server holds settings for the alert push listener.
type Server struct {
	// HTTPAddress is the TCP address the listener binds to, in "host:port"
	// format. Empty disables the listener.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds the handling of a single pushed alert.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Workers holds configuration for background jobs.
type Workers struct {
	// SyncSchedule is a cron spec for periodic syncs (e.g. "@every 5m").
	// Env: WORKERS_SYNC_SCHEDULE
	SyncSchedule string `env:"SYNC_SCHEDULE"`
}

// Log holds settings for the rotated log file.
type Log struct {
	// Env: LOG_FILE_PATH
	FilePath string `env:"FILE_PATH"`
	// Env: LOG_MAX_SIZE_MB
	MaxSizeMB int `env:"MAX_SIZE_MB"`
	// Env: LOG_MAX_BACKUPS
	MaxBackups int `env:"MAX_BACKUPS"`
}

// GetStructuredConfig loads, merges, and validates the client configuration
// from all available sources in the following priority order (last source
// wins for non-zero fields):
//  0. Built-in defaults
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags().
		withJSON().
		build()
}
