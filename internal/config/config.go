// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"
)

// StructuredConfig is the top-level configuration container for the
// go-pos-sync application. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line flags,
// and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as the session token
	// parameters and the store scope this instance serves.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for the local durable store.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address settings for the UI-facing HTTP API.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds configuration for the remote data service connection.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds configuration for the background sync workers.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// TokenSignKey is the secret key used to verify session tokens issued
	// by the identity provider. Must be kept confidential.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the expected "iss" claim of every session token.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// StoreID is the tenant/store scope this instance drains the queue for.
	// Env: APP_STORE_ID
	StoreID string `env:"STORE_ID"`

	// Version is the semantic version string of the running application.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Storage groups the configuration for the local durable store.
type Storage struct {
	// DB holds the local SQLite database settings.
	DB DB `envPrefix:"DB_"`
}

// DB contains local database connection settings.
type DB struct {
	// DSN is the SQLite file path used for the local durable store.
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// Server holds network settings for the UI-facing HTTP API.
type Server struct {
	// HTTPAddress is the TCP address the control API listens on,
	// in "host:port" format (e.g. "127.0.0.1:8081").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`
}

// Adapter holds configuration for the remote data service connection.
type Adapter struct {
	// HTTPAddress is the base URL of the hosted backend.
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// APIKey is the project API key attached to every remote request.
	// Env: ADAPTER_API_KEY
	APIKey string `env:"API_KEY"`

	// HealthPath is the path probed to detect connectivity.
	// Env: ADAPTER_HEALTH_PATH
	HealthPath string `env:"HEALTH_PATH"`

	// RequestTimeout is the default timeout for outbound remote requests.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Workers contains background sync worker settings.
type Workers struct {
	// SyncInterval defines how often the periodic drain trigger fires while
	// online and unpaused.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`

	// DebounceDelay is how long to wait after an offline→online transition
	// before attempting a drain, to avoid racing a flaky reconnect.
	// Env: WORKERS_DEBOUNCE_DELAY
	DebounceDelay time.Duration `env:"DEBOUNCE_DELAY"`

	// ProbeInterval defines how often the connectivity probe pings the
	// remote health endpoint.
	// Env: WORKERS_PROBE_INTERVAL
	ProbeInterval time.Duration `env:"PROBE_INTERVAL"`
}

// Defaults applied by [GetStructuredConfig] when the merged configuration
// leaves the corresponding field zero.
const (
	DefaultSyncInterval   = 30 * time.Second
	DefaultDebounceDelay  = 2 * time.Second
	DefaultProbeInterval  = 10 * time.Second
	DefaultRequestTimeout = 15 * time.Second
	DefaultServerAddress  = "127.0.0.1:8081"
	DefaultHealthPath     = "/health"
)

// GetStructuredConfig loads, merges, and validates the application
// configuration.
//
// Sources are merged in priority order: environment variables first, then
// command-line flags, then the optional JSON file referenced by either of
// them. Defaults are applied to zero-valued worker/adapter fields before
// validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	cfg, err := newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
	if err != nil {
		return nil, fmt.Errorf("error building config: %w", err)
	}

	cfg.applyDefaults()

	return cfg, cfg.validate()
}

func (cfg *StructuredConfig) applyDefaults() {
	if cfg.Workers.SyncInterval == 0 {
		cfg.Workers.SyncInterval = DefaultSyncInterval
	}
	if cfg.Workers.DebounceDelay == 0 {
		cfg.Workers.DebounceDelay = DefaultDebounceDelay
	}
	if cfg.Workers.ProbeInterval == 0 {
		cfg.Workers.ProbeInterval = DefaultProbeInterval
	}
	if cfg.Adapter.RequestTimeout == 0 {
		cfg.Adapter.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Adapter.HealthPath == "" {
		cfg.Adapter.HealthPath = DefaultHealthPath
	}
	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = DefaultServerAddress
	}
}
