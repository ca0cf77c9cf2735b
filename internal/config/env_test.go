// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setEnvVars(t *testing.T, vars map[string]string) {
	t.Helper()
	for k, v := range vars {
		t.Setenv(k, v)
	}
}

func TestParseEnv_AllFields(t *testing.T) {
	// Arrange
	envVars := map[string]string{
		"CONFIG": "/path/to/config.json",

		"APP_TOKEN_SIGN_KEY": "jwt_secret",
		"APP_TOKEN_ISSUER":   "test_issuer",
		"APP_STORE_ID":       "store-main",
		"APP_VERSION":        "1.2.3",

		"SERVER_ADDRESS": "localhost:8081",

		"ADAPTER_ADDRESS":         "https://backend.example.com",
		"ADAPTER_API_KEY":         "anon-key",
		"ADAPTER_HEALTH_PATH":     "/health",
		"ADAPTER_REQUEST_TIMEOUT": "30s",

		// Storage has a nested prefix: STORAGE_ + DB_
		"STORAGE_DB_DSN": "/var/lib/possync/local.db",

		"WORKERS_SYNC_INTERVAL":  "45s",
		"WORKERS_DEBOUNCE_DELAY": "3s",
		"WORKERS_PROBE_INTERVAL": "12s",
	}
	setEnvVars(t, envVars)

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)

	assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)

	assert.Equal(t, "jwt_secret", cfg.App.TokenSignKey)
	assert.Equal(t, "test_issuer", cfg.App.TokenIssuer)
	assert.Equal(t, "store-main", cfg.App.StoreID)
	assert.Equal(t, "1.2.3", cfg.App.Version)

	assert.Equal(t, "localhost:8081", cfg.Server.HTTPAddress)

	assert.Equal(t, "https://backend.example.com", cfg.Adapter.HTTPAddress)
	assert.Equal(t, "anon-key", cfg.Adapter.APIKey)
	assert.Equal(t, "/health", cfg.Adapter.HealthPath)
	assert.Equal(t, 30*time.Second, cfg.Adapter.RequestTimeout)

	assert.Equal(t, "/var/lib/possync/local.db", cfg.Storage.DB.DSN)

	assert.Equal(t, 45*time.Second, cfg.Workers.SyncInterval)
	assert.Equal(t, 3*time.Second, cfg.Workers.DebounceDelay)
	assert.Equal(t, 12*time.Second, cfg.Workers.ProbeInterval)
}

func TestParseEnv_PartialFields(t *testing.T) {
	setEnvVars(t, map[string]string{
		"STORAGE_DB_DSN": "/tmp/partial.db",
	})

	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	require.NoError(t, err)
	assert.Equal(t, "/tmp/partial.db", cfg.Storage.DB.DSN)
	assert.Empty(t, cfg.App.TokenSignKey)
	assert.Zero(t, cfg.Workers.SyncInterval)
}

func TestParseEnv_InvalidDuration(t *testing.T) {
	setEnvVars(t, map[string]string{
		"ADAPTER_REQUEST_TIMEOUT": "not-a-duration",
	})

	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	assert.Error(t, err)
}
