// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv fills cfg from environment variables via the caarlos0/env tags
// on [StructuredConfig] (APP_*, STORAGE_*, SERVER_*, ADAPTER_*, WORKERS_*).
// Env always wins over file-based settings, so a terminal can be repointed
// at another backend without touching its config file.
func parseEnv(cfg any) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	return nil
}
