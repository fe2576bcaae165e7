// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "fmt"

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a descriptive error
// otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Sync.ExportRoot == "" {
		return fmt.Errorf("%w: export root is required", ErrInvalidSyncConfigs)
	}

	if cfg.Sync.MinFoundAbs < 0 {
		return fmt.Errorf("%w: min found abs must be non-negative", ErrInvalidSyncConfigs)
	}

	if cfg.Sync.MinFoundFraction < 0 || cfg.Sync.MinFoundFraction > 1 {
		return fmt.Errorf("%w: min found fraction must be within [0, 1]", ErrInvalidSyncConfigs)
	}

	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: database DSN is required", ErrInvalidStorageConfigs)
	}

	if cfg.Server.HTTPAddress == "" {
		return fmt.Errorf("%w: HTTP address is required", ErrInvalidServerConfigs)
	}

	return nil
}
