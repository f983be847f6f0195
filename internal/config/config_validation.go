// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// client invariants before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" || strings.Contains(cfg.Storage.DB.DSN, "memory") {
		return ErrInvalidStorageConfigs
	}

	if cfg.App.SourceName == "" || cfg.App.StoreURI == "" || cfg.App.CacheSize <= 0 || cfg.App.MaxItems < 0 {
		return ErrInvalidAppConfigs
	}

	if cfg.Server.HTTPAddress != "" && (cfg.Alert.ServerID == "" || cfg.Alert.Password == "") {
		return ErrInvalidAlertConfigs
	}

	if cfg.Workers.SyncSchedule != "" {
		if _, err := cron.ParseStandard(cfg.Workers.SyncSchedule); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidWorkerConfigs, err)
		}
	}

	return nil
}
