package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, empty DSN or an in-memory DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAppConfigs indicates invalid sync source settings
	// (for example, missing source name or non-positive cache size).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidAlertConfigs indicates that the alert listener is enabled
	// without the credentials needed to verify alerts.
	ErrInvalidAlertConfigs = errors.New("invalid alert configuration")
	// ErrInvalidWorkerConfigs indicates an unparsable sync schedule.
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
)
