package config

import "time"

const (
	defaultSourceName     = "contacts"
	defaultStoreURI       = "card"
	defaultCacheSize      = 20
	defaultSyncSchedule   = "@every 5m"
	defaultRequestTimeout = 30 * time.Second
	defaultDSN            = "pimsync.db"
)

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			SourceName: defaultSourceName,
			StoreURI:   defaultStoreURI,
			CacheSize:  defaultCacheSize,
		},
		Storage: Storage{
			DB: DB{DSN: defaultDSN},
		},
		Server: Server{
			RequestTimeout: defaultRequestTimeout,
		},
		Workers: Workers{
			SyncSchedule: defaultSyncSchedule,
		},
	}
}
