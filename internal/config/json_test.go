package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestParseJSON_AllFields(t *testing.T) {
	path := writeTempFile(t, `{
		"app": {"source_name": "contacts", "store_uri": "card", "conflict_policy": 1, "cache_size": 10, "max_items": 300},
		"storage": {"db": {"dsn": "sync.db"}},
		"alert": {"server_id": "srv1", "password": "pw", "nonce": "n1"},
		"server": {"http_address": "localhost:8088", "request_timeout": "20s"},
		"workers": {"sync_schedule": "@every 1m"},
		"log": {"file_path": "sync.log", "max_size_mb": 2, "max_backups": 1}
	}`)

	cfg, err := parseJSON(path)

	require.NoError(t, err)
	assert.Equal(t, App{SourceName: "contacts", StoreURI: "card", ConflictPolicy: 1, CacheSize: 10, MaxItems: 300}, cfg.App)
	assert.Equal(t, "sync.db", cfg.Storage.DB.DSN)
	assert.Equal(t, Alert{ServerID: "srv1", Password: "pw", Nonce: "n1"}, cfg.Alert)
	assert.Equal(t, Server{HTTPAddress: "localhost:8088", RequestTimeout: 20 * time.Second}, cfg.Server)
	assert.Equal(t, "@every 1m", cfg.Workers.SyncSchedule)
	assert.Equal(t, Log{FilePath: "sync.log", MaxSizeMB: 2, MaxBackups: 1}, cfg.Log)
	assert.Empty(t, cfg.JSONFilePath)
}

func TestParseJSON_MissingFile(t *testing.T) {
	_, err := parseJSON(filepath.Join(t.TempDir(), "absent.json"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading a json file")
}

func TestParseJSON_InvalidJSON(t *testing.T) {
	_, err := parseJSON(writeTempFile(t, `{"app": `))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "error decoding json configs")
}

func TestDuration_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Duration
		err   bool
	}{
		{name: "string", input: `"1m30s"`, want: 90 * time.Second},
		{name: "number of nanoseconds", input: `1000`, want: time.Microsecond},
		{name: "bad string", input: `"soon"`, err: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := json.Unmarshal([]byte(tt.input), &d)
			if tt.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, time.Duration(d))
		})
	}
}

func TestDuration_MarshalJSON(t *testing.T) {
	out, err := json.Marshal(Duration(2 * time.Second))

	require.NoError(t, err)
	assert.Equal(t, `"2s"`, string(out))
}
