package service

import (
	"context"
	"iter"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-pim-sync/internal/codec"
	"github.com/MKhiriev/go-pim-sync/internal/config"
	"github.com/MKhiriev/go-pim-sync/internal/logger"
	"github.com/MKhiriev/go-pim-sync/internal/store"
	"github.com/MKhiriev/go-pim-sync/models"
)

func testContext() context.Context {
	l := zerolog.Nop()
	return l.WithContext(context.Background())
}

type fixedIDs struct {
	ids []string
}

func (f *fixedIDs) Generate() string {
	id := f.ids[0]
	f.ids = f.ids[1:]
	return id
}

// tickingClock returns a clock that advances one second per call.
func tickingClock() func() time.Time {
	now := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	return func() time.Time {
		now = now.Add(time.Second)
		return now
	}
}

func newSQLiteStorages(t *testing.T) *store.ClientStorages {
	t.Helper()

	cfg := config.Storage{DB: config.DB{DSN: filepath.Join(t.TempDir(), "sync.db")}}
	storages, err := store.NewClientStorages(cfg, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { storages.Close() })
	return storages
}

func newTestSessionContext(storages *store.ClientStorages, app config.App) SessionContext {
	if app.SourceName == "" {
		app.SourceName = "contacts"
	}
	if app.CacheSize == 0 {
		app.CacheSize = 2
	}

	return SessionContext{
		Config:      app,
		Items:       storages.Items,
		ItemStates:  storages.ItemStates,
		SessionLogs: storages.SessionLogs,
		Codec:       codec.NewVCard(),
		IDs:         &fixedIDs{ids: []string{"aaaa-s1", "bbbb-s2", "cccc-s3"}},
		Logger:      logger.Nop(),
		Now:         tickingClock(),
	}
}

func newTestSource(t *testing.T, storages *store.ClientStorages, app config.App) *contactSyncSource {
	t.Helper()
	return NewContactSyncSource(newTestSessionContext(storages, app)).(*contactSyncSource)
}

func createContacts(t *testing.T, items store.ItemStore, names ...string) []models.Item {
	t.Helper()

	created := make([]models.Item, 0, len(names))
	for _, name := range names {
		item, err := items.Create(context.Background(), models.Contact{GivenName: name, FamilyName: "Tester"})
		require.NoError(t, err)
		created = append(created, item)
	}
	return created
}

func encodeContact(t *testing.T, c models.Contact) []byte {
	t.Helper()
	data, err := codec.NewVCard().Encode(c)
	require.NoError(t, err)
	return data
}

// drain reads every record of e.
func drain(t *testing.T, ctx context.Context, e RecordEnumerator) []models.Record {
	t.Helper()

	var records []models.Record
	for {
		record, ok, err := e.Next(ctx)
		require.NoError(t, err)
		if !ok {
			return records
		}
		records = append(records, record)
	}
}

type versionEntry struct {
	version models.ItemVersion
	err     error
}

func versionSeq(entries ...versionEntry) iter.Seq2[models.ItemVersion, error] {
	return func(yield func(models.ItemVersion, error) bool) {
		for _, e := range entries {
			if !yield(e.version, e.err) {
				return
			}
		}
	}
}

func live(id, version string) versionEntry {
	return versionEntry{version: models.ItemVersion{ID: id, Version: version}}
}

// peerFunc adapts a function to [Peer].
type peerFunc func(ctx context.Context, source SyncSource, mode models.SyncMode) (models.Status, error)

func (f peerFunc) Exchange(ctx context.Context, source SyncSource, mode models.SyncMode) (models.Status, error) {
	return f(ctx, source, mode)
}
