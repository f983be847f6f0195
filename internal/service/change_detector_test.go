package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-pim-sync/internal/mock"
	"github.com/MKhiriev/go-pim-sync/internal/store"
	"github.com/MKhiriev/go-pim-sync/models"
)

func detectorRows() []models.ItemState {
	return []models.ItemState{
		{RowID: 1, ItemID: "a", ChangeType: models.ChangeNone, Version: "1"},
		{RowID: 2, ItemID: "b", ChangeType: models.ChangeNone, Version: "1"},
		{RowID: 3, ItemID: "c", ChangeType: models.ChangeAdd, Version: "1"},
		{RowID: 4, ItemID: "d", ChangeType: models.ChangeNone, Version: "1"},
		{RowID: 5, ItemID: "e", ChangeType: models.ChangeDelete, Version: "1"},
		{RowID: 6, ItemID: "f", ChangeType: models.ChangeReplace, Version: "2"},
		{RowID: 7, ItemID: "h", ChangeType: models.ChangeDelete, Version: "1"},
	}
}

func detectorLive() []versionEntry {
	return []versionEntry{
		live("a", "1"),
		live("b", "2"),
		live("c", "2"),
		live("e", "1"),
		live("f", "2"),
		live("g", "1"),
	}
}

func TestChangeDetector_ComputeChanges(t *testing.T) {
	tests := []struct {
		name     string
		mode     models.DetectMode
		vanished func(states *mock.MockItemStateRepository)
		want     models.ChangeSet
	}{
		{
			name: "changes only marks vanished items deleted",
			mode: models.DetectChangesOnly,
			vanished: func(states *mock.MockItemStateRepository) {
				states.EXPECT().Update(gomock.Any(), models.ItemState{RowID: 4, ItemID: "d", ChangeType: models.ChangeDelete, Version: "1"}).Return(nil)
			},
			want: models.ChangeSet{Added: 2, Modified: 3, Deleted: 2, Live: 6, StateValid: true},
		},
		{
			name: "full mode removes vanished rows",
			mode: models.DetectFull,
			vanished: func(states *mock.MockItemStateRepository) {
				gomock.InOrder(
					states.EXPECT().Remove(gomock.Any(), int64(4)).Return(nil),
					states.EXPECT().Remove(gomock.Any(), int64(7)).Return(nil),
				)
			},
			want: models.ChangeSet{Added: 2, Modified: 3, Live: 6, StateValid: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			items := mock.NewMockItemStore(ctrl)
			states := mock.NewMockItemStateRepository(ctrl)

			states.EXPECT().LoadAll(gomock.Any()).Return(detectorRows(), nil)
			items.EXPECT().Versions(gomock.Any()).Return(versionSeq(detectorLive()...))

			states.EXPECT().Update(gomock.Any(), models.ItemState{RowID: 2, ItemID: "b", ChangeType: models.ChangeReplace, Version: "2"}).Return(nil)
			states.EXPECT().Update(gomock.Any(), models.ItemState{RowID: 3, ItemID: "c", ChangeType: models.ChangeAdd, Version: "2"}).Return(nil)
			states.EXPECT().Update(gomock.Any(), models.ItemState{RowID: 5, ItemID: "e", ChangeType: models.ChangeReplace, Version: "1"}).Return(nil)
			states.EXPECT().Insert(gomock.Any(), "g", models.ChangeAdd, "1").Return(models.ItemState{RowID: 8, ItemID: "g", ChangeType: models.ChangeAdd, Version: "1"}, nil)
			tt.vanished(states)

			got, err := NewChangeDetector(items, states).ComputeChanges(testContext(), tt.mode)
			require.NoError(t, err)

			got.Duration = 0
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestChangeDetector_EmptyTableIsInvalid(t *testing.T) {
	ctrl := gomock.NewController(t)
	items := mock.NewMockItemStore(ctrl)
	states := mock.NewMockItemStateRepository(ctrl)

	states.EXPECT().LoadAll(gomock.Any()).Return(nil, nil)
	items.EXPECT().Versions(gomock.Any()).Return(versionSeq(live("a", "1"), live("b", "1")))
	states.EXPECT().Insert(gomock.Any(), gomock.Any(), models.ChangeAdd, "1").Return(models.ItemState{}, nil).Times(2)

	got, err := NewChangeDetector(items, states).ComputeChanges(testContext(), models.DetectFull)
	require.NoError(t, err)
	assert.False(t, got.StateValid)
	assert.Equal(t, 2, got.Added)
	assert.Equal(t, 2, got.Live)
}

func TestChangeDetector_UnreadableItemKeepsRow(t *testing.T) {
	ctrl := gomock.NewController(t)
	items := mock.NewMockItemStore(ctrl)
	states := mock.NewMockItemStateRepository(ctrl)

	states.EXPECT().LoadAll(gomock.Any()).Return([]models.ItemState{
		{RowID: 1, ItemID: "a", Version: "1"},
	}, nil)
	items.EXPECT().Versions(gomock.Any()).Return(versionSeq(
		versionEntry{version: models.ItemVersion{ID: "a"}, err: fmt.Errorf("%w: id=a", store.ErrItemUnreadable)},
	))

	got, err := NewChangeDetector(items, states).ComputeChanges(testContext(), models.DetectChangesOnly)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Live)
	assert.Zero(t, got.Pending())
}

func TestChangeDetector_FailedWriteIsSkipped(t *testing.T) {
	ctrl := gomock.NewController(t)
	items := mock.NewMockItemStore(ctrl)
	states := mock.NewMockItemStateRepository(ctrl)

	states.EXPECT().LoadAll(gomock.Any()).Return(nil, nil)
	items.EXPECT().Versions(gomock.Any()).Return(versionSeq(live("a", "1"), live("b", "1")))
	states.EXPECT().Insert(gomock.Any(), "a", models.ChangeAdd, "1").Return(models.ItemState{}, store.ErrExecutingStatement)
	states.EXPECT().Insert(gomock.Any(), "b", models.ChangeAdd, "1").Return(models.ItemState{RowID: 1}, nil)

	got, err := NewChangeDetector(items, states).ComputeChanges(testContext(), models.DetectChangesOnly)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Added)
	assert.Equal(t, 2, got.Live)
}

func TestChangeDetector_Errors(t *testing.T) {
	enumErr := errors.New("store offline")

	tests := []struct {
		name    string
		setup   func(items *mock.MockItemStore, states *mock.MockItemStateRepository)
		cancel  bool
		wantErr error
	}{
		{
			name: "load failure",
			setup: func(_ *mock.MockItemStore, states *mock.MockItemStateRepository) {
				states.EXPECT().LoadAll(gomock.Any()).Return(nil, store.ErrExecutingQuery)
			},
			wantErr: store.ErrExecutingQuery,
		},
		{
			name: "enumeration failure",
			setup: func(items *mock.MockItemStore, states *mock.MockItemStateRepository) {
				states.EXPECT().LoadAll(gomock.Any()).Return(nil, nil)
				items.EXPECT().Versions(gomock.Any()).Return(versionSeq(versionEntry{err: enumErr}))
			},
			wantErr: enumErr,
		},
		{
			name: "cancelled",
			setup: func(items *mock.MockItemStore, states *mock.MockItemStateRepository) {
				states.EXPECT().LoadAll(gomock.Any()).Return(detectorRows(), nil)
				items.EXPECT().Versions(gomock.Any()).Return(versionSeq(detectorLive()...))
			},
			cancel:  true,
			wantErr: ErrSyncAborted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			items := mock.NewMockItemStore(ctrl)
			states := mock.NewMockItemStateRepository(ctrl)
			tt.setup(items, states)

			ctx := testContext()
			if tt.cancel {
				var cancel context.CancelFunc
				ctx, cancel = context.WithCancel(ctx)
				cancel()
			}

			_, err := NewChangeDetector(items, states).ComputeChanges(ctx, models.DetectChangesOnly)
			assert.ErrorIs(t, err, tt.wantErr)
			if tt.cancel {
				assert.ErrorIs(t, err, context.Canceled)
			}
		})
	}
}

// TestChangeDetector_Idempotent runs detection repeatedly against a real
// database: pending changes are reported again until acknowledged and no
// duplicate rows appear.
func TestChangeDetector_Idempotent(t *testing.T) {
	ctx := testContext()
	storages := newSQLiteStorages(t)
	createContacts(t, storages.Items, "Ann", "Bob", "Cid")

	detector := NewChangeDetector(storages.Items, storages.ItemStates)

	first, err := detector.ComputeChanges(ctx, models.DetectChangesOnly)
	require.NoError(t, err)
	assert.Equal(t, 3, first.Added)
	assert.False(t, first.StateValid)

	second, err := detector.ComputeChanges(ctx, models.DetectChangesOnly)
	require.NoError(t, err)
	assert.Equal(t, 3, second.Added)
	assert.True(t, second.StateValid)

	rows, err := storages.ItemStates.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	for _, row := range rows {
		row.ChangeType = models.ChangeNone
		require.NoError(t, storages.ItemStates.Update(ctx, row))
	}

	third, err := detector.ComputeChanges(ctx, models.DetectChangesOnly)
	require.NoError(t, err)
	assert.Zero(t, third.Pending())
	assert.Equal(t, 3, third.Live)

	again, err := storages.ItemStates.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, rows[0].RowID, again[0].RowID)
	assert.Len(t, again, 3)
}
