package store

import (
	"context"
	"errors"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-pim-sync/internal/logger"
	"github.com/MKhiriev/go-pim-sync/models"
)

var itemStateRowColumns = []string{"row_id", "generation", "item_id", "change_type", "version"}

func newTestItemStateRepo(t *testing.T) (ItemStateRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := newTestDB(t)
	return NewItemStateRepository(newDBFromSQL(db), logger.Nop()), mock
}

func TestItemStateRepository_Insert(t *testing.T) {
	t.Run("reuses the lowest free slot under the next generation", func(t *testing.T) {
		repo, mock := newTestItemStateRepo(t)

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta("SELECT row_id, generation FROM item_states WHERE item_id IS NULL ORDER BY row_id LIMIT 1")).
			WillReturnRows(sqlmock.NewRows([]string{"row_id", "generation"}).AddRow(int64(2), int64(3)))
		mock.ExpectExec(regexp.QuoteMeta("UPDATE item_states SET generation = ?")).
			WithArgs(int64(4), "c1", int64(models.ChangeAdd), "1", int64(2)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		state, err := repo.Insert(testContext(), "c1", models.ChangeAdd, "1")

		require.NoError(t, err)
		assert.Equal(t, models.ItemState{RowID: 2, Generation: 4, ItemID: "c1", ChangeType: models.ChangeAdd, Version: "1"}, state)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("appends when no slot is free", func(t *testing.T) {
		repo, mock := newTestItemStateRepo(t)

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta("SELECT row_id, generation FROM item_states")).
			WillReturnRows(sqlmock.NewRows([]string{"row_id", "generation"}))
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO item_states")).
			WithArgs("c1", int64(models.ChangeNone), "4").
			WillReturnResult(sqlmock.NewResult(9, 1))
		mock.ExpectCommit()

		state, err := repo.Insert(testContext(), "c1", models.ChangeNone, "4")

		require.NoError(t, err)
		assert.Equal(t, int64(9), state.RowID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("statement error rolls back", func(t *testing.T) {
		repo, mock := newTestItemStateRepo(t)

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta("SELECT row_id, generation FROM item_states")).
			WillReturnRows(sqlmock.NewRows([]string{"row_id", "generation"}))
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO item_states")).
			WillReturnError(errors.New("UNIQUE constraint failed: item_states.item_id"))
		mock.ExpectRollback()

		_, err := repo.Insert(testContext(), "c1", models.ChangeAdd, "1")

		assert.ErrorIs(t, err, ErrExecutingStatement)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestItemStateRepository_Update(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		wantErr  error
	}{
		{name: "updated", affected: 1},
		{name: "free slot", affected: 0, wantErr: ErrStateNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newTestItemStateRepo(t)
			mock.ExpectExec(regexp.QuoteMeta("UPDATE item_states SET change_type = ?, version = ? WHERE row_id = ? AND item_id IS NOT NULL")).
				WithArgs(int64(models.ChangeReplace), "2", int64(5)).
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			err := repo.Update(testContext(), models.ItemState{RowID: 5, ItemID: "c1", ChangeType: models.ChangeReplace, Version: "2"})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestItemStateRepository_Remove(t *testing.T) {
	repo, mock := newTestItemStateRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE item_states SET item_id = NULL")).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Remove(testContext(), 3))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestItemStateRepository_Page(t *testing.T) {
	repo, mock := newTestItemStateRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM item_states WHERE row_id > ? AND (item_id IS NOT NULL AND change_type <> ?) ORDER BY row_id LIMIT 2")).
		WithArgs(int64(4), 0).
		WillReturnRows(sqlmock.NewRows(itemStateRowColumns).
			AddRow(int64(5), int64(0), "c5", int64(models.ChangeAdd), "1").
			AddRow(int64(8), int64(2), "c8", int64(models.ChangeDelete), "3"))

	states, err := repo.Page(testContext(), 4, 2, true)

	require.NoError(t, err)
	assert.Equal(t, []models.ItemState{
		{RowID: 5, ItemID: "c5", ChangeType: models.ChangeAdd, Version: "1"},
		{RowID: 8, Generation: 2, ItemID: "c8", ChangeType: models.ChangeDelete, Version: "3"},
	}, states)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestItemStateRepository_Count(t *testing.T) {
	repo, mock := newTestItemStateRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM item_states")).
		WithArgs(int64(models.ChangeDelete)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	count, err := repo.Count(testContext(), false)

	require.NoError(t, err)
	assert.Equal(t, 4, count)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestItemStateRepository_Lookups(t *testing.T) {
	repo, mock := newTestItemStateRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE row_id = ? AND item_id IS NOT NULL")).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(itemStateRowColumns).AddRow(int64(7), int64(1), "c7", int64(0), "2"))
	mock.ExpectQuery(regexp.QuoteMeta("WHERE item_id = ?")).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(itemStateRowColumns))

	state, err := repo.GetByRowID(testContext(), 7)
	require.NoError(t, err)
	assert.Equal(t, "c7", state.ItemID)
	assert.Equal(t, int64(1), state.Generation)

	_, err = repo.GetByItemID(testContext(), "missing")
	assert.ErrorIs(t, err, ErrStateNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestItemStateRepository_SuffixAndRebuild(t *testing.T) {
	repo, mock := newTestItemStateRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT suffix FROM item_state_meta")).
		WillReturnRows(sqlmock.NewRows([]string{"suffix"}))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM item_states")).WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO item_state_meta")).
		WithArgs("-99").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	_, err := repo.Suffix(testContext())
	assert.ErrorIs(t, err, ErrStateNotFound)

	require.NoError(t, repo.Rebuild(testContext(), "-99"))
	require.NoError(t, mock.ExpectationsWereMet())
}

// TestItemStateRepository_SlotReuse runs against a real SQLite file.
func TestItemStateRepository_SlotReuse(t *testing.T) {
	ctx := context.Background()
	repo := newSQLiteStorages(t, nil).ItemStates

	require.NoError(t, repo.Rebuild(ctx, "-42"))
	suffix, err := repo.Suffix(ctx)
	require.NoError(t, err)
	assert.Equal(t, "-42", suffix)

	var rows []models.ItemState
	for _, id := range []string{"a", "b", "c"} {
		st, err := repo.Insert(ctx, id, models.ChangeAdd, "1")
		require.NoError(t, err)
		rows = append(rows, st)
	}
	assert.Equal(t, []int64{1, 2, 3}, []int64{rows[0].RowID, rows[1].RowID, rows[2].RowID})

	require.NoError(t, repo.Remove(ctx, 2))
	require.NoError(t, repo.Remove(ctx, 1))

	_, err = repo.GetByRowID(ctx, 2)
	assert.ErrorIs(t, err, ErrStateNotFound)

	reused, err := repo.Insert(ctx, "d", models.ChangeNone, "1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), reused.RowID)
	assert.Equal(t, int64(1), reused.Generation)

	// the removed item may come back in another slot
	again, err := repo.Insert(ctx, "b", models.ChangeAdd, "2")
	require.NoError(t, err)
	assert.Equal(t, int64(2), again.RowID)
	assert.Equal(t, int64(1), again.Generation)

	appended, err := repo.Insert(ctx, "e", models.ChangeAdd, "1")
	require.NoError(t, err)
	assert.Equal(t, int64(4), appended.RowID)
	assert.Equal(t, int64(0), appended.Generation)

	stored, err := repo.GetByRowID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stored.Generation)

	all, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	changed, err := repo.Count(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, 3, changed)

	require.NoError(t, repo.Rebuild(ctx, "-99"))
	fresh, err := repo.Insert(ctx, "z", models.ChangeAdd, "1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), fresh.RowID)
	assert.Equal(t, int64(0), fresh.Generation)
}

// TestItemStateRepository_SlotGenerations runs against a real SQLite file.
func TestItemStateRepository_SlotGenerations(t *testing.T) {
	ctx := context.Background()
	repo := newSQLiteStorages(t, nil).ItemStates
	require.NoError(t, repo.Rebuild(ctx, "-42"))

	type key struct{ rowID, generation int64 }
	seen := map[key]string{}

	for _, id := range []string{"a", "b", "c", "d"} {
		st, err := repo.Insert(ctx, id, models.ChangeAdd, "1")
		require.NoError(t, err)

		k := key{st.RowID, st.Generation}
		require.NotContains(t, seen, k, "slot %v issued to %s and %s", k, seen[k], id)
		seen[k] = id

		require.NoError(t, repo.Remove(ctx, st.RowID))
	}

	assert.Len(t, seen, 4)
	for k := range seen {
		assert.Equal(t, int64(1), k.rowID)
	}
}
