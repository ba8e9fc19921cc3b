package dataset_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-skillcheck/internal/errors"
	"github.com/KirkDiggler/rpg-skillcheck/internal/kvstore"
	kvstoremock "github.com/KirkDiggler/rpg-skillcheck/internal/kvstore/mock"
	"github.com/KirkDiggler/rpg-skillcheck/internal/repositories/dataset"
)

func TestInspectAndRepair(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory()

	require.NoError(t, store.Set(ctx, dataset.KeyPlayers, []byte(`[{"id":"p1","name":"Aria","skills":{}},null]`)))
	require.NoError(t, store.Set(ctx, dataset.KeySessionHistory, []byte(`[{"id":"s1","name":"x","items":[],"createdAt":"yesterday"}]`)))

	reports := dataset.Inspect(ctx, store)
	require.Len(t, reports, 3)

	assert.Equal(t, dataset.RecordOK, reports[0].State)
	assert.Equal(t, 2, reports[0].Entries)
	assert.Equal(t, 1, reports[0].NullEntries)

	assert.Equal(t, dataset.RecordMissing, reports[1].State)

	assert.Equal(t, dataset.RecordCorrupt, reports[2].State)
	assert.Error(t, reports[2].Err)

	deleted, err := dataset.Repair(ctx, store, reports)
	require.NoError(t, err)
	assert.Equal(t, []string{dataset.KeySessionHistory}, deleted)

	_, err = store.Get(ctx, dataset.KeySessionHistory)
	assert.True(t, errors.IsNotFound(err))
	_, err = store.Get(ctx, dataset.KeyPlayers)
	assert.NoError(t, err, "healthy records are kept")
}

func TestInspect_NotAnArray(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory()
	require.NoError(t, store.Set(ctx, dataset.KeyEvents, []byte(`{"id":"e1"}`)))

	reports := dataset.Inspect(ctx, store)
	assert.Equal(t, dataset.RecordCorrupt, reports[1].State)
}

func TestInspect_UnreadableStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	ctx := context.Background()

	mockStore := kvstoremock.NewMockStore(ctrl)
	mockStore.EXPECT().
		Get(ctx, gomock.Any()).
		Return(nil, errors.Storage(fmt.Errorf("connection refused"), "read failed")).
		Times(len(dataset.Keys))

	reports := dataset.Inspect(ctx, mockStore)
	for _, r := range reports {
		assert.Equal(t, dataset.RecordUnreadable, r.State)
		assert.True(t, errors.IsStorage(r.Err))
	}

	deleted, err := dataset.Repair(ctx, mockStore, reports)
	assert.NoError(t, err)
	assert.Empty(t, deleted, "unreadable records are never deleted")
}
