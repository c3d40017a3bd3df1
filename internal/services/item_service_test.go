package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sanjeev1695/billing-software/internal/apperr"
)

// The item tests run without Redis: a nil client disables the cache layer.

func TestItemService_CreateAndList(t *testing.T) {
	db := setupTestDB(t, "testdb_items_crud")
	svc := NewItemService(db, testConfig(), nil)
	ctx := context.Background()

	created, err := svc.CreateItem(ctx, ItemCreate{
		Name:           "Plywood Sheet",
		CostPrice:      100,
		CustomerPrice:  150,
		CarpenterPrice: 130,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	_, err = svc.CreateItem(ctx, ItemCreate{Name: "Hinge", CostPrice: 10, CustomerPrice: 15, CarpenterPrice: 12})
	require.NoError(t, err)

	items, err := svc.ListItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	// Sorted by name
	assert.Equal(t, "Hinge", items[0].Name)
	assert.Equal(t, "Plywood Sheet", items[1].Name)
}

func TestItemService_CreateItem_RequiresName(t *testing.T) {
	db := setupTestDB(t, "testdb_items_noname")
	svc := NewItemService(db, testConfig(), nil)

	_, err := svc.CreateItem(context.Background(), ItemCreate{CostPrice: 10})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestItemService_SearchItems_CaseInsensitive(t *testing.T) {
	db := setupTestDB(t, "testdb_items_search")
	svc := NewItemService(db, testConfig(), nil)
	ctx := context.Background()

	_, err := svc.CreateItem(ctx, ItemCreate{Name: "Plywood Sheet"})
	require.NoError(t, err)
	_, err = svc.CreateItem(ctx, ItemCreate{Name: "Teak Plank"})
	require.NoError(t, err)

	items, err := svc.SearchItems(ctx, "PLY")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Plywood Sheet", items[0].Name)
}

func TestItemService_UpdateItem_Partial(t *testing.T) {
	db := setupTestDB(t, "testdb_items_update")
	svc := NewItemService(db, testConfig(), nil)
	ctx := context.Background()

	created, err := svc.CreateItem(ctx, ItemCreate{
		Name:           "Plywood Sheet",
		CostPrice:      100,
		CustomerPrice:  150,
		CarpenterPrice: 130,
	})
	require.NoError(t, err)

	newCost := 110.0
	updated, err := svc.UpdateItem(ctx, created.ID, ItemUpdate{CostPrice: &newCost})
	require.NoError(t, err)
	assert.Equal(t, 110.0, updated.CostPrice)
	// Untouched fields survive a partial update
	assert.Equal(t, "Plywood Sheet", updated.Name)
	assert.Equal(t, 150.0, updated.CustomerPrice)

	empty := ""
	_, err = svc.UpdateItem(ctx, created.ID, ItemUpdate{Name: &empty})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	_, err = svc.UpdateItem(ctx, "missing", ItemUpdate{CostPrice: &newCost})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestItemService_DeleteItem(t *testing.T) {
	db := setupTestDB(t, "testdb_items_delete")
	svc := NewItemService(db, testConfig(), nil)
	ctx := context.Background()

	created, err := svc.CreateItem(ctx, ItemCreate{Name: "Hinge"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteItem(ctx, created.ID))
	assert.ErrorIs(t, svc.DeleteItem(ctx, created.ID), apperr.ErrNotFound)

	items, err := svc.ListItems(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}
