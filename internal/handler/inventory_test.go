package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunhollow/farmstead/internal/event"
	"github.com/sunhollow/farmstead/internal/inventory"
	"github.com/sunhollow/farmstead/internal/item"
)

func testStore(t *testing.T) *inventory.Store {
	t.Helper()
	return inventory.NewStore(event.NewMemoryBus(), nil, inventory.Options{QuickAccessSize: 3, GeneralSize: 3})
}

func handlerTestRegistry(t *testing.T) *item.Registry {
	t.Helper()

	registry, err := item.NewRegistry(&item.Config{
		Version: "1.0",
		Items: []item.Def{
			{InternalName: "carrot", Category: "crop", BaseSellPrice: 10},
			{InternalName: "hoe", Category: "tool", BaseSellPrice: 25},
		},
	})
	require.NoError(t, err)
	return registry
}

func postJSON(t *testing.T, h http.HandlerFunc, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(data))
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func getRequest(t *testing.T, h http.HandlerFunc, target string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestHandleGetInventory(t *testing.T) {
	store := testStore(t)
	registry := handlerTestRegistry(t)

	carrot, err := registry.Get("carrot")
	require.NoError(t, err)
	_, ok := store.AddItem(context.Background(), carrot)
	require.True(t, ok)

	rec := getRequest(t, HandleGetInventory(store), "/api/v1/inventory")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp GetInventoryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Len(t, resp.Slots, 6)
	assert.Equal(t, 3, resp.QuickAccessSize)
	assert.Equal(t, 0, resp.SelectedIndex)
	assert.Equal(t, "carrot", resp.Slots[0].Item)
	assert.Equal(t, 1, resp.Slots[0].Count)
	assert.False(t, resp.Full)
}

func TestHandleAddItem(t *testing.T) {
	store := testStore(t)
	registry := handlerTestRegistry(t)

	rec := postJSON(t, HandleAddItem(store, registry), AddItemRequest{ItemName: "carrot", Quantity: 5})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp AddItemResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 5, resp.Added)
	assert.False(t, resp.Full)
}

func TestHandleAddItem_UnknownItem(t *testing.T) {
	store := testStore(t)
	registry := handlerTestRegistry(t)

	rec := postJSON(t, HandleAddItem(store, registry), AddItemRequest{ItemName: "dragon_egg", Quantity: 1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleAddItem_InvalidBody(t *testing.T) {
	store := testStore(t)
	registry := handlerTestRegistry(t)

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte("not json")))
	rec := httptest.NewRecorder()
	HandleAddItem(store, registry)(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleRemoveItem(t *testing.T) {
	store := testStore(t)
	registry := handlerTestRegistry(t)

	carrot, err := registry.Get("carrot")
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, ok := store.AddItem(context.Background(), carrot)
		require.True(t, ok)
	}

	rec := postJSON(t, HandleRemoveItem(store), RemoveItemRequest{SlotIndex: 0, Quantity: 2})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp RemoveItemResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "carrot", resp.Item)
	assert.Equal(t, 2, resp.Removed)
}

func TestHandleRemoveItem_EmptySlot(t *testing.T) {
	store := testStore(t)

	rec := postJSON(t, HandleRemoveItem(store), RemoveItemRequest{SlotIndex: 0, Quantity: 1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleSelectSlot(t *testing.T) {
	store := testStore(t)

	rec := postJSON(t, HandleSelectSlot(store), SelectSlotRequest{Index: 2})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp SelectionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.SelectedIndex)
}

func TestHandleSelectSlot_OutOfQuickAccess(t *testing.T) {
	store := testStore(t)

	rec := postJSON(t, HandleSelectSlot(store), SelectSlotRequest{Index: 5})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, store.SelectedIndex())
}

func TestHandleSelectNextPrevious(t *testing.T) {
	store := testStore(t)

	rec := postJSON(t, HandleSelectNext(store), struct{}{})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, store.SelectedIndex())

	rec = postJSON(t, HandleSelectPrevious(store), struct{}{})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, store.SelectedIndex())

	// Wraps to the last hotbar slot.
	rec = postJSON(t, HandleSelectPrevious(store), struct{}{})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, store.SelectedIndex())
}

func TestHandleSwapSlots(t *testing.T) {
	store := testStore(t)
	registry := handlerTestRegistry(t)

	carrot, err := registry.Get("carrot")
	require.NoError(t, err)
	_, ok := store.AddItem(context.Background(), carrot)
	require.True(t, ok)

	rec := postJSON(t, HandleSwapSlots(store), SwapSlotsRequest{From: 0, To: 4})
	require.Equal(t, http.StatusOK, rec.Code)

	view, ok := store.GetSlot(4)
	require.True(t, ok)
	require.NotNil(t, view.Item)
	assert.Equal(t, "carrot", view.Item.InternalName)
}

func TestHandleSwapSlots_OutOfRange(t *testing.T) {
	store := testStore(t)

	rec := postJSON(t, HandleSwapSlots(store), SwapSlotsRequest{From: 0, To: 99})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
