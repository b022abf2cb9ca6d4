package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunhollow/farmstead/internal/currency"
	"github.com/sunhollow/farmstead/internal/event"
	"github.com/sunhollow/farmstead/internal/inventory"
	"github.com/sunhollow/farmstead/internal/shop"
	"github.com/sunhollow/farmstead/internal/world"
)

type shopFixture struct {
	engine   *shop.Engine
	store    *inventory.Store
	ledger   *currency.Ledger
	catalogs map[string]*shop.Catalog
}

func newShopFixture(t *testing.T) *shopFixture {
	t.Helper()

	registry := handlerTestRegistry(t)
	carrot, err := registry.Get("carrot")
	require.NoError(t, err)

	catalog, err := shop.NewCatalog("General Store", []shop.Entry{
		{Item: carrot, BuyPrice: 50},
	}, nil, 1.5)
	require.NoError(t, err)

	bus := event.NewMemoryBus()
	store := inventory.NewStore(bus, nil, inventory.Options{QuickAccessSize: 3, GeneralSize: 3})
	ledger := currency.NewLedger(bus, 500)
	zone := world.NewDropZone(0)

	return &shopFixture{
		engine:   shop.NewEngine(store, ledger, zone, bus),
		store:    store,
		ledger:   ledger,
		catalogs: map[string]*shop.Catalog{"General Store": catalog},
	}
}

func TestHandleOpenShop(t *testing.T) {
	f := newShopFixture(t)

	rec := postJSON(t, HandleOpenShop(f.engine, f.catalogs), OpenShopRequest{ShopName: "General Store", X: 3, Z: 7})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, f.engine.IsOpen())

	// Opening a second session conflicts.
	rec = postJSON(t, HandleOpenShop(f.engine, f.catalogs), OpenShopRequest{ShopName: "General Store"})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestHandleOpenShop_UnknownShop(t *testing.T) {
	f := newShopFixture(t)

	rec := postJSON(t, HandleOpenShop(f.engine, f.catalogs), OpenShopRequest{ShopName: "Casino"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, f.engine.IsOpen())
}

func TestHandleCloseShop(t *testing.T) {
	f := newShopFixture(t)
	require.NoError(t, f.engine.OpenShop(context.Background(), f.catalogs["General Store"], world.Position{}))

	rec := postJSON(t, HandleCloseShop(f.engine), struct{}{})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, f.engine.IsOpen())
}

func TestHandleShopStatus(t *testing.T) {
	f := newShopFixture(t)

	rec := getRequest(t, HandleShopStatus(f.engine), "/api/v1/shop")
	require.Equal(t, http.StatusOK, rec.Code)

	var closed ShopStatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &closed))
	assert.False(t, closed.Open)
	assert.Empty(t, closed.Prices)

	require.NoError(t, f.engine.OpenShop(context.Background(), f.catalogs["General Store"], world.Position{}))

	rec = getRequest(t, HandleShopStatus(f.engine), "/api/v1/shop")
	require.Equal(t, http.StatusOK, rec.Code)

	var open ShopStatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &open))
	assert.True(t, open.Open)
	assert.Equal(t, "General Store", open.ShopName)
	require.Len(t, open.Prices, 1)
	assert.Equal(t, "carrot", open.Prices[0].Item)
	assert.Equal(t, 50, open.Prices[0].BuyPrice)
	assert.Equal(t, 15, open.Prices[0].SellPrice)
}

func TestHandleBuyItem(t *testing.T) {
	f := newShopFixture(t)
	require.NoError(t, f.engine.OpenShop(context.Background(), f.catalogs["General Store"], world.Position{}))

	rec := postJSON(t, HandleBuyItem(f.engine), BuyItemRequest{ItemName: "carrot", Quantity: 3})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 350, f.ledger.Balance())
}

func TestHandleBuyItem_InsufficientFunds(t *testing.T) {
	f := newShopFixture(t)
	require.NoError(t, f.engine.OpenShop(context.Background(), f.catalogs["General Store"], world.Position{}))

	rec := postJSON(t, HandleBuyItem(f.engine), BuyItemRequest{ItemName: "carrot", Quantity: 100})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 500, f.ledger.Balance())
}

func TestHandleBuyItem_ShopClosed(t *testing.T) {
	f := newShopFixture(t)

	rec := postJSON(t, HandleBuyItem(f.engine), BuyItemRequest{ItemName: "carrot", Quantity: 1})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestHandleSellItem(t *testing.T) {
	f := newShopFixture(t)
	ctx := context.Background()
	require.NoError(t, f.engine.OpenShop(ctx, f.catalogs["General Store"], world.Position{}))

	registry := handlerTestRegistry(t)
	carrot, err := registry.Get("carrot")
	require.NoError(t, err)
	for i := 0; i < 4; i++ {
		_, ok := f.store.AddItem(ctx, carrot)
		require.True(t, ok)
	}

	rec := postJSON(t, HandleSellItem(f.engine), SellItemRequest{SlotIndex: 0, Quantity: 4})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 560, f.ledger.Balance())
}

func TestHandleSellItem_EmptySlot(t *testing.T) {
	f := newShopFixture(t)
	require.NoError(t, f.engine.OpenShop(context.Background(), f.catalogs["General Store"], world.Position{}))

	rec := postJSON(t, HandleSellItem(f.engine), SellItemRequest{SlotIndex: 0, Quantity: 1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleMaxAffordable(t *testing.T) {
	f := newShopFixture(t)
	require.NoError(t, f.engine.OpenShop(context.Background(), f.catalogs["General Store"], world.Position{}))

	rec := getRequest(t, HandleMaxAffordable(f.engine), "/api/v1/shop/max-affordable?item=carrot")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp MaxAffordableResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 10, resp.MaxAffordable)

	rec = getRequest(t, HandleMaxAffordable(f.engine), "/api/v1/shop/max-affordable")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleMaxSellable(t *testing.T) {
	f := newShopFixture(t)
	ctx := context.Background()
	require.NoError(t, f.engine.OpenShop(ctx, f.catalogs["General Store"], world.Position{}))

	registry := handlerTestRegistry(t)
	carrot, err := registry.Get("carrot")
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, ok := f.store.AddItem(ctx, carrot)
		require.True(t, ok)
	}

	rec := getRequest(t, HandleMaxSellable(f.engine), "/api/v1/shop/max-sellable?slot=0")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp MaxSellableResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.MaxSellable)

	rec = getRequest(t, HandleMaxSellable(f.engine), "/api/v1/shop/max-sellable?slot=abc")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
