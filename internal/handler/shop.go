package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sunhollow/farmstead/internal/logger"
	"github.com/sunhollow/farmstead/internal/shop"
	"github.com/sunhollow/farmstead/internal/world"
)

type OpenShopRequest struct {
	ShopName string  `json:"shop_name" validate:"required,max=100"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Z        float64 `json:"z"`
}

// HandleOpenShop starts a shop session against a named catalog.
func HandleOpenShop(engine *shop.Engine, catalogs map[string]*shop.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req OpenShopRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode open shop request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidInputError)
			return
		}

		catalog, ok := catalogs[req.ShopName]
		if !ok {
			log.Warn("Unknown shop", "shop", req.ShopName)
			respondError(w, http.StatusBadRequest, ErrMsgShopNotFound)
			return
		}

		pos := world.Position{X: req.X, Y: req.Y, Z: req.Z}
		if err := engine.OpenShop(r.Context(), catalog, pos); err != nil {
			log.Warn("Failed to open shop", "error", err, "shop", req.ShopName)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgShopOpenedSuccess})
	}
}

// HandleCloseShop ends the active shop session.
func HandleCloseShop(engine *shop.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		engine.CloseShop(r.Context())
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgShopClosedSuccess})
	}
}

// PriceEntry is the wire shape of one catalog line.
type PriceEntry struct {
	Item      string `json:"item"`
	Display   string `json:"display_name"`
	BuyPrice  int    `json:"buy_price"`
	SellPrice int    `json:"sell_price"`
}

type ShopStatusResponse struct {
	Open     bool         `json:"open"`
	ShopName string       `json:"shop_name,omitempty"`
	Prices   []PriceEntry `json:"prices,omitempty"`
}

// HandleShopStatus returns the active session and its price list.
func HandleShopStatus(engine *shop.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		catalog := engine.ActiveCatalog()
		if catalog == nil {
			respondJSON(w, http.StatusOK, ShopStatusResponse{Open: false})
			return
		}

		entries := catalog.Entries()
		prices := make([]PriceEntry, len(entries))
		for i, e := range entries {
			prices[i] = PriceEntry{
				Item:      e.Item.InternalName,
				Display:   e.Item.DisplayName,
				BuyPrice:  e.BuyPrice,
				SellPrice: catalog.UnitSellPrice(e.Item),
			}
		}

		respondJSON(w, http.StatusOK, ShopStatusResponse{
			Open:     true,
			ShopName: catalog.Name(),
			Prices:   prices,
		})
	}
}

type BuyItemRequest struct {
	ItemName string `json:"item_name" validate:"required,max=100"`
	Quantity int    `json:"quantity" validate:"min=1,max=10000"`
}

// HandleBuyItem purchases items from the open shop.
func HandleBuyItem(engine *shop.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req BuyItemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode buy item request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidInputError)
			return
		}

		if err := engine.BuyItem(r.Context(), req.ItemName, req.Quantity); err != nil {
			log.Warn("Buy failed", "error", err, "item", req.ItemName, "quantity", req.Quantity)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, SuccessResponse{
			Message: fmt.Sprintf("Bought %d x %s", req.Quantity, req.ItemName),
		})
	}
}

type SellItemRequest struct {
	SlotIndex int `json:"slot_index" validate:"min=0"`
	Quantity  int `json:"quantity" validate:"min=1,max=10000"`
}

// HandleSellItem sells items from an inventory slot to the open shop.
func HandleSellItem(engine *shop.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req SellItemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode sell item request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidInputError)
			return
		}

		if err := engine.SellItem(r.Context(), req.SlotIndex, req.Quantity); err != nil {
			log.Warn("Sell failed", "error", err, "slot", req.SlotIndex, "quantity", req.Quantity)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, SuccessResponse{
			Message: fmt.Sprintf("Sold %d from slot %d", req.Quantity, req.SlotIndex),
		})
	}
}

type MaxAffordableResponse struct {
	Item          string `json:"item"`
	MaxAffordable int    `json:"max_affordable"`
}

// HandleMaxAffordable answers "how many can I buy" for the UI.
func HandleMaxAffordable(engine *shop.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemName := r.URL.Query().Get("item")
		if itemName == "" {
			respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgMissingQueryParam, "item"))
			return
		}

		respondJSON(w, http.StatusOK, MaxAffordableResponse{
			Item:          itemName,
			MaxAffordable: engine.MaxAffordable(itemName),
		})
	}
}

type MaxSellableResponse struct {
	SlotIndex   int `json:"slot_index"`
	MaxSellable int `json:"max_sellable"`
}

// HandleMaxSellable answers "how many will the shop take from this slot".
func HandleMaxSellable(engine *shop.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slotIndex, err := queryInt(r, "slot")
		if err != nil {
			respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgInvalidQueryParam, "slot"))
			return
		}

		respondJSON(w, http.StatusOK, MaxSellableResponse{
			SlotIndex:   slotIndex,
			MaxSellable: engine.MaxSellable(slotIndex),
		})
	}
}
