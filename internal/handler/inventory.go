package handler

import (
	"encoding/json"
	"net/http"

	"github.com/sunhollow/farmstead/internal/inventory"
	"github.com/sunhollow/farmstead/internal/item"
	"github.com/sunhollow/farmstead/internal/logger"
)

// SlotView is the wire shape of one inventory slot.
type SlotView struct {
	Index    int    `json:"index"`
	Item     string `json:"item,omitempty"`
	Display  string `json:"display_name,omitempty"`
	Count    int    `json:"count"`
	Capacity int    `json:"capacity,omitempty"`
}

type GetInventoryResponse struct {
	Slots           []SlotView `json:"slots"`
	QuickAccessSize int        `json:"quick_access_size"`
	SelectedIndex   int        `json:"selected_index"`
	Equipped        string     `json:"equipped,omitempty"`
	Full            bool       `json:"full"`
}

// HandleGetInventory returns a full snapshot of the inventory.
func HandleGetInventory(store *inventory.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		views := store.Snapshot()

		slots := make([]SlotView, len(views))
		for i, v := range views {
			slots[i] = SlotView{Index: i, Count: v.Count}
			if v.Item != nil {
				slots[i].Item = v.Item.InternalName
				slots[i].Display = v.Item.DisplayName
				slots[i].Capacity = v.Capacity
			}
		}

		resp := GetInventoryResponse{
			Slots:           slots,
			QuickAccessSize: store.QuickAccessSize(),
			SelectedIndex:   store.SelectedIndex(),
			Full:            store.IsFull(),
		}
		if eq := store.Equipped(); eq != nil {
			resp.Equipped = eq.InternalName
		}

		respondJSON(w, http.StatusOK, resp)
	}
}

type AddItemRequest struct {
	ItemName string `json:"item_name" validate:"required,max=100"`
	Quantity int    `json:"quantity" validate:"min=1,max=10000"`
}

type AddItemResponse struct {
	Added int  `json:"added"`
	Full  bool `json:"full"`
}

// HandleAddItem adds items directly to the inventory, e.g. when picking
// up a harvest. Adds stop at the first unit that does not fit.
func HandleAddItem(store *inventory.Store, registry *item.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req AddItemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode add item request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidInputError)
			return
		}

		it, err := registry.Resolve(req.ItemName)
		if err != nil {
			log.Warn("Unknown item", "item", req.ItemName)
			respondServiceError(w, err)
			return
		}

		added := 0
		for i := 0; i < req.Quantity; i++ {
			if _, ok := store.AddItem(r.Context(), it); !ok {
				break
			}
			added++
		}

		log.Info("Items added", "item", it.InternalName, "added", added, "requested", req.Quantity)
		respondJSON(w, http.StatusOK, AddItemResponse{Added: added, Full: store.IsFull()})
	}
}

type RemoveItemRequest struct {
	SlotIndex int `json:"slot_index" validate:"min=0"`
	Quantity  int `json:"quantity" validate:"min=1,max=10000"`
}

type RemoveItemResponse struct {
	Item    string `json:"item,omitempty"`
	Removed int    `json:"removed"`
}

// HandleRemoveItem removes items from a slot, e.g. when planting seeds.
func HandleRemoveItem(store *inventory.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req RemoveItemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode remove item request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidInputError)
			return
		}

		it, removed := store.RemoveItem(r.Context(), req.SlotIndex, req.Quantity)
		if removed == 0 {
			respondError(w, http.StatusBadRequest, ErrMsgSlotEmptyError)
			return
		}

		log.Info("Items removed", "item", it.InternalName, "slot", req.SlotIndex, "removed", removed)
		respondJSON(w, http.StatusOK, RemoveItemResponse{Item: it.InternalName, Removed: removed})
	}
}

type SelectSlotRequest struct {
	Index int `json:"index" validate:"min=0"`
}

type SelectionResponse struct {
	SelectedIndex int    `json:"selected_index"`
	Item          string `json:"item,omitempty"`
	Equipped      string `json:"equipped,omitempty"`
}

func selectionResponse(store *inventory.Store) SelectionResponse {
	resp := SelectionResponse{SelectedIndex: store.SelectedIndex()}
	if it := store.GetSelectedItem(); it != nil {
		resp.Item = it.InternalName
	}
	if eq := store.Equipped(); eq != nil {
		resp.Equipped = eq.InternalName
	}
	return resp
}

// HandleSelectSlot moves the hotbar selection cursor.
func HandleSelectSlot(store *inventory.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req SelectSlotRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode select slot request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}

		if req.Index < 0 || req.Index >= store.QuickAccessSize() {
			respondError(w, http.StatusBadRequest, ErrMsgSelectSlotRejected)
			return
		}

		store.SelectSlot(r.Context(), req.Index)
		respondJSON(w, http.StatusOK, selectionResponse(store))
	}
}

// HandleSelectNext moves the cursor one hotbar slot right, wrapping.
func HandleSelectNext(store *inventory.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store.SelectNext(r.Context())
		respondJSON(w, http.StatusOK, selectionResponse(store))
	}
}

// HandleSelectPrevious moves the cursor one hotbar slot left, wrapping.
func HandleSelectPrevious(store *inventory.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store.SelectPrevious(r.Context())
		respondJSON(w, http.StatusOK, selectionResponse(store))
	}
}

type SwapSlotsRequest struct {
	From int `json:"from" validate:"min=0"`
	To   int `json:"to" validate:"min=0"`
}

// HandleSwapSlots exchanges the contents of two slots (drag and drop).
func HandleSwapSlots(store *inventory.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req SwapSlotsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode swap slots request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}

		if !store.SwapSlots(r.Context(), req.From, req.To) {
			respondError(w, http.StatusBadRequest, ErrMsgSlotOutOfRangeError)
			return
		}

		log.Info("Slots swapped", "from", req.From, "to", req.To)
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgSlotsSwapped})
	}
}

// HandleGetSelected returns the current selection and equip state.
func HandleGetSelected(store *inventory.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, selectionResponse(store))
	}
}
