package handler

import (
	"encoding/json"
	"net/http"

	"github.com/sunhollow/farmstead/internal/inventory"
	"github.com/sunhollow/farmstead/internal/logger"
	"github.com/sunhollow/farmstead/internal/world"
)

// DropView is the wire shape of one ground drop.
type DropView struct {
	ID   string  `json:"id"`
	Item string  `json:"item"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Z    float64 `json:"z"`
}

type ListDropsResponse struct {
	Drops []DropView `json:"drops"`
}

// HandleListDrops returns every item currently lying on the ground.
func HandleListDrops(zone *world.DropZone) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		all := zone.Drops()
		drops := make([]DropView, len(all))
		for i, d := range all {
			drops[i] = DropView{
				ID:   d.ID,
				Item: d.Item.InternalName,
				X:    d.Position.X,
				Y:    d.Position.Y,
				Z:    d.Position.Z,
			}
		}

		respondJSON(w, http.StatusOK, ListDropsResponse{Drops: drops})
	}
}

type PickupDropRequest struct {
	DropID string `json:"drop_id" validate:"required,uuid"`
}

type PickupDropResponse struct {
	Item      string `json:"item"`
	SlotIndex int    `json:"slot_index"`
}

// HandlePickupDrop moves a ground drop into the inventory. If the
// inventory cannot take it, the drop stays where it is.
func HandlePickupDrop(zone *world.DropZone, store *inventory.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req PickupDropRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode pickup request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidInputError)
			return
		}

		drop, ok := zone.Take(req.DropID)
		if !ok {
			respondError(w, http.StatusNotFound, ErrMsgDropNotFound)
			return
		}

		if !drop.Item.CanBePickedUp {
			zone.SpawnNear(r.Context(), drop.Item, drop.Position)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidInputError)
			return
		}

		index, ok := store.AddItem(r.Context(), drop.Item)
		if !ok {
			// Put it back, the inventory is full.
			zone.SpawnNear(r.Context(), drop.Item, drop.Position)
			respondError(w, http.StatusBadRequest, ErrMsgInventoryFullError)
			return
		}

		log.Info("Drop picked up", "item", drop.Item.InternalName, "slot", index)
		respondJSON(w, http.StatusOK, PickupDropResponse{Item: drop.Item.InternalName, SlotIndex: index})
	}
}
