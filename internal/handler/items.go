package handler

import (
	"fmt"
	"net/http"

	"github.com/sunhollow/farmstead/internal/item"
	"github.com/sunhollow/farmstead/internal/logger"
)

// ItemView is the wire shape of an item definition.
type ItemView struct {
	InternalName  string `json:"internal_name"`
	DisplayName   string `json:"display_name"`
	Category      string `json:"category"`
	Icon          string `json:"icon,omitempty"`
	BaseSellPrice int    `json:"base_sell_price"`
	Stackable     bool   `json:"stackable"`
	Equippable    bool   `json:"equippable"`
}

type ListItemsResponse struct {
	Items []ItemView `json:"items"`
}

// HandleListItems returns every authored item definition.
func HandleListItems(registry *item.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		all := registry.All()
		items := make([]ItemView, len(all))
		for i, it := range all {
			items[i] = ItemView{
				InternalName:  it.InternalName,
				DisplayName:   it.DisplayName,
				Category:      string(it.Category),
				Icon:          it.Icon,
				BaseSellPrice: it.BaseSellPrice,
				Stackable:     it.Stackable(),
				Equippable:    it.Equippable(),
			}
		}

		respondJSON(w, http.StatusOK, ListItemsResponse{Items: items})
	}
}

// HandleResolveItem looks an item up by internal or display name,
// case-insensitively.
func HandleResolveItem(registry *item.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		name := r.URL.Query().Get("name")
		if name == "" {
			respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgMissingQueryParam, "name"))
			return
		}

		it, err := registry.Resolve(name)
		if err != nil {
			log.Debug("Item resolution failed", "name", name)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, ItemView{
			InternalName:  it.InternalName,
			DisplayName:   it.DisplayName,
			Category:      string(it.Category),
			Icon:          it.Icon,
			BaseSellPrice: it.BaseSellPrice,
			Stackable:     it.Stackable(),
			Equippable:    it.Equippable(),
		})
	}
}
