package domain

// Typed payloads for events published on the bus. Versioned the same way
// as the event schema itself: add a new struct rather than mutating one.

// SlotChangedPayload is published after any mutation of a slot's contents.
type SlotChangedPayload struct {
	Index int `json:"index"`
}

// SelectionChangedPayload is published when the selection cursor actually
// moves; a re-select of the current index publishes nothing.
type SelectionChangedPayload struct {
	Index int `json:"index"`
}

// GoldChangedPayload carries the post-mutation balance.
type GoldChangedPayload struct {
	Balance int `json:"balance"`
}

// ShopOpenedPayload identifies the catalog backing the new session.
type ShopOpenedPayload struct {
	ShopName string `json:"shop_name"`
}

// ShopClosedPayload is published once per session close.
type ShopClosedPayload struct {
	ShopName string `json:"shop_name"`
}

// ItemBoughtPayload is published once per successful purchase, after all
// units have been placed or dropped.
type ItemBoughtPayload struct {
	ItemName   string `json:"item_name"`
	Quantity   int    `json:"quantity"`
	TotalCost  int    `json:"total_cost"`
	Overflowed int    `json:"overflowed"` // units dropped near the shop
	Timestamp  int64  `json:"timestamp"`
}

// ItemSoldPayload is published once per successful sale.
type ItemSoldPayload struct {
	SlotIndex   int    `json:"slot_index"`
	ItemName    string `json:"item_name"`
	Quantity    int    `json:"quantity"`
	TotalPayout int    `json:"total_payout"`
	Timestamp   int64  `json:"timestamp"`
}

// TransactionFailedPayload carries the reason tag for a rejected buy/sell.
type TransactionFailedPayload struct {
	Reason FailureReason `json:"reason"`
}
