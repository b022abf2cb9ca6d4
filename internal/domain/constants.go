package domain

// Gameplay constants. These mirror the authored defaults; the runtime
// values come from config where a Config field exists.
const (
	// DefaultStackCapacity is the per-slot cap for stackable categories.
	DefaultStackCapacity = 99

	// DefaultQuickAccessSize is the number of hotbar slots. Only these
	// are selectable.
	DefaultQuickAccessSize = 10

	// DefaultGeneralSize is the number of general storage slots behind
	// the hotbar.
	DefaultGeneralSize = 40

	// DefaultStartingGold is the ledger balance at session start.
	DefaultStartingGold = 500

	// ShopDropScatterRadius bounds the random offset, in world units,
	// for items dropped near the shop when a purchase overflows the
	// inventory.
	ShopDropScatterRadius = 1.5

	// MaxTransactionQuantity caps a single buy or sell request.
	MaxTransactionQuantity = 10000
)

// Event type names published on the bus.
const (
	EventTypeSlotChanged       = "inventory.slot_changed"
	EventTypeSelectionChanged  = "inventory.selection_changed"
	EventTypeGoldChanged       = "currency.gold_changed"
	EventTypeShopOpened        = "shop.opened"
	EventTypeShopClosed        = "shop.closed"
	EventTypeItemBought        = "shop.item_bought"
	EventTypeItemSold          = "shop.item_sold"
	EventTypeTransactionFailed = "shop.transaction_failed"
)
