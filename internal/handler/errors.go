package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	ErrMsgInvalidRequest = "Invalid request body"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"
	ErrMsgInvalidQueryParam = "Invalid %s query parameter"

	// Inventory operation error messages
	ErrMsgAddItemFailed      = "Failed to add item"
	ErrMsgRemoveItemFailed   = "Failed to remove item"
	ErrMsgSwapSlotsFailed    = "Failed to swap slots"
	ErrMsgSelectSlotRejected = "Slot is outside the quick access bar"

	// Shop operation error messages
	ErrMsgOpenShopFailed = "Failed to open shop"
	ErrMsgBuyItemFailed  = "Failed to buy item"
	ErrMsgSellItemFailed = "Failed to sell item"
	ErrMsgShopNotFound   = "No shop with that name"

	// World error messages
	ErrMsgDropNotFound = "Drop not found"
)

// Success messages for API responses
const (
	MsgItemAddedSuccess  = "Item added successfully"
	MsgSlotsSwapped      = "Slots swapped"
	MsgShopOpenedSuccess = "Shop opened"
	MsgShopClosedSuccess = "Shop closed"
)
