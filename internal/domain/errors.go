package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Inventory errors
	ErrMsgInventoryFull        = "inventory is full"
	ErrMsgSlotOutOfRange       = "slot index out of range"
	ErrMsgSlotEmpty            = "slot is empty"
	ErrMsgInsufficientQuantity = "insufficient quantity"

	// Economy errors
	ErrMsgInsufficientFunds = "insufficient funds"
	ErrMsgNotSellable       = "item is not sellable"
	ErrMsgShopClosed        = "shop is not open"
	ErrMsgShopAlreadyOpen   = "a shop is already open"

	// Item errors
	ErrMsgItemNotFound = "item not found"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Inventory errors
	ErrInventoryFull        = errors.New(ErrMsgInventoryFull)
	ErrSlotOutOfRange       = errors.New(ErrMsgSlotOutOfRange)
	ErrSlotEmpty            = errors.New(ErrMsgSlotEmpty)
	ErrInsufficientQuantity = errors.New(ErrMsgInsufficientQuantity)

	// Economy errors
	ErrInsufficientFunds = errors.New(ErrMsgInsufficientFunds)
	ErrNotSellable       = errors.New(ErrMsgNotSellable)
	ErrShopClosed        = errors.New(ErrMsgShopClosed)
	ErrShopAlreadyOpen   = errors.New(ErrMsgShopAlreadyOpen)

	// Item errors
	ErrItemNotFound = errors.New(ErrMsgItemNotFound)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)

// FailureReason is the machine-readable tag carried on a
// shop.transaction_failed event for presentation layers to render.
type FailureReason string

const (
	ReasonInvalidItem          FailureReason = "invalid-item"
	ReasonInsufficientFunds    FailureReason = "insufficient-funds"
	ReasonNotSellable          FailureReason = "not-sellable"
	ReasonInsufficientQuantity FailureReason = "insufficient-quantity"
)

// ReasonForError maps a domain error to its transaction failure tag.
// Returns "" for errors that do not surface as transaction failures.
func ReasonForError(err error) FailureReason {
	switch {
	case errors.Is(err, ErrItemNotFound), errors.Is(err, ErrInvalidInput):
		return ReasonInvalidItem
	case errors.Is(err, ErrInsufficientFunds):
		return ReasonInsufficientFunds
	case errors.Is(err, ErrNotSellable):
		return ReasonNotSellable
	case errors.Is(err, ErrInsufficientQuantity), errors.Is(err, ErrSlotEmpty):
		return ReasonInsufficientQuantity
	default:
		return ""
	}
}
