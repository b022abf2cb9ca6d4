package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sunhollow/farmstead/internal/domain"
)

// Type represents the type of an event
type Type string

// Event types published by the core. Presentation layers subscribe to
// these; dispatch order matches mutation order within a single call.
const (
	SlotChanged       Type = domain.EventTypeSlotChanged
	SelectionChanged  Type = domain.EventTypeSelectionChanged
	GoldChanged       Type = domain.EventTypeGoldChanged
	ShopOpened        Type = domain.EventTypeShopOpened
	ShopClosed        Type = domain.EventTypeShopClosed
	ItemBought        Type = domain.EventTypeItemBought
	ItemSold          Type = domain.EventTypeItemSold
	TransactionFailed Type = domain.EventTypeTransactionFailed
)

// Event represents a generic event in the system
type Event struct {
	Version string      `json:"version"` // Event schema version (e.g., "1.0")
	Type    Type        `json:"type"`
	Payload interface{} `json:"payload"`
}

// Type-safe event constructors

// NewSlotChangedEvent is published after any mutation of a slot's contents.
func NewSlotChangedEvent(index int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    SlotChanged,
		Payload: domain.SlotChangedPayload{Index: index},
	}
}

// NewSelectionChangedEvent is published when the selection cursor moves.
func NewSelectionChangedEvent(index int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    SelectionChanged,
		Payload: domain.SelectionChangedPayload{Index: index},
	}
}

// NewGoldChangedEvent carries the post-mutation balance.
func NewGoldChangedEvent(balance int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    GoldChanged,
		Payload: domain.GoldChangedPayload{Balance: balance},
	}
}

// NewShopOpenedEvent is published once when a session opens.
func NewShopOpenedEvent(shopName string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ShopOpened,
		Payload: domain.ShopOpenedPayload{ShopName: shopName},
	}
}

// NewShopClosedEvent is published once when a session closes.
func NewShopClosedEvent(shopName string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ShopClosed,
		Payload: domain.ShopClosedPayload{ShopName: shopName},
	}
}

// NewItemBoughtEvent is published once per successful purchase.
func NewItemBoughtEvent(itemName string, quantity, totalCost, overflowed int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ItemBought,
		Payload: domain.ItemBoughtPayload{
			ItemName:   itemName,
			Quantity:   quantity,
			TotalCost:  totalCost,
			Overflowed: overflowed,
			Timestamp:  time.Now().Unix(),
		},
	}
}

// NewItemSoldEvent is published once per successful sale.
func NewItemSoldEvent(slotIndex int, itemName string, quantity, totalPayout int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ItemSold,
		Payload: domain.ItemSoldPayload{
			SlotIndex:   slotIndex,
			ItemName:    itemName,
			Quantity:    quantity,
			TotalPayout: totalPayout,
			Timestamp:   time.Now().Unix(),
		},
	}
}

// NewTransactionFailedEvent carries the reason tag for a rejected buy/sell.
func NewTransactionFailedEvent(reason domain.FailureReason) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    TransactionFailed,
		Payload: domain.TransactionFailedPayload{Reason: reason},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers. Handlers run
// synchronously in subscription order; the core relies on every
// notification for a mutation completing before the mutating call returns.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%d handler(s) failed for event %s: %v", len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
