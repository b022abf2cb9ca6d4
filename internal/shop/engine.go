package shop

import (
	"context"
	"fmt"
	"sync"

	"github.com/sunhollow/farmstead/internal/currency"
	"github.com/sunhollow/farmstead/internal/domain"
	"github.com/sunhollow/farmstead/internal/event"
	"github.com/sunhollow/farmstead/internal/inventory"
	"github.com/sunhollow/farmstead/internal/logger"
	"github.com/sunhollow/farmstead/internal/world"
)

// Dropper is the world-spawn collaborator: it places a physical item
// instance near a position. Used when a purchase overflows the inventory.
type Dropper interface {
	SpawnNear(ctx context.Context, it *domain.Item, origin world.Position) world.Drop
}

// Engine orchestrates buy and sell transactions between the ledger, the
// inventory store, and the active catalog. A session runs
// Closed -> Open -> Closed; at most one shop is open at a time.
//
// Expected gameplay failures (not enough gold, vendor refuses the item)
// come back as domain errors and are also published as a
// transaction_failed event with a reason tag for the presentation layer.
type Engine struct {
	mu sync.Mutex

	store  *inventory.Store
	ledger *currency.Ledger
	drops  Dropper
	bus    event.Bus

	active  *Catalog
	shopPos world.Position
}

// NewEngine creates a closed engine over the given collaborators.
func NewEngine(store *inventory.Store, ledger *currency.Ledger, drops Dropper, bus event.Bus) *Engine {
	return &Engine{
		store:  store,
		ledger: ledger,
		drops:  drops,
		bus:    bus,
	}
}

// IsOpen reports whether a session is active.
func (e *Engine) IsOpen() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.active != nil
}

// ActiveCatalog returns the catalog backing the open session, nil when closed.
func (e *Engine) ActiveCatalog() *Catalog {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.active
}

// OpenShop starts a session against catalog, anchored at the shop's world
// position for overflow drops. A nil catalog or an already-open session
// is a no-op.
func (e *Engine) OpenShop(ctx context.Context, catalog *Catalog, at world.Position) error {
	if catalog == nil {
		return domain.ErrInvalidInput
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.active != nil {
		return domain.ErrShopAlreadyOpen
	}

	e.active = catalog
	e.shopPos = at
	e.publish(ctx, event.NewShopOpenedEvent(catalog.Name()))
	logger.FromContext(ctx).Info("Shop opened", "shop", catalog.Name())
	return nil
}

// CloseShop ends the session. Closing a closed engine is a no-op.
// Completed transactions are never rolled back.
func (e *Engine) CloseShop(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.active == nil {
		return
	}

	name := e.active.Name()
	e.active = nil
	e.shopPos = world.Position{}
	e.publish(ctx, event.NewShopClosedEvent(name))
	logger.FromContext(ctx).Info("Shop closed", "shop", name)
}

// BuyItem purchases quantity units of the catalog entry named by
// internalName. Gold is spent up front, all-or-nothing; units the
// inventory rejects are scattered near the shop rather than refunded.
// One item_bought event fires per successful purchase, after the loop.
func (e *Engine) BuyItem(ctx context.Context, internalName string, quantity int) error {
	log := logger.FromContext(ctx)
	log.Info("BuyItem called", "item", internalName, "quantity", quantity)

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.active == nil {
		return domain.ErrShopClosed
	}

	if err := validateQuantity(quantity); err != nil {
		return e.fail(ctx, err)
	}

	entry, ok := e.active.Entry(internalName)
	if !ok {
		return e.fail(ctx, fmt.Errorf("%w: %s", domain.ErrItemNotFound, internalName))
	}

	totalCost := entry.BuyPrice * quantity
	if totalCost > 0 && !e.ledger.SpendGold(ctx, totalCost) {
		return e.fail(ctx, fmt.Errorf("%w: need %d, have %d", domain.ErrInsufficientFunds, totalCost, e.ledger.Balance()))
	}

	overflowed := 0
	for i := 0; i < quantity; i++ {
		if _, ok := e.store.AddItem(ctx, entry.Item); !ok {
			e.drops.SpawnNear(ctx, entry.Item, e.shopPos)
			overflowed++
		}
	}

	e.publish(ctx, event.NewItemBoughtEvent(entry.Item.InternalName, quantity, totalCost, overflowed))
	log.Info("Item purchased", "item", internalName, "quantity", quantity, "cost", totalCost, "overflowed", overflowed)
	return nil
}

// SellItem sells amount units out of the slot at slotIndex to the vendor.
// The vendor is an infinite sink: sold units are gone. Payout per unit is
// the catalog's sell price for the item.
func (e *Engine) SellItem(ctx context.Context, slotIndex, amount int) error {
	log := logger.FromContext(ctx)
	log.Info("SellItem called", "slot", slotIndex, "amount", amount)

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.active == nil {
		return domain.ErrShopClosed
	}

	if err := validateQuantity(amount); err != nil {
		return e.fail(ctx, err)
	}

	slot, ok := e.store.GetSlot(slotIndex)
	if !ok || slot.Item == nil {
		return e.fail(ctx, fmt.Errorf("%w: slot %d", domain.ErrSlotEmpty, slotIndex))
	}
	if slot.Count < amount {
		return e.fail(ctx, fmt.Errorf("%w: have %d, want to sell %d", domain.ErrInsufficientQuantity, slot.Count, amount))
	}

	if !e.active.CanSell(slot.Item.Category) {
		return e.fail(ctx, fmt.Errorf("%w: vendor does not buy %s", domain.ErrNotSellable, slot.Item.Category))
	}
	unitPrice := e.active.UnitSellPrice(slot.Item)
	if unitPrice <= 0 {
		return e.fail(ctx, fmt.Errorf("%w: %s has no sale value", domain.ErrNotSellable, slot.Item.InternalName))
	}

	it, removed := e.store.RemoveItem(ctx, slotIndex, amount)
	totalPayout := unitPrice * removed
	e.ledger.AddGold(ctx, totalPayout)

	e.publish(ctx, event.NewItemSoldEvent(slotIndex, it.InternalName, removed, totalPayout))
	log.Info("Item sold", "item", it.InternalName, "quantity", removed, "payout", totalPayout)
	return nil
}

// MaxAffordable returns how many units of the named entry the current
// balance covers, capped at the per-transaction maximum. Free entries
// report the cap. Returns 0 when the shop is closed or the entry unknown.
func (e *Engine) MaxAffordable(internalName string) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.active == nil {
		return 0
	}
	entry, ok := e.active.Entry(internalName)
	if !ok {
		return 0
	}
	if entry.BuyPrice == 0 {
		return domain.MaxTransactionQuantity
	}
	return min(e.ledger.Balance()/entry.BuyPrice, domain.MaxTransactionQuantity)
}

// MaxSellable returns how many units out of the slot at slotIndex the
// vendor would accept: the full held count, or 0 when the shop is closed,
// the slot is empty, or the vendor refuses the item.
func (e *Engine) MaxSellable(slotIndex int) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.active == nil {
		return 0
	}
	slot, ok := e.store.GetSlot(slotIndex)
	if !ok || slot.Item == nil {
		return 0
	}
	if !e.active.CanSell(slot.Item.Category) || e.active.UnitSellPrice(slot.Item) <= 0 {
		return 0
	}
	return slot.Count
}

// validateQuantity bounds a requested transaction quantity.
func validateQuantity(quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: quantity %d", domain.ErrInvalidInput, quantity)
	}
	if quantity > domain.MaxTransactionQuantity {
		return fmt.Errorf("%w: quantity %d exceeds maximum allowed (%d)", domain.ErrInvalidInput, quantity, domain.MaxTransactionQuantity)
	}
	return nil
}

// fail publishes transaction_failed with the error's reason tag and
// returns the error unchanged.
func (e *Engine) fail(ctx context.Context, err error) error {
	if reason := domain.ReasonForError(err); reason != "" {
		e.publish(ctx, event.NewTransactionFailedEvent(reason))
	}
	logger.FromContext(ctx).Warn("Transaction failed", "error", err)
	return err
}

func (e *Engine) publish(ctx context.Context, ev event.Event) {
	if e.bus == nil {
		return
	}
	if err := e.bus.Publish(ctx, ev); err != nil {
		logger.FromContext(ctx).Warn("Event handler failed", "event_type", ev.Type, "error", err)
	}
}
