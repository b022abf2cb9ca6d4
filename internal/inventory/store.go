package inventory

import (
	"context"
	"sync"

	"github.com/sunhollow/farmstead/internal/domain"
	"github.com/sunhollow/farmstead/internal/event"
	"github.com/sunhollow/farmstead/internal/logger"
)

// Equipper is the equip-target collaborator: something with a hold point
// that can attach and detach the active item. Calls arrive synchronously
// from inside the mutating store operation, never deferred.
type Equipper interface {
	Equip(ctx context.Context, it *domain.Item)
	Unequip(ctx context.Context)
}

// NopEquipper satisfies Equipper without a hold point, for sessions with
// no embodied player.
type NopEquipper struct{}

func (NopEquipper) Equip(context.Context, *domain.Item) {}
func (NopEquipper) Unequip(context.Context)             {}

// Options configures the store geometry. Zero values fall back to the
// authored defaults.
type Options struct {
	QuickAccessSize int // selectable hotbar slots, indices [0, QuickAccessSize)
	GeneralSize     int // storage slots behind the hotbar
	StackCapacity   int // per-slot cap for stackable categories
}

func (o *Options) applyDefaults() {
	if o.QuickAccessSize <= 0 {
		o.QuickAccessSize = domain.DefaultQuickAccessSize
	}
	if o.GeneralSize < 0 {
		o.GeneralSize = domain.DefaultGeneralSize
	}
	if o.StackCapacity <= 0 {
		o.StackCapacity = domain.DefaultStackCapacity
	}
}

// Store is the fixed-size slotted inventory: the single source of truth
// for player holdings within a session. It owns its slot array outright;
// all reads and writes go through its methods.
//
// The selection cursor only ever targets the quick-access region, and the
// equipped item is always the selected slot's occupant when that occupant
// is equippable - the store re-evaluates the binding inside every
// mutating call so selection and held item can never be observed out of
// step.
type Store struct {
	mu sync.Mutex

	slots           []Slot
	quickAccessSize int
	stackCapacity   int

	selectedIndex int
	equipped      *domain.Item

	equipper Equipper
	bus      event.Bus
}

// NewStore creates a store with every slot empty and slot 0 selected.
func NewStore(bus event.Bus, equipper Equipper, opts Options) *Store {
	opts.applyDefaults()
	if equipper == nil {
		equipper = NopEquipper{}
	}

	return &Store{
		slots:           make([]Slot, opts.QuickAccessSize+opts.GeneralSize),
		quickAccessSize: opts.QuickAccessSize,
		stackCapacity:   opts.StackCapacity,
		equipper:        equipper,
		bus:             bus,
	}
}

// Len returns the total number of slots across both regions.
func (s *Store) Len() int { return len(s.slots) }

// QuickAccessSize returns the number of selectable hotbar slots.
func (s *Store) QuickAccessSize() int { return s.quickAccessSize }

// AddItem places one unit of it into the store: first slot that can
// stack it (scanning low to high across both regions), otherwise first
// empty slot. Returns the index the unit landed in, or -1 with ok=false
// when the store is full. Failure has no side effects.
func (s *Store) AddItem(ctx context.Context, it *domain.Item) (int, bool) {
	if it == nil {
		return -1, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	log := logger.FromContext(ctx)

	// Stack onto an existing pile first. Tools never stack.
	if it.Stackable() {
		for i := range s.slots {
			if s.slots[i].CanAcceptStackOf(it) {
				s.slots[i].AddCount(1)
				s.publish(ctx, event.NewSlotChangedEvent(i))
				log.Debug("Item stacked", "item", it.InternalName, "slot", i, "count", s.slots[i].Count())
				return i, true
			}
		}
	}

	for i := range s.slots {
		if s.slots[i].IsEmpty() {
			s.slots[i].Place(it, 1, s.capacityFor(it))
			s.publish(ctx, event.NewSlotChangedEvent(i))
			log.Debug("Item placed", "item", it.InternalName, "slot", i)

			if i == s.selectedIndex && it.Equippable() {
				s.equip(ctx, it)
			}
			return i, true
		}
	}

	log.Debug("Inventory full", "item", it.InternalName)
	return -1, false
}

// RemoveItem removes up to amount units from the slot at index and
// returns the representative item identity plus the count actually
// removed. Out-of-range index, empty slot, or amount < 1 is a no-op
// returning (nil, 0). Removing the equipped item unequips it first. A
// slot_changed notification fires even when the slot becomes empty.
func (s *Store) RemoveItem(ctx context.Context, index, amount int) (*domain.Item, int) {
	if amount < 1 {
		return nil, 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.slots) || s.slots[index].IsEmpty() {
		return nil, 0
	}

	it := s.slots[index].Item()
	if s.equipped != nil && index == s.selectedIndex && s.equipped.InternalName == it.InternalName {
		s.unequip(ctx)
	}

	removed := s.slots[index].RemoveCount(amount)
	s.publish(ctx, event.NewSlotChangedEvent(index))
	logger.FromContext(ctx).Debug("Item removed", "item", it.InternalName, "slot", index, "removed", removed)
	return it, removed
}

// GetSelectedItem returns the occupant of the selected slot, nil if empty.
func (s *Store) GetSelectedItem() *domain.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.slots[s.selectedIndex].Item()
}

// SelectedIndex returns the selection cursor position.
func (s *Store) SelectedIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedIndex
}

// Equipped returns the currently equipped item, nil when nothing is bound.
func (s *Store) Equipped() *domain.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.equipped
}

// SelectSlot moves the selection cursor. Indices outside the quick-access
// region are ignored; re-selecting the current index is a complete no-op,
// so selection_changed fires only on an actual move. The equip binding is
// re-evaluated synchronously before the notification.
func (s *Store) SelectSlot(ctx context.Context, index int) {
	if index < 0 || index >= s.quickAccessSize {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if index == s.selectedIndex {
		return
	}

	s.unequip(ctx)
	s.selectedIndex = index
	if it := s.slots[index].Item(); it != nil && it.Equippable() {
		s.equip(ctx, it)
	}

	s.publish(ctx, event.NewSelectionChangedEvent(index))
	logger.FromContext(ctx).Debug("Slot selected", "slot", index)
}

// SelectNext moves the cursor one hotbar slot to the right, wrapping.
func (s *Store) SelectNext(ctx context.Context) {
	s.SelectSlot(ctx, (s.SelectedIndex()+1)%s.quickAccessSize)
}

// SelectPrevious moves the cursor one hotbar slot to the left, wrapping.
func (s *Store) SelectPrevious(ctx context.Context) {
	s.SelectSlot(ctx, (s.SelectedIndex()-1+s.quickAccessSize)%s.quickAccessSize)
}

// IsFull reports whether every slot in both regions is occupied.
func (s *Store) IsFull() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.slots {
		if s.slots[i].IsEmpty() {
			return false
		}
	}
	return true
}

// SwapSlots exchanges the full contents of two slots (identity, count,
// capacity). Used by cross-slot drag interactions. Returns false for
// out-of-range indices. If either slot is the selected one, the equip
// binding is re-evaluated afterward.
func (s *Store) SwapSlots(ctx context.Context, a, b int) bool {
	if a < 0 || a >= len(s.slots) || b < 0 || b >= len(s.slots) {
		return false
	}
	if a == b {
		return true
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.slots[a], s.slots[b] = s.slots[b], s.slots[a]
	s.publish(ctx, event.NewSlotChangedEvent(a))
	s.publish(ctx, event.NewSlotChangedEvent(b))

	if a == s.selectedIndex || b == s.selectedIndex {
		s.reevaluateEquip(ctx)
	}
	return true
}

// GetSlot returns a read view of the slot at index.
func (s *Store) GetSlot(index int) (View, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.slots) {
		return View{}, false
	}
	return s.slots[index].view(), true
}

// Snapshot returns a read view of every slot, in index order.
func (s *Store) Snapshot() []View {
	s.mu.Lock()
	defer s.mu.Unlock()

	views := make([]View, len(s.slots))
	for i := range s.slots {
		views[i] = s.slots[i].view()
	}
	return views
}

// capacityFor derives the stack cap fixed at placement from the item's
// category.
func (s *Store) capacityFor(it *domain.Item) int {
	if !it.Stackable() {
		return 1
	}
	return s.stackCapacity
}

// reevaluateEquip rebinds the hold point to the selected slot's occupant.
// Callers hold s.mu.
func (s *Store) reevaluateEquip(ctx context.Context) {
	s.unequip(ctx)
	if it := s.slots[s.selectedIndex].Item(); it != nil && it.Equippable() {
		s.equip(ctx, it)
	}
}

func (s *Store) equip(ctx context.Context, it *domain.Item) {
	s.equipped = it
	s.equipper.Equip(ctx, it)
}

func (s *Store) unequip(ctx context.Context) {
	if s.equipped == nil {
		return
	}
	s.equipped = nil
	s.equipper.Unequip(ctx)
}

func (s *Store) publish(ctx context.Context, e event.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, e); err != nil {
		logger.FromContext(ctx).Warn("Event handler failed", "event_type", e.Type, "error", err)
	}
}
