package inventory

import (
	"fmt"

	"github.com/sunhollow/farmstead/internal/domain"
)

// Slot is a single storage cell: an item identity, a count, and the
// capacity fixed when the identity was first placed.
//
// Invariant: 0 <= count <= capacity, and item == nil exactly when count == 0.
type Slot struct {
	item     *domain.Item
	count    int
	capacity int
}

// Item returns the occupying identity, nil for an empty slot.
func (s *Slot) Item() *domain.Item { return s.item }

// Count returns the number of units in the slot.
func (s *Slot) Count() int { return s.count }

// Capacity returns the stack cap fixed at placement, 0 for an empty slot.
func (s *Slot) Capacity() int { return s.capacity }

// IsEmpty reports whether the slot holds nothing.
func (s *Slot) IsEmpty() bool { return s.count == 0 }

// IsFull reports whether the slot is at capacity.
func (s *Slot) IsFull() bool { return !s.IsEmpty() && s.count == s.capacity }

// CanAcceptStackOf reports whether one more unit of it can stack here.
// Identity equality is required: two different stackable items never merge.
func (s *Slot) CanAcceptStackOf(it *domain.Item) bool {
	if s.IsEmpty() || s.IsFull() {
		return false
	}
	if it == nil || !it.Stackable() {
		return false
	}
	return s.item.InternalName == it.InternalName
}

// Place sets the occupant of an empty slot. Calling Place on an occupied
// slot is a programming error, not a recoverable condition.
func (s *Slot) Place(it *domain.Item, amount, capacity int) {
	if !s.IsEmpty() {
		panic(fmt.Sprintf("inventory: Place on occupied slot (holding %q)", s.item.InternalName))
	}
	if it == nil || amount < 1 || amount > capacity {
		panic(fmt.Sprintf("inventory: invalid placement (item=%v amount=%d capacity=%d)", it, amount, capacity))
	}

	s.item = it
	s.count = amount
	s.capacity = capacity
}

// AddCount increments the count by up to amount, clamped at capacity.
// Returns the amount actually added.
func (s *Slot) AddCount(amount int) int {
	if amount < 0 {
		amount = 0
	}
	added := min(amount, s.capacity-s.count)
	s.count += added
	return added
}

// RemoveCount decrements the count by up to amount, clamped at the held
// count. Reaching zero clears the identity as well; the capacity is
// re-derived on the next placement. Returns the amount actually removed.
func (s *Slot) RemoveCount(amount int) int {
	if amount < 0 {
		amount = 0
	}
	removed := min(amount, s.count)
	s.count -= removed
	if s.count == 0 {
		s.clear()
	}
	return removed
}

func (s *Slot) clear() {
	s.item = nil
	s.count = 0
	s.capacity = 0
}

// View is a read-only copy of a slot's contents, safe to hand out.
type View struct {
	Item     *domain.Item `json:"item"`
	Count    int          `json:"count"`
	Capacity int          `json:"capacity"`
}

func (s *Slot) view() View {
	return View{Item: s.item, Count: s.count, Capacity: s.capacity}
}
