package inventory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunhollow/farmstead/internal/domain"
	"github.com/sunhollow/farmstead/internal/event"
)

// recordingEquipper captures equip/unequip calls in order.
type recordingEquipper struct {
	calls []string
	held  *domain.Item
}

func (r *recordingEquipper) Equip(_ context.Context, it *domain.Item) {
	r.calls = append(r.calls, "equip:"+it.InternalName)
	r.held = it
}

func (r *recordingEquipper) Unequip(context.Context) {
	r.calls = append(r.calls, "unequip")
	r.held = nil
}

// eventRecorder subscribes to store events and collects them in dispatch order.
type eventRecorder struct {
	events []event.Event
}

func newTestStore(t *testing.T, opts Options) (*Store, *recordingEquipper, *eventRecorder) {
	t.Helper()

	bus := event.NewMemoryBus()
	rec := &eventRecorder{}
	collect := func(ctx context.Context, e event.Event) error {
		rec.events = append(rec.events, e)
		return nil
	}
	bus.Subscribe(event.SlotChanged, collect)
	bus.Subscribe(event.SelectionChanged, collect)

	eq := &recordingEquipper{}
	return NewStore(bus, eq, opts), eq, rec
}

func (r *eventRecorder) ofType(tp event.Type) []event.Event {
	var out []event.Event
	for _, e := range r.events {
		if e.Type == tp {
			out = append(out, e)
		}
	}
	return out
}

func TestStore_Geometry(t *testing.T) {
	s, _, _ := newTestStore(t, Options{})
	assert.Equal(t, domain.DefaultQuickAccessSize+domain.DefaultGeneralSize, s.Len())
	assert.Equal(t, domain.DefaultQuickAccessSize, s.QuickAccessSize())
	assert.Equal(t, 0, s.SelectedIndex())
	assert.Nil(t, s.Equipped())
}

func TestStore_StackingDeterminism(t *testing.T) {
	// A, A, B with A stackable: both A's in slot 0, B in slot 1.
	s, _, rec := newTestStore(t, Options{QuickAccessSize: 2, GeneralSize: 2})
	ctx := context.Background()

	i1, ok := s.AddItem(ctx, carrot)
	require.True(t, ok)
	i2, ok := s.AddItem(ctx, carrot)
	require.True(t, ok)
	i3, ok := s.AddItem(ctx, turnip)
	require.True(t, ok)

	assert.Equal(t, 0, i1)
	assert.Equal(t, 0, i2)
	assert.Equal(t, 1, i3)

	slot0, _ := s.GetSlot(0)
	assert.Equal(t, 2, slot0.Count)
	assert.Equal(t, carrot, slot0.Item)

	slot1, _ := s.GetSlot(1)
	assert.Equal(t, 1, slot1.Count)

	changes := rec.ofType(event.SlotChanged)
	require.Len(t, changes, 3)
}

func TestStore_ToolsNeverStack(t *testing.T) {
	s, _, _ := newTestStore(t, Options{QuickAccessSize: 3, GeneralSize: 0})
	ctx := context.Background()

	i1, _ := s.AddItem(ctx, hoe)
	i2, _ := s.AddItem(ctx, hoe)

	assert.Equal(t, 0, i1)
	assert.Equal(t, 1, i2, "identical tools occupy separate slots")

	slot0, _ := s.GetSlot(0)
	assert.Equal(t, 1, slot0.Count)
	assert.Equal(t, 1, slot0.Capacity)
}

func TestStore_StackOverflowsToNextSlot(t *testing.T) {
	s, _, _ := newTestStore(t, Options{QuickAccessSize: 2, GeneralSize: 0, StackCapacity: 2})
	ctx := context.Background()

	s.AddItem(ctx, carrot)
	s.AddItem(ctx, carrot)
	idx, ok := s.AddItem(ctx, carrot)

	require.True(t, ok)
	assert.Equal(t, 1, idx, "full stack rolls over to the next empty slot")
}

func TestStore_AddRemoveRoundTrip(t *testing.T) {
	s, _, _ := newTestStore(t, Options{QuickAccessSize: 1, GeneralSize: 0})
	ctx := context.Background()

	idx, ok := s.AddItem(ctx, carrot)
	require.True(t, ok)

	it, removed := s.RemoveItem(ctx, idx, 1)
	assert.Equal(t, carrot, it)
	assert.Equal(t, 1, removed)

	slot, _ := s.GetSlot(idx)
	assert.Nil(t, slot.Item)
	assert.Zero(t, slot.Count)
}

func TestStore_AddNil(t *testing.T) {
	s, _, rec := newTestStore(t, Options{})
	_, ok := s.AddItem(context.Background(), nil)
	assert.False(t, ok)
	assert.Empty(t, rec.events)
}

func TestStore_AddWhenFull(t *testing.T) {
	s, _, rec := newTestStore(t, Options{QuickAccessSize: 1, GeneralSize: 1})
	ctx := context.Background()

	s.AddItem(ctx, hoe)
	s.AddItem(ctx, sickle)
	require.True(t, s.IsFull())
	rec.events = nil

	idx, ok := s.AddItem(ctx, turnip)
	assert.False(t, ok)
	assert.Equal(t, -1, idx)
	assert.Empty(t, rec.events, "failed add must not notify")

	slot0, _ := s.GetSlot(0)
	slot1, _ := s.GetSlot(1)
	assert.Equal(t, hoe, slot0.Item)
	assert.Equal(t, sickle, slot1.Item)
}

func TestStore_EquipOnAddToSelectedSlot(t *testing.T) {
	s, eq, _ := newTestStore(t, Options{QuickAccessSize: 2, GeneralSize: 0})
	ctx := context.Background()

	// Slot 0 selected and empty: placing a tool equips it immediately.
	_, ok := s.AddItem(ctx, hoe)
	require.True(t, ok)
	assert.Equal(t, hoe, s.Equipped())
	assert.Equal(t, []string{"equip:hoe"}, eq.calls)

	// A second tool lands in slot 1, which is not selected: no equip.
	s.AddItem(ctx, sickle)
	assert.Equal(t, hoe, s.Equipped())
	assert.Equal(t, []string{"equip:hoe"}, eq.calls)
}

func TestStore_NoEquipForNonTool(t *testing.T) {
	s, eq, _ := newTestStore(t, Options{})
	s.AddItem(context.Background(), carrot)
	assert.Nil(t, s.Equipped())
	assert.Empty(t, eq.calls)
}

func TestStore_UnequipOnRemove(t *testing.T) {
	s, eq, rec := newTestStore(t, Options{QuickAccessSize: 1, GeneralSize: 0})
	ctx := context.Background()

	s.AddItem(ctx, hoe)
	require.Equal(t, hoe, s.Equipped())
	rec.events = nil

	it, removed := s.RemoveItem(ctx, 0, 1)
	assert.Equal(t, hoe, it)
	assert.Equal(t, 1, removed)
	assert.Nil(t, s.Equipped())
	assert.Equal(t, []string{"equip:hoe", "unequip"}, eq.calls)

	// slot_changed still fires when the slot empties.
	require.Len(t, rec.ofType(event.SlotChanged), 1)
}

func TestStore_RemoveEdgeCases(t *testing.T) {
	s, _, _ := newTestStore(t, Options{QuickAccessSize: 2, GeneralSize: 0})
	ctx := context.Background()

	it, n := s.RemoveItem(ctx, 5, 1)
	assert.Nil(t, it)
	assert.Zero(t, n, "out of range is a no-op")

	it, n = s.RemoveItem(ctx, 0, 1)
	assert.Nil(t, it)
	assert.Zero(t, n, "empty slot is a no-op")

	s.AddItem(ctx, carrot)
	it, n = s.RemoveItem(ctx, 0, 0)
	assert.Nil(t, it)
	assert.Zero(t, n, "non-positive amount is a no-op")
}

func TestStore_RemoveClampsToHeld(t *testing.T) {
	s, _, _ := newTestStore(t, Options{})
	ctx := context.Background()

	s.AddItem(ctx, carrot)
	s.AddItem(ctx, carrot)

	it, removed := s.RemoveItem(ctx, 0, 10)
	assert.Equal(t, carrot, it)
	assert.Equal(t, 2, removed)
}

func TestStore_SelectSlot(t *testing.T) {
	s, eq, rec := newTestStore(t, Options{QuickAccessSize: 3, GeneralSize: 0})
	ctx := context.Background()

	s.AddItem(ctx, hoe)    // slot 0, equipped
	s.AddItem(ctx, sickle) // slot 1
	rec.events = nil
	eq.calls = nil

	s.SelectSlot(ctx, 1)
	assert.Equal(t, 1, s.SelectedIndex())
	assert.Equal(t, sickle, s.Equipped())
	assert.Equal(t, []string{"unequip", "equip:sickle"}, eq.calls)
	require.Len(t, rec.ofType(event.SelectionChanged), 1)

	// Selecting an empty slot unequips and equips nothing.
	s.SelectSlot(ctx, 2)
	assert.Nil(t, s.Equipped())
	assert.Nil(t, s.GetSelectedItem())
	assert.Equal(t, []string{"unequip", "equip:sickle", "unequip"}, eq.calls)
}

func TestStore_GetSelectedItem(t *testing.T) {
	s, _, _ := newTestStore(t, Options{QuickAccessSize: 2, GeneralSize: 0})
	ctx := context.Background()

	assert.Nil(t, s.GetSelectedItem())
	s.AddItem(ctx, carrot)
	assert.Equal(t, carrot, s.GetSelectedItem())

	s.SelectSlot(ctx, 1)
	assert.Nil(t, s.GetSelectedItem())
}

func TestStore_SelectSlotIdempotent(t *testing.T) {
	s, eq, rec := newTestStore(t, Options{QuickAccessSize: 2, GeneralSize: 0})
	ctx := context.Background()

	s.SelectSlot(ctx, 1)
	s.SelectSlot(ctx, 1)

	require.Len(t, rec.ofType(event.SelectionChanged), 1, "re-selecting the same slot is a no-op")
	assert.Empty(t, eq.calls)
}

func TestStore_SelectSlotOutOfQuickAccess(t *testing.T) {
	s, _, rec := newTestStore(t, Options{QuickAccessSize: 2, GeneralSize: 3})
	ctx := context.Background()

	s.SelectSlot(ctx, 2) // general storage: not selectable
	s.SelectSlot(ctx, -1)
	s.SelectSlot(ctx, 99)

	assert.Equal(t, 0, s.SelectedIndex())
	assert.Empty(t, rec.ofType(event.SelectionChanged))
}

func TestStore_SelectNextPreviousWrap(t *testing.T) {
	s, _, _ := newTestStore(t, Options{QuickAccessSize: 3, GeneralSize: 5})
	ctx := context.Background()

	s.SelectNext(ctx)
	assert.Equal(t, 1, s.SelectedIndex())
	s.SelectNext(ctx)
	assert.Equal(t, 2, s.SelectedIndex())
	s.SelectNext(ctx)
	assert.Equal(t, 0, s.SelectedIndex(), "wraps within the quick-access region")

	s.SelectPrevious(ctx)
	assert.Equal(t, 2, s.SelectedIndex())
}

func TestStore_SwapSlots(t *testing.T) {
	s, _, rec := newTestStore(t, Options{QuickAccessSize: 2, GeneralSize: 1})
	ctx := context.Background()

	s.AddItem(ctx, carrot) // slot 0
	s.AddItem(ctx, carrot) // stacks in slot 0
	s.AddItem(ctx, turnip) // slot 1
	rec.events = nil

	require.True(t, s.SwapSlots(ctx, 0, 1))

	slot0, _ := s.GetSlot(0)
	slot1, _ := s.GetSlot(1)
	assert.Equal(t, turnip, slot0.Item)
	assert.Equal(t, carrot, slot1.Item)
	assert.Equal(t, 2, slot1.Count, "count travels with the identity")

	require.Len(t, rec.ofType(event.SlotChanged), 2)
}

func TestStore_SwapReevaluatesEquip(t *testing.T) {
	s, eq, _ := newTestStore(t, Options{QuickAccessSize: 2, GeneralSize: 0})
	ctx := context.Background()

	s.AddItem(ctx, hoe) // slot 0, selected, equipped
	s.AddItem(ctx, carrot)
	eq.calls = nil

	// Drag the tool out of the selected slot: the crop takes its place.
	require.True(t, s.SwapSlots(ctx, 0, 1))
	assert.Nil(t, s.Equipped())
	assert.Equal(t, []string{"unequip"}, eq.calls)

	// Drag it back: re-equipped.
	require.True(t, s.SwapSlots(ctx, 0, 1))
	assert.Equal(t, hoe, s.Equipped())
}

func TestStore_SwapOutOfRange(t *testing.T) {
	s, _, _ := newTestStore(t, Options{QuickAccessSize: 2, GeneralSize: 0})
	assert.False(t, s.SwapSlots(context.Background(), 0, 7))
	assert.False(t, s.SwapSlots(context.Background(), -1, 0))
}

func TestStore_GetSlotOutOfRange(t *testing.T) {
	s, _, _ := newTestStore(t, Options{QuickAccessSize: 2, GeneralSize: 0})
	_, ok := s.GetSlot(5)
	assert.False(t, ok)
	_, ok = s.GetSlot(-1)
	assert.False(t, ok)
}

func TestStore_Snapshot(t *testing.T) {
	s, _, _ := newTestStore(t, Options{QuickAccessSize: 2, GeneralSize: 1})
	ctx := context.Background()

	s.AddItem(ctx, carrot)
	views := s.Snapshot()
	require.Len(t, views, 3)
	assert.Equal(t, carrot, views[0].Item)
	assert.Nil(t, views[1].Item)
}

func TestStore_InvariantAfterMixedOps(t *testing.T) {
	s, _, _ := newTestStore(t, Options{QuickAccessSize: 3, GeneralSize: 2, StackCapacity: 3})
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		s.AddItem(ctx, carrot)
	}
	s.AddItem(ctx, hoe)
	s.RemoveItem(ctx, 0, 2)
	s.SwapSlots(ctx, 1, 4)
	s.RemoveItem(ctx, 2, 5)

	equippedSeen := 0
	for i, v := range s.Snapshot() {
		assert.GreaterOrEqual(t, v.Count, 0, "slot %d", i)
		if v.Item == nil {
			assert.Zero(t, v.Count, "slot %d", i)
		} else {
			assert.LessOrEqual(t, v.Count, v.Capacity, "slot %d", i)
		}
		if eq := s.Equipped(); eq != nil && v.Item == eq {
			equippedSeen++
			assert.Equal(t, s.SelectedIndex(), i, "equipped item must occupy the selected slot")
		}
	}
	assert.LessOrEqual(t, equippedSeen, 1)
}
