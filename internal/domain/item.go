package domain

// Category classifies an item and drives stacking and equip behavior.
// Tools never stack and are the only equippable category.
type Category string

const (
	CategoryMaterial   Category = "material"
	CategoryTool       Category = "tool"
	CategoryConsumable Category = "consumable"
	CategorySeed       Category = "seed"
	CategoryCrop       Category = "crop"
)

// Categories lists every valid category, in authoring order.
var Categories = []Category{
	CategoryMaterial,
	CategoryTool,
	CategoryConsumable,
	CategorySeed,
	CategoryCrop,
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Stackable reports whether items of this category may share a slot.
func (c Category) Stackable() bool {
	return c != CategoryTool
}

// Equippable reports whether items of this category bind to the hold point
// when their slot is selected.
func (c Category) Equippable() bool {
	return c == CategoryTool
}

// StackCapacity returns the per-slot cap for this category.
func (c Category) StackCapacity() int {
	if !c.Stackable() {
		return 1
	}
	return DefaultStackCapacity
}

// AttachOffset is the local-space offset applied when an item is attached
// to the equip target's hold point.
type AttachOffset struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Item is the identity record for one item type. Instances in slots and
// world drops reference a single Item; two slots holding the same type
// share the same *Item.
type Item struct {
	InternalName  string       `json:"internal_name"`
	DisplayName   string       `json:"display_name"`
	Category      Category     `json:"category"`
	Icon          string       `json:"icon,omitempty"`
	BaseSellPrice int          `json:"base_sell_price"`
	CanBePickedUp bool         `json:"can_be_picked_up"`
	AttachOffset  AttachOffset `json:"attach_offset"`
}

// Stackable reports whether this item may share a slot with an identical item.
func (it *Item) Stackable() bool {
	return it.Category.Stackable()
}

// Equippable reports whether this item binds to the hold point when selected.
func (it *Item) Equippable() bool {
	return it.Category.Equippable()
}
