package shop

import (
	"fmt"
	"math"

	"github.com/sunhollow/farmstead/internal/domain"
)

// Entry is one purchasable line in a catalog: an item prototype and its
// buy price.
type Entry struct {
	Item     *domain.Item `json:"item"`
	BuyPrice int          `json:"buy_price"`
}

// Catalog is the author-provided configuration for one vendor: what can
// be bought, which categories the vendor buys back, and at what rate.
// Immutable after construction; a session activates exactly one catalog.
type Catalog struct {
	name           string
	entries        []Entry
	byName         map[string]Entry
	sellable       map[domain.Category]bool
	sellMultiplier float64
}

// DefaultSellableCategories are the categories a vendor accepts when the
// authoring data does not say otherwise.
var DefaultSellableCategories = []domain.Category{
	domain.CategoryCrop,
	domain.CategoryMaterial,
	domain.CategorySeed,
}

// NewCatalog builds a validated catalog. The multiplier must be positive,
// buy prices non-negative, and no item may be listed twice.
func NewCatalog(name string, entries []Entry, sellable []domain.Category, sellMultiplier float64) (*Catalog, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: catalog name is empty", domain.ErrInvalidInput)
	}
	if sellMultiplier <= 0 {
		return nil, fmt.Errorf("%w: sell multiplier must be positive, got %v", domain.ErrInvalidInput, sellMultiplier)
	}
	if len(sellable) == 0 {
		sellable = DefaultSellableCategories
	}

	c := &Catalog{
		name:           name,
		entries:        make([]Entry, 0, len(entries)),
		byName:         make(map[string]Entry, len(entries)),
		sellable:       make(map[domain.Category]bool, len(sellable)),
		sellMultiplier: sellMultiplier,
	}

	for _, e := range entries {
		if e.Item == nil {
			return nil, fmt.Errorf("%w: catalog %q has an entry with no item", domain.ErrInvalidInput, name)
		}
		if e.BuyPrice < 0 {
			return nil, fmt.Errorf("%w: catalog %q entry %q has negative buy price", domain.ErrInvalidInput, name, e.Item.InternalName)
		}
		if _, dup := c.byName[e.Item.InternalName]; dup {
			return nil, fmt.Errorf("%w: catalog %q lists %q twice", domain.ErrInvalidInput, name, e.Item.InternalName)
		}
		c.entries = append(c.entries, e)
		c.byName[e.Item.InternalName] = e
	}

	for _, cat := range sellable {
		if !cat.Valid() {
			return nil, fmt.Errorf("%w: catalog %q accepts unknown category %q", domain.ErrInvalidInput, name, cat)
		}
		c.sellable[cat] = true
	}

	return c, nil
}

// Name returns the vendor name.
func (c *Catalog) Name() string { return c.name }

// Entries returns the purchasable lines in authoring order.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Entry returns the purchasable line for an item's internal name.
func (c *Catalog) Entry(internalName string) (Entry, bool) {
	e, ok := c.byName[internalName]
	return e, ok
}

// CanSell reports whether the vendor buys items of the given category.
func (c *Catalog) CanSell(cat domain.Category) bool {
	return c.sellable[cat]
}

// SellMultiplier returns the payout rate applied to intrinsic sell prices.
func (c *Catalog) SellMultiplier() float64 { return c.sellMultiplier }

// UnitSellPrice computes the payout for one unit of it: the item's
// intrinsic base sell price times the vendor's multiplier, rounded to the
// nearest integer. Items without a positive base price fetch nothing.
func (c *Catalog) UnitSellPrice(it *domain.Item) int {
	if it == nil || it.BaseSellPrice <= 0 {
		return 0
	}
	return int(math.Round(float64(it.BaseSellPrice) * c.sellMultiplier))
}
