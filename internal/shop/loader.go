package shop

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/go-playground/validator/v10"

	"github.com/sunhollow/farmstead/internal/domain"
	"github.com/sunhollow/farmstead/internal/item"
)

// CatalogConfig represents the JSON configuration for one vendor
type CatalogConfig struct {
	ShopName       string     `json:"shop_name" validate:"required,max=100"`
	Entries        []EntryDef `json:"entries" validate:"required,min=1,dive"`
	SellCategories []string   `json:"accepted_sell_categories"`
	SellMultiplier float64    `json:"sell_multiplier" validate:"gt=0,lte=2"`
}

// EntryDef represents a single purchasable line in the JSON
type EntryDef struct {
	Item     string `json:"item" validate:"required"`
	BuyPrice int    `json:"buy_price" validate:"min=0"`
}

var validate = validator.New()

// Load reads one catalog file and resolves its items against the registry.
func Load(path string, registry *item.Registry) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog config: %w", err)
	}

	var config CatalogConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse catalog config %s: %w", path, err)
	}

	if err := validate.Struct(&config); err != nil {
		return nil, fmt.Errorf("invalid catalog config %s: %w", path, err)
	}

	entries := make([]Entry, 0, len(config.Entries))
	for _, def := range config.Entries {
		it, err := registry.Get(def.Item)
		if err != nil {
			return nil, fmt.Errorf("catalog %q: %w", config.ShopName, err)
		}
		entries = append(entries, Entry{Item: it, BuyPrice: def.BuyPrice})
	}

	sellable := make([]domain.Category, 0, len(config.SellCategories))
	for _, s := range config.SellCategories {
		sellable = append(sellable, domain.Category(s))
	}

	return NewCatalog(config.ShopName, entries, sellable, config.SellMultiplier)
}

// LoadDir loads every *.json catalog in dir, keyed by shop name,
// in stable filename order.
func LoadDir(dir string, registry *item.Registry) (map[string]*Catalog, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan catalog dir: %w", err)
	}
	sort.Strings(paths)

	catalogs := make(map[string]*Catalog, len(paths))
	for _, path := range paths {
		catalog, err := Load(path, registry)
		if err != nil {
			return nil, err
		}
		if _, dup := catalogs[catalog.Name()]; dup {
			return nil, fmt.Errorf("%w: duplicate shop name %q", domain.ErrInvalidInput, catalog.Name())
		}
		catalogs[catalog.Name()] = catalog
	}

	return catalogs, nil
}
