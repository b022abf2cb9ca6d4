package item

import (
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/text/cases"

	"github.com/sunhollow/farmstead/internal/domain"
)

// Lookup cache sizing. Resolution folds display names for
// case-insensitive matching, so resolved hits are worth caching.
const (
	resolveCacheSize = 256
	resolveCacheTTL  = 10 * time.Minute
)

// Registry is the item identity provider: a read-only view over the
// authored item definitions. It is built once at startup; every slot and
// catalog entry holds pointers into it.
type Registry struct {
	byInternalName map[string]*domain.Item
	ordered        []*domain.Item

	resolveCache *expirable.LRU[string, *domain.Item]
}

// NewRegistry builds a registry from a validated configuration.
func NewRegistry(config *Config) (*Registry, error) {
	if err := Validate(config); err != nil {
		return nil, err
	}

	r := &Registry{
		byInternalName: make(map[string]*domain.Item, len(config.Items)),
		ordered:        make([]*domain.Item, 0, len(config.Items)),
		resolveCache:   expirable.NewLRU[string, *domain.Item](resolveCacheSize, nil, resolveCacheTTL),
	}

	for i := range config.Items {
		it := config.Items[i].toDomain()
		r.byInternalName[it.InternalName] = it
		r.ordered = append(r.ordered, it)
	}

	return r, nil
}

// Get returns the item with the given internal name.
func (r *Registry) Get(internalName string) (*domain.Item, error) {
	if it, ok := r.byInternalName[internalName]; ok {
		return it, nil
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrItemNotFound, internalName)
}

// Resolve finds an item by internal or display name, case-insensitively.
// Resolved names are cached; the authored set is immutable so entries
// only ever expire, never go stale.
func (r *Registry) Resolve(name string) (*domain.Item, error) {
	folded := cases.Fold().String(name)

	if it, ok := r.resolveCache.Get(folded); ok {
		return it, nil
	}

	for _, it := range r.ordered {
		if cases.Fold().String(it.InternalName) == folded || cases.Fold().String(it.DisplayName) == folded {
			r.resolveCache.Add(folded, it)
			return it, nil
		}
	}

	return nil, fmt.Errorf("%w: %s", domain.ErrItemNotFound, name)
}

// All returns every item in authoring order.
func (r *Registry) All() []*domain.Item {
	out := make([]*domain.Item, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// Len returns the number of registered items.
func (r *Registry) Len() int {
	return len(r.ordered)
}
