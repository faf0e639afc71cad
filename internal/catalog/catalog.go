package catalog

import (
	"context"
	"sync"

	"github.com/onecheckout/checkout-demo/internal/model"
)

// Catalog is read-only variant lookup. Absence is not an error; callers
// check the ok flag.
type Catalog interface {
	Lookup(ctx context.Context, sku string) (*model.Variant, bool)
	ListAll(ctx context.Context) []model.Variant
}

// MemoryCatalog serves a fixed variant set from memory. ListAll preserves
// insertion order for the process lifetime.
type MemoryCatalog struct {
	mu       sync.RWMutex
	variants []model.Variant
	bySKU    map[string]int
}

func NewMemoryCatalog(variants ...model.Variant) *MemoryCatalog {
	c := &MemoryCatalog{bySKU: make(map[string]int, len(variants))}
	for _, v := range variants {
		if _, exists := c.bySKU[v.SKU]; exists {
			continue
		}
		c.bySKU[v.SKU] = len(c.variants)
		c.variants = append(c.variants, v)
	}
	return c
}

func (c *MemoryCatalog) Lookup(_ context.Context, sku string) (*model.Variant, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	i, ok := c.bySKU[sku]
	if !ok {
		return nil, false
	}
	v := c.variants[i]
	return &v, true
}

func (c *MemoryCatalog) ListAll(_ context.Context) []model.Variant {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]model.Variant, len(c.variants))
	copy(out, c.variants)
	return out
}

// DefaultVariants is the demo storefront inventory, used to seed both
// catalog implementations.
func DefaultVariants() []model.Variant {
	return []model.Variant{
		{
			SKU:       "tee-classic-m",
			UnitPrice: 19.99,
			Title:     "Classic Tee (M)",
			ImageURL:  "/images/tee-classic.jpg",
			Properties: []model.Property{
				{Key: "color", Value: "black"},
				{Key: "size", Value: "M"},
			},
			ComparedPrice:     24.99,
			InventoryQuantity: 120,
			Available:         true,
		},
		{
			SKU:       "hoodie-zip-l",
			UnitPrice: 49.5,
			Title:     "Zip Hoodie (L)",
			ImageURL:  "/images/hoodie-zip.jpg",
			Properties: []model.Property{
				{Key: "color", Value: "navy"},
				{Key: "size", Value: "L"},
			},
			DiscountValue:     4.5,
			InventoryQuantity: 40,
			Available:         true,
		},
		{
			SKU:               "cap-trucker",
			UnitPrice:         14,
			Title:             "Trucker Cap",
			ImageURL:          "/images/cap-trucker.jpg",
			InventoryQuantity: 75,
			Available:         true,
		},
	}
}
