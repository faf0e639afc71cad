package catalog

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/onecheckout/checkout-demo/internal/model"
)

// GormCatalog reads variants from the database. Variants are reference
// data: seeded once at startup, immutable afterwards.
type GormCatalog struct {
	db *gorm.DB
}

func NewGormCatalog(db *gorm.DB) *GormCatalog {
	return &GormCatalog{db: db}
}

func (c *GormCatalog) Seed(ctx context.Context, variants []model.Variant) error {
	if len(variants) == 0 {
		return nil
	}
	return c.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&variants).Error
}

func (c *GormCatalog) Lookup(ctx context.Context, sku string) (*model.Variant, bool) {
	var variant model.Variant
	err := c.db.WithContext(ctx).
		Where("sku = ?", sku).
		First(&variant).Error

	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("catalog lookup %q: %v", sku, err)
		}
		return nil, false
	}

	return &variant, true
}

func (c *GormCatalog) ListAll(ctx context.Context) []model.Variant {
	var variants []model.Variant
	err := c.db.WithContext(ctx).
		Order("sku").
		Find(&variants).Error

	if err != nil {
		log.Printf("catalog list: %v", err)
		return nil
	}

	return variants
}
