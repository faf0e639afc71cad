package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/onecheckout/checkout-demo/internal/model"
)

// OrderStore persists orders by id. Writers use CompareAndSwap for
// read-modify-write cycles so concurrent reconciliation of the same order
// cannot lose updates.
type OrderStore interface {
	Get(ctx context.Context, id string) (*model.Order, error)
	Put(ctx context.Context, order *model.Order) error
	ListAll(ctx context.Context) ([]*model.Order, error)
	// CompareAndSwap writes order only if the stored version still equals
	// expectedVersion; otherwise it returns model.ErrVersionConflict.
	CompareAndSwap(ctx context.Context, expectedVersion int64, order *model.Order) error
}

type gormStoreImpl struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) OrderStore {
	return &gormStoreImpl{db: db}
}

func (s *gormStoreImpl) Get(ctx context.Context, id string) (*model.Order, error) {
	var order model.Order
	err := s.db.WithContext(ctx).
		Where("id = ?", id).
		First(&order).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrOrderNotFound
		}
		return nil, err
	}

	return &order, nil
}

func (s *gormStoreImpl) Put(ctx context.Context, order *model.Order) error {
	order.Version++
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(order).Error
}

func (s *gormStoreImpl) ListAll(ctx context.Context) ([]*model.Order, error) {
	var orders []*model.Order
	err := s.db.WithContext(ctx).
		Order("created_at").
		Find(&orders).Error

	if err != nil {
		return nil, err
	}

	return orders, nil
}

func (s *gormStoreImpl) CompareAndSwap(ctx context.Context, expectedVersion int64, order *model.Order) error {
	order.Version = expectedVersion + 1

	result := s.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("id = ? AND version = ?", order.ID, expectedVersion).
		Select("*").
		Updates(order)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return model.ErrVersionConflict
	}

	return nil
}
