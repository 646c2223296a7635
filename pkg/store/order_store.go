package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/you/storefront/pkg/model"
)

// OrderPatch carries the single order field that supports updates today:
// reassigning the delivery address.
type OrderPatch struct {
	DeliveryAddressID *string
}

func (p OrderPatch) apply(o *model.Order) bool {
	if p.DeliveryAddressID == nil {
		return false
	}
	o.DeliveryAddressID = *p.DeliveryAddressID
	return true
}

// OrderStore is the relational persistence boundary for orders and their
// items.
type OrderStore struct {
	db *gorm.DB
}

// NewOrderStore creates an order store over the given connection or
// transaction handle.
func NewOrderStore(db *gorm.DB) *OrderStore {
	return &OrderStore{db: db}
}

// GetByID returns (nil, nil) when no order has the given id. Items are
// loaded with the order.
func (s *OrderStore) GetByID(ctx context.Context, id string) (*model.Order, error) {
	var o model.Order
	err := s.db.WithContext(ctx).Preload("Items").First(&o, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load order: %w", err)
	}
	return &o, nil
}

// List returns at most pageSize orders at the given 1-based page, in
// insertion order.
func (s *OrderStore) List(ctx context.Context, page, pageSize int) ([]model.Order, error) {
	var orders []model.Order
	err := s.db.WithContext(ctx).
		Order(listOrder).
		Offset(pageOffset(page, pageSize)).
		Limit(pageSize).
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// CreateWithItems persists the order row and every item row as a single
// unit. The caller supplies the pre-computed total on the order and runs
// this inside its transaction.
func (s *OrderStore) CreateWithItems(ctx context.Context, o *model.Order, items []model.OrderItem) error {
	if err := s.db.WithContext(ctx).Create(o).Error; err != nil {
		return fmt.Errorf("create order: %w", err)
	}
	if len(items) > 0 {
		for i := range items {
			items[i].OrderID = o.ID
		}
		if err := s.db.WithContext(ctx).Create(&items).Error; err != nil {
			return fmt.Errorf("create order items: %w", err)
		}
	}
	o.Items = items
	return nil
}

// Update applies the patch to the stored order and returns the result.
// An absent id yields (nil, nil); an empty patch returns the order
// unchanged.
func (s *OrderStore) Update(ctx context.Context, id string, patch OrderPatch) (*model.Order, error) {
	o, err := s.GetByID(ctx, id)
	if err != nil || o == nil {
		return o, err
	}
	if !patch.apply(o) {
		return o, nil
	}
	// Items are immutable; keep the save to the order row itself.
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Save(o).Error; err != nil {
		return nil, fmt.Errorf("update order: %w", err)
	}
	return o, nil
}

// Delete removes the order; deleting a non-existent id is not an error.
func (s *OrderStore) Delete(ctx context.Context, id string) error {
	if err := s.db.WithContext(ctx).Delete(&model.Order{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	return nil
}
