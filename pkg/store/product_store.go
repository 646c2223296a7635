package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/you/storefront/pkg/model"
)

// ProductPatch carries the fields a caller explicitly supplied for an
// update. Nil fields are left untouched.
type ProductPatch struct {
	Name          *string
	Description   *string
	Price         *decimal.Decimal
	StockQuantity *int
}

func (p ProductPatch) apply(prod *model.Product) bool {
	changed := false
	if p.Name != nil {
		prod.Name = *p.Name
		changed = true
	}
	if p.Description != nil {
		prod.Description = p.Description
		changed = true
	}
	if p.Price != nil {
		prod.Price = *p.Price
		changed = true
	}
	if p.StockQuantity != nil {
		prod.StockQuantity = *p.StockQuantity
		changed = true
	}
	return changed
}

// ProductStore is the relational persistence boundary for products.
type ProductStore struct {
	db *gorm.DB
}

// NewProductStore creates a product store over the given connection or
// transaction handle.
func NewProductStore(db *gorm.DB) *ProductStore {
	return &ProductStore{db: db}
}

// GetByID returns (nil, nil) when no product has the given id.
func (s *ProductStore) GetByID(ctx context.Context, id string) (*model.Product, error) {
	var p model.Product
	err := s.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load product: %w", err)
	}
	return &p, nil
}

// List returns at most pageSize products at the given 1-based page, in
// insertion order.
func (s *ProductStore) List(ctx context.Context, page, pageSize int) ([]model.Product, error) {
	var products []model.Product
	err := s.db.WithContext(ctx).
		Order(listOrder).
		Offset(pageOffset(page, pageSize)).
		Limit(pageSize).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// Create persists the product, assigning its id and timestamps.
func (s *ProductStore) Create(ctx context.Context, p *model.Product) error {
	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

// Update applies the patch to the stored product and returns the result.
// An absent id yields (nil, nil); an empty patch returns the product
// unchanged.
func (s *ProductStore) Update(ctx context.Context, id string, patch ProductPatch) (*model.Product, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil || p == nil {
		return p, err
	}
	if !patch.apply(p) {
		return p, nil
	}
	if err := s.db.WithContext(ctx).Save(p).Error; err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	return p, nil
}

// Delete removes the product; deleting a non-existent id is not an error.
func (s *ProductStore) Delete(ctx context.Context, id string) error {
	if err := s.db.WithContext(ctx).Delete(&model.Product{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

// DecrementStock atomically decrements a product's stock if and only if at
// least qty units remain. The conditional update re-checks sufficiency at
// write time, so concurrent decrements against the same product cannot
// drive the stock negative. Returns false when the guard fails.
func (s *ProductStore) DecrementStock(ctx context.Context, id string, qty int) (bool, error) {
	res := s.db.WithContext(ctx).Model(&model.Product{}).
		Where("id = ? AND stock_quantity >= ?", id, qty).
		UpdateColumn("stock_quantity", gorm.Expr("stock_quantity - ?", qty))
	if res.Error != nil {
		return false, fmt.Errorf("decrement stock: %w", res.Error)
	}
	return res.RowsAffected == 1, nil
}
