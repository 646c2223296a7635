package service

import (
	"context"

	"github.com/you/storefront/pkg/cache"
	"github.com/you/storefront/pkg/model"
	"github.com/you/storefront/pkg/store"
)

// ProductService wraps the product store with the cache-aside policy.
// Unlike users, a product update refreshes the cache entry with the new
// value instead of deleting it, so external readers keep a warm entry.
type ProductService struct {
	products *store.ProductStore
	cache    sideCache
}

// NewProductService creates a product service. cacheManager may be nil,
// which disables caching.
func NewProductService(products *store.ProductStore, cacheManager *cache.Manager) *ProductService {
	return &ProductService{
		products: products,
		cache:    sideCache{manager: cacheManager},
	}
}

// GetByID reads from the store and, on a hit, populates the cache entry.
func (s *ProductService) GetByID(ctx context.Context, id string) (*model.Product, error) {
	p, err := s.products.GetByID(ctx, id)
	if err != nil || p == nil {
		return p, err
	}
	s.cache.populate(ctx, cache.ProductKey(p.ID), p, cache.ProductTTL)
	return p, nil
}

// List lists products without cache interaction.
func (s *ProductService) List(ctx context.Context, page, pageSize int) ([]model.Product, error) {
	return s.products.List(ctx, page, pageSize)
}

// Create persists the product without cache interaction.
func (s *ProductService) Create(ctx context.Context, p *model.Product) error {
	return s.products.Create(ctx, p)
}

// Update merge-patches the product and refreshes its cache entry with the
// new value.
func (s *ProductService) Update(ctx context.Context, id string, patch store.ProductPatch) (*model.Product, error) {
	p, err := s.products.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, &ProductNotFoundError{ID: id}
	}
	s.cache.refresh(ctx, cache.ProductKey(id), p, cache.ProductTTL)
	return p, nil
}

// MarkOutOfStock zeroes the product's stock.
func (s *ProductService) MarkOutOfStock(ctx context.Context, id string) (*model.Product, error) {
	zero := 0
	return s.Update(ctx, id, store.ProductPatch{StockQuantity: &zero})
}

// Delete removes the product and invalidates its cache entry.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.invalidate(ctx, cache.ProductKey(id))
	return nil
}
