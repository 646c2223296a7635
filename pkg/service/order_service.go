package service

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/you/storefront/pkg/model"
	"github.com/you/storefront/pkg/store"
)

// OrderItemInput is a requested order line.
type OrderItemInput struct {
	ProductID string
	Quantity  int
}

// PlaceOrderInput is the request to place an order.
type PlaceOrderInput struct {
	UserID            string
	DeliveryAddressID string
	Items             []OrderItemInput
}

// OrderService owns the order placement workflow. Orders are not cached.
type OrderService struct {
	db     *gorm.DB
	orders *store.OrderStore
}

// NewOrderService creates an order service over the given database handle.
func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{
		db:     db,
		orders: store.NewOrderStore(db),
	}
}

// PlaceOrder validates the user and every line item, computes the total,
// persists the order with its items and decrements product stock, all in
// one transaction. A rejection at any step rolls the transaction back and
// leaves the store untouched.
//
// An empty items list is legal and produces a zero-total order.
func (s *OrderService) PlaceOrder(ctx context.Context, in PlaceOrderInput) (*model.Order, error) {
	var placed *model.Order

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users := store.NewUserStore(tx)
		products := store.NewProductStore(tx)
		orders := store.NewOrderStore(tx)

		user, err := users.GetByID(ctx, in.UserID)
		if err != nil {
			return err
		}
		if user == nil {
			return &UserNotFoundError{ID: in.UserID}
		}

		total := decimal.Zero
		for _, item := range in.Items {
			product, err := products.GetByID(ctx, item.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return &ProductNotFoundError{ID: item.ProductID}
			}
			if product.StockQuantity < item.Quantity {
				return ErrInsufficientStock
			}
			total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		}

		order := &model.Order{
			UserID:            in.UserID,
			DeliveryAddressID: in.DeliveryAddressID,
			TotalAmount:       total,
		}
		items := make([]model.OrderItem, 0, len(in.Items))
		for _, item := range in.Items {
			items = append(items, model.OrderItem{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
			})
		}
		if err := orders.CreateWithItems(ctx, order, items); err != nil {
			return err
		}

		// The conditional decrement re-checks sufficiency at write time, so
		// two orders racing over the same product cannot oversell it; the
		// loser rolls back here.
		for _, item := range in.Items {
			ok, err := products.DecrementStock(ctx, item.ProductID, item.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				return ErrInsufficientStock
			}
		}

		placed = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return placed, nil
}

// GetByID reads an order from the store; orders are never cached.
func (s *OrderService) GetByID(ctx context.Context, id string) (*model.Order, error) {
	return s.orders.GetByID(ctx, id)
}

// List lists orders with pagination.
func (s *OrderService) List(ctx context.Context, page, pageSize int) ([]model.Order, error) {
	return s.orders.List(ctx, page, pageSize)
}

// UpdateDeliveryAddress reassigns the order's delivery address, the only
// order field that supports updates.
func (s *OrderService) UpdateDeliveryAddress(ctx context.Context, id, deliveryAddressID string) (*model.Order, error) {
	o, err := s.orders.Update(ctx, id, store.OrderPatch{DeliveryAddressID: &deliveryAddressID})
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, &OrderNotFoundError{ID: id}
	}
	return o, nil
}

// Delete removes an order; deleting a non-existent id is not an error.
func (s *OrderService) Delete(ctx context.Context, id string) error {
	return s.orders.Delete(ctx, id)
}
