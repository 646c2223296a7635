package service

import (
	"errors"
	"fmt"
)

// ErrInsufficientStock rejects an order whose line items exceed the
// available stock of a product.
var ErrInsufficientStock = errors.New("insufficient stock")

// UserNotFoundError identifies the missing user id.
type UserNotFoundError struct {
	ID string
}

func (e *UserNotFoundError) Error() string {
	return fmt.Sprintf("user with id %s not found", e.ID)
}

// ProductNotFoundError identifies the missing product id.
type ProductNotFoundError struct {
	ID string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product with id %s not found", e.ID)
}

// OrderNotFoundError identifies the missing order id.
type OrderNotFoundError struct {
	ID string
}

func (e *OrderNotFoundError) Error() string {
	return fmt.Sprintf("order with id %s not found", e.ID)
}

// IsNotFound reports whether err is any of the typed not-found rejections.
func IsNotFound(err error) bool {
	var userErr *UserNotFoundError
	var productErr *ProductNotFoundError
	var orderErr *OrderNotFoundError
	return errors.As(err, &userErr) || errors.As(err, &productErr) || errors.As(err, &orderErr)
}
