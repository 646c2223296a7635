package consumer

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/you/storefront/pkg/model"
	"github.com/you/storefront/pkg/service"
	"github.com/you/storefront/pkg/store"
)

// OrderPlacer is the slice of the order service the order channel needs.
type OrderPlacer interface {
	PlaceOrder(ctx context.Context, in service.PlaceOrderInput) (*model.Order, error)
	UpdateDeliveryAddress(ctx context.Context, id, deliveryAddressID string) (*model.Order, error)
}

// ProductWriter is the slice of the product service the product channel
// needs.
type ProductWriter interface {
	Create(ctx context.Context, p *model.Product) error
	Update(ctx context.Context, id string, patch store.ProductPatch) (*model.Product, error)
	MarkOutOfStock(ctx context.Context, id string) (*model.Product, error)
}

type orderMessage struct {
	Operation         string             `json:"operation"`
	OrderID           string             `json:"order_id"`
	UserID            string             `json:"user_id"`
	DeliveryAddressID string             `json:"delivery_address_id"`
	Items             []orderMessageItem `json:"items"`
}

type orderMessageItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type productMessage struct {
	Operation     string           `json:"operation"`
	ProductID     string           `json:"product_id"`
	Name          *string          `json:"name"`
	Description   *string          `json:"description"`
	Price         *decimal.Decimal `json:"price"`
	StockQuantity *int             `json:"stock_quantity"`
}

// messageHandlers applies channel messages to the services. Methods never
// return errors: every failure is logged and the message is dropped with
// no durable side effect.
type messageHandlers struct {
	orders   OrderPlacer
	products ProductWriter
}

func (h *messageHandlers) handleOrderMessage(ctx context.Context, payload []byte) {
	var msg orderMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		log.Error().Err(err).Msg("invalid order message, dropping")
		return
	}

	switch msg.Operation {
	case "create":
		if msg.UserID == "" || msg.DeliveryAddressID == "" {
			log.Error().Msg("order create message missing required fields, dropping")
			return
		}
		items := make([]service.OrderItemInput, 0, len(msg.Items))
		for _, it := range msg.Items {
			items = append(items, service.OrderItemInput{
				ProductID: it.ProductID,
				Quantity:  it.Quantity,
			})
		}
		order, err := h.orders.PlaceOrder(ctx, service.PlaceOrderInput{
			UserID:            msg.UserID,
			DeliveryAddressID: msg.DeliveryAddressID,
			Items:             items,
		})
		if err != nil {
			log.Error().Err(err).Str("user_id", msg.UserID).Msg("order create failed")
			return
		}
		log.Info().Str("order_id", order.ID).Msg("order created")

	case "update":
		if msg.OrderID == "" {
			log.Error().Msg("order update message missing order_id, dropping")
			return
		}
		order, err := h.orders.UpdateDeliveryAddress(ctx, msg.OrderID, msg.DeliveryAddressID)
		if err != nil {
			log.Error().Err(err).Str("order_id", msg.OrderID).Msg("order update failed")
			return
		}
		log.Info().Str("order_id", order.ID).Msg("order updated")

	default:
		log.Error().Str("operation", msg.Operation).Msg("unknown order operation, dropping")
	}
}

func (h *messageHandlers) handleProductMessage(ctx context.Context, payload []byte) {
	var msg productMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		log.Error().Err(err).Msg("invalid product message, dropping")
		return
	}

	switch msg.Operation {
	case "create":
		if msg.Name == nil || *msg.Name == "" || msg.Price == nil {
			log.Error().Msg("product create message missing required fields, dropping")
			return
		}
		product := &model.Product{
			Name:        *msg.Name,
			Description: msg.Description,
			Price:       *msg.Price,
		}
		if msg.StockQuantity != nil {
			product.StockQuantity = *msg.StockQuantity
		}
		if err := h.products.Create(ctx, product); err != nil {
			log.Error().Err(err).Str("name", product.Name).Msg("product create failed")
			return
		}
		log.Info().Str("product_id", product.ID).Str("name", product.Name).Msg("product created")

	case "update":
		if msg.ProductID == "" {
			log.Error().Msg("product update message missing product_id, dropping")
			return
		}
		product, err := h.products.Update(ctx, msg.ProductID, store.ProductPatch{
			Name:          msg.Name,
			Description:   msg.Description,
			Price:         msg.Price,
			StockQuantity: msg.StockQuantity,
		})
		if err != nil {
			log.Error().Err(err).Str("product_id", msg.ProductID).Msg("product update failed")
			return
		}
		log.Info().Str("product_id", product.ID).Msg("product updated")

	case "mark_out_of_stock":
		if msg.ProductID == "" {
			log.Error().Msg("product mark_out_of_stock message missing product_id, dropping")
			return
		}
		product, err := h.products.MarkOutOfStock(ctx, msg.ProductID)
		if err != nil {
			log.Error().Err(err).Str("product_id", msg.ProductID).Msg("product mark_out_of_stock failed")
			return
		}
		log.Info().Str("product_id", product.ID).Msg("product marked out of stock")

	default:
		log.Error().Str("operation", msg.Operation).Msg("unknown product operation, dropping")
	}
}
