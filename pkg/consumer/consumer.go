package consumer

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
)

// Config holds the message channel configuration.
type Config struct {
	Brokers      []string `json:"brokers" yaml:"brokers"`
	OrderTopic   string   `json:"order_topic" yaml:"order_topic"`
	ProductTopic string   `json:"product_topic" yaml:"product_topic"`
	GroupID      string   `json:"group_id" yaml:"group_id"`
}

// DefaultConfig returns a consumer configuration with local-development
// defaults.
func DefaultConfig() *Config {
	return &Config{
		Brokers:      []string{"localhost:9092"},
		OrderTopic:   "order",
		ProductTopic: "product",
		GroupID:      "storefront-service",
	}
}

// Validate checks if the consumer configuration is valid.
func (c *Config) Validate() error {
	if len(c.Brokers) == 0 {
		return fmt.Errorf("at least one broker is required")
	}
	if c.OrderTopic == "" || c.ProductTopic == "" {
		return fmt.Errorf("order and product topics are required")
	}
	return nil
}

// Consumer reads the order and product channels and applies their
// mutations out-of-band. Handling is fire-and-log: malformed or failing
// messages are logged, dropped and committed so they are never retried.
type Consumer struct {
	cfg      *Config
	handlers *messageHandlers
}

// New creates a consumer over the given services.
func New(cfg *Config, orders OrderPlacer, products ProductWriter) *Consumer {
	return &Consumer{
		cfg:      cfg,
		handlers: &messageHandlers{orders: orders, products: products},
	}
}

// Start launches one consume loop per topic. The loops stop when ctx is
// cancelled.
func (c *Consumer) Start(ctx context.Context) {
	go c.consume(ctx, c.cfg.OrderTopic, c.handlers.handleOrderMessage)
	go c.consume(ctx, c.cfg.ProductTopic, c.handlers.handleProductMessage)
}

func (c *Consumer) consume(ctx context.Context, topic string, handle func(context.Context, []byte)) {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  c.cfg.Brokers,
		Topic:    topic,
		GroupID:  c.cfg.GroupID,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
	defer r.Close()

	for {
		m, err := r.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info().Str("topic", topic).Msg("consumer stopped")
				return
			}
			log.Error().Err(err).Str("topic", topic).Msg("fetch message failed")
			time.Sleep(time.Second)
			continue
		}

		handle(ctx, m.Value)

		// Commit regardless of the handling outcome so a bad message never
		// blocks the partition.
		if err := r.CommitMessages(ctx, m); err != nil {
			log.Error().Err(err).Str("topic", topic).Msg("commit failed")
		}
	}
}
