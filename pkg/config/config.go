package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/you/storefront/pkg/cache"
	"github.com/you/storefront/pkg/consumer"
	"github.com/you/storefront/pkg/store"
)

// Config is the full service configuration, assembled from environment
// overrides on top of local-development defaults.
type Config struct {
	HTTPAddr string

	Store    *store.Config
	Cache    *cache.Config
	Consumer *consumer.Config
}

// Load builds the configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{
		HTTPAddr: getenv("HTTP_ADDR", ":8080"),
		Store:    store.DefaultConfig(),
		Cache:    cache.DefaultConfig(),
		Consumer: consumer.DefaultConfig(),
	}

	cfg.Store.DSN = os.Getenv("DATABASE_DSN")
	cfg.Store.Host = getenv("DATABASE_HOST", cfg.Store.Host)
	cfg.Store.Database = getenv("DATABASE_NAME", cfg.Store.Database)
	cfg.Store.Username = getenv("DATABASE_USER", cfg.Store.Username)
	cfg.Store.Password = getenv("DATABASE_PASSWORD", cfg.Store.Password)
	var err error
	if cfg.Store.Port, err = getenvInt("DATABASE_PORT", cfg.Store.Port); err != nil {
		return nil, err
	}
	cfg.Store.LogLevel = getenv("DATABASE_LOG_LEVEL", cfg.Store.LogLevel)

	cfg.Cache.Host = getenv("REDIS_HOST", cfg.Cache.Host)
	cfg.Cache.Password = os.Getenv("REDIS_PASSWORD")
	if cfg.Cache.Port, err = getenvInt("REDIS_PORT", cfg.Cache.Port); err != nil {
		return nil, err
	}
	if cfg.Cache.Database, err = getenvInt("REDIS_DB", cfg.Cache.Database); err != nil {
		return nil, err
	}

	if brokers := os.Getenv("KAFKA_BROKER"); brokers != "" {
		cfg.Consumer.Brokers = strings.Split(brokers, ",")
	}
	cfg.Consumer.OrderTopic = getenv("KAFKA_ORDER_TOPIC", cfg.Consumer.OrderTopic)
	cfg.Consumer.ProductTopic = getenv("KAFKA_PRODUCT_TOPIC", cfg.Consumer.ProductTopic)
	cfg.Consumer.GroupID = getenv("KAFKA_GROUP_ID", cfg.Consumer.GroupID)

	if err := cfg.Store.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Cache.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Consumer.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, v)
	}
	return n, nil
}
