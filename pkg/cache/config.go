package cache

import (
	"fmt"
	"time"
)

// Config holds Redis side-cache configuration.
type Config struct {
	Host     string `json:"host" yaml:"host"`
	Port     int    `json:"port" yaml:"port"`
	Password string `json:"password" yaml:"password"`
	Database int    `json:"database" yaml:"database"`

	// OpTimeout bounds every direct cache operation.
	OpTimeout time.Duration `json:"op_timeout" yaml:"op_timeout"`
	// PopulateTimeout bounds opportunistic cache writes performed around a
	// database read or write path.
	PopulateTimeout time.Duration `json:"populate_timeout" yaml:"populate_timeout"`

	PoolSize     int `json:"pool_size" yaml:"pool_size"`
	MinIdleConns int `json:"min_idle_conns" yaml:"min_idle_conns"`
}

// DefaultConfig returns a cache configuration with local-development defaults.
func DefaultConfig() *Config {
	return &Config{
		Host:            "localhost",
		Port:            6379,
		Database:        0,
		OpTimeout:       time.Second,
		PopulateTimeout: 500 * time.Millisecond,
		PoolSize:        10,
		MinIdleConns:    3,
	}
}

// Validate checks if the cache configuration is valid.
func (c *Config) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("cache host is required")
	}
	if c.Port <= 0 {
		return fmt.Errorf("cache port must be positive")
	}
	if c.OpTimeout <= 0 {
		return fmt.Errorf("op_timeout must be positive")
	}
	if c.PopulateTimeout <= 0 {
		return fmt.Errorf("populate_timeout must be positive")
	}
	return nil
}

// Addr returns the Redis connection address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
