package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Manager wraps the Redis client behind a strictly best-effort contract:
// every operation carries its own short deadline, and any timeout, transport
// failure or serialization failure is mapped to the absent/false outcome.
// No error ever escapes this package, so a failing or slow cache can never
// be the reason a request fails.
//
// Construction does not dial; an unreachable cache at startup degrades to
// always-miss behavior.
type Manager struct {
	config *Config
	client *redis.Client
	stats  statCounters
}

// NewManager creates a new side-cache manager.
func NewManager(config *Config) (*Manager, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid cache config: %w", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr:         config.Addr(),
		Password:     config.Password,
		DB:           config.Database,
		PoolSize:     config.PoolSize,
		MinIdleConns: config.MinIdleConns,
		DialTimeout:  config.OpTimeout,
		ReadTimeout:  config.OpTimeout,
		WriteTimeout: config.OpTimeout,
	})

	return &Manager{config: config, client: client}, nil
}

// Close closes the Redis connection.
func (m *Manager) Close() error {
	return m.client.Close()
}

// PopulateTimeout is the deadline call sites apply to opportunistic cache
// writes around a database path.
func (m *Manager) PopulateTimeout() time.Duration {
	return m.config.PopulateTimeout
}

func (m *Manager) withOpTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, m.config.OpTimeout)
}

// Get retrieves a value. The second return is false when the key is absent
// or the cache is unreachable; the two cases are deliberately identical.
func (m *Manager) Get(ctx context.Context, key string) (string, bool) {
	ctx, cancel := m.withOpTimeout(ctx)
	defer cancel()

	val, err := m.client.Get(ctx, key).Result()
	if err == redis.Nil {
		m.stats.misses.Add(1)
		return "", false
	}
	if err != nil {
		m.stats.errors.Add(1)
		log.Debug().Err(err).Str("key", key).Msg("cache get failed, treating as miss")
		return "", false
	}
	m.stats.hits.Add(1)
	return val, true
}

// Set stores a value with a TTL. Returns false on any failure.
func (m *Manager) Set(ctx context.Context, key, value string, ttl time.Duration) bool {
	ctx, cancel := m.withOpTimeout(ctx)
	defer cancel()

	if err := m.client.Set(ctx, key, value, ttl).Err(); err != nil {
		m.stats.errors.Add(1)
		log.Debug().Err(err).Str("key", key).Msg("cache set failed")
		return false
	}
	return true
}

// Delete removes a key. Deleting an absent key is a success.
func (m *Manager) Delete(ctx context.Context, key string) bool {
	ctx, cancel := m.withOpTimeout(ctx)
	defer cancel()

	if err := m.client.Del(ctx, key).Err(); err != nil {
		m.stats.errors.Add(1)
		log.Debug().Err(err).Str("key", key).Msg("cache delete failed")
		return false
	}
	return true
}

// Ping reports whether the cache is reachable.
func (m *Manager) Ping(ctx context.Context) bool {
	ctx, cancel := m.withOpTimeout(ctx)
	defer cancel()

	if err := m.client.Ping(ctx).Err(); err != nil {
		log.Debug().Err(err).Msg("cache ping failed")
		return false
	}
	return true
}

// GetRecord retrieves a stored record into dst. A malformed payload or a
// shape mismatch is treated identically to a miss.
func (m *Manager) GetRecord(ctx context.Context, key string, dst any) bool {
	val, ok := m.Get(ctx, key)
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(val), dst); err != nil {
		m.stats.errors.Add(1)
		log.Debug().Err(err).Str("key", key).Msg("cache payload malformed, treating as miss")
		return false
	}
	return true
}

// SetRecord serializes rec and stores it with a TTL. A serialization
// failure yields false and never panics or propagates.
func (m *Manager) SetRecord(ctx context.Context, key string, rec any, ttl time.Duration) bool {
	data, err := json.Marshal(rec)
	if err != nil {
		m.stats.errors.Add(1)
		log.Debug().Err(err).Str("key", key).Msg("cache record not serializable")
		return false
	}
	return m.Set(ctx, key, string(data), ttl)
}

// Stats returns a snapshot of the manager's hit/miss/error counters.
func (m *Manager) Stats() Stats {
	return m.stats.snapshot()
}
