package cache

import (
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/vmihailenco/msgpack/v5"
)

// Cache key namespaces and per-entity TTLs. Keys are namespaced by entity
// type so an external consumer can read entries directly.
const (
	userKeyPrefix       = "user:"
	productKeyPrefix    = "product:"
	UserFilterKeyPrefix = "users:filter:"

	UserTTL    = time.Hour
	ProductTTL = 10 * time.Minute
	FilterTTL  = time.Minute

	filterKeyHashLength = 12 // Balance between uniqueness and key length
)

// UserKey returns the cache key for a user snapshot.
func UserKey(id string) string { return userKeyPrefix + id }

// ProductKey returns the cache key for a product snapshot.
func ProductKey(id string) string { return productKeyPrefix + id }

// FilterKey builds a short, stable key for a query-shaped result from the
// arguments that produced it. Args are serialized with msgpack and hashed
// with xxhash; a serialization failure falls back to the printed form so key
// generation itself never fails.
func FilterKey(prefix string, args ...any) string {
	data, err := msgpack.Marshal(args)
	if err != nil {
		data = []byte(fmt.Sprint(args...))
	}
	hash := fmt.Sprintf("%016x", xxhash.Sum64(data))
	return prefix + hash[:filterKeyHashLength]
}
