package cache

import "sync/atomic"

// Stats is a point-in-time snapshot of side-cache effectiveness. Errors
// count transport and serialization failures, which the manager otherwise
// swallows as misses.
type Stats struct {
	Hits   uint64 `json:"hits"`
	Misses uint64 `json:"misses"`
	Errors uint64 `json:"errors"`
}

type statCounters struct {
	hits   atomic.Uint64
	misses atomic.Uint64
	errors atomic.Uint64
}

func (c *statCounters) snapshot() Stats {
	return Stats{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
		Errors: c.errors.Load(),
	}
}
