// =============================================================================
// CAPPS Converter - Brand Resolver
// =============================================================================
//
// Resolves a brand string from a free-text item description through an
// ordered fallback chain:
//
//   1. Cache lookup (exact description string) - hit returns immediately
//   2. Remote classifier (optional)            - failure falls through
//   3. Static pattern table                    - longest whole-word match
//
// The chain is an ordered list of strategies behind a uniform interface, so
// tiers can be added, removed or reordered without touching the resolver.
// Every successful resolution - including the UNKNOWN sentinel when nothing
// matches - is written back to the cache, so repeated lookups are cheap and
// the resolver is idempotent: resolving the same description twice never
// performs a second remote call.
//
// =============================================================================

package brand

import (
	"context"

	"github.com/rs/zerolog"
)

// Unknown is the sentinel brand returned when no tier can resolve a
// description. It is cached like any other answer; operators clear the
// entry (capps cache remove) to force re-resolution.
const Unknown = "UNKNOWN"

// Strategy is one tier of the fallback chain. Resolve returns the brand and
// true on success; false means "try the next tier". Strategies must treat
// their own failures (network, timeout, malformed response) as a false
// return, never as something the caller has to recover from.
type Strategy interface {
	Name() string
	Resolve(ctx context.Context, description string) (string, bool)
}

// Stats counts how each description was resolved during a run.
type Stats struct {
	CacheHits int

	// ByStrategy counts successful resolutions per tier name.
	ByStrategy map[string]int

	// Unresolved counts descriptions that fell through the whole chain.
	Unresolved int
}

// Resolver runs the fallback chain over the shared cache.
type Resolver struct {
	cache      *Cache
	strategies []Strategy
	log        zerolog.Logger
	stats      Stats
}

// NewResolver builds a resolver over the given cache and tier list. The
// tiers run in the order given.
func NewResolver(cache *Cache, log zerolog.Logger, strategies ...Strategy) *Resolver {
	return &Resolver{
		cache:      cache,
		strategies: strategies,
		log:        log,
		stats:      Stats{ByStrategy: make(map[string]int)},
	}
}

// Resolve returns a non-empty brand for the description. The worst case is
// the Unknown sentinel; Resolve never fails.
func (r *Resolver) Resolve(ctx context.Context, description string) string {
	if description == "" {
		return Unknown
	}

	if brand, ok := r.cache.Get(description); ok {
		r.stats.CacheHits++
		return brand
	}

	for _, s := range r.strategies {
		brand, ok := s.Resolve(ctx, description)
		if !ok {
			continue
		}
		r.stats.ByStrategy[s.Name()]++
		r.put(description, brand)
		return brand
	}

	r.stats.Unresolved++
	r.put(description, Unknown)
	return Unknown
}

// Stats returns the resolution counters accumulated so far.
func (r *Resolver) Stats() Stats {
	return r.stats
}

func (r *Resolver) put(description, brand string) {
	if err := r.cache.Put(description, brand); err != nil {
		r.log.Warn().Err(err).Msg("brand cache not persisted")
	}
}
