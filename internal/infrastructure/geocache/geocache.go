// Package geocache provides the process-wide geo lookup cache keyed by
// server host (spec §5 "Geo lookup is cached process-wide, keyed by
// server host; last writer wins on a race"). The default backend is an
// in-memory map; an optional Redis-backed TTL variant is available for
// deployments that want the cache to survive process restarts or be
// shared across sentinel instances.
package geocache

import "context"

// Cache resolves and remembers the country code associated with a
// server host.
type Cache interface {
	// Get returns the cached country for host, and whether it was
	// present.
	Get(ctx context.Context, host string) (string, bool)
	// Set records country for host. Concurrent writers racing on the
	// same host are resolved last-writer-wins; callers never need to
	// coordinate.
	Set(ctx context.Context, host string, country string)
}
