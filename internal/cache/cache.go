// Package cache remembers which postings the discovery loop has already
// handled so repeated scrape cycles do not re-insert the same job. Backed
// by Redis when configured, otherwise by process memory.
package cache

import "context"

type SeenCache interface {
	// Seen reports whether the key was marked before.
	Seen(ctx context.Context, key string) (bool, error)
	// Mark records the key. Marking an already-marked key is a no-op.
	Mark(ctx context.Context, key string) error
	Close() error
}
