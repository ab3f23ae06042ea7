// Package dedup tracks which source item IDs have already been evaluated,
// whatever the outcome. An ID is marked before the relevance filter runs, so
// an item inspected once is never inspected again.
package dedup

import "context"

// SeenStore is the membership test over the seen-set.
type SeenStore interface {
	HasSeen(ctx context.Context, id string) (bool, error)
	MarkSeen(ctx context.Context, id string) error
	Close() error
}
