// Package moderation implements the approve/reject command handling against
// the pending queue. Approve and reject are mutually exclusive terminal
// transitions for a given ID; both command surfaces (bot, admin API) go
// through the same handler.
package moderation

import (
	"context"
	"fmt"
	"sync"

	"github.com/trungnb/gigfeed/internal/logger"
	"github.com/trungnb/gigfeed/internal/models"
	"github.com/trungnb/gigfeed/internal/queue"
)

// Publisher delivers an approved post to the destination channel.
type Publisher interface {
	Publish(ctx context.Context, post models.PendingPost) error
}

// Handler processes approve/reject commands. Decisions are serialized so an
// ID is never in two decision paths at once.
type Handler struct {
	mu        sync.Mutex
	queue     *queue.PendingQueue
	publisher Publisher
	adminID   int64
}

// NewHandler wires the pending queue and the publisher.
func NewHandler(q *queue.PendingQueue, publisher Publisher, adminID int64) *Handler {
	return &Handler{queue: q, publisher: publisher, adminID: adminID}
}

// Approve publishes the pending post and removes it from the queue. It fails
// with ErrUnauthorized for non-admin callers, ErrNotFound when the ID is not
// pending (unknown or already decided), and ErrPublishFailed when delivery
// fails — in which case the post stays pending so the approve can be
// retried.
func (h *Handler) Approve(ctx context.Context, callerID int64, postID string) (models.PendingPost, error) {
	if callerID != h.adminID {
		return models.PendingPost{}, models.ErrUnauthorized
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	post, ok := h.queue.Get(postID)
	if !ok {
		return models.PendingPost{}, models.ErrNotFound
	}

	if err := h.publisher.Publish(ctx, post); err != nil {
		logger.Get().Error().
			Err(err).
			Str("post_id", postID).
			Msg("Publish failed, post kept pending")
		return models.PendingPost{}, fmt.Errorf("%w: %s", models.ErrPublishFailed, err)
	}

	// Remove only after the publish went through.
	h.queue.Remove(postID)

	logger.Get().Info().
		Str("post_id", postID).
		Str("category", post.Category).
		Msg("Post approved and published")
	return post, nil
}

// Reject removes the post if present. A missing ID is not an error: reject
// is idempotent, unlike approve.
func (h *Handler) Reject(ctx context.Context, callerID int64, postID string) error {
	if callerID != h.adminID {
		return models.ErrUnauthorized
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.queue.Remove(postID) {
		logger.Get().Info().Str("post_id", postID).Msg("Post rejected")
	}
	return nil
}

// Pending lists the queued posts, oldest first.
func (h *Handler) Pending() []models.PendingPost {
	return h.queue.List()
}
