// Package api exposes the admin HTTP surface: health, the pending queue, and
// approve/reject. It drives the same moderation handler as the bot, so both
// surfaces share one state machine. An authenticated API request acts as the
// admin.
package api

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/trungnb/gigfeed/internal/logger"
	"github.com/trungnb/gigfeed/internal/models"
)

// Handlers carries the moderation surface and the admin identity API calls
// act under.
type Handlers struct {
	commands Commander
	adminID  int64
}

// Commander is the moderation surface the API drives.
type Commander interface {
	Approve(ctx context.Context, callerID int64, postID string) (models.PendingPost, error)
	Reject(ctx context.Context, callerID int64, postID string) error
	Pending() []models.PendingPost
}

// NewHandlers wires the moderation handler.
func NewHandlers(commands Commander, adminID int64) *Handlers {
	return &Handlers{commands: commands, adminID: adminID}
}

// HealthCheck handles GET /api/v1/health.
func (h *Handlers) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// ListPending handles GET /api/v1/pending.
func (h *Handlers) ListPending(c *fiber.Ctx) error {
	posts := h.commands.Pending()
	return c.JSON(fiber.Map{
		"total": len(posts),
		"items": posts,
	})
}

// ApprovePost handles POST /api/v1/pending/:id/approve.
func (h *Handlers) ApprovePost(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Post ID is required",
		})
	}

	post, err := h.commands.Approve(c.Context(), h.adminID, id)
	switch {
	case errors.Is(err, models.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Post not found or already decided",
		})
	case errors.Is(err, models.ErrPublishFailed):
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Publish failed, post kept pending for retry",
		})
	case err != nil:
		logger.Get().Error().Err(err).Str("post_id", id).Msg("Approve failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to approve post",
		})
	}

	return c.JSON(fiber.Map{
		"status": "published",
		"post":   post,
	})
}

// RejectPost handles POST /api/v1/pending/:id/reject. Rejecting an unknown
// ID succeeds; reject is idempotent.
func (h *Handlers) RejectPost(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Post ID is required",
		})
	}

	if err := h.commands.Reject(c.Context(), h.adminID, id); err != nil {
		logger.Get().Error().Err(err).Str("post_id", id).Msg("Reject failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to reject post",
		})
	}

	return c.JSON(fiber.Map{
		"status": "rejected",
		"id":     id,
	})
}
