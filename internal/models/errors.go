package models

import "errors"

// Command and enrichment failures surfaced to callers. Fetch and translation
// errors never reach this level: fetches are logged and skipped per source,
// translations fall back to the original text.
var (
	// ErrUnauthorized is returned when a command comes from anyone but the
	// configured admin.
	ErrUnauthorized = errors.New("caller is not the configured admin")

	// ErrNotFound is returned by approve when the post is not pending
	// (unknown ID, or already decided).
	ErrNotFound = errors.New("post not found in pending queue")

	// ErrPublishFailed wraps a failed channel delivery. The post stays in
	// the pending queue so the approve can be retried.
	ErrPublishFailed = errors.New("publish failed")

	// ErrModelUnavailable means the classifier has no fitted model. An item
	// is never enqueued without a category.
	ErrModelUnavailable = errors.New("classifier model unavailable")
)
