package bot

import (
	"fmt"
	"html"

	"github.com/trungnb/gigfeed/internal/models"
)

// FormatPending renders the admin's moderation prompt for a queued post:
// translated title and body, predicted category, the approve/reject
// commands, and the original link.
func FormatPending(post models.PendingPost) string {
	return fmt.Sprintf(
		"📝 <b>New post awaiting review: %s</b>\n\n"+
			"%s\n\n"+
			"Suggested category: %s\n"+
			"✅ /approve %s\n"+
			"❌ /reject %s\n"+
			"Original: %s",
		html.EscapeString(post.Title),
		html.EscapeString(post.Body),
		html.EscapeString(post.Category),
		post.ID, post.ID,
		post.SourceURL,
	)
}

// FormatApproved renders the channel message for an approved post.
func FormatApproved(post models.PendingPost) string {
	return fmt.Sprintf(
		"<b>%s</b>\n\n"+
			"%s\n\n"+
			"%s\n"+
			"Source: %s",
		html.EscapeString(post.Title),
		html.EscapeString(post.Body),
		html.EscapeString(post.Category),
		post.SourceURL,
	)
}
