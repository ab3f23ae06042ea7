// Package bot is the Telegram messaging connector: it notifies the admin of
// freshly queued posts, publishes approved posts to the destination channel,
// and dispatches inbound /approve and /reject commands to moderation.
package bot

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net/http"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/trungnb/gigfeed/internal/logger"
	"github.com/trungnb/gigfeed/internal/models"
)

// The HTTP client timeout bounds every Bot API call. A hung send would
// otherwise hold the moderation lock and freeze both command surfaces. It
// must outlast the update long-poll.
const (
	longPollTimeout = 30
	clientTimeout   = 45 * time.Second
)

// Commander is the moderation surface the bot drives.
type Commander interface {
	Approve(ctx context.Context, callerID int64, postID string) (models.PendingPost, error)
	Reject(ctx context.Context, callerID int64, postID string) error
	Pending() []models.PendingPost
}

// Bot wraps the Telegram Bot API connection.
type Bot struct {
	api       *tgbotapi.BotAPI
	commands  Commander
	adminID   int64
	channelID int64
}

// New authenticates against the Telegram Bot API. The bot publishes and
// notifies on its own; attach a Commander before Run to serve inbound
// commands.
func New(token string, adminID, channelID int64) (*Bot, error) {
	api, err := tgbotapi.NewBotAPIWithClient(token, tgbotapi.APIEndpoint,
		&http.Client{Timeout: clientTimeout})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Telegram bot: %w", err)
	}

	logger.Get().Info().
		Str("username", api.Self.UserName).
		Msg("Telegram bot authorized")

	return &Bot{
		api:       api,
		adminID:   adminID,
		channelID: channelID,
	}, nil
}

// AttachCommander wires the moderation surface the update loop dispatches
// to. The bot is also the moderation publisher, which is why the commander
// cannot be passed at construction.
func (b *Bot) AttachCommander(commands Commander) {
	b.commands = commands
}

// Notify sends the moderation prompt for a queued post to the admin.
func (b *Bot) Notify(ctx context.Context, post models.PendingPost) error {
	return b.send(b.adminID, FormatPending(post))
}

// Publish delivers an approved post to the destination channel.
func (b *Bot) Publish(ctx context.Context, post models.PendingPost) error {
	return b.send(b.channelID, FormatApproved(post))
}

// Run consumes inbound updates until the context is cancelled.
func (b *Bot) Run(ctx context.Context) {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = longPollTimeout
	updates := b.api.GetUpdatesChan(updateConfig)

	log := logger.Get()
	log.Info().Msg("Listening for Telegram commands")

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message == nil || !update.Message.IsCommand() || update.Message.From == nil {
				continue
			}

			reply := b.respond(ctx, update.Message.From.ID,
				update.Message.Command(), update.Message.CommandArguments())
			if reply == "" {
				continue
			}
			if err := b.send(update.Message.Chat.ID, reply); err != nil {
				log.Error().Err(err).Msg("Failed to send command reply")
			}
		}
	}
}

// respond executes a single command and returns the acknowledgment text, or
// empty when the command is not ours.
func (b *Bot) respond(ctx context.Context, callerID int64, command, args string) string {
	switch command {
	case "approve":
		return b.handleApprove(ctx, callerID, strings.TrimSpace(args))
	case "reject":
		return b.handleReject(ctx, callerID, strings.TrimSpace(args))
	case "pending":
		return b.handlePending(callerID)
	default:
		return ""
	}
}

func (b *Bot) handleApprove(ctx context.Context, callerID int64, postID string) string {
	if postID == "" {
		return "Usage: /approve <post id>"
	}

	post, err := b.commands.Approve(ctx, callerID, postID)
	switch {
	case errors.Is(err, models.ErrUnauthorized):
		return "❌ You are not allowed to do that."
	case errors.Is(err, models.ErrNotFound):
		return "❌ Post not found or already decided."
	case errors.Is(err, models.ErrPublishFailed):
		return fmt.Sprintf("⚠️ Publishing %s failed, the post is still pending. Try /approve %s again.", postID, postID)
	case err != nil:
		return fmt.Sprintf("⚠️ Could not approve %s: %v", postID, err)
	}

	return fmt.Sprintf("✅ Published %s (%s).", post.ID, post.Category)
}

func (b *Bot) handleReject(ctx context.Context, callerID int64, postID string) string {
	if postID == "" {
		return "Usage: /reject <post id>"
	}

	switch err := b.commands.Reject(ctx, callerID, postID); {
	case errors.Is(err, models.ErrUnauthorized):
		return "❌ You are not allowed to do that."
	case err != nil:
		return fmt.Sprintf("⚠️ Could not reject %s: %v", postID, err)
	}
	return fmt.Sprintf("❌ Rejected %s.", postID)
}

func (b *Bot) handlePending(callerID int64) string {
	if callerID != b.adminID {
		return "❌ You are not allowed to do that."
	}

	posts := b.commands.Pending()
	if len(posts) == 0 {
		return "Nothing pending."
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d pending:\n", len(posts)))
	for _, post := range posts {
		sb.WriteString(fmt.Sprintf("• %s — %s\n", post.ID, html.EscapeString(post.Title)))
	}
	return sb.String()
}

func (b *Bot) send(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true

	if _, err := b.api.Send(msg); err != nil {
		return fmt.Errorf("telegram send to %d failed: %w", chatID, err)
	}
	return nil
}
