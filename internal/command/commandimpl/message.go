package commandimpl

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/mediarelay/twitter-media-telegram-bot/internal/batcher"
	"github.com/mediarelay/twitter-media-telegram-bot/internal/domain"
	"github.com/mediarelay/twitter-media-telegram-bot/internal/linkparser"
	"github.com/mediarelay/twitter-media-telegram-bot/internal/resolver"
	"github.com/mediarelay/twitter-media-telegram-bot/internal/twitter"
)

// handleMessage resolves every tweet link in the message and relays the
// media back into the chat.
func (c *CommandImpl) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	refs := linkparser.ExtractRefs(msg.Text)
	if len(refs) == 0 {
		c.Logger.Info("No supported tweet link found", "chatID", msg.Chat.ID, "messageID", msg.MessageID)
		_, _ = c.Telegram.ReplyMessage(msg.Chat.ID, msg.MessageID, "No supported tweet link found")
		return
	}

	c.Logger.Info("Found tweet links in message",
		"chatID", msg.Chat.ID, "messageID", msg.MessageID, "count", len(refs))

	identity := strconv.FormatInt(msg.From.ID, 10)

	for _, ref := range refs {
		c.relayPost(ctx, msg, ref, identity)
	}
}

func (c *CommandImpl) relayPost(ctx context.Context, msg *tgbotapi.Message, ref domain.PostRef, identity string) {
	post, err := c.Resolver.Resolve(ctx, ref, identity)
	if err != nil {
		_, _ = c.Telegram.ReplyMessage(msg.Chat.ID, msg.MessageID, resolveFailureReply(ref, err))
		return
	}

	dest := batcher.Destination{ChatID: msg.Chat.ID, ReplyTo: msg.MessageID}
	report, err := c.Batcher.Deliver(ctx, post, dest)

	if report != nil && report.Delivered > 0 {
		c.Stats.RecordDelivered(ctx, report.Delivered)
	}

	if err != nil {
		if errors.Is(err, batcher.ErrChannelRejected) {
			_, _ = c.Telegram.ReplyMessage(msg.Chat.ID, msg.MessageID, rejectedReply(post, report))
			return
		}
		c.Logger.Error("Delivery failed", "ref", ref, "error", err)
		_, _ = c.Telegram.ReplyMessage(msg.Chat.ID, msg.MessageID,
			"Error occurred while sending media, please try again later")
		return
	}

	if report != nil && len(report.Dropped) > 0 {
		_, _ = c.Telegram.ReplyMessage(msg.Chat.ID, msg.MessageID, droppedReply(post, report))
	}
}

// resolveFailureReply maps each failure kind onto its own user-facing text.
func resolveFailureReply(ref domain.PostRef, err error) string {
	var partial *resolver.PartialMediaError
	switch {
	case errors.Is(err, twitter.ErrNotFound):
		return "Tweet not found, it may have been deleted"
	case errors.Is(err, twitter.ErrForbidden):
		return "This account is protected, its media is not accessible"
	case errors.Is(err, twitter.ErrNoMedia):
		return "No supported media found in this tweet"
	case errors.Is(err, twitter.ErrUpstreamUnavailable):
		return "Twitter is unavailable right now, please try again later"
	case errors.As(err, &partial):
		return fmt.Sprintf("Could not prepare media item %d of tweet %s", partial.Index+1, ref)
	default:
		return "Something went wrong while fetching the tweet"
	}
}

// rejectedReply lists direct links for whatever the channel refused, the way
// the bot degrades for oversize videos.
func rejectedReply(post *domain.ResolvedPost, report *domain.DeliveryReport) string {
	var sb strings.Builder
	sb.WriteString("Media is too large for Telegram. Direct link(s):")
	for _, dropped := range undeliveredItems(post, report) {
		sb.WriteString("\n")
		sb.WriteString(dropped.Chosen.URL)
	}
	return sb.String()
}

func droppedReply(post *domain.ResolvedPost, report *domain.DeliveryReport) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Sent %d of %d media items. Direct link(s) for the rest:",
		report.Delivered, len(post.Items)))
	for _, dropped := range undeliveredItems(post, report) {
		sb.WriteString("\n")
		sb.WriteString(dropped.Chosen.URL)
	}
	return sb.String()
}

func undeliveredItems(post *domain.ResolvedPost, report *domain.DeliveryReport) []domain.ResolvedItem {
	if report == nil {
		return post.Items
	}
	delivered := make(map[int]bool, len(post.Items))
	for _, item := range post.Items {
		delivered[item.Index] = true
	}
	for _, d := range report.Dropped {
		delivered[d.Index] = false
	}

	var out []domain.ResolvedItem
	for _, item := range post.Items {
		if !delivered[item.Index] {
			out = append(out, item)
		}
	}
	return out
}
