package commandimpl

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/mediarelay/twitter-media-telegram-bot/internal/stats"
	"github.com/mediarelay/twitter-media-telegram-bot/pkg/formatter"
)

func (c *CommandImpl) handleStats(msg *tgbotapi.Message) {
	snapshot := c.Stats.Snapshot()

	var sb strings.Builder
	sb.WriteString("*Bot stats*\n")
	sb.WriteString(fmt.Sprintf("Requests handled: %s\n", formatter.EscapeMarkdownV2(formatter.FormatNumber(snapshot.TotalRequests))))
	sb.WriteString(fmt.Sprintf("Successful: %s\n", formatter.EscapeMarkdownV2(formatter.FormatNumber(snapshot.Successes))))
	sb.WriteString(fmt.Sprintf("Media delivered: %s\n", formatter.EscapeMarkdownV2(formatter.FormatNumber(snapshot.MediaDelivered))))

	if len(snapshot.FailuresByCause) > 0 {
		sb.WriteString("Failures:\n")
		for cause, count := range snapshot.FailuresByCause {
			sb.WriteString(fmt.Sprintf("  %s: %s\n",
				formatter.EscapeMarkdownV2(string(cause)),
				formatter.EscapeMarkdownV2(formatter.FormatNumber(count))))
		}
	}

	c.Logger.Info("Sent stats", "total_requests", snapshot.TotalRequests)
	_, _ = c.Telegram.SendMarkdownMessage(msg.Chat.ID, sb.String())
}

func (c *CommandImpl) handleResetStats(ctx context.Context, msg *tgbotapi.Message) {
	identity := strconv.FormatInt(msg.From.ID, 10)

	if err := c.Stats.Reset(ctx, identity); err != nil {
		if errors.Is(err, stats.ErrUnauthorized) {
			_, _ = c.Telegram.SendMessage(msg.Chat.ID, "You are not allowed to reset bot stats")
			return
		}
		c.Logger.Error("Failed to reset stats", "error", err)
		_, _ = c.Telegram.SendMessage(msg.Chat.ID, "Failed to reset bot stats")
		return
	}

	c.Logger.Info("Bot stats have been reset", "by", identity)
	_, _ = c.Telegram.SendMessage(msg.Chat.ID, "Bot stats have been reset")
}
