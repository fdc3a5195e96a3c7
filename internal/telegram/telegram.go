package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/mediarelay/twitter-media-telegram-bot/internal/batcher"
)

type Client interface {
	GetUpdatesChan(u tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
	SetupCommands(private bool) error

	SendMessage(chatID int64, text string) (int, error)
	SendMarkdownMessage(chatID int64, text string) (int, error)
	ReplyMessage(chatID int64, replyTo int, text string) (int, error)
	SendMessageToDeveloper(text string)
	SendErrorReport(report string)

	// The outbound-channel surface the delivery batcher drives.
	MaxGroupSize() int
	SupportsMixedKindGroups() bool
	SendGroup(ctx context.Context, dest batcher.Destination, items []batcher.Item) error
}
