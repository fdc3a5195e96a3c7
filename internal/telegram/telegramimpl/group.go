package telegramimpl

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/mediarelay/twitter-media-telegram-bot/internal/batcher"
	"github.com/mediarelay/twitter-media-telegram-bot/internal/domain"
)

// telegramMaxGroupSize is the Bot API limit on sendMediaGroup.
const telegramMaxGroupSize = 10

func (tg *TelegramImpl) MaxGroupSize() int { return telegramMaxGroupSize }

// Telegram albums may mix photos and videos. Animations cannot join an
// album at all, which the batcher handles via single delivery.
func (tg *TelegramImpl) SupportsMixedKindGroups() bool { return true }

// SendGroup submits one delivery group in a single outbound call. Readers
// are always closed, sent or not.
func (tg *TelegramImpl) SendGroup(ctx context.Context, dest batcher.Destination, items []batcher.Item) error {
	defer func() {
		for _, item := range items {
			_ = item.Data.Close()
		}
	}()

	if len(items) == 0 {
		return nil
	}

	var err error
	if len(items) == 1 {
		err = tg.sendSingle(dest, items[0])
	} else {
		err = tg.sendAlbum(dest, items)
	}
	if err != nil {
		tg.Logger.Error("Error sending media group",
			"chatID", dest.ChatID,
			"items", len(items),
			"error", err)
		return fmt.Errorf("%w: %v", batcher.ErrChannelRejected, err)
	}

	tg.Logger.Info("Sent media group", "chatID", dest.ChatID, "items", len(items))
	return nil
}

func (tg *TelegramImpl) sendSingle(dest batcher.Destination, item batcher.Item) error {
	file := tgbotapi.FileReader{Name: item.Name, Reader: item.Data}

	switch item.Kind {
	case domain.KindImage:
		msg := tgbotapi.NewPhoto(dest.ChatID, file)
		msg.Caption = item.Caption
		msg.ReplyToMessageID = dest.ReplyTo
		_, err := tg.TgBot.Send(msg)
		return err
	case domain.KindLoopedVideo:
		msg := tgbotapi.NewAnimation(dest.ChatID, file)
		msg.Caption = item.Caption
		msg.ReplyToMessageID = dest.ReplyTo
		_, err := tg.TgBot.Send(msg)
		return err
	case domain.KindVideo:
		msg := tgbotapi.NewVideo(dest.ChatID, file)
		msg.Caption = item.Caption
		msg.ReplyToMessageID = dest.ReplyTo
		msg.SupportsStreaming = true
		_, err := tg.TgBot.Send(msg)
		return err
	default:
		return fmt.Errorf("unsupported media kind: %s", item.Kind)
	}
}

func (tg *TelegramImpl) sendAlbum(dest batcher.Destination, items []batcher.Item) error {
	media := make([]interface{}, 0, len(items))
	for _, item := range items {
		file := tgbotapi.FileReader{Name: item.Name, Reader: item.Data}

		switch item.Kind {
		case domain.KindVideo:
			video := tgbotapi.NewInputMediaVideo(file)
			video.Caption = item.Caption
			media = append(media, video)
		default:
			photo := tgbotapi.NewInputMediaPhoto(file)
			photo.Caption = item.Caption
			media = append(media, photo)
		}
	}

	group := tgbotapi.NewMediaGroup(dest.ChatID, media)
	group.ReplyToMessageID = dest.ReplyTo
	_, err := tg.TgBot.SendMediaGroup(group)
	return err
}
