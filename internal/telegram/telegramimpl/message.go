package telegramimpl

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	apperrors "github.com/mediarelay/twitter-media-telegram-bot/pkg/errors"
)

// SendMessage sends a text message to a specific chat ID
func (tg *TelegramImpl) SendMessage(chatID int64, text string) (int, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	sentMsg, err := tg.TgBot.Send(msg)
	if err != nil {
		tg.Logger.Error("Error sending message",
			"chatID", chatID,
			"error", err)
		return 0, apperrors.Wrap(err, "failed to send message")
	}
	return sentMsg.MessageID, nil
}

// SendMarkdownMessage sends a MarkdownV2-formatted message. Callers escape
// any user-provided fragments with formatter.EscapeMarkdownV2.
func (tg *TelegramImpl) SendMarkdownMessage(chatID int64, text string) (int, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	sentMsg, err := tg.TgBot.Send(msg)
	if err != nil {
		tg.Logger.Error("Error sending markdown message",
			"chatID", chatID,
			"error", err)
		return 0, apperrors.Wrap(err, "failed to send markdown message")
	}
	return sentMsg.MessageID, nil
}

// ReplyMessage sends a text message quoting an earlier message in the chat.
func (tg *TelegramImpl) ReplyMessage(chatID int64, replyTo int, text string) (int, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyToMessageID = replyTo
	sentMsg, err := tg.TgBot.Send(msg)
	if err != nil {
		tg.Logger.Error("Error sending reply",
			"chatID", chatID,
			"replyTo", replyTo,
			"error", err)
		return 0, apperrors.Wrap(err, "failed to send reply")
	}
	return sentMsg.MessageID, nil
}

// SendMessageToDeveloper sends a text message to the configured developer chat
func (tg *TelegramImpl) SendMessageToDeveloper(text string) {
	msg := tgbotapi.NewMessage(tg.Config.Telegram.DeveloperID, text)
	if _, err := tg.TgBot.Send(msg); err != nil {
		tg.Logger.Error("Error sending message to developer",
			"developerID", tg.Config.Telegram.DeveloperID,
			"error", err)
	}
}

// SendErrorReport uploads a runtime error report to the developer chat as a
// text document, so long tracebacks don't hit the message length cap.
func (tg *TelegramImpl) SendErrorReport(report string) {
	doc := tgbotapi.NewDocument(tg.Config.Telegram.DeveloperID, tgbotapi.FileBytes{
		Name:  "error_report.txt",
		Bytes: []byte(report),
	})
	doc.Caption = "#error_report\nAn exception was raised during runtime"

	if _, err := tg.TgBot.Send(doc); err != nil {
		tg.Logger.Error("Error sending error report to developer",
			"developerID", tg.Config.Telegram.DeveloperID,
			"error", err)
	}
}
