package commandimpl

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (c *CommandImpl) handleStart(msg *tgbotapi.Message) {
	c.Logger.Info("Received /start command", "userID", msg.From.ID)
	_, _ = c.Telegram.SendMessage(msg.Chat.ID, fmt.Sprintf(
		"Hi %s!\nSend a tweet link here and I will download its media in the best available quality for you",
		msg.From.FirstName))
}

func (c *CommandImpl) handleHelp(msg *tgbotapi.Message) {
	_, _ = c.Telegram.SendMessage(msg.Chat.ID,
		"Send a tweet link here and I will download its media in the best available quality for you")
}

func (c *CommandImpl) denyAccess(msg *tgbotapi.Message) {
	c.Logger.Info("Access denied",
		"userID", msg.From.ID, "userName", msg.From.UserName)
	_, _ = c.Telegram.SendMessage(msg.Chat.ID,
		fmt.Sprintf("Access denied. Your id (%d) is not whitelisted", msg.From.ID))
}
