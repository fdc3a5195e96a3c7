package telegramimpl

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/mediarelay/twitter-media-telegram-bot/internal/telegram"
	"github.com/mediarelay/twitter-media-telegram-bot/pkg/config"
	"github.com/mediarelay/twitter-media-telegram-bot/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
}

type TelegramImpl struct {
	TgBot  *tgbotapi.BotAPI
	Logger logger.Logger
	Config *config.Config
}

func New(opts Opts) (*TelegramImpl, error) {
	tgBot, err := tgbotapi.NewBotAPI(opts.Config.Telegram.Token)
	if err != nil {
		opts.Logger.Error("Error creating bot", "Error", err)
		return nil, err
	}

	return &TelegramImpl{
		TgBot:  tgBot,
		Logger: opts.Logger.WithComponent("Telegram"),
		Config: opts.Config,
	}, nil
}

var _ telegram.Client = (*TelegramImpl)(nil)

func (tg *TelegramImpl) GetUpdatesChan(u tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return tg.TgBot.GetUpdatesChan(u)
}

func (tg *TelegramImpl) StopReceivingUpdates() {
	tg.TgBot.StopReceivingUpdates()
}

// SetupCommands registers the command menu. Usage commands are visible to
// everyone unless the bot is private; stats commands only to the developer.
func (tg *TelegramImpl) SetupCommands(private bool) error {
	publicCommands := []tgbotapi.BotCommand{
		{Command: "start", Description: "Start the bot"},
		{Command: "help", Description: "Help message"},
	}
	devCommands := append(publicCommands,
		tgbotapi.BotCommand{Command: "stats", Description: "Get bot statistics"},
		tgbotapi.BotCommand{Command: "resetstats", Description: "Reset bot statistics"},
	)

	if !private {
		if _, err := tg.TgBot.Request(tgbotapi.NewSetMyCommands(publicCommands...)); err != nil {
			return err
		}
	}

	devScope := tgbotapi.NewBotCommandScopeChat(tg.Config.Telegram.DeveloperID)
	if _, err := tg.TgBot.Request(tgbotapi.NewSetMyCommandsWithScope(devScope, devCommands...)); err != nil {
		// Not fatal: the bot works without a menu in the developer chat.
		tg.Logger.Warn("Couldn't set commands for developer chat", "error", err)
	}
	return nil
}
