package commandimpl

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/mediarelay/twitter-media-telegram-bot/internal/batcher"
	"github.com/mediarelay/twitter-media-telegram-bot/internal/command"
	"github.com/mediarelay/twitter-media-telegram-bot/internal/ratelimit"
	"github.com/mediarelay/twitter-media-telegram-bot/internal/resolver"
	"github.com/mediarelay/twitter-media-telegram-bot/internal/stats"
	"github.com/mediarelay/twitter-media-telegram-bot/internal/telegram"
	"github.com/mediarelay/twitter-media-telegram-bot/pkg/config"
	"github.com/mediarelay/twitter-media-telegram-bot/pkg/logger"
	"github.com/panjf2000/ants/v2"
	"go.uber.org/fx"
)

// handlerPoolSize bounds how many chat messages are processed at once.
const handlerPoolSize = 8

// handleTimeout bounds one message's resolution and delivery.
const handleTimeout = 5 * time.Minute

type Opts struct {
	fx.In

	Resolver resolver.Client
	Batcher  batcher.Client
	Telegram telegram.Client
	Stats    stats.Client
	Logger   logger.Logger
	Config   *config.Config
}

type CommandImpl struct {
	Resolver resolver.Client
	Batcher  batcher.Client
	Telegram telegram.Client
	Stats    stats.Client
	Logger   logger.Logger
	Config   *config.Config

	limiter ratelimit.Limiter
}

func New(opts Opts) *CommandImpl {
	return &CommandImpl{
		Resolver: opts.Resolver,
		Batcher:  opts.Batcher,
		Telegram: opts.Telegram,
		Stats:    opts.Stats,
		Logger:   opts.Logger.WithComponent("Command"),
		Config:   opts.Config,
		limiter:  ratelimit.NewInMemoryLimiter(1, 5*time.Second, 3),
	}
}

var _ command.Client = (*CommandImpl)(nil)

func (c *CommandImpl) HandleUpdates(ctx context.Context) error {
	if err := c.Telegram.SetupCommands(c.Config.Telegram.Private); err != nil {
		c.Logger.Warn("Failed to set up command menu", "error", err)
	}

	pool, err := ants.NewPool(handlerPoolSize, ants.WithPreAlloc(true))
	if err != nil {
		return fmt.Errorf("failed to create handler pool: %w", err)
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := c.Telegram.GetUpdatesChan(u)

	go func() {
		<-ctx.Done()
		c.Telegram.StopReceivingUpdates()
		pool.Release()
	}()

	for update := range updates {
		if update.Message == nil || update.Message.From == nil {
			continue
		}

		if err := pool.Submit(func() {
			c.safeDispatch(ctx, update)
		}); err != nil {
			c.Logger.Error("Failed to submit update to pool", "error", err)
		}
	}

	return nil
}

// safeDispatch isolates one update so a panic never takes the loop down.
// Panics are reported to the developer chat with the stack attached.
func (c *CommandImpl) safeDispatch(ctx context.Context, update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			c.Logger.Error("Panic while handling update",
				"chatID", update.Message.Chat.ID, "panic", r)
			c.Telegram.SendErrorReport(fmt.Sprintf("panic: %v\n\n%s", r, debug.Stack()))
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, handleTimeout)
	defer cancel()

	c.dispatch(ctx, update)
}

func (c *CommandImpl) dispatch(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	fromDeveloper := msg.Chat.ID == c.Config.Telegram.DeveloperID

	if c.Config.Telegram.Private && !fromDeveloper {
		c.denyAccess(msg)
		return
	}

	if msg.IsCommand() {
		switch msg.Command() {
		case "start":
			c.handleStart(msg)
		case "help":
			c.handleHelp(msg)
		case "stats":
			if fromDeveloper {
				c.handleStats(msg)
			}
		case "resetstats":
			c.handleResetStats(ctx, msg)
		}
		return
	}

	if msg.Text == "" {
		return
	}

	if !c.limiter.Allow(msg.From.ID) {
		c.Logger.Info("Rate limited", "userID", msg.From.ID)
		_, _ = c.Telegram.ReplyMessage(msg.Chat.ID, msg.MessageID,
			"Slow down a little, try again in a few seconds.")
		return
	}

	c.handleMessage(ctx, msg)
}
