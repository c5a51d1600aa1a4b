package telegram

import (
	"context"
	"fmt"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog"

	"github.com/Conte777/forcesub-bot/internal/domain/forcesub/consts"
	"github.com/Conte777/forcesub-bot/internal/infrastructure/telegram"
)

// Router registers Telegram bot handlers
type Router struct {
	handlers *Handlers
	logger   zerolog.Logger
}

// NewRouter creates new Telegram router
func NewRouter(handlers *Handlers, logger zerolog.Logger) *Router {
	return &Router{
		handlers: handlers,
		logger:   logger.With().Str("component", "router").Logger(),
	}
}

// RegisterRoutes registers command and callback handlers. Everything else goes to the gate.
func (r *Router) RegisterRoutes(bot *telegram.Bot) {
	raw := bot.Raw()

	r.command(raw, consts.CommandStart, r.handlers.HandleStart)
	r.command(raw, consts.CommandHelp, r.handlers.HandleHelp)
	r.command(raw, consts.CommandAdd, r.handlers.HandleAdd)
	r.command(raw, consts.CommandAddPrivate, r.handlers.HandleAddPrivate)
	r.command(raw, consts.CommandRemove, r.handlers.HandleRemove)
	r.command(raw, consts.CommandList, r.handlers.HandleList)
	r.command(raw, consts.CommandClear, r.handlers.HandleClear)
	r.command(raw, consts.CommandGroups, r.handlers.HandleGroups)

	raw.RegisterHandler(tgbot.HandlerTypeCallbackQueryData, consts.VerifyCallbackPrefix, tgbot.MatchTypePrefix, r.handlers.HandleCallback)

	bot.SetFallback(r.handlers.HandleMessage)

	r.logger.Info().Int("commands", len(consts.AllCommands)).Msg("All Telegram handlers registered successfully")
}

// RegisterCommands publishes the command menu
func (r *Router) RegisterCommands(ctx context.Context, bot *telegram.Bot) error {
	commands := make([]models.BotCommand, 0, len(consts.AllCommands))
	for _, cmd := range consts.AllCommands {
		commands = append(commands, models.BotCommand{
			Command:     cmd.Name,
			Description: cmd.Description,
		})
	}

	if _, err := bot.Raw().SetMyCommands(ctx, &tgbot.SetMyCommandsParams{Commands: commands}); err != nil {
		return fmt.Errorf("failed to set bot commands: %w", err)
	}

	return nil
}

// command registers a prefix route that only fires on the exact command name.
// "/startgame" must not reach /start; such messages go to the gate instead.
func (r *Router) command(bot *tgbot.Bot, cmd consts.Command, h tgbot.HandlerFunc) {
	bot.RegisterHandler(tgbot.HandlerTypeMessageText, "/"+cmd.Name, tgbot.MatchTypePrefix,
		func(ctx context.Context, b *tgbot.Bot, update *models.Update) {
			if name, _ := parseCommand(update.Message.Text); name != cmd.Name {
				r.handlers.HandleMessage(ctx, b, update)
				return
			}
			h(ctx, b, update)
		})
}
