package telegram

import (
	"context"
	"strconv"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog"

	"github.com/Conte777/forcesub-bot/internal/domain/forcesub/consts"
	"github.com/Conte777/forcesub-bot/internal/domain/forcesub/dto"
	"github.com/Conte777/forcesub-bot/internal/domain/forcesub/usecase/business"
	"github.com/Conte777/forcesub-bot/internal/domain/forcesub/workers"
)

// warningCanceler drops a scheduled warning deletion
type warningCanceler interface {
	Cancel(chatID int64, messageID int)
}

// Handlers contains Telegram update handlers
type Handlers struct {
	gate     *business.Gate
	verifier *business.Verifier
	admin    *business.Admin
	sender   *Sender
	expirer  warningCanceler
	logger   zerolog.Logger
}

// NewHandlers creates new Telegram handlers
func NewHandlers(
	gate *business.Gate,
	verifier *business.Verifier,
	admin *business.Admin,
	sender *Sender,
	expirer *workers.Expirer,
	logger zerolog.Logger,
) *Handlers {
	return newHandlers(gate, verifier, admin, sender, expirer, logger.With().Str("component", "handlers").Logger())
}

func newHandlers(
	gate *business.Gate,
	verifier *business.Verifier,
	admin *business.Admin,
	sender *Sender,
	expirer warningCanceler,
	logger zerolog.Logger,
) *Handlers {
	return &Handlers{
		gate:     gate,
		verifier: verifier,
		admin:    admin,
		sender:   sender,
		expirer:  expirer,
		logger:   logger,
	}
}

// HandleMessage runs every non-command update through the gate
func (h *Handlers) HandleMessage(ctx context.Context, _ *tgbot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	h.gate.Handle(ctx, toGroupMessage(update.Message))
}

// HandleCallback handles re-verify button presses
func (h *Handlers) HandleCallback(ctx context.Context, _ *tgbot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}

	req := toVerifyRequest(update.CallbackQuery)
	resp := h.verifier.Verify(ctx, req)

	if err := h.sender.AnswerCallback(ctx, req.CallbackID, resp.Text); err != nil {
		h.logger.Warn().
			Err(err).
			Int64("user_id", req.InvokerID).
			Msg("Failed to answer callback")
	}

	if !resp.DeleteWarning || req.HostMessageID == 0 {
		return
	}

	h.expirer.Cancel(req.HostChatID, req.HostMessageID)

	if err := h.sender.DeleteMessage(ctx, req.HostChatID, req.HostMessageID); err != nil {
		h.logger.Debug().
			Err(err).
			Int64("chat_id", req.HostChatID).
			Int("message_id", req.HostMessageID).
			Msg("Failed to delete verified warning")
	}
}

// HandleStart handles /start command
func (h *Handlers) HandleStart(ctx context.Context, _ *tgbot.Bot, update *models.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}

	h.logCommand(msg.From.ID, consts.CommandStart.Name, "processing")

	if msg.Chat.Type == models.ChatTypePrivate {
		h.reply(ctx, msg, startText(displayName(msg.From)))
	} else {
		h.reply(ctx, msg, textActive)
	}

	h.logCommand(msg.From.ID, consts.CommandStart.Name, "success")
}

// HandleHelp handles /help command
func (h *Handlers) HandleHelp(ctx context.Context, _ *tgbot.Bot, update *models.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}

	h.reply(ctx, msg, textHelp)
	h.logCommand(msg.From.ID, consts.CommandHelp.Name, "success")
}

// HandleAdd handles /addforcesub command
func (h *Handlers) HandleAdd(ctx context.Context, _ *tgbot.Bot, update *models.Update) {
	h.handleAdd(ctx, update, consts.CommandAdd.Name, 1, textAddUsage)
}

// HandleAddPrivate handles /addprivateforcesub command
func (h *Handlers) HandleAddPrivate(ctx context.Context, _ *tgbot.Bot, update *models.Update) {
	h.handleAdd(ctx, update, consts.CommandAddPrivate.Name, 2, textAddPrivateUsage)
}

func (h *Handlers) handleAdd(ctx context.Context, update *models.Update, command string, minArgs int, usage string) {
	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}

	_, args := parseCommand(msg.Text)
	groupID := groupChatID(msg.Chat)

	h.logCommand(msg.From.ID, command, "processing")

	if len(args) < minArgs {
		h.replyUsage(ctx, msg, command, groupID, usage)
		return
	}

	req := &dto.AddRequirementRequest{
		GroupID:    groupID,
		GroupTitle: msg.Chat.Title,
		AdminID:    msg.From.ID,
		ChannelRef: args[0],
	}
	if len(args) > 1 {
		req.JoinLink = args[1]
	}

	resp, err := h.admin.AddRequirement(ctx, req)
	if err != nil {
		h.logError(msg.From.ID, command, err)
		h.reply(ctx, msg, errorText(err))
		return
	}

	h.reply(ctx, msg, formatAdded(resp))
	h.logCommand(msg.From.ID, command, "success")
}

// HandleRemove handles /removeforcesub command
func (h *Handlers) HandleRemove(ctx context.Context, _ *tgbot.Bot, update *models.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}

	command := consts.CommandRemove.Name
	_, args := parseCommand(msg.Text)
	groupID := groupChatID(msg.Chat)

	h.logCommand(msg.From.ID, command, "processing")

	if len(args) == 0 {
		h.replyRemoveHint(ctx, msg, groupID)
		return
	}

	// Unparsable ids are rejected by the use case after authorization
	channelID, _ := strconv.ParseInt(args[0], 10, 64)

	err := h.admin.RemoveRequirement(ctx, &dto.RemoveRequirementRequest{
		GroupID:   groupID,
		AdminID:   msg.From.ID,
		ChannelID: channelID,
	})
	if err != nil {
		h.logError(msg.From.ID, command, err)
		h.reply(ctx, msg, errorText(err))
		return
	}

	h.reply(ctx, msg, "✅ Channel removed from force subscribe!")
	h.logCommand(msg.From.ID, command, "success")
}

// HandleList handles /listforcesub command
func (h *Handlers) HandleList(ctx context.Context, _ *tgbot.Bot, update *models.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}

	command := consts.CommandList.Name
	h.logCommand(msg.From.ID, command, "processing")

	resp, err := h.admin.ListRequirements(ctx, groupChatID(msg.Chat))
	if err != nil {
		h.logError(msg.From.ID, command, err)
		h.reply(ctx, msg, errorText(err))
		return
	}

	h.reply(ctx, msg, formatRequirements(msg.Chat.Title, resp))
	h.logCommand(msg.From.ID, command, "success")
}

// HandleClear handles /clearforcesub command
func (h *Handlers) HandleClear(ctx context.Context, _ *tgbot.Bot, update *models.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}

	command := consts.CommandClear.Name
	h.logCommand(msg.From.ID, command, "processing")

	resp, err := h.admin.ClearRequirements(ctx, &dto.GroupRequest{
		GroupID: groupChatID(msg.Chat),
		UserID:  msg.From.ID,
	})
	if err != nil {
		h.logError(msg.From.ID, command, err)
		h.reply(ctx, msg, errorText(err))
		return
	}

	h.reply(ctx, msg, formatCleared(resp))
	h.logCommand(msg.From.ID, command, "success")
}

// HandleGroups handles /groups command
func (h *Handlers) HandleGroups(ctx context.Context, _ *tgbot.Bot, update *models.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}

	command := consts.CommandGroups.Name
	h.logCommand(msg.From.ID, command, "processing")

	if msg.Chat.Type != models.ChatTypePrivate {
		h.reply(ctx, msg, textPrivateOnly)
		return
	}

	resp, err := h.admin.Groups(ctx, msg.From.ID)
	if err != nil {
		h.logError(msg.From.ID, command, err)
		h.reply(ctx, msg, errorText(err))
		return
	}

	h.reply(ctx, msg, formatGroups(resp))
	h.logCommand(msg.From.ID, command, "success")
}

// replyUsage shows the usage hint to admins only
func (h *Handlers) replyUsage(ctx context.Context, msg *models.Message, command string, groupID int64, usage string) {
	if groupID == 0 {
		h.reply(ctx, msg, textGroupOnly)
		return
	}

	if err := h.admin.Authorize(ctx, groupID, msg.From.ID); err != nil {
		h.logError(msg.From.ID, command, err)
		h.reply(ctx, msg, errorText(err))
		return
	}

	h.reply(ctx, msg, usage)
}

// replyRemoveHint lists current channel ids so the admin can pick one
func (h *Handlers) replyRemoveHint(ctx context.Context, msg *models.Message, groupID int64) {
	command := consts.CommandRemove.Name

	if groupID == 0 {
		h.reply(ctx, msg, textGroupOnly)
		return
	}

	if err := h.admin.Authorize(ctx, groupID, msg.From.ID); err != nil {
		h.logError(msg.From.ID, command, err)
		h.reply(ctx, msg, errorText(err))
		return
	}

	resp, err := h.admin.ListRequirements(ctx, groupID)
	if err != nil {
		h.logError(msg.From.ID, command, err)
		h.reply(ctx, msg, errorText(err))
		return
	}

	h.reply(ctx, msg, formatRemoveHint(resp))
}

func (h *Handlers) reply(ctx context.Context, msg *models.Message, text string) {
	if err := h.sender.Reply(ctx, msg.Chat.ID, msg.ID, text); err != nil {
		h.logger.Error().Int64("chat_id", msg.Chat.ID).Err(err).Msg("Failed to send Telegram response")
	}
}

// logCommand logs command processing
func (h *Handlers) logCommand(userID int64, command, result string) {
	h.logger.Info().Int64("user_id", userID).Str("command", command).Str("result", result).Msg("Telegram command processed")
}

// logError logs command errors
func (h *Handlers) logError(userID int64, command string, err error) {
	h.logger.Warn().Int64("user_id", userID).Str("command", command).Err(err).Msg("Telegram command failed")
}
