package telegram

import (
	"strings"

	"github.com/go-telegram/bot/models"

	"github.com/Conte777/forcesub-bot/internal/domain/forcesub/dto"
)

// toGroupMessage converts an inbound message for the gate.
// A message posted as a chat carries the chat instead of a user sender.
func toGroupMessage(msg *models.Message) *dto.GroupMessage {
	gm := &dto.GroupMessage{
		ChatID:    msg.Chat.ID,
		ChatTitle: msg.Chat.Title,
		IsGroup:   isGroupChat(msg.Chat),
		MessageID: msg.ID,
		IsCommand: isBotCommand(msg),
		HasBody:   hasBody(msg),
	}

	switch {
	case msg.SenderChat != nil:
		if msg.SenderChat.ID == msg.Chat.ID || msg.IsAutomaticForward {
			gm.GroupAuthored = true
			break
		}
		gm.SenderChatID = msg.SenderChat.ID
		gm.SenderName = msg.SenderChat.Title
	case msg.From != nil:
		gm.SenderID = msg.From.ID
		gm.SenderIsBot = msg.From.IsBot
		gm.SenderName = displayName(msg.From)
	}

	return gm
}

// isBotCommand reports whether the text starts with a bot_command entity
func isBotCommand(msg *models.Message) bool {
	for _, entity := range msg.Entities {
		if entity.Type == models.MessageEntityTypeBotCommand && entity.Offset == 0 {
			return true
		}
	}
	return false
}

// toVerifyRequest converts a re-verify button press
func toVerifyRequest(query *models.CallbackQuery) *dto.VerifyRequest {
	req := &dto.VerifyRequest{
		CallbackID: query.ID,
		InvokerID:  query.From.ID,
		Payload:    query.Data,
	}

	switch {
	case query.Message.Message != nil:
		req.HostChatID = query.Message.Message.Chat.ID
		req.HostMessageID = query.Message.Message.ID
	case query.Message.InaccessibleMessage != nil:
		req.HostChatID = query.Message.InaccessibleMessage.Chat.ID
		req.HostMessageID = query.Message.InaccessibleMessage.MessageID
	}

	return req
}

func isGroupChat(chat models.Chat) bool {
	return chat.Type == models.ChatTypeGroup || chat.Type == models.ChatTypeSupergroup
}

// groupChatID returns the chat id for groups and 0 otherwise
func groupChatID(chat models.Chat) int64 {
	if isGroupChat(chat) {
		return chat.ID
	}
	return 0
}

// hasBody reports whether the message carries user content rather than a service event
func hasBody(msg *models.Message) bool {
	switch {
	case msg.Text != "", msg.Caption != "":
		return true
	case len(msg.Photo) > 0:
		return true
	case msg.Video != nil, msg.Document != nil, msg.Animation != nil, msg.Sticker != nil:
		return true
	case msg.Audio != nil, msg.Voice != nil, msg.VideoNote != nil:
		return true
	case msg.Poll != nil, msg.Contact != nil, msg.Location != nil, msg.Venue != nil, msg.Dice != nil:
		return true
	default:
		return false
	}
}

func displayName(user *models.User) string {
	name := strings.TrimSpace(user.FirstName + " " + user.LastName)
	if name == "" {
		name = user.Username
	}
	return name
}

// parseCommand splits "/cmd@bot arg1 arg2" into "cmd" and its arguments
func parseCommand(text string) (string, []string) {
	fields := strings.Fields(text)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") {
		return "", nil
	}

	name := strings.TrimPrefix(fields[0], "/")
	name, _, _ = strings.Cut(name, "@")

	return strings.ToLower(name), fields[1:]
}
