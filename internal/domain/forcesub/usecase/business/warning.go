package business

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/Conte777/forcesub-bot/internal/domain/forcesub/consts"
	"github.com/Conte777/forcesub-bot/internal/domain/forcesub/entities"
	fserrors "github.com/Conte777/forcesub-bot/internal/domain/forcesub/errors"
)

// Button labels
const (
	joinButtonPrefix = "👉 Join "
	verifyButtonText = "✅ I've Joined - Verify"
)

// VerifyPayload builds the callback data of the re-verify button
func VerifyPayload(groupID int64) string {
	return consts.VerifyCallbackPrefix + strconv.FormatInt(groupID, 10)
}

// ParseVerifyPayload extracts the group id from re-verify callback data
func ParseVerifyPayload(payload string) (int64, error) {
	raw, ok := strings.CutPrefix(payload, consts.VerifyCallbackPrefix)
	if !ok || raw == "" {
		return 0, fserrors.ErrInvalidPayload
	}

	groupID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || groupID == 0 {
		return 0, fserrors.ErrInvalidPayload
	}

	return groupID, nil
}

// composeWarning builds the HTML warning for a denied message
func composeWarning(msg *senderRef, decision entities.Decision) *entities.Warning {
	var text strings.Builder

	fmt.Fprintf(&text, "⚠️ <b>Hey %s!</b>\n\n", msg.mention())

	if decision.Degraded {
		text.WriteString("Your message was removed because channel verification is temporarily unavailable.\n\n")
		text.WriteString("👇 Try again in a moment with the button below.")
	} else {
		text.WriteString("You must join the following channel(s) to send messages here:\n\n")
		for i, req := range decision.Missing {
			fmt.Fprintf(&text, "%d. <b>%s</b>\n", i+1, html.EscapeString(req.DisplayTitle()))
		}
		text.WriteString("\n👇 Click buttons below to join, then click verify!")
	}

	buttons := make([]entities.Button, 0, len(decision.Missing)+1)
	for _, req := range decision.Missing {
		buttons = append(buttons, entities.Button{
			Text: joinButtonPrefix + req.DisplayTitle(),
			URL:  req.JoinLink,
		})
	}
	buttons = append(buttons, entities.Button{
		Text:         verifyButtonText,
		CallbackData: VerifyPayload(msg.chatID),
	})

	return &entities.Warning{
		ChatID:  msg.chatID,
		Text:    text.String(),
		Buttons: buttons,
	}
}

// senderRef identifies the author of a gated message
type senderRef struct {
	chatID int64
	userID int64
	name   string
}

// mention returns an HTML link to the user, or the bare name for a channel sender
func (s *senderRef) mention() string {
	name := strings.TrimSpace(s.name)
	if name == "" {
		name = "there"
	}
	if s.userID == 0 {
		return html.EscapeString(name)
	}
	return fmt.Sprintf(`<a href="tg://user?id=%d">%s</a>`, s.userID, html.EscapeString(name))
}
