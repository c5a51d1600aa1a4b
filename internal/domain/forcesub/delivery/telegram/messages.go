package telegram

import (
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/Conte777/forcesub-bot/internal/domain/forcesub/dto"
	fserrors "github.com/Conte777/forcesub-bot/internal/domain/forcesub/errors"
)

const (
	textActive      = "✅ I'm active! Use /help for commands."
	textGroupOnly   = "⚠️ Use this command in a group!"
	textPrivateOnly = "⚠️ Use this command in a private chat with me!"
	textNotAdmin    = "❌ Only admins can use this command!"
	textNotOwner    = "❌ Only the bot owner can use this command!"
	textInternal    = "❌ Something went wrong. Please try again later."
	textNoChannels  = "📭 No force subscribe channels set!"

	textHelp = "📚 <b>Force Subscribe Bot Help</b>\n\n" +
		"<b>Setup Steps:</b>\n" +
		"1️⃣ Add bot to your GROUP as Admin\n" +
		"2️⃣ Add bot to your CHANNEL as Admin\n" +
		"3️⃣ Use <code>/addforcesub</code> in group\n\n" +
		"<b>Commands (Admin Only):</b>\n" +
		"• <code>/addforcesub &lt;channel_link&gt;</code> - Add channel\n" +
		"• <code>/addprivateforcesub &lt;channel_id&gt; &lt;invite_link&gt;</code> - Add private channel\n" +
		"• <code>/removeforcesub &lt;channel_id&gt;</code> - Remove channel\n" +
		"• <code>/listforcesub</code> - Show all channels\n" +
		"• <code>/clearforcesub</code> - Remove all\n\n" +
		"<b>Example:</b>\n" +
		"<code>/addforcesub https://t.me/yourchannel</code>"

	textAddUsage = "📝 <b>Usage:</b> <code>/addforcesub &lt;channel_link&gt;</code>\n\n" +
		"<b>Example:</b>\n" +
		"<code>/addforcesub https://t.me/yourchannel</code>\n" +
		"<code>/addforcesub -1001234567890 https://t.me/+ABC123xyz</code>"

	textAddPrivateUsage = "📝 <b>Usage:</b> <code>/addprivateforcesub &lt;channel_id&gt; &lt;invite_link&gt;</code>\n\n" +
		"<b>Example:</b>\n" +
		"<code>/addprivateforcesub -1001234567890 https://t.me/+ABC123</code>"

	textPrivateNeedsID = "📝 For private channels, use:\n" +
		"<code>/addforcesub &lt;channel_id&gt; &lt;invite_link&gt;</code>\n\n" +
		"Example:\n" +
		"<code>/addforcesub -1001234567890 https://t.me/+ABC123</code>\n\n" +
		"💡 Get channel ID by forwarding a message from channel to @userinfobot"

	textChannelNotFound = "❌ Cannot access channel!\n\n" +
		"Make sure:\n" +
		"1. Bot is admin in the channel\n" +
		"2. Link is correct\n" +
		"3. Channel exists"
)

func startText(name string) string {
	if name == "" {
		name = "there"
	}

	return fmt.Sprintf("👋 Hello %s!\n\n", html.EscapeString(name)) +
		"🤖 <b>I'm a Force Subscribe Bot</b>\n\n" +
		"📌 <b>My Features:</b>\n" +
		"• Force users to join channels before chatting\n" +
		"• Support multiple channels per group\n" +
		"• Easy admin management\n\n" +
		"📝 <b>Admin Commands:</b>\n" +
		"<code>/addforcesub</code> - Add force sub channel\n" +
		"<code>/removeforcesub</code> - Remove force sub channel\n" +
		"<code>/listforcesub</code> - List all channels\n" +
		"<code>/clearforcesub</code> - Remove all channels\n\n" +
		"➕ Add me to your group and make me admin!"
}

// errorText maps use case errors to a corrective reply
func errorText(err error) string {
	switch {
	case errors.Is(err, fserrors.ErrNotGroupChat):
		return textGroupOnly
	case errors.Is(err, fserrors.ErrNotAdmin):
		return textNotAdmin
	case errors.Is(err, fserrors.ErrNotSuperuser):
		return textNotOwner
	case errors.Is(err, fserrors.ErrPrivateLinkNeedsID):
		return textPrivateNeedsID
	case errors.Is(err, fserrors.ErrInvalidChannelID):
		return "❌ Invalid channel ID! Must be a number like <code>-1001234567890</code>."
	case errors.Is(err, fserrors.ErrInvalidJoinLink), errors.Is(err, fserrors.ErrEmptyJoinLink):
		return "❌ Invalid link format!\n\n" + textAddUsage
	case errors.Is(err, fserrors.ErrChannelNotFound):
		return textChannelNotFound
	case errors.Is(err, fserrors.ErrBotNotAdmin):
		return "❌ Make me admin in the channel first!"
	case errors.Is(err, fserrors.ErrBotRoleUnknown):
		return "❌ Cannot check bot permissions in channel!"
	case errors.Is(err, fserrors.ErrRequirementNotFound):
		return "❌ This channel is not in the force subscribe list!"
	case errors.Is(err, fserrors.ErrRegistryUnavailable):
		return "❌ Database error, nothing was changed. Please try again later."
	default:
		return textInternal
	}
}

func formatAdded(resp *dto.AddRequirementResponse) string {
	return fmt.Sprintf(
		"✅ <b>Force Subscribe Added!</b>\n\n"+
			"📌 Group: <code>%s</code>\n"+
			"📢 Channel: <code>%s</code>\n"+
			"🆔 ID: <code>%d</code>\n"+
			"🔗 Link: %s\n\n"+
			"Now users must join this channel to chat!",
		html.EscapeString(resp.GroupTitle),
		html.EscapeString(resp.ChannelTitle),
		resp.ChannelID,
		html.EscapeString(resp.JoinLink),
	)
}

func formatRequirements(groupTitle string, resp *dto.RequirementListResponse) string {
	if len(resp.Requirements) == 0 {
		return "📭 <b>No Force Subscribe Channels</b>\n\nUse <code>/addforcesub</code> to add channels!"
	}

	var result strings.Builder
	result.WriteString("📋 <b>Force Subscribe Channels</b>\n")
	result.WriteString(fmt.Sprintf("👥 Group: <code>%s</code>\n\n", html.EscapeString(groupTitle)))

	for i, item := range resp.Requirements {
		result.WriteString(fmt.Sprintf("<b>%d.</b> %s\n", i+1, html.EscapeString(item.ChannelTitle)))
		result.WriteString(fmt.Sprintf("   🆔 <code>%d</code>\n", item.ChannelID))
		result.WriteString(fmt.Sprintf("   🔗 %s\n", html.EscapeString(item.JoinLink)))
	}

	return result.String()
}

func formatRemoveHint(resp *dto.RequirementListResponse) string {
	if len(resp.Requirements) == 0 {
		return textNoChannels
	}

	var result strings.Builder
	result.WriteString("📝 <b>To remove, use:</b>\n<code>/removeforcesub &lt;channel_id&gt;</code>\n\n<b>Current Channels:</b>\n")

	for _, item := range resp.Requirements {
		result.WriteString(fmt.Sprintf("• <code>%d</code> - %s\n", item.ChannelID, html.EscapeString(item.ChannelTitle)))
	}

	return result.String()
}

func formatCleared(resp *dto.ClearResponse) string {
	if resp.Removed == 0 {
		return textNoChannels
	}
	return fmt.Sprintf("✅ Removed %d channel(s) from force subscribe!", resp.Removed)
}

func formatGroups(resp *dto.GroupsResponse) string {
	if len(resp.Groups) == 0 {
		return "📭 No groups use force subscribe yet."
	}

	var result strings.Builder
	result.WriteString(fmt.Sprintf("📊 <b>Gated Groups:</b> %d\n\n", len(resp.Groups)))

	for _, group := range resp.Groups {
		title := group.GroupTitle
		if title == "" {
			title = "Unknown"
		}
		result.WriteString(fmt.Sprintf("• <code>%d</code> %s - %d channel(s)\n",
			group.GroupID, html.EscapeString(title), group.Requirements))
	}

	return result.String()
}
