// Package deps contains interface definitions for the forcesub domain dependencies
package deps

import (
	"context"
	"time"

	"github.com/Conte777/forcesub-bot/internal/domain/forcesub/entities"
)

// RequirementRepository is the subscription registry
type RequirementRepository interface {
	// Upsert inserts a requirement or refreshes titles and link of an existing (group, channel) pair
	Upsert(ctx context.Context, req *entities.Requirement) error

	// Remove deletes one requirement, returning ErrRequirementNotFound if the pair did not exist
	Remove(ctx context.Context, groupID, channelID int64) error

	// List returns the group's requirements in insertion order, empty when none
	List(ctx context.Context, groupID int64) ([]entities.Requirement, error)

	// Clear deletes every requirement of the group and returns how many were removed
	Clear(ctx context.Context, groupID int64) (int64, error)

	// Groups returns every group that has at least one requirement
	Groups(ctx context.Context) ([]entities.GroupSummary, error)
}

// MembershipOracle queries a user's status in a channel.
// Any failure yields StatusUnknown.
type MembershipOracle interface {
	Status(ctx context.Context, channelID, userID int64) entities.MembershipStatus
}

// RoleChecker reports whether a user holds an elevated role in a chat.
// Any failure yields ExemptUnknown.
type RoleChecker interface {
	Exemption(ctx context.Context, chatID, userID int64) entities.Exemption
}

// ChannelResolver looks up channels for admin commands
type ChannelResolver interface {
	// ResolveChannel resolves "@username" or a numeric id
	ResolveChannel(ctx context.Context, ref string) (*entities.ChannelInfo, error)

	// BotRole returns the bot's own role in the channel
	BotRole(ctx context.Context, channelID int64) (entities.ChatRole, error)
}

// Messenger performs chat side effects
type Messenger interface {
	// SendWarning sends a warning and returns its message id
	SendWarning(ctx context.Context, warning *entities.Warning) (int, error)

	// DeleteMessage deletes a message from a chat
	DeleteMessage(ctx context.Context, chatID int64, messageID int) error
}

// Expirer schedules deferred deletion of a message
type Expirer interface {
	Schedule(chatID int64, messageID int, delay time.Duration)
}

// EventPublisher publishes gate events; failures never affect the gate
type EventPublisher interface {
	Publish(ctx context.Context, event *entities.GateEvent) error
}
