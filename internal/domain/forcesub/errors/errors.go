// Package errors contains domain-specific errors for the forcesub domain
package errors

import (
	pkgerrors "github.com/Conte777/forcesub-bot/pkg/errors"
)

// Domain errors for gate operations
var (
	ErrInvalidGroupID      = pkgerrors.NewValidationError("group id must be a non-zero chat id")
	ErrInvalidChannelID    = pkgerrors.NewValidationError("channel id must be a non-zero chat id")
	ErrEmptyJoinLink       = pkgerrors.NewValidationError("join link must not be empty")
	ErrInvalidJoinLink     = pkgerrors.NewValidationError("join link must be a t.me link")
	ErrPrivateLinkNeedsID  = pkgerrors.NewValidationError("private invite links need the channel id")
	ErrInvalidPayload      = pkgerrors.NewValidationError("invalid verification payload")
	ErrNotGroupChat        = pkgerrors.NewValidationError("command must be used in a group")
	ErrRequirementNotFound = pkgerrors.NewNotFoundError("requirement not found")
	ErrChannelNotFound     = pkgerrors.NewNotFoundError("channel not accessible")
	ErrNotAdmin            = pkgerrors.NewPermissionError("only group admins can use this command")
	ErrNotSuperuser        = pkgerrors.NewPermissionError("only the bot owner can use this command")
	ErrBotNotAdmin         = pkgerrors.NewPermissionError("bot is not an admin in the channel")
	ErrBotRoleUnknown      = pkgerrors.NewUnavailableError("cannot check bot permissions in the channel")
	ErrRegistryUnavailable = pkgerrors.NewUnavailableError("requirement registry unavailable")
	ErrTelegramAPI         = pkgerrors.NewUnavailableError("telegram API error")
)
