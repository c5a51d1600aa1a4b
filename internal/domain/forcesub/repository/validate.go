// Package repository contains shared helpers for requirement registry implementations
package repository

import (
	"strings"

	"github.com/Conte777/forcesub-bot/internal/domain/forcesub/entities"
	fserrors "github.com/Conte777/forcesub-bot/internal/domain/forcesub/errors"
)

// ValidateRequirement checks the registry invariants before any write
func ValidateRequirement(req *entities.Requirement) error {
	if req.GroupID == 0 {
		return fserrors.ErrInvalidGroupID
	}
	if req.ChannelID == 0 {
		return fserrors.ErrInvalidChannelID
	}
	if strings.TrimSpace(req.JoinLink) == "" {
		return fserrors.ErrEmptyJoinLink
	}
	return nil
}
