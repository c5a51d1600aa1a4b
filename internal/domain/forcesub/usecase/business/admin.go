package business

import (
	"context"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Conte777/forcesub-bot/config"
	"github.com/Conte777/forcesub-bot/internal/domain/forcesub/consts"
	"github.com/Conte777/forcesub-bot/internal/domain/forcesub/deps"
	"github.com/Conte777/forcesub-bot/internal/domain/forcesub/dto"
	"github.com/Conte777/forcesub-bot/internal/domain/forcesub/entities"
	fserrors "github.com/Conte777/forcesub-bot/internal/domain/forcesub/errors"
	"github.com/Conte777/forcesub-bot/internal/infrastructure/metrics"
	pkgerrors "github.com/Conte777/forcesub-bot/pkg/errors"
)

// Admin implements the requirement management commands
type Admin struct {
	repo      deps.RequirementRepository
	resolver  deps.ChannelResolver
	roles     deps.RoleChecker
	publisher deps.EventPublisher
	cfg       *config.GateConfig
	metrics   *metrics.Metrics
	logger    zerolog.Logger
}

// NewAdmin creates a new admin use case
func NewAdmin(
	repo deps.RequirementRepository,
	resolver deps.ChannelResolver,
	roles deps.RoleChecker,
	publisher deps.EventPublisher,
	cfg *config.GateConfig,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *Admin {
	return &Admin{
		repo:      repo,
		resolver:  resolver,
		roles:     roles,
		publisher: publisher,
		cfg:       cfg,
		metrics:   m,
		logger:    logger.With().Str("component", "admin").Logger(),
	}
}

// Authorize allows bot owners and group owners or administrators.
// A failed role lookup denies.
func (a *Admin) Authorize(ctx context.Context, groupID, userID int64) error {
	if a.cfg.IsSuperuser(userID) {
		return nil
	}

	switch a.roles.Exemption(ctx, groupID, userID) {
	case entities.Exempt:
		return nil
	case entities.ExemptUnknown:
		a.logger.Warn().
			Int64("group_id", groupID).
			Int64("user_id", userID).
			Msg("Cannot verify admin role, denying command")
	}

	return fserrors.ErrNotAdmin
}

// AddRequirement validates the target channel and stores it for the group
func (a *Admin) AddRequirement(ctx context.Context, req *dto.AddRequirementRequest) (*dto.AddRequirementResponse, error) {
	resp, err := a.addRequirement(ctx, req)
	a.record(consts.CommandAdd.Name, err)
	return resp, err
}

func (a *Admin) addRequirement(ctx context.Context, req *dto.AddRequirementRequest) (*dto.AddRequirementResponse, error) {
	if req.GroupID == 0 {
		return nil, fserrors.ErrNotGroupChat
	}

	if err := a.Authorize(ctx, req.GroupID, req.AdminID); err != nil {
		return nil, err
	}

	ref, joinLink, err := parseAddRequest(req)
	if err != nil {
		return nil, err
	}

	channel, err := a.resolver.ResolveChannel(ctx, ref.Resolvable())
	if err != nil {
		return nil, err
	}

	if joinLink == "" {
		if channel.Username == "" {
			return nil, fserrors.ErrPrivateLinkNeedsID
		}
		joinLink = "https://t.me/" + channel.Username
	}

	role, err := a.resolver.BotRole(ctx, channel.ID)
	if err != nil {
		return nil, err
	}
	if !role.IsElevated() {
		return nil, fserrors.ErrBotNotAdmin
	}

	requirement := &entities.Requirement{
		GroupID:      req.GroupID,
		GroupTitle:   req.GroupTitle,
		ChannelID:    channel.ID,
		ChannelTitle: channel.Title,
		JoinLink:     joinLink,
		AddedBy:      req.AdminID,
	}

	if err := a.repo.Upsert(ctx, requirement); err != nil {
		a.logger.Error().
			Err(err).
			Int64("group_id", req.GroupID).
			Int64("channel_id", channel.ID).
			Msg("Failed to store requirement")
		return nil, err
	}

	a.logger.Info().
		Int64("group_id", req.GroupID).
		Int64("channel_id", channel.ID).
		Int64("admin_id", req.AdminID).
		Msg("Requirement added")

	publishEvent(ctx, a.publisher, a.logger, &entities.GateEvent{
		Type:       entities.EventRequirementAdded,
		GroupID:    req.GroupID,
		UserID:     req.AdminID,
		ChannelIDs: []int64{channel.ID},
	})

	return &dto.AddRequirementResponse{
		GroupTitle:   req.GroupTitle,
		ChannelID:    channel.ID,
		ChannelTitle: requirement.DisplayTitle(),
		JoinLink:     joinLink,
	}, nil
}

// RemoveRequirement deletes one required channel
func (a *Admin) RemoveRequirement(ctx context.Context, req *dto.RemoveRequirementRequest) error {
	err := a.removeRequirement(ctx, req)
	a.record(consts.CommandRemove.Name, err)
	return err
}

func (a *Admin) removeRequirement(ctx context.Context, req *dto.RemoveRequirementRequest) error {
	if req.GroupID == 0 {
		return fserrors.ErrNotGroupChat
	}

	if err := a.Authorize(ctx, req.GroupID, req.AdminID); err != nil {
		return err
	}

	if req.ChannelID == 0 {
		return fserrors.ErrInvalidChannelID
	}

	if err := a.repo.Remove(ctx, req.GroupID, req.ChannelID); err != nil {
		return err
	}

	a.logger.Info().
		Int64("group_id", req.GroupID).
		Int64("channel_id", req.ChannelID).
		Int64("admin_id", req.AdminID).
		Msg("Requirement removed")

	publishEvent(ctx, a.publisher, a.logger, &entities.GateEvent{
		Type:       entities.EventRequirementRemoved,
		GroupID:    req.GroupID,
		UserID:     req.AdminID,
		ChannelIDs: []int64{req.ChannelID},
	})

	return nil
}

// ListRequirements returns the group's requirements. Any member may list them.
func (a *Admin) ListRequirements(ctx context.Context, groupID int64) (*dto.RequirementListResponse, error) {
	if groupID == 0 {
		return nil, fserrors.ErrNotGroupChat
	}

	reqs, err := a.repo.List(ctx, groupID)
	if err != nil {
		return nil, err
	}

	return &dto.RequirementListResponse{
		GroupID:      groupID,
		Requirements: dto.ToItems(reqs),
	}, nil
}

// ClearRequirements removes every requirement of the group
func (a *Admin) ClearRequirements(ctx context.Context, req *dto.GroupRequest) (*dto.ClearResponse, error) {
	resp, err := a.clearRequirements(ctx, req)
	a.record(consts.CommandClear.Name, err)
	return resp, err
}

func (a *Admin) clearRequirements(ctx context.Context, req *dto.GroupRequest) (*dto.ClearResponse, error) {
	if req.GroupID == 0 {
		return nil, fserrors.ErrNotGroupChat
	}

	if err := a.Authorize(ctx, req.GroupID, req.UserID); err != nil {
		return nil, err
	}

	removed, err := a.repo.Clear(ctx, req.GroupID)
	if err != nil {
		return nil, err
	}

	a.logger.Info().
		Int64("group_id", req.GroupID).
		Int64("admin_id", req.UserID).
		Int64("removed", removed).
		Msg("Requirements cleared")

	if removed > 0 {
		publishEvent(ctx, a.publisher, a.logger, &entities.GateEvent{
			Type:    entities.EventRequirementsCleared,
			GroupID: req.GroupID,
			UserID:  req.UserID,
		})
	}

	return &dto.ClearResponse{Removed: removed}, nil
}

// Groups lists gated groups for bot owners
func (a *Admin) Groups(ctx context.Context, userID int64) (*dto.GroupsResponse, error) {
	if !a.cfg.IsSuperuser(userID) {
		return nil, fserrors.ErrNotSuperuser
	}

	groups, err := a.repo.Groups(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.GroupsResponse{Groups: groups}, nil
}

func (a *Admin) record(command string, err error) {
	result := "success"
	if err != nil {
		result = pkgerrors.KindOf(err).String()
	}
	a.metrics.RecordAdminCommand(command, result)
}

// parseAddRequest returns the channel reference and, when already known, its join link
func parseAddRequest(req *dto.AddRequirementRequest) (channelRef, string, error) {
	if strings.TrimSpace(req.JoinLink) == "" {
		ref, err := parseChannelRef(req.ChannelRef)
		return ref, ref.Link, err
	}

	id, err := strconv.ParseInt(strings.TrimSpace(req.ChannelRef), 10, 64)
	if err != nil || id == 0 {
		return channelRef{}, "", fserrors.ErrInvalidChannelID
	}

	link, err := normalizeJoinLink(req.JoinLink)
	if err != nil {
		return channelRef{}, "", err
	}

	return channelRef{ID: id}, link, nil
}
