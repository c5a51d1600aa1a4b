package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Conte777/forcesub-bot/internal/domain/forcesub/deps"
	"github.com/Conte777/forcesub-bot/internal/domain/forcesub/entities"
	fserrors "github.com/Conte777/forcesub-bot/internal/domain/forcesub/errors"
	"github.com/Conte777/forcesub-bot/internal/domain/forcesub/repository"
	pkgerrors "github.com/Conte777/forcesub-bot/pkg/errors"
)

// Repository implements deps.RequirementRepository on the force_subscribe table
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) deps.RequirementRepository {
	return &Repository{db: db}
}

// Upsert relies on the (group_id, channel_id) unique index so that concurrent
// admin edits of the same pair resolve in a single statement.
func (r *Repository) Upsert(ctx context.Context, req *entities.Requirement) error {
	if err := repository.ValidateRequirement(req); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "group_id"}, {Name: "channel_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"group_title", "channel_title", "join_link", "added_by", "updated_at",
			}),
		}).
		Create(req)

	if result.Error != nil {
		return pkgerrors.Wrap(fserrors.ErrRegistryUnavailable, result.Error)
	}
	return nil
}

func (r *Repository) Remove(ctx context.Context, groupID, channelID int64) error {
	result := r.db.WithContext(ctx).
		Where("group_id = ? AND channel_id = ?", groupID, channelID).
		Delete(&entities.Requirement{})

	if result.Error != nil {
		return pkgerrors.Wrap(fserrors.ErrRegistryUnavailable, result.Error)
	}

	if result.RowsAffected == 0 {
		return fserrors.ErrRequirementNotFound
	}

	return nil
}

func (r *Repository) List(ctx context.Context, groupID int64) ([]entities.Requirement, error) {
	reqs := make([]entities.Requirement, 0)
	result := r.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Order("created_at ASC, id ASC").
		Find(&reqs)

	if result.Error != nil {
		return nil, pkgerrors.Wrap(fserrors.ErrRegistryUnavailable, result.Error)
	}

	return reqs, nil
}

func (r *Repository) Clear(ctx context.Context, groupID int64) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Delete(&entities.Requirement{})

	if result.Error != nil {
		return 0, pkgerrors.Wrap(fserrors.ErrRegistryUnavailable, result.Error)
	}

	return result.RowsAffected, nil
}

func (r *Repository) Groups(ctx context.Context) ([]entities.GroupSummary, error) {
	groups := make([]entities.GroupSummary, 0)
	result := r.db.WithContext(ctx).
		Model(&entities.Requirement{}).
		Select("group_id, MAX(group_title) AS group_title, COUNT(*) AS requirements").
		Group("group_id").
		Order("group_id").
		Scan(&groups)

	if result.Error != nil {
		return nil, pkgerrors.Wrap(fserrors.ErrRegistryUnavailable, result.Error)
	}

	return groups, nil
}
