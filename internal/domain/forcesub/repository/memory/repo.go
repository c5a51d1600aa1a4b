// Package memory contains an in-memory requirement registry
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Conte777/forcesub-bot/internal/domain/forcesub/deps"
	"github.com/Conte777/forcesub-bot/internal/domain/forcesub/entities"
	fserrors "github.com/Conte777/forcesub-bot/internal/domain/forcesub/errors"
	"github.com/Conte777/forcesub-bot/internal/domain/forcesub/repository"
)

type key struct {
	groupID   int64
	channelID int64
}

// requirementRepository implements deps.RequirementRepository using in-memory storage
type requirementRepository struct {
	mu     sync.RWMutex
	nextID uint
	rows   map[key]*entities.Requirement
	now    func() time.Time
}

// NewRepository creates a new in-memory requirement repository
func NewRepository() deps.RequirementRepository {
	return &requirementRepository{
		rows: make(map[key]*entities.Requirement),
		now:  time.Now,
	}
}

// Upsert inserts a requirement or refreshes an existing pair
func (r *requirementRepository) Upsert(ctx context.Context, req *entities.Requirement) error {
	if err := repository.ValidateRequirement(req); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	k := key{groupID: req.GroupID, channelID: req.ChannelID}

	if existing, ok := r.rows[k]; ok {
		existing.GroupTitle = req.GroupTitle
		existing.ChannelTitle = req.ChannelTitle
		existing.JoinLink = req.JoinLink
		existing.AddedBy = req.AddedBy
		existing.UpdatedAt = now
		*req = *existing
		return nil
	}

	r.nextID++
	row := *req
	row.ID = r.nextID
	row.CreatedAt = now
	row.UpdatedAt = now
	r.rows[k] = &row
	*req = row

	return nil
}

// Remove deletes one requirement
func (r *requirementRepository) Remove(ctx context.Context, groupID, channelID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := key{groupID: groupID, channelID: channelID}
	if _, ok := r.rows[k]; !ok {
		return fserrors.ErrRequirementNotFound
	}

	delete(r.rows, k)
	return nil
}

// List returns the group's requirements in insertion order
func (r *requirementRepository) List(ctx context.Context, groupID int64) ([]entities.Requirement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reqs := make([]entities.Requirement, 0)
	for k, row := range r.rows {
		if k.groupID == groupID {
			reqs = append(reqs, *row)
		}
	}

	sort.Slice(reqs, func(i, j int) bool {
		return reqs[i].ID < reqs[j].ID
	})

	return reqs, nil
}

// Clear deletes every requirement of the group
func (r *requirementRepository) Clear(ctx context.Context, groupID int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var removed int64
	for k := range r.rows {
		if k.groupID == groupID {
			delete(r.rows, k)
			removed++
		}
	}

	return removed, nil
}

// Groups returns every gated group ordered by group id
func (r *requirementRepository) Groups(ctx context.Context) ([]entities.GroupSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	byGroup := make(map[int64]*entities.GroupSummary)
	for k, row := range r.rows {
		summary, ok := byGroup[k.groupID]
		if !ok {
			summary = &entities.GroupSummary{GroupID: k.groupID}
			byGroup[k.groupID] = summary
		}
		if row.GroupTitle != "" {
			summary.GroupTitle = row.GroupTitle
		}
		summary.Requirements++
	}

	groups := make([]entities.GroupSummary, 0, len(byGroup))
	for _, summary := range byGroup {
		groups = append(groups, *summary)
	}

	sort.Slice(groups, func(i, j int) bool {
		return groups[i].GroupID < groups[j].GroupID
	})

	return groups, nil
}
