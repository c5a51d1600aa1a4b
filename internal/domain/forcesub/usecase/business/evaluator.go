// Package business contains forcesub use cases
package business

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/Conte777/forcesub-bot/internal/domain/forcesub/deps"
	"github.com/Conte777/forcesub-bot/internal/domain/forcesub/entities"
)

// maxParallelLookups bounds concurrent oracle calls for one evaluation
const maxParallelLookups = 8

// Evaluator decides whether a user satisfies a group's requirements
type Evaluator struct {
	repo   deps.RequirementRepository
	oracle deps.MembershipOracle
	logger zerolog.Logger
}

// NewEvaluator creates a new admission evaluator
func NewEvaluator(repo deps.RequirementRepository, oracle deps.MembershipOracle, logger zerolog.Logger) *Evaluator {
	return &Evaluator{
		repo:   repo,
		oracle: oracle,
		logger: logger.With().Str("component", "evaluator").Logger(),
	}
}

// Evaluate loads the group's requirements and checks every one of them.
// An unreadable registry yields a degraded denial, never an admission.
func (e *Evaluator) Evaluate(ctx context.Context, groupID, userID int64) entities.Decision {
	reqs, ok := e.Requirements(ctx, groupID)
	if !ok {
		return entities.DenyDegraded()
	}

	return e.Check(ctx, reqs, userID)
}

// Requirements loads the group's requirements; ok is false when the registry failed
func (e *Evaluator) Requirements(ctx context.Context, groupID int64) ([]entities.Requirement, bool) {
	reqs, err := e.repo.List(ctx, groupID)
	if err != nil {
		e.logger.Error().
			Err(err).
			Int64("group_id", groupID).
			Msg("Failed to load requirements, denying")
		return nil, false
	}

	return reqs, true
}

// Check evaluates an already loaded requirement list.
// All channels are queried; Missing keeps the order of reqs.
func (e *Evaluator) Check(ctx context.Context, reqs []entities.Requirement, userID int64) entities.Decision {
	if len(reqs) == 0 {
		return entities.Admit()
	}

	statuses := make([]entities.MembershipStatus, len(reqs))

	var g errgroup.Group
	g.SetLimit(maxParallelLookups)
	for i := range reqs {
		g.Go(func() error {
			statuses[i] = e.oracle.Status(ctx, reqs[i].ChannelID, userID)
			return nil
		})
	}
	_ = g.Wait()

	var missing []entities.Requirement
	for i, status := range statuses {
		if !status.Satisfied() {
			missing = append(missing, reqs[i])
		}
	}

	if len(missing) == 0 {
		return entities.Admit()
	}

	e.logger.Debug().
		Int64("user_id", userID).
		Int64("group_id", reqs[0].GroupID).
		Int("missing", len(missing)).
		Msg("User is missing required channels")

	return entities.Deny(missing)
}
