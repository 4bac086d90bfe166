package cron

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/rentiva/rentiva-backend/internal/behavior"
	"github.com/rentiva/rentiva-backend/pkg/db/models"
	"github.com/rentiva/rentiva-backend/pkg/logger"
)

const (
	defaultReplayBatchSize   = 50
	defaultReplayMaxAttempts = 10
)

type pendingStrikeRepository interface {
	ListBatch(ctx context.Context, limit, maxAttempts int) ([]models.PendingStrike, error)
	Delete(ctx context.Context, id uuid.UUID) error
	RecordFailure(ctx context.Context, id uuid.UUID, message string) error
}

type strikeApplier interface {
	AddStrike(ctx context.Context, input behavior.AddStrikeInput) (*behavior.StrikeResult, error)
}

// StrikeReplayJobParams configure the pending strike replay.
type StrikeReplayJobParams struct {
	Logger      *logger.Logger
	Repo        pendingStrikeRepository
	Behavior    strikeApplier
	BatchSize   int
	MaxAttempts int
}

// NewStrikeReplayJob constructs the job that drains the pending strike queue.
func NewStrikeReplayJob(params StrikeReplayJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Repo == nil {
		return nil, fmt.Errorf("pending strike repository required")
	}
	if params.Behavior == nil {
		return nil, fmt.Errorf("behavior service required")
	}
	batchSize := params.BatchSize
	if batchSize <= 0 {
		batchSize = defaultReplayBatchSize
	}
	maxAttempts := params.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = defaultReplayMaxAttempts
	}
	return &strikeReplayJob{
		logg:        params.Logger,
		repo:        params.Repo,
		behavior:    params.Behavior,
		batchSize:   batchSize,
		maxAttempts: maxAttempts,
	}, nil
}

type strikeReplayJob struct {
	logg        *logger.Logger
	repo        pendingStrikeRepository
	behavior    strikeApplier
	batchSize   int
	maxAttempts int
}

func (j *strikeReplayJob) Name() string { return "strike-replay" }

// Run drains the queue in batches. Each pending row carries the facts
// computed at return time, so replay never regrades severity or fees. A batch
// with no successes ends the cycle; the failed rows wait for the next one.
func (j *strikeReplayJob) Run(ctx context.Context) error {
	applied, failed := 0, 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		batch, err := j.repo.ListBatch(ctx, j.batchSize, j.maxAttempts)
		if err != nil {
			return fmt.Errorf("list pending strikes: %w", err)
		}
		if len(batch) == 0 {
			break
		}

		successes := 0
		for _, pending := range batch {
			if j.replay(ctx, pending) {
				successes++
			} else {
				failed++
			}
		}
		applied += successes

		if successes == 0 || len(batch) < j.batchSize {
			break
		}
	}

	logCtx := j.logg.WithFields(ctx, map[string]any{"applied": applied, "failed": failed})
	j.logg.Info(logCtx, "strike replay complete")
	return nil
}

func (j *strikeReplayJob) replay(ctx context.Context, pending models.PendingStrike) bool {
	_, err := j.behavior.AddStrike(ctx, behavior.AddStrikeInput{
		CustomerID:            pending.CustomerID,
		ItemID:                pending.ItemID,
		Reason:                pending.Reason,
		Severity:              pending.Severity,
		Description:           pending.Description,
		AdditionalChargeCents: pending.AdditionalChargeCents,
		OccurredAt:            pending.OccurredAt,
	})
	if err != nil {
		j.logg.Error(ctx, "pending strike replay failed", err)
		if recErr := j.repo.RecordFailure(ctx, pending.ID, err.Error()); recErr != nil {
			j.logg.Error(ctx, "could not record replay failure", recErr)
		}
		return false
	}

	if err := j.repo.Delete(ctx, pending.ID); err != nil {
		j.logg.Error(ctx, "could not remove applied pending strike", err)
		return false
	}
	return true
}
