package store

import (
	"context"

	"github.com/localleads/leads-cli/internal/model"
)

// Store persists search runs.
type Store interface {
	CreateRun(ctx context.Context, params model.SearchParams) (*model.SearchRun, error)
	UpdateRunStatus(ctx context.Context, runID string, status model.RunStatus) error
	// SetRunResult stores the final result and marks the run complete.
	SetRunResult(ctx context.Context, runID string, result *model.SearchResult) error
	// FailRun marks the run failed with an error message.
	FailRun(ctx context.Context, runID string, errMsg string) error
	GetRun(ctx context.Context, runID string) (*model.SearchRun, error)
	// ListRuns returns runs newest first, capped at limit (0 means all).
	ListRuns(ctx context.Context, limit int) ([]model.SearchRun, error)

	Migrate(ctx context.Context) error
	Close() error
}
