package ports

import (
	"context"

	"hypotest/domain/core"
	"hypotest/domain/report"
)

// RunLedger provides append and query access to fitted test runs.
type RunLedger interface {
	StoreRun(ctx context.Context, run report.Run) error
	ListRuns(ctx context.Context, limit int) ([]report.Run, error)
	GetRun(ctx context.Context, id core.ID) (*report.Run, error)
}
