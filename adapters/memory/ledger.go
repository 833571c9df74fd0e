package memory

import (
	"context"
	"fmt"
	"sync"

	"hypotest/domain/core"
	"hypotest/domain/report"
)

// RunLedger is an in-memory run store for tests and DB-less deployments.
type RunLedger struct {
	mu   sync.RWMutex
	runs []report.Run
}

// NewRunLedger creates an empty in-memory ledger.
func NewRunLedger() *RunLedger {
	return &RunLedger{}
}

// StoreRun appends a run.
func (l *RunLedger) StoreRun(ctx context.Context, run report.Run) error {
	if run.ID.IsEmpty() {
		return fmt.Errorf("store run: id is empty")
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.runs = append(l.runs, run)
	return nil
}

// ListRuns returns the most recent runs, newest first.
func (l *RunLedger) ListRuns(ctx context.Context, limit int) ([]report.Run, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if limit <= 0 || limit > len(l.runs) {
		limit = len(l.runs)
	}
	out := make([]report.Run, 0, limit)
	for i := len(l.runs) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, l.runs[i])
	}
	return out, nil
}

// GetRun finds a run by id.
func (l *RunLedger) GetRun(ctx context.Context, id core.ID) (*report.Run, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for i := range l.runs {
		if l.runs[i].ID == id {
			run := l.runs[i]
			return &run, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", core.ErrRunNotFound, id)
}
