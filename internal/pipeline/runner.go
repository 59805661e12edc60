package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrSuperseded is returned to a caller whose run was overtaken by a newer
// submission. Its output is discarded.
var ErrSuperseded = errors.New("pipeline: run superseded by a newer submission")

// runFunc matches Pipeline.Run.
type runFunc func(ctx context.Context, snap *Snapshot, in Input, cfg Config) (*Output, error)

// Runner executes runs against the catalog's current snapshot. Each
// submission cancels the run in flight; only the newest run may publish its
// output.
type Runner struct {
	catalog *Catalog
	run     runFunc
	metrics *Metrics
	log     *zap.Logger

	mu     sync.Mutex
	latest string
	cancel context.CancelFunc
	last   *Output
}

// NewRunner creates a runner.
func NewRunner(p *Pipeline, catalog *Catalog, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		catalog: catalog,
		run:     p.Run,
		metrics: p.metrics,
		log:     logger,
	}
}

// Submit runs the pipeline synchronously. A newer Submit cancels this one,
// in which case Submit returns ErrSuperseded.
func (r *Runner) Submit(ctx context.Context, in Input, cfg Config) (*Output, error) {
	id := uuid.NewString()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
	}
	r.latest = id
	r.cancel = cancel
	r.mu.Unlock()

	out, err := r.run(ctx, r.catalog.Current(), in, cfg)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.latest != id {
		r.metrics.ObserveRun(OutcomeSuperseded)
		r.log.Debug("run superseded", zap.String("run", id))
		return nil, fmt.Errorf("%w: run %s", ErrSuperseded, id)
	}
	r.cancel = nil
	if err != nil {
		r.metrics.ObserveRun(OutcomeFailed)
		return nil, err
	}
	out.RunID = id
	r.last = out
	r.metrics.ObserveRun(OutcomeCompleted)
	r.log.Info("run completed",
		zap.String("run", id),
		zap.String("snapshot", out.Snapshot.ID()),
		zap.Int("nodes", out.Graph.NodeCount()),
		zap.Int("edges", out.Graph.EdgeCount()),
	)
	return out, nil
}

// Latest returns the output of the newest completed run, or nil.
func (r *Runner) Latest() *Output {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}
