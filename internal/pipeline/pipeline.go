// Package pipeline chains scoring, mining and assembly over one store
// snapshot, and serialises interactive re-runs so the newest request wins.
package pipeline

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/kittclouds/metaboviz/pkg/analysis"
	"github.com/kittclouds/metaboviz/pkg/assembler"
	"github.com/kittclouds/metaboviz/pkg/graph"
	"github.com/kittclouds/metaboviz/pkg/mining"
)

// ErrNoSnapshot is returned when a run starts before any snapshot is loaded.
var ErrNoSnapshot = errors.New("pipeline: no snapshot loaded")

// Config is the immutable per-run configuration. Options.Mining enables the
// miner; mined pathways are then drawn alongside Shown.
type Config struct {
	Experiment analysis.Experiment
	Mining     mining.Config
	Options    assembler.Options
	Shown      []string
	Hidden     []string
}

// Input is the per-run data. A nil Dataset skips scoring and mining.
type Input struct {
	Dataset *analysis.Dataset
	Layout  map[string]graph.Point
}

// Output holds every stage's product.
type Output struct {
	RunID    string
	Snapshot *Snapshot
	Result   *analysis.Result
	Ranking  *mining.Ranking
	Graph    *graph.Graph
}

// Pipeline runs the stages. It holds no per-run state.
type Pipeline struct {
	metrics *Metrics
	log     *zap.Logger
}

// New creates a pipeline. metrics may be nil.
func New(metrics *Metrics, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{metrics: metrics, log: logger}
}

// Run executes scorer, miner and assembler against snap. ctx is checked
// between stages; the stages themselves are pure.
func (p *Pipeline) Run(ctx context.Context, snap *Snapshot, in Input, cfg Config) (*Output, error) {
	if snap == nil || snap.Store == nil {
		return nil, ErrNoSnapshot
	}
	out := &Output{Snapshot: snap}

	if in.Dataset != nil {
		var names analysis.Resolver
		if snap.Index != nil {
			names = snap.Index
		}
		err := p.stage(ctx, StageScore, func() (err error) {
			out.Result, err = analysis.NewScorer(snap.Store, names, p.log).Score(in.Dataset, cfg.Experiment)
			return err
		})
		if err != nil {
			return nil, err
		}
	}

	if cfg.Options.Mining && out.Result != nil {
		err := p.stage(ctx, StageMine, func() (err error) {
			out.Ranking, err = mining.Mine(out.Result, snap.Store, cfg.Mining)
			return err
		})
		if err != nil {
			return nil, err
		}
	}

	err := p.stage(ctx, StageAssemble, func() (err error) {
		out.Graph, err = assembler.New(snap.Store, cfg.Options, p.log).Assemble(assembler.Request{
			Shown:   cfg.Shown,
			Hidden:  cfg.Hidden,
			Ranking: out.Ranking,
			Result:  out.Result,
			Layout:  in.Layout,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	p.metrics.ObserveGraph(len(out.Graph.PathwayClusters()), out.Graph.EdgeCount())
	return out, nil
}

func (p *Pipeline) stage(ctx context.Context, name string, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	start := time.Now()
	err := fn()
	elapsed := time.Since(start)
	p.metrics.ObserveStage(name, err == nil, elapsed)
	if err != nil {
		p.log.Warn("stage failed", zap.String("stage", name), zap.Error(err))
		return err
	}
	p.log.Debug("stage finished", zap.String("stage", name), zap.Duration("elapsed", elapsed))
	return nil
}
