// Package mining ranks pathways by how much of a scoring result falls into
// them and selects the top few for display.
package mining

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/kittclouds/metaboviz/internal/store"
	"github.com/kittclouds/metaboviz/pkg/analysis"
)

// RemainingLimit caps the informational tail of a ranking.
const RemainingLimit = 100

var (
	// ErrSnapshotMismatch is returned when the result was computed against a
	// different store snapshot than the one supplied.
	ErrSnapshotMismatch = errors.New("mining: result belongs to another store snapshot")
	// ErrUnknownMode is returned for a mode outside the known set.
	ErrUnknownMode = errors.New("mining: unknown mode")
)

// Mode selects how an entity score becomes a pathway contribution.
type Mode string

const (
	ModeChange Mode = "change" // |score|
	ModeUp     Mode = "up"     // max(0, score)
	ModeDown   Mode = "down"   // |min(0, score)|
	ModeCount  Mode = "count"  // 1 per scored entity
)

// ParseMode parses a mode name case-insensitively.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	switch m {
	case ModeChange, ModeUp, ModeDown, ModeCount:
		return m, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

func (m Mode) contribution(score float64) (float64, error) {
	switch m {
	case ModeChange:
		return math.Abs(score), nil
	case ModeUp:
		return math.Max(0, score), nil
	case ModeDown:
		return math.Abs(math.Min(0, score)), nil
	case ModeCount:
		return 1, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, string(m))
}

// Config is the immutable mining configuration.
type Config struct {
	Mode Mode
	// Relative divides each pathway total by its reaction count.
	Relative bool
	// Shared splits an entity's contribution across its pathways.
	Shared bool
	// Depth is how many pathways to select. Negative means zero.
	Depth int
}

// DefaultConfig returns change mode selecting five pathways.
func DefaultConfig() Config {
	return Config{Mode: ModeChange, Depth: 5}
}

// Scored is a pathway with its accumulated score.
type Scored struct {
	Pathway *store.Pathway
	Score   float64
}

// Ranking is the transient output of Mine.
type Ranking struct {
	SnapshotID string
	// Selected holds the top Depth pathways, best first.
	Selected []Scored
	// Remaining holds up to RemainingLimit pathways after Selected.
	Remaining []Scored
}

// SelectedIDs returns the ids of the selected pathways in rank order.
func (r *Ranking) SelectedIDs() []string {
	if r == nil {
		return nil
	}
	out := make([]string, len(r.Selected))
	for i, s := range r.Selected {
		out[i] = s.Pathway.ID
	}
	return out
}

// Mine scores every pathway touched by res and selects the best ones.
//
// Scored ids are visited in sorted order. Each id is looked up as a
// metabolite, then a protein, then a gene; ids matching none are skipped.
// Ties keep the order in which pathways first received a contribution.
func Mine(res *analysis.Result, st *store.Store, cfg Config) (*Ranking, error) {
	if res == nil {
		return &Ranking{SnapshotID: st.SnapshotID()}, nil
	}
	if res.SnapshotID != st.SnapshotID() {
		return nil, fmt.Errorf("%w: result %q, store %q", ErrSnapshotMismatch, res.SnapshotID, st.SnapshotID())
	}

	totals := make(map[string]float64)
	var order []string

	for _, id := range res.IDs() {
		pathways, ok := pathwaysOf(st, id)
		if !ok || pathways.Len() == 0 {
			continue
		}
		entry, _ := res.Get(id)
		value, err := cfg.Mode.contribution(entry.Score)
		if err != nil {
			return nil, err
		}
		if cfg.Shared {
			value /= float64(pathways.Len())
		}
		pathways.Each(func(pid string) bool {
			if _, seen := totals[pid]; !seen {
				order = append(order, pid)
			}
			totals[pid] += value
			return true
		})
	}

	ranked := make([]Scored, 0, len(order))
	for _, pid := range order {
		p, ok := st.Pathway(pid)
		if !ok {
			continue
		}
		score := totals[pid]
		if cfg.Relative {
			score /= float64(max(p.Reactions().Len(), 1))
		}
		if score <= 0 {
			continue
		}
		ranked = append(ranked, Scored{Pathway: p, Score: score})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	depth := min(max(cfg.Depth, 0), len(ranked))
	rest := ranked[depth:]
	if len(rest) > RemainingLimit {
		rest = rest[:RemainingLimit]
	}
	return &Ranking{
		SnapshotID: st.SnapshotID(),
		Selected:   ranked[:depth:depth],
		Remaining:  rest,
	}, nil
}

func pathwaysOf(st *store.Store, id string) (store.IDSet, bool) {
	if m, ok := st.Metabolite(id); ok {
		return m.Pathways(), true
	}
	if p, ok := st.Protein(id); ok {
		return p.Pathways(), true
	}
	if g, ok := st.Gene(id); ok {
		return g.Pathways(), true
	}
	return store.IDSet{}, false
}
