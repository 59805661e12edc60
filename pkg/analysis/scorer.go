package analysis

import (
	"math"
	"sort"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"

	"github.com/kittclouds/metaboviz/internal/store"
)

const (
	// MaxScore bounds the absolute log2 change.
	MaxScore = 4.0
	// MidBin is the colour bin of an unchanged entity.
	MidBin = 5
	// Bins is the number of colour bins.
	Bins = 9
)

// Resolver maps a dataset key onto an entity. *synonym.Index implements it.
type Resolver interface {
	ResolveAny(key string) (store.Entity, bool)
}

// Scorer keys a Dataset against a store snapshot and scores it.
type Scorer struct {
	st    *store.Store
	names Resolver
	log   *zap.Logger
}

// NewScorer creates a scorer. names may be nil, in which case only exact
// store ids are accepted as dataset keys.
func NewScorer(st *store.Store, names Resolver, logger *zap.Logger) *Scorer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scorer{st: st, names: names, log: logger.Named("analysis")}
}

// Score resolves every dataset key to an entity id and computes the result.
// Rows resolving to the same entity have their replicates merged.
func (s *Scorer) Score(d *Dataset, exp Experiment) (*Result, error) {
	if err := exp.Validate(); err != nil {
		return nil, err
	}

	groups := make(map[string]Samples)
	unresolved := 0
	for _, key := range d.Keys() {
		id, ok := s.resolve(key)
		if !ok {
			unresolved++
			continue
		}
		g := exp.Groups(d, key)
		prev := groups[id]
		prev.Control = append(prev.Control, g.Control...)
		prev.Test = append(prev.Test, g.Test...)
		groups[id] = prev
	}

	res := Compute(s.st.SnapshotID(), groups)
	res.Unresolved = unresolved
	s.log.Info("dataset scored",
		zap.String("snapshot", res.SnapshotID),
		zap.Int("rows", d.Len()),
		zap.Int("scored", res.Len()),
		zap.Int("unresolved", unresolved),
		zap.Float64("minima", res.Minima),
		zap.Float64("maxima", res.Maxima),
	)
	return res, nil
}

func (s *Scorer) resolve(key string) (string, bool) {
	if e, ok := s.st.Entity(key); ok {
		return e.EntityID(), true
	}
	if s.names != nil {
		if e, ok := s.names.ResolveAny(key); ok {
			return e.EntityID(), true
		}
	}
	return "", false
}

// Compute scores pre-grouped samples. Entities with an empty group are
// dropped. The result depends only on its inputs.
func Compute(snapshotID string, groups map[string]Samples) *Result {
	ids := make([]string, 0, len(groups))
	for id, g := range groups {
		if len(g.Control) == 0 || len(g.Test) == 0 {
			continue
		}
		ids = append(ids, id)
	}
	sort.Strings(ids)

	type moments struct{ meanC, sdC, meanT, sdT float64 }
	stats := make([]moments, len(ids))

	minima := math.Inf(1)
	maxima := math.Inf(-1)
	for i, id := range ids {
		g := groups[id]
		var m moments
		m.meanC, m.sdC = stat.PopMeanStdDev(g.Control, nil)
		m.meanT, m.sdT = stat.PopMeanStdDev(g.Test, nil)
		stats[i] = m

		for _, mean := range []float64{m.meanC, m.meanT} {
			if mean > 0 && mean < minima {
				minima = mean
			}
			if mean > maxima {
				maxima = mean
			}
		}
	}
	// Without any positive mean the floor sits one step below log2(1).
	if math.IsInf(minima, 1) {
		minima = 1
	}
	if math.IsInf(maxima, -1) {
		maxima = 0
	}
	floor := math.Log2(minima) - 1

	res := &Result{
		SnapshotID: snapshotID,
		Minima:     minima,
		Maxima:     maxima,
		entries:    make(map[string]Entry, len(ids)),
		ids:        ids,
	}
	for i, id := range ids {
		m := stats[i]
		delta := log2OrFloor(m.meanT, floor) - log2OrFloor(m.meanC, floor)
		score := clamp(delta, -MaxScore, MaxScore)
		res.entries[id] = Entry{
			MeanControl:   m.meanC,
			MeanTest:      m.meanT,
			StddevControl: m.sdC,
			StddevTest:    m.sdT,
			Delta:         delta,
			Score:         score,
			Color:         ColorBin(score),
		}
	}
	return res
}

// ColorBin maps a score onto a bin in [1, Bins]. Positive scores map below
// MidBin.
func ColorBin(score float64) int {
	return int(clamp(math.Round(float64(MidBin)-score), 1, Bins))
}

func log2OrFloor(mean, floor float64) float64 {
	if mean > 0 {
		return math.Log2(mean)
	}
	return floor
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
