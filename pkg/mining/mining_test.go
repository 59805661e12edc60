package mining_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kittclouds/metaboviz/internal/store"
	"github.com/kittclouds/metaboviz/internal/store/storetest"
	"github.com/kittclouds/metaboviz/pkg/analysis"
	"github.com/kittclouds/metaboviz/pkg/mining"
)

// twoPathways: m1 only in P1, m2 in P1 and P2. P1 has three reactions.
func twoPathways(t *testing.T) *store.Store {
	t.Helper()
	return storetest.MustBuild(t, &store.Records{
		Metabolites: storetest.Metabolites("m1", "m2", "m3", "m4", "m5"),
		Pathways:    storetest.Pathways("P1", "P2"),
		Reactions: []store.ReactionRecord{
			storetest.Reaction("ra", []string{"m1"}, []string{"m3"}, "P1"),
			storetest.Reaction("rb", []string{"m2"}, []string{"m3"}, "P1"),
			storetest.Reaction("rd", []string{"m3"}, []string{"m5"}, "P1"),
			storetest.Reaction("rc", []string{"m2"}, []string{"m4"}, "P2"),
		},
	})
}

// scores builds a result where each id gets the given log2 change.
func scores(st *store.Store, byID map[string]float64) *analysis.Result {
	groups := make(map[string]analysis.Samples, len(byID))
	for id, s := range byID {
		groups[id] = analysis.Samples{Control: []float64{16}, Test: []float64{16 * pow2(s)}}
	}
	return analysis.Compute(st.SnapshotID(), groups)
}

func pow2(s float64) float64 {
	out := 1.0
	for ; s > 0; s-- {
		out *= 2
	}
	for ; s < 0; s++ {
		out /= 2
	}
	return out
}

func scoreOf(t *testing.T, r *mining.Ranking, id string) float64 {
	t.Helper()
	for _, s := range append(r.Selected, r.Remaining...) {
		if s.Pathway.ID == id {
			return s.Score
		}
	}
	t.Fatalf("pathway %s not ranked", id)
	return 0
}

func TestMineUnshared(t *testing.T) {
	st := twoPathways(t)
	res := scores(st, map[string]float64{"m1": 3, "m2": 3})

	r, err := mining.Mine(res, st, mining.Config{Mode: mining.ModeChange, Depth: 10})
	require.NoError(t, err)
	assert.Equal(t, []string{"P1", "P2"}, r.SelectedIDs())
	assert.InDelta(t, 6.0, scoreOf(t, r, "P1"), 1e-9)
	assert.InDelta(t, 3.0, scoreOf(t, r, "P2"), 1e-9)
}

func TestMineShared(t *testing.T) {
	st := twoPathways(t)
	res := scores(st, map[string]float64{"m1": 3, "m2": 3})

	r, err := mining.Mine(res, st, mining.Config{Mode: mining.ModeChange, Shared: true, Depth: 10})
	require.NoError(t, err)
	assert.InDelta(t, 4.5, scoreOf(t, r, "P1"), 1e-9)
	assert.InDelta(t, 1.5, scoreOf(t, r, "P2"), 1e-9)
}

func TestMineRelative(t *testing.T) {
	st := twoPathways(t)
	res := scores(st, map[string]float64{"m1": 3, "m2": 3})

	r, err := mining.Mine(res, st, mining.Config{Mode: mining.ModeChange, Relative: true, Depth: 10})
	require.NoError(t, err)
	assert.InDelta(t, 2.0, scoreOf(t, r, "P1"), 1e-9)
	assert.InDelta(t, 3.0, scoreOf(t, r, "P2"), 1e-9)
	assert.Equal(t, []string{"P2", "P1"}, r.SelectedIDs())
}

func TestMineModes(t *testing.T) {
	st := twoPathways(t)
	res := scores(st, map[string]float64{"m1": 2, "m2": -1})

	tests := []struct {
		mode   mining.Mode
		p1, p2 float64
	}{
		{mining.ModeChange, 3, 1},
		{mining.ModeUp, 2, 0},
		{mining.ModeDown, 1, 1},
		{mining.ModeCount, 2, 1},
	}
	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			r, err := mining.Mine(res, st, mining.Config{Mode: tt.mode, Depth: 10})
			require.NoError(t, err)
			assert.InDelta(t, tt.p1, scoreOf(t, r, "P1"), 1e-9)
			if tt.p2 == 0 {
				assert.NotContains(t, r.SelectedIDs(), "P2", "zero scores are dropped")
			} else {
				assert.InDelta(t, tt.p2, scoreOf(t, r, "P2"), 1e-9)
			}
		})
	}
}

func TestMineDepthBeyondPool(t *testing.T) {
	recs := &store.Records{}
	var ids []string
	for i := 1; i <= 3; i++ {
		m := fmt.Sprintf("m%d", i)
		p := fmt.Sprintf("P%d", i)
		ids = append(ids, m)
		recs.Pathways = append(recs.Pathways, storetest.Pathways(p)...)
		recs.Reactions = append(recs.Reactions, storetest.Reaction("r"+p, []string{m}, []string{"sink"}, p))
	}
	recs.Metabolites = storetest.Metabolites(append(ids, "sink")...)
	st := storetest.MustBuild(t, recs)

	res := scores(st, map[string]float64{"m1": 1, "m2": 3, "m3": 2})
	r, err := mining.Mine(res, st, mining.Config{Mode: mining.ModeChange, Depth: 5})
	require.NoError(t, err)
	assert.Equal(t, []string{"P2", "P3", "P1"}, r.SelectedIDs())
	assert.Empty(t, r.Remaining)
}

func TestMineTiesKeepInsertionOrder(t *testing.T) {
	st := twoPathways(t)
	// m2 is visited after m1 but only m2 touches P2; both pathways score 1.
	res := scores(st, map[string]float64{"m2": 1})

	r, err := mining.Mine(res, st, mining.Config{Mode: mining.ModeChange, Depth: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"P1"}, r.SelectedIDs())
	require.Len(t, r.Remaining, 1)
	assert.Equal(t, "P2", r.Remaining[0].Pathway.ID)
}

func TestMineSkipsUnknownAndNonParticipants(t *testing.T) {
	st := storetest.MustBuild(t, storetest.Glycolysis())
	res := analysis.Compute(st.SnapshotID(), map[string]analysis.Samples{
		"nowhere": {Control: []float64{1}, Test: []float64{8}},
		"r1":      {Control: []float64{1}, Test: []float64{8}}, // reactions are not mined
		"HK":      {Control: []float64{1}, Test: []float64{4}},
		"g6pd":    {Control: []float64{4}, Test: []float64{1}},
	})

	r, err := mining.Mine(res, st, mining.Config{Mode: mining.ModeChange, Depth: 10})
	require.NoError(t, err)
	// HK (protein) -> glycolysis, g6pd (gene) -> ppp.
	assert.Equal(t, []string{"glycolysis", "ppp"}, r.SelectedIDs())
}

func TestMineNegativeDepth(t *testing.T) {
	st := twoPathways(t)
	r, err := mining.Mine(scores(st, map[string]float64{"m1": 1}), st, mining.Config{Mode: mining.ModeChange, Depth: -3})
	require.NoError(t, err)
	assert.Empty(t, r.Selected)
	assert.Len(t, r.Remaining, 1)
}

func TestMineRemainingIsCapped(t *testing.T) {
	recs := &store.Records{Metabolites: storetest.Metabolites("hub", "sink")}
	for i := 0; i < 150; i++ {
		p := fmt.Sprintf("P%03d", i)
		recs.Pathways = append(recs.Pathways, storetest.Pathways(p)...)
		recs.Reactions = append(recs.Reactions, storetest.Reaction("r"+p, []string{"hub"}, []string{"sink"}, p))
	}
	st := storetest.MustBuild(t, recs)

	r, err := mining.Mine(scores(st, map[string]float64{"hub": 1}), st, mining.Config{Mode: mining.ModeCount, Depth: 10})
	require.NoError(t, err)
	assert.Len(t, r.Selected, 10)
	assert.Len(t, r.Remaining, mining.RemainingLimit)
	assert.Equal(t, "P000", r.Selected[0].Pathway.ID)
}

func TestMineSnapshotMismatch(t *testing.T) {
	st := twoPathways(t)
	other := twoPathways(t)
	_, err := mining.Mine(scores(other, map[string]float64{"m1": 1}), st, mining.DefaultConfig())
	assert.ErrorIs(t, err, mining.ErrSnapshotMismatch)
}

func TestMineNilResult(t *testing.T) {
	st := twoPathways(t)
	r, err := mining.Mine(nil, st, mining.DefaultConfig())
	require.NoError(t, err)
	assert.Empty(t, r.SelectedIDs())
}

func TestMineUnknownMode(t *testing.T) {
	st := twoPathways(t)
	_, err := mining.Mine(scores(st, map[string]float64{"m1": 1}), st, mining.Config{Mode: "sideways", Depth: 1})
	assert.ErrorIs(t, err, mining.ErrUnknownMode)

	_, err = mining.ParseMode("sideways")
	assert.ErrorIs(t, err, mining.ErrUnknownMode)
	m, err := mining.ParseMode(" UP ")
	require.NoError(t, err)
	assert.Equal(t, mining.ModeUp, m)
}
