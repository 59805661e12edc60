// Package assembler turns a pathway selection into a renderable graph.
//
// Reactions are hyperedges (many inputs, many outputs). Assembly lowers each
// one into ordinary directed edges, inserting a junction ("dummy") node on
// any side with more than one metabolite, collapses reactions that would
// draw identically, and annotates every node and edge with pathway and
// compartment clusters.
package assembler

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/kittclouds/metaboviz/internal/store"
	"github.com/kittclouds/metaboviz/pkg/analysis"
	"github.com/kittclouds/metaboviz/pkg/graph"
	"github.com/kittclouds/metaboviz/pkg/mining"
)

// ErrSnapshotMismatch is returned when a result or ranking was computed
// against a different store snapshot.
var ErrSnapshotMismatch = errors.New("assembler: input belongs to another store snapshot")

// Uncategorized is the compartment of reactions without catalyst
// compartments.
const Uncategorized = "uncategorized"

// Options are the immutable display options of an Assembler.
type Options struct {
	// ShowEnzymes adds catalyst names to edge labels. Reactions with
	// different catalysts then no longer collapse.
	ShowEnzymes bool
	// ShowSecondary adds secondary metabolites to edge labels, with the same
	// effect on collapsing.
	ShowSecondary bool
	// ShowPathwayLinks adds invisible ghost edges towards unselected
	// pathways.
	ShowPathwayLinks bool
	// Mining adds the ranking's selected pathways to the shown set.
	Mining bool
	// HighlightPathways and HighlightRegions colour unscored graphs by
	// pathway or compartment cluster.
	HighlightPathways bool
	HighlightRegions  bool
	// LayoutSpacing is the step of the junction collision search.
	LayoutSpacing float64
	Palette       analysis.Palette
}

// DefaultOptions returns the options used when none are configured.
func DefaultOptions() Options {
	return Options{
		ShowEnzymes:      true,
		ShowPathwayLinks: true,
		LayoutSpacing:    20,
		Palette:          analysis.DefaultPalette,
	}
}

// Request is the per-call input of Assemble.
type Request struct {
	Shown  []string
	Hidden []string
	// Ranking holds mined suggestions; used only when Options.Mining is set.
	Ranking *mining.Ranking
	// Result colours nodes and edges; nil means flat styling.
	Result *analysis.Result
	// Layout fixes positions by entity id (or junction node id).
	Layout map[string]graph.Point
}

// Assembler builds graphs from one store snapshot. It holds no state across
// calls and is safe for concurrent use.
type Assembler struct {
	st   *store.Store
	opts Options
	log  *zap.Logger
}

// New creates an assembler.
func New(st *store.Store, opts Options, logger *zap.Logger) *Assembler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.LayoutSpacing <= 0 {
		opts.LayoutSpacing = DefaultOptions().LayoutSpacing
	}
	if opts.Palette == (analysis.Palette{}) {
		opts.Palette = analysis.DefaultPalette
	}
	return &Assembler{st: st, opts: opts, log: logger.Named("assembler")}
}

// Options returns the assembler's options.
func (a *Assembler) Options() Options { return a.opts }

// Assemble builds the graph for req.
func (a *Assembler) Assemble(req Request) (*graph.Graph, error) {
	if req.Result != nil && req.Result.SnapshotID != a.st.SnapshotID() {
		return nil, fmt.Errorf("%w: result %q, store %q", ErrSnapshotMismatch, req.Result.SnapshotID, a.st.SnapshotID())
	}
	if a.opts.Mining && req.Ranking != nil && req.Ranking.SnapshotID != a.st.SnapshotID() {
		return nil, fmt.Errorf("%w: ranking %q, store %q", ErrSnapshotMismatch, req.Ranking.SnapshotID, a.st.SnapshotID())
	}

	b := &build{
		a:        a,
		g:        graph.New(),
		selected: a.selectPathways(req),
		seen:     make(map[string]*drawn),
	}
	for _, p := range b.selected {
		for _, r := range a.st.ReactionsIn(p.Reactions()) {
			b.addReaction(p, r)
		}
	}

	ghosts := 0
	if a.opts.ShowPathwayLinks {
		ghosts = b.addGhostLinks(req.Hidden)
	}
	b.style(req.Result)
	placed := b.place(req.Layout)

	a.log.Info("graph assembled",
		zap.Int("pathways", len(b.selected)),
		zap.Int("reactions", len(b.drawn)),
		zap.Int("collapsed", b.collapsed),
		zap.Int("nodes", b.g.NodeCount()),
		zap.Int("edges", b.g.EdgeCount()),
		zap.Int("junctions", b.g.CountNodes(graph.KindDummy)),
		zap.Int("ghosts", ghosts),
		zap.Int("placed", placed),
	)
	return b.g, nil
}

// selectPathways computes (shown ∪ mined) − hidden, keeping first-seen order.
func (a *Assembler) selectPathways(req Request) []*store.Pathway {
	hidden := make(map[string]bool, len(req.Hidden))
	for _, id := range req.Hidden {
		hidden[id] = true
	}

	ids := append([]string(nil), req.Shown...)
	if a.opts.Mining {
		ids = append(ids, req.Ranking.SelectedIDs()...)
	}

	var out []*store.Pathway
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] || hidden[id] {
			continue
		}
		seen[id] = true
		p, ok := a.st.Pathway(id)
		if !ok {
			a.log.Debug("unknown pathway skipped", zap.String("pathway", id))
			continue
		}
		out = append(out, p)
	}
	return out
}

// drawn is what one reaction contributed to the graph.
type drawn struct {
	reaction *store.Reaction
	nodes    []*graph.Node
	edges    []*graph.Edge
}

// build is the state of one Assemble call.
type build struct {
	a         *Assembler
	g         *graph.Graph
	selected  []*store.Pathway
	seen      map[string]*drawn
	drawn     []*drawn
	collapsed int
}

func (b *build) addReaction(p *store.Pathway, r *store.Reaction) {
	key := PruneKey(r, b.a.opts)
	if d, ok := b.seen[key]; ok {
		if d.reaction != r {
			b.collapsed++
			b.a.log.Debug("reaction collapsed",
				zap.String("reaction", r.ID),
				zap.String("into", d.reaction.ID),
			)
		}
		b.cluster(d, graph.AxisPathway, p.ID)
		return
	}

	d := &drawn{reaction: r}
	b.seen[key] = d
	b.drawn = append(b.drawn, d)

	direction := string(r.Direction)
	label := NewEdgeLabel(r, b.a.opts)

	metabolite := func(m *store.Metabolite) *graph.Node {
		n := b.g.EnsureNode(m.ID, m.DisplayName(), graph.KindMetabolite)
		d.nodes = append(d.nodes, n)
		return n
	}
	edge := func(id, source, target, text string) {
		e := b.g.AddEdge(&graph.Edge{
			ID:        id,
			Source:    source,
			Target:    target,
			Label:     text,
			Reaction:  r.ID,
			Direction: direction,
			Visible:   true,
		})
		d.edges = append(d.edges, e)
	}

	source := junctionID(r.ID, "in")
	if len(r.PrimaryInputs) == 1 {
		source = metabolite(r.PrimaryInputs[0]).ID
	} else {
		d.nodes = append(d.nodes, b.g.EnsureNode(source, "", graph.KindDummy))
		for _, m := range r.PrimaryInputs {
			edge(r.ID+":in:"+m.ID, metabolite(m).ID, source, "")
		}
	}

	target := junctionID(r.ID, "out")
	if len(r.PrimaryOutputs) == 1 {
		target = metabolite(r.PrimaryOutputs[0]).ID
	} else {
		d.nodes = append(d.nodes, b.g.EnsureNode(target, "", graph.KindDummy))
		for _, m := range r.PrimaryOutputs {
			edge(r.ID+":out:"+m.ID, target, metabolite(m).ID, "")
		}
	}

	edge(r.ID, source, target, label.String())

	b.cluster(d, graph.AxisPathway, p.ID)
	compartments := r.Compartments()
	if len(compartments) == 0 {
		compartments = []string{Uncategorized}
	}
	for _, c := range compartments {
		b.cluster(d, graph.AxisCompartment, c)
	}
}

func (b *build) cluster(d *drawn, axis graph.Axis, cluster string) {
	for _, n := range d.nodes {
		b.g.AddNodeToCluster(axis, cluster, n)
	}
	for _, e := range d.edges {
		b.g.AddEdgeToCluster(axis, cluster, e)
	}
}

// junctionID names the junction node of one side of a reaction.
func junctionID(reactionID, side string) string {
	return "dummy:" + reactionID + ":" + side
}
