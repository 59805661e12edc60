package assembler

import (
	"github.com/kittclouds/metaboviz/internal/store"
	"github.com/kittclouds/metaboviz/pkg/analysis"
	"github.com/kittclouds/metaboviz/pkg/graph"
)

// clusterColors cycles over clusters when highlighting without a result.
var clusterColors = []string{
	"#1b9e77", "#d95f02", "#7570b3", "#e7298a",
	"#66a61e", "#e6ab02", "#a6761d", "#666666",
}

// style paints every node and edge. Ghost edges and pathway-summary nodes
// stay neutral.
func (b *build) style(res *analysis.Result) {
	pal := b.a.opts.Palette
	neutral := func() graph.Style { return graph.Style{Colors: []string{pal.Neutral()}} }

	if res != nil {
		for _, n := range b.g.Nodes() {
			n.Style = neutral()
			if n.Kind != graph.KindMetabolite {
				continue
			}
			if e, ok := res.Get(n.ID); ok {
				n.Style = graph.Style{Colors: []string{pal.Color(e.Color)}, Bins: []int{e.Color}}
			}
		}
		for _, e := range b.g.Edges() {
			e.Style = neutral()
		}
		for _, d := range b.drawn {
			s := reactionStyle(d.reaction, res, pal)
			for _, e := range d.edges {
				e.Style = s
			}
		}
		return
	}

	axis, highlight := graph.Axis(""), false
	switch {
	case b.a.opts.HighlightPathways:
		axis, highlight = graph.AxisPathway, true
	case b.a.opts.HighlightRegions:
		axis, highlight = graph.AxisCompartment, true
	}
	colors := make(map[string]string)
	if highlight {
		for i, cl := range b.g.Clusters(axis) {
			colors[cl.ID] = clusterColors[i%len(clusterColors)]
		}
	}
	clusterStyle := func(memberships []string) graph.Style {
		if !highlight || len(memberships) == 0 {
			return neutral()
		}
		return graph.Style{Colors: []string{colors[memberships[0]]}}
	}
	for _, n := range b.g.Nodes() {
		n.Style = clusterStyle(memberOf(axis, n.Pathways, n.Compartments))
	}
	for _, e := range b.g.Edges() {
		e.Style = clusterStyle(memberOf(axis, e.Pathways, e.Compartments))
	}
}

func memberOf(axis graph.Axis, pathways, compartments []string) []string {
	if axis == graph.AxisCompartment {
		return compartments
	}
	return pathways
}

// reactionStyle collects the bins of a reaction's catalysts and their genes,
// one segment per scored entity. An unscored reaction is neutral.
func reactionStyle(r *store.Reaction, res *analysis.Result, pal analysis.Palette) graph.Style {
	var s graph.Style
	add := func(id string) {
		if e, ok := res.Get(id); ok {
			s.Bins = append(s.Bins, e.Color)
			s.Colors = append(s.Colors, pal.Color(e.Color))
		}
	}
	for _, p := range r.Catalysts {
		add(p.ID)
		for _, g := range p.Genes {
			add(g.ID)
		}
	}
	if len(s.Colors) == 0 {
		return graph.Style{Colors: []string{pal.Neutral()}}
	}
	return s
}
