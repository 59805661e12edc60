package assembler

import (
	"github.com/kittclouds/metaboviz/internal/store"
	"github.com/kittclouds/metaboviz/pkg/graph"
)

// addGhostLinks links visible metabolites to pathways that are not shown.
// For every reaction of a visible metabolite whose pathways are all
// unselected, one invisible edge runs from the metabolite to a summary node
// of each such pathway. Hidden pathways get no summary node. Each
// (pathway, metabolite) pair is linked once. Returns the number of links.
func (b *build) addGhostLinks(hiddenIDs []string) int {
	selected := make(map[string]bool, len(b.selected))
	for _, p := range b.selected {
		selected[p.ID] = true
	}
	hidden := make(map[string]bool, len(hiddenIDs))
	for _, id := range hiddenIDs {
		hidden[id] = true
	}

	added := 0
	for _, n := range b.g.Nodes() {
		if n.Kind != graph.KindMetabolite {
			continue
		}
		m, ok := b.a.st.Metabolite(n.ID)
		if !ok {
			continue
		}
		for _, r := range b.a.st.ReactionsIn(m.Reactions()) {
			pathways := b.a.st.PathwaysIn(r.Pathways())
			if len(pathways) == 0 || anySelected(pathways, selected) {
				continue
			}
			for _, p := range pathways {
				if hidden[p.ID] {
					continue
				}
				summary := b.g.EnsureNode("pathway:"+p.ID, p.DisplayName(), graph.KindPathway)
				id := "ghost:" + p.ID + ":" + m.ID
				if _, exists := b.g.Edge(id); exists {
					continue
				}
				b.g.AddEdge(&graph.Edge{
					ID:        id,
					Source:    m.ID,
					Target:    summary.ID,
					Direction: "forward",
					Visible:   false,
				})
				added++
			}
		}
	}
	return added
}

func anySelected(pathways []*store.Pathway, selected map[string]bool) bool {
	for _, p := range pathways {
		if selected[p.ID] {
			return true
		}
	}
	return false
}
