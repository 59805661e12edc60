package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraphBasics(t *testing.T) {
	g := New()

	g.EnsureNode("glc", "Glucose", KindMetabolite)
	g.EnsureNode("g6p", "Glucose 6-phosphate", KindMetabolite)
	g.EnsureNode("f6p", "Fructose 6-phosphate", KindMetabolite)

	if g.NodeCount() != 3 {
		t.Errorf("NodeCount = %d, want 3", g.NodeCount())
	}

	// EnsureNode returns the existing node
	again := g.EnsureNode("glc", "ignored", KindDummy)
	assert.Equal(t, "Glucose", again.Label)
	assert.Equal(t, 3, g.NodeCount())

	g.AddEdge(&Edge{ID: "r1", Source: "glc", Target: "g6p", Visible: true})
	g.AddEdge(&Edge{ID: "r2", Source: "g6p", Target: "f6p", Visible: true})

	if g.EdgeCount() != 2 {
		t.Errorf("EdgeCount = %d, want 2", g.EdgeCount())
	}

	neighbors := g.Neighbors("g6p")
	require.Len(t, neighbors, 2)
	assert.Equal(t, "f6p", neighbors[0].ID, "outbound neighbours come first")
	assert.Equal(t, "glc", neighbors[1].ID)
}

func TestOutgoingIncoming(t *testing.T) {
	g := New()
	g.EnsureNode("a", "A", KindMetabolite)
	g.EnsureNode("b", "B", KindMetabolite)

	// Parallel edges are distinct reactions.
	g.AddEdge(&Edge{ID: "r1", Source: "a", Target: "b", Direction: "forward"})
	g.AddEdge(&Edge{ID: "r2", Source: "a", Target: "b", Direction: "both"})

	outgoing := g.OutgoingEdges("a")
	require.Len(t, outgoing, 2)
	assert.Equal(t, "r1", outgoing[0].ID)
	assert.Equal(t, "both", outgoing[1].Direction)

	assert.Len(t, g.IncomingEdges("b"), 2)
	assert.Empty(t, g.IncomingEdges("a"))
	assert.Len(t, g.Neighbors("a"), 1)
}

func TestAddEdgeKeepsFirst(t *testing.T) {
	g := New()
	first := g.AddEdge(&Edge{ID: "e", Source: "a", Target: "b", Label: "first"})
	second := g.AddEdge(&Edge{ID: "e", Source: "b", Target: "a", Label: "second"})
	assert.Same(t, first, second)
	assert.Equal(t, 1, g.EdgeCount())
	assert.Empty(t, g.OutgoingEdges("b"))
}

func TestNodesAndEdgesKeepOrder(t *testing.T) {
	g := New()
	for _, id := range []string{"z", "a", "m"} {
		g.EnsureNode(id, id, KindMetabolite)
	}
	var ids []string
	for _, n := range g.Nodes() {
		ids = append(ids, n.ID)
	}
	assert.Equal(t, []string{"z", "a", "m"}, ids)
}

func TestCountNodesAndVisibleEdges(t *testing.T) {
	g := New()
	g.EnsureNode("a", "A", KindMetabolite)
	g.EnsureNode("j", "", KindDummy)
	g.EnsureNode("p", "P", KindPathway)
	g.AddEdge(&Edge{ID: "e1", Source: "a", Target: "j", Visible: true})
	g.AddEdge(&Edge{ID: "e2", Source: "a", Target: "p", Visible: false})

	assert.Equal(t, 1, g.CountNodes(KindDummy))
	assert.Equal(t, 1, g.CountNodes(KindPathway))
	assert.Equal(t, 1, g.VisibleEdgeCount())
}

func TestDegreeCentrality(t *testing.T) {
	g := New()
	g.EnsureNode("hub", "Hub", KindMetabolite)
	g.EnsureNode("a", "A", KindMetabolite)
	g.EnsureNode("b", "B", KindMetabolite)
	g.AddEdge(&Edge{ID: "1", Source: "hub", Target: "a"})
	g.AddEdge(&Edge{ID: "2", Source: "b", Target: "hub"})

	c := g.DegreeCentrality()
	assert.InDelta(t, 0.5, c["hub"], 1e-12)
	assert.InDelta(t, 0.25, c["a"], 1e-12)

	single := New()
	single.EnsureNode("x", "X", KindMetabolite)
	assert.Equal(t, map[string]float64{"x": 0}, single.DegreeCentrality())
}

func TestOrphanNodes(t *testing.T) {
	g := New()
	g.EnsureNode("a", "A", KindMetabolite)
	g.EnsureNode("b", "B", KindMetabolite)
	g.EnsureNode("lonely", "Lonely", KindMetabolite)
	g.AddEdge(&Edge{ID: "e", Source: "a", Target: "b"})

	orphans := g.OrphanNodes()
	require.Len(t, orphans, 1)
	assert.Equal(t, "lonely", orphans[0].ID)
}

func TestClusters(t *testing.T) {
	g := New()
	a := g.EnsureNode("a", "A", KindMetabolite)
	b := g.EnsureNode("b", "B", KindMetabolite)
	e := g.AddEdge(&Edge{ID: "e", Source: "a", Target: "b"})

	g.AddNodeToCluster(AxisPathway, "P2", a)
	g.AddNodeToCluster(AxisPathway, "P1", a)
	g.AddNodeToCluster(AxisPathway, "P1", a) // no-op
	g.AddNodeToCluster(AxisPathway, "P1", b)
	g.AddEdgeToCluster(AxisPathway, "P1", e)
	g.AddEdgeToCluster(AxisCompartment, "cytosol", e)
	g.AddEdgeToCluster(AxisCompartment, "cytosol", e) // no-op

	pathways := g.PathwayClusters()
	require.Len(t, pathways, 2)
	assert.Equal(t, "P2", pathways[0].ID)
	assert.Equal(t, []string{"a", "b"}, pathways[1].Nodes)
	assert.Equal(t, []string{"e"}, pathways[1].Edges)

	assert.Equal(t, []string{"P2", "P1"}, a.Pathways)
	assert.Equal(t, []string{"P1"}, e.Pathways)
	assert.Equal(t, []string{"cytosol"}, e.Compartments)

	cl, ok := g.Cluster(AxisCompartment, "cytosol")
	require.True(t, ok)
	assert.Equal(t, []string{"e"}, cl.Edges)
	assert.Empty(t, cl.Nodes)
	assert.Len(t, g.CompartmentClusters(), 1)

	_, ok = g.Cluster(AxisCompartment, "nucleus")
	assert.False(t, ok)
}
