// Package graph is the renderable output of graph assembly: an ordered,
// directed multigraph of metabolite, junction and pathway-summary nodes with
// cluster indexes along two axes (pathway and compartment).
//
// Nodes and edges keep insertion order so identical inputs serialise
// identically.
package graph

// NodeKind distinguishes what a node stands for.
type NodeKind string

const (
	KindMetabolite NodeKind = "metabolite"
	KindDummy      NodeKind = "dummy"   // reaction junction, never stored
	KindPathway    NodeKind = "pathway" // pathway summary, target of ghost links
)

// Axis is a clustering dimension. Clusters are non-structural: they group
// nodes and edges without changing connectivity.
type Axis string

const (
	AxisPathway     Axis = "pathway"
	AxisCompartment Axis = "compartment"
)

// Point is a fixed layout coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Style describes how to paint a node or edge. Colors holds one entry per
// segment; a single entry means a flat colour.
type Style struct {
	Colors []string `json:"colors,omitempty"`
	Bins   []int    `json:"bins,omitempty"`
}

// Node is a graph vertex.
type Node struct {
	ID           string   `json:"id"`
	Label        string   `json:"label"`
	Kind         NodeKind `json:"kind"`
	Style        Style    `json:"style"`
	Pathways     []string `json:"pathways,omitempty"`
	Compartments []string `json:"compartments,omitempty"`
	Position     *Point   `json:"position,omitempty"`
}

// Edge is a directed connection. Direction carries the reaction direction
// (forward, back or both); invisible edges are layout hints only.
type Edge struct {
	ID           string   `json:"id"`
	Source       string   `json:"source"`
	Target       string   `json:"target"`
	Label        string   `json:"label,omitempty"`
	Reaction     string   `json:"reaction,omitempty"`
	Direction    string   `json:"direction"`
	Visible      bool     `json:"visible"`
	Style        Style    `json:"style"`
	Pathways     []string `json:"pathways,omitempty"`
	Compartments []string `json:"compartments,omitempty"`
}

// Cluster lists the members of one cluster in insertion order.
type Cluster struct {
	ID    string   `json:"id"`
	Nodes []string `json:"nodes"`
	Edges []string `json:"edges"`
}

type clusterIndex struct {
	order    []*Cluster
	byID     map[string]*Cluster
	nodeSeen map[[2]string]bool
	edgeSeen map[[2]string]bool
}

func newClusterIndex() *clusterIndex {
	return &clusterIndex{
		byID:     make(map[string]*Cluster),
		nodeSeen: make(map[[2]string]bool),
		edgeSeen: make(map[[2]string]bool),
	}
}

func (c *clusterIndex) get(id string) *Cluster {
	cl, ok := c.byID[id]
	if !ok {
		cl = &Cluster{ID: id}
		c.byID[id] = cl
		c.order = append(c.order, cl)
	}
	return cl
}

// Graph is a directed multigraph. It is built by one assembler call and is
// not safe for concurrent mutation.
type Graph struct {
	nodes     []*Node
	nodeIndex map[string]*Node
	edges     []*Edge
	edgeIndex map[string]*Edge

	// Adjacency lists: node ID -> edges in insertion order
	outbound map[string][]*Edge
	inbound  map[string][]*Edge

	clusters map[Axis]*clusterIndex
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		nodeIndex: make(map[string]*Node),
		edgeIndex: make(map[string]*Edge),
		outbound:  make(map[string][]*Edge),
		inbound:   make(map[string][]*Edge),
		clusters: map[Axis]*clusterIndex{
			AxisPathway:     newClusterIndex(),
			AxisCompartment: newClusterIndex(),
		},
	}
}

// EnsureNode adds a node if it doesn't exist, returns existing node otherwise
func (g *Graph) EnsureNode(id, label string, kind NodeKind) *Node {
	if existing, ok := g.nodeIndex[id]; ok {
		return existing
	}
	n := &Node{ID: id, Label: label, Kind: kind}
	g.nodeIndex[id] = n
	g.nodes = append(g.nodes, n)
	return n
}

// AddEdge inserts e. An edge whose ID is already present is not replaced;
// the existing edge is returned.
func (g *Graph) AddEdge(e *Edge) *Edge {
	if existing, ok := g.edgeIndex[e.ID]; ok {
		return existing
	}
	g.edgeIndex[e.ID] = e
	g.edges = append(g.edges, e)
	g.outbound[e.Source] = append(g.outbound[e.Source], e)
	g.inbound[e.Target] = append(g.inbound[e.Target], e)
	return e
}

// Node retrieves a node by ID.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodeIndex[id]
	return n, ok
}

// Edge retrieves an edge by ID.
func (g *Graph) Edge(id string) (*Edge, bool) {
	e, ok := g.edgeIndex[id]
	return e, ok
}

// Nodes returns all nodes in insertion order.
func (g *Graph) Nodes() []*Node { return append([]*Node(nil), g.nodes...) }

// Edges returns all edges in insertion order.
func (g *Graph) Edges() []*Edge { return append([]*Edge(nil), g.edges...) }

// OutgoingEdges returns all edges originating from a node
func (g *Graph) OutgoingEdges(id string) []*Edge {
	return append([]*Edge(nil), g.outbound[id]...)
}

// IncomingEdges returns all edges pointing to a node
func (g *Graph) IncomingEdges(id string) []*Edge {
	return append([]*Edge(nil), g.inbound[id]...)
}

// Neighbors returns all nodes connected to the given node (both directions),
// outbound first.
func (g *Graph) Neighbors(id string) []*Node {
	seen := make(map[string]bool)
	var result []*Node
	visit := func(other string) {
		if seen[other] {
			return
		}
		seen[other] = true
		if n := g.nodeIndex[other]; n != nil {
			result = append(result, n)
		}
	}
	for _, e := range g.outbound[id] {
		visit(e.Target)
	}
	for _, e := range g.inbound[id] {
		visit(e.Source)
	}
	return result
}

// NodeCount returns the number of nodes
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges
func (g *Graph) EdgeCount() int { return len(g.edges) }

// CountNodes returns the number of nodes of one kind.
func (g *Graph) CountNodes(kind NodeKind) int {
	count := 0
	for _, n := range g.nodes {
		if n.Kind == kind {
			count++
		}
	}
	return count
}

// VisibleEdgeCount returns the number of visible edges.
func (g *Graph) VisibleEdgeCount() int {
	count := 0
	for _, e := range g.edges {
		if e.Visible {
			count++
		}
	}
	return count
}

// DegreeCentrality computes (in+out)/(2*(n-1)) for each node
func (g *Graph) DegreeCentrality() map[string]float64 {
	n := len(g.nodes)
	result := make(map[string]float64, n)
	if n <= 1 {
		for _, node := range g.nodes {
			result[node.ID] = 0.0
		}
		return result
	}

	normalizer := 2.0 * float64(n-1)
	for _, node := range g.nodes {
		degree := len(g.outbound[node.ID]) + len(g.inbound[node.ID])
		result[node.ID] = float64(degree) / normalizer
	}
	return result
}

// OrphanNodes returns nodes with no connections
func (g *Graph) OrphanNodes() []*Node {
	var orphans []*Node
	for _, n := range g.nodes {
		if len(g.outbound[n.ID]) == 0 && len(g.inbound[n.ID]) == 0 {
			orphans = append(orphans, n)
		}
	}
	return orphans
}

// =============================================================================
// Clusters
// =============================================================================

// AddNodeToCluster records node membership in a cluster along axis.
// Repeated calls are no-ops.
func (g *Graph) AddNodeToCluster(axis Axis, cluster string, n *Node) {
	idx := g.clusters[axis]
	key := [2]string{cluster, n.ID}
	if idx == nil || idx.nodeSeen[key] {
		return
	}
	idx.nodeSeen[key] = true
	cl := idx.get(cluster)
	cl.Nodes = append(cl.Nodes, n.ID)
	switch axis {
	case AxisPathway:
		n.Pathways = append(n.Pathways, cluster)
	case AxisCompartment:
		n.Compartments = append(n.Compartments, cluster)
	}
}

// AddEdgeToCluster records edge membership in a cluster along axis.
// Repeated calls are no-ops.
func (g *Graph) AddEdgeToCluster(axis Axis, cluster string, e *Edge) {
	idx := g.clusters[axis]
	key := [2]string{cluster, e.ID}
	if idx == nil || idx.edgeSeen[key] {
		return
	}
	idx.edgeSeen[key] = true
	cl := idx.get(cluster)
	cl.Edges = append(cl.Edges, e.ID)
	switch axis {
	case AxisPathway:
		e.Pathways = append(e.Pathways, cluster)
	case AxisCompartment:
		e.Compartments = append(e.Compartments, cluster)
	}
}

// Clusters returns the clusters along axis in order of first membership.
func (g *Graph) Clusters(axis Axis) []Cluster {
	idx := g.clusters[axis]
	if idx == nil {
		return nil
	}
	out := make([]Cluster, len(idx.order))
	for i, cl := range idx.order {
		out[i] = Cluster{
			ID:    cl.ID,
			Nodes: append([]string(nil), cl.Nodes...),
			Edges: append([]string(nil), cl.Edges...),
		}
	}
	return out
}

// Cluster returns one cluster along axis.
func (g *Graph) Cluster(axis Axis, id string) (Cluster, bool) {
	for _, cl := range g.Clusters(axis) {
		if cl.ID == id {
			return cl, true
		}
	}
	return Cluster{}, false
}

// PathwayClusters returns the pathway axis clusters.
func (g *Graph) PathwayClusters() []Cluster { return g.Clusters(AxisPathway) }

// CompartmentClusters returns the compartment axis clusters.
func (g *Graph) CompartmentClusters() []Cluster { return g.Clusters(AxisCompartment) }
