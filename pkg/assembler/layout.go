package assembler

import (
	"math"

	"github.com/kittclouds/metaboviz/internal/store"
	"github.com/kittclouds/metaboviz/pkg/graph"
)

// maxSearchRadius bounds the junction collision search.
const maxSearchRadius = 64

// ringOffsets are the eight neighbour directions, searched in this order.
var ringOffsets = [8][2]float64{
	{1, 0}, {0, 1}, {-1, 0}, {0, -1},
	{1, 1}, {-1, 1}, {-1, -1}, {1, -1},
}

// place applies a layout map. Mapped nodes, junctions included, get their
// coordinates verbatim. An unmapped junction sits at the centroid of its
// reaction's placed metabolites; if that point is occupied it moves to the
// first free eight-neighbour offset at increasing radius. Nodes with nothing
// to anchor them stay unpositioned. Returns the number of placed nodes.
func (b *build) place(layout map[string]graph.Point) int {
	if len(layout) == 0 {
		return 0
	}

	var occupied []graph.Point
	placed := 0
	for _, n := range b.g.Nodes() {
		if p, ok := layout[n.ID]; ok {
			pos := p
			n.Position = &pos
			occupied = append(occupied, pos)
			placed++
		}
	}

	spacing := b.a.opts.LayoutSpacing
	for _, d := range b.drawn {
		for _, n := range d.nodes {
			if n.Kind != graph.KindDummy || n.Position != nil {
				continue
			}
			want, ok := centroid(d.reaction, b.g)
			if !ok {
				continue
			}
			pos := freePoint(want, occupied, spacing)
			n.Position = &pos
			occupied = append(occupied, pos)
			placed++
		}
	}
	return placed
}

func centroid(r *store.Reaction, g *graph.Graph) (graph.Point, bool) {
	var sum graph.Point
	count := 0
	for _, side := range [][]*store.Metabolite{r.PrimaryInputs, r.PrimaryOutputs} {
		for _, m := range side {
			n, ok := g.Node(m.ID)
			if !ok || n.Position == nil {
				continue
			}
			sum.X += n.Position.X
			sum.Y += n.Position.Y
			count++
		}
	}
	if count == 0 {
		return graph.Point{}, false
	}
	return graph.Point{X: sum.X / float64(count), Y: sum.Y / float64(count)}, true
}

// freePoint returns want if no occupied point lies within half a spacing of
// it, else the first free ring offset.
func freePoint(want graph.Point, occupied []graph.Point, spacing float64) graph.Point {
	if !collides(want, occupied, spacing) {
		return want
	}
	for radius := 1; radius <= maxSearchRadius; radius++ {
		step := float64(radius) * spacing
		for _, off := range ringOffsets {
			p := graph.Point{X: want.X + off[0]*step, Y: want.Y + off[1]*step}
			if !collides(p, occupied, spacing) {
				return p
			}
		}
	}
	return want
}

func collides(p graph.Point, occupied []graph.Point, spacing float64) bool {
	half := spacing / 2
	for _, o := range occupied {
		if math.Abs(o.X-p.X) < half && math.Abs(o.Y-p.Y) < half {
			return true
		}
	}
	return false
}
