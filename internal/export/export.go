// Package export writes assembled graphs for renderers and reads layout maps.
// All I/O goes through hackpadfs so callers choose the backing file system:
// the CLI uses the OS, tests use memory.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/hack-pad/hackpadfs"
	osfs "github.com/hack-pad/hackpadfs/os"

	"github.com/kittclouds/metaboviz/pkg/graph"
)

// Document is the JSON form of an assembled graph.
type Document struct {
	Snapshot string          `json:"snapshot,omitempty"`
	Nodes    []*graph.Node   `json:"nodes"`
	Edges    []*graph.Edge   `json:"edges"`
	Clusters ClusterDocument `json:"clusters"`
	Stats    Stats           `json:"stats"`
}

// ClusterDocument groups clusters by axis.
type ClusterDocument struct {
	Pathway     []graph.Cluster `json:"pathway"`
	Compartment []graph.Cluster `json:"compartment"`
}

// Stats summarises the document for quick inspection.
type Stats struct {
	Nodes        int `json:"nodes"`
	Edges        int `json:"edges"`
	VisibleEdges int `json:"visibleEdges"`
	Junctions    int `json:"junctions"`
}

// NewDocument snapshots g. snapshot is the store snapshot the graph was
// assembled from and may be empty.
func NewDocument(snapshot string, g *graph.Graph) Document {
	doc := Document{
		Snapshot: snapshot,
		Nodes:    g.Nodes(),
		Edges:    g.Edges(),
		Clusters: ClusterDocument{
			Pathway:     g.PathwayClusters(),
			Compartment: g.CompartmentClusters(),
		},
		Stats: Stats{
			Nodes:        g.NodeCount(),
			Edges:        g.EdgeCount(),
			VisibleEdges: g.VisibleEdgeCount(),
			Junctions:    g.CountNodes(graph.KindDummy),
		},
	}
	if doc.Nodes == nil {
		doc.Nodes = []*graph.Node{}
	}
	if doc.Edges == nil {
		doc.Edges = []*graph.Edge{}
	}
	return doc
}

// Encode writes the indented JSON document for g to w.
func Encode(w io.Writer, snapshot string, g *graph.Graph) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewDocument(snapshot, g)); err != nil {
		return fmt.Errorf("failed to encode graph: %w", err)
	}
	return nil
}

// WriteGraph writes the JSON document for g to path, replacing any existing
// file.
func WriteGraph(fsys hackpadfs.FS, path, snapshot string, g *graph.Graph) error {
	var buf bytes.Buffer
	if err := Encode(&buf, snapshot, g); err != nil {
		return err
	}
	if err := hackpadfs.WriteFullFile(fsys, path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write graph file %s: %w", path, err)
	}
	return nil
}

// ReadLayout reads a layout map of the form {"id": [x, y], ...}.
func ReadLayout(fsys hackpadfs.FS, path string) (map[string]graph.Point, error) {
	content, err := hackpadfs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read layout file %s: %w", path, err)
	}
	var raw map[string][2]float64
	if err := json.Unmarshal(content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse layout file %s: %w", path, err)
	}
	layout := make(map[string]graph.Point, len(raw))
	for id, xy := range raw {
		layout[id] = graph.Point{X: xy[0], Y: xy[1]}
	}
	return layout, nil
}

// WriteLayout writes the positions of every placed node in g in the format
// ReadLayout accepts, so a computed layout can be pinned for later runs.
func WriteLayout(fsys hackpadfs.FS, path string, g *graph.Graph) error {
	raw := make(map[string][2]float64)
	for _, n := range g.Nodes() {
		if n.Position != nil {
			raw[n.ID] = [2]float64{n.Position.X, n.Position.Y}
		}
	}
	content, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode layout: %w", err)
	}
	if err := hackpadfs.WriteFullFile(fsys, path, content, 0644); err != nil {
		return fmt.Errorf("failed to write layout file %s: %w", path, err)
	}
	return nil
}

// OSFile maps an operating system path onto the OS file system and the
// slash-separated path hackpadfs expects.
func OSFile(path string) (hackpadfs.FS, string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	fsys := osfs.NewFS()
	fsPath, err := fsys.FromOSPath(abs)
	if err != nil {
		return nil, "", fmt.Errorf("failed to map %s: %w", path, err)
	}
	return fsys, fsPath, nil
}
