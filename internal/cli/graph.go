package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/kittclouds/metaboviz/internal/export"
	"github.com/kittclouds/metaboviz/internal/pipeline"
	"github.com/kittclouds/metaboviz/pkg/graph"
)

func newGraphCommand(a *app) *cobra.Command {
	var (
		ef        experimentFlags
		mf        miningFlags
		layout    string
		out       string
		layoutOut string
		show      []string
		hide      []string
		mine      bool
	)
	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Assemble the pathway graph and export it as JSON",
		Long: `Assemble the graph of the shown and mined pathways.

With --data the experiment is scored and nodes and edges are coloured by
score; with mining enabled the best pathways are added to the selection.
Without --out the document is written to standard output.`,
		Example: `  metaboviz graph --records kegg.json --show glycolysis --out graph.json
  metaboviz graph --db kegg.db --data liver.tsv --layout pinned.json --out graph.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ef.apply(a.cfg)
			if err := mf.apply(cmd, a.cfg); err != nil {
				return err
			}
			if cmd.Flags().Changed("mine") {
				a.cfg.Mining.Enabled = mine
			}
			if cmd.Flags().Changed("show") {
				a.cfg.Pathways.Shown = show
			}
			if cmd.Flags().Changed("hide") {
				a.cfg.Pathways.Hidden = hide
			}

			var in pipeline.Input
			var err error
			if in.Dataset, err = ef.dataset(); err != nil {
				return err
			}
			if layout != "" {
				if in.Layout, err = readLayout(layout); err != nil {
					return err
				}
			}

			metrics := pipeline.NewMetrics(nil)
			c, err := a.catalog(cmd.Context(), metrics)
			if err != nil {
				return err
			}
			runner := pipeline.NewRunner(pipeline.New(metrics, a.log), c, a.log)
			result, err := runner.Submit(cmd.Context(), in, a.cfg.Pipeline())
			if err != nil {
				return err
			}

			if layoutOut != "" {
				fsys, path, err := export.OSFile(layoutOut)
				if err != nil {
					return err
				}
				if err := export.WriteLayout(fsys, path, result.Graph); err != nil {
					return err
				}
			}
			if out == "" {
				return export.Encode(cmd.OutOrStdout(), result.Snapshot.ID(), result.Graph)
			}
			fsys, path, err := export.OSFile(out)
			if err != nil {
				return err
			}
			if err := export.WriteGraph(fsys, path, result.Snapshot.ID(), result.Graph); err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			color.New(color.FgGreen, color.Bold).Fprintf(w, "Wrote %s\n", out)
			fmt.Fprintf(w, "  pathways %d, nodes %d, edges %d (%d visible), junctions %d\n",
				len(result.Graph.PathwayClusters()), result.Graph.NodeCount(), result.Graph.EdgeCount(),
				result.Graph.VisibleEdgeCount(), result.Graph.CountNodes(graph.KindDummy))
			if result.Ranking != nil {
				fmt.Fprintf(w, "  mined %v\n", result.Ranking.SelectedIDs())
			}
			return nil
		},
	}
	ef.register(cmd)
	mf.register(cmd)
	cmd.Flags().StringVar(&layout, "layout", "", "JSON layout map {id: [x, y]} of fixed positions")
	cmd.Flags().StringVar(&out, "out", "", "Graph JSON output file")
	cmd.Flags().StringVar(&layoutOut, "layout-out", "", "Write the computed positions as a layout map")
	cmd.Flags().StringSliceVar(&show, "show", nil, "Pathway ids to draw (overrides pathways.shown)")
	cmd.Flags().StringSliceVar(&hide, "hide", nil, "Pathway ids never to draw (overrides pathways.hidden)")
	cmd.Flags().BoolVar(&mine, "mine", true, "Add mined pathways to the selection")
	return cmd
}

func readLayout(path string) (map[string]graph.Point, error) {
	fsys, fsPath, err := export.OSFile(path)
	if err != nil {
		return nil, err
	}
	return export.ReadLayout(fsys, fsPath)
}
