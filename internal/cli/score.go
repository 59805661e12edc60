package cli

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/kittclouds/metaboviz/internal/pipeline"
	"github.com/kittclouds/metaboviz/pkg/analysis"
)

func newScoreCommand(a *app) *cobra.Command {
	var ef experimentFlags
	cmd := &cobra.Command{
		Use:     "score",
		Short:   "Score an experiment against the entity database",
		Example: `  metaboviz score --records kegg.json --data liver.tsv --control wt --test ko`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ef.apply(a.cfg)
			snap, res, err := a.score(cmd, &ef)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			t := newTable(w, "ID", "NAME", "CONTROL", "TEST", "DELTA", "SCORE", "BIN")
			for _, id := range res.IDs() {
				e, _ := res.Get(id)
				name := id
				if ent, ok := snap.Store.Entity(id); ok {
					name = ent.DisplayName()
				}
				t.addRow(id, name, formatFloat(e.MeanControl), formatFloat(e.MeanTest),
					formatFloat(e.Delta), formatFloat(e.Score), binString(e.Color))
			}
			t.render()
			fmt.Fprintf(w, "\n%d scored, %d unresolved, means in [%s, %s]\n",
				res.Len(), res.Unresolved, formatFloat(res.Minima), formatFloat(res.Maxima))
			return nil
		},
	}
	ef.register(cmd)
	_ = cmd.MarkFlagRequired("data")
	return cmd
}

// score loads the snapshot and the data file and runs the scorer.
func (a *app) score(cmd *cobra.Command, ef *experimentFlags) (*pipeline.Snapshot, *analysis.Result, error) {
	d, err := ef.dataset()
	if err != nil {
		return nil, nil, err
	}
	c, err := a.catalog(cmd.Context(), nil)
	if err != nil {
		return nil, nil, err
	}
	snap := c.Current()
	res, err := analysis.NewScorer(snap.Store, snap.Index, a.log).Score(d, a.cfg.Experiment)
	if err != nil {
		return nil, nil, err
	}
	return snap, res, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}

// binString colours a bin label: increases red, decreases blue.
func binString(bin int) string {
	s := strconv.Itoa(bin)
	switch {
	case bin < analysis.MidBin:
		return color.New(color.FgRed).Sprint(s)
	case bin > analysis.MidBin:
		return color.New(color.FgBlue).Sprint(s)
	}
	return s
}
