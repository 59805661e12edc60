package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/kittclouds/metaboviz/pkg/mining"
)

func newMineCommand(a *app) *cobra.Command {
	var (
		ef experimentFlags
		mf miningFlags
	)
	cmd := &cobra.Command{
		Use:   "mine",
		Short: "Rank the pathways most affected by an experiment",
		Example: `  metaboviz mine --records kegg.json --data liver.tsv --mode up --depth 10
  metaboviz mine --db kegg.db --data liver.tsv --shared --relative`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ef.apply(a.cfg)
			if err := mf.apply(cmd, a.cfg); err != nil {
				return err
			}
			snap, res, err := a.score(cmd, &ef)
			if err != nil {
				return err
			}
			ranking, err := mining.Mine(res, snap.Store, a.cfg.MiningSettings())
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			color.New(color.FgCyan, color.Bold).Fprintf(w, "Selected (%s, depth %d)\n", a.cfg.Mining.Mode, a.cfg.Mining.Depth)
			rankingTable(w, ranking.Selected, 1).render()
			if len(ranking.Remaining) > 0 {
				fmt.Fprintln(w)
				color.New(color.FgCyan, color.Bold).Fprintln(w, "Remaining")
				rankingTable(w, ranking.Remaining, len(ranking.Selected)+1).render()
			}
			return nil
		},
	}
	ef.register(cmd)
	mf.register(cmd)
	_ = cmd.MarkFlagRequired("data")
	return cmd
}

func rankingTable(w io.Writer, scored []mining.Scored, first int) *table {
	t := newTable(w, "RANK", "PATHWAY", "NAME", "SCORE", "REACTIONS")
	for i, s := range scored {
		t.addRow(strconv.Itoa(first+i), s.Pathway.ID, s.Pathway.DisplayName(),
			formatFloat(s.Score), strconv.Itoa(s.Pathway.Reactions().Len()))
	}
	return t
}
