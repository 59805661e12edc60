package cli

import (
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/kittclouds/metaboviz/pkg/synonym"
)

func newResolveCommand(a *app) *cobra.Command {
	var scan bool
	cmd := &cobra.Command{
		Use:   "resolve <name>...",
		Short: "Look up entities by name, synonym or db:id",
		Example: `  metaboviz resolve --records kegg.json Dextrose KEGG:C00092
  metaboviz resolve --db kegg.db --scan "glucose is phosphorylated to G6P"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.catalog(cmd.Context(), nil)
			if err != nil {
				return err
			}
			ix := c.Current().Index
			w := cmd.OutOrStdout()

			if scan {
				mentions := ix.Scanner().Scan(strings.Join(args, " "))
				t := newTable(w, "TEXT", "OFFSET", "ID", "KIND")
				for _, m := range mentions {
					t.addRow(m.Text, strconv.Itoa(m.Start), m.Entity.EntityID(), string(m.Entity.Kind()))
				}
				t.render()
				return nil
			}

			missing := color.New(color.FgRed).Sprint("not found")
			var sg *synonym.Suggester
			t := newTable(w, "QUERY", "ID", "KIND", "NAME", "SYNONYMS")
			for _, q := range args {
				e, ok := ix.ResolveAny(q)
				if !ok {
					if sg == nil {
						sg = ix.Suggester()
					}
					var hints []string
					for _, s := range sg.Suggest(q, 3) {
						hints = append(hints, s.Name)
					}
					if len(hints) == 0 {
						t.addRow(q, missing)
					} else {
						t.addRow(q, missing, "", "did you mean: "+strings.Join(hints, ", "))
					}
					continue
				}
				t.addRow(q, e.EntityID(), string(e.Kind()), e.DisplayName(), strings.Join(ix.Names(e.EntityID()), ", "))
			}
			t.render()
			return nil
		},
	}
	cmd.Flags().BoolVar(&scan, "scan", false, "Treat the arguments as free text and list every entity mention")
	return cmd
}
