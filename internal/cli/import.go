package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/kittclouds/metaboviz/internal/store"
)

func newImportCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import",
		Short: "Persist JSON entity records into a SQLite database",
		Long: `Decode a JSON entity records file and store it in a SQLite database.

Records are validated with the same rules used at load time; rejected
records are reported but still stored, so a corrected loader can be
re-run against the database later.`,
		Example: `  metaboviz import --records kegg.json --db kegg.db`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.Storage.Records == "" {
				return fmt.Errorf("import needs --records")
			}
			dbPath := a.cfg.Storage.Path

			recs, err := readRecords(a.cfg.Storage.Records)
			if err != nil {
				return err
			}
			st, err := store.Build(recs, a.log)
			if err != nil {
				return err
			}

			dst, err := store.NewSQLiteSource(dbPath)
			if err != nil {
				return err
			}
			defer dst.Close()
			if err := dst.Save(cmd.Context(), recs); err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			color.New(color.FgGreen, color.Bold).Fprintf(w, "Imported %d records into %s\n", recs.Len(), dbPath)
			stats := st.Stats()
			fmt.Fprintf(w, "  metabolites %d, reactions %d, pathways %d, proteins %d, genes %d\n",
				stats.Metabolites, stats.Reactions, stats.Pathways, stats.Proteins, stats.Genes)

			if rejected := st.Rejected(); len(rejected) > 0 {
				warn := color.New(color.FgYellow)
				warn.Fprintf(w, "%d records rejected:\n", len(rejected))
				for _, r := range rejected {
					warn.Fprintf(w, "  %s %s: %s\n", r.Kind, r.ID, r.Reason)
				}
			}
			return nil
		},
	}
}
