package cli

import (
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		// version needs no configuration
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			w := cmd.OutOrStdout()
			titleColor := color.New(color.FgCyan, color.Bold)

			titleColor.Fprint(w, "metaboviz version: ")
			color.New(color.FgWhite).Fprintln(w, Version)
			titleColor.Fprint(w, "Git commit: ")
			color.New(color.FgWhite).Fprintln(w, GitCommit)
			titleColor.Fprint(w, "Build date: ")
			color.New(color.FgWhite).Fprintln(w, BuildDate)
			titleColor.Fprint(w, "Go version: ")
			color.New(color.FgWhite).Fprintln(w, runtime.Version())
		},
	}
}
