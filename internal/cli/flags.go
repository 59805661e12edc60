package cli

import (
	"github.com/spf13/cobra"

	"github.com/kittclouds/metaboviz/internal/config"
	"github.com/kittclouds/metaboviz/internal/dataset"
	"github.com/kittclouds/metaboviz/internal/export"
	"github.com/kittclouds/metaboviz/pkg/analysis"
)

// experimentFlags select a data file and optionally override the configured
// experiment groups.
type experimentFlags struct {
	data    string
	control []string
	test    []string
}

func (f *experimentFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.data, "data", "", "Tab-delimited experimental data file")
	cmd.Flags().StringSliceVar(&f.control, "control", nil, "Control class labels (overrides experiment.control)")
	cmd.Flags().StringSliceVar(&f.test, "test", nil, "Test class labels (overrides experiment.test)")
}

func (f *experimentFlags) apply(cfg *config.Config) {
	if len(f.control) > 0 {
		cfg.Experiment.Control = f.control
	}
	if len(f.test) > 0 {
		cfg.Experiment.Test = f.test
	}
}

// dataset reads the data file, or returns nil when none was given.
func (f *experimentFlags) dataset() (*analysis.Dataset, error) {
	if f.data == "" {
		return nil, nil
	}
	fsys, path, err := export.OSFile(f.data)
	if err != nil {
		return nil, err
	}
	return dataset.Load(fsys, path)
}

// miningFlags override the configured mining section when set.
type miningFlags struct {
	mode     string
	depth    int
	relative bool
	shared   bool
}

func (f *miningFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.mode, "mode", "", "Mining mode: change, up, down or count")
	cmd.Flags().IntVar(&f.depth, "depth", 0, "Number of pathways to select")
	cmd.Flags().BoolVar(&f.relative, "relative", false, "Divide pathway scores by reaction count")
	cmd.Flags().BoolVar(&f.shared, "shared", false, "Split entity contributions across their pathways")
}

func (f *miningFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("mode") {
		cfg.Mining.Mode = f.mode
	}
	if flags.Changed("depth") {
		cfg.Mining.Depth = f.depth
	}
	if flags.Changed("relative") {
		cfg.Mining.Relative = f.relative
	}
	if flags.Changed("shared") {
		cfg.Mining.Shared = f.shared
	}
	return cfg.Validate()
}
