// Package cli implements the metaboviz command line.
package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kittclouds/metaboviz/internal/config"
	"github.com/kittclouds/metaboviz/internal/export"
	"github.com/kittclouds/metaboviz/internal/logging"
	"github.com/kittclouds/metaboviz/internal/pipeline"
	"github.com/kittclouds/metaboviz/internal/store"
)

var (
	// Version information - set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// app carries the global flags and what PersistentPreRunE derives from them.
type app struct {
	configPath string
	db         string
	records    string
	logLevel   string
	noColor    bool

	cfg *config.Config
	log *zap.Logger
}

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	a := &app{}
	rootCmd := &cobra.Command{
		Use:   "metaboviz",
		Short: "Metabolic pathway graphs driven by experimental data",
		Long: color.CyanString(`metaboviz - pathway graph assembly and relevance mining

Loads a metabolic network (metabolites, reactions, pathways, proteins,
genes), scores a control-versus-test experiment on it, ranks the pathways
most affected and assembles a renderable graph of the selection.`),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "Config file (default ./metaboviz.yaml)")
	flags.StringVar(&a.db, "db", "", "SQLite database written by 'metaboviz import'")
	flags.StringVar(&a.records, "records", "", "JSON entity records file")
	flags.StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	flags.BoolVar(&a.noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(NewVersionCommand())
	rootCmd.AddCommand(newImportCommand(a))
	rootCmd.AddCommand(newResolveCommand(a))
	rootCmd.AddCommand(newScoreCommand(a))
	rootCmd.AddCommand(newMineCommand(a))
	rootCmd.AddCommand(newGraphCommand(a))

	return rootCmd
}

// setup loads configuration, applies flag overrides and builds the logger.
// --db selects the sqlite driver; otherwise --records selects the memory
// driver.
func (a *app) setup() error {
	if a.noColor {
		color.NoColor = true
	}
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	switch {
	case a.db != "":
		cfg.Storage.Driver = config.DriverSQLite
		cfg.Storage.Path = a.db
	case a.records != "":
		cfg.Storage.Driver = config.DriverMemory
		cfg.Storage.Records = a.records
	}
	if a.records != "" {
		cfg.Storage.Records = a.records
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = logger
	return nil
}

// source opens the configured entity source.
func (a *app) source() (store.Source, error) {
	switch a.cfg.Storage.Driver {
	case config.DriverSQLite:
		return store.NewSQLiteSource(a.cfg.Storage.Path)
	default:
		if a.cfg.Storage.Records == "" {
			return nil, fmt.Errorf("no entity records: pass --records or --db, or set storage.records")
		}
		recs, err := readRecords(a.cfg.Storage.Records)
		if err != nil {
			return nil, err
		}
		return store.NewMemSource(recs), nil
	}
}

// catalog loads the configured source into a fresh catalog.
func (a *app) catalog(ctx context.Context, metrics *pipeline.Metrics) (*pipeline.Catalog, error) {
	src, err := a.source()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	c := pipeline.NewCatalog(metrics, a.log)
	if _, err := c.Load(ctx, src); err != nil {
		return nil, err
	}
	return c, nil
}

func readRecords(path string) (*store.Records, error) {
	fsys, fsPath, err := export.OSFile(path)
	if err != nil {
		return nil, err
	}
	f, err := fsys.Open(fsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open records file: %w", err)
	}
	defer f.Close()
	return store.DecodeRecords(f)
}

// Execute runs the root command
func Execute(ctx context.Context) error {
	rootCmd := NewRootCommand()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		errorColor := color.New(color.FgRed, color.Bold)
		errorColor.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
		return err
	}
	return nil
}
