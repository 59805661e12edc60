// Package config loads metaboviz.yaml and environment overrides.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/kittclouds/metaboviz/internal/pipeline"
	"github.com/kittclouds/metaboviz/pkg/analysis"
	"github.com/kittclouds/metaboviz/pkg/assembler"
	"github.com/kittclouds/metaboviz/pkg/mining"
)

// ErrInvalid is returned for configuration values that cannot be clamped.
var ErrInvalid = errors.New("config: invalid value")

// Storage drivers.
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
)

// Config represents the metaboviz configuration
type Config struct {
	Storage    StorageConfig       `mapstructure:"storage"`
	Experiment analysis.Experiment `mapstructure:"experiment"`
	Mining     MiningConfig        `mapstructure:"mining"`
	Display    DisplayConfig       `mapstructure:"display"`
	Pathways   PathwaysConfig      `mapstructure:"pathways"`
	Log        LogConfig           `mapstructure:"log"`
}

// StorageConfig selects where entity records come from. The memory driver
// reads a JSON records file; the sqlite driver opens a database written by
// the import command.
type StorageConfig struct {
	Driver  string `mapstructure:"driver"`
	Path    string `mapstructure:"path"`
	Records string `mapstructure:"records"`
}

// MiningConfig represents pathway mining configuration
type MiningConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Mode     string `mapstructure:"mode"`
	Depth    int    `mapstructure:"depth"`
	Relative bool   `mapstructure:"relative"`
	Shared   bool   `mapstructure:"shared"`
}

// DisplayConfig represents graph display options
type DisplayConfig struct {
	ShowEnzymes       bool    `mapstructure:"show_enzymes"`
	ShowSecondary     bool    `mapstructure:"show_secondary"`
	ShowPathwayLinks  bool    `mapstructure:"show_pathway_links"`
	HighlightPathways bool    `mapstructure:"highlight_pathways"`
	HighlightRegions  bool    `mapstructure:"highlight_regions"`
	LayoutSpacing     float64 `mapstructure:"layout_spacing"`
}

// PathwaysConfig lists explicitly shown and hidden pathway ids.
type PathwaysConfig struct {
	Shown  []string `mapstructure:"shown"`
	Hidden []string `mapstructure:"hidden"`
}

// LogConfig represents logger configuration
type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// Load reads configuration from path, or from metaboviz.yaml in the working
// directory when path is empty. A missing default file is not an error.
// METABOVIZ_* environment variables override file values, e.g.
// METABOVIZ_MINING_DEPTH=10.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("metaboviz")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("METABOVIZ")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found - use defaults
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("storage.driver", DriverMemory)
	v.SetDefault("storage.path", "metaboviz.db")
	v.SetDefault("storage.records", "")
	v.SetDefault("experiment.control", []string{})
	v.SetDefault("experiment.test", []string{})
	v.SetDefault("mining.enabled", true)
	v.SetDefault("mining.mode", string(mining.ModeChange))
	v.SetDefault("mining.depth", mining.DefaultConfig().Depth)
	v.SetDefault("mining.relative", false)
	v.SetDefault("mining.shared", false)
	v.SetDefault("display.show_enzymes", true)
	v.SetDefault("display.show_secondary", false)
	v.SetDefault("display.show_pathway_links", true)
	v.SetDefault("display.highlight_pathways", false)
	v.SetDefault("display.highlight_regions", false)
	v.SetDefault("display.layout_spacing", assembler.DefaultOptions().LayoutSpacing)
	v.SetDefault("pathways.shown", []string{})
	v.SetDefault("pathways.hidden", []string{})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)
}

// Validate clamps out-of-range numbers and rejects unknown names.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverMemory, DriverSQLite:
	default:
		return fmt.Errorf("%w: storage.driver must be %q or %q, got %q", ErrInvalid, DriverMemory, DriverSQLite, c.Storage.Driver)
	}
	mode, err := mining.ParseMode(c.Mining.Mode)
	if err != nil {
		return fmt.Errorf("%w: mining.mode: %v", ErrInvalid, err)
	}
	c.Mining.Mode = string(mode)
	if c.Mining.Depth < 0 {
		c.Mining.Depth = 0
	}
	if c.Display.LayoutSpacing <= 0 {
		c.Display.LayoutSpacing = assembler.DefaultOptions().LayoutSpacing
	}
	return nil
}

// MiningSettings converts the mining section.
func (c *Config) MiningSettings() mining.Config {
	return mining.Config{
		Mode:     mining.Mode(c.Mining.Mode),
		Relative: c.Mining.Relative,
		Shared:   c.Mining.Shared,
		Depth:    c.Mining.Depth,
	}
}

// AssemblerOptions converts the display section.
func (c *Config) AssemblerOptions() assembler.Options {
	return assembler.Options{
		ShowEnzymes:       c.Display.ShowEnzymes,
		ShowSecondary:     c.Display.ShowSecondary,
		ShowPathwayLinks:  c.Display.ShowPathwayLinks,
		Mining:            c.Mining.Enabled,
		HighlightPathways: c.Display.HighlightPathways,
		HighlightRegions:  c.Display.HighlightRegions,
		LayoutSpacing:     c.Display.LayoutSpacing,
		Palette:           analysis.DefaultPalette,
	}
}

// Pipeline assembles the per-run pipeline configuration.
func (c *Config) Pipeline() pipeline.Config {
	return pipeline.Config{
		Experiment: c.Experiment,
		Mining:     c.MiningSettings(),
		Options:    c.AssemblerOptions(),
		Shown:      append([]string(nil), c.Pathways.Shown...),
		Hidden:     append([]string(nil), c.Pathways.Hidden...),
	}
}
