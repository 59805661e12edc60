package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kittclouds/metaboviz/pkg/mining"
)

func TestLoadDefaults(t *testing.T) {
	// No metaboviz.yaml in the working directory: defaults apply.
	chdir(t, t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
	assert.Equal(t, "metaboviz.db", cfg.Storage.Path)
	assert.True(t, cfg.Mining.Enabled)
	assert.Equal(t, "change", cfg.Mining.Mode)
	assert.Equal(t, 5, cfg.Mining.Depth)
	assert.True(t, cfg.Display.ShowEnzymes)
	assert.Equal(t, 20.0, cfg.Display.LayoutSpacing)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadWithConfigFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	configContent := `
storage:
  driver: sqlite
  path: data/kegg.db
experiment:
  control: [wt1, wt2]
  test: [ko]
mining:
  mode: UP
  depth: 12
  shared: true
display:
  show_secondary: true
  highlight_regions: true
pathways:
  shown: [glycolysis]
  hidden: [ppp]
log:
  level: debug
  development: true
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "metaboviz.yaml"), []byte(configContent), 0644))

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, "data/kegg.db", cfg.Storage.Path)
	assert.Equal(t, []string{"wt1", "wt2"}, cfg.Experiment.Control)
	assert.Equal(t, []string{"ko"}, cfg.Experiment.Test)
	assert.Equal(t, []string{"glycolysis"}, cfg.Pathways.Shown)
	assert.Equal(t, []string{"ppp"}, cfg.Pathways.Hidden)
	assert.True(t, cfg.Log.Development)

	m := cfg.MiningSettings()
	assert.Equal(t, mining.ModeUp, m.Mode, "mode is normalised")
	assert.Equal(t, 12, m.Depth)
	assert.True(t, m.Shared)
	assert.False(t, m.Relative)

	opts := cfg.AssemblerOptions()
	assert.True(t, opts.ShowSecondary)
	assert.True(t, opts.HighlightRegions)
	assert.True(t, opts.Mining)

	pc := cfg.Pipeline()
	assert.Equal(t, cfg.Experiment, pc.Experiment)
	assert.Equal(t, m, pc.Mining)
	assert.Equal(t, []string{"glycolysis"}, pc.Shown)
	assert.Equal(t, []string{"ppp"}, pc.Hidden)
	assert.True(t, pc.Options.Mining)
}

func TestLoadExplicitPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("mining:\n  depth: 3\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Mining.Depth)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err, "an explicit path must exist")
}

func TestLoadEnvOverride(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("METABOVIZ_MINING_DEPTH", "9")
	t.Setenv("METABOVIZ_MINING_MODE", "down")
	t.Setenv("METABOVIZ_LOG_LEVEL", "warn")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.Mining.Depth)
	assert.Equal(t, "down", cfg.Mining.Mode)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{
			Storage: StorageConfig{Driver: DriverMemory},
			Mining:  MiningConfig{Mode: "count", Depth: -4},
		}
	}

	cfg := base()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 0, cfg.Mining.Depth, "negative depth is clamped")
	assert.Equal(t, 20.0, cfg.Display.LayoutSpacing)

	cfg = base()
	cfg.Mining.Mode = "sideways"
	assert.ErrorIs(t, cfg.Validate(), ErrInvalid)

	cfg = base()
	cfg.Storage.Driver = "postgres"
	assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
}

// chdir changes the working directory for the duration of the test
// (stand-in for testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
