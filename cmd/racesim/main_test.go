package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/racesim/internal/config"
	"github.com/san-kum/racesim/internal/resolve"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRunWithFlags(t *testing.T) {
	out, err := execute(t, "run", "--vehicles", "dodge,supra", "--boost", "a", "--wing", "oui", "--no-chart")
	require.NoError(t, err)

	assert.Contains(t, out, "Stage A: incline launch")
	assert.Contains(t, out, "Stage D: run-out")
	assert.Contains(t, out, "dodge")
	assert.Contains(t, out, "supra")
	assert.NotContains(t, out, "position (m) vs time")
}

func TestRunWithChart(t *testing.T) {
	out, err := execute(t, "run", "--vehicles", "rx_7", "--samples", "400")
	require.NoError(t, err)
	assert.Contains(t, out, "position (m) vs time")
}

func TestRunWithPreset(t *testing.T) {
	out, err := execute(t, "run", "--preset", "muscle", "--skirt", "oui", "--no-chart")
	require.NoError(t, err)
	assert.Contains(t, out, "camaro")

	_, err = execute(t, "run", "--preset", "nope")
	assert.ErrorContains(t, err, "unknown preset")
}

func TestRunRejectsUnknownVehicles(t *testing.T) {
	_, err := execute(t, "run", "--vehicles", "dodge,batmobile", "--no-chart")
	assert.ErrorIs(t, err, resolve.ErrUnknownVehicle)

	_, err = execute(t, "run", "--no-chart")
	assert.ErrorIs(t, err, resolve.ErrNoVehicles)
}

func TestRunReadsEnvironment(t *testing.T) {
	t.Setenv("RACESIM_VEHICLES", "lancer")
	t.Setenv("RACESIM_NO_CHART", "true")

	out, err := execute(t, "run")
	require.NoError(t, err)
	assert.Contains(t, out, "lancer")
	assert.NotContains(t, out, "position (m) vs time")
}

func TestRunWithConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.yaml")
	data := "selection:\n  vehicles: [skyline]\n  boost: d\nchart:\n  disabled: true\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	out, err := execute(t, "run", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "skyline")
	assert.NotContains(t, out, "position (m) vs time")
}

func TestRunSavesConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saved.yaml")

	_, err := execute(t, "run", "--vehicles", "supra,lancer", "--boost", "c", "--skirt", "oui",
		"--samples", "600", "--no-chart", "--save-config", path)
	require.NoError(t, err)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, resolve.Selection{Vehicles: []string{"supra", "lancer"}, Boost: resolve.BoostC, Skirt: true}, cfg.Selection)
	assert.Equal(t, 600, cfg.Grids.B.Samples)
	assert.True(t, cfg.Chart.Disabled)

	out, err := execute(t, "run", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "lancer")
	assert.NotContains(t, out, "position (m) vs time")
}

func TestRunWritesPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stages.png")

	_, err := execute(t, "run", "--vehicles", "camaro", "--no-chart", "--png", path)
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestRunRejectsBadGrid(t *testing.T) {
	_, err := execute(t, "run", "--vehicles", "dodge", "--samples", "1")
	assert.Error(t, err)
}

func TestVehiclesCommand(t *testing.T) {
	out, err := execute(t, "vehicles")
	require.NoError(t, err)
	for _, name := range []string{"dodge", "supra", "camaro", "rx_7", "skyline", "lancer"} {
		assert.Contains(t, out, name)
	}
}

func TestVehiclesCommandWithCatalogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garage.yaml")
	data := `vehicles:
  - name: kart
    mass: 150
    engine: 6
    length: 1.8
    width: 1.2
    height: 0.6
    drag: 0.6
    lift: 0.1
    friction: 0.1
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	out, err := execute(t, "vehicles", "--catalog", path)
	require.NoError(t, err)
	assert.Contains(t, out, "kart")
	assert.NotContains(t, out, "dodge")
}

func TestPresetsCommand(t *testing.T) {
	out, err := execute(t, "presets")
	require.NoError(t, err)
	assert.Contains(t, out, "jdm")
	assert.Contains(t, out, "muscle")
}

func TestInvalidLogFormat(t *testing.T) {
	_, err := execute(t, "presets", "--log-format", "xml")
	assert.Error(t, err)
}
