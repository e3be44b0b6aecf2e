package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hospitalroster/duty-scheduler/internal/roster/config"
)

func TestDefaultPassesValidation(t *testing.T) {
	cfg := config.Default()
	assert.NoError(t, config.Validate(&cfg))
}

func TestHardWeightsDominateSoftWeights(t *testing.T) {
	// Hard weights >= 1e5, soft weights <= 1e3 -- a single hard violation
	// must outrank any plausible sum of soft penalties.
	cfg := config.Default()
	hard := []float64{cfg.WNoDoctor, cfg.WNoNurse, cfg.WLessThan5, cfg.WNoSenior, cfg.WWrongDept, cfg.WDayOff}
	soft := []float64{cfg.WOver30h, cfg.WNoRest, cfg.WOverMonthly, cfg.WUnderMonthly, cfg.WFairness}

	for _, h := range hard {
		assert.GreaterOrEqual(t, h, 100_000.0)
	}
	for _, s := range soft {
		assert.LessOrEqual(t, s, 1_000.0)
	}
}

func TestValidateRejectsEliteSizeAtOrAbovePopulation(t *testing.T) {
	cfg := config.Default()
	cfg.EliteSize = cfg.PopulationSize
	assert.Error(t, config.Validate(&cfg))
}

func TestLoadFromPathLayersOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tunables.yaml")
	require.NoError(t, os.WriteFile(path, []byte("MAX_HOURS_PER_WEEK: 36\nPOPULATION_SIZE: 80\n"), 0o644))

	cfg, err := config.LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, 36, cfg.MaxHoursPerWeek)
	assert.Equal(t, 80, cfg.PopulationSize)
	// Everything else still carries the default.
	assert.Equal(t, config.Default().MinNursePerShift, cfg.MinNursePerShift)
}

func TestApplyOverridesRejectsUnknownKeys(t *testing.T) {
	cfg := config.Default()
	err := config.ApplyOverrides(&cfg, map[string]any{"NOT_A_REAL_KEY": 1})
	assert.Error(t, err)
}

func TestApplyOverridesAcceptsFloat64FromJSON(t *testing.T) {
	// encoding/json unmarshals numeric map values as float64; overrides
	// coming from an HTTP body must still work for integer fields.
	cfg := config.Default()
	err := config.ApplyOverrides(&cfg, map[string]any{"POPULATION_SIZE": float64(64)})
	require.NoError(t, err)
	assert.Equal(t, 64, cfg.PopulationSize)
}
