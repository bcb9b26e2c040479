package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telepair/lifesrc/engine/coord"
	"github.com/telepair/lifesrc/engine/rule"
)

func lifeConfig(t *testing.T) Config {
	t.Helper()
	r, err := rule.Life()
	require.NoError(t, err)
	return Config{Width: 3, Height: 3, Period: 1, Symmetry: coord.C1, Rule: r}
}

func TestConfigValidateRejectsBadDimensions(t *testing.T) {
	cfg := lifeConfig(t)
	cfg.Width = 0
	assert.Error(t, cfg.Validate())
}

func TestConfigValidateRejectsBadPeriod(t *testing.T) {
	cfg := lifeConfig(t)
	cfg.Period = 0
	assert.Error(t, cfg.Validate())
}

func TestConfigValidateRejectsNilRule(t *testing.T) {
	cfg := lifeConfig(t)
	cfg.Rule = nil
	assert.Error(t, cfg.Validate())
}

func TestConfigValidateRejectsIncompatibleSymmetry(t *testing.T) {
	cfg := lifeConfig(t)
	cfg.Width, cfg.Height = 5, 3
	cfg.Symmetry = coord.D8
	assert.Error(t, cfg.Validate())
}

func TestConfigValidateRejectsIncompatibleTranslation(t *testing.T) {
	cfg := lifeConfig(t)
	cfg.Symmetry = coord.C2
	cfg.DX = 1
	assert.Error(t, cfg.Validate())
}

func TestConfigValidateRejectsOutOfBoundsKnownCell(t *testing.T) {
	cfg := lifeConfig(t)
	cfg.KnownCells = []KnownCell{{Coord: coord.Coord{X: 5, Y: 0, T: 0}, State: rule.Alive}}
	assert.Error(t, cfg.Validate())
}

func TestConfigValidateRejectsUnknownKnownCellState(t *testing.T) {
	cfg := lifeConfig(t)
	cfg.KnownCells = []KnownCell{{Coord: coord.Coord{X: 0, Y: 0, T: 0}, State: rule.Unknown}}
	assert.Error(t, cfg.Validate())
}

func TestConfigValidateRejectsBadSearchOrderAxes(t *testing.T) {
	cfg := lifeConfig(t)
	cfg.SearchOrderAxes = "xyz"
	assert.Error(t, cfg.Validate())
}

func TestConfigValidateAcceptsWellFormedConfig(t *testing.T) {
	cfg := lifeConfig(t)
	assert.NoError(t, cfg.Validate())
}

func TestConfigDefaultSearchOrderAxes(t *testing.T) {
	cfg := lifeConfig(t)
	assert.Equal(t, "xyt", cfg.defaultedSearchOrderAxes())
	cfg.SearchOrderAxes = "yxt"
	assert.Equal(t, "yxt", cfg.defaultedSearchOrderAxes())
}

func TestConfigMaxPopulationDefaultsToBoxArea(t *testing.T) {
	cfg := lifeConfig(t)
	assert.Equal(t, 9, cfg.maxPopulation())
	m := 2
	cfg.MaxPopulation = &m
	assert.Equal(t, 2, cfg.maxPopulation())
}
