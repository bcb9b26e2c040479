package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telepair/lifesrc/engine/coord"
	"github.com/telepair/lifesrc/engine/rule"
)

func TestWorldAllocatesOneCellPerLatticePointPlusBoundary(t *testing.T) {
	r, err := rule.Life()
	require.NoError(t, err)
	cfg := Config{Width: 3, Height: 4, Period: 2, Symmetry: coord.C1, Rule: r}
	w := newWorld(cfg)
	assert.Len(t, w.cells, 3*4*2+1)
}

func TestWorldBoundaryIsFrozenDeadAndSelfReferential(t *testing.T) {
	r, err := rule.Life()
	require.NoError(t, err)
	cfg := Config{Width: 2, Height: 2, Period: 1, Symmetry: coord.C1, Rule: r}
	w := newWorld(cfg)
	b := w.cells[boundary]
	assert.Equal(t, rule.Dead, b.state)
	assert.True(t, b.frozen)
	assert.Equal(t, boundary, b.predecessor)
	assert.Equal(t, boundary, b.successor)
}

func TestWorldCornerCellHasBoundaryNeighbors(t *testing.T) {
	r, err := rule.Life()
	require.NoError(t, err)
	cfg := Config{Width: 3, Height: 3, Period: 1, Symmetry: coord.C1, Rule: r}
	w := newWorld(cfg)
	corner := w.index(0, 0, 0)
	boundaryCount := 0
	for _, n := range w.cells[corner].neighbors {
		if n == boundary {
			boundaryCount++
		}
	}
	// A Moore(1) corner cell in a 3x3 box has 5 of its 8 neighbors
	// outside the box.
	assert.Equal(t, 5, boundaryCount)
	assert.Len(t, w.cells[corner].neighbors, 8)
}

func TestWorldSuccessorWrapsWithTranslation(t *testing.T) {
	r, err := rule.Life()
	require.NoError(t, err)
	cfg := Config{Width: 5, Height: 5, Period: 1, DX: 1, DY: 0, Symmetry: coord.C1, Rule: r}
	w := newWorld(cfg)
	idx := w.index(2, 2, 0)
	assert.Equal(t, w.index(3, 2, 0), w.cells[idx].successor)

	edge := w.index(4, 2, 0)
	assert.Equal(t, boundary, w.cells[edge].successor)
}

func TestWorldSuccessorWithinPeriodIsNextPhaseSameCell(t *testing.T) {
	r, err := rule.Life()
	require.NoError(t, err)
	cfg := Config{Width: 3, Height: 3, Period: 3, Symmetry: coord.C1, Rule: r}
	w := newWorld(cfg)
	idx := w.index(1, 1, 0)
	assert.Equal(t, w.index(1, 1, 1), w.cells[idx].successor)
}

func TestWorldPeersExcludeSelf(t *testing.T) {
	r, err := rule.Life()
	require.NoError(t, err)
	cfg := Config{Width: 4, Height: 4, Period: 1, Symmetry: coord.D8, Rule: r}
	w := newWorld(cfg)
	idx := w.index(0, 0, 0)
	for _, p := range w.cells[idx].peers {
		assert.NotEqual(t, idx, p)
	}
	// The (0,0) corner has orbit size 4 under D8 on a square box.
	assert.Len(t, w.cells[idx].peers, 3)
}

func TestWorldSearchOrderOnlyContainsRepresentatives(t *testing.T) {
	r, err := rule.Life()
	require.NoError(t, err)
	cfg := Config{Width: 4, Height: 4, Period: 1, Symmetry: coord.D8, Rule: r}
	w := newWorld(cfg)
	for _, idx := range w.searchOrder {
		c := w.cells[idx]
		assert.True(t, coord.D8.IsRepresentative(coord.Point{X: c.coord.X, Y: c.coord.Y}, 4, 4))
	}
}

func TestWorldSearchOrderUnderC1CoversEveryCellOncePerPhase(t *testing.T) {
	r, err := rule.Life()
	require.NoError(t, err)
	cfg := Config{Width: 3, Height: 2, Period: 2, Symmetry: coord.C1, Rule: r}
	w := newWorld(cfg)
	assert.Len(t, w.searchOrder, 3*2*2)
}

func TestWorldInitialDescriptorCountsBoundaryAsDeadNotUnknown(t *testing.T) {
	r, err := rule.Life()
	require.NoError(t, err)
	cfg := Config{Width: 3, Height: 3, Period: 1, Symmetry: coord.C1, Rule: r}
	w := newWorld(cfg)
	corner := w.index(0, 0, 0)
	d := w.cells[corner].desc
	assert.Equal(t, 5, d.dead)
	assert.Equal(t, 3, d.unknown)
	assert.Equal(t, 0, d.alive)
}
