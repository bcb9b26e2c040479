package rule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOuterTotalisticLife(t *testing.T) {
	r, err := Life()
	require.NoError(t, err)
	assert.Equal(t, 8, r.K())
	assert.Equal(t, []int{3}, r.BirthCounts())
	assert.Equal(t, []int{2, 3}, r.SurviveCounts())
	assert.Equal(t, "B3/S23", r.Identity())
}

func TestNewOuterTotalisticRejectsOversizedNeighborhood(t *testing.T) {
	_, err := NewOuterTotalistic(MooreNeighborhood(3), []int{3}, []int{2, 3}, "toobig")
	assert.Error(t, err)
}

func TestNewOuterTotalisticRejectsOutOfRangeCounts(t *testing.T) {
	_, err := NewOuterTotalistic(MooreNeighborhood(1), []int{9}, nil, "bad")
	assert.Error(t, err)
}

func TestNewOuterTotalisticRejectsDuplicateOffsets(t *testing.T) {
	offsets := append(MooreNeighborhood(1), Offset{DX: 1, DY: 1})
	_, err := NewOuterTotalistic(offsets, []int{3}, []int{2, 3}, "dup")
	assert.Error(t, err)
}

func TestTransitionLife(t *testing.T) {
	r, err := Life()
	require.NoError(t, err)

	// Survival: a live cell with 2 or 3 neighbors stays alive.
	assert.Equal(t, Alive, r.Transition(Alive, 2))
	assert.Equal(t, Alive, r.Transition(Alive, 3))
	assert.Equal(t, Dead, r.Transition(Alive, 1))
	assert.Equal(t, Dead, r.Transition(Alive, 4))

	// Birth: a dead cell with exactly 3 neighbors becomes alive.
	assert.Equal(t, Alive, r.Transition(Dead, 3))
	assert.Equal(t, Dead, r.Transition(Dead, 2))
	assert.Equal(t, Dead, r.Transition(Dead, 0))
}

func TestImplicationFullyKnownNeighborsForcesSuccessor(t *testing.T) {
	r, err := Life()
	require.NoError(t, err)

	// current=Alive, 3 alive neighbors fully known (unknown=0), successor
	// unknown: must force successor Alive.
	imp := r.Implication(Alive, Unknown, 3, 0)
	assert.Equal(t, ForceSuccessor, imp.Kind)
	assert.Equal(t, Alive, imp.Value)

	// current=Dead, 2 alive neighbors fully known: successor must be Dead.
	imp = r.Implication(Dead, Unknown, 2, 0)
	assert.Equal(t, ForceSuccessor, imp.Kind)
	assert.Equal(t, Dead, imp.Value)
}

func TestImplicationForcesCurrentFromKnownSuccessor(t *testing.T) {
	r, err := Life()
	require.NoError(t, err)

	// Known successor Alive, known 2 alive neighbors, current unknown:
	// Dead with 2 neighbors does not birth (needs 3), Alive with 2
	// neighbors survives. Only current=Alive is consistent.
	imp := r.Implication(Unknown, Alive, 2, 0)
	assert.Equal(t, ForceCurrent, imp.Kind)
	assert.Equal(t, Alive, imp.Value)
}

func TestImplicationForcesUnknownNeighbors(t *testing.T) {
	r, err := Life()
	require.NoError(t, err)

	// current=Alive, successor known Dead, 4 alive already counted and 2
	// still unknown: any additional alive neighbor keeps the total at or
	// above 4, which never survives, so the successor is already forced
	// regardless — but with alive=1 and up to 2 more unknown, Alive
	// survives only if the total stays at 2 or 3. If successor is known
	// Dead, every unknown must end up Dead to avoid ever reaching 2 or 3...
	// use alive=3 with 1 unknown neighbor and successor known Dead: the
	// cell is alive with 3 confirmed neighbors (already survives if total
	// stays 3), so the remaining unknown must be Dead to keep total at 3
	// survive -- that contradicts Dead successor. Pick a cleaner case:
	// alive=4, unknown=1, current=Alive, successor=Dead: total is 4 or 5,
	// both kill the cell, so the remaining unknown neighbor is unconstrained.
	imp := r.Implication(Alive, Dead, 4, 1)
	assert.Equal(t, NoImplication, imp.Kind)

	// alive=1, unknown=1, current=Alive, successor=Alive: total must be 2
	// or 3 to survive; total is 1 or 2, so it must be 2, forcing the
	// unknown neighbor Alive.
	imp = r.Implication(Alive, Alive, 1, 1)
	assert.Equal(t, ForceUnknownNeighbor, imp.Kind)
	assert.Equal(t, Alive, imp.Value)

	// alive=3, unknown=1, current=Alive, successor=Alive: total must stay
	// in {2,3}; with 3 already alive, adding one more gives 4 (dies), so
	// the unknown neighbor must be Dead.
	imp = r.Implication(Alive, Alive, 3, 1)
	assert.Equal(t, ForceUnknownNeighbor, imp.Kind)
	assert.Equal(t, Dead, imp.Value)
}

func TestImplicationContradiction(t *testing.T) {
	r, err := Life()
	require.NoError(t, err)

	// current=Dead, successor known Alive, 5 alive neighbors fully known:
	// birth never fires at 5, so no completion is consistent.
	imp := r.Implication(Dead, Alive, 5, 0)
	assert.Equal(t, Contradiction, imp.Kind)
}

func TestImplicationNoneWhenUnderdetermined(t *testing.T) {
	r, err := Life()
	require.NoError(t, err)

	// current and successor both unknown, no neighbors known at all:
	// nothing can be forced yet.
	imp := r.Implication(Unknown, Unknown, 0, 8)
	assert.Equal(t, NoImplication, imp.Kind)
}

func TestMooreNeighborhoodSize(t *testing.T) {
	assert.Len(t, MooreNeighborhood(1), 8)
	assert.Len(t, MooreNeighborhood(2), 24)
}

func TestVonNeumannNeighborhoodSize(t *testing.T) {
	assert.Len(t, VonNeumannNeighborhood(1), 4)
	assert.Len(t, VonNeumannNeighborhood(2), 12)
}

func TestHighLife(t *testing.T) {
	r, err := HighLife()
	require.NoError(t, err)
	assert.Equal(t, []int{3, 6}, r.BirthCounts())
}
