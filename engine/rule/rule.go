// Package rule holds the transition law of a two-state, higher-range,
// outer-totalistic cellular automaton and the implication table the
// propagator consults to deduce forced cell states.
package rule

import (
	"fmt"
	"sort"
)

// CellState is the three-valued state of a cell or of a neighborhood
// descriptor's successor slot.
type CellState uint8

// CellState values. Dead and Alive are the two determined states;
// Unknown means the cell has not yet been decided.
const (
	Dead CellState = iota
	Alive
	Unknown
)

// String returns a short human-readable name for the state.
func (s CellState) String() string {
	switch s {
	case Dead:
		return "Dead"
	case Alive:
		return "Alive"
	case Unknown:
		return "Unknown"
	default:
		return fmt.Sprintf("CellState(%d)", uint8(s))
	}
}

// Offset is a spatial neighbor displacement relative to a cell, used to
// define the CA's neighborhood shape.
type Offset struct {
	DX, DY int
}

// MaxNeighborhoodSize is the largest neighborhood this package supports.
// The implication table is O(K^2 * 9); larger neighborhoods are rejected
// at construction time rather than silently degrading.
const MaxNeighborhoodSize = 24

// Rule is an immutable, higher-range outer-totalistic transition law: a
// birth/survival set over the alive-neighbor count, plus a precomputed
// implication table used by the propagator. Once built, a Rule is safe
// for concurrent read-only use.
type Rule struct {
	neighborhood []Offset
	birth        []bool // birth[n] == true iff a dead cell with n alive neighbors is born
	survive      []bool // survive[n] == true iff a live cell with n alive neighbors survives
	identity     string
	table        []Implication // flattened [current][successor][alive][unknown]
}

// NewOuterTotalistic builds a Rule from an explicit neighborhood and
// birth/survival counts. birth and survive list the alive-neighbor
// counts (each in [0, len(neighborhood)]) that cause birth or survival
// respectively. Returns an error if the neighborhood has duplicate
// offsets or is too large, or if a count falls outside range. An empty
// neighborhood is accepted.
func NewOuterTotalistic(neighborhood []Offset, birth, survive []int, identity string) (*Rule, error) {
	k := len(neighborhood)
	if k > MaxNeighborhoodSize {
		return nil, fmt.Errorf("rule: neighborhood size %d exceeds max %d", k, MaxNeighborhoodSize)
	}
	if err := checkNoDuplicateOffsets(neighborhood); err != nil {
		return nil, err
	}

	birthSet := make([]bool, k+1)
	for _, n := range birth {
		if n < 0 || n > k {
			return nil, fmt.Errorf("rule: birth count %d out of range [0,%d]", n, k)
		}
		birthSet[n] = true
	}
	surviveSet := make([]bool, k+1)
	for _, n := range survive {
		if n < 0 || n > k {
			return nil, fmt.Errorf("rule: survive count %d out of range [0,%d]", n, k)
		}
		surviveSet[n] = true
	}

	r := &Rule{
		neighborhood: append([]Offset(nil), neighborhood...),
		birth:        birthSet,
		survive:      surviveSet,
		identity:     identity,
	}
	r.buildTable()
	return r, nil
}

func checkNoDuplicateOffsets(offsets []Offset) error {
	seen := make(map[Offset]struct{}, len(offsets))
	for _, o := range offsets {
		if _, ok := seen[o]; ok {
			return fmt.Errorf("rule: duplicate neighborhood offset %+v", o)
		}
		seen[o] = struct{}{}
	}
	return nil
}

// K returns the neighborhood size.
func (r *Rule) K() int { return len(r.neighborhood) }

// Neighborhood returns the offsets defining the CA's neighborhood, in
// the order supplied at construction. The returned slice must not be
// modified.
func (r *Rule) Neighborhood() []Offset { return r.neighborhood }

// Identity returns a stable string identifying this rule, used to
// detect rule mismatches when loading persisted search state.
func (r *Rule) Identity() string { return r.identity }

// Transition computes the next state of a cell whose current state and
// full (fully-determined) alive-neighbor count are known. It is the
// unconditional CA law with no partial information.
func (r *Rule) Transition(current CellState, aliveCount int) CellState {
	if current == Alive {
		if r.survive[aliveCount] {
			return Alive
		}
		return Dead
	}
	if r.birth[aliveCount] {
		return Alive
	}
	return Dead
}

// BirthCounts and SurviveCounts return the sorted counts that cause
// birth/survival, mainly for display and rule-string round-tripping.
func (r *Rule) BirthCounts() []int   { return setToCounts(r.birth) }
func (r *Rule) SurviveCounts() []int { return setToCounts(r.survive) }

func setToCounts(set []bool) []int {
	counts := make([]int, 0, len(set))
	for n, ok := range set {
		if ok {
			counts = append(counts, n)
		}
	}
	sort.Ints(counts)
	return counts
}
