package rule

// ImplicationKind classifies what, if anything, an Implication forces.
type ImplicationKind uint8

// ImplicationKind values.
const (
	// NoImplication means the observed (current, successor, descriptor)
	// combination does not yet force anything.
	NoImplication ImplicationKind = iota
	// ForceCurrent means the cell's own state is forced to Value.
	ForceCurrent
	// ForceSuccessor means the cell's successor is forced to Value.
	ForceSuccessor
	// ForceUnknownNeighbor means every one of the cell's still-Unknown
	// neighbors is forced to Value.
	ForceUnknownNeighbor
	// Contradiction means no completion of the unknowns satisfies the
	// transition law; the caller must backtrack.
	Contradiction
)

// Implication is the result of a table lookup: what can be deduced (if
// anything) from a cell's current state, its successor's state, and its
// neighborhood descriptor.
type Implication struct {
	Kind  ImplicationKind
	Value CellState
}

// none is the zero-value, no-op implication, returned whenever nothing
// new can be deduced.
var none = Implication{Kind: NoImplication}

// Implication looks up what can be deduced about a cell from its
// current state, the state of its successor (same (x,y), next phase),
// and a descriptor summarizing its neighbors: alive is the count of
// neighbors known Alive, unknown is the count not yet determined. The
// remaining K-alive-unknown neighbors are known Dead.
//
// The table is precomputed at construction time by enumerating every
// completion of the unknowns (a completion is a choice of current's
// actual value, if unknown, and of how many of the unknown neighbors
// end up alive) and checking which completions are consistent with the
// transition law and with any already-known current/successor value.
func (r *Rule) Implication(current, successor CellState, alive, unknown int) Implication {
	k := r.K()
	if alive < 0 || unknown < 0 || alive+unknown > k {
		return Implication{Kind: Contradiction}
	}
	idx := r.tableIndex(current, successor, alive, unknown)
	return r.table[idx]
}

func (r *Rule) tableIndex(current, successor CellState, alive, unknown int) int {
	k := r.K()
	stride := k + 1
	// [current][successor][alive][unknown], each dimension sized 3/3/(k+1)/(k+1).
	return ((int(current)*3+int(successor))*stride+alive)*stride + unknown
}

func (r *Rule) buildTable() {
	k := r.K()
	stride := k + 1
	size := 3 * 3 * stride * stride
	r.table = make([]Implication, size)

	states := [3]CellState{Dead, Alive, Unknown}
	for _, current := range states {
		for _, successor := range states {
			for alive := 0; alive <= k; alive++ {
				for unknown := 0; unknown <= k-alive; unknown++ {
					idx := r.tableIndex(current, successor, alive, unknown)
					r.table[idx] = r.computeImplication(current, successor, alive, unknown)
				}
			}
		}
	}
}

// completion is one reachable (current, alive unknowns, successor)
// triple: totalA counts how many of the unknown neighbors end up alive,
// not the total alive-neighbor count.
type completion struct {
	current   CellState
	totalA    int
	successor CellState
}

// computeImplication enumerates every completion of the unknowns
// consistent with the observed current/successor (when determined) and
// derives the strongest implication shared by all of them.
func (r *Rule) computeImplication(current, successor CellState, alive, unknown int) Implication {
	currentCandidates := [2]CellState{Dead, Alive}
	if current != Unknown {
		currentCandidates = [2]CellState{current, current}
	}

	var valid []completion
	for ci, curActual := range currentCandidates {
		if ci == 1 && current != Unknown {
			break
		}
		for add := 0; add <= unknown; add++ {
			totalAlive := alive + add
			sucActual := r.Transition(curActual, totalAlive)
			if successor != Unknown && sucActual != successor {
				continue // observed successor rules this completion out
			}
			valid = append(valid, completion{current: curActual, totalA: add, successor: sucActual})
		}
	}

	if len(valid) == 0 {
		return Implication{Kind: Contradiction}
	}

	if current == Unknown {
		if allSameCurrent(valid) {
			return Implication{Kind: ForceCurrent, Value: valid[0].current}
		}
	}

	if successor == Unknown {
		if allSameSuccessor(valid) {
			return Implication{Kind: ForceSuccessor, Value: valid[0].successor}
		}
	}

	if unknown > 0 {
		if allSameAdd(valid, 0) {
			return Implication{Kind: ForceUnknownNeighbor, Value: Dead}
		}
		if allSameAdd(valid, unknown) {
			return Implication{Kind: ForceUnknownNeighbor, Value: Alive}
		}
	}

	return none
}

func allSameCurrent(cs []completion) bool {
	for _, c := range cs[1:] {
		if c.current != cs[0].current {
			return false
		}
	}
	return true
}

func allSameSuccessor(cs []completion) bool {
	for _, c := range cs[1:] {
		if c.successor != cs[0].successor {
			return false
		}
	}
	return true
}

func allSameAdd(cs []completion, want int) bool {
	for _, c := range cs {
		if c.totalA != want {
			return false
		}
	}
	return true
}
