package search

import (
	"github.com/telepair/lifesrc/engine/coord"
	"github.com/telepair/lifesrc/engine/rule"
)

// reasonKind tags why a cell holds the value it does, mirroring the
// decision stack's two assignment sources.
type reasonKind uint8

const (
	reasonNone reasonKind = iota
	reasonDecided
	reasonDeduced
)

// reason records why an assignment happened: a branch the searcher
// chose (Decided), or a value forced by propagation from another cell
// (Deduced, naming the cell that forced it).
type reason struct {
	kind reasonKind
	from int
}

// descriptor tallies what a cell currently knows about its neighbors
// and its own successor, the sufficient statistic an outer-totalistic
// rule needs: only the count of alive/dead/unknown neighbors matters,
// never which specific neighbor is which.
type descriptor struct {
	alive   int
	dead    int
	unknown int
}

// cell is one node of the World's space-time arena. Cells never move
// or get reallocated once the World is built; the arena is addressed
// by index throughout, sidestepping the cyclic-ownership problem a
// pointer-linked grid would have between neighbors, successors, and
// symmetry peers.
type cell struct {
	coord coord.Coord
	state rule.CellState
	desc  descriptor

	predecessor int // index of the cell whose successor is this one
	successor   int // index of this cell's successor
	neighbors   []int
	peers       []int // other members of this cell's symmetry orbit, same phase

	level       int  // position in the search order, -1 if not decidable
	frozen      bool // the boundary cell, or a cell forced Dead by a diagonal-width band
	isFrontWing bool // t == 0, counted toward the population ceiling
}

// decidable reports whether this cell is ever chosen by the searcher:
// frozen cells and non-representative symmetry peers are never picked,
// since their value always follows from a cell earlier in the order.
func (c *cell) decidable() bool {
	return !c.frozen && c.level >= 0
}
