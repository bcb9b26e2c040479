package search

import (
	"github.com/telepair/lifesrc/engine/coord"
	"github.com/telepair/lifesrc/engine/rule"
)

// boundary is always index 0: a single shared, frozen-Dead cell that
// every out-of-bounds neighbor, predecessor, or successor reference
// collapses to. Its predecessor and successor point back at itself;
// it has no neighbor list of its own.
const boundary = 0

// World is the fixed space-time arena a Config builds: every cell at
// every (x, y, t) in the box, wired to its neighbors, its temporal
// predecessor/successor (with wraparound translation at the phase
// boundary), and its symmetry peers, plus the search order the
// Searcher walks.
type World struct {
	cfg Config
	r   *rule.Rule
	sym coord.Class

	cells       []cell
	searchOrder []int
}

// newWorld allocates the arena and wires every relation described
// above. It does not yet apply KnownCells or the diagonal-width band;
// the caller (NewSearcher) does that afterward through the propagator,
// since applying them can itself produce a contradiction that must
// surface as a ConfigError rather than a panic.
func newWorld(cfg Config) *World {
	w := &World{cfg: cfg, r: cfg.Rule, sym: cfg.Symmetry}

	n := cfg.Width * cfg.Height * cfg.Period
	w.cells = make([]cell, n+1)
	w.cells[boundary] = cell{
		state:       rule.Dead,
		predecessor: boundary,
		successor:   boundary,
		frozen:      true,
		level:       -1,
	}

	for t := 0; t < cfg.Period; t++ {
		for y := 0; y < cfg.Height; y++ {
			for x := 0; x < cfg.Width; x++ {
				idx := w.index(x, y, t)
				w.cells[idx] = cell{
					coord:       coord.Coord{X: x, Y: y, T: t},
					state:       rule.Unknown,
					level:       -1,
					isFrontWing: t == 0,
				}
			}
		}
	}

	w.wireNeighbors()
	w.wireTemporal()
	w.wirePeers()
	w.initDescriptors()
	w.computeSearchOrder()

	return w
}

// index maps an in-box (x, y, t) to its arena slot. t is assumed
// already reduced into [0, Period); callers crossing a phase boundary
// use wrapSuccessor/wrapPredecessor instead.
func (w *World) index(x, y, t int) int {
	return 1 + (t*w.cfg.Height+y)*w.cfg.Width + x
}

// indexOrBoundary maps a possibly out-of-box (x, y, t) to its arena
// slot, collapsing anything outside [0,W) x [0,H) to the boundary.
func (w *World) indexOrBoundary(x, y, t int) int {
	if x < 0 || x >= w.cfg.Width || y < 0 || y >= w.cfg.Height {
		return boundary
	}
	return w.index(x, y, t)
}

func (w *World) wireNeighbors() {
	offsets := w.r.Neighborhood()
	for t := 0; t < w.cfg.Period; t++ {
		for y := 0; y < w.cfg.Height; y++ {
			for x := 0; x < w.cfg.Width; x++ {
				idx := w.index(x, y, t)
				neighbors := make([]int, len(offsets))
				for i, o := range offsets {
					neighbors[i] = w.indexOrBoundary(x+o.DX, y+o.DY, t)
				}
				w.cells[idx].neighbors = neighbors
			}
		}
	}
}

// wireTemporal links every cell to its predecessor/successor in time.
// Within a period, successor is the same (x, y) one phase later. At
// the last phase, the successor wraps to phase 0 translated by
// (dx, dy); a translated position landing outside the box becomes the
// boundary, per the space-time wraparound rule.
func (w *World) wireTemporal() {
	for y := 0; y < w.cfg.Height; y++ {
		for x := 0; x < w.cfg.Width; x++ {
			for t := 0; t < w.cfg.Period; t++ {
				idx := w.index(x, y, t)
				var succ int
				if t+1 < w.cfg.Period {
					succ = w.index(x, y, t+1)
				} else {
					succ = w.indexOrBoundary(x+w.cfg.DX, y+w.cfg.DY, 0)
				}
				w.cells[idx].successor = succ
				if succ != boundary {
					w.cells[succ].predecessor = idx
				}
			}
		}
	}
	// A cell whose predecessor link was never written by the loop above
	// (no wrapped successor maps to it) keeps its zero value, which is
	// exactly boundary: the correct default.
}

func (w *World) wirePeers() {
	for t := 0; t < w.cfg.Period; t++ {
		for y := 0; y < w.cfg.Height; y++ {
			for x := 0; x < w.cfg.Width; x++ {
				idx := w.index(x, y, t)
				orbit := w.sym.Orbit(coord.Point{X: x, Y: y}, w.cfg.Width, w.cfg.Height)
				peers := make([]int, 0, len(orbit)-1)
				for _, p := range orbit {
					if p.X == x && p.Y == y {
						continue
					}
					peers = append(peers, w.index(p.X, p.Y, t))
				}
				w.cells[idx].peers = peers
			}
		}
	}
}

// initDescriptors seeds every cell's neighbor tally, crediting the
// boundary cell's permanently-Dead state up front instead of counting
// it as Unknown.
func (w *World) initDescriptors() {
	for idx := range w.cells {
		if idx == boundary {
			continue
		}
		c := &w.cells[idx]
		var d descriptor
		for _, n := range c.neighbors {
			if n == boundary {
				d.dead++
			} else {
				d.unknown++
			}
		}
		c.desc = d
	}
}

// computeSearchOrder walks the three lattice axes in the configured
// order (default: x slowest, y next, t fastest), including only cells
// that are decidable: not frozen, and the lexicographically-least
// member of their symmetry orbit within their own phase.
func (w *World) computeSearchOrder() {
	axes := w.cfg.defaultedSearchOrderAxes()
	extents := map[byte]int{'x': w.cfg.Width, 'y': w.cfg.Height, 't': w.cfg.Period}

	var order []int
	var walk func(pos map[byte]int, depth int)
	walk = func(pos map[byte]int, depth int) {
		if depth == len(axes) {
			x, y, t := pos['x'], pos['y'], pos['t']
			if !w.sym.IsRepresentative(coord.Point{X: x, Y: y}, w.cfg.Width, w.cfg.Height) {
				return
			}
			order = append(order, w.index(x, y, t))
			return
		}
		axis := axes[depth]
		for v := 0; v < extents[axis]; v++ {
			pos[axis] = v
			walk(pos, depth+1)
		}
	}
	walk(map[byte]int{}, 0)

	if w.cfg.ReverseOrder {
		for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
			order[i], order[j] = order[j], order[i]
		}
	}

	for level, idx := range order {
		w.cells[idx].level = level
	}
	w.searchOrder = order
}
