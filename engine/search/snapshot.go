package search

import "github.com/telepair/lifesrc/engine/rule"

// Snapshot is a read-only grid of one phase's cell states, suitable
// for rendering or for handing off to an observer goroutine without
// exposing the live World.
type Snapshot struct {
	Phase         int
	Width, Height int
	Cells         []rule.CellState // row-major, Width*Height
}

// At returns the state at (x, y) within the snapshot.
func (snap Snapshot) At(x, y int) rule.CellState {
	return snap.Cells[y*snap.Width+x]
}

// Snapshot renders phase's grid as it currently stands, whether or not
// the search has reached a completion. Unknown entries mean the
// searcher has not yet decided that cell.
func (s *Searcher) Snapshot(phase int) Snapshot {
	w := s.world
	cells := make([]rule.CellState, w.cfg.Width*w.cfg.Height)
	for y := 0; y < w.cfg.Height; y++ {
		for x := 0; x < w.cfg.Width; x++ {
			cells[y*w.cfg.Width+x] = w.cells[w.index(x, y, phase)].state
		}
	}
	return Snapshot{Phase: phase, Width: w.cfg.Width, Height: w.cfg.Height, Cells: cells}
}

// Period reports the configured period, the number of distinct phases
// a caller can request from Snapshot.
func (s *Searcher) Period() int { return s.world.cfg.Period }

// Population reports the current count of Alive cells in the front
// phase (t=0).
func (s *Searcher) Population() int { return s.population }

// Ceiling reports the current population ceiling, which ReduceMax
// tightens after each Found result.
func (s *Searcher) Ceiling() int { return s.ceiling }
