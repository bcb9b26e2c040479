package search

import (
	"log/slog"
	"math/rand/v2"

	"github.com/telepair/lifesrc/engine/rule"
)

// Status reports where a Searcher stands after a Step call.
type Status uint8

const (
	// Initial is the status before Step has ever been called.
	Initial Status = iota
	// Searching means the step budget ran out before a verdict.
	Searching
	// Found means every decidable cell now holds a value and the
	// completed pattern is periodic and non-stationary. Calling Step
	// again resumes the search for the next solution.
	Found
	// NoMoreSolutions means the decision stack emptied without
	// reaching another valid completion: the search space is exhausted.
	NoMoreSolutions
	// InvalidConfig means NewSearcher's World construction rejected
	// the configuration (a ConfigError is always returned alongside).
	InvalidConfig
)

func (s Status) String() string {
	switch s {
	case Initial:
		return "initial"
	case Searching:
		return "searching"
	case Found:
		return "found"
	case NoMoreSolutions:
		return "no-more-solutions"
	case InvalidConfig:
		return "invalid-config"
	default:
		return "unknown"
	}
}

// Stats tracks cumulative search-effort counters, surfaced read-only
// via Searcher.Stats for progress reporting.
type Stats struct {
	Decisions  int
	Deductions int
	Conflicts  int
	Steps      int
}

// stackEntry is one frame of the decision stack: which cell, what
// value it was assigned, and why. Decided entries additionally track
// whether the alternate branch has already been tried, so backtrack
// knows whether to flip or to keep popping.
type stackEntry struct {
	cell   int
	value  rule.CellState
	reason reason
	tried  bool
}

// Searcher drives a World to a periodic, symmetry-respecting, non-
// stationary completion via chronological backtracking with
// propagation-based constraint narrowing.
type Searcher struct {
	world *World
	log   *slog.Logger

	stack []stackEntry
	queue []int

	ceiling             int
	population          int
	lastFoundPopulation int

	pcg *rand.PCG
	rng *rand.Rand

	status Status
	stats  Stats
}

// NewSearcher builds the World for cfg, applies its diagonal-width
// band and KnownCells, and returns a Searcher ready for Step. A
// contradiction discovered while applying KnownCells (including one
// implied only through symmetry) surfaces as a ConfigError.
func NewSearcher(cfg Config, log *slog.Logger) (*Searcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.Default()
	}

	w := newWorld(cfg)
	pcg := rand.NewPCG(cfg.RNGSeed, cfg.RNGSeed^0x9e3779b97f4a7c15)
	s := &Searcher{
		world:   w,
		log:     log,
		ceiling: cfg.maxPopulation(),
		pcg:     pcg,
		rng:     rand.New(pcg),
		status:  Initial,
	}

	if err := s.applyBaseline(cfg); err != nil {
		return nil, wrapConfigError("diagonal band or known cells produced a contradiction", err)
	}

	return s, nil
}

// applyBaseline applies the diagonal-width band and KnownCells to a
// freshly built World, then clears the decision stack: both are baked
// into the initial state, not the search's decision history, since
// backtracking only ever pops down to an empty stack and must never
// undo them.
func (s *Searcher) applyBaseline(cfg Config) error {
	if cfg.DiagonalWidth > 0 {
		if err := s.applyDiagonalBand(); err != nil {
			return err
		}
	}
	for _, kc := range cfg.KnownCells {
		idx := s.world.index(kc.Coord.X, kc.Coord.Y, kc.Coord.T)
		if err := s.assign(idx, kc.State, reason{kind: reasonNone}); err != nil {
			return err
		}
		if err := s.propagate(); err != nil {
			return err
		}
	}
	s.stack = s.stack[:0]
	return nil
}

func (s *Searcher) applyDiagonalBand() error {
	cfg := &s.world.cfg
	for t := 0; t < cfg.Period; t++ {
		for y := 0; y < cfg.Height; y++ {
			for x := 0; x < cfg.Width; x++ {
				dx := x - y
				if dx < 0 {
					dx = -dx
				}
				if dx > cfg.DiagonalWidth {
					idx := s.world.index(x, y, t)
					if err := s.assign(idx, rule.Dead, reason{kind: reasonNone}); err != nil {
						return err
					}
					if err := s.propagate(); err != nil {
						return err
					}
					s.world.cells[idx].frozen = true
				}
			}
		}
	}
	return nil
}

// Status reports the searcher's current status without advancing it.
func (s *Searcher) Status() Status { return s.status }

// Stats reports cumulative search-effort counters.
func (s *Searcher) Stats() Stats { return s.stats }

// Step advances the search by at most budget decisions, returning the
// resulting Status. Calling Step again after Found resumes the search
// for the next solution, tightening the population ceiling first when
// ReduceMax is set. Calling Step again after NoMoreSolutions is a
// no-op that returns NoMoreSolutions immediately.
func (s *Searcher) Step(budget int) Status {
	if s.status == NoMoreSolutions {
		return s.status
	}
	if s.status == Found {
		if s.world.cfg.ReduceMax {
			s.ceiling = s.lastFoundPopulation - 1
		}
		if !s.backtrack() {
			s.status = NoMoreSolutions
			return s.status
		}
	}

	for budget > 0 {
		budget--
		s.stats.Steps++

		idx, ok := s.nextUndecidedCell()
		if !ok {
			if s.validCompletion() {
				s.status = Found
				s.lastFoundPopulation = s.population
				return s.status
			}
			if !s.backtrack() {
				s.status = NoMoreSolutions
				return s.status
			}
			continue
		}

		value := s.chooseValue(idx)
		s.stats.Decisions++
		if err := s.decide(idx, value); err != nil {
			s.stats.Conflicts++
			if !s.backtrack() {
				s.status = NoMoreSolutions
				return s.status
			}
			continue
		}
		s.status = Searching
	}
	return Searching
}

func (s *Searcher) nextUndecidedCell() (int, bool) {
	for _, idx := range s.world.searchOrder {
		c := &s.world.cells[idx]
		if c.state == rule.Unknown && c.decidable() {
			return idx, true
		}
	}
	return 0, false
}

func (s *Searcher) chooseValue(idx int) rule.CellState {
	switch s.world.cfg.NewState {
	case DeadFirst:
		return rule.Dead
	case Random:
		if s.rng.Uint64()%2 == 0 {
			return rule.Dead
		}
		return rule.Alive
	default:
		return rule.Alive
	}
}

// decide pushes a Decided entry for idx and propagates it to a fixed
// point, reporting any contradiction.
func (s *Searcher) decide(idx int, value rule.CellState) error {
	if err := s.assign(idx, value, reason{kind: reasonDecided}); err != nil {
		return err
	}
	return s.propagate()
}

// assign is set_cell: it records idx's assignment on the decision
// stack, sets its new value, enqueues it for propagation, and then
// immediately forces every not-yet-set symmetry peer to the same
// value (each peer push recording its own stack entry and enqueuing
// itself in turn). Peers are forced before the queue is drained, so
// their deductions always precede any neighbor-descriptor deduction
// triggered later when idx is popped: the "peers first, then
// neighbors in stored order" ordering the decision stack exposes.
func (s *Searcher) assign(idx int, value rule.CellState, r reason) error {
	if idx == boundary {
		if value != rule.Dead {
			return errContradiction
		}
		return nil
	}
	c := &s.world.cells[idx]
	if c.state != rule.Unknown {
		if c.state == value {
			return nil
		}
		return errContradiction
	}

	s.stack = append(s.stack, stackEntry{cell: idx, value: value, reason: r})
	c.state = value
	if r.kind == reasonDeduced {
		s.stats.Deductions++
	}
	if c.isFrontWing && value == rule.Alive {
		s.population++
		if s.population > s.ceiling {
			return errContradiction
		}
	}
	s.queue = append(s.queue, idx)

	for _, peer := range c.peers {
		switch s.world.cells[peer].state {
		case rule.Unknown:
			if err := s.assign(peer, value, reason{kind: reasonDeduced, from: idx}); err != nil {
				return err
			}
		case value:
			// already consistent
		default:
			return errContradiction
		}
	}
	return nil
}

// propagate drains the queue to a fixed point: for each popped cell,
// it checks the cell's own implication, then updates and checks each
// of its K neighbors (in stored order) and its predecessor.
func (s *Searcher) propagate() error {
	for len(s.queue) > 0 {
		idx := s.queue[0]
		s.queue = s.queue[1:]
		c := &s.world.cells[idx]
		value := c.state

		if err := s.checkImplication(idx); err != nil {
			return err
		}

		for _, n := range c.neighbors {
			if n == boundary {
				continue
			}
			nc := &s.world.cells[n]
			nc.desc.unknown--
			if value == rule.Alive {
				nc.desc.alive++
			} else {
				nc.desc.dead++
			}
			if err := s.checkImplication(n); err != nil {
				return err
			}
		}

		if c.predecessor != boundary {
			if err := s.checkImplication(c.predecessor); err != nil {
				return err
			}
		}
	}
	return nil
}

// checkImplication consults the rule's implication table for idx using
// its current state, its successor's state, and its descriptor, and
// applies whatever it forces.
func (s *Searcher) checkImplication(idx int) error {
	c := &s.world.cells[idx]
	succState := s.world.cells[c.successor].state
	imp := s.world.r.Implication(c.state, succState, c.desc.alive, c.desc.unknown)

	switch imp.Kind {
	case rule.Contradiction:
		return errContradiction
	case rule.ForceCurrent:
		return s.assign(idx, imp.Value, reason{kind: reasonDeduced, from: idx})
	case rule.ForceSuccessor:
		return s.assign(c.successor, imp.Value, reason{kind: reasonDeduced, from: idx})
	case rule.ForceUnknownNeighbor:
		for _, n := range c.neighbors {
			if n == boundary {
				continue
			}
			if s.world.cells[n].state == rule.Unknown {
				if err := s.assign(n, imp.Value, reason{kind: reasonDeduced, from: idx}); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// backtrack pops the decision stack, undoing each entry, until it
// finds a Decided entry whose alternate value has not yet been tried.
// It flips that cell to the alternate value and re-propagates; if the
// flip itself conflicts, it undoes everything the flip pushed and
// keeps popping upward. It returns false once the stack empties
// without ever finding an untried Decided entry: the search space is
// exhausted.
func (s *Searcher) backtrack() bool {
	for len(s.stack) > 0 {
		top := s.stack[len(s.stack)-1]
		s.stack = s.stack[:len(s.stack)-1]
		s.undoEntry(top)

		if top.reason.kind != reasonDecided || top.tried {
			continue
		}

		mark := len(s.stack)
		flipped := flipValue(top.value)
		s.queue = s.queue[:0]

		err := s.assign(top.cell, flipped, reason{kind: reasonDecided})
		if err == nil {
			err = s.propagate()
		}
		if err == nil {
			s.stack[mark].tried = true
			return true
		}
		s.popUndoTo(mark)
	}
	return false
}

// popUndoTo pops and undoes every stack entry above index n.
func (s *Searcher) popUndoTo(n int) {
	for len(s.stack) > n {
		e := s.stack[len(s.stack)-1]
		s.stack = s.stack[:len(s.stack)-1]
		s.undoEntry(e)
	}
}

func flipValue(v rule.CellState) rule.CellState {
	if v == rule.Alive {
		return rule.Dead
	}
	return rule.Alive
}

// undoEntry reverts one stack entry: restores the cell to Unknown and
// rolls back every tally its assignment had advanced (its own
// population credit, and every neighbor descriptor count).
func (s *Searcher) undoEntry(e stackEntry) {
	c := &s.world.cells[e.cell]
	c.state = rule.Unknown

	if c.isFrontWing && e.value == rule.Alive {
		s.population--
	}

	for _, n := range c.neighbors {
		if n == boundary {
			continue
		}
		nc := &s.world.cells[n]
		nc.desc.unknown++
		if e.value == rule.Alive {
			nc.desc.alive--
		} else {
			nc.desc.dead--
		}
	}
}

// validCompletion checks the two global predicates a fully-decided
// World must satisfy: non-emptiness (at least one Alive cell in the
// front phase) and non-stationarity with respect to the phase shift —
// phase 0 must differ from phase 1 after the shift is applied,
// exempted only when Period == 1 and the shift is zero (an ordinary
// still life, which is stationary by definition).
func (s *Searcher) validCompletion() bool {
	cfg := &s.world.cfg
	if s.population == 0 && !cfg.AllowEmpty {
		return false
	}
	if cfg.Period == 1 && cfg.DX == 0 && cfg.DY == 0 {
		return true
	}
	for y := 0; y < cfg.Height; y++ {
		for x := 0; x < cfg.Width; x++ {
			idx := s.world.index(x, y, 0)
			if s.world.cells[idx].state != s.world.cells[s.world.cells[idx].successor].state {
				return true
			}
		}
	}
	return false
}
