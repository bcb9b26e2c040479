// Package search implements the backtracking pattern-search core: a
// World of space-time cells wired by neighbor, successor, and symmetry
// relations, a propagation step that narrows Unknown cells via the rule's
// implication table, and a Searcher that drives a depth-first decision
// stack to completion, much as lifesrc/rlifesrc search for spaceships
// and oscillators in Conway's Life and its outer-totalistic relatives.
package search

import (
	"fmt"

	"github.com/telepair/lifesrc/engine/coord"
	"github.com/telepair/lifesrc/engine/rule"
)

// NewStateStrategy picks which value an Unknown cell is tried as first
// when the searcher makes a decision.
type NewStateStrategy uint8

const (
	// AliveFirst tries Alive before Dead on every decision.
	AliveFirst NewStateStrategy = iota
	// DeadFirst tries Dead before Alive on every decision.
	DeadFirst
	// Random flips a seeded coin per decision.
	Random
)

func (s NewStateStrategy) String() string {
	switch s {
	case AliveFirst:
		return "alive-first"
	case DeadFirst:
		return "dead-first"
	case Random:
		return "random"
	default:
		return fmt.Sprintf("NewStateStrategy(%d)", uint8(s))
	}
}

// ParseNewStateStrategy parses the names rendered by String back into
// a NewStateStrategy, for use by CLI flags and config files.
func ParseNewStateStrategy(s string) (NewStateStrategy, error) {
	switch s {
	case "alive-first":
		return AliveFirst, nil
	case "dead-first":
		return DeadFirst, nil
	case "random":
		return Random, nil
	default:
		return 0, fmt.Errorf("search: unrecognized new-state strategy %q", s)
	}
}

// KnownCell pins a single space-time cell to a fixed state before the
// search begins, letting a caller seed a partial pattern (e.g. a known
// still life it wants extended into an oscillator).
type KnownCell struct {
	Coord coord.Coord
	State rule.CellState
}

// Config describes one search instance: the bounding box, its period
// and per-period translation, the symmetry class to enforce, the rule
// driving the transition, and the search strategy knobs.
type Config struct {
	Width, Height int
	Period        int
	DX, DY        int

	// DiagonalWidth, when > 0, restricts the search to cells within
	// this many columns of the main diagonal (|x-y| <= DiagonalWidth);
	// cells outside the band are frozen Dead. Zero disables the band.
	DiagonalWidth int

	Symmetry coord.Class
	Rule     *rule.Rule

	// MaxPopulation caps the number of Alive cells in the front phase
	// (t=0). Nil means unlimited (W*H).
	MaxPopulation *int
	// ReduceMax, when true, tightens MaxPopulation to one less than
	// each Found result's population before resuming, so the search
	// converges toward the minimum-population solution.
	ReduceMax bool

	// SearchOrderAxes names the iteration order of the three lattice
	// axes from slowest- to fastest-varying, using the letters 'x',
	// 'y', 't' in some permutation. The zero value defaults to "xyt".
	SearchOrderAxes string
	ReverseOrder    bool

	NewState NewStateStrategy
	RNGSeed  uint64

	KnownCells []KnownCell

	// AllowEmpty lifts the requirement that a valid completion's front
	// phase contain at least one Alive cell. Off by default, since an
	// all-dead completion is a trivial, uninteresting "solution" for
	// every config and rule.
	AllowEmpty bool
}

// defaultedSearchOrderAxes returns c.SearchOrderAxes, defaulting to the
// column-major order described in the search-order notes: x varies
// slowest, then y, then t fastest.
func (c *Config) defaultedSearchOrderAxes() string {
	if c.SearchOrderAxes == "" {
		return "xyt"
	}
	return c.SearchOrderAxes
}

func (c *Config) maxPopulation() int {
	if c.MaxPopulation != nil {
		return *c.MaxPopulation
	}
	return c.Width * c.Height
}

// Validate checks structural well-formedness of the configuration. It
// does not detect logical contradictions among KnownCells (e.g. a
// known cell conflicting with a symmetry peer); those surface as a
// ConfigError from NewSearcher (or LoadState), where the propagator
// actually applies them.
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return configErrorf("width and height must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.Period <= 0 {
		return configErrorf("period must be positive, got %d", c.Period)
	}
	if c.Rule == nil {
		return configErrorf("rule must not be nil")
	}
	if err := requireSymmetricNeighborhood(c.Rule); err != nil {
		return wrapConfigError("rule neighborhood must be symmetric (closed under negation)", err)
	}
	if !c.Symmetry.Applicable(c.Width, c.Height) {
		return configErrorf("symmetry class %s requires a square box, got %dx%d", c.Symmetry, c.Width, c.Height)
	}
	if err := c.Symmetry.ValidateTranslation(c.DX, c.DY); err != nil {
		return wrapConfigError("translation incompatible with symmetry class", err)
	}
	if c.DiagonalWidth < 0 {
		return configErrorf("diagonal width must not be negative, got %d", c.DiagonalWidth)
	}
	if c.MaxPopulation != nil && *c.MaxPopulation < 0 {
		return configErrorf("max population must not be negative, got %d", *c.MaxPopulation)
	}
	seenAxes := make(map[byte]bool, 3)
	for _, axis := range []byte(c.defaultedSearchOrderAxes()) {
		switch axis {
		case 'x', 'y', 't':
		default:
			return configErrorf("search order axes must be a permutation of x, y, t, got %q", c.SearchOrderAxes)
		}
		if seenAxes[axis] {
			return configErrorf("search order axes must name all three axes exactly once, got %q", c.SearchOrderAxes)
		}
		seenAxes[axis] = true
	}
	if len(c.defaultedSearchOrderAxes()) != 3 {
		return configErrorf("search order axes must name all three axes exactly once, got %q", c.SearchOrderAxes)
	}
	for _, kc := range c.KnownCells {
		if kc.Coord.X < 0 || kc.Coord.X >= c.Width || kc.Coord.Y < 0 || kc.Coord.Y >= c.Height {
			return configErrorf("known cell %s falls outside the %dx%d box", kc.Coord, c.Width, c.Height)
		}
		if kc.Coord.T < 0 || kc.Coord.T >= c.Period {
			return configErrorf("known cell %s has phase outside [0,%d)", kc.Coord, c.Period)
		}
		if kc.State == rule.Unknown {
			return configErrorf("known cell %s must not be Unknown", kc.Coord)
		}
	}
	return nil
}

func requireSymmetricNeighborhood(r *rule.Rule) error {
	set := make(map[rule.Offset]struct{}, len(r.Neighborhood()))
	for _, o := range r.Neighborhood() {
		set[o] = struct{}{}
	}
	for _, o := range r.Neighborhood() {
		if _, ok := set[rule.Offset{DX: -o.DX, DY: -o.DY}]; !ok {
			return fmt.Errorf("offset %+v has no matching negation in the neighborhood", o)
		}
	}
	return nil
}
