package coord

import "fmt"

// Class names a recognized symmetry class of the bounding rectangle.
// Names follow the usual lifesrc/rlifesrc convention: D2- is the
// horizontal mirror, D2| the vertical mirror, D2\ and D2/ the two
// diagonal mirrors (square boards only), D4+ the axis-aligned Klein
// four group, D4X its diagonal counterpart, and D8 the full dihedral
// group of the square.
type Class uint8

// Recognized symmetry classes.
const (
	C1 Class = iota
	C2
	C4
	D2Horizontal   // D2-
	D2Vertical     // D2|
	D2Diagonal     // D2\
	D2Antidiagonal // D2/
	D4Plus         // D4+
	D4Diagonal     // D4X
	D8
)

// String renders the conventional short name of the class.
func (c Class) String() string {
	switch c {
	case C1:
		return "C1"
	case C2:
		return "C2"
	case C4:
		return "C4"
	case D2Horizontal:
		return "D2-"
	case D2Vertical:
		return "D2|"
	case D2Diagonal:
		return `D2\`
	case D2Antidiagonal:
		return "D2/"
	case D4Plus:
		return "D4+"
	case D4Diagonal:
		return "D4X"
	case D8:
		return "D8"
	default:
		return fmt.Sprintf("Class(%d)", uint8(c))
	}
}

// ParseClass parses the conventional short name of a symmetry class
// (as rendered by String) back into a Class, for use by CLI flags and
// config files.
func ParseClass(s string) (Class, error) {
	switch s {
	case "C1":
		return C1, nil
	case "C2":
		return C2, nil
	case "C4":
		return C4, nil
	case "D2-":
		return D2Horizontal, nil
	case "D2|":
		return D2Vertical, nil
	case `D2\`:
		return D2Diagonal, nil
	case "D2/":
		return D2Antidiagonal, nil
	case "D4+":
		return D4Plus, nil
	case "D4X":
		return D4Diagonal, nil
	case "D8":
		return D8, nil
	default:
		return 0, fmt.Errorf("coord: unrecognized symmetry class %q", s)
	}
}

// transform maps a spatial point within a w x h box to its image under
// one symmetry generator.
type transform func(p Point, w, h int) Point

func identity(p Point, _, _ int) Point { return p }
func rot90(p Point, _, h int) Point    { return Point{X: h - 1 - p.Y, Y: p.X} }
func rot180(p Point, w, h int) Point   { return Point{X: w - 1 - p.X, Y: h - 1 - p.Y} }
func rot270(p Point, w, _ int) Point   { return Point{X: p.Y, Y: w - 1 - p.X} }
func mirrorH(p Point, _, h int) Point  { return Point{X: p.X, Y: h - 1 - p.Y} }
func mirrorV(p Point, w, _ int) Point  { return Point{X: w - 1 - p.X, Y: p.Y} }
func diagMain(p Point, _, _ int) Point { return Point{X: p.Y, Y: p.X} }
func diagAnti(p Point, w, h int) Point { return Point{X: h - 1 - p.Y, Y: w - 1 - p.X} }

// generators returns the full set of transforms in the symmetry group
// (the identity is always included).
func (c Class) generators() []transform {
	switch c {
	case C1:
		return []transform{identity}
	case C2:
		return []transform{identity, rot180}
	case C4:
		return []transform{identity, rot90, rot180, rot270}
	case D2Horizontal:
		return []transform{identity, mirrorH}
	case D2Vertical:
		return []transform{identity, mirrorV}
	case D2Diagonal:
		return []transform{identity, diagMain}
	case D2Antidiagonal:
		return []transform{identity, diagAnti}
	case D4Plus:
		return []transform{identity, rot180, mirrorH, mirrorV}
	case D4Diagonal:
		return []transform{identity, rot180, diagMain, diagAnti}
	case D8:
		return []transform{identity, rot90, rot180, rot270, mirrorH, mirrorV, diagMain, diagAnti}
	default:
		return []transform{identity}
	}
}

// Applicable reports whether the class can be used on a w x h box.
// Classes involving a diagonal or a 90-degree rotation require a
// square box.
func (c Class) Applicable(w, h int) bool {
	switch c {
	case C4, D2Diagonal, D2Antidiagonal, D4Diagonal, D8:
		return w == h
	default:
		return true
	}
}

// ValidateTranslation reports whether a per-period translation (dx, dy)
// is compatible with the symmetry class. Pure rotational groups (any
// class whose generators include a non-identity rotation) require zero
// translation: a rotation combined with a nonzero shift never returns
// to a fixed orbit. Mirror-only classes support glide symmetry: a
// translation is compatible only along the mirror's own invariant
// axis, with zero component perpendicular to it.
func (c Class) ValidateTranslation(dx, dy int) error {
	switch c {
	case C1:
		return nil
	case D2Horizontal:
		if dy != 0 {
			return fmt.Errorf("coord: symmetry %s requires dy=0 (got dy=%d); translation must run along the mirror axis", c, dy)
		}
		return nil
	case D2Vertical:
		if dx != 0 {
			return fmt.Errorf("coord: symmetry %s requires dx=0 (got dx=%d); translation must run along the mirror axis", c, dx)
		}
		return nil
	case D2Diagonal:
		if dx != dy {
			return fmt.Errorf("coord: symmetry %s requires dx=dy (got dx=%d, dy=%d); translation must run along the main diagonal", c, dx, dy)
		}
		return nil
	case D2Antidiagonal:
		if dx != -dy {
			return fmt.Errorf("coord: symmetry %s requires dx=-dy (got dx=%d, dy=%d); translation must run along the anti-diagonal", c, dx, dy)
		}
		return nil
	case C2, C4, D4Plus, D4Diagonal, D8:
		if dx != 0 || dy != 0 {
			return fmt.Errorf("coord: symmetry %s contains a rotation and requires dx=dy=0 (got dx=%d, dy=%d)", c, dx, dy)
		}
		return nil
	default:
		return fmt.Errorf("coord: unknown symmetry class %v", c)
	}
}

// Orbit returns the set of distinct points p is mapped to by the
// class's generators within a w x h box, including p itself.
func (c Class) Orbit(p Point, w, h int) []Point {
	seen := make(map[Point]struct{})
	var orbit []Point
	for _, g := range c.generators() {
		img := g(p, w, h)
		if _, ok := seen[img]; ok {
			continue
		}
		seen[img] = struct{}{}
		orbit = append(orbit, img)
	}
	return orbit
}

// Representative returns the lexicographically smallest point in p's
// orbit, used to decide which member of an orbit is the search-order
// representative.
func (c Class) Representative(p Point, w, h int) Point {
	orbit := c.Orbit(p, w, h)
	best := orbit[0]
	for _, q := range orbit[1:] {
		if q.Y < best.Y || (q.Y == best.Y && q.X < best.X) {
			best = q
		}
	}
	return best
}

// IsRepresentative reports whether p is its own orbit representative.
func (c Class) IsRepresentative(p Point, w, h int) bool {
	return c.Representative(p, w, h) == p
}
