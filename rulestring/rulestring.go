// Package rulestring parses Golly-style outer-totalistic rule strings
// such as "B3/S23" (Conway's Life) or "B36/S23" (HighLife) into an
// engine/rule.Rule over the standard range-1 Moore neighborhood.
package rulestring

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/telepair/lifesrc/engine/rule"
)

// Parse reads a rule string of the form "B<digits>/S<digits>" (or the
// equivalent "S<digits>/B<digits>" order Golly also accepts) and
// builds the corresponding outer-totalistic Rule over the range-1
// Moore neighborhood. Each digit names an alive-neighbor count in
// [0,8] at which a dead cell is born (B) or a live cell survives (S).
func Parse(s string) (*rule.Rule, error) {
	original := s
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("rulestring: empty rule string")
	}

	parts := strings.SplitN(s, "/", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("rulestring: %q is not of the form B.../S...", original)
	}

	var birthPart, survivePart string
	switch {
	case hasPrefixFold(parts[0], "b") && hasPrefixFold(parts[1], "s"):
		birthPart, survivePart = parts[0], parts[1]
	case hasPrefixFold(parts[0], "s") && hasPrefixFold(parts[1], "b"):
		survivePart, birthPart = parts[0], parts[1]
	default:
		return nil, fmt.Errorf("rulestring: %q must name one B-part and one S-part", original)
	}

	birth, err := parseCounts(birthPart[1:], 8)
	if err != nil {
		return nil, fmt.Errorf("rulestring: birth counts in %q: %w", original, err)
	}
	survive, err := parseCounts(survivePart[1:], 8)
	if err != nil {
		return nil, fmt.Errorf("rulestring: survive counts in %q: %w", original, err)
	}

	identity := fmt.Sprintf("B%s/S%s", sortedDigits(birth), sortedDigits(survive))
	return rule.NewOuterTotalistic(rule.MooreNeighborhood(1), birth, survive, identity)
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

func parseCounts(digits string, max int) ([]int, error) {
	counts := make([]int, 0, len(digits))
	for _, r := range digits {
		n, err := strconv.Atoi(string(r))
		if err != nil {
			return nil, fmt.Errorf("invalid digit %q", r)
		}
		if n < 0 || n > max {
			return nil, fmt.Errorf("count %d out of range [0,%d]", n, max)
		}
		counts = append(counts, n)
	}
	return counts, nil
}

func sortedDigits(counts []int) string {
	seen := make([]bool, 9)
	for _, c := range counts {
		seen[c] = true
	}
	var b strings.Builder
	for n, present := range seen {
		if present {
			fmt.Fprintf(&b, "%d", n)
		}
	}
	return b.String()
}
