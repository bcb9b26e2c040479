package rule

// MooreNeighborhood returns the offsets of the Moore neighborhood of the
// given range (range 1 is Conway's usual 8 neighbors), excluding the
// center cell itself.
func MooreNeighborhood(r int) []Offset {
	offsets := make([]Offset, 0, (2*r+1)*(2*r+1)-1)
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			offsets = append(offsets, Offset{DX: dx, DY: dy})
		}
	}
	return offsets
}

// VonNeumannNeighborhood returns the offsets of the von Neumann
// neighborhood of the given range (the diamond of cells within
// Manhattan distance r), excluding the center.
func VonNeumannNeighborhood(r int) []Offset {
	offsets := make([]Offset, 0, 2*r*(r+1))
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if abs(dx)+abs(dy) > r {
				continue
			}
			offsets = append(offsets, Offset{DX: dx, DY: dy})
		}
	}
	return offsets
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Life returns Conway's Game of Life (B3/S23) over the standard range-1
// Moore neighborhood.
func Life() (*Rule, error) {
	return NewOuterTotalistic(MooreNeighborhood(1), []int{3}, []int{2, 3}, "B3/S23")
}

// HighLife returns HighLife (B36/S23).
func HighLife() (*Rule, error) {
	return NewOuterTotalistic(MooreNeighborhood(1), []int{3, 6}, []int{2, 3}, "B36/S23")
}
