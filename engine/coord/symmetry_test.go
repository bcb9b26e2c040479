package coord

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplicable(t *testing.T) {
	assert.True(t, C1.Applicable(5, 3))
	assert.True(t, C2.Applicable(5, 3))
	assert.False(t, C4.Applicable(5, 3))
	assert.True(t, C4.Applicable(5, 5))
	assert.False(t, D8.Applicable(5, 3))
	assert.True(t, D8.Applicable(5, 5))
	assert.True(t, D4Plus.Applicable(5, 3))
	assert.False(t, D4Diagonal.Applicable(5, 3))
}

func TestOrbitC1IsSingleton(t *testing.T) {
	orbit := C1.Orbit(Point{X: 2, Y: 1}, 5, 5)
	assert.Equal(t, []Point{{X: 2, Y: 1}}, orbit)
}

func TestOrbitC2(t *testing.T) {
	orbit := C2.Orbit(Point{X: 0, Y: 0}, 3, 3)
	assert.ElementsMatch(t, []Point{{X: 0, Y: 0}, {X: 2, Y: 2}}, orbit)

	// The center of an odd-sized box is a fixed point of C2.
	center := C2.Orbit(Point{X: 1, Y: 1}, 3, 3)
	assert.Equal(t, []Point{{X: 1, Y: 1}}, center)
}

func TestOrbitD8Square(t *testing.T) {
	orbit := D8.Orbit(Point{X: 0, Y: 0}, 4, 4)
	assert.ElementsMatch(t, []Point{{X: 0, Y: 0}, {X: 3, Y: 0}, {X: 0, Y: 3}, {X: 3, Y: 3}}, orbit)

	// A point on none of the mirror axes has a full 8-element orbit.
	orbit = D8.Orbit(Point{X: 0, Y: 1}, 4, 4)
	assert.Len(t, orbit, 8)
}

func TestRepresentativeIsDeterministic(t *testing.T) {
	rep1 := D8.Representative(Point{X: 3, Y: 0}, 4, 4)
	rep2 := D8.Representative(Point{X: 0, Y: 3}, 4, 4)
	assert.Equal(t, rep1, rep2)
	assert.True(t, D8.IsRepresentative(rep1, 4, 4))
}

func TestValidateTranslationRotationalRequiresZero(t *testing.T) {
	assert.NoError(t, C2.ValidateTranslation(0, 0))
	assert.Error(t, C2.ValidateTranslation(1, 0))
	assert.Error(t, D8.ValidateTranslation(0, 1))
}

func TestValidateTranslationMirrorGlide(t *testing.T) {
	assert.NoError(t, D2Horizontal.ValidateTranslation(3, 0))
	assert.Error(t, D2Horizontal.ValidateTranslation(0, 1))

	assert.NoError(t, D2Vertical.ValidateTranslation(0, 2))
	assert.Error(t, D2Vertical.ValidateTranslation(1, 0))

	assert.NoError(t, D2Diagonal.ValidateTranslation(2, 2))
	assert.Error(t, D2Diagonal.ValidateTranslation(2, 1))

	assert.NoError(t, D2Antidiagonal.ValidateTranslation(2, -2))
	assert.Error(t, D2Antidiagonal.ValidateTranslation(2, 2))
}

func TestValidateTranslationC1Unconstrained(t *testing.T) {
	assert.NoError(t, C1.ValidateTranslation(5, -3))
}

func TestClassString(t *testing.T) {
	assert.Equal(t, "C1", C1.String())
	assert.Equal(t, "D8", D8.String())
	assert.Equal(t, `D2\`, D2Diagonal.String())
}
