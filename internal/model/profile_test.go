package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPadTruncatesAndZeroExtends(t *testing.T) {
	assert.Equal(t, Profile{1, 2, 0, 0}, Pad(Profile{1, 2}, 4))
	assert.Equal(t, Profile{1, 2}, Pad(Profile{1, 2, 3}, 2))
	assert.Equal(t, Profile{}, Pad(Profile{1, 2}, 0))
}

func TestPadDoesNotMutateInput(t *testing.T) {
	in := Profile{1, 2}
	out := Pad(in, 4)
	out[0] = 99
	assert.Equal(t, Profile{1, 2}, in)
}

func TestSumAlignedZeroExtends(t *testing.T) {
	got := SumAligned([]Profile{{1, 1, 1}, {2, 2}})
	assert.Equal(t, Profile{3, 3, 1}, got)
}

func TestSumAlignedEmptyInput(t *testing.T) {
	assert.Equal(t, Profile{}, SumAligned(nil))
}

func TestSubAlignedZeroExtends(t *testing.T) {
	got := SubAligned(Profile{5, 5}, Profile{1, 1, 1})
	assert.Equal(t, Profile{4, 4, -1}, got)
}

func TestFiniteRejectsNegativeNaNInf(t *testing.T) {
	assert.True(t, Profile{0, 1, 2.5}.Finite())
	assert.False(t, Profile{-1}.Finite())
	assert.False(t, Profile{math.NaN()}.Finite())
	assert.False(t, Profile{math.Inf(1)}.Finite())
}
