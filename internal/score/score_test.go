package score

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b Score
		want int
	}{
		{"equal", Score{-100, -5}, Score{-100, -5}, 0},
		{"hard dominates soft", Score{-100, 0}, Score{0, -999999}, -1},
		{"better hard wins", Score{0, -50}, Score{-10, 0}, 1},
		{"soft breaks hard tie", Score{-100, -5}, Score{-100, -10}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Compare(tt.b))
			assert.Equal(t, -tt.want, tt.b.Compare(tt.a))
		})
	}
}

func TestScoreFeasible(t *testing.T) {
	assert.True(t, Score{0, -500}.Feasible())
	assert.False(t, Score{-10, 0}.Feasible())
}

func TestScoreArithmetic(t *testing.T) {
	a := Score{-100, -20}
	b := Score{-50, 5}
	assert.Equal(t, Score{-150, -15}, a.Add(b))
	assert.Equal(t, Score{-50, -25}, a.Sub(b))
	assert.Equal(t, a, a.Add(b).Sub(b))
}

func TestScoreString(t *testing.T) {
	assert.Equal(t, "-10000hard/-40soft", Score{-10000, -40}.String())
	assert.Equal(t, "0hard/0soft", Score{}.String())
}
