package entropy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoll_SumsEachDie(t *testing.T) {
	s := &Script{Ints: []int{0, 1, 2}}
	assert.Equal(t, 1+2+3, Roll(s, 3, 3))
	assert.Equal(t, 3, s.IntDraws)
}

func TestRoll_Range(t *testing.T) {
	rng := New(7)
	for i := 0; i < 500; i++ {
		v := Roll(rng, 3, 3)
		assert.GreaterOrEqual(t, v, 3)
		assert.LessOrEqual(t, v, 9)
	}
}

func TestRoll_NonPositiveIsZero(t *testing.T) {
	s := &Script{}
	assert.Equal(t, 0, Roll(s, 0, 6))
	assert.Equal(t, 0, Roll(s, 2, 0))
	assert.Equal(t, 0, s.IntDraws)
}

func TestPickWeighted_Cumulative(t *testing.T) {
	weights := []float64{1, 2, 3} // total 6
	cases := []struct {
		draw float64
		want int
	}{
		{0.0, 0},       // 0 - 1 <= 0
		{1.0 / 6.0, 0}, // exactly the first boundary
		{0.2, 1},       // 1.2 - 1 > 0, 0.2 - 2 <= 0
		{0.5, 1},       // 3.0 lands on second boundary
		{0.51, 2},      // 3.06
		{0.999999, 2},  // near the top
	}
	for _, tc := range cases {
		s := &Script{Floats: []float64{tc.draw}}
		assert.Equal(t, tc.want, PickWeighted(s, weights), "draw %v", tc.draw)
	}
}

func TestPickWeighted_Empty(t *testing.T) {
	s := &Script{}
	assert.Equal(t, -1, PickWeighted(s, nil))
	assert.Equal(t, 0, s.FloatDraws)
}

func TestPickWeighted_ZeroWeightsPickFirst(t *testing.T) {
	s := &Script{Floats: []float64{0.7}}
	assert.Equal(t, 0, PickWeighted(s, []float64{0, 0, 0}))
}

func TestPickWeighted_FallsBackToLast(t *testing.T) {
	// A draw of 1.0 cannot come from rand, but pins the fallthrough.
	s := &Script{Floats: []float64{1.0000001}}
	assert.Equal(t, 2, PickWeighted(s, []float64{1, 1, 1}))
}

func TestScript_ExhaustedQueuesYieldZero(t *testing.T) {
	s := &Script{Ints: []int{5}}
	assert.Equal(t, 2, s.Intn(3))
	assert.Equal(t, 0, s.Intn(3))
	assert.Equal(t, 0.0, s.Float64())
	assert.Equal(t, int64(0), s.Int63())
	assert.Equal(t, 2, s.IntDraws)
}

func TestNew_Deterministic(t *testing.T) {
	a, b := New(99), New(99)
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Int63(), b.Int63())
	}
}
