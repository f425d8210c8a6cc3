package entropy

// Script is a Source whose draws are enumerated up front. Each method consumes
// its own queue; an exhausted queue yields zero. Used to pin generation and
// simulation to exact, hand-checked outcomes.
type Script struct {
	Floats []float64
	Ints   []int
	Int63s []int64

	// Draw counters, for asserting how much randomness an operation used.
	FloatDraws int
	IntDraws   int
	Int63Draws int
}

// Float64 returns the next scripted float, or 0.
func (s *Script) Float64() float64 {
	s.FloatDraws++
	if len(s.Floats) == 0 {
		return 0
	}
	v := s.Floats[0]
	s.Floats = s.Floats[1:]
	return v
}

// Intn returns the next scripted int reduced into [0, n), or 0.
func (s *Script) Intn(n int) int {
	s.IntDraws++
	if len(s.Ints) == 0 || n <= 0 {
		return 0
	}
	v := s.Ints[0]
	s.Ints = s.Ints[1:]
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

// Int63 returns the next scripted int64, or 0.
func (s *Script) Int63() int64 {
	s.Int63Draws++
	if len(s.Int63s) == 0 {
		return 0
	}
	v := s.Int63s[0]
	s.Int63s = s.Int63s[1:]
	return v
}
