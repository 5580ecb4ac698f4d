package chaos

import "math/rand"

// Park-Miller minimal standard generator: state' = state * 16807 mod (2^31 - 1).
const (
	minstdMultiplier = 16807
	minstdModulus    = 2147483647
)

// minstdSource adapts the Park-Miller generator to rand.Source so a seed
// yields the same decision stream on every platform and Go release.
type minstdSource struct {
	state int64
}

func newMinstdSource(seed int64) *minstdSource {
	s := &minstdSource{}
	s.Seed(seed)
	return s
}

func (s *minstdSource) Seed(seed int64) {
	s.state = seed % minstdModulus
	if s.state <= 0 {
		s.state += minstdModulus - 1
	}
	if s.state <= 0 {
		s.state = 1
	}
}

// next returns the following state, in [1, 2^31-2].
func (s *minstdSource) next() int64 {
	s.state = (s.state * minstdMultiplier) % minstdModulus
	return s.state
}

// Int63 joins two 31-bit draws.
func (s *minstdSource) Int63() int64 {
	hi := s.next()
	lo := s.next()
	return hi<<32 | lo<<1
}

var _ rand.Source = (*minstdSource)(nil)
