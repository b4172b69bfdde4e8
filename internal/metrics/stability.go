package metrics

import "github.com/san-kum/rcsaid/internal/sim"

// SanityRatio is the fraction of ticks whose estimate assumed poolable
// propellant correctly.
type SanityRatio struct {
	name    string
	insane  int
	samples int
}

func NewSanityRatio() *SanityRatio {
	return &SanityRatio{
		name: "sanity",
	}
}

func (s *SanityRatio) Name() string {
	return s.name
}

func (s *SanityRatio) Observe(sample sim.Sample) {
	s.samples++
	if !sample.Estimate.Sane {
		s.insane++
	}
}

func (s *SanityRatio) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.insane)/float64(s.samples)
}

func (s *SanityRatio) Reset() {
	s.insane = 0
	s.samples = 0
}
