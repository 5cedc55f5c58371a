package util

// Stream is a mulberry32 generator. It matches the browser client bit for bit,
// so a submitted attempt can be replayed from its seed.
type Stream struct {
	state uint32
	seed  uint32
}

func NewStream(seed uint32) *Stream {
	return &Stream{state: seed, seed: seed}
}

func (s *Stream) Seed() uint32 { return s.seed }

// Next returns a float in [0,1).
func (s *Stream) Next() float64 {
	s.state += 0x6d2b79f5
	t := s.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return float64(t^(t>>14)) / 4294967296.0
}

// LCG is the play generator's linear congruential stream.
type LCG struct {
	state uint32
}

func NewLCG(seed uint32) *LCG {
	return &LCG{state: seed}
}

func (l *LCG) Float64() float64 {
	l.state = 1664525*l.state + 1013904223
	return float64(l.state) / 4294967296.0
}

func (l *LCG) Choice(items []string) string {
	if len(items) == 0 {
		return ""
	}
	idx := int(l.Float64() * float64(len(items)))
	return items[idx%len(items)]
}
