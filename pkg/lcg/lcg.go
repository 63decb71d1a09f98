package lcg

// Classic rand() constants, 15-bit output
const (
	multiplier = 1103515245
	increment  = 12345

	DefaultSeed = 6789
)

type Rand struct {
	seed uint32
}

func New(seed uint32) *Rand {
	return &Rand{seed: seed}
}

// Next returns the next value in [0, 32767]. The sequence is fully
// determined by the seed.
func (r *Rand) Next() int {
	r.seed = r.seed*multiplier + increment
	return int((r.seed >> 16) & 0x7fff)
}

func (r *Rand) Seed(seed uint32) {
	r.seed = seed
}
