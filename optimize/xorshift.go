package optimize

// XorShift64 is Marsaglia's 64-bit xorshift generator (13, 7, 17).
//
// It is used for reproducible vocabulary shuffles: the same seed always yields
// the same permutation on every platform. A zero seed stays zero forever.
type XorShift64 struct {
	state uint64
}

// NewXorShift64 creates a generator with the given seed.
func NewXorShift64(seed uint64) *XorShift64 {
	return &XorShift64{state: seed}
}

// Next advances the generator and returns the new state.
func (x *XorShift64) Next() uint64 {
	s := x.state
	s ^= s << 13
	s ^= s >> 7
	s ^= s << 17
	x.state = s

	return s
}

// Uint64N returns Next() % n, or 0 when n is 0.
func (x *XorShift64) Uint64N(n uint64) uint64 {
	if n == 0 {
		return 0
	}

	return x.Next() % n
}

// Shuffle permutes order in place: each position k in turn is swapped with a
// position drawn uniformly from the whole slice.
func (x *XorShift64) Shuffle(order []int) {
	n := uint64(len(order))
	for k := range order {
		j := x.Uint64N(n)
		order[k], order[j] = order[j], order[k]
	}
}
