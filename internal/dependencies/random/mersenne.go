package random

// MT19937 parameters
const (
	mtN         = 624
	mtM         = 397
	matrixA     = 0x9908b0df
	upperMask   = 0x80000000
	lowerMask   = 0x7fffffff
	initMult    = 1812433253
	temperMaskB = 0x9d2c5680
	temperMaskC = 0xefc60000
)

// MersenneState is the complete internal state of a Mersenne generator.
// It is a plain value: copying it snapshots the generator.
type MersenneState struct {
	MT    [mtN]uint32
	Index int
}

// Mersenne is the 32-bit Mersenne Twister (MT19937), seeded the same way
// as the reference init_genrand. The server shuffles its bag with exactly
// this generator.
type Mersenne struct {
	state MersenneState
}

// Ensure Mersenne implements Source
var _ Source = (*Mersenne)(nil)

// NewMersenne creates a generator seeded with seed
func NewMersenne(seed uint64) *Mersenne {
	m := &Mersenne{}
	m.Seed(seed)
	return m
}

// Seed resets the generator. Only the low 32 bits of seed are used.
func (m *Mersenne) Seed(seed uint64) {
	mt := &m.state.MT
	mt[0] = uint32(seed)
	for i := 1; i < mtN; i++ {
		mt[i] = initMult*(mt[i-1]^(mt[i-1]>>30)) + uint32(i)
	}
	m.state.Index = mtN
}

// Uint32 returns the next tempered draw
func (m *Mersenne) Uint32() uint32 {
	if m.state.Index >= mtN {
		m.twist()
	}

	y := m.state.MT[m.state.Index]
	m.state.Index++

	y ^= y >> 11
	y ^= (y << 7) & temperMaskB
	y ^= (y << 15) & temperMaskC
	y ^= y >> 18
	return y
}

// Snapshot returns a copy of the generator's state
func (m *Mersenne) Snapshot() MersenneState {
	return m.state
}

// Restore rewinds the generator to a previously taken snapshot
func (m *Mersenne) Restore(s MersenneState) {
	m.state = s
}

// Clone returns an independent generator at the same position
func (m *Mersenne) Clone() Source {
	c := &Mersenne{}
	c.Restore(m.Snapshot())
	return c
}

func (m *Mersenne) twist() {
	mt := &m.state.MT
	for i := range mtN {
		y := (mt[i] & upperMask) | (mt[(i+1)%mtN] & lowerMask)
		next := mt[(i+mtM)%mtN] ^ (y >> 1)
		if y&1 != 0 {
			next ^= matrixA
		}
		mt[i] = next
	}
	m.state.Index = 0
}
