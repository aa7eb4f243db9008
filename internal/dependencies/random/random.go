package random

// Source produces the unsigned 32-bit draws that drive the tile bag.
// Implementations must be deterministic for a given seed so a bag can be
// rebuilt by replaying a game.
type Source interface {
	// Uint32 returns the next draw
	Uint32() uint32

	// Clone returns an independent copy positioned at the same point in the
	// sequence. Drawing from the copy does not affect the original.
	Clone() Source
}
