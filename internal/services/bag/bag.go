// Package bag models the server's tile bag. Tiles are drawn at an index
// chosen by a seeded Mersenne Twister, so a bag rebuilt from the same seed
// and the same sequence of pulls and returns is identical to the server's.
package bag

import (
	"fmt"
	"slices"
	"strings"

	"github.com/mcoot/wwfstate/internal/dependencies/random"
	"github.com/mcoot/wwfstate/internal/model"
)

// Bag is an ordered list of tiles plus the generator that picks from it.
// A Bag is not safe for concurrent use.
type Bag struct {
	seed  uint64
	src   random.Source
	tiles []model.Tile
}

// New creates a full bag in canonical id order seeded with seed
func New(seed uint64) *Bag {
	return NewWithSource(seed, random.NewMersenne(seed), model.CanonicalTiles())
}

// NewWithSource creates a bag over an arbitrary generator and tile list.
// The tile list is copied.
func NewWithSource(seed uint64, src random.Source, tiles []model.Tile) *Bag {
	return &Bag{
		seed:  seed,
		src:   src,
		tiles: slices.Clone(tiles),
	}
}

// Seed returns the seed the bag was created with
func (b *Bag) Seed() uint64 {
	return b.seed
}

// PullTile removes and returns the tile at the next generator index.
// Pulling from an empty bag returns ErrBagEmpty without consuming a draw.
func (b *Bag) PullTile() (model.Tile, error) {
	if len(b.tiles) == 0 {
		return model.Tile{}, model.ErrBagEmpty
	}
	idx := int(b.src.Uint32() % uint32(len(b.tiles)))
	tile := b.tiles[idx]
	b.tiles = slices.Delete(b.tiles, idx, idx+1)
	return tile, nil
}

// PullTiles pulls n tiles in sequence
func (b *Bag) PullTiles(n int) ([]model.Tile, error) {
	pulled := make([]model.Tile, 0, n)
	for i := range n {
		tile, err := b.PullTile()
		if err != nil {
			return pulled, fmt.Errorf("pull %d of %d: %w", i+1, n, err)
		}
		pulled = append(pulled, tile)
	}
	return pulled, nil
}

// ReturnTile appends a tile to the end of the bag
func (b *Bag) ReturnTile(tile model.Tile) {
	b.tiles = append(b.tiles, tile)
}

// ReturnTiles appends tiles to the end of the bag in order
func (b *Bag) ReturnTiles(tiles []model.Tile) {
	b.tiles = append(b.tiles, tiles...)
}

// TilesLeft returns true if the bag is not empty
func (b *Bag) TilesLeft() bool {
	return len(b.tiles) > 0
}

// Len returns the number of tiles in the bag
func (b *Bag) Len() int {
	return len(b.tiles)
}

// Remaining returns a copy of the bag's tiles in storage order
func (b *Bag) Remaining() []model.Tile {
	return slices.Clone(b.tiles)
}

// RemainingInPullOrder returns the bag's tiles in the order future pulls
// would produce them. The live bag and its generator are left untouched.
func (b *Bag) RemainingInPullOrder() []model.Tile {
	preview := &Bag{
		seed:  b.seed,
		src:   b.src.Clone(),
		tiles: slices.Clone(b.tiles),
	}
	out := make([]model.Tile, 0, len(b.tiles))
	for preview.TilesLeft() {
		tile, _ := preview.PullTile()
		out = append(out, tile)
	}
	return out
}

// String renders the pull order as letters
func (b *Bag) String() string {
	var sb strings.Builder
	for _, t := range b.RemainingInPullOrder() {
		sb.WriteRune(t.Letter)
	}
	return sb.String()
}
