package model

import (
	"fmt"
	"iter"
	"strings"
)

// BoardSize is the width and height of the board
const BoardSize = 15

// SlotCount is the number of slots on the board
const SlotCount = BoardSize * BoardSize

// Modifier is a slot's scoring multiplier
type Modifier int

const (
	ModifierNone Modifier = iota
	ModifierDoubleLetter
	ModifierTripleLetter
	ModifierDoubleWord
	ModifierTripleWord
)

// String returns the modifier name
func (m Modifier) String() string {
	switch m {
	case ModifierNone:
		return "NONE"
	case ModifierDoubleLetter:
		return "DOUBLE_LETTER"
	case ModifierTripleLetter:
		return "TRIPLE_LETTER"
	case ModifierDoubleWord:
		return "DOUBLE_WORD"
	case ModifierTripleWord:
		return "TRIPLE_WORD"
	default:
		return fmt.Sprintf("Modifier(%d)", int(m))
	}
}

// IsWordModifier returns true for modifiers that multiply a whole word
func (m Modifier) IsWordModifier() bool {
	return m == ModifierDoubleWord || m == ModifierTripleWord
}

// WordMultiplier returns the factor a word modifier applies (1 otherwise)
func (m Modifier) WordMultiplier() int {
	switch m {
	case ModifierDoubleWord:
		return 2
	case ModifierTripleWord:
		return 3
	default:
		return 1
	}
}

// LetterMultiplier returns the factor a letter modifier applies (1 otherwise)
func (m Modifier) LetterMultiplier() int {
	switch m {
	case ModifierDoubleLetter:
		return 2
	case ModifierTripleLetter:
		return 3
	default:
		return 1
	}
}

// Layout legend:
//
//	N none, d double letter, t triple letter, D double word, T triple word
const boardLayout = "" +
	"NNNTNNtNtNNTNNN" +
	"NNdNNDNNNDNNdNN" +
	"NdNNdNNNNNdNNdN" +
	"TNNtNNNDNNNtNNT" +
	"NNdNNNdNdNNNdNN" +
	"NDNNNtNNNtNNNDN" +
	"tNNNdNNNNNdNNNt" +
	"NNNDNNNNNNNDNNN" +
	"tNNNdNNNNNdNNNt" +
	"NDNNNtNNNtNNNDN" +
	"NNdNNNdNdNNNdNN" +
	"TNNtNNNDNNNtNNT" +
	"NdNNdNNNNNdNNdN" +
	"NNdNNDNNNDNNdNN" +
	"NNNTNNtNtNNTNNN"

var layoutModifiers = map[byte]Modifier{
	'N': ModifierNone,
	'd': ModifierDoubleLetter,
	't': ModifierTripleLetter,
	'D': ModifierDoubleWord,
	'T': ModifierTripleWord,
}

// ModifierAt returns the fixed modifier of a board index
func ModifierAt(index int) Modifier {
	return layoutModifiers[boardLayout[index]]
}

// Slot is one cell of the board
type Slot struct {
	Modifier Modifier
	Tile     *Tile // nil when empty
}

// Occupied returns true if a tile sits in the slot
func (s *Slot) Occupied() bool {
	return s.Tile != nil
}

// Board is the 15x15 play grid, stored row-major
type Board struct {
	Slots []Slot
}

// NewBoard creates an empty board with the standard modifier layout
func NewBoard() *Board {
	slots := make([]Slot, SlotCount)
	for i := range slots {
		slots[i].Modifier = ModifierAt(i)
	}
	return &Board{Slots: slots}
}

// Index converts a row and column to a slot index
func Index(row, col int) int {
	return row*BoardSize + col
}

// RowCol converts a slot index to a row and column
func RowCol(index int) (row, col int) {
	return index / BoardSize, index % BoardSize
}

// InBounds returns true if the row and column are on the board
func InBounds(row, col int) bool {
	return row >= 0 && row < BoardSize && col >= 0 && col < BoardSize
}

// Slot returns the slot at the given position.
// Panics if the position is off the board.
func (b *Board) Slot(row, col int) *Slot {
	if !InBounds(row, col) {
		panic(fmt.Sprintf("slot (%d,%d) out of bounds", row, col))
	}
	return &b.Slots[Index(row, col)]
}

// SlotAt returns the slot at the given index.
// Panics if the index is off the board.
func (b *Board) SlotAt(index int) *Slot {
	if index < 0 || index >= len(b.Slots) {
		panic(fmt.Sprintf("slot index %d out of bounds", index))
	}
	return &b.Slots[index]
}

// HasTiles returns true if any slot is occupied
func (b *Board) HasTiles() bool {
	for i := range b.Slots {
		if b.Slots[i].Occupied() {
			return true
		}
	}
	return false
}

// TileCount returns the number of occupied slots
func (b *Board) TileCount() int {
	count := 0
	for i := range b.Slots {
		if b.Slots[i].Occupied() {
			count++
		}
	}
	return count
}

// Clone returns a deep copy of the board
func (b *Board) Clone() *Board {
	return &Board{Slots: CloneSlots(b.Slots)}
}

// String renders occupied slots as letters and empty ones as dots
func (b *Board) String() string {
	var sb strings.Builder
	for row := range BoardSize {
		for col := range BoardSize {
			slot := b.Slot(row, col)
			if slot.Occupied() {
				sb.WriteRune(slot.Tile.Letter)
			} else {
				sb.WriteByte('.')
			}
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// CloneSlots deep-copies a slot slice, including occupants
func CloneSlots(slots []Slot) []Slot {
	if slots == nil {
		return nil
	}
	out := make([]Slot, len(slots))
	for i, s := range slots {
		out[i].Modifier = s.Modifier
		if s.Tile != nil {
			tile := *s.Tile
			out[i].Tile = &tile
		}
	}
	return out
}

// Orientation is the axis a word is played along
type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

// String returns the orientation name
func (o Orientation) String() string {
	if o == Horizontal {
		return "HORIZONTAL"
	}
	return "VERTICAL"
}

// Opposite returns the perpendicular orientation
func (o Orientation) Opposite() Orientation {
	if o == Horizontal {
		return Vertical
	}
	return Horizontal
}

// Valid returns true for the two defined orientations
func (o Orientation) Valid() bool {
	return o == Horizontal || o == Vertical
}

// Direction is the sense of a walk along an orientation
type Direction int

const (
	Forwards  Direction = 1
	Backwards Direction = -1
)

// Walk yields slot indexes starting at (row, col) and stepping along the
// orientation in the given direction. It stops at the board edge and never
// yields more than BoardSize indexes.
func Walk(row, col int, o Orientation, d Direction) iter.Seq[int] {
	return func(yield func(int) bool) {
		for range BoardSize {
			if !InBounds(row, col) {
				return
			}
			if !yield(Index(row, col)) {
				return
			}
			if o == Horizontal {
				col += int(d)
			} else {
				row += int(d)
			}
		}
	}
}
