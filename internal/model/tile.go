package model

import "unicode"

// BlankLetter marks a blank tile that has not been assigned a letter
const BlankLetter = '*'

// RackCapacity is the number of tiles each player holds
const RackCapacity = 7

// BagSize is the number of tiles in a full game
const BagSize = 104

// Tile is a single game tile. ID is its identity and is fixed by the
// position of the tile in the canonical bag.
type Tile struct {
	ID     int
	Letter rune // Upper-case letter, or BlankLetter for an unplayed blank
	Value  int  // Face value, 0 for blanks
}

// IsBlank returns true for blank tiles, whatever letter they were assigned
func (t Tile) IsBlank() bool {
	return t.Value == 0
}

// WithLetter returns a copy of the tile carrying the given letter
func (t Tile) WithLetter(letter rune) Tile {
	t.Letter = unicode.ToUpper(letter)
	return t
}

// Unassigned returns the tile as it sits in the bag, clearing any letter
// given to a blank
func (t Tile) Unassigned() Tile {
	if t.IsBlank() {
		t.Letter = BlankLetter
	}
	return t
}

// UnassignedTiles copies tiles with blank letters cleared
func UnassignedTiles(tiles []Tile) []Tile {
	if tiles == nil {
		return nil
	}
	out := make([]Tile, len(tiles))
	for i, t := range tiles {
		out[i] = t.Unassigned()
	}
	return out
}

// canonicalBag lists tile letters in the order the server numbers them
const canonicalBag = "**" +
	"eeeeeeeeeeeee" +
	"aaaaaaaaa" +
	"iiiiiiii" +
	"oooooooo" +
	"nnnnn" +
	"rrrrrr" +
	"ttttttt" +
	"ddddd" +
	"llll" +
	"sssss" +
	"uuuu" +
	"ggg" +
	"bb" +
	"cc" +
	"ff" +
	"hhhh" +
	"mm" +
	"pp" +
	"vv" +
	"ww" +
	"yy" +
	"jkqxz"

var letterValues = map[rune]int{
	'A': 1, 'B': 4, 'C': 4, 'D': 2, 'E': 1, 'F': 4, 'G': 3,
	'H': 3, 'I': 1, 'J': 10, 'K': 5, 'L': 2, 'M': 4, 'N': 2,
	'O': 1, 'P': 4, 'Q': 10, 'R': 1, 'S': 1, 'T': 1, 'U': 2,
	'V': 5, 'W': 4, 'X': 8, 'Y': 3, 'Z': 10,
	BlankLetter: 0,
}

// LetterValue returns the face value of a letter, case-insensitively.
// The second result is false for characters that are not tiles.
func LetterValue(letter rune) (int, bool) {
	v, ok := letterValues[unicode.ToUpper(letter)]
	return v, ok
}

// IsValidTileID returns true if id refers to a tile in the canonical bag
func IsValidTileID(id int) bool {
	return id >= 0 && id < len(canonicalBag)
}

// TileWithID returns a fresh copy of the canonical tile with the given id
func TileWithID(id int) (Tile, error) {
	if !IsValidTileID(id) {
		return Tile{}, ErrUnknownTile
	}
	letter := unicode.ToUpper(rune(canonicalBag[id]))
	return Tile{
		ID:     id,
		Letter: letter,
		Value:  letterValues[letter],
	}, nil
}

// CanonicalTiles returns all tiles of a full bag in id order
func CanonicalTiles() []Tile {
	tiles := make([]Tile, 0, len(canonicalBag))
	for id := range len(canonicalBag) {
		tile, _ := TileWithID(id)
		tiles = append(tiles, tile)
	}
	return tiles
}

// Rack is the set of tiles a player holds
type Rack struct {
	Capacity int
	Tiles    []Tile
}

// Contains returns true if a tile with the given id is in the rack
func (r Rack) Contains(id int) bool {
	return IndexOfTile(r.Tiles, id) >= 0
}

// IndexOfTile returns the position of the tile with the given id, or -1
func IndexOfTile(tiles []Tile, id int) int {
	for i, t := range tiles {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// CloneTiles returns a copy of a tile slice (nil stays nil)
func CloneTiles(tiles []Tile) []Tile {
	if tiles == nil {
		return nil
	}
	out := make([]Tile, len(tiles))
	copy(out, tiles)
	return out
}
