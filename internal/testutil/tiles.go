package testutil

import (
	"fmt"
	"unicode"

	"github.com/mcoot/wwfstate/internal/model"
)

// Tile returns the canonical tile with the given id, panicking on bad ids
func Tile(id int) model.Tile {
	t, err := model.TileWithID(id)
	if err != nil {
		panic(fmt.Sprintf("testutil: %v", err))
	}
	return t
}

// Blank returns blank tile id (0 or 1) assigned the given letter
func Blank(id int, letter rune) model.Tile {
	return Tile(id).WithLetter(letter)
}

// Word returns tiles spelling word, taking the lowest unused canonical id for
// each letter. A '*' followed by a letter yields a blank assigned to it.
func Word(word string) []model.Tile {
	used := map[int]bool{}
	var tiles []model.Tile
	runes := []rune(word)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r == model.BlankLetter {
			i++
			id := nextUnused(used, model.BlankLetter)
			tiles = append(tiles, Blank(id, runes[i]))
			continue
		}
		tiles = append(tiles, Tile(nextUnused(used, r)))
	}
	return tiles
}

func nextUnused(used map[int]bool, letter rune) int {
	for _, t := range model.CanonicalTiles() {
		if !used[t.ID] && t.Letter == unicode.ToUpper(letter) {
			used[t.ID] = true
			return t.ID
		}
	}
	panic(fmt.Sprintf("testutil: no unused tile for %q", letter))
}
