package model

import (
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ModelSuite struct {
	suite.Suite
}

func TestModelSuite(t *testing.T) {
	suite.Run(t, new(ModelSuite))
}

// Board tests

func (s *ModelSuite) TestLayoutIsSymmetric() {
	for row := range BoardSize {
		for col := range BoardSize {
			m := ModifierAt(Index(row, col))
			s.Equal(m, ModifierAt(Index(BoardSize-1-row, col)), "row %d col %d", row, col)
			s.Equal(m, ModifierAt(Index(row, BoardSize-1-col)), "row %d col %d", row, col)
		}
	}
}

func (s *ModelSuite) TestLayoutLandmarks() {
	s.Equal(ModifierNone, ModifierAt(Index(0, 0)))
	s.Equal(ModifierTripleWord, ModifierAt(Index(0, 3)))
	s.Equal(ModifierTripleLetter, ModifierAt(Index(0, 6)))
	s.Equal(ModifierDoubleLetter, ModifierAt(Index(1, 2)))
	s.Equal(ModifierDoubleWord, ModifierAt(Index(1, 5)))
	s.Equal(ModifierNone, ModifierAt(Index(7, 7)))
}

func (s *ModelSuite) TestNewBoardIsEmpty() {
	b := NewBoard()
	s.Len(b.Slots, SlotCount)
	s.False(b.HasTiles())
	s.Equal(0, b.TileCount())
	s.Equal(ModifierTripleWord, b.Slot(3, 0).Modifier)
}

func (s *ModelSuite) TestBoardString() {
	b := NewBoard()
	tile, err := TileWithID(102)
	s.Require().NoError(err)
	b.Slot(0, 1).Tile = &tile

	lines := strings.Split(b.String(), "\n")
	s.Len(lines, BoardSize+1)
	s.Equal(". X . . . . . . . . . . . . . ", lines[0])
}

func (s *ModelSuite) TestIndexRoundTrip() {
	for _, pos := range [][2]int{{0, 0}, {0, 14}, {7, 7}, {14, 0}, {14, 14}} {
		row, col := RowCol(Index(pos[0], pos[1]))
		s.Equal(pos, [2]int{row, col})
	}
}

func (s *ModelSuite) TestSlotPanicsOffBoard() {
	b := NewBoard()
	s.Panics(func() { b.Slot(15, 0) })
	s.Panics(func() { b.Slot(0, -1) })
	s.Panics(func() { b.SlotAt(SlotCount) })
}

func (s *ModelSuite) TestCloneIsDeep() {
	b := NewBoard()
	tile, err := TileWithID(15)
	s.Require().NoError(err)
	b.Slot(7, 7).Tile = &tile

	c := b.Clone()
	c.Slot(7, 7).Tile.Letter = 'Z'
	c.Slot(7, 8).Tile = &tile

	s.Equal('A', b.Slot(7, 7).Tile.Letter)
	s.Equal(1, b.TileCount())
	s.Equal(2, c.TileCount())
	s.Nil(CloneSlots(nil))
}

func (s *ModelSuite) TestWalk() {
	s.Equal([]int{Index(7, 12), Index(7, 13), Index(7, 14)},
		slices.Collect(Walk(7, 12, Horizontal, Forwards)))
	s.Equal([]int{Index(2, 3), Index(1, 3), Index(0, 3)},
		slices.Collect(Walk(2, 3, Vertical, Backwards)))
	s.Len(slices.Collect(Walk(0, 0, Vertical, Forwards)), BoardSize)
	s.Empty(slices.Collect(Walk(-1, 0, Vertical, Forwards)))

	// Early stop
	for i := range Walk(0, 0, Horizontal, Forwards) {
		s.Equal(0, i)
		break
	}
}

func (s *ModelSuite) TestOrientation() {
	s.Equal(Vertical, Horizontal.Opposite())
	s.Equal(Horizontal, Vertical.Opposite())
	s.True(Vertical.Valid())
	s.False(Orientation(2).Valid())
}

func (s *ModelSuite) TestModifierMultipliers() {
	s.Equal(2, ModifierDoubleLetter.LetterMultiplier())
	s.Equal(3, ModifierTripleLetter.LetterMultiplier())
	s.Equal(1, ModifierDoubleWord.LetterMultiplier())
	s.Equal(2, ModifierDoubleWord.WordMultiplier())
	s.Equal(3, ModifierTripleWord.WordMultiplier())
	s.Equal(1, ModifierTripleLetter.WordMultiplier())
	s.True(ModifierTripleWord.IsWordModifier())
	s.False(ModifierDoubleLetter.IsWordModifier())
}

// Tile tests

func (s *ModelSuite) TestCanonicalTiles() {
	tiles := CanonicalTiles()
	s.Len(tiles, BagSize)

	counts := map[rune]int{}
	for i, t := range tiles {
		s.Equal(i, t.ID)
		counts[t.Letter]++
	}
	s.Equal(2, counts[BlankLetter])
	s.Equal(13, counts['E'])
	s.Equal(9, counts['A'])
	s.Equal(4, counts['H'])
	s.Equal(1, counts['Z'])

	s.Equal(Tile{ID: 103, Letter: 'Z', Value: 10}, tiles[103])
	s.Equal(Tile{ID: 2, Letter: 'E', Value: 1}, tiles[2])
}

func (s *ModelSuite) TestTileWithID() {
	_, err := TileWithID(BagSize)
	s.ErrorIs(err, ErrUnknownTile)
	_, err = TileWithID(-1)
	s.ErrorIs(err, ErrUnknownTile)

	blank, err := TileWithID(1)
	s.Require().NoError(err)
	s.True(blank.IsBlank())

	assigned := blank.WithLetter('q')
	s.Equal('Q', assigned.Letter)
	s.True(assigned.IsBlank())
	s.Equal(int32(BlankLetter), blank.Letter)
}

func (s *ModelSuite) TestUnassigned() {
	blank, err := TileWithID(0)
	s.Require().NoError(err)
	e, err := TileWithID(2)
	s.Require().NoError(err)

	tiles := []Tile{blank.WithLetter('s'), e}
	s.Equal([]Tile{blank, e}, UnassignedTiles(tiles))
	s.Equal('S', tiles[0].Letter)
	s.Nil(UnassignedTiles(nil))
}

func (s *ModelSuite) TestLetterValue() {
	v, ok := LetterValue('x')
	s.True(ok)
	s.Equal(8, v)

	_, ok = LetterValue('1')
	s.False(ok)
}

func (s *ModelSuite) TestRackAndCloneTiles() {
	tiles := CanonicalTiles()[10:13]
	rack := Rack{Capacity: RackCapacity, Tiles: tiles}
	s.True(rack.Contains(11))
	s.False(rack.Contains(14))
	s.Equal(2, IndexOfTile(tiles, 12))

	cloned := CloneTiles(tiles)
	cloned[0].Letter = 'Q'
	s.Equal('E', tiles[0].Letter)
	s.Nil(CloneTiles(nil))
}

// Move tests

func (s *ModelSuite) TestParseMoveType() {
	t, err := ParseMoveType("GAME_OVER")
	s.Require().NoError(err)
	s.Equal(MoveTypeGameOver, t)

	_, err = ParseMoveType("play")
	s.ErrorIs(err, ErrUnsupportedMove)
}

func (s *ModelSuite) TestMoveDataCloneIsDeep() {
	points := 5
	m := MoveData{
		Type:      MoveTypePlay,
		PlayStart: &Coordinates{X: 1, Y: 2},
		PlayEnd:   &Coordinates{X: 3, Y: 2},
		Points:    &points,
		Tiles:     CanonicalTiles()[:2],
	}
	c := m.Clone()
	c.PlayStart.X = 9
	*c.Points = 7
	c.Tiles[0].ID = 50

	s.Equal(1, m.PlayStart.X)
	s.Equal(5, *m.Points)
	s.Equal(0, m.Tiles[0].ID)
}

func (s *ModelSuite) TestGameStateCloneIsDeep() {
	tile, err := TileWithID(40)
	s.Require().NoError(err)
	g := &GameState{
		ID: 1,
		Meta: GameMeta{
			UsersByID: map[UserID]User{1: {ID: 1}, 2: {ID: 2}},
		},
		Racks:  map[UserID][]Tile{1: {tile}},
		Board:  NewBoard().Slots,
		Scores: map[UserID]int{1: 3},
		Moves:  []MoveData{{Type: MoveTypePass}},
	}

	c := g.Clone()
	s.Equal(g, c)

	c.Meta.UsersByID[3] = User{ID: 3}
	c.Racks[1][0].ID = 41
	c.Board[0].Tile = &tile
	c.Scores[1] = 10
	c.Moves[0].Type = MoveTypeSwap

	s.Len(g.Meta.UsersByID, 2)
	s.Equal(40, g.Racks[1][0].ID)
	s.Nil(g.Board[0].Tile)
	s.Equal(3, g.Scores[1])
	s.Equal(MoveTypePass, g.Moves[0].Type)
}
