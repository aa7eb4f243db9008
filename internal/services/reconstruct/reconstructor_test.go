package reconstruct

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/wwfstate/internal/dependencies/mocks"
	"github.com/mcoot/wwfstate/internal/model"
	"github.com/mcoot/wwfstate/internal/services/bag"
	"github.com/mcoot/wwfstate/internal/services/board"
	"github.com/mcoot/wwfstate/internal/services/gamestate"
	"github.com/mcoot/wwfstate/internal/services/scoring"
	"github.com/mcoot/wwfstate/internal/testutil"
)

const (
	creator  model.UserID = 100
	opponent model.UserID = 200
)

type ReconstructorSuite struct {
	suite.Suite
	helper        *gamestate.Helper
	reconstructor *Reconstructor
	logs          *bytes.Buffer
}

func TestReconstructorSuite(t *testing.T) {
	suite.Run(t, new(ReconstructorSuite))
}

func (s *ReconstructorSuite) SetupTest() {
	scoringService := scoring.New()
	s.helper = gamestate.New(board.New(), scoringService, mocks.NewMockClock(time.Unix(0, 0)))

	logger, buf := testutil.CaptureLogger()
	s.logs = buf
	s.reconstructor = New(scoringService, s.helper, logger)
}

func skeleton(seed uint64, moves ...model.MoveData) *model.GameState {
	return &model.GameState{
		ID: 42,
		Meta: model.GameMeta{
			RandomSeed:      seed,
			CreatedByUserID: creator,
			UsersByID: map[model.UserID]model.User{
				creator:  {ID: creator, Name: "creator"},
				opponent: {ID: opponent, Name: "opponent"},
			},
			CurrentMoveUserID: creator,
		},
		Moves: moves,
	}
}

func play(text string, from, to model.Coordinates, points int) model.MoveData {
	return model.MoveData{
		Type:      model.MoveTypePlay,
		Text:      text,
		PlayStart: &from,
		PlayEnd:   &to,
		Points:    &points,
	}
}

func swap(text string) model.MoveData {
	return model.MoveData{Type: model.MoveTypeSwap, Text: text}
}

func ids(tiles []model.Tile) []int {
	out := make([]int, len(tiles))
	for i, t := range tiles {
		out[i] = t.ID
	}
	return out
}

func (s *ReconstructorSuite) assertTileCount(state *model.GameState) {
	count := len(state.RemainingTiles)
	for _, rack := range state.Racks {
		s.LessOrEqual(len(rack), model.RackCapacity)
		count += len(rack)
	}
	brd := model.Board{Slots: state.Board}
	s.Equal(model.BagSize, count+brd.TileCount())
}

// Basic replay tests

func (s *ReconstructorSuite) TestOpeningDeal() {
	state, err := s.reconstructor.Reconstruct(skeleton(123))
	s.Require().NoError(err)

	s.Equal([]int{6, 36, 68, 30, 84, 53, 47}, ids(state.Racks[creator]))
	s.Equal([]int{102, 90, 37, 14, 42, 88, 35}, ids(state.Racks[opponent]))
	s.Equal(map[model.UserID]int{creator: 0, opponent: 0}, state.Scores)
	s.Len(state.RemainingTiles, model.BagSize-14)
	s.Len(state.Board, model.SlotCount)
	s.assertTileCount(state)
}

func (s *ReconstructorSuite) TestPlaySwapPlay() {
	input := skeleton(123,
		play("6,36,", model.Coordinates{X: 7, Y: 7}, model.Coordinates{X: 8, Y: 7}, 2),
		swap("102,90,"),
		play("68,*,30,", model.Coordinates{X: 7, Y: 6}, model.Coordinates{X: 7, Y: 8}, 3),
	)

	state, err := s.reconstructor.Reconstruct(input)
	s.Require().NoError(err)

	// Mirror the bag: deal, refill two, swap two, refill two
	mirror := bag.New(123)
	_, _ = mirror.PullTiles(14)
	firstRefill, _ := mirror.PullTiles(2)
	swapRefill, _ := mirror.PullTiles(2)
	mirror.ReturnTiles([]model.Tile{testutil.Tile(102), testutil.Tile(90)})
	secondRefill, _ := mirror.PullTiles(2)

	wantCreator := append([]int{84, 53, 47}, ids(firstRefill)...)
	wantCreator = append(wantCreator, ids(secondRefill)...)
	s.Equal(wantCreator, ids(state.Racks[creator]))
	s.Equal(append([]int{37, 14, 42, 88, 35}, ids(swapRefill)...), ids(state.Racks[opponent]))
	s.Equal(mirror.RemainingInPullOrder(), state.RemainingTiles)

	s.Equal(map[model.UserID]int{creator: 5, opponent: 0}, state.Scores)

	brd := model.Board{Slots: state.Board}
	s.Equal('S', brd.Slot(6, 7).Tile.Letter)
	s.Equal('E', brd.Slot(7, 7).Tile.Letter)
	s.Equal('O', brd.Slot(7, 8).Tile.Letter)
	s.Equal('I', brd.Slot(8, 7).Tile.Letter)
	s.Equal(4, brd.TileCount())

	s.Equal([]int{68, 30}, ids(state.Moves[2].Tiles))
	s.Equal([]int{102, 90}, ids(state.Moves[1].Tiles))
	s.assertTileCount(state)
	s.NotContains(s.logs.String(), "reported points differ")
}

func (s *ReconstructorSuite) TestBlankTakesNextTokenAsLetter() {
	// Seed 1 deals the creator z(103) and a blank(1)
	input := skeleton(1, play("103,1,a,", model.Coordinates{X: 7, Y: 7}, model.Coordinates{X: 8, Y: 7}, 10))

	state, err := s.reconstructor.Reconstruct(input)
	s.Require().NoError(err)

	brd := model.Board{Slots: state.Board}
	blank := brd.Slot(7, 8).Tile
	s.Require().NotNil(blank)
	s.Equal(1, blank.ID)
	s.Equal('A', blank.Letter)
	s.Equal(0, blank.Value)
	s.Equal(10, state.Scores[creator])
	s.Equal([]model.Tile{testutil.Tile(103), testutil.Blank(1, 'A')}, state.Moves[0].Tiles)
}

func (s *ReconstructorSuite) TestNonTileMovesOnlyAlternateTurns() {
	input := skeleton(123,
		model.MoveData{Type: model.MoveTypePass},
		play("102,90,", model.Coordinates{X: 7, Y: 7}, model.Coordinates{X: 7, Y: 8}, 0),
		model.MoveData{Type: model.MoveTypeResign},
	)

	state, err := s.reconstructor.Reconstruct(input)
	s.Require().NoError(err)
	s.Positive(state.Scores[opponent])
	s.Equal(0, state.Scores[creator])
	s.assertTileCount(state)
}

func (s *ReconstructorSuite) TestEmptyTextPlayIsNoOp() {
	input := skeleton(123, model.MoveData{Type: model.MoveTypePlay})

	state, err := s.reconstructor.Reconstruct(input)
	s.Require().NoError(err)
	s.Len(state.Racks[creator], model.RackCapacity)
	s.Len(state.RemainingTiles, model.BagSize-14)
}

func (s *ReconstructorSuite) TestSwappedBlankNeedsNoLetter() {
	state, err := s.reconstructor.Reconstruct(skeleton(1, swap("1,103,")))
	s.Require().NoError(err)
	s.Equal([]model.Tile{testutil.Tile(1), testutil.Tile(103)}, state.Moves[0].Tiles)
	s.True(model.Rack{Tiles: state.RemainingTiles}.Contains(1))
}

func (s *ReconstructorSuite) TestSwappedBlankReturnsUnassigned() {
	state, err := s.reconstructor.Reconstruct(skeleton(1, swap("1,a,103,")))
	s.Require().NoError(err)
	s.Equal([]model.Tile{testutil.Blank(1, 'A'), testutil.Tile(103)}, state.Moves[0].Tiles)

	idx := model.IndexOfTile(state.RemainingTiles, 1)
	s.Require().GreaterOrEqual(idx, 0)
	s.Equal(testutil.Tile(1), state.RemainingTiles[idx])
	s.True(state.RemainingTiles[idx].IsBlank())
	s.assertTileCount(state)
}

// Purity tests

func (s *ReconstructorSuite) TestInputIsNotMutated() {
	input := skeleton(123,
		play("6,36,", model.Coordinates{X: 7, Y: 7}, model.Coordinates{X: 8, Y: 7}, 2),
		swap("102,90,"),
	)
	before := input.Clone()

	first, err := s.reconstructor.Reconstruct(input)
	s.Require().NoError(err)
	s.Equal(before, input)
	s.Nil(input.Moves[0].Tiles)

	second, err := s.reconstructor.Reconstruct(input)
	s.Require().NoError(err)
	s.Equal(first, second)
}

func (s *ReconstructorSuite) TestReplaysStatesBuiltByApplyMove() {
	dealt, err := s.reconstructor.Reconstruct(skeleton(123))
	s.Require().NoError(err)

	pick := func(rack []model.Tile, n int) []model.Tile {
		tiles := model.CloneTiles(rack[:n])
		for i := range tiles {
			if tiles[i].IsBlank() {
				tiles[i] = tiles[i].WithLetter('E')
			}
		}
		return tiles
	}

	state := dealt
	moves := []func(*model.GameState) *model.Move{
		func(g *model.GameState) *model.Move {
			return model.NewPlay(pick(g.Racks[creator], 3), 7, 6, model.Horizontal)
		},
		func(g *model.GameState) *model.Move {
			return model.NewPlay(pick(g.Racks[opponent], 2), 8, 6, model.Vertical)
		},
		func(g *model.GameState) *model.Move {
			return model.NewSwap(g.Racks[creator][:4])
		},
		func(*model.GameState) *model.Move {
			return &model.Move{Type: model.MoveTypePass}
		},
		func(g *model.GameState) *model.Move {
			return model.NewPlay(pick(g.Racks[creator], 4), 3, 10, model.Vertical)
		},
	}
	for _, build := range moves {
		state, err = s.helper.ApplyMove(state, build(state))
		s.Require().NoError(err)
	}

	input := skeleton(123, state.Moves...)
	for i := range input.Moves {
		input.Moves[i].Tiles = nil
	}

	rebuilt, err := s.reconstructor.Reconstruct(input)
	s.Require().NoError(err)
	s.Equal(state.Racks, rebuilt.Racks)
	s.Equal(state.Board, rebuilt.Board)
	s.Equal(state.Scores, rebuilt.Scores)
	s.Equal(state.RemainingTiles, rebuilt.RemainingTiles)
	s.assertTileCount(rebuilt)
}

// Desync tests

func (s *ReconstructorSuite) TestTileNotInMoversRack() {
	// 102 belongs to the opponent
	input := skeleton(123, play("102,", model.Coordinates{X: 7, Y: 7}, model.Coordinates{X: 7, Y: 7}, 8))

	_, err := s.reconstructor.Reconstruct(input)
	s.ErrorIs(err, model.ErrDesync)
	s.ErrorIs(err, model.ErrTileNotInRack)
	s.ErrorContains(err, "move 0")
}

func (s *ReconstructorSuite) TestDiagonalPlay() {
	input := skeleton(123, play("6,36,", model.Coordinates{X: 7, Y: 7}, model.Coordinates{X: 8, Y: 8}, 2))

	_, err := s.reconstructor.Reconstruct(input)
	s.ErrorIs(err, model.ErrDesync)
	s.ErrorIs(err, model.ErrDiagonalMove)
}

func (s *ReconstructorSuite) TestMissingPlayer() {
	input := skeleton(123)
	delete(input.Meta.UsersByID, opponent)

	_, err := s.reconstructor.Reconstruct(input)
	s.ErrorIs(err, model.ErrPlayersNotFound)

	input = skeleton(123)
	input.Meta.CreatedByUserID = 999
	_, err = s.reconstructor.Reconstruct(input)
	s.ErrorIs(err, model.ErrPlayersNotFound)
}

func (s *ReconstructorSuite) TestMalformedText() {
	_, err := s.reconstructor.Reconstruct(skeleton(123, swap("6,x,")))
	s.ErrorIs(err, model.ErrDesync)
	s.ErrorIs(err, model.ErrMalformedText)

	_, err = s.reconstructor.Reconstruct(skeleton(1, play("1,", model.Coordinates{X: 7, Y: 7}, model.Coordinates{X: 7, Y: 7}, 0)))
	s.ErrorIs(err, model.ErrMalformedText)

	_, err = s.reconstructor.Reconstruct(skeleton(123, swap("500,")))
	s.ErrorIs(err, model.ErrUnknownTile)
}

// Logging tests

func (s *ReconstructorSuite) TestPointsMismatchIsLoggedOnly() {
	input := skeleton(123, play("6,36,", model.Coordinates{X: 7, Y: 7}, model.Coordinates{X: 8, Y: 7}, 50))

	state, err := s.reconstructor.Reconstruct(input)
	s.Require().NoError(err)
	s.Equal(2, state.Scores[creator])
	s.Contains(s.logs.String(), "reported points differ from computed score")
}

func (s *ReconstructorSuite) TestMoverMismatchIsLoggedOnly() {
	record := play("6,36,", model.Coordinates{X: 7, Y: 7}, model.Coordinates{X: 8, Y: 7}, 2)
	record.UserID = opponent

	state, err := s.reconstructor.Reconstruct(skeleton(123, record))
	s.Require().NoError(err)
	s.Equal(2, state.Scores[creator])
	s.Contains(s.logs.String(), "move record names a different mover")
}
